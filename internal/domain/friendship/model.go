package friendship

import (
	"fmt"
	"time"
)

// Friendship links two registered players. The pair is stored with the lower
// player id first so (a, b) and (b, a) occupy the same row.
type Friendship struct {
	ID        int64
	PlayerID1 int64
	PlayerID2 int64
	CreatedAt time.Time
}

// OrderPair returns the two ids in storage order, rejecting self-friending.
func OrderPair(a, b int64) (int64, int64, error) {
	if a <= 0 || b <= 0 {
		return 0, 0, fmt.Errorf("player ids must be greater than zero")
	}
	if a == b {
		return 0, 0, fmt.Errorf("a player cannot befriend themselves")
	}
	if b < a {
		a, b = b, a
	}
	return a, b, nil
}
