package rawdata

import "time"

// Payload is one archived upstream battle-log response, kept for debugging
// normalization issues against what the provider actually returned.
type Payload struct {
	ID          int64
	Source      string
	PlayerTag   string
	PayloadJSON string
	PayloadHash string
	FetchedAt   time.Time
}
