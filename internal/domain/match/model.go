package match

import (
	"strings"
	"time"
)

// Battle modes the store is designed to hold. Anything else coming off the
// upstream battle log (challenges, boat battles, tutorials) is skipped.
const (
	ModePvP     = "PvP"
	Mode2v2     = "2v2"
	ModeClanWar = "ClanWar"
)

var supportedModes = map[string]struct{}{
	ModePvP:     {},
	Mode2v2:     {},
	ModeClanWar: {},
}

// Match is one completed battle between two participants, canonicalized from
// the upstream battle log. BattleKey uniquely identifies the battle no matter
// which participant's sync produced it.
type Match struct {
	ID           int64
	BattleKey    string
	ParticipantA string
	ParticipantB string
	// WinnerTag is one of the two participants, or empty for a draw.
	WinnerTag  string
	OccurredAt time.Time
	GameMode   string
	CrownsA    int
	CrownsB    int
}

func IsSupportedMode(mode string) bool {
	_, ok := supportedModes[strings.TrimSpace(mode)]
	return ok
}

// DeriveWinner picks the participant with the higher crown count. Equal
// counts mean a draw and an empty winner.
func DeriveWinner(tagA, tagB string, crownsA, crownsB int) string {
	switch {
	case crownsA > crownsB:
		return tagA
	case crownsB > crownsA:
		return tagB
	default:
		return ""
	}
}
