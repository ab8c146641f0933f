package usecase

import "context"

// BattleLogClient fetches a player's recent battles from the upstream game
// API. The raw response body is returned alongside the decoded battles so the
// sync flow can archive it untouched.
type BattleLogClient interface {
	FetchBattleLog(ctx context.Context, playerTag string) ([]ExternalBattle, []byte, error)
}

// ExternalBattle is the provider's battle entry after lenient decoding. Fields
// the provider omitted stay zero valued; the normalizer decides what is usable.
type ExternalBattle struct {
	BattleTime string
	GameMode   string
	Team       []ExternalBattlePlayer
	Opponent   []ExternalBattlePlayer
}

// Crowns is a pointer so a provider record that omits the field is
// distinguishable from a legitimate zero-crown result.
type ExternalBattlePlayer struct {
	Tag    string
	Name   string
	Crowns *int
}
