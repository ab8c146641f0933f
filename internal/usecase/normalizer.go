package usecase

import (
	"time"

	"github.com/battlelog/cr-tracker/internal/domain/match"
	"github.com/battlelog/cr-tracker/internal/domain/player"
)

type SkipReason string

const (
	SkipNone            SkipReason = ""
	SkipUnsupportedMode SkipReason = "unsupported_mode"
	SkipBadTimestamp    SkipReason = "bad_timestamp"
	SkipMissingField    SkipReason = "missing_field"
)

// Provider battle timestamps are compact ISO 8601, usually with fractional
// seconds ("20180604T163410.000Z") but occasionally without.
const (
	battleTimeLayout         = "20060102T150405.000Z0700"
	battleTimeFallbackLayout = "20060102T150405Z0700"
)

// NormalizeBattle turns one provider battle entry into a storable match. A
// non-empty skip reason means the entry is dropped, never an error: partial
// upstream data must not abort a sync.
func NormalizeBattle(raw ExternalBattle) (match.Match, SkipReason) {
	if raw.BattleTime == "" || len(raw.Team) == 0 || len(raw.Opponent) == 0 {
		return match.Match{}, SkipMissingField
	}

	if !match.IsSupportedMode(raw.GameMode) {
		return match.Match{}, SkipUnsupportedMode
	}

	occurredAt, err := parseBattleTime(raw.BattleTime)
	if err != nil {
		return match.Match{}, SkipBadTimestamp
	}

	own := raw.Team[0]
	foe := raw.Opponent[0]
	if own.Crowns == nil || foe.Crowns == nil {
		return match.Match{}, SkipMissingField
	}

	tagA, err := player.NormalizeTag(own.Tag)
	if err != nil {
		return match.Match{}, SkipMissingField
	}
	tagB, err := player.NormalizeTag(foe.Tag)
	if err != nil {
		return match.Match{}, SkipMissingField
	}

	m := match.Match{
		BattleKey:    match.BattleKey(raw.BattleTime, tagA, tagB),
		ParticipantA: tagA,
		ParticipantB: tagB,
		WinnerTag:    match.DeriveWinner(tagA, tagB, *own.Crowns, *foe.Crowns),
		OccurredAt:   occurredAt.UTC(),
		GameMode:     raw.GameMode,
		CrownsA:      *own.Crowns,
		CrownsB:      *foe.Crowns,
	}
	return m, SkipNone
}

func parseBattleTime(raw string) (time.Time, error) {
	t, err := time.Parse(battleTimeLayout, raw)
	if err == nil {
		return t, nil
	}
	return time.Parse(battleTimeFallbackLayout, raw)
}
