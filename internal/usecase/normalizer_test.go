package usecase

import (
	"testing"
	"time"

	"github.com/battlelog/cr-tracker/internal/domain/match"
)

func crowns(n int) *int { return &n }

func validExternalBattle() ExternalBattle {
	return ExternalBattle{
		BattleTime: "20180604T163410.000Z",
		GameMode:   match.ModePvP,
		Team:       []ExternalBattlePlayer{{Tag: "#abc123", Name: "alice", Crowns: crowns(3)}},
		Opponent:   []ExternalBattlePlayer{{Tag: "#DEF456", Name: "bob", Crowns: crowns(1)}},
	}
}

func TestNormalizeBattle_Accepted(t *testing.T) {
	t.Parallel()

	m, skip := NormalizeBattle(validExternalBattle())
	if skip != SkipNone {
		t.Fatalf("unexpected skip: %s", skip)
	}

	if m.ParticipantA != "#ABC123" || m.ParticipantB != "#DEF456" {
		t.Fatalf("unexpected participants: %s vs %s", m.ParticipantA, m.ParticipantB)
	}
	if m.WinnerTag != "#ABC123" {
		t.Fatalf("unexpected winner: %s", m.WinnerTag)
	}
	if m.GameMode != match.ModePvP {
		t.Fatalf("unexpected mode: %s", m.GameMode)
	}
	if len(m.BattleKey) != 64 {
		t.Fatalf("unexpected battle key length: %d", len(m.BattleKey))
	}

	want := time.Date(2018, 6, 4, 16, 34, 10, 0, time.UTC)
	if !m.OccurredAt.Equal(want) {
		t.Fatalf("unexpected occurred_at: %s", m.OccurredAt)
	}
}

func TestNormalizeBattle_TimestampWithoutFraction(t *testing.T) {
	t.Parallel()

	raw := validExternalBattle()
	raw.BattleTime = "20180604T163410Z"

	m, skip := NormalizeBattle(raw)
	if skip != SkipNone {
		t.Fatalf("unexpected skip: %s", skip)
	}
	want := time.Date(2018, 6, 4, 16, 34, 10, 0, time.UTC)
	if !m.OccurredAt.Equal(want) {
		t.Fatalf("unexpected occurred_at: %s", m.OccurredAt)
	}
}

func TestNormalizeBattle_CrownTieHasNoWinner(t *testing.T) {
	t.Parallel()

	raw := validExternalBattle()
	raw.Team[0].Crowns = crowns(2)
	raw.Opponent[0].Crowns = crowns(2)

	m, skip := NormalizeBattle(raw)
	if skip != SkipNone {
		t.Fatalf("unexpected skip: %s", skip)
	}
	if m.WinnerTag != "" {
		t.Fatalf("tie must have no winner, got %s", m.WinnerTag)
	}
}

func TestNormalizeBattle_SkipReasons(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*ExternalBattle)
		want   SkipReason
	}{
		{
			name:   "unsupported mode",
			mutate: func(b *ExternalBattle) { b.GameMode = "Boat Battle" },
			want:   SkipUnsupportedMode,
		},
		{
			name:   "empty mode",
			mutate: func(b *ExternalBattle) { b.GameMode = "" },
			want:   SkipUnsupportedMode,
		},
		{
			name:   "garbled timestamp",
			mutate: func(b *ExternalBattle) { b.BattleTime = "2018-06-04 16:34" },
			want:   SkipBadTimestamp,
		},
		{
			name:   "missing battle time",
			mutate: func(b *ExternalBattle) { b.BattleTime = "" },
			want:   SkipMissingField,
		},
		{
			name:   "empty team",
			mutate: func(b *ExternalBattle) { b.Team = nil },
			want:   SkipMissingField,
		},
		{
			name:   "empty opponent",
			mutate: func(b *ExternalBattle) { b.Opponent = nil },
			want:   SkipMissingField,
		},
		{
			name:   "missing own tag",
			mutate: func(b *ExternalBattle) { b.Team[0].Tag = "" },
			want:   SkipMissingField,
		},
		{
			name:   "malformed opponent tag",
			mutate: func(b *ExternalBattle) { b.Opponent[0].Tag = "#!!" },
			want:   SkipMissingField,
		},
		{
			name:   "missing crowns",
			mutate: func(b *ExternalBattle) { b.Team[0].Crowns = nil },
			want:   SkipMissingField,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			raw := validExternalBattle()
			tc.mutate(&raw)

			if _, skip := NormalizeBattle(raw); skip != tc.want {
				t.Fatalf("expected skip %q, got %q", tc.want, skip)
			}
		})
	}
}

func TestNormalizeBattle_KeyIgnoresPerspective(t *testing.T) {
	t.Parallel()

	asAlice := validExternalBattle()

	asBob := validExternalBattle()
	asBob.Team, asBob.Opponent = asBob.Opponent, asBob.Team

	left, _ := NormalizeBattle(asAlice)
	right, _ := NormalizeBattle(asBob)
	if left.BattleKey != right.BattleKey {
		t.Fatalf("battle key must not depend on perspective: %s vs %s", left.BattleKey, right.BattleKey)
	}
}
