package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/battlelog/cr-tracker/internal/domain/player"
)

type PlayerService struct {
	players player.Repository
}

func NewPlayerService(players player.Repository) *PlayerService {
	return &PlayerService{players: players}
}

// Register creates the player or returns the already-registered row for the
// same tag. Registration is idempotent on the normalized tag.
func (s *PlayerService) Register(ctx context.Context, username, rawTag string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.Register")
	defer span.End()

	username = strings.TrimSpace(username)
	if username == "" {
		return player.Player{}, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	tag, err := player.NormalizeTag(rawTag)
	if err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.players.CreateOrGet(ctx, player.Player{Username: username, Tag: tag})
	if err != nil {
		return player.Player{}, fmt.Errorf("register player tag=%s: %w", tag, err)
	}
	return created, nil
}

func (s *PlayerService) GetByTag(ctx context.Context, rawTag string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.GetByTag")
	defer span.End()

	tag, err := player.NormalizeTag(rawTag)
	if err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	p, found, err := s.players.GetByTag(ctx, tag)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player tag=%s: %w", tag, err)
	}
	if !found {
		return player.Player{}, fmt.Errorf("%w: player %s", ErrNotFound, tag)
	}
	return p, nil
}
