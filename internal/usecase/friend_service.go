package usecase

import (
	"context"
	"fmt"

	"github.com/battlelog/cr-tracker/internal/domain/friendship"
	"github.com/battlelog/cr-tracker/internal/domain/player"
)

type FriendService struct {
	players     player.Repository
	friendships friendship.Repository
}

func NewFriendService(players player.Repository, friendships friendship.Repository) *FriendService {
	return &FriendService{players: players, friendships: friendships}
}

// Link connects two registered players. The pair is stored sorted, so linking
// A to B and B to A lands on the same row.
func (s *FriendService) Link(ctx context.Context, rawTagA, rawTagB string) (friendship.Friendship, error) {
	ctx, span := startUsecaseSpan(ctx, "FriendService.Link")
	defer span.End()

	first, err := s.resolvePlayer(ctx, rawTagA)
	if err != nil {
		return friendship.Friendship{}, err
	}
	second, err := s.resolvePlayer(ctx, rawTagB)
	if err != nil {
		return friendship.Friendship{}, err
	}

	id1, id2, err := friendship.OrderPair(first.ID, second.ID)
	if err != nil {
		return friendship.Friendship{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	f, err := s.friendships.CreateOrGet(ctx, id1, id2)
	if err != nil {
		return friendship.Friendship{}, fmt.Errorf("link players %s and %s: %w", first.Tag, second.Tag, err)
	}
	return f, nil
}

func (s *FriendService) ListFriends(ctx context.Context, rawTag string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "FriendService.ListFriends")
	defer span.End()

	p, err := s.resolvePlayer(ctx, rawTag)
	if err != nil {
		return nil, err
	}

	friends, err := s.friendships.ListFriends(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("list friends tag=%s: %w", p.Tag, err)
	}
	return friends, nil
}

func (s *FriendService) resolvePlayer(ctx context.Context, rawTag string) (player.Player, error) {
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
