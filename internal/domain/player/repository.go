package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	// CreateOrGet inserts the player if the tag is unseen, otherwise returns
	// the existing row. Never errors on a duplicate tag.
	CreateOrGet(ctx context.Context, p Player) (Player, error)
	GetByTag(ctx context.Context, tag string) (Player, bool, error)
	ListAll(ctx context.Context) ([]Player, error)
}
