package repository

import (
	"context"

	"github.com/iliyamo/glassview/internal/model"
)

// InventoryFilter is an equality conjunction.  Nil fields do not filter.
type InventoryFilter struct {
	UserID     *int64
	LocationID *int64
}

// UserStore holds user identities.  Only the relational store keeps users.
type UserStore interface {
	Create(ctx context.Context, u model.User) (model.User, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
}

// LocationStore is the contract both location stores satisfy.  Update
// writes the full record; merging a patch is the caller's job.
type LocationStore interface {
	Create(ctx context.Context, l model.Location) (model.Location, error)
	Get(ctx context.Context, id string) (model.Location, error)
	List(ctx context.Context) ([]model.Location, error)
	Update(ctx context.Context, id string, l model.Location) (model.Location, error)
	Delete(ctx context.Context, id string) error
}

// InventoryStore is the contract both inventory stores satisfy.
type InventoryStore interface {
	Create(ctx context.Context, inv model.Inventory) (model.Inventory, error)
	Get(ctx context.Context, id string) (model.Inventory, error)
	List(ctx context.Context, f InventoryFilter) ([]model.Inventory, error)
	Update(ctx context.Context, id string, inv model.Inventory) (model.Inventory, error)
	Delete(ctx context.Context, id string) error
}
