package store

import (
	"context"

	"github.com/alfredjeanlab/listings/internal/model"
	"github.com/alfredjeanlab/listings/internal/query"
)

// Store defines the persistence interface for listings. It doubles as the
// query.Backend that builds filterable listing queries.
type Store interface {
	query.Backend

	// Listings
	CreateListing(ctx context.Context, listing *model.Listing) error
	GetListing(ctx context.Context, id string) (*model.Listing, error)

	// Places resolve location searches to coordinates.
	SetPlace(ctx context.Context, place *model.Place) error
	GetPlace(ctx context.Context, name string) (*model.Place, error)

	// Transaction support
	RunInTransaction(ctx context.Context, fn func(tx Store) error) error

	// Lifecycle
	Close() error
}
