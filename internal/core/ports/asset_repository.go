package ports

import (
	"context"

	"github.com/devboard/devboard-api/internal/core/domain"
)

// AssetRepository defines persistence for the key → URL asset mapping.
type AssetRepository interface {
	// Upsert creates the asset when the key is new, otherwise updates the
	// existing document. The returned flag reports whether a new document
	// was created.
	Upsert(ctx context.Context, asset *domain.Asset) (created bool, err error)
	FindByKey(ctx context.Context, key string) (*domain.Asset, error)
	List(ctx context.Context) ([]*domain.Asset, error)
	DeleteByKey(ctx context.Context, key string) error
}
