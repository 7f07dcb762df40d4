package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/devboard/devboard-api/internal/core/domain"
	"github.com/devboard/devboard-api/internal/core/ports"
)

// AssetService implements the key → URL asset mapping with upsert semantics.
type AssetService struct {
	repo ports.AssetRepository
	log  zerolog.Logger
}

func NewAssetService(repo ports.AssetRepository, log zerolog.Logger) *AssetService {
	return &AssetService{repo: repo, log: log}
}

func (s *AssetService) Upsert(ctx context.Context, key string, in ports.UpsertAssetInput) (*domain.Asset, bool, error) {
	now := time.Now().UTC()
	asset := &domain.Asset{
		Key:       key,
		URL:       in.URL,
		Alt:       in.Alt,
		UpdatedAt: now,
	}

	created, err := s.repo.Upsert(ctx, asset)
	if err != nil {
		return nil, false, err
	}

	stored, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		return nil, false, err
	}

	s.log.Info().Str("key", key).Bool("created", created).Msg("asset upserted")
	return stored, created, nil
}

func (s *AssetService) GetByKey(ctx context.Context, key string) (*domain.Asset, error) {
	return s.repo.FindByKey(ctx, key)
}

func (s *AssetService) List(ctx context.Context) ([]*domain.Asset, error) {
	return s.repo.List(ctx)
}

func (s *AssetService) Delete(ctx context.Context, key string) error {
	return s.repo.DeleteByKey(ctx, key)
}
