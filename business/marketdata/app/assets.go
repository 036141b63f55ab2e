package app

import (
	"context"
	"errors"
	"time"

	"github.com/fmoreno/arbitrage-api/business/marketdata/domain"
	"github.com/fmoreno/arbitrage-api/internal/apperror"
	"github.com/fmoreno/arbitrage-api/internal/logger"
	"github.com/fmoreno/arbitrage-api/internal/ref"
)

// AssetService manages asset records.
type AssetService struct {
	assets AssetRepository
	log    logger.LoggerInterface
}

// NewAssetService creates a new AssetService.
func NewAssetService(assets AssetRepository, log logger.LoggerInterface) *AssetService {
	return &AssetService{assets: assets, log: log}
}

// Create stamps and persists a new asset.
func (s *AssetService) Create(ctx context.Context, a domain.Asset) (domain.Asset, error) {
	if a.ShortName == "" {
		return domain.Asset{}, apperror.Validation(apperror.CodeRequiredField, "asset short_name")
	}
	if a.ExchangeID.IsZero() {
		return domain.Asset{}, apperror.Validation(apperror.CodeInvalidReference, "asset exchange_id")
	}

	now := time.Now().Unix()
	a.ID = ref.New()
	a.CreatedAt = now
	a.UpdatedAt = now

	if err := s.assets.Insert(ctx, a); err != nil {
		return domain.Asset{}, apperror.Persist("insert asset", err)
	}
	return s.Get(ctx, a.ID)
}

// Get returns one asset.
func (s *AssetService) Get(ctx context.Context, id ref.ID) (domain.Asset, error) {
	a, err := s.assets.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.Asset{}, apperror.NotFound(apperror.CodeAssetNotFound, id.Hex())
		}
		return domain.Asset{}, apperror.Persist("fetch asset", err)
	}
	return a, nil
}

// Update replaces the asset's fields and refreshes updated_at.
func (s *AssetService) Update(ctx context.Context, id ref.ID, a domain.Asset) (domain.Asset, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return domain.Asset{}, err
	}

	current.ExchangeID = a.ExchangeID
	current.Name = a.Name
	current.ShortName = a.ShortName
	current.Status = a.Status
	current.UpdatedAt = time.Now().Unix()

	if err := s.assets.Update(ctx, current); err != nil {
		return domain.Asset{}, apperror.Persist("update asset", err)
	}
	return s.Get(ctx, id)
}

// Delete removes the asset by id.
func (s *AssetService) Delete(ctx context.Context, id ref.ID) error {
	if err := s.assets.Delete(ctx, id); err != nil {
		return apperror.Persist("delete asset", err)
	}
	return nil
}

// List returns all assets.
func (s *AssetService) List(ctx context.Context) ([]domain.Asset, error) {
	list, err := s.assets.List(ctx)
	if err != nil {
		return nil, apperror.Persist("list assets", err)
	}
	return list, nil
}
