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

// ExchangeService manages exchange records. Deleting an exchange leaves any
// pairs and assets referencing it dangling; populated reads tolerate that.
type ExchangeService struct {
	exchanges ExchangeRepository
	log       logger.LoggerInterface
}

// NewExchangeService creates a new ExchangeService.
func NewExchangeService(exchanges ExchangeRepository, log logger.LoggerInterface) *ExchangeService {
	return &ExchangeService{exchanges: exchanges, log: log}
}

// Create stamps and persists a new exchange.
func (s *ExchangeService) Create(ctx context.Context, e domain.Exchange) (domain.Exchange, error) {
	if e.Name == "" || e.ShortName == "" {
		return domain.Exchange{}, apperror.Validation(apperror.CodeRequiredField, "exchange name and short_name")
	}

	now := time.Now().Unix()
	e.ID = ref.New()
	e.CreatedAt = now
	e.UpdatedAt = now

	if err := s.exchanges.Insert(ctx, e); err != nil {
		return domain.Exchange{}, apperror.Persist("insert exchange", err)
	}
	return s.Get(ctx, e.ID)
}

// Get returns one exchange.
func (s *ExchangeService) Get(ctx context.Context, id ref.ID) (domain.Exchange, error) {
	e, err := s.exchanges.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.Exchange{}, apperror.NotFound(apperror.CodeExchangeNotFound, id.Hex())
		}
		return domain.Exchange{}, apperror.Persist("fetch exchange", err)
	}
	return e, nil
}

// Update replaces the exchange's fields and refreshes updated_at.
func (s *ExchangeService) Update(ctx context.Context, id ref.ID, e domain.Exchange) (domain.Exchange, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return domain.Exchange{}, err
	}

	current.Name = e.Name
	current.ShortName = e.ShortName
	current.URL = e.URL
	current.UpdatedAt = time.Now().Unix()

	if err := s.exchanges.Update(ctx, current); err != nil {
		return domain.Exchange{}, apperror.Persist("update exchange", err)
	}
	return s.Get(ctx, id)
}

// Delete removes the exchange by id.
func (s *ExchangeService) Delete(ctx context.Context, id ref.ID) error {
	if err := s.exchanges.Delete(ctx, id); err != nil {
		return apperror.Persist("delete exchange", err)
	}
	return nil
}

// List returns all exchanges.
func (s *ExchangeService) List(ctx context.Context) ([]domain.Exchange, error) {
	list, err := s.exchanges.List(ctx)
	if err != nil {
		return nil, apperror.Persist("list exchanges", err)
	}
	return list, nil
}
