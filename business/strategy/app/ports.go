// Package app contains application services and port definitions for the
// strategy context.
package app

import (
	"context"
	"errors"

	mdDomain "github.com/fmoreno/arbitrage-api/business/marketdata/domain"
	"github.com/fmoreno/arbitrage-api/business/strategy/domain"
	"github.com/fmoreno/arbitrage-api/internal/ref"
)

// ErrNotFound is returned by repositories when a strategy does not exist.
var ErrNotFound = errors.New("record not found")

// StrategyRepository persists arbitrage strategies.
type StrategyRepository interface {
	Insert(ctx context.Context, s domain.Strategy) error
	Get(ctx context.Context, id ref.ID) (domain.Strategy, error)
	Update(ctx context.Context, s domain.Strategy) error
	Delete(ctx context.Context, id ref.ID) error
	List(ctx context.Context, typeFilter *domain.ArbitrageType, limit, offset int) ([]domain.Strategy, error)
	Count(ctx context.Context, typeFilter *domain.ArbitrageType) (int64, error)
}

// PairResolver batch-resolves pair references for population. The marketdata
// pair repository satisfies this.
type PairResolver interface {
	// ListPopulatedByIDs returns the resolvable pairs among ids; dangling
	// references are simply absent from the result.
	ListPopulatedByIDs(ctx context.Context, ids []ref.ID) ([]mdDomain.PopulatedMarketPair, error)
}

// PairFinder runs the equivalence-aware pair searches the suggestion engine
// needs. Each call is a fresh store query; nothing is cached in process.
type PairFinder interface {
	ListByExchange(ctx context.Context, exchangeID ref.ID) ([]mdDomain.PopulatedMarketPair, error)
	FindMatching(ctx context.Context, exchangeID ref.ID, baseSymbol string, quoteSymbols []string) (*mdDomain.PopulatedMarketPair, error)
	FindConversionBySymbols(ctx context.Context, symbols1, symbols2 []string) ([]mdDomain.PopulatedMarketPair, error)
}
