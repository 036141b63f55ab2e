// Package app contains application services and port definitions for the
// marketdata context.
package app

import (
	"context"
	"errors"

	"github.com/fmoreno/arbitrage-api/business/marketdata/domain"
	"github.com/fmoreno/arbitrage-api/internal/ref"
)

// ErrNotFound is returned by repositories when a record or one of its join
// targets does not exist. Services translate it into the public error codes.
var ErrNotFound = errors.New("record not found")

// ExchangeRepository persists exchanges.
type ExchangeRepository interface {
	Insert(ctx context.Context, e domain.Exchange) error
	Get(ctx context.Context, id ref.ID) (domain.Exchange, error)
	Update(ctx context.Context, e domain.Exchange) error
	Delete(ctx context.Context, id ref.ID) error
	List(ctx context.Context) ([]domain.Exchange, error)
}

// AssetRepository persists assets.
type AssetRepository interface {
	Insert(ctx context.Context, a domain.Asset) error
	Get(ctx context.Context, id ref.ID) (domain.Asset, error)
	Update(ctx context.Context, a domain.Asset) error
	Delete(ctx context.Context, id ref.ID) error
	List(ctx context.Context) ([]domain.Asset, error)
}

// PairRepository persists market pairs and resolves their joins. Populated
// reads exclude rows whose exchange or asset references are dangling, except
// GetPopulated which reports ErrNotFound.
type PairRepository interface {
	Insert(ctx context.Context, p domain.MarketPair) error
	Get(ctx context.Context, id ref.ID) (domain.MarketPair, error)
	Update(ctx context.Context, p domain.MarketPair) error
	Delete(ctx context.Context, id ref.ID) error

	GetPopulated(ctx context.Context, id ref.ID) (domain.PopulatedMarketPair, error)
	ListPopulated(ctx context.Context, f domain.PairFilter, limit, offset int) ([]domain.PopulatedMarketPair, error)
	CountPopulated(ctx context.Context, f domain.PairFilter) (int64, error)
	ListByExchange(ctx context.Context, exchangeID ref.ID) ([]domain.PopulatedMarketPair, error)

	// ListPopulatedByIDs returns the resolvable pairs among ids; dangling
	// references are simply absent from the result.
	ListPopulatedByIDs(ctx context.Context, ids []ref.ID) ([]domain.PopulatedMarketPair, error)

	// FindMatching returns the first pair on the exchange whose base ticker
	// equals baseSymbol and whose quote ticker is one of quoteSymbols, or nil.
	FindMatching(ctx context.Context, exchangeID ref.ID, baseSymbol string, quoteSymbols []string) (*domain.PopulatedMarketPair, error)

	// FindConversionBySymbols returns pairs whose legs match the two symbol
	// sets in either orientation.
	FindConversionBySymbols(ctx context.Context, symbols1, symbols2 []string) ([]domain.PopulatedMarketPair, error)

	// FindBridging returns pairs whose legs are exactly the two given assets,
	// in either orientation.
	FindBridging(ctx context.Context, asset1ID, asset2ID ref.ID) ([]domain.PopulatedMarketPair, error)
}
