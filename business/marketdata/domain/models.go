// Package domain contains the reference-data entities: exchanges, assets and
// the market pairs that link them.
package domain

import "github.com/fmoreno/arbitrage-api/internal/ref"

// Exchange is a trading venue. Assets and market pairs reference it by id.
type Exchange struct {
	ID        ref.ID `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	URL       string `json:"url"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

// Asset is a currency listed on one exchange. ShortName is the ticker symbol
// ("USDT"); it is not globally unique and matching is always by value.
type Asset struct {
	ID         ref.ID `json:"id"`
	ExchangeID ref.ID `json:"exchange_id"`
	Name       string `json:"name"`
	ShortName  string `json:"short_name"`
	CreatedAt  int64  `json:"created_at"`
	UpdatedAt  int64  `json:"updated_at"`
	Status     bool   `json:"status"`
}

// MarketPair is a tradable pair on one exchange. References are weak: nothing
// prevents the exchange or an asset from being deleted underneath a pair.
type MarketPair struct {
	ID           ref.ID `json:"id"`
	ExchangeID   ref.ID `json:"exchange_id"`
	BaseAssetID  ref.ID `json:"base_asset_id"`
	QuoteAssetID ref.ID `json:"quote_asset_id"`
	CreatedAt    int64  `json:"created_at"`
	UpdatedAt    int64  `json:"updated_at"`
	Status       bool   `json:"status"`
}

// PopulatedMarketPair is the read-only projection of a MarketPair with every
// reference expanded. Never persisted; computed on read via join.
type PopulatedMarketPair struct {
	ID         ref.ID   `json:"id"`
	Exchange   Exchange `json:"exchange"`
	BaseAsset  Asset    `json:"base_asset"`
	QuoteAsset Asset    `json:"quote_asset"`
	CreatedAt  int64    `json:"created_at"`
	UpdatedAt  int64    `json:"updated_at"`
	Status     bool     `json:"status"`
}

// PairFilter narrows pair listings. Zero values disable a criterion. Search
// matches base or quote ticker case-insensitively as a substring.
type PairFilter struct {
	ExchangeID ref.ID
	Search     string
}
