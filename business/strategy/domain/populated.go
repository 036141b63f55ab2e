package domain

import (
	"encoding/json"

	mdDomain "github.com/fmoreno/arbitrage-api/business/marketdata/domain"
	"github.com/fmoreno/arbitrage-api/internal/ref"
)

// PopulatedDetails mirrors Details with every pair reference expanded to its
// populated projection. Output-only; never decoded.
type PopulatedDetails interface {
	Kind() ArbitrageType
	sealedPopulated()
}

// PopulatedGeographic is a geographic payload with expanded pairs.
type PopulatedGeographic struct {
	Pair1          mdDomain.PopulatedMarketPair `json:"pair1"`
	Pair2          mdDomain.PopulatedMarketPair `json:"pair2"`
	ConversionPair mdDomain.PopulatedMarketPair `json:"conversion_pair"`
}

func (PopulatedGeographic) Kind() ArbitrageType { return TypeGeographic }
func (PopulatedGeographic) sealedPopulated()    {}

// PopulatedExchange is an exchange payload with expanded pairs.
type PopulatedExchange struct {
	Pair1 mdDomain.PopulatedMarketPair `json:"pair1"`
	Pair2 mdDomain.PopulatedMarketPair `json:"pair2"`
}

func (PopulatedExchange) Kind() ArbitrageType { return TypeExchange }
func (PopulatedExchange) sealedPopulated()    {}

// PopulatedTriangular is a triangular payload with expanded pairs.
type PopulatedTriangular struct {
	Pair1 mdDomain.PopulatedMarketPair `json:"pair1"`
	Pair2 mdDomain.PopulatedMarketPair `json:"pair2"`
	Pair3 mdDomain.PopulatedMarketPair `json:"pair3"`
}

func (PopulatedTriangular) Kind() ArbitrageType { return TypeTriangular }
func (PopulatedTriangular) sealedPopulated()    {}

// PopulatedTradingPair is a trading-pair payload with expanded pairs.
type PopulatedTradingPair struct {
	Pair1 mdDomain.PopulatedMarketPair `json:"pair1"`
	Pair2 mdDomain.PopulatedMarketPair `json:"pair2"`
	Pair3 mdDomain.PopulatedMarketPair `json:"pair3"`
}

func (PopulatedTradingPair) Kind() ArbitrageType { return TypeTradingPair }
func (PopulatedTradingPair) sealedPopulated()    {}

// PopulatedStrategy is the read projection of a Strategy with joined pairs.
type PopulatedStrategy struct {
	ID            ref.ID
	ArbitrageType ArbitrageType
	Details       PopulatedDetails
	CreatedAt     int64
	UpdatedAt     int64
	Status        bool
}

// MarshalJSON encodes the populated details under the variant name, matching
// the Strategy wire shape.
func (s PopulatedStrategy) MarshalJSON() ([]byte, error) {
	payload, err := json.Marshal(s.Details)
	if err != nil {
		return nil, err
	}

	return json.Marshal(struct {
		ID            ref.ID                     `json:"id"`
		ArbitrageType ArbitrageType              `json:"arbitrage_type"`
		Details       map[string]json.RawMessage `json:"details"`
		CreatedAt     int64                      `json:"created_at"`
		UpdatedAt     int64                      `json:"updated_at"`
		Status        bool                       `json:"status"`
	}{
		ID:            s.ID,
		ArbitrageType: s.ArbitrageType,
		Details:       map[string]json.RawMessage{string(s.Details.Kind()): payload},
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
		Status:        s.Status,
	})
}
