// Package domain contains the arbitrage strategy model: the four strategy
// kinds, the tagged details union and its wire encoding.
package domain

import (
	"encoding/json"
	"fmt"

	"github.com/fmoreno/arbitrage-api/internal/ref"
)

// ArbitrageType classifies a strategy.
type ArbitrageType string

// The four strategy kinds.
const (
	TypeGeographic  ArbitrageType = "Geographic"
	TypeExchange    ArbitrageType = "Exchange"
	TypeTriangular  ArbitrageType = "Triangular"
	TypeTradingPair ArbitrageType = "TradingPair"
)

// ParseArbitrageType validates a type string from the wire.
func ParseArbitrageType(s string) (ArbitrageType, bool) {
	switch ArbitrageType(s) {
	case TypeGeographic, TypeExchange, TypeTriangular, TypeTradingPair:
		return ArbitrageType(s), true
	}
	return "", false
}

// Details is the tagged payload of a strategy. Exactly one concrete variant
// exists per ArbitrageType; every consumer switches exhaustively so a fifth
// kind cannot be added without touching each handler.
type Details interface {
	Kind() ArbitrageType
	// PairRefs returns the pair references in declaration order.
	PairRefs() []ref.ID
	sealed()
}

// GeographicArbitrage trades the same nominal pair on two exchanges, with a
// conversion pair bridging the differing quote currencies.
type GeographicArbitrage struct {
	Pair1          ref.ID `json:"pair1"`
	Pair2          ref.ID `json:"pair2"`
	ConversionPair ref.ID `json:"conversion_pair"`
}

func (GeographicArbitrage) Kind() ArbitrageType { return TypeGeographic }
func (d GeographicArbitrage) PairRefs() []ref.ID {
	return []ref.ID{d.Pair1, d.Pair2, d.ConversionPair}
}
func (GeographicArbitrage) sealed() {}

// ExchangeArbitrage trades the same nominal pair on two exchanges directly.
type ExchangeArbitrage struct {
	Pair1 ref.ID `json:"pair1"`
	Pair2 ref.ID `json:"pair2"`
}

func (ExchangeArbitrage) Kind() ArbitrageType  { return TypeExchange }
func (d ExchangeArbitrage) PairRefs() []ref.ID { return []ref.ID{d.Pair1, d.Pair2} }
func (ExchangeArbitrage) sealed()              {}

// TriangularArbitrage cycles through three pairs, typically on one exchange.
type TriangularArbitrage struct {
	Pair1 ref.ID `json:"pair1"`
	Pair2 ref.ID `json:"pair2"`
	Pair3 ref.ID `json:"pair3"`
}

func (TriangularArbitrage) Kind() ArbitrageType  { return TypeTriangular }
func (d TriangularArbitrage) PairRefs() []ref.ID { return []ref.ID{d.Pair1, d.Pair2, d.Pair3} }
func (TriangularArbitrage) sealed()              {}

// TradingPairArbitrage shares the triangular shape but is a distinct
// classification.
type TradingPairArbitrage struct {
	Pair1 ref.ID `json:"pair1"`
	Pair2 ref.ID `json:"pair2"`
	Pair3 ref.ID `json:"pair3"`
}

func (TradingPairArbitrage) Kind() ArbitrageType  { return TypeTradingPair }
func (d TradingPairArbitrage) PairRefs() []ref.ID { return []ref.ID{d.Pair1, d.Pair2, d.Pair3} }
func (TradingPairArbitrage) sealed()              {}

// Strategy is a persisted arbitrage strategy. A draft emitted by the
// suggestion engine has a zero id and zero timestamps until it is submitted.
type Strategy struct {
	ID            ref.ID
	ArbitrageType ArbitrageType
	Details       Details
	CreatedAt     int64
	UpdatedAt     int64
	Status        bool
}

// strategyWire is the JSON shape. Details encode keyed by the variant name,
// e.g. {"Geographic": {"pair1": ...}}.
type strategyWire struct {
	ID            ref.ID                     `json:"id"`
	ArbitrageType ArbitrageType              `json:"arbitrage_type"`
	Details       map[string]json.RawMessage `json:"details"`
	CreatedAt     int64                      `json:"created_at"`
	UpdatedAt     int64                      `json:"updated_at"`
	Status        bool                       `json:"status"`
}

// MarshalJSON encodes the details payload under its variant name.
func (s Strategy) MarshalJSON() ([]byte, error) {
	wire := strategyWire{
		ID:            s.ID,
		ArbitrageType: s.ArbitrageType,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
		Status:        s.Status,
	}

	if s.Details != nil {
		payload, err := json.Marshal(s.Details)
		if err != nil {
			return nil, err
		}
		wire.Details = map[string]json.RawMessage{string(s.Details.Kind()): payload}
	}

	return json.Marshal(wire)
}

// UnmarshalJSON decodes the variant selected by arbitrage_type, rejecting a
// details payload keyed under a different variant name.
func (s *Strategy) UnmarshalJSON(data []byte) error {
	var wire strategyWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	if _, ok := ParseArbitrageType(string(wire.ArbitrageType)); !ok {
		return fmt.Errorf("unknown arbitrage type %q", wire.ArbitrageType)
	}

	details, err := decodeDetails(wire.ArbitrageType, wire.Details)
	if err != nil {
		return err
	}

	s.ID = wire.ID
	s.ArbitrageType = wire.ArbitrageType
	s.Details = details
	s.CreatedAt = wire.CreatedAt
	s.UpdatedAt = wire.UpdatedAt
	s.Status = wire.Status
	return nil
}

func decodeDetails(typ ArbitrageType, raw map[string]json.RawMessage) (Details, error) {
	payload, ok := raw[string(typ)]
	if !ok {
		return nil, fmt.Errorf("details payload missing variant %q", typ)
	}

	var (
		details Details
		err     error
	)
	switch typ {
	case TypeGeographic:
		var d GeographicArbitrage
		err = json.Unmarshal(payload, &d)
		details = d
	case TypeExchange:
		var d ExchangeArbitrage
		err = json.Unmarshal(payload, &d)
		details = d
	case TypeTriangular:
		var d TriangularArbitrage
		err = json.Unmarshal(payload, &d)
		details = d
	case TypeTradingPair:
		var d TradingPairArbitrage
		err = json.Unmarshal(payload, &d)
		details = d
	default:
		return nil, fmt.Errorf("unknown arbitrage type %q", typ)
	}
	if err != nil {
		return nil, err
	}
	return details, nil
}

// DecodeDetails decodes a bare variant payload (without the variant-name
// wrapper) for the given type. Used by the storage layer, which already
// persists the type tag in its own column.
func DecodeDetails(typ ArbitrageType, payload []byte) (Details, error) {
	return decodeDetails(typ, map[string]json.RawMessage{string(typ): payload})
}
