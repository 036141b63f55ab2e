package app

import (
	"fmt"

	"github.com/fmoreno/arbitrage-api/business/strategy/domain"
	"github.com/fmoreno/arbitrage-api/internal/apperror"
	"github.com/fmoreno/arbitrage-api/internal/ref"
)

// ValidateDetails checks the structural validity of strategy details before
// persistence. Referential existence is intentionally not checked here: a
// pair id may stop resolving at any time, so readers tolerate dangling
// references instead.
func ValidateDetails(details domain.Details) error {
	if details == nil {
		return apperror.Validation(apperror.CodeRequiredField, "details")
	}

	switch d := details.(type) {
	case domain.GeographicArbitrage:
		return checkRefs(d)
	case domain.ExchangeArbitrage:
		return checkRefs(d)
	case domain.TriangularArbitrage:
		if err := checkRefs(d); err != nil {
			return err
		}
		return checkDistinct(d)
	case domain.TradingPairArbitrage:
		if err := checkRefs(d); err != nil {
			return err
		}
		return checkDistinct(d)
	default:
		return apperror.Validation(apperror.CodeInvalidArbitrageType, fmt.Sprintf("%T", details))
	}
}

func checkRefs(d domain.Details) error {
	for _, id := range d.PairRefs() {
		if id.IsZero() {
			return apperror.Validation(apperror.CodeInvalidReference, string(d.Kind()))
		}
	}
	return nil
}

func checkDistinct(d domain.Details) error {
	seen := make(map[ref.ID]struct{}, 3)
	for _, id := range d.PairRefs() {
		if _, dup := seen[id]; dup {
			return apperror.Validation(apperror.CodeDuplicatePair, string(d.Kind()))
		}
		seen[id] = struct{}{}
	}
	return nil
}
