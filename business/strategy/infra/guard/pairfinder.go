// Package guard wraps the suggestion engine's store searches in a circuit
// breaker so a misbehaving database sheds scan load instead of piling it up.
package guard

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"

	mdDomain "github.com/fmoreno/arbitrage-api/business/marketdata/domain"
	"github.com/fmoreno/arbitrage-api/business/strategy/app"
	"github.com/fmoreno/arbitrage-api/internal/apperror"
	"github.com/fmoreno/arbitrage-api/internal/logger"
	"github.com/fmoreno/arbitrage-api/internal/ref"
)

// PairFinder decorates an app.PairFinder with a shared circuit breaker.
type PairFinder struct {
	next app.PairFinder
	cb   *gobreaker.CircuitBreaker[any]
}

// NewPairFinder creates a guarded PairFinder. The breaker opens after five
// consecutive failures and probes again after thirty seconds.
func NewPairFinder(next app.PairFinder, log logger.LoggerInterface) *PairFinder {
	settings := gobreaker.Settings{
		Name:        "pair-finder",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn(context.Background(), "circuit breaker state change",
				"breaker", name, "from", from.String(), "to", to.String())
		},
	}
	return &PairFinder{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[any](settings),
	}
}

func (g *PairFinder) ListByExchange(ctx context.Context, exchangeID ref.ID) ([]mdDomain.PopulatedMarketPair, error) {
	out, err := g.cb.Execute(func() (any, error) {
		return g.next.ListByExchange(ctx, exchangeID)
	})
	if err != nil {
		return nil, mapBreakerErr(err)
	}
	return out.([]mdDomain.PopulatedMarketPair), nil
}

func (g *PairFinder) FindMatching(ctx context.Context, exchangeID ref.ID, baseSymbol string, quoteSymbols []string) (*mdDomain.PopulatedMarketPair, error) {
	out, err := g.cb.Execute(func() (any, error) {
		return g.next.FindMatching(ctx, exchangeID, baseSymbol, quoteSymbols)
	})
	if err != nil {
		return nil, mapBreakerErr(err)
	}
	return out.(*mdDomain.PopulatedMarketPair), nil
}

func (g *PairFinder) FindConversionBySymbols(ctx context.Context, symbols1, symbols2 []string) ([]mdDomain.PopulatedMarketPair, error) {
	out, err := g.cb.Execute(func() (any, error) {
		return g.next.FindConversionBySymbols(ctx, symbols1, symbols2)
	})
	if err != nil {
		return nil, mapBreakerErr(err)
	}
	return out.([]mdDomain.PopulatedMarketPair), nil
}

func mapBreakerErr(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return apperror.New(apperror.CodeCircuitOpen, apperror.WithContext("pair search"), apperror.WithCause(err))
	}
	return err
}
