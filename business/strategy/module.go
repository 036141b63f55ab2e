// Package strategy implements the arbitrage-strategy bounded context: the
// strategy store and the suggestion engine.
package strategy

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	mddi "github.com/fmoreno/arbitrage-api/business/marketdata/di"
	mdpg "github.com/fmoreno/arbitrage-api/business/marketdata/infra/postgres"
	"github.com/fmoreno/arbitrage-api/business/strategy/app"
	stdi "github.com/fmoreno/arbitrage-api/business/strategy/di"
	"github.com/fmoreno/arbitrage-api/business/strategy/infra/guard"
	"github.com/fmoreno/arbitrage-api/business/strategy/infra/postgres"
	"github.com/fmoreno/arbitrage-api/business/strategy/infra/rest"
	"github.com/fmoreno/arbitrage-api/internal/config"
	"github.com/fmoreno/arbitrage-api/internal/di"
	"github.com/fmoreno/arbitrage-api/internal/logger"
	"github.com/fmoreno/arbitrage-api/internal/monolith"
)

// Module wires the strategy context into the monolith. It depends on the
// marketdata context's pair repository for reference lookups.
type Module struct{}

// RegisterServices builds the strategy store service and the suggestion
// engine. Suggestion searches go through a circuit breaker so a failing
// store sheds scan load.
func (Module) RegisterServices(c di.Container) error {
	log := di.MustGet[logger.LoggerInterface](c, "logger")
	cfg := di.MustGet[*config.Config](c, "config")
	db := di.MustGet[*pgxpool.Pool](c, "db")
	pairs := di.MustGet[*mdpg.PairRepo](c, mddi.PairRepository)

	repo := postgres.NewStrategyRepo(db)
	c.Register(stdi.StrategyService, app.NewStrategyService(repo, pairs, log))
	c.Register(stdi.Suggester, app.NewSuggester(
		guard.NewPairFinder(pairs, log),
		log,
		cfg.Suggestion.ScanRatePerSecond,
		cfg.Suggestion.ScanBurst,
		cfg.Suggestion.MaxPairsPerExchange,
	))
	return nil
}

// Startup mounts the context's routes.
func (Module) Startup(_ context.Context, m monolith.Monolith) error {
	handler := rest.NewHandler(
		di.MustGet[*app.StrategyService](m.Services(), stdi.StrategyService),
		di.MustGet[*app.Suggester](m.Services(), stdi.Suggester),
		m.Logger(),
	)
	handler.Register(m.Mux())
	return nil
}
