// Package marketdata implements the reference-data bounded context:
// exchanges, assets and market pairs.
package marketdata

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fmoreno/arbitrage-api/business/marketdata/app"
	mddi "github.com/fmoreno/arbitrage-api/business/marketdata/di"
	"github.com/fmoreno/arbitrage-api/business/marketdata/infra/postgres"
	"github.com/fmoreno/arbitrage-api/business/marketdata/infra/rest"
	"github.com/fmoreno/arbitrage-api/internal/di"
	"github.com/fmoreno/arbitrage-api/internal/logger"
	"github.com/fmoreno/arbitrage-api/internal/monolith"
)

// Module wires the marketdata context into the monolith.
type Module struct{}

// RegisterServices builds the repositories and services and registers them
// with the DI container. The pair repository is also registered directly so
// the strategy context can search pairs without going through HTTP.
func (Module) RegisterServices(c di.Container) error {
	log := di.MustGet[logger.LoggerInterface](c, "logger")
	db := di.MustGet[*pgxpool.Pool](c, "db")

	pairRepo := postgres.NewPairRepo(db)

	c.Register(mddi.ExchangeService, app.NewExchangeService(postgres.NewExchangeRepo(db), log))
	c.Register(mddi.AssetService, app.NewAssetService(postgres.NewAssetRepo(db), log))
	c.Register(mddi.PairService, app.NewPairService(pairRepo, log))
	c.Register(mddi.PairRepository, pairRepo)
	return nil
}

// Startup mounts the context's routes.
func (Module) Startup(_ context.Context, m monolith.Monolith) error {
	handler := rest.NewHandler(
		di.MustGet[*app.ExchangeService](m.Services(), mddi.ExchangeService),
		di.MustGet[*app.AssetService](m.Services(), mddi.AssetService),
		di.MustGet[*app.PairService](m.Services(), mddi.PairService),
		m.Logger(),
	)
	handler.Register(m.Mux())
	return nil
}
