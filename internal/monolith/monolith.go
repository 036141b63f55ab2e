// Package monolith provides the application container and module interface.
package monolith

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fmoreno/arbitrage-api/internal/config"
	"github.com/fmoreno/arbitrage-api/internal/database"
	"github.com/fmoreno/arbitrage-api/internal/di"
	"github.com/fmoreno/arbitrage-api/internal/logger"
)

// Monolith is the main application container providing access to shared infrastructure.
type Monolith interface {
	Config() *config.Config
	Logger() logger.LoggerInterface
	DB() *pgxpool.Pool
	Mux() *http.ServeMux
	Services() di.ServiceRegistry
}

// Module represents a bounded context module that can register services and start up.
type Module interface {
	RegisterServices(di.Container) error
	Startup(context.Context, Monolith) error
}

// app implements the Monolith interface.
type app struct {
	config    *config.Config
	logger    logger.LoggerInterface
	db        *pgxpool.Pool
	mux       *http.ServeMux
	container di.Container
}

// New creates a new Monolith instance with a live database pool.
func New(ctx context.Context, cfg *config.Config, log logger.LoggerInterface) (*app, error) {
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := database.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	container := di.NewContainer()

	// Register global services
	container.Register("config", cfg)
	container.Register("logger", log)
	container.Register("db", pool)

	return &app{
		config:    cfg,
		logger:    log,
		db:        pool,
		mux:       http.NewServeMux(),
		container: container,
	}, nil
}

func (a *app) Config() *config.Config {
	return a.config
}

func (a *app) Logger() logger.LoggerInterface {
	return a.logger
}

func (a *app) DB() *pgxpool.Pool {
	return a.db
}

func (a *app) Mux() *http.ServeMux {
	return a.mux
}

func (a *app) Services() di.ServiceRegistry {
	return a.container
}

// RegisterModules registers all provided modules.
func (a *app) RegisterModules(modules ...Module) error {
	for _, m := range modules {
		if err := m.RegisterServices(a.container); err != nil {
			return err
		}
	}
	return nil
}

// StartModules starts all provided modules.
func (a *app) StartModules(ctx context.Context, modules ...Module) error {
	for _, m := range modules {
		if err := m.Startup(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// Close closes all resources.
func (a *app) Close() error {
	if a.db != nil {
		a.db.Close()
	}
	return nil
}
