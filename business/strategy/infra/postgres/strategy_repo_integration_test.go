package postgres

import (
	"context"
	"flag"
	"log"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/fmoreno/arbitrage-api/business/strategy/app"
	"github.com/fmoreno/arbitrage-api/business/strategy/domain"
	"github.com/fmoreno/arbitrage-api/internal/database"
	"github.com/fmoreno/arbitrage-api/internal/ref"
)

var pool *pgxpool.Pool

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpassword",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(time.Minute),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		log.Fatalf("could not start postgres container: %s", err)
	}
	defer func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			log.Fatalf("could not stop postgres container: %s", err)
		}
	}()

	host, err := pgContainer.Host(ctx)
	if err != nil {
		log.Fatalf("could not get container host: %s", err)
	}
	port, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		log.Fatalf("could not get mapped port: %s", err)
	}

	connStr := "postgres://testuser:testpassword@" + host + ":" + port.Port() + "/testdb"
	pool, err = pgxpool.New(ctx, connStr)
	if err != nil {
		log.Fatalf("could not connect to database: %s", err)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("could not apply schema: %s", err)
	}

	os.Exit(m.Run())
}

func requirePool(t *testing.T) {
	t.Helper()
	if pool == nil {
		t.Skip("integration test requires docker")
	}
}

func seedStrategy(t *testing.T, ctx context.Context, repo *StrategyRepo, details domain.Details) domain.Strategy {
	t.Helper()
	now := time.Now().Unix()
	s := domain.Strategy{
		ID:            ref.New(),
		ArbitrageType: details.Kind(),
		Details:       details,
		CreatedAt:     now,
		UpdatedAt:     now,
		Status:        true,
	}
	require.NoError(t, repo.Insert(ctx, s))
	return s
}

func TestStrategyRepoRoundTrip(t *testing.T) {
	requirePool(t)
	ctx := context.Background()
	repo := NewStrategyRepo(pool)
	_, err := pool.Exec(ctx, `TRUNCATE arbitrage_strategies`)
	require.NoError(t, err)

	geo := seedStrategy(t, ctx, repo, domain.GeographicArbitrage{
		Pair1:          ref.New(),
		Pair2:          ref.New(),
		ConversionPair: ref.New(),
	})

	fetched, err := repo.Get(ctx, geo.ID)
	require.NoError(t, err)
	require.Equal(t, geo, fetched)

	fetched.Details = domain.TriangularArbitrage{Pair1: ref.New(), Pair2: ref.New(), Pair3: ref.New()}
	fetched.ArbitrageType = domain.TypeTriangular
	require.NoError(t, repo.Update(ctx, fetched))

	updated, err := repo.Get(ctx, geo.ID)
	require.NoError(t, err)
	require.Equal(t, domain.TypeTriangular, updated.ArbitrageType)
	require.IsType(t, domain.TriangularArbitrage{}, updated.Details)

	require.NoError(t, repo.Delete(ctx, geo.ID))
	_, err = repo.Get(ctx, geo.ID)
	require.ErrorIs(t, err, app.ErrNotFound)
}

func TestStrategyRepoListWithTypeFilter(t *testing.T) {
	requirePool(t)
	ctx := context.Background()
	repo := NewStrategyRepo(pool)
	_, err := pool.Exec(ctx, `TRUNCATE arbitrage_strategies`)
	require.NoError(t, err)

	seedStrategy(t, ctx, repo, domain.ExchangeArbitrage{Pair1: ref.New(), Pair2: ref.New()})
	tri := seedStrategy(t, ctx, repo, domain.TriangularArbitrage{Pair1: ref.New(), Pair2: ref.New(), Pair3: ref.New()})

	all, err := repo.List(ctx, nil, 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)

	filter := domain.TypeTriangular
	filtered, err := repo.List(ctx, &filter, 10, 0)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, tri.ID, filtered[0].ID)

	total, err := repo.Count(ctx, &filter)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
}
