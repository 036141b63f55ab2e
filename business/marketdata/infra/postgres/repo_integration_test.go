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

	"github.com/fmoreno/arbitrage-api/business/marketdata/app"
	"github.com/fmoreno/arbitrage-api/business/marketdata/domain"
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

func truncate(t *testing.T, ctx context.Context) {
	t.Helper()
	_, err := pool.Exec(ctx, `TRUNCATE exchanges, assets, market_pairs, arbitrage_strategies`)
	require.NoError(t, err)
}

func seedExchange(t *testing.T, ctx context.Context, name string) domain.Exchange {
	t.Helper()
	now := time.Now().Unix()
	e := domain.Exchange{ID: ref.New(), Name: name, ShortName: name, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, NewExchangeRepo(pool).Insert(ctx, e))
	return e
}

func seedAsset(t *testing.T, ctx context.Context, exchangeID ref.ID, symbol string) domain.Asset {
	t.Helper()
	now := time.Now().Unix()
	a := domain.Asset{ID: ref.New(), ExchangeID: exchangeID, Name: symbol, ShortName: symbol, CreatedAt: now, UpdatedAt: now, Status: true}
	require.NoError(t, NewAssetRepo(pool).Insert(ctx, a))
	return a
}

func seedPair(t *testing.T, ctx context.Context, exchangeID, baseID, quoteID ref.ID) domain.MarketPair {
	t.Helper()
	now := time.Now().Unix()
	p := domain.MarketPair{ID: ref.New(), ExchangeID: exchangeID, BaseAssetID: baseID, QuoteAssetID: quoteID, CreatedAt: now, UpdatedAt: now, Status: true}
	require.NoError(t, NewPairRepo(pool).Insert(ctx, p))
	return p
}

func TestExchangeRepoRoundTrip(t *testing.T) {
	requirePool(t)
	ctx := context.Background()
	truncate(t, ctx)

	repo := NewExchangeRepo(pool)
	e := seedExchange(t, ctx, "binance")

	fetched, err := repo.Get(ctx, e.ID)
	require.NoError(t, err)
	require.Equal(t, e, fetched)

	fetched.Name = "Binance Global"
	require.NoError(t, repo.Update(ctx, fetched))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Binance Global", list[0].Name)

	require.NoError(t, repo.Delete(ctx, e.ID))
	_, err = repo.Get(ctx, e.ID)
	require.ErrorIs(t, err, app.ErrNotFound)
}

func TestPairRepoPopulatedJoins(t *testing.T) {
	requirePool(t)
	ctx := context.Background()
	truncate(t, ctx)

	repo := NewPairRepo(pool)
	binance := seedExchange(t, ctx, "binance")
	btc := seedAsset(t, ctx, binance.ID, "BTC")
	usdt := seedAsset(t, ctx, binance.ID, "USDT")

	pair := seedPair(t, ctx, binance.ID, btc.ID, usdt.ID)
	// dangling quote reference: never inserted
	broken := seedPair(t, ctx, binance.ID, btc.ID, ref.New())

	populated, err := repo.GetPopulated(ctx, pair.ID)
	require.NoError(t, err)
	require.Equal(t, binance.ID, populated.Exchange.ID)
	require.Equal(t, "BTC", populated.BaseAsset.ShortName)
	require.Equal(t, "USDT", populated.QuoteAsset.ShortName)

	_, err = repo.GetPopulated(ctx, broken.ID)
	require.ErrorIs(t, err, app.ErrNotFound)

	list, err := repo.ListPopulated(ctx, domain.PairFilter{}, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)

	total, err := repo.CountPopulated(ctx, domain.PairFilter{})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)

	// search filter hits quote ticker case-insensitively
	list, err = repo.ListPopulated(ctx, domain.PairFilter{Search: "usd"}, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)

	list, err = repo.ListPopulated(ctx, domain.PairFilter{Search: "xrp"}, 10, 0)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestPairRepoFindMatching(t *testing.T) {
	requirePool(t)
	ctx := context.Background()
	truncate(t, ctx)

	repo := NewPairRepo(pool)
	binance := seedExchange(t, ctx, "binance")
	kraken := seedExchange(t, ctx, "kraken")
	btcB := seedAsset(t, ctx, binance.ID, "BTC")
	usdtB := seedAsset(t, ctx, binance.ID, "USDT")
	btcK := seedAsset(t, ctx, kraken.ID, "BTC")
	usdcK := seedAsset(t, ctx, kraken.ID, "USDC")

	seedPair(t, ctx, binance.ID, btcB.ID, usdtB.ID)
	counterpart := seedPair(t, ctx, kraken.ID, btcK.ID, usdcK.ID)

	// quote matching is by symbol set, crossing the stablecoin class
	found, err := repo.FindMatching(ctx, kraken.ID, "BTC", []string{"USD", "USDT", "USDC"})
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, counterpart.ID, found.ID)

	found, err = repo.FindMatching(ctx, kraken.ID, "ETH", []string{"USD", "USDT", "USDC"})
	require.NoError(t, err)
	require.Nil(t, found)
}

func TestPairRepoConversionLookups(t *testing.T) {
	requirePool(t)
	ctx := context.Background()
	truncate(t, ctx)

	repo := NewPairRepo(pool)
	binance := seedExchange(t, ctx, "binance")
	usdt := seedAsset(t, ctx, binance.ID, "USDT")
	usdc := seedAsset(t, ctx, binance.ID, "USDC")
	btc := seedAsset(t, ctx, binance.ID, "BTC")

	conv := seedPair(t, ctx, binance.ID, usdt.ID, usdc.ID)
	seedPair(t, ctx, binance.ID, btc.ID, usdt.ID)

	// either orientation of the symbol sets finds the bridge
	list, err := repo.FindConversionBySymbols(ctx, []string{"USDC"}, []string{"USDT"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, conv.ID, list[0].ID)

	bridging, err := repo.FindBridging(ctx, usdc.ID, usdt.ID)
	require.NoError(t, err)
	require.Len(t, bridging, 1)
	require.Equal(t, conv.ID, bridging[0].ID)
}
