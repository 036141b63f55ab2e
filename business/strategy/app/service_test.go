package app

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	mdDomain "github.com/fmoreno/arbitrage-api/business/marketdata/domain"
	"github.com/fmoreno/arbitrage-api/business/strategy/domain"
	"github.com/fmoreno/arbitrage-api/internal/apperror"
	"github.com/fmoreno/arbitrage-api/internal/ref"
)

func newTestService() (*StrategyService, *fakeStrategyRepo, *fakePairStore) {
	repo := newFakeStrategyRepo()
	pairs := &fakePairStore{}
	return NewStrategyService(repo, pairs, discardLogger()), repo, pairs
}

func TestStrategyServiceCreate(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.Strategy{
		ArbitrageType: domain.TypeGeographic,
		Details:       domain.GeographicArbitrage{Pair1: pairA, Pair2: pairB, ConversionPair: pairC},
		Status:        true,
	})
	require.NoError(t, err)
	require.False(t, created.ID.IsZero())
	require.NotZero(t, created.CreatedAt)
	require.Equal(t, created.CreatedAt, created.UpdatedAt)
	require.True(t, created.Status)

	stored, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, stored)
}

func TestStrategyServiceCreateRejectsInvalidDetails(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.Strategy{
		ArbitrageType: domain.TypeTriangular,
		Details:       domain.TriangularArbitrage{Pair1: pairA, Pair2: pairA, Pair3: pairB},
	})
	require.Equal(t, apperror.CodeDuplicatePair, apperror.GetCode(err))
	require.Empty(t, repo.order)

	_, err = svc.Create(ctx, domain.Strategy{ArbitrageType: domain.TypeGeographic})
	require.Equal(t, apperror.CodeRequiredField, apperror.GetCode(err))
}

func TestStrategyServiceCreateRejectsTypeMismatch(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(context.Background(), domain.Strategy{
		ArbitrageType: domain.TypeExchange,
		Details:       domain.GeographicArbitrage{Pair1: pairA, Pair2: pairB, ConversionPair: pairC},
	})
	require.Equal(t, apperror.CodeInvalidArbitrageType, apperror.GetCode(err))
}

func TestStrategyServiceGetNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Get(context.Background(), ref.MustParse("000000000000000000000001"))
	require.Equal(t, apperror.CodeStrategyNotFound, apperror.GetCode(err))
	require.Equal(t, http.StatusNotFound, apperror.StatusOf(err))
}

func TestStrategyServiceUpdate(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.Strategy{
		ArbitrageType: domain.TypeExchange,
		Details:       domain.ExchangeArbitrage{Pair1: pairA, Pair2: pairB},
		Status:        true,
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, domain.Strategy{
		ArbitrageType: domain.TypeTriangular,
		Details:       domain.TriangularArbitrage{Pair1: pairA, Pair2: pairB, Pair3: pairC},
		Status:        false,
	})
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, domain.TypeTriangular, updated.ArbitrageType)
	require.Equal(t, created.CreatedAt, updated.CreatedAt)
	require.GreaterOrEqual(t, updated.UpdatedAt, created.UpdatedAt)
	require.False(t, updated.Status)

	// updates revalidate like creates
	_, err = svc.Update(ctx, created.ID, domain.Strategy{
		ArbitrageType: domain.TypeTriangular,
		Details:       domain.TriangularArbitrage{Pair1: pairA, Pair2: pairA, Pair3: pairC},
	})
	require.Equal(t, apperror.CodeDuplicatePair, apperror.GetCode(err))
}

func TestStrategyServiceUpdateNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Update(context.Background(), ref.MustParse("000000000000000000000002"), domain.Strategy{
		ArbitrageType: domain.TypeExchange,
		Details:       domain.ExchangeArbitrage{Pair1: pairA, Pair2: pairB},
	})
	require.Equal(t, apperror.CodeStrategyNotFound, apperror.GetCode(err))
}

func TestStrategyServiceDelete(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.Strategy{
		ArbitrageType: domain.TypeExchange,
		Details:       domain.ExchangeArbitrage{Pair1: pairA, Pair2: pairB},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = repo.Get(ctx, created.ID)
	require.ErrorIs(t, err, ErrNotFound)

	// deleting again is not an error
	require.NoError(t, svc.Delete(ctx, created.ID))
}

func TestStrategyServiceListPopulated(t *testing.T) {
	svc, _, pairs := newTestService()
	ctx := context.Background()

	exchange := ref.MustParse("66f1a2b3c4d5e6f708190e01")
	pairs.pairs = []mdDomain.PopulatedMarketPair{
		populatedPair(pairA, exchange, "BTC", "USDT"),
		populatedPair(pairB, exchange, "ETH", "USDT"),
		populatedPair(pairC, exchange, "USDT", "USDC"),
	}
	dangling := ref.MustParse("66f1a2b3c4d5e6f708192aff")

	geo, err := svc.Create(ctx, domain.Strategy{
		ArbitrageType: domain.TypeGeographic,
		Details:       domain.GeographicArbitrage{Pair1: pairA, Pair2: pairB, ConversionPair: pairC},
		Status:        true,
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.Strategy{
		ArbitrageType: domain.TypeExchange,
		Details:       domain.ExchangeArbitrage{Pair1: pairA, Pair2: dangling},
	})
	require.NoError(t, err)

	tri, err := svc.Create(ctx, domain.Strategy{
		ArbitrageType: domain.TypeTriangular,
		Details:       domain.TriangularArbitrage{Pair1: pairA, Pair2: pairB, Pair3: pairC},
	})
	require.NoError(t, err)

	// the strategy with a dangling reference is dropped from the page but
	// still counted
	page, total, err := svc.ListPopulated(ctx, 1, 10, nil)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, page, 2)
	require.Equal(t, geo.ID, page[0].ID)
	require.Equal(t, tri.ID, page[1].ID)

	details, ok := page[0].Details.(domain.PopulatedGeographic)
	require.True(t, ok)
	require.Equal(t, "BTC", details.Pair1.BaseAsset.ShortName)
	require.Equal(t, "USDC", details.ConversionPair.QuoteAsset.ShortName)

	// type filter narrows both the page and the count
	filter := domain.TypeTriangular
	page, total, err = svc.ListPopulated(ctx, 1, 10, &filter)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, page, 1)
	require.Equal(t, tri.ID, page[0].ID)

	// pages past the end are empty, not an error
	page, total, err = svc.ListPopulated(ctx, 5, 10, nil)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Empty(t, page)

	// page and perPage are normalized, not rejected
	page, _, err = svc.ListPopulated(ctx, 0, 0, nil)
	require.NoError(t, err)
	require.Len(t, page, 2)
}

func TestStrategyServiceListPopulatedStoreFailure(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.failAll = errors.New("connection reset")

	_, _, err := svc.ListPopulated(context.Background(), 1, 10, nil)
	require.Equal(t, apperror.CodePersistFailed, apperror.GetCode(err))
	require.Equal(t, http.StatusBadRequest, apperror.StatusOf(err))
}
