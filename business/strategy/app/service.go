package app

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"

	mdDomain "github.com/fmoreno/arbitrage-api/business/marketdata/domain"
	"github.com/fmoreno/arbitrage-api/business/strategy/domain"
	"github.com/fmoreno/arbitrage-api/internal/apm"
	"github.com/fmoreno/arbitrage-api/internal/apperror"
	"github.com/fmoreno/arbitrage-api/internal/logger"
	"github.com/fmoreno/arbitrage-api/internal/ref"
)

const defaultPerPage = 20

// StrategyService manages the strategy store and its populated read views.
type StrategyService struct {
	strategies StrategyRepository
	pairs      PairResolver
	log        logger.LoggerInterface
	tracer     apm.Tracer
}

// NewStrategyService creates a new StrategyService.
func NewStrategyService(strategies StrategyRepository, pairs PairResolver, log logger.LoggerInterface) *StrategyService {
	return &StrategyService{
		strategies: strategies,
		pairs:      pairs,
		log:        log,
		tracer:     apm.NewTracer("strategy.store"),
	}
}

// Create validates, stamps and persists a new strategy, returning the
// canonical stored record.
func (s *StrategyService) Create(ctx context.Context, strategy domain.Strategy) (domain.Strategy, error) {
	ctx, span := s.tracer.StartSpanFromContext(ctx, "strategy.create")
	defer span.End()

	if err := ValidateDetails(strategy.Details); err != nil {
		return domain.Strategy{}, err
	}
	if strategy.ArbitrageType != strategy.Details.Kind() {
		return domain.Strategy{}, apperror.Validation(apperror.CodeInvalidArbitrageType, string(strategy.ArbitrageType))
	}

	now := time.Now().Unix()
	strategy.ID = ref.New()
	strategy.CreatedAt = now
	strategy.UpdatedAt = now

	span.SetAttributes(attribute.String("strategy.type", string(strategy.ArbitrageType)))

	if err := s.strategies.Insert(ctx, strategy); err != nil {
		span.NoticeError(err)
		return domain.Strategy{}, apperror.Persist("insert strategy", err)
	}

	created, err := s.strategies.Get(ctx, strategy.ID)
	if err != nil {
		span.NoticeError(err)
		return domain.Strategy{}, apperror.Persist("fetch created strategy", err)
	}

	s.log.Info(ctx, "strategy created", "id", created.ID.Hex(), "type", created.ArbitrageType)
	return created, nil
}

// Get returns the raw strategy record with unresolved pair references.
func (s *StrategyService) Get(ctx context.Context, id ref.ID) (domain.Strategy, error) {
	strategy, err := s.strategies.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.Strategy{}, apperror.NotFound(apperror.CodeStrategyNotFound, id.Hex())
		}
		return domain.Strategy{}, apperror.Persist("fetch strategy", err)
	}
	return strategy, nil
}

// Update fully replaces the strategy's type, details and status. The incoming
// details pass the same validation as on create, updated_at is refreshed and
// the stored record is returned.
func (s *StrategyService) Update(ctx context.Context, id ref.ID, strategy domain.Strategy) (domain.Strategy, error) {
	ctx, span := s.tracer.StartSpanFromContext(ctx, "strategy.update")
	defer span.End()

	if err := ValidateDetails(strategy.Details); err != nil {
		return domain.Strategy{}, err
	}
	if strategy.ArbitrageType != strategy.Details.Kind() {
		return domain.Strategy{}, apperror.Validation(apperror.CodeInvalidArbitrageType, string(strategy.ArbitrageType))
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return domain.Strategy{}, err
	}

	current.ArbitrageType = strategy.ArbitrageType
	current.Details = strategy.Details
	current.Status = strategy.Status
	current.UpdatedAt = time.Now().Unix()

	if err := s.strategies.Update(ctx, current); err != nil {
		span.NoticeError(err)
		return domain.Strategy{}, apperror.Persist("update strategy", err)
	}
	return s.Get(ctx, id)
}

// Delete removes the strategy by id.
func (s *StrategyService) Delete(ctx context.Context, id ref.ID) error {
	if err := s.strategies.Delete(ctx, id); err != nil {
		return apperror.Persist("delete strategy", err)
	}
	return nil
}

// ListPopulated returns one page of strategies with every pair reference
// expanded, plus the total count over the same filter. Strategies whose
// references no longer resolve are silently dropped from the page.
func (s *StrategyService) ListPopulated(ctx context.Context, page, perPage int, typeFilter *domain.ArbitrageType) ([]domain.PopulatedStrategy, int64, error) {
	ctx, span := s.tracer.StartSpanFromContext(ctx, "strategy.list")
	defer span.End()

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	offset := (page - 1) * perPage

	var (
		total    int64
		countErr error
		done     = make(chan struct{})
	)
	go func() {
		defer close(done)
		total, countErr = s.strategies.Count(ctx, typeFilter)
	}()

	strategies, err := s.strategies.List(ctx, typeFilter, perPage, offset)
	if err != nil {
		<-done
		span.NoticeError(err)
		return nil, 0, apperror.Persist("list strategies", err)
	}

	<-done
	if countErr != nil {
		span.NoticeError(countErr)
		return nil, 0, apperror.Persist("count strategies", countErr)
	}

	resolved, err := s.resolvePage(ctx, strategies)
	if err != nil {
		span.NoticeError(err)
		return nil, 0, err
	}
	return resolved, total, nil
}

// resolvePage expands the page's pair references with one batched lookup.
func (s *StrategyService) resolvePage(ctx context.Context, strategies []domain.Strategy) ([]domain.PopulatedStrategy, error) {
	ids := make([]ref.ID, 0, len(strategies)*3)
	seen := make(map[ref.ID]struct{})
	for _, st := range strategies {
		for _, id := range st.Details.PairRefs() {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	byID := make(map[ref.ID]mdDomain.PopulatedMarketPair, len(ids))
	if len(ids) > 0 {
		pairs, err := s.pairs.ListPopulatedByIDs(ctx, ids)
		if err != nil {
			return nil, apperror.Persist("resolve strategy pairs", err)
		}
		for _, p := range pairs {
			byID[p.ID] = p
		}
	}

	resolved := make([]domain.PopulatedStrategy, 0, len(strategies))
	for _, st := range strategies {
		details, ok := populateDetails(st.Details, byID)
		if !ok {
			s.log.Warn(ctx, "skipping strategy with dangling pair reference", "id", st.ID.Hex())
			continue
		}
		resolved = append(resolved, domain.PopulatedStrategy{
			ID:            st.ID,
			ArbitrageType: st.ArbitrageType,
			Details:       details,
			CreatedAt:     st.CreatedAt,
			UpdatedAt:     st.UpdatedAt,
			Status:        st.Status,
		})
	}
	return resolved, nil
}

func populateDetails(details domain.Details, byID map[ref.ID]mdDomain.PopulatedMarketPair) (domain.PopulatedDetails, bool) {
	lookup := func(ids ...ref.ID) ([]mdDomain.PopulatedMarketPair, bool) {
		out := make([]mdDomain.PopulatedMarketPair, len(ids))
		for i, id := range ids {
			p, ok := byID[id]
			if !ok {
				return nil, false
			}
			out[i] = p
		}
		return out, true
	}

	switch d := details.(type) {
	case domain.GeographicArbitrage:
		pairs, ok := lookup(d.Pair1, d.Pair2, d.ConversionPair)
		if !ok {
			return nil, false
		}
		return domain.PopulatedGeographic{Pair1: pairs[0], Pair2: pairs[1], ConversionPair: pairs[2]}, true
	case domain.ExchangeArbitrage:
		pairs, ok := lookup(d.Pair1, d.Pair2)
		if !ok {
			return nil, false
		}
		return domain.PopulatedExchange{Pair1: pairs[0], Pair2: pairs[1]}, true
	case domain.TriangularArbitrage:
		pairs, ok := lookup(d.Pair1, d.Pair2, d.Pair3)
		if !ok {
			return nil, false
		}
		return domain.PopulatedTriangular{Pair1: pairs[0], Pair2: pairs[1], Pair3: pairs[2]}, true
	case domain.TradingPairArbitrage:
		pairs, ok := lookup(d.Pair1, d.Pair2, d.Pair3)
		if !ok {
			return nil, false
		}
		return domain.PopulatedTradingPair{Pair1: pairs[0], Pair2: pairs[1], Pair3: pairs[2]}, true
	default:
		return nil, false
	}
}
