package app

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/fmoreno/arbitrage-api/business/marketdata/domain"
	"github.com/fmoreno/arbitrage-api/internal/apm"
	"github.com/fmoreno/arbitrage-api/internal/apperror"
	"github.com/fmoreno/arbitrage-api/internal/equivalence"
	"github.com/fmoreno/arbitrage-api/internal/logger"
	"github.com/fmoreno/arbitrage-api/internal/ref"
)

const defaultPerPage = 20

// PairService manages market pairs and resolves populated views of them.
type PairService struct {
	pairs  PairRepository
	log    logger.LoggerInterface
	tracer apm.Tracer
}

// NewPairService creates a new PairService.
func NewPairService(pairs PairRepository, log logger.LoggerInterface) *PairService {
	return &PairService{
		pairs:  pairs,
		log:    log,
		tracer: apm.NewTracer("marketdata.pairs"),
	}
}

// Create stamps and persists a new pair, returning the canonical stored row.
func (s *PairService) Create(ctx context.Context, pair domain.MarketPair) (domain.MarketPair, error) {
	ctx, span := s.tracer.StartSpanFromContext(ctx, "pair.create")
	defer span.End()

	if pair.ExchangeID.IsZero() || pair.BaseAssetID.IsZero() || pair.QuoteAssetID.IsZero() {
		return domain.MarketPair{}, apperror.Validation(apperror.CodeInvalidReference, "market pair references")
	}
	if pair.BaseAssetID == pair.QuoteAssetID {
		return domain.MarketPair{}, apperror.Validation(apperror.CodeInvalidInput, "base and quote asset must differ")
	}

	now := time.Now().Unix()
	pair.ID = ref.New()
	pair.CreatedAt = now
	pair.UpdatedAt = now

	if err := s.pairs.Insert(ctx, pair); err != nil {
		span.NoticeError(err)
		return domain.MarketPair{}, apperror.Persist("insert market pair", err)
	}

	created, err := s.pairs.Get(ctx, pair.ID)
	if err != nil {
		span.NoticeError(err)
		return domain.MarketPair{}, apperror.Persist("fetch created market pair", err)
	}
	return created, nil
}

// Get returns the raw pair record.
func (s *PairService) Get(ctx context.Context, id ref.ID) (domain.MarketPair, error) {
	pair, err := s.pairs.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.MarketPair{}, apperror.NotFound(apperror.CodeMarketPairNotFound, id.Hex())
		}
		return domain.MarketPair{}, apperror.Persist("fetch market pair", err)
	}
	return pair, nil
}

// Update fully replaces the pair's references and status, refreshing
// updated_at, and returns the stored row.
func (s *PairService) Update(ctx context.Context, id ref.ID, pair domain.MarketPair) (domain.MarketPair, error) {
	ctx, span := s.tracer.StartSpanFromContext(ctx, "pair.update")
	defer span.End()

	if pair.ExchangeID.IsZero() || pair.BaseAssetID.IsZero() || pair.QuoteAssetID.IsZero() {
		return domain.MarketPair{}, apperror.Validation(apperror.CodeInvalidReference, "market pair references")
	}
	if pair.BaseAssetID == pair.QuoteAssetID {
		return domain.MarketPair{}, apperror.Validation(apperror.CodeInvalidInput, "base and quote asset must differ")
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return domain.MarketPair{}, err
	}

	current.ExchangeID = pair.ExchangeID
	current.BaseAssetID = pair.BaseAssetID
	current.QuoteAssetID = pair.QuoteAssetID
	current.Status = pair.Status
	current.UpdatedAt = time.Now().Unix()

	if err := s.pairs.Update(ctx, current); err != nil {
		span.NoticeError(err)
		return domain.MarketPair{}, apperror.Persist("update market pair", err)
	}
	return s.Get(ctx, id)
}

// Delete removes the pair by id.
func (s *PairService) Delete(ctx context.Context, id ref.ID) error {
	if err := s.pairs.Delete(ctx, id); err != nil {
		return apperror.Persist("delete market pair", err)
	}
	return nil
}

// Resolve returns the populated view of one pair. A dangling exchange or
// asset reference surfaces as not-found.
func (s *PairService) Resolve(ctx context.Context, id ref.ID) (domain.PopulatedMarketPair, error) {
	ctx, span := s.tracer.StartSpanFromContext(ctx, "pair.resolve")
	defer span.End()

	populated, err := s.pairs.GetPopulated(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.PopulatedMarketPair{}, apperror.NotFound(apperror.CodeMarketPairNotFound, id.Hex())
		}
		span.NoticeError(err)
		return domain.PopulatedMarketPair{}, apperror.Persist("resolve market pair", err)
	}
	return populated, nil
}

// ResolveMany returns one page of populated pairs plus the total count under
// the same filter. Pages are 1-indexed. Pairs with broken references are
// excluded rather than failing the listing.
func (s *PairService) ResolveMany(ctx context.Context, f domain.PairFilter, page, perPage int) ([]domain.PopulatedMarketPair, int64, error) {
	ctx, span := s.tracer.StartSpanFromContext(ctx, "pair.resolveMany")
	defer span.End()

	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	offset := (page - 1) * perPage

	list, err := s.pairs.ListPopulated(ctx, f, perPage, offset)
	if err != nil {
		span.NoticeError(err)
		return nil, 0, apperror.Persist("list market pairs", err)
	}

	// The total reflects the same predicate as the page, via a parallel
	// count rather than the page length.
	total, err := s.pairs.CountPopulated(ctx, f)
	if err != nil {
		span.NoticeError(err)
		return nil, 0, apperror.Persist("count market pairs", err)
	}

	span.SetAttributes(attribute.Int("page.size", len(list)), attribute.Int64("total", total))
	return list, total, nil
}

// ResolveByExchange returns every resolvable pair on one exchange.
func (s *PairService) ResolveByExchange(ctx context.Context, exchangeID ref.ID) ([]domain.PopulatedMarketPair, error) {
	list, err := s.pairs.ListByExchange(ctx, exchangeID)
	if err != nil {
		return nil, apperror.Persist("list market pairs by exchange", err)
	}
	return list, nil
}

// ConversionForPairs returns the pairs bridging the quote assets of two known
// pairs, in either orientation.
func (s *PairService) ConversionForPairs(ctx context.Context, pair1ID, pair2ID ref.ID) ([]domain.PopulatedMarketPair, error) {
	ctx, span := s.tracer.StartSpanFromContext(ctx, "pair.conversionForPairs")
	defer span.End()

	pair1, err := s.Get(ctx, pair1ID)
	if err != nil {
		return nil, err
	}
	pair2, err := s.Get(ctx, pair2ID)
	if err != nil {
		return nil, err
	}

	list, err := s.pairs.FindBridging(ctx, pair1.QuoteAssetID, pair2.QuoteAssetID)
	if err != nil {
		span.NoticeError(err)
		return nil, apperror.Persist("find bridging pairs", err)
	}
	return list, nil
}

// ConversionForSymbols returns the pairs whose legs connect the equivalence
// classes of two bare quote symbols.
func (s *PairService) ConversionForSymbols(ctx context.Context, quote1, quote2 string) ([]domain.PopulatedMarketPair, error) {
	ctx, span := s.tracer.StartSpanFromContext(ctx, "pair.conversionForSymbols")
	defer span.End()

	if quote1 == "" || quote2 == "" {
		return nil, apperror.Validation(apperror.CodeRequiredField, "quote symbols")
	}

	list, err := s.pairs.FindConversionBySymbols(ctx, equivalence.VariantsOf(quote1), equivalence.VariantsOf(quote2))
	if err != nil {
		span.NoticeError(err)
		return nil, apperror.Persist("find conversion pairs", err)
	}
	return list, nil
}
