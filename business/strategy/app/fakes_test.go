package app

import (
	"context"
	"io"
	"slices"

	mdDomain "github.com/fmoreno/arbitrage-api/business/marketdata/domain"
	"github.com/fmoreno/arbitrage-api/business/strategy/domain"
	"github.com/fmoreno/arbitrage-api/internal/logger"
	"github.com/fmoreno/arbitrage-api/internal/ref"
)

func discardLogger() logger.LoggerInterface {
	return logger.New(io.Discard, logger.LevelError, "test", nil)
}

// fakeStrategyRepo is an in-memory StrategyRepository with insertion-ordered
// listings.
type fakeStrategyRepo struct {
	order   []ref.ID
	records map[ref.ID]domain.Strategy
	failAll error
}

func newFakeStrategyRepo() *fakeStrategyRepo {
	return &fakeStrategyRepo{records: make(map[ref.ID]domain.Strategy)}
}

func (r *fakeStrategyRepo) Insert(_ context.Context, s domain.Strategy) error {
	if r.failAll != nil {
		return r.failAll
	}
	r.order = append(r.order, s.ID)
	r.records[s.ID] = s
	return nil
}

func (r *fakeStrategyRepo) Get(_ context.Context, id ref.ID) (domain.Strategy, error) {
	if r.failAll != nil {
		return domain.Strategy{}, r.failAll
	}
	s, ok := r.records[id]
	if !ok {
		return domain.Strategy{}, ErrNotFound
	}
	return s, nil
}

func (r *fakeStrategyRepo) Update(_ context.Context, s domain.Strategy) error {
	if r.failAll != nil {
		return r.failAll
	}
	if _, ok := r.records[s.ID]; !ok {
		return ErrNotFound
	}
	r.records[s.ID] = s
	return nil
}

func (r *fakeStrategyRepo) Delete(_ context.Context, id ref.ID) error {
	if r.failAll != nil {
		return r.failAll
	}
	delete(r.records, id)
	r.order = slices.DeleteFunc(r.order, func(o ref.ID) bool { return o == id })
	return nil
}

func (r *fakeStrategyRepo) List(_ context.Context, typeFilter *domain.ArbitrageType, limit, offset int) ([]domain.Strategy, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	matched := r.matching(typeFilter)
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *fakeStrategyRepo) Count(_ context.Context, typeFilter *domain.ArbitrageType) (int64, error) {
	if r.failAll != nil {
		return 0, r.failAll
	}
	return int64(len(r.matching(typeFilter))), nil
}

func (r *fakeStrategyRepo) matching(typeFilter *domain.ArbitrageType) []domain.Strategy {
	out := make([]domain.Strategy, 0, len(r.order))
	for _, id := range r.order {
		s := r.records[id]
		if typeFilter != nil && s.ArbitrageType != *typeFilter {
			continue
		}
		out = append(out, s)
	}
	return out
}

// fakePairStore is an in-memory pair catalogue satisfying both PairResolver
// and PairFinder.
type fakePairStore struct {
	pairs    []mdDomain.PopulatedMarketPair
	failAll  error
	searches int
}

func (f *fakePairStore) ListPopulatedByIDs(_ context.Context, ids []ref.ID) ([]mdDomain.PopulatedMarketPair, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	out := make([]mdDomain.PopulatedMarketPair, 0, len(ids))
	for _, p := range f.pairs {
		if slices.Contains(ids, p.ID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePairStore) ListByExchange(_ context.Context, exchangeID ref.ID) ([]mdDomain.PopulatedMarketPair, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	out := make([]mdDomain.PopulatedMarketPair, 0)
	for _, p := range f.pairs {
		if p.Exchange.ID == exchangeID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePairStore) FindMatching(_ context.Context, exchangeID ref.ID, baseSymbol string, quoteSymbols []string) (*mdDomain.PopulatedMarketPair, error) {
	f.searches++
	if f.failAll != nil {
		return nil, f.failAll
	}
	for i := range f.pairs {
		p := f.pairs[i]
		if p.Exchange.ID == exchangeID &&
			p.BaseAsset.ShortName == baseSymbol &&
			slices.Contains(quoteSymbols, p.QuoteAsset.ShortName) {
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakePairStore) FindConversionBySymbols(_ context.Context, symbols1, symbols2 []string) ([]mdDomain.PopulatedMarketPair, error) {
	f.searches++
	if f.failAll != nil {
		return nil, f.failAll
	}
	out := make([]mdDomain.PopulatedMarketPair, 0)
	for _, p := range f.pairs {
		forward := slices.Contains(symbols1, p.BaseAsset.ShortName) && slices.Contains(symbols2, p.QuoteAsset.ShortName)
		reverse := slices.Contains(symbols2, p.BaseAsset.ShortName) && slices.Contains(symbols1, p.QuoteAsset.ShortName)
		if forward || reverse {
			out = append(out, p)
		}
	}
	return out, nil
}

// populatedPair builds a catalogue entry with deterministic ids derived from
// the pair id suffix.
func populatedPair(id ref.ID, exchangeID ref.ID, base, quote string) mdDomain.PopulatedMarketPair {
	return mdDomain.PopulatedMarketPair{
		ID:         id,
		Exchange:   mdDomain.Exchange{ID: exchangeID, Name: "exchange-" + exchangeID.Hex()[20:], ShortName: "EX" + exchangeID.Hex()[22:]},
		BaseAsset:  mdDomain.Asset{ID: ref.New(), ExchangeID: exchangeID, Name: base, ShortName: base, Status: true},
		QuoteAsset: mdDomain.Asset{ID: ref.New(), ExchangeID: exchangeID, Name: quote, ShortName: quote, Status: true},
		Status:     true,
	}
}
