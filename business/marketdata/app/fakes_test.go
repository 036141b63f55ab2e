package app

import (
	"context"
	"io"
	"slices"
	"strings"

	"github.com/fmoreno/arbitrage-api/business/marketdata/domain"
	"github.com/fmoreno/arbitrage-api/internal/logger"
	"github.com/fmoreno/arbitrage-api/internal/ref"
)

func discardLogger() logger.LoggerInterface {
	return logger.New(io.Discard, logger.LevelError, "test", nil)
}

// fakeStore is an in-memory repository backing all three marketdata ports.
// Populated reads join through the exchange and asset maps the way the SQL
// layer joins tables, so dangling references drop out the same way.
type fakeStore struct {
	exchanges map[ref.ID]domain.Exchange
	assets    map[ref.ID]domain.Asset
	pairs     map[ref.ID]domain.MarketPair
	pairOrder []ref.ID

	// lastSymbols records the symbol sets passed to FindConversionBySymbols.
	lastSymbols [2][]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		exchanges: make(map[ref.ID]domain.Exchange),
		assets:    make(map[ref.ID]domain.Asset),
		pairs:     make(map[ref.ID]domain.MarketPair),
	}
}

func (f *fakeStore) addExchange(name string) domain.Exchange {
	e := domain.Exchange{ID: ref.New(), Name: name, ShortName: strings.ToUpper(name)}
	f.exchanges[e.ID] = e
	return e
}

func (f *fakeStore) addAsset(exchangeID ref.ID, symbol string) domain.Asset {
	a := domain.Asset{ID: ref.New(), ExchangeID: exchangeID, Name: symbol, ShortName: symbol, Status: true}
	f.assets[a.ID] = a
	return a
}

func (f *fakeStore) addPair(exchangeID, baseID, quoteID ref.ID) domain.MarketPair {
	p := domain.MarketPair{ID: ref.New(), ExchangeID: exchangeID, BaseAssetID: baseID, QuoteAssetID: quoteID, Status: true}
	f.pairs[p.ID] = p
	f.pairOrder = append(f.pairOrder, p.ID)
	return p
}

// Exchange repository.

func (f *fakeStore) Insert(_ context.Context, e domain.Exchange) error {
	f.exchanges[e.ID] = e
	return nil
}

func (f *fakeStore) Get(_ context.Context, id ref.ID) (domain.Exchange, error) {
	e, ok := f.exchanges[id]
	if !ok {
		return domain.Exchange{}, ErrNotFound
	}
	return e, nil
}

func (f *fakeStore) Update(_ context.Context, e domain.Exchange) error {
	if _, ok := f.exchanges[e.ID]; !ok {
		return ErrNotFound
	}
	f.exchanges[e.ID] = e
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id ref.ID) error {
	delete(f.exchanges, id)
	return nil
}

func (f *fakeStore) List(_ context.Context) ([]domain.Exchange, error) {
	out := make([]domain.Exchange, 0, len(f.exchanges))
	for _, e := range f.exchanges {
		out = append(out, e)
	}
	return out, nil
}

// fakePairRepo adapts fakeStore to the PairRepository port.
type fakePairRepo struct {
	store *fakeStore
}

func (r *fakePairRepo) Insert(_ context.Context, p domain.MarketPair) error {
	r.store.pairs[p.ID] = p
	r.store.pairOrder = append(r.store.pairOrder, p.ID)
	return nil
}

func (r *fakePairRepo) Get(_ context.Context, id ref.ID) (domain.MarketPair, error) {
	p, ok := r.store.pairs[id]
	if !ok {
		return domain.MarketPair{}, ErrNotFound
	}
	return p, nil
}

func (r *fakePairRepo) Update(_ context.Context, p domain.MarketPair) error {
	if _, ok := r.store.pairs[p.ID]; !ok {
		return ErrNotFound
	}
	r.store.pairs[p.ID] = p
	return nil
}

func (r *fakePairRepo) Delete(_ context.Context, id ref.ID) error {
	delete(r.store.pairs, id)
	r.store.pairOrder = slices.DeleteFunc(r.store.pairOrder, func(o ref.ID) bool { return o == id })
	return nil
}

func (r *fakePairRepo) populate(p domain.MarketPair) (domain.PopulatedMarketPair, bool) {
	exchange, ok := r.store.exchanges[p.ExchangeID]
	if !ok {
		return domain.PopulatedMarketPair{}, false
	}
	base, ok := r.store.assets[p.BaseAssetID]
	if !ok {
		return domain.PopulatedMarketPair{}, false
	}
	quote, ok := r.store.assets[p.QuoteAssetID]
	if !ok {
		return domain.PopulatedMarketPair{}, false
	}
	return domain.PopulatedMarketPair{
		ID:         p.ID,
		Exchange:   exchange,
		BaseAsset:  base,
		QuoteAsset: quote,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
		Status:     p.Status,
	}, true
}

func (r *fakePairRepo) populatedAll(f domain.PairFilter) []domain.PopulatedMarketPair {
	out := make([]domain.PopulatedMarketPair, 0, len(r.store.pairOrder))
	for _, id := range r.store.pairOrder {
		p, ok := r.populate(r.store.pairs[id])
		if !ok {
			continue
		}
		if !f.ExchangeID.IsZero() && p.Exchange.ID != f.ExchangeID {
			continue
		}
		if f.Search != "" {
			s := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(p.BaseAsset.ShortName), s) &&
				!strings.Contains(strings.ToLower(p.QuoteAsset.ShortName), s) {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

func (r *fakePairRepo) GetPopulated(_ context.Context, id ref.ID) (domain.PopulatedMarketPair, error) {
	p, ok := r.store.pairs[id]
	if !ok {
		return domain.PopulatedMarketPair{}, ErrNotFound
	}
	populated, ok := r.populate(p)
	if !ok {
		return domain.PopulatedMarketPair{}, ErrNotFound
	}
	return populated, nil
}

func (r *fakePairRepo) ListPopulated(_ context.Context, f domain.PairFilter, limit, offset int) ([]domain.PopulatedMarketPair, error) {
	all := r.populatedAll(f)
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakePairRepo) CountPopulated(_ context.Context, f domain.PairFilter) (int64, error) {
	return int64(len(r.populatedAll(f))), nil
}

func (r *fakePairRepo) ListByExchange(_ context.Context, exchangeID ref.ID) ([]domain.PopulatedMarketPair, error) {
	return r.populatedAll(domain.PairFilter{ExchangeID: exchangeID}), nil
}

func (r *fakePairRepo) ListPopulatedByIDs(_ context.Context, ids []ref.ID) ([]domain.PopulatedMarketPair, error) {
	out := make([]domain.PopulatedMarketPair, 0, len(ids))
	for _, p := range r.populatedAll(domain.PairFilter{}) {
		if slices.Contains(ids, p.ID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePairRepo) FindMatching(_ context.Context, exchangeID ref.ID, baseSymbol string, quoteSymbols []string) (*domain.PopulatedMarketPair, error) {
	for _, p := range r.populatedAll(domain.PairFilter{ExchangeID: exchangeID}) {
		if p.BaseAsset.ShortName == baseSymbol && slices.Contains(quoteSymbols, p.QuoteAsset.ShortName) {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *fakePairRepo) FindConversionBySymbols(_ context.Context, symbols1, symbols2 []string) ([]domain.PopulatedMarketPair, error) {
	r.store.lastSymbols = [2][]string{symbols1, symbols2}
	out := make([]domain.PopulatedMarketPair, 0)
	for _, p := range r.populatedAll(domain.PairFilter{}) {
		forward := slices.Contains(symbols1, p.BaseAsset.ShortName) && slices.Contains(symbols2, p.QuoteAsset.ShortName)
		reverse := slices.Contains(symbols2, p.BaseAsset.ShortName) && slices.Contains(symbols1, p.QuoteAsset.ShortName)
		if forward || reverse {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePairRepo) FindBridging(_ context.Context, asset1ID, asset2ID ref.ID) ([]domain.PopulatedMarketPair, error) {
	out := make([]domain.PopulatedMarketPair, 0)
	for _, p := range r.populatedAll(domain.PairFilter{}) {
		forward := p.BaseAsset.ID == asset1ID && p.QuoteAsset.ID == asset2ID
		reverse := p.BaseAsset.ID == asset2ID && p.QuoteAsset.ID == asset1ID
		if forward || reverse {
			out = append(out, p)
		}
	}
	return out, nil
}
