package rest

import (
	"net/http"

	"github.com/fmoreno/arbitrage-api/business/marketdata/domain"
	"github.com/fmoreno/arbitrage-api/internal/rest"
)

func (h *Handler) createPair(w http.ResponseWriter, r *http.Request) {
	var body domain.MarketPair
	if err := rest.Decode(r, &body); err != nil {
		rest.Fail(w, err)
		return
	}

	created, err := h.pairs.Create(r.Context(), body)
	if err != nil {
		rest.Fail(w, err)
		return
	}
	rest.OK(w, "Market pair created", created)
}

func (h *Handler) listPairs(w http.ResponseWriter, r *http.Request) {
	exchangeID, err := rest.QueryID(r, "exchange_id", false)
	if err != nil {
		rest.Fail(w, err)
		return
	}

	page := rest.QueryInt(r, "page", 1)
	perPage := rest.QueryInt(r, "per_page", 20)
	filter := domain.PairFilter{
		ExchangeID: exchangeID,
		Search:     r.URL.Query().Get("search"),
	}

	list, total, err := h.pairs.ResolveMany(r.Context(), filter, page, perPage)
	if err != nil {
		rest.Fail(w, err)
		return
	}
	rest.OK(w, "Market pairs retrieved", map[string]any{
		"market_pairs": list,
		"total":        total,
		"page":         page,
		"per_page":     perPage,
	})
}

func (h *Handler) getPair(w http.ResponseWriter, r *http.Request) {
	id, err := rest.PathID(r)
	if err != nil {
		rest.Fail(w, err)
		return
	}

	pair, err := h.pairs.Resolve(r.Context(), id)
	if err != nil {
		rest.Fail(w, err)
		return
	}
	rest.OK(w, "Market pair retrieved", pair)
}

func (h *Handler) updatePair(w http.ResponseWriter, r *http.Request) {
	id, err := rest.PathID(r)
	if err != nil {
		rest.Fail(w, err)
		return
	}

	var body domain.MarketPair
	if err := rest.Decode(r, &body); err != nil {
		rest.Fail(w, err)
		return
	}

	updated, err := h.pairs.Update(r.Context(), id, body)
	if err != nil {
		rest.Fail(w, err)
		return
	}
	rest.OK(w, "Market pair updated", updated)
}

func (h *Handler) deletePair(w http.ResponseWriter, r *http.Request) {
	id, err := rest.PathID(r)
	if err != nil {
		rest.Fail(w, err)
		return
	}

	if err := h.pairs.Delete(r.Context(), id); err != nil {
		rest.Fail(w, err)
		return
	}
	rest.OK(w, "Market pair deleted", nil)
}

func (h *Handler) listPairsByExchange(w http.ResponseWriter, r *http.Request) {
	id, err := rest.PathID(r)
	if err != nil {
		rest.Fail(w, err)
		return
	}

	list, err := h.pairs.ResolveByExchange(r.Context(), id)
	if err != nil {
		rest.Fail(w, err)
		return
	}
	rest.OK(w, "Market pairs retrieved", map[string]any{"market_pairs": list})
}

func (h *Handler) conversionForPairs(w http.ResponseWriter, r *http.Request) {
	pair1, err := rest.QueryID(r, "pair1", true)
	if err != nil {
		rest.Fail(w, err)
		return
	}
	pair2, err := rest.QueryID(r, "pair2", true)
	if err != nil {
		rest.Fail(w, err)
		return
	}

	list, err := h.pairs.ConversionForPairs(r.Context(), pair1, pair2)
	if err != nil {
		rest.Fail(w, err)
		return
	}
	rest.OK(w, "Conversion pairs retrieved", map[string]any{"market_pairs": list})
}

func (h *Handler) conversionForSymbols(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := h.pairs.ConversionForSymbols(r.Context(), q.Get("quote1"), q.Get("quote2"))
	if err != nil {
		rest.Fail(w, err)
		return
	}
	rest.OK(w, "Conversion pairs retrieved", map[string]any{"market_pairs": list})
}
