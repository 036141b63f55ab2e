package rest

import (
	"net/http"

	"github.com/fmoreno/arbitrage-api/business/marketdata/domain"
	"github.com/fmoreno/arbitrage-api/internal/rest"
)

func (h *Handler) createExchange(w http.ResponseWriter, r *http.Request) {
	var body domain.Exchange
	if err := rest.Decode(r, &body); err != nil {
		rest.Fail(w, err)
		return
	}

	created, err := h.exchanges.Create(r.Context(), body)
	if err != nil {
		rest.Fail(w, err)
		return
	}
	rest.OK(w, "Exchange created", created)
}

func (h *Handler) listExchanges(w http.ResponseWriter, r *http.Request) {
	list, err := h.exchanges.List(r.Context())
	if err != nil {
		rest.Fail(w, err)
		return
	}
	rest.OK(w, "Exchanges retrieved", map[string]any{"exchanges": list})
}

func (h *Handler) getExchange(w http.ResponseWriter, r *http.Request) {
	id, err := rest.PathID(r)
	if err != nil {
		rest.Fail(w, err)
		return
	}

	exchange, err := h.exchanges.Get(r.Context(), id)
	if err != nil {
		rest.Fail(w, err)
		return
	}
	rest.OK(w, "Exchange retrieved", exchange)
}

func (h *Handler) updateExchange(w http.ResponseWriter, r *http.Request) {
	id, err := rest.PathID(r)
	if err != nil {
		rest.Fail(w, err)
		return
	}

	var body domain.Exchange
	if err := rest.Decode(r, &body); err != nil {
		rest.Fail(w, err)
		return
	}

	updated, err := h.exchanges.Update(r.Context(), id, body)
	if err != nil {
		rest.Fail(w, err)
		return
	}
	rest.OK(w, "Exchange updated", updated)
}

func (h *Handler) deleteExchange(w http.ResponseWriter, r *http.Request) {
	id, err := rest.PathID(r)
	if err != nil {
		rest.Fail(w, err)
		return
	}

	if err := h.exchanges.Delete(r.Context(), id); err != nil {
		rest.Fail(w, err)
		return
	}
	rest.OK(w, "Exchange deleted", nil)
}
