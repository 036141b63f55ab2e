// Package rest exposes the arbitrage-strategy endpoints, including the
// suggestion scan.
package rest

import (
	"net/http"

	"github.com/fmoreno/arbitrage-api/business/strategy/app"
	"github.com/fmoreno/arbitrage-api/business/strategy/domain"
	"github.com/fmoreno/arbitrage-api/internal/apperror"
	"github.com/fmoreno/arbitrage-api/internal/logger"
	"github.com/fmoreno/arbitrage-api/internal/rest"
)

// Handler carries the strategy services behind the HTTP surface.
type Handler struct {
	strategies *app.StrategyService
	suggester  *app.Suggester
	log        logger.LoggerInterface
}

// NewHandler creates a new Handler.
func NewHandler(strategies *app.StrategyService, suggester *app.Suggester, log logger.LoggerInterface) *Handler {
	return &Handler{strategies: strategies, suggester: suggester, log: log}
}

// Register mounts every strategy route on mux. The literal /suggested route
// takes precedence over the {id} wildcard.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /arbitrage-strategies", h.create)
	mux.HandleFunc("GET /arbitrage-strategies", h.list)
	mux.HandleFunc("GET /arbitrage-strategies/suggested", h.suggest)
	mux.HandleFunc("GET /arbitrage-strategies/{id}", h.get)
	mux.HandleFunc("PUT /arbitrage-strategies/{id}", h.update)
	mux.HandleFunc("DELETE /arbitrage-strategies/{id}", h.delete)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var body domain.Strategy
	if err := rest.Decode(r, &body); err != nil {
		rest.Fail(w, err)
		return
	}

	created, err := h.strategies.Create(r.Context(), body)
	if err != nil {
		rest.Fail(w, err)
		return
	}
	rest.OK(w, "Strategy created", created)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := rest.PathID(r)
	if err != nil {
		rest.Fail(w, err)
		return
	}

	strategy, err := h.strategies.Get(r.Context(), id)
	if err != nil {
		rest.Fail(w, err)
		return
	}
	rest.OK(w, "Strategy retrieved", strategy)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := rest.PathID(r)
	if err != nil {
		rest.Fail(w, err)
		return
	}

	var body domain.Strategy
	if err := rest.Decode(r, &body); err != nil {
		rest.Fail(w, err)
		return
	}

	updated, err := h.strategies.Update(r.Context(), id, body)
	if err != nil {
		rest.Fail(w, err)
		return
	}
	rest.OK(w, "Strategy updated", updated)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := rest.PathID(r)
	if err != nil {
		rest.Fail(w, err)
		return
	}

	if err := h.strategies.Delete(r.Context(), id); err != nil {
		rest.Fail(w, err)
		return
	}
	rest.OK(w, "Strategy deleted", nil)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page := rest.QueryInt(r, "page", 1)
	perPage := rest.QueryInt(r, "per_page", 20)

	var typeFilter *domain.ArbitrageType
	if raw := r.URL.Query().Get("arbitrage_type"); raw != "" {
		typ, ok := domain.ParseArbitrageType(raw)
		if !ok {
			rest.Fail(w, apperror.Validation(apperror.CodeInvalidArbitrageType, raw))
			return
		}
		typeFilter = &typ
	}

	strategies, total, err := h.strategies.ListPopulated(r.Context(), page, perPage, typeFilter)
	if err != nil {
		rest.Fail(w, err)
		return
	}
	rest.OK(w, "Strategies retrieved", map[string]any{
		"strategies": strategies,
		"total":      total,
		"page":       page,
		"per_page":   perPage,
	})
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	exchange1, err := rest.QueryID(r, "exchange1", true)
	if err != nil {
		rest.Fail(w, err)
		return
	}
	exchange2, err := rest.QueryID(r, "exchange2", true)
	if err != nil {
		rest.Fail(w, err)
		return
	}

	raw := r.URL.Query().Get("strategy_type")
	typ, ok := domain.ParseArbitrageType(raw)
	if !ok {
		rest.Fail(w, apperror.Validation(apperror.CodeInvalidArbitrageType, raw))
		return
	}

	drafts, err := h.suggester.Suggest(r.Context(), exchange1, exchange2, typ)
	if err != nil {
		rest.Fail(w, err)
		return
	}
	rest.OK(w, "Strategies suggested", map[string]any{"strategies": drafts})
}
