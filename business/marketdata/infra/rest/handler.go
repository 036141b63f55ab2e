// Package rest exposes the reference-data endpoints: exchanges, assets and
// market pairs.
package rest

import (
	"net/http"

	"github.com/fmoreno/arbitrage-api/business/marketdata/app"
	"github.com/fmoreno/arbitrage-api/internal/logger"
)

// Handler carries the marketdata services behind the HTTP surface.
type Handler struct {
	exchanges *app.ExchangeService
	assets    *app.AssetService
	pairs     *app.PairService
	log       logger.LoggerInterface
}

// NewHandler creates a new Handler.
func NewHandler(exchanges *app.ExchangeService, assets *app.AssetService, pairs *app.PairService, log logger.LoggerInterface) *Handler {
	return &Handler{exchanges: exchanges, assets: assets, pairs: pairs, log: log}
}

// Register mounts every marketdata route on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /exchanges", h.createExchange)
	mux.HandleFunc("GET /exchanges", h.listExchanges)
	mux.HandleFunc("GET /exchanges/{id}", h.getExchange)
	mux.HandleFunc("PUT /exchanges/{id}", h.updateExchange)
	mux.HandleFunc("DELETE /exchanges/{id}", h.deleteExchange)

	mux.HandleFunc("POST /assets", h.createAsset)
	mux.HandleFunc("GET /assets", h.listAssets)
	mux.HandleFunc("GET /assets/{id}", h.getAsset)
	mux.HandleFunc("PUT /assets/{id}", h.updateAsset)
	mux.HandleFunc("DELETE /assets/{id}", h.deleteAsset)

	mux.HandleFunc("POST /market-pairs", h.createPair)
	mux.HandleFunc("GET /market-pairs", h.listPairs)
	mux.HandleFunc("GET /market-pairs/{id}", h.getPair)
	mux.HandleFunc("PUT /market-pairs/{id}", h.updatePair)
	mux.HandleFunc("DELETE /market-pairs/{id}", h.deletePair)
	mux.HandleFunc("GET /market-pairs/exchange/{id}", h.listPairsByExchange)
	mux.HandleFunc("GET /market-pairs/conversion", h.conversionForPairs)
	mux.HandleFunc("GET /market-pairs/conversion-by-symbols", h.conversionForSymbols)
}
