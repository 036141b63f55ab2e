package rest

import (
	"net/http"

	"github.com/fmoreno/arbitrage-api/business/marketdata/domain"
	"github.com/fmoreno/arbitrage-api/internal/rest"
)

func (h *Handler) createAsset(w http.ResponseWriter, r *http.Request) {
	var body domain.Asset
	if err := rest.Decode(r, &body); err != nil {
		rest.Fail(w, err)
		return
	}

	created, err := h.assets.Create(r.Context(), body)
	if err != nil {
		rest.Fail(w, err)
		return
	}
	rest.OK(w, "Asset created", created)
}

func (h *Handler) listAssets(w http.ResponseWriter, r *http.Request) {
	list, err := h.assets.List(r.Context())
	if err != nil {
		rest.Fail(w, err)
		return
	}
	rest.OK(w, "Assets retrieved", map[string]any{"assets": list})
}

func (h *Handler) getAsset(w http.ResponseWriter, r *http.Request) {
	id, err := rest.PathID(r)
	if err != nil {
		rest.Fail(w, err)
		return
	}

	asset, err := h.assets.Get(r.Context(), id)
	if err != nil {
		rest.Fail(w, err)
		return
	}
	rest.OK(w, "Asset retrieved", asset)
}

func (h *Handler) updateAsset(w http.ResponseWriter, r *http.Request) {
	id, err := rest.PathID(r)
	if err != nil {
		rest.Fail(w, err)
		return
	}

	var body domain.Asset
	if err := rest.Decode(r, &body); err != nil {
		rest.Fail(w, err)
		return
	}

	updated, err := h.assets.Update(r.Context(), id, body)
	if err != nil {
		rest.Fail(w, err)
		return
	}
	rest.OK(w, "Asset updated", updated)
}

func (h *Handler) deleteAsset(w http.ResponseWriter, r *http.Request) {
	id, err := rest.PathID(r)
	if err != nil {
		rest.Fail(w, err)
		return
	}

	if err := h.assets.Delete(r.Context(), id); err != nil {
		rest.Fail(w, err)
		return
	}
	rest.OK(w, "Asset deleted", nil)
}
