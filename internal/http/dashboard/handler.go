package dashboard

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/helios/internal/dashboard"
)

type Handler struct {
	client dashboard.Client
}

func NewHandler(client dashboard.Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/stats", h.stats)
	r.Get("/staking-assets", h.stakingAssets)
	r.Get("/activities", h.activities)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.client.Stats(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	writeJSON(w, stats)
}

func (h *Handler) stakingAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.client.StakingAssets(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	writeJSON(w, assets)
}

func (h *Handler) activities(w http.ResponseWriter, r *http.Request) {
	acts, err := h.client.Activities(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	writeJSON(w, acts)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
