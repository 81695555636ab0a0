package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/helios/internal/export"
	"github.com/MrJamesThe3rd/helios/internal/transaction"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.metadata)
	r.Post("/download", h.download)
}

type exportMetadataResponse struct {
	Transactions []transaction.Transaction `json:"transactions"`
	Summary      string                    `json:"summary"`
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (export.Request, bool) {
	var req export.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return req, false
	}

	if req.Filter != "" {
		if _, err := transaction.ParseFilter(string(req.Filter)); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return req, false
		}
	}

	return req, true
}

func (h *Handler) metadata(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	txs, err := h.svc.Export(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(exportMetadataResponse{
		Transactions: txs,
		Summary:      export.Digest(txs),
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	txs, err := h.svc.Export(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"export_%s.zip\"", time.Now().Format("20060102")))

	if err := export.WriteArchive(w, txs); err != nil {
		slog.Error("failed to create zip", "error", err)
	}
}
