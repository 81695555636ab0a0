package transaction

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/helios/internal/transaction"
)

type Handler struct {
	client transaction.Client
}

func NewHandler(client transaction.Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/summary", h.summary)
}

// list accepts ?filter=all|income|expense|pending and ?q= for a
// case-insensitive search. The filter is applied before the search.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := transaction.FilterAll

	if s := r.URL.Query().Get("filter"); s != "" {
		f, err := transaction.ParseFilter(s)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		filter = f
	}

	txs, err := h.client.Transactions(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	resp := transaction.Apply(txs, filter, r.URL.Query().Get("q"))

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.client.TransactionSummary(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(s); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
