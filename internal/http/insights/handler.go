package insights

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/helios/internal/advisory"
	"github.com/MrJamesThe3rd/helios/internal/insights"
	"github.com/MrJamesThe3rd/helios/internal/report"
)

type Handler struct {
	network  insights.Client
	advisory advisory.Client
}

func NewHandler(network insights.Client, advisory advisory.Client) *Handler {
	return &Handler{network: network, advisory: advisory}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/network", h.networkStats)
	r.Get("/chart", h.chart)
	r.Post("/financial", h.financial)
}

func (h *Handler) networkStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.network.NetworkStats(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) chart(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = insights.DefaultPeriod
	}

	points, err := h.network.ChartData(r.Context(), period)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, points)
}

type financialResponse struct {
	Report  *report.Report `json:"report"`
	Metrics report.Metrics `json:"metrics"`
}

// financial accepts a multipart statement, runs the analysis and returns the
// normalized report.
func (h *Handler) financial(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, advisory.MaxStatementSize+1<<20)

	if err := r.ParseMultipartForm(advisory.MaxStatementSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read file", http.StatusBadRequest)
		return
	}

	st := advisory.Statement{Name: header.Filename, Content: content}
	if err := advisory.Validate(st); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	raw, err := h.advisory.Analyze(r.Context(), st)
	if err != nil {
		if errors.Is(err, advisory.ErrInvalidStatement) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusBadGateway)

		return
	}

	rep, err := report.Normalize(raw)
	if err != nil {
		http.Error(w, advisory.MsgUnparseable, http.StatusUnprocessableEntity)
		return
	}

	writeJSON(w, http.StatusOK, financialResponse{Report: rep, Metrics: report.Derive(rep)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
