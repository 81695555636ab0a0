package importcsv

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/helios/internal/encoding"
	"github.com/MrJamesThe3rd/helios/internal/facade"
	"github.com/MrJamesThe3rd/helios/internal/facade/statement"
	"github.com/MrJamesThe3rd/helios/internal/transaction"
)

const maxUploadSize = 10 << 20

type StatementUploader interface {
	UploadStatement(ctx context.Context, name string, r io.Reader) (*facade.StatementImport, error)
}

type BillProcessor interface {
	ProcessBill(ctx context.Context, name string, content []byte) (transaction.Transaction, error)
}

type Handler struct {
	statements StatementUploader
	bills      BillProcessor
}

func NewHandler(statements StatementUploader, bills BillProcessor) *Handler {
	return &Handler{statements: statements, bills: bills}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/statement", h.importStatement)
	r.Post("/bill", h.processBill)
}

type importResponse struct {
	Profile      string                    `json:"profile"`
	Charset      encoding.Charset          `json:"charset"`
	Imported     int                       `json:"imported"`
	Duplicates   int                       `json:"duplicates"`
	Transactions []transaction.Transaction `json:"transactions"`
}

// importStatement answers 201 when anything was imported and 409 when every
// row was already in the ledger.
func (h *Handler) importStatement(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := h.statements.UploadStatement(r.Context(), header.Filename, file)
	if err != nil {
		if errors.Is(err, statement.ErrUnknownFormat) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusUnprocessableEntity)

		return
	}

	resp := importResponse{
		Profile:      result.Profile,
		Charset:      result.Charset,
		Imported:     len(result.Imported),
		Duplicates:   result.Duplicates,
		Transactions: result.Imported,
	}
	if resp.Transactions == nil {
		resp.Transactions = []transaction.Transaction{}
	}

	status := http.StatusCreated
	if resp.Imported == 0 && resp.Duplicates > 0 {
		status = http.StatusConflict
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) processBill(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
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

	tx, err := h.bills.ProcessBill(r.Context(), header.Filename, content)
	if err != nil {
		if errors.Is(err, facade.ErrEmptyDocument) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusBadGateway)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(tx); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
