package advisory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/MrJamesThe3rd/helios/internal/persist"
	"github.com/MrJamesThe3rd/helios/internal/report"
)

type State struct {
	Report           *report.Report
	UploadedFileName string
	IsLoading        bool
	IsUploading      bool
	Err              string
}

// Snapshot is the persisted subset of State.
type Snapshot struct {
	Report           *report.Report `json:"report"`
	UploadedFileName string         `json:"uploadedFileName"`
}

func Partialize(s State) Snapshot {
	return Snapshot{Report: s.Report.Clone(), UploadedFileName: s.UploadedFileName}
}

type Store struct {
	client  Client
	storage persist.Storage

	mu    sync.Mutex
	state State
}

func NewStore(ctx context.Context, client Client, storage persist.Storage) *Store {
	s := &Store{client: client, storage: storage}

	var snap Snapshot

	ok, err := persist.Load(ctx, storage, persist.KeyFinancialInsights, &snap)
	if err != nil {
		slog.Warn("failed to rehydrate financial insights", "error", err)
	}

	if ok && err == nil {
		s.state.Report = snap.Report
		s.state.UploadedFileName = snap.UploadedFileName
	}

	return s
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.Report = st.Report.Clone()

	return st
}

// UploadStatement analyzes st and stores the normalized report. A payload
// without a readable report is not an error for the caller: the report is
// cleared and MsgUnparseable is set instead.
func (s *Store) UploadStatement(ctx context.Context, st Statement) error {
	s.mu.Lock()
	s.state.IsUploading = true
	s.state.Err = ""
	s.mu.Unlock()

	raw, err := s.client.Analyze(ctx, st)
	if err != nil {
		s.mu.Lock()
		s.state.IsUploading = false
		s.state.Err = err.Error()
		s.mu.Unlock()

		return fmt.Errorf("analyzing statement: %w", err)
	}

	r, err := report.Normalize(raw)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.IsUploading = false

	if err != nil {
		slog.Warn("failed to normalize advisory report", "file", st.Name, "error", err)

		s.state.Report = nil
		s.state.UploadedFileName = ""
		s.state.Err = MsgUnparseable
	} else {
		s.state.Report = r
		s.state.UploadedFileName = st.Name
	}

	s.save(ctx)

	return nil
}

// ClearReport drops the report, the file name and the error together.
func (s *Store) ClearReport(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Report = nil
	s.state.UploadedFileName = ""
	s.state.Err = ""

	s.save(ctx)
}

func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Err = ""
}

// save must be called with mu held.
func (s *Store) save(ctx context.Context) {
	if err := persist.Save(ctx, s.storage, persist.KeyFinancialInsights, Partialize(s.state)); err != nil {
		slog.Warn("failed to persist financial insights", "error", err)
	}
}
