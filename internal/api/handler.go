// internal/api/handler.go
package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github-org-board/internal/model"
	"github-org-board/internal/snapshot"
)

// Handler is the container for API dependencies. The snapshot is loaded once
// at startup and treated as immutable, exactly as it is on disk between runs.
type Handler struct {
	snap   model.Snapshot
	logger *slog.Logger
}

// NewRouter creates and configures a new chi router serving the snapshot.
func NewRouter(snap model.Snapshot, logger *slog.Logger) http.Handler {
	h := &Handler{
		snap:   snap,
		logger: logger,
	}

	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger) // Chi's default logger
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// API Routes
	r.Get("/health", h.healthCheck)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/meta", h.getMeta)
		r.Get("/snapshot", h.getSnapshot)
		r.Get("/snapshot.csv", h.getSnapshotCSV)
	})

	return r
}

// healthCheck is a simple health endpoint.
func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// getMeta returns the run metadata alongside the table.
// GET /v1/meta
func (h *Handler) getMeta(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"organisation":   h.snap.OrgName,
		"ingested_at":    h.snap.IngestedAt.UTC().Format(time.RFC3339),
		"date_of_ingest": snapshot.DisplayDate(h.snap.IngestedAt),
	})
}

// getSnapshot returns the filtered table view.
// GET /v1/snapshot?repos=a,b&type=issue|pr|all
//
// No repos parameter means every repository; type defaults to "all"; when
// both are given they combine with logical AND.
func (h *Handler) getSnapshot(w http.ResponseWriter, r *http.Request) {
	rows, ok := h.filteredRows(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid 'type' parameter. Must be one of 'all', 'issue' or 'pr'.")
		return
	}
	respondWithJSON(w, http.StatusOK, rows)
}

// getSnapshotCSV returns the same filtered view as a CSV download.
// GET /v1/snapshot.csv?repos=a,b&type=issue|pr|all
func (h *Handler) getSnapshotCSV(w http.ResponseWriter, r *http.Request) {
	rows, ok := h.filteredRows(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid 'type' parameter. Must be one of 'all', 'issue' or 'pr'.")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="snapshot.csv"`)
	if err := snapshot.WriteCSV(w, rows); err != nil {
		h.logger.Error("Failed to write CSV response", "error", err)
	}
}

func (h *Handler) filteredRows(r *http.Request) ([]model.Row, bool) {
	var repoNames []string
	if raw := r.URL.Query().Get("repos"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(name); trimmed != "" {
				repoNames = append(repoNames, trimmed)
			}
		}
	}
	recordType, ok := snapshot.ParseTypeFilter(r.URL.Query().Get("type"))
	if !ok {
		return nil, false
	}
	return snapshot.Filter(h.snap.Rows, repoNames, recordType), true
}
