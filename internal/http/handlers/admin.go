package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/swasthyasetu/health-assistant/internal/engine"
	"github.com/swasthyasetu/health-assistant/internal/escalation"
	"github.com/swasthyasetu/health-assistant/internal/history"
	"github.com/swasthyasetu/health-assistant/internal/http/middleware"
	"github.com/swasthyasetu/health-assistant/internal/session"
	"github.com/swasthyasetu/health-assistant/pkg/logging"
)

// Archive is the slice of the history store the admin surface reads.
type Archive interface {
	ListTurns(ctx context.Context, userID string, limit int) ([]history.Turn, error)
	ListEscalations(ctx context.Context, limit int) ([]escalation.Record, error)
	CountEscalationsSince(ctx context.Context, cutoff time.Time) (int, error)
}

// CatalogReloader re-reads symptom tables from disk.
type CatalogReloader interface {
	Reload() (counts map[string]int, err error)
}

// AdminHandler serves the operational endpoints behind admin auth.
type AdminHandler struct {
	engine   *engine.Engine
	sessions session.Store
	archive  Archive
	reloader CatalogReloader
	logger   *logging.Logger
	now      func() time.Time
}

// NewAdminHandler creates the admin handler. archive and reloader may be nil;
// the corresponding endpoints then degrade gracefully.
func NewAdminHandler(eng *engine.Engine, sessions session.Store, archive Archive, reloader CatalogReloader, logger *logging.Logger) *AdminHandler {
	if eng == nil {
		panic("handlers: engine cannot be nil")
	}
	if sessions == nil {
		panic("handlers: session store cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminHandler{
		engine:   eng,
		sessions: sessions,
		archive:  archive,
		reloader: reloader,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

type statsResponse struct {
	session.Stats
	SymptomEntries   map[string]int `json:"symptom_entries"`
	Escalations24H   int            `json:"escalations_24h,omitempty"`
	EscalationsTotal int            `json:"escalations_recent,omitempty"`
}

// GetStats handles GET /admin/stats.
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := session.ComputeStats(r.Context(), h.sessions)
	if err != nil {
		h.logger.Error("failed to compute session stats", "error", err)
		http.Error(w, "failed to compute stats", http.StatusInternalServerError)
		return
	}

	counts := map[string]int{}
	for lang, n := range h.engine.Catalog().Counts() {
		counts[string(lang)] = n
	}
	resp := statsResponse{Stats: stats, SymptomEntries: counts}

	if h.archive != nil {
		if n, err := h.archive.CountEscalationsSince(r.Context(), h.now().Add(-24*time.Hour)); err == nil {
			resp.Escalations24H = n
		} else {
			h.logger.Error("failed to count escalations", "error", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// ReloadSymptoms handles POST /admin/reload. The new tables take
// effect for the next message; in-flight requests finish on the old ones.
func (h *AdminHandler) ReloadSymptoms(w http.ResponseWriter, r *http.Request) {
	if h.reloader == nil {
		http.Error(w, "symptom reload not configured", http.StatusNotImplemented)
		return
	}
	counts, err := h.reloader.Reload()
	if err != nil {
		h.logger.Error("symptom reload failed", "error", err)
		http.Error(w, "reload failed", http.StatusInternalServerError)
		return
	}
	h.logger.Info("symptom tables reloaded",
		"tables", len(counts),
		"requested_by", middleware.AdminSubject(r.Context()),
	)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"status": "reloaded", "entries": counts})
}

// ListEscalations handles GET /admin/escalations?limit=N.
func (h *AdminHandler) ListEscalations(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		http.Error(w, "escalation archive not configured", http.StatusNotImplemented)
		return
	}
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	records, err := h.archive.ListEscalations(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list escalations", "error", err)
		http.Error(w, "failed to list escalations", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"escalations": records})
}

// GetUserHistory handles GET /admin/users/{userID}/history.
func (h *AdminHandler) GetUserHistory(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		http.Error(w, "conversation archive not configured", http.StatusNotImplemented)
		return
	}
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		http.Error(w, "user id required", http.StatusBadRequest)
		return
	}
	turns, err := h.archive.ListTurns(r.Context(), userID, 50)
	if err != nil {
		h.logger.Error("failed to list turns", "error", err, "user_id", userID)
		http.Error(w, "failed to list history", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"user_id": userID, "turns": turns})
}
