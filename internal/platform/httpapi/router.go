// Package httpapi serves a small read-only JSON status API next to the SSH
// server: health, the run ledger and the connected sessions.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/blahaj-tide/internal/platform/tui"
	"github.com/vovakirdan/blahaj-tide/internal/storage"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// SessionLister reports connected players.
type SessionLister interface {
	List() []tui.SessionInfo
}

// Handler holds the API dependencies.
type Handler struct {
	store    *storage.Store
	sessions SessionLister
	gameID   string
	logger   *log.Logger
	started  time.Time
}

// NewRouter configures all routes and returns the router. store and
// sessions may be nil; their endpoints then answer 503.
func NewRouter(store *storage.Store, sessions SessionLister, gameID string, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	h := &Handler{
		store:    store,
		sessions: sessions,
		gameID:   gameID,
		logger:   logger,
		started:  time.Now(),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Get("/runs", h.ListRuns)
		r.Get("/runs/{id}", h.GetRun)
		r.Get("/stats", h.Stats)
		r.Get("/sessions", h.ListSessions)
	})

	return r
}

// logRequests logs every request at debug level.
func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

// Health handles GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	sessions := 0
	if h.sessions != nil {
		sessions = len(h.sessions.List())
	}
	respondJSON(w, h.logger, http.StatusOK, map[string]any{
		"status":   "ok",
		"game":     h.gameID,
		"sessions": sessions,
		"uptime":   time.Since(h.started).Round(time.Second).String(),
	})
}

// ListRuns handles GET /api/runs?order=top|recent&limit=N
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respondError(w, h.logger, http.StatusServiceUnavailable, "run ledger disabled")
		return
	}

	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	var runs []storage.Run
	switch order := r.URL.Query().Get("order"); order {
	case "", "top":
		runs, err = h.store.TopRuns(h.gameID, limit)
	case "recent":
		runs, err = h.store.RecentRuns(limit)
	default:
		respondError(w, h.logger, http.StatusBadRequest, "order must be top or recent")
		return
	}
	if err != nil {
		h.logger.Error("cannot list runs", "error", err)
		respondError(w, h.logger, http.StatusInternalServerError, "cannot list runs")
		return
	}
	if runs == nil {
		runs = []storage.Run{}
	}
	respondJSON(w, h.logger, http.StatusOK, runs)
}

// GetRun handles GET /api/runs/{id}
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respondError(w, h.logger, http.StatusServiceUnavailable, "run ledger disabled")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, h.logger, http.StatusBadRequest, "invalid run id")
		return
	}

	run, err := h.store.RunByID(id)
	if errors.Is(err, storage.ErrNotFound) {
		respondError(w, h.logger, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		h.logger.Error("cannot load run", "id", id, "error", err)
		respondError(w, h.logger, http.StatusInternalServerError, "cannot load run")
		return
	}
	respondJSON(w, h.logger, http.StatusOK, run)
}

// Stats handles GET /api/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respondError(w, h.logger, http.StatusServiceUnavailable, "run ledger disabled")
		return
	}

	st, err := h.store.Stats(h.gameID)
	if err != nil {
		h.logger.Error("cannot load stats", "error", err)
		respondError(w, h.logger, http.StatusInternalServerError, "cannot load stats")
		return
	}
	respondJSON(w, h.logger, http.StatusOK, st)
}

// ListSessions handles GET /api/sessions
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	if h.sessions == nil {
		respondError(w, h.logger, http.StatusServiceUnavailable, "no session table")
		return
	}
	respondJSON(w, h.logger, http.StatusOK, h.sessions.List())
}

func parseLimit(s string) (int, error) {
	if s == "" {
		return defaultLimit, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("limit must be a positive integer")
	}
	return min(n, maxLimit), nil
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, logger *log.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Warn("cannot encode JSON", "error", err)
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, logger *log.Logger, status int, message string) {
	respondJSON(w, logger, status, map[string]string{"error": message})
}
