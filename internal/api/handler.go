package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/chaos-economy/internal/economy"
	"github.com/vovakirdan/chaos-economy/internal/session"
	"github.com/vovakirdan/chaos-economy/internal/storage"
)

// Result listing limits
const (
	defaultResultsLimit = 10
	maxResultsLimit     = 100
)

// ResultsLister provides recorded games. *storage.Store satisfies it.
type ResultsLister interface {
	TopResults(limit int) ([]storage.ResultEntry, error)
}

// HandlerDeps wires a Handler to its table, sinks and session limits.
type HandlerDeps struct {
	Table    *economy.Table
	Recorder session.Recorder // May be nil
	Results  ResultsLister    // May be nil; /results then answers 503
	Logger   *log.Logger      // May be nil
	Limits   Limits
}

// Handler serves the game over JSON.
type Handler struct {
	registry *Registry
	table    *economy.Table
	results  ResultsLister
	logger   *log.Logger
}

// NewHandler creates a handler with an empty session registry.
// A nil table selects the built-in one.
func NewHandler(deps HandlerDeps) *Handler {
	if deps.Table == nil {
		deps.Table = economy.DefaultTable()
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	return &Handler{
		registry: NewRegistry(deps.Table, deps.Recorder, deps.Logger, deps.Limits),
		table:    deps.Table,
		results:  deps.Results,
		logger:   deps.Logger,
	}
}

// Registry exposes the live sessions.
func (h *Handler) Registry() *Registry {
	return h.registry
}

// Health reports liveness and the number of live sessions.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": h.registry.Len(),
	})
}

// CreateSession starts a session and answers 201 with its first view.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var payload CreateSessionRequest
	if err := decode(r.Body, &payload, true); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	id, err := h.registry.Create(payload.Seed)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	h.withSession(w, id, http.StatusCreated, func(c *session.Controller) (any, error) {
		return c.Snapshot(), nil
	})
}

// GetSession returns the current view of a session.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, chi.URLParam(r, "id"), http.StatusOK, func(c *session.Controller) (any, error) {
		return c.Snapshot(), nil
	})
}

// DeleteSession drops a session and answers 204.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PlayRound resolves one period with the posted consumption.
func (h *Handler) PlayRound(w http.ResponseWriter, r *http.Request) {
	var payload RoundRequest
	if err := decode(r.Body, &payload, false); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %v", session.ErrInvalidAction, err))
		return
	}
	if payload.Consumption == nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: consumption is required", session.ErrInvalidAction))
		return
	}

	h.withSession(w, chi.URLParam(r, "id"), http.StatusOK, func(c *session.Controller) (any, error) {
		round, err := c.Submit(*payload.Consumption)
		if err != nil {
			return nil, err
		}
		return RoundResponse{Round: round, Session: c.Snapshot()}, nil
	})
}

// Restart starts a session over from period 1.
func (h *Handler) Restart(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, chi.URLParam(r, "id"), http.StatusOK, func(c *session.Controller) (any, error) {
		c.Restart()
		return c.Snapshot(), nil
	})
}

// Report returns the final report of a finished session.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, chi.URLParam(r, "id"), http.StatusOK, func(c *session.Controller) (any, error) {
		report, err := c.Report()
		if err != nil {
			return nil, err
		}
		return report, nil
	})
}

// Results lists the longest-surviving games, up to ?limit.
func (h *Handler) Results(w http.ResponseWriter, r *http.Request) {
	if h.results == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("api: result store is disabled"))
		return
	}

	limit := defaultResultsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("api: invalid limit %q", raw))
			return
		}
		limit = min(n, maxResultsLimit)
	}

	results, err := h.results.TopResults(limit)
	if err != nil {
		h.logger.Error("list results", "error", err)
		writeError(w, http.StatusInternalServerError, errors.New("api: cannot load results"))
		return
	}
	if results == nil {
		results = []storage.ResultEntry{}
	}
	writeJSON(w, http.StatusOK, ResultsResponse{Results: results})
}

// Table returns the public columns of the period table.
func (h *Handler) Table(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toTableResponse(h.table))
}

// withSession runs fn under the session lock and writes its result or error.
func (h *Handler) withSession(w http.ResponseWriter, id string, status int, fn func(*session.Controller) (any, error)) {
	var body any
	err := h.registry.With(id, func(c *session.Controller) error {
		var fnErr error
		body, fnErr = fn(c)
		return fnErr
	})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, status, body)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrInvalidAction):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrSessionOver), errors.Is(err, session.ErrSessionActive):
		return http.StatusConflict
	case errors.Is(err, ErrTooManySessions):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// decode reads a JSON body into out. An empty body is accepted when optional.
func decode(body io.Reader, out any, optional bool) error {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("api: invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}
