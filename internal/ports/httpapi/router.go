// Package httpapi serves the session store over JSON HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"rogueace/internal/app"
	"rogueace/internal/domain"
)

const maxBodyBytes = 64 << 10

// ErrorBody is the error half of a response.
type ErrorBody struct {
	Kind    domain.ErrorKind `json:"kind,omitempty"`
	Message string           `json:"message"`
}

// Response wraps every session reply. A rejected action carries both the error and the
// unchanged state.
type Response struct {
	State *app.Snapshot `json:"state,omitempty"`
	Error *ErrorBody    `json:"error,omitempty"`
}

type handlers struct {
	store *app.Store
}

// NewRouter mounts the API on a chi router.
func NewRouter(store *app.Store, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &handlers{store: store}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	r.Route("/api/sessions", func(r chi.Router) {
		r.Get("/", h.listSessions)
		r.Get("/{id}", h.getState)
		r.Post("/{id}/actions", h.postAction)
		r.Delete("/{id}", h.deleteSession)
	})
	return r
}

func (h *handlers) listSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"sessions": h.store.IDs()})
}

func (h *handlers) getState(w http.ResponseWriter, r *http.Request) {
	seat, err := seatParam(r)
	if err != nil {
		writeError(w, nil, err)
		return
	}
	snap, err := h.store.State(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, nil, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{State: view(snap, seat)})
}

func (h *handlers) postAction(w http.ResponseWriter, r *http.Request) {
	seat, err := seatParam(r)
	if err != nil {
		writeError(w, nil, err)
		return
	}
	var act app.Action
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&act); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, nil, err)
			return
		}
		writeError(w, nil, domain.Errorf(domain.KindInvalidAction, "malformed action: %v", err))
		return
	}

	snap, err := h.store.Apply(r.Context(), chi.URLParam(r, "id"), act)
	if err != nil {
		if domain.KindOf(err) == "" {
			writeError(w, nil, err)
			return
		}
		writeError(w, view(snap, seat), err)
		return
	}
	writeJSON(w, http.StatusOK, Response{State: view(snap, seat)})
}

func (h *handlers) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Remove(chi.URLParam(r, "id")); err != nil {
		writeError(w, nil, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// seatParam reads the optional ?seat= viewer.
func seatParam(r *http.Request) (*int, error) {
	raw := r.URL.Query().Get("seat")
	if raw == "" {
		return nil, nil
	}
	seat, err := strconv.Atoi(raw)
	if err != nil {
		return nil, domain.Errorf(domain.KindInvalidAction, "seat must be an integer, got %q", raw)
	}
	return &seat, nil
}

func view(snap app.Snapshot, seat *int) *app.Snapshot {
	if seat != nil {
		snap = snap.ForSeat(*seat)
	}
	return &snap
}

// statusFor maps an error onto an HTTP status.
func statusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindSessionNotFound:
		return http.StatusNotFound
	case domain.KindInvalidAction, domain.KindInvalidChoice, domain.KindInvalidRulerSelection,
		domain.KindCardNotInHand, domain.KindIllegalPlay:
		return http.StatusUnprocessableEntity
	case domain.KindNotYourTurn, domain.KindEmptyDeck, domain.KindChoicePending,
		domain.KindUnexpectedAction, domain.KindGameOver, domain.KindInsufficientCards:
		return http.StatusConflict
	}
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, state *app.Snapshot, err error) {
	kind := domain.KindOf(err)
	writeJSON(w, statusFor(err), Response{State: state, Error: &ErrorBody{Kind: kind, Message: err.Error()}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
