package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/eugenenazirov/siteconfig/internal/environ"
	"github.com/eugenenazirov/siteconfig/internal/metrics"
	"github.com/eugenenazirov/siteconfig/internal/render"
	"github.com/eugenenazirov/siteconfig/internal/siteconfig"
	"github.com/eugenenazirov/siteconfig/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler wires the snapshot store and resolver into HTTP handlers.
type Handler struct {
	storage storage.Storage
	metrics *metrics.Recorder

	clock func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithMetrics records config reads and resolutions on rec.
func WithMetrics(rec *metrics.Recorder) HandlerOption {
	return func(h *Handler) {
		h.metrics = rec
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(store storage.Storage, opts ...HandlerOption) *Handler {
	h := &Handler{
		storage: store,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	format := render.FormatJSON
	if raw := r.URL.Query().Get("format"); raw != "" {
		parsed, err := render.ParseFormat(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid format", err.Error())
			return
		}
		format = parsed
	}

	snap, err := h.storage.Get()
	if err != nil {
		if errors.Is(err, storage.ErrEmpty) {
			writeError(w, http.StatusServiceUnavailable, "Configuration not resolved", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	h.metrics.ObserveConfigRead(string(format))

	resp := configResponse{
		Mode:       snap.Mode,
		ResolvedAt: snap.ResolvedAt,
		Config:     snap.Config.Document(),
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	_ = render.Write(w, resp, format)
}

func (h *Handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	mode := siteconfig.DetectMode(req.Args)
	cfg := siteconfig.Resolve(req.Args, environ.Map(req.Env))
	h.metrics.ObserveResolution(mode)

	resp := configResponse{
		Mode:       mode,
		ResolvedAt: h.clock(),
		Config:     cfg.Document(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type resolveRequest struct {
	Args []string          `json:"args"`
	Env  map[string]string `json:"env"`
}

type configResponse struct {
	Mode       siteconfig.Mode     `json:"mode" yaml:"mode"`
	ResolvedAt time.Time           `json:"resolvedAt" yaml:"resolvedAt"`
	Config     siteconfig.Document `json:"config" yaml:"config"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{
		Error:   message,
		Details: details,
	})
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
