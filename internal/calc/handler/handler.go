// Package handler exposes the calculation API under /v1. Handlers
// decode, call the service and map errors; every computed answer leaves
// through the shared JSON envelopes.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tempus/internal/calc/models"
	"tempus/internal/platform/metrics"
	ratelimitmw "tempus/internal/ratelimit/middleware"
	ratemodels "tempus/internal/ratelimit/models"
	dErrors "tempus/pkg/domain-errors"
	"tempus/pkg/platform/httputil"
	"tempus/pkg/platform/middleware/auth"
	"tempus/pkg/platform/middleware/contenttype"
	"tempus/pkg/platform/middleware/latency"
	"tempus/pkg/platform/middleware/logging"
	"tempus/pkg/platform/middleware/metadata"
	"tempus/pkg/platform/middleware/recovery"
	"tempus/pkg/platform/middleware/requestid"
	"tempus/pkg/platform/middleware/requesttime"
	"tempus/pkg/requestcontext"
)

// Service defines the calculation operations the handlers expose.
type Service interface {
	Plus(ctx context.Context, req models.ShiftRequest) (models.ValueResponse, error)
	Minus(ctx context.Context, req models.ShiftRequest) (models.ValueResponse, error)
	With(ctx context.Context, req models.WithRequest) (models.ValueResponse, error)
	Roll(ctx context.Context, req models.RollRequest) (models.ValueResponse, error)
	Truncate(ctx context.Context, req models.TruncateRequest) (models.ValueResponse, error)
	Until(ctx context.Context, req models.UntilRequest) (models.AmountResponse, error)
	ConvertOffset(ctx context.Context, req models.ConvertOffsetRequest) (models.ValueResponse, error)
	ValidateDate(ctx context.Context, req models.ValidateDateRequest) (models.ValidateDateResponse, error)
	DateFields(ctx context.Context, date, chronology string) (models.DateFieldsResponse, error)
	Chronologies(ctx context.Context) (models.ChronologiesResponse, error)
	RegistryFields(ctx context.Context) (models.RegistryFieldsResponse, error)
	RegistryUnits(ctx context.Context) (models.RegistryUnitsResponse, error)
	Now(ctx context.Context, zone string) (models.NowResponse, error)
}

// Handler handles the /v1 calculation endpoints.
type Handler struct {
	logger    *slog.Logger
	service   Service
	metrics   *metrics.Metrics
	keys      auth.KeyVerifier
	ratelimit *ratelimitmw.Middleware
}

// New creates the calculation Handler. Metrics, keys and the rate
// limiter may be nil; the corresponding middleware is then skipped.
func New(
	service Service,
	logger *slog.Logger,
	m *metrics.Metrics,
	keys auth.KeyVerifier,
	ratelimit *ratelimitmw.Middleware) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		metrics:   m,
		keys:      keys,
		ratelimit: ratelimit,
	}
}

// Register mounts the /v1 routes. The arithmetic endpoints sit behind
// the compute-class limit, listings and lookups behind the read class.
func (h *Handler) Register(r chi.Router) {
	v1 := chi.NewRouter()
	v1.Use(recovery.Middleware(h.logger))
	v1.Use(requestid.Middleware)
	v1.Use(requesttime.Middleware)
	v1.Use(metadata.ClientMetadata)
	v1.Use(logging.Middleware(h.logger))
	if h.metrics != nil {
		v1.Use(latency.Middleware(h.metrics))
	}
	if h.keys != nil {
		v1.Use(auth.APIKey(h.keys, h.logger))
	}

	v1.Group(func(g chi.Router) {
		g.Use(contenttype.RequireJSON)
		if h.ratelimit != nil {
			g.Use(h.ratelimit.RateLimit(ratemodels.ClassCompute))
		}
		g.Post("/calc/plus", h.handlePlus)
		g.Post("/calc/minus", h.handleMinus)
		g.Post("/calc/with", h.handleWith)
		g.Post("/calc/roll", h.handleRoll)
		g.Post("/calc/truncate", h.handleTruncate)
		g.Post("/calc/until", h.handleUntil)
		g.Post("/calc/offset/convert", h.handleConvertOffset)
	})

	v1.Group(func(g chi.Router) {
		if h.ratelimit != nil {
			g.Use(h.ratelimit.RateLimit(ratemodels.ClassRead))
		}
		g.With(contenttype.RequireJSON).Post("/dates/validate", h.handleValidateDate)
		g.Get("/dates/fields", h.handleDateFields)
		g.Get("/chronologies", h.handleChronologies)
		g.Get("/registry/fields", h.handleRegistryFields)
		g.Get("/registry/units", h.handleRegistryUnits)
		g.Get("/now", h.handleNow)
	})

	r.Mount("/v1", v1)
}

func (h *Handler) handlePlus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.ShiftRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeDecodeError(ctx, w, "plus", err)
		return
	}
	resp, err := h.service.Plus(ctx, req)
	if err != nil {
		h.writeServiceError(ctx, w, "plus", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleMinus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.ShiftRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeDecodeError(ctx, w, "minus", err)
		return
	}
	resp, err := h.service.Minus(ctx, req)
	if err != nil {
		h.writeServiceError(ctx, w, "minus", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleWith(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.WithRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeDecodeError(ctx, w, "with", err)
		return
	}
	resp, err := h.service.With(ctx, req)
	if err != nil {
		h.writeServiceError(ctx, w, "with", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleRoll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.RollRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeDecodeError(ctx, w, "roll", err)
		return
	}
	resp, err := h.service.Roll(ctx, req)
	if err != nil {
		h.writeServiceError(ctx, w, "roll", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleTruncate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.TruncateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeDecodeError(ctx, w, "truncate", err)
		return
	}
	resp, err := h.service.Truncate(ctx, req)
	if err != nil {
		h.writeServiceError(ctx, w, "truncate", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleUntil(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.UntilRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeDecodeError(ctx, w, "until", err)
		return
	}
	resp, err := h.service.Until(ctx, req)
	if err != nil {
		h.writeServiceError(ctx, w, "until", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleConvertOffset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.ConvertOffsetRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeDecodeError(ctx, w, "convert_offset", err)
		return
	}
	resp, err := h.service.ConvertOffset(ctx, req)
	if err != nil {
		h.writeServiceError(ctx, w, "convert_offset", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleValidateDate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.ValidateDateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeDecodeError(ctx, w, "validate", err)
		return
	}
	resp, err := h.service.ValidateDate(ctx, req)
	if err != nil {
		h.writeServiceError(ctx, w, "validate", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleDateFields(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	resp, err := h.service.DateFields(ctx, q.Get("date"), q.Get("chronology"))
	if err != nil {
		h.writeServiceError(ctx, w, "fields", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleChronologies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp, err := h.service.Chronologies(ctx)
	if err != nil {
		h.writeServiceError(ctx, w, "chronologies", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleRegistryFields(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp, err := h.service.RegistryFields(ctx)
	if err != nil {
		h.writeServiceError(ctx, w, "registry_fields", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleRegistryUnits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp, err := h.service.RegistryUnits(ctx)
	if err != nil {
		h.writeServiceError(ctx, w, "registry_units", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleNow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp, err := h.service.Now(ctx, r.URL.Query().Get("zone"))
	if err != nil {
		h.writeServiceError(ctx, w, "now", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// writeDecodeError rejects a request whose body failed to decode.
func (h *Handler) writeDecodeError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	h.logger.WarnContext(ctx, "malformed calc request",
		"request_id", requestcontext.RequestID(ctx),
		"operation", op,
		"error", err.Error(),
	)
	httputil.WriteError(w, err)
}

// writeServiceError logs client-caused failures quietly and everything
// else loudly. WriteError already keeps internal detail out of the body,
// so the error passes through unwrapped either way.
func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	status := dErrors.ToHTTPStatus(dErrors.CodeOf(err))
	if status < http.StatusInternalServerError {
		h.logger.WarnContext(ctx, "calc request rejected",
			"request_id", requestcontext.RequestID(ctx),
			"operation", op,
			"error", err.Error(),
		)
	} else {
		h.logger.ErrorContext(ctx, "calc request failed",
			"request_id", requestcontext.RequestID(ctx),
			"operation", op,
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}
