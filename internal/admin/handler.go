// Package admin exposes the operational API: service-token minting,
// the recent-usage journal and rate limit inspection. Everything mounts
// under /admin; apart from token minting, every route requires a minted
// service token with the admin role.
package admin

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"tempus/internal/platform/metrics"
	ratelimitmw "tempus/internal/ratelimit/middleware"
	ratemodels "tempus/internal/ratelimit/models"
	dErrors "tempus/pkg/domain-errors"
	"tempus/pkg/platform/httputil"
	adminmw "tempus/pkg/platform/middleware/admin"
	"tempus/pkg/platform/middleware/contenttype"
	"tempus/pkg/platform/middleware/latency"
	"tempus/pkg/platform/middleware/logging"
	"tempus/pkg/platform/middleware/metadata"
	"tempus/pkg/platform/middleware/recovery"
	"tempus/pkg/platform/middleware/requestid"
	"tempus/pkg/platform/middleware/requesttime"
	"tempus/pkg/platform/usage"
	"tempus/pkg/requestcontext"
)

// TokenMinter issues service tokens for the admin API.
type TokenMinter interface {
	MintToken(subject string) (string, time.Duration, error)
}

// UsageReader lists the most recent usage events, newest first.
type UsageReader interface {
	ListRecent(ctx context.Context, limit int) ([]usage.Event, error)
}

// Limiter inspects and resets per-identity rate limit budgets.
type Limiter interface {
	Status(ctx context.Context, identity string) ([]ratemodels.ClassStatus, error)
	Reset(ctx context.Context, identity string, class ratemodels.EndpointClass) error
}

const defaultRecentLimit = 50

// Handler serves the /admin routes.
type Handler struct {
	logger     *slog.Logger
	minter     TokenMinter
	validator  adminmw.TokenValidator
	usage      UsageReader
	limiter    Limiter
	metrics    *metrics.Metrics
	ratelimit  *ratelimitmw.Middleware
	adminToken string
}

// New creates the admin Handler. adminToken is the static deploy-time
// secret that gates token minting; metrics and the rate limiter may be
// nil, the corresponding middleware is then skipped.
func New(
	minter TokenMinter,
	validator adminmw.TokenValidator,
	usageReader UsageReader,
	limiter Limiter,
	logger *slog.Logger,
	adminToken string,
	m *metrics.Metrics,
	ratelimit *ratelimitmw.Middleware) *Handler {
	return &Handler{
		logger:     logger,
		minter:     minter,
		validator:  validator,
		usage:      usageReader,
		limiter:    limiter,
		metrics:    m,
		ratelimit:  ratelimit,
		adminToken: adminToken,
	}
}

// Register mounts the /admin routes. Minting exchanges the static admin
// token for a service token; the remaining routes take the service token
// and sit behind the admin-class rate limit.
func (h *Handler) Register(r chi.Router) {
	ar := chi.NewRouter()
	ar.Use(recovery.Middleware(h.logger))
	ar.Use(requestid.Middleware)
	ar.Use(requesttime.Middleware)
	ar.Use(metadata.ClientMetadata)
	ar.Use(logging.Middleware(h.logger))
	if h.metrics != nil {
		ar.Use(latency.Middleware(h.metrics))
	}

	ar.With(
		adminmw.RequireAdminToken(h.adminToken, h.logger),
		contenttype.RequireJSON,
	).Post("/token", h.handleMintToken)

	ar.Group(func(g chi.Router) {
		g.Use(adminmw.RequireServiceToken(h.validator, h.logger))
		if h.ratelimit != nil {
			g.Use(h.ratelimit.RateLimit(ratemodels.ClassAdmin))
		}
		g.Get("/usage/recent", h.handleRecentUsage)
		g.Get("/ratelimit/status", h.handleRateLimitStatus)
		g.With(contenttype.RequireJSON).Post("/ratelimit/reset", h.handleRateLimitReset)
	})

	r.Mount("/admin", ar)
}

func (h *Handler) handleMintToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req MintTokenRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeDecodeError(ctx, w, "mint_token", err)
		return
	}
	if req.Subject == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "subject is required"))
		return
	}

	token, ttl, err := h.minter.MintToken(req.Subject)
	if err != nil {
		h.logger.ErrorContext(ctx, "token minting failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "token minting failed"))
		return
	}

	h.logger.InfoContext(ctx, "admin service token minted",
		"request_id", requestcontext.RequestID(ctx),
		"subject", req.Subject,
	)
	httputil.WriteJSON(w, http.StatusOK, TokenResponse{
		Token:            token,
		TokenType:        "Bearer",
		ExpiresInSeconds: int64(ttl.Seconds()),
	})
}

func (h *Handler) handleRecentUsage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	events, err := h.usage.ListRecent(ctx, limit)
	if err != nil {
		h.writeServiceError(ctx, w, "recent_usage", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, RecentUsageResponse{Events: events, Count: len(events)})
}

func (h *Handler) handleRateLimitStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity := r.URL.Query().Get("identity")
	if identity == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "identity query parameter is required"))
		return
	}

	classes, err := h.limiter.Status(ctx, identity)
	if err != nil {
		h.writeServiceError(ctx, w, "ratelimit_status", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, RateLimitStatusResponse{Identity: identity, Classes: classes})
}

func (h *Handler) handleRateLimitReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ResetRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeDecodeError(ctx, w, "ratelimit_reset", err)
		return
	}
	if req.Identity == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "identity is required"))
		return
	}
	class := ratemodels.EndpointClass(req.Class)
	if !class.IsValid() {
		httputil.WriteError(w, dErrors.Newf(dErrors.CodeInvalidInput, "unknown endpoint class %q", req.Class))
		return
	}

	if err := h.limiter.Reset(ctx, req.Identity, class); err != nil {
		h.writeServiceError(ctx, w, "ratelimit_reset", err)
		return
	}

	h.logger.InfoContext(ctx, "rate limit budget reset",
		"request_id", requestcontext.RequestID(ctx),
		"reset_by", requestcontext.ClientID(ctx),
		"identity", req.Identity,
		"class", class.String(),
	)
	httputil.WriteJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) writeDecodeError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	h.logger.WarnContext(ctx, "malformed admin request",
		"request_id", requestcontext.RequestID(ctx),
		"operation", op,
		"error", err.Error(),
	)
	httputil.WriteError(w, err)
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	status := dErrors.ToHTTPStatus(dErrors.CodeOf(err))
	if status < http.StatusInternalServerError {
		h.logger.WarnContext(ctx, "admin request rejected",
			"request_id", requestcontext.RequestID(ctx),
			"operation", op,
			"error", err.Error(),
		)
	} else {
		h.logger.ErrorContext(ctx, "admin request failed",
			"request_id", requestcontext.RequestID(ctx),
			"operation", op,
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}
