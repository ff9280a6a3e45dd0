package admin

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"tempus/internal/platform/logger"
	dErrors "tempus/pkg/domain-errors"
	"tempus/pkg/requestcontext"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAdminToken(t *testing.T) {
	log := logger.NewNop()

	t.Run("matching token passes", func(t *testing.T) {
		mw := RequireAdminToken("s3cret", log)
		req := httptest.NewRequest(http.MethodPost, "/admin/token", nil)
		req.Header.Set("X-Admin-Token", "s3cret")
		rr := httptest.NewRecorder()

		mw(okHandler()).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("wrong token rejected", func(t *testing.T) {
		mw := RequireAdminToken("s3cret", log)
		req := httptest.NewRequest(http.MethodPost, "/admin/token", nil)
		req.Header.Set("X-Admin-Token", "guess")
		rr := httptest.NewRecorder()

		mw(okHandler()).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("unconfigured token locks the endpoint", func(t *testing.T) {
		mw := RequireAdminToken("", log)
		req := httptest.NewRequest(http.MethodPost, "/admin/token", nil)
		req.Header.Set("X-Admin-Token", "")
		rr := httptest.NewRecorder()

		mw(okHandler()).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

type stubValidator struct {
	claims *TokenClaims
	err    error
}

func (s stubValidator) ValidateToken(string) (*TokenClaims, error) {
	return s.claims, s.err
}

func TestRequireServiceToken(t *testing.T) {
	log := logger.NewNop()

	t.Run("valid admin token passes and sets client id", func(t *testing.T) {
		mw := RequireServiceToken(stubValidator{claims: &TokenClaims{Subject: "ops-cli", Role: "admin"}}, log)
		var gotClient string
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotClient = requestcontext.ClientID(r.Context())
		})
		req := httptest.NewRequest(http.MethodGet, "/admin/usage/recent", nil)
		req.Header.Set("Authorization", "Bearer token")
		rr := httptest.NewRecorder()

		mw(inner).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "ops-cli", gotClient)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		mw := RequireServiceToken(stubValidator{claims: &TokenClaims{Role: "admin"}}, log)
		req := httptest.NewRequest(http.MethodGet, "/admin/usage/recent", nil)
		rr := httptest.NewRecorder()

		mw(okHandler()).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("invalid token rejected", func(t *testing.T) {
		mw := RequireServiceToken(stubValidator{err: dErrors.New(dErrors.CodeUnauthorized, "expired")}, log)
		req := httptest.NewRequest(http.MethodGet, "/admin/usage/recent", nil)
		req.Header.Set("Authorization", "Bearer stale")
		rr := httptest.NewRecorder()

		mw(okHandler()).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("non-admin role forbidden", func(t *testing.T) {
		mw := RequireServiceToken(stubValidator{claims: &TokenClaims{Subject: "svc", Role: "reader"}}, log)
		req := httptest.NewRequest(http.MethodGet, "/admin/usage/recent", nil)
		req.Header.Set("Authorization", "Bearer token")
		rr := httptest.NewRecorder()

		mw(okHandler()).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}
