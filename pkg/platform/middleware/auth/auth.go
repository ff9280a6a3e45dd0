// Package auth authenticates API clients by their X-API-Key credential.
package auth

import (
	"log/slog"
	"net/http"

	"tempus/pkg/platform/httputil"
	"tempus/pkg/requestcontext"
)

// KeyVerifier checks an API key credential and returns the client ID.
type KeyVerifier interface {
	Verify(credential string) (string, error)
	Empty() bool
}

// APIKey authenticates requests carrying an X-API-Key header and records
// the client ID in the context. Requests without the header stay
// anonymous; a present but invalid key is rejected. When no keys are
// configured at all the middleware is a no-op, so development setups work
// out of the box.
func APIKey(keys KeyVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if keys.Empty() {
				next.ServeHTTP(w, r)
				return
			}

			credential := r.Header.Get("X-API-Key")
			if credential == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			clientID, err := keys.Verify(credential)
			if err != nil {
				logger.WarnContext(ctx, "API key rejected",
					"request_id", requestcontext.RequestID(ctx),
					"client_ip", requestcontext.ClientIP(ctx),
				)
				httputil.WriteError(w, err)
				return
			}

			ctx = requestcontext.WithClientID(ctx, clientID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
