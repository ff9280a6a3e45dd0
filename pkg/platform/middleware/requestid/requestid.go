// Package requestid assigns every request a correlation ID. Incoming
// X-Request-ID headers are trusted so IDs survive hops through gateways;
// otherwise a fresh UUID is minted.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"tempus/pkg/requestcontext"
)

// Header is the request ID header read and echoed by Middleware.
const Header = "X-Request-ID"

// Middleware injects the request ID into the context and echoes it on the
// response so clients can correlate.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(Header)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		w.Header().Set(Header, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
