package testutil

import (
	"net/http"
	"time"

	"tempus/pkg/requestcontext"
)

// WithClientID stamps an authenticated client ID onto the request
// context, simulating what the API key middleware does.
func WithClientID(req *http.Request, clientID string) *http.Request {
	ctx := requestcontext.WithClientID(req.Context(), clientID)
	return req.WithContext(ctx)
}

// WithRequestID stamps a request ID onto the request context, simulating
// what the request ID middleware does.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	ctx := requestcontext.WithRequestID(req.Context(), requestID)
	return req.WithContext(ctx)
}

// WithClientMetadata stamps the caller's IP and user agent onto the
// request context, simulating the metadata middleware.
func WithClientMetadata(req *http.Request, clientIP, userAgent string) *http.Request {
	ctx := requestcontext.WithClientMetadata(req.Context(), clientIP, userAgent)
	return req.WithContext(ctx)
}

// WithRequestTime pins the request clock so time-dependent handlers see a
// fixed instant instead of time.Now.
func WithRequestTime(req *http.Request, at time.Time) *http.Request {
	ctx := requestcontext.WithTime(req.Context(), at)
	return req.WithContext(ctx)
}
