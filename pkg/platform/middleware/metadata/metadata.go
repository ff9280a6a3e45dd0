// Package metadata extracts client IP and User-Agent from the request and
// makes them available via requestcontext. The usage recorder attributes
// traffic with these values.
package metadata

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"tempus/pkg/requestcontext"
)

// ClientMetadata extracts the client IP address and a normalized User-Agent
// from the request and adds them to the context for handlers and services.
// Apply early in the chain, before anything that records usage.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ClientIPFromRequest(r)
		ua := NormalizeUserAgent(r.Header.Get("User-Agent"))

		ctx := requestcontext.WithClientMetadata(r.Context(), ip, ua)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientIPFromRequest extracts the real client IP from the request,
// handling proxies and load balancers.
func ClientIPFromRequest(r *http.Request) string {
	// X-Forwarded-For can contain multiple IPs (client, proxy1, proxy2, ...);
	// the first is the original client.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	// X-Real-IP is set by nginx and similar proxies.
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// RemoteAddr is "ip:port" for IPv4 and "[::1]:port" for IPv6.
	if addr := r.RemoteAddr; addr != "" {
		if idx := strings.LastIndex(addr, ":"); idx != -1 {
			return addr[:idx]
		}
		return addr
	}

	return "unknown"
}

// NormalizeUserAgent reduces a raw User-Agent header to a compact
// "browser version (os)" form for storage. Bots keep their declared name.
// Unparseable agents are truncated rather than dropped.
func NormalizeUserAgent(raw string) string {
	if raw == "" {
		return ""
	}

	ua := useragent.New(raw)
	name, version := ua.Browser()
	if ua.Bot() {
		return fmt.Sprintf("bot:%s", name)
	}
	if name != "" {
		if osInfo := ua.OS(); osInfo != "" {
			return fmt.Sprintf("%s %s (%s)", name, version, osInfo)
		}
		return fmt.Sprintf("%s %s", name, version)
	}

	const maxRaw = 64
	if len(raw) > maxRaw {
		return raw[:maxRaw]
	}
	return raw
}
