// Package contenttype enforces JSON request bodies on mutating methods.
package contenttype

import (
	"net/http"
	"strings"

	dErrors "tempus/pkg/domain-errors"
	"tempus/pkg/platform/httputil"
)

// RequireJSON rejects POST, PUT and PATCH requests whose Content-Type is
// not application/json. GETs and bodyless requests pass through.
func RequireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			ct := r.Header.Get("Content-Type")
			if mediaType(ct) != "application/json" {
				httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Content-Type must be application/json"))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// mediaType strips parameters like "; charset=utf-8".
func mediaType(ct string) string {
	if idx := strings.Index(ct, ";"); idx != -1 {
		ct = ct[:idx]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}
