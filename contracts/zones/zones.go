// Package zones defines the wire contract between tempus and a zone
// resolver. The resolver owns timezone rules; tempus only asks what UTC
// offset a named zone has at a given instant. Both sides of the HTTP
// boundary, including the standalone mock resolver, build against these
// types, which is why the module has no dependencies.
package zones

import (
	"net/url"
	"time"
)

// InstantParam is the query parameter carrying the instant a lookup
// applies to, formatted as RFC 3339.
const InstantParam = "instant"

// LookupResponse is the resolver's answer for one zone.
type LookupResponse struct {
	// Zone is the canonical zone name, which may differ from the
	// requested one when an alias was used.
	Zone string `json:"zone"`

	// OffsetSeconds is the total UTC offset in seconds in effect at the
	// requested instant. Negative west of Greenwich.
	OffsetSeconds int `json:"offset_seconds"`

	// Aliases lists other names the resolver accepts for this zone.
	Aliases []string `json:"aliases,omitempty"`
}

// ListResponse enumerates the zones a resolver serves.
type ListResponse struct {
	Zones []string `json:"zones"`
}

// ErrorResponse is the resolver's error envelope. Error codes:
// "zone_not_found" for unknown names, "invalid_request" for a malformed
// zone or instant.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// Resolver error codes.
const (
	ErrorZoneNotFound   = "zone_not_found"
	ErrorInvalidRequest = "invalid_request"
)

// LookupPath returns the request path for one zone lookup.
func LookupPath(zone string) string {
	return "/zones/" + url.PathEscape(zone)
}

// ListPath is the request path for enumerating zones.
const ListPath = "/zones"

// FormatInstant renders an instant the way the resolver expects it.
func FormatInstant(at time.Time) string {
	return at.UTC().Format(time.RFC3339)
}
