// Package models defines the types shared by the rate limiter's stores,
// middleware and admin surface.
package models

import (
	"time"
)

// EndpointClass categorizes endpoints for differentiated rate limiting.
type EndpointClass string

const (
	// ClassCompute covers the arithmetic endpoints under /v1/calc.
	ClassCompute EndpointClass = "compute"
	// ClassRead covers cheap read endpoints: registry listings, validation,
	// current time.
	ClassRead EndpointClass = "read"
	// ClassAdmin covers the /admin surface.
	ClassAdmin EndpointClass = "admin"
)

// IsValid checks if the endpoint class is one of the supported enum values.
func (c EndpointClass) IsValid() bool {
	switch c {
	case ClassCompute, ClassRead, ClassAdmin:
		return true
	}
	return false
}

// String returns the string representation.
func (c EndpointClass) String() string {
	return string(c)
}

// Classes lists all endpoint classes in a stable order.
func Classes() []EndpointClass {
	return []EndpointClass{ClassCompute, ClassRead, ClassAdmin}
}

// Limit is a request budget over a sliding window.
type Limit struct {
	Requests int
	Window   time.Duration
}

// Limits maps endpoint classes to their budgets.
type Limits map[EndpointClass]Limit

// For returns the budget for a class. Unknown classes get the read budget
// so an unmapped route never becomes unlimited.
func (l Limits) For(class EndpointClass) Limit {
	if limit, ok := l[class]; ok {
		return limit
	}
	return l[ClassRead]
}

// RateLimitResult represents the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed    bool      `json:"allowed"`
	Limit      int       `json:"limit"`
	Remaining  int       `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
	RetryAfter int       `json:"retry_after,omitempty"` // seconds, only set when denied
}

// ClassStatus is one row of the admin status report: a class budget and
// its current consumption for one caller identity.
type ClassStatus struct {
	Class     EndpointClass `json:"class"`
	Limit     int           `json:"limit"`
	WindowSec int           `json:"window_seconds"`
	Used      int           `json:"used"`
	Remaining int           `json:"remaining"`
}
