package admin

import (
	ratemodels "tempus/internal/ratelimit/models"
	"tempus/pkg/platform/usage"
)

// TokenResponse carries a freshly minted service token.
type TokenResponse struct {
	Token            string `json:"token"`
	TokenType        string `json:"token_type"`
	ExpiresInSeconds int64  `json:"expires_in_seconds"`
}

// RecentUsageResponse wraps the newest usage events, newest first.
type RecentUsageResponse struct {
	Events []usage.Event `json:"events"`
	Count  int           `json:"count"`
}

// RateLimitStatusResponse reports one identity's consumption across all
// endpoint classes.
type RateLimitStatusResponse struct {
	Identity string                   `json:"identity"`
	Classes  []ratemodels.ClassStatus `json:"classes"`
}
