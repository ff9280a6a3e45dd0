package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and infrastructure layers
// return these (optionally wrapped) so services can translate them into
// domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in store (unknown zone, missing key)
// - ErrClosed: component already shut down, no further writes accepted
// - ErrBufferFull: async queue at capacity, event dropped
// - ErrUnavailable: backing service temporarily unreachable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors.
var (
	ErrNotFound    = errors.New("not found")
	ErrClosed      = errors.New("closed")
	ErrBufferFull  = errors.New("buffer full")
	ErrUnavailable = errors.New("unavailable")
)
