// Package usage records what callers ask the service to compute. Events
// flow from handlers through the publisher into sinks: an in-memory ring
// for the admin API, a Postgres outbox for durable analytics, Kafka for
// downstream consumers.
package usage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Outcome classifies how an operation ended.
type Outcome string

const (
	OutcomeOK    Outcome = "ok"
	OutcomeError Outcome = "error"
)

// Operation names for recorded events.
const (
	OpPlus           = "plus"
	OpMinus          = "minus"
	OpWith           = "with"
	OpRoll           = "roll"
	OpTruncate       = "truncate"
	OpUntil          = "until"
	OpConvertOffset  = "convert_offset"
	OpValidate       = "validate"
	OpFields         = "fields"
	OpRegistryFields = "registry_fields"
	OpUnits          = "units"
	OpChronologies   = "chronologies"
	OpNow            = "now"
)

// Category groups operations for retention and dashboards.
type Category string

const (
	// CategoryCompute covers arithmetic requests, the billable surface.
	CategoryCompute Category = "compute"
	// CategoryRead covers registry listings and other cheap reads.
	CategoryRead Category = "read"
)

// operationCategories maps each operation to its category.
var operationCategories = map[string]Category{
	OpPlus:          CategoryCompute,
	OpMinus:         CategoryCompute,
	OpWith:          CategoryCompute,
	OpRoll:          CategoryCompute,
	OpTruncate:      CategoryCompute,
	OpUntil:         CategoryCompute,
	OpConvertOffset: CategoryCompute,

	OpValidate:       CategoryRead,
	OpFields:         CategoryRead,
	OpRegistryFields: CategoryRead,
	OpUnits:          CategoryRead,
	OpChronologies:   CategoryRead,
	OpNow:            CategoryRead,
}

// OperationCategory returns the category for an operation. Unknown
// operations default to CategoryRead.
func OperationCategory(op string) Category {
	if cat, ok := operationCategories[op]; ok {
		return cat
	}
	return CategoryRead
}

// Event is one recorded operation. Keep it transport-agnostic so sinks
// can fan out.
type Event struct {
	ID         uuid.UUID `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	RequestID  string    `json:"request_id,omitempty"`
	ClientID   string    `json:"client_id,omitempty"`
	ClientIP   string    `json:"client_ip,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	Operation  string    `json:"operation"`
	Chronology string    `json:"chronology,omitempty"`
	Field      string    `json:"field,omitempty"`
	Unit       string    `json:"unit,omitempty"`
	Zone       string    `json:"zone,omitempty"`
	Outcome    Outcome   `json:"outcome"`
	ErrorCode  string    `json:"error_code,omitempty"`
	DurationMs int64     `json:"duration_ms"`
}

// Category derives the event's category from its operation.
func (e Event) Category() Category {
	return OperationCategory(e.Operation)
}

// Sink receives usage events. Implementations must tolerate concurrent
// Append calls.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// RecentLister reports the most recent events, newest first. The admin
// API reads through this.
type RecentLister interface {
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}
