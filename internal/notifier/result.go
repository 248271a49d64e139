package notifier

import (
	"fmt"
	"time"
)

// Category names the reason a send did not go through.
type Category string

const (
	CategoryDependencyMissing Category = "dependency_missing"
	CategoryConfigMissing     Category = "config_missing"
	CategoryProviderFailure   Category = "provider_failure"
)

// Result statuses.
const (
	StatusSent        = "sent"
	StatusRejected    = "rejected"
	StatusRateLimited = "rate_limited"
	StatusUnknown     = "unknown"
)

// SendRequest is a single outbound message. Neither field is validated here;
// the provider decides what it accepts.
type SendRequest struct {
	To   string
	Body string
}

// Result is the outcome of one send attempt. Failed results carry a Category
// and the diagnostic text in Error; successful ones carry the provider
// message identifier.
type Result struct {
	OK        bool
	MessageID string
	RequestID string
	Category  Category
	Status    string
	Code      *int
	Error     string
	Timestamp time.Time
}

// String renders a one-line summary for console output.
func (r Result) String() string {
	if r.OK {
		return fmt.Sprintf("Message sent with SID: %s", r.MessageID)
	}
	return fmt.Sprintf("Message not sent (%s): %s", r.Category, r.Error)
}

// BulkResult aggregates the outcome of SendBulk.
type BulkResult struct {
	Sent    int
	Failed  int
	Results []Result
}
