// Package domain holds the lead state machine types shared across the
// allocator, the status controller, and their adapters.
package domain

// Status is the lead pipeline status. The same value is mirrored into the
// lead's sales_status column on every write; the two never diverge.
type Status string

const (
	StatusNew           Status = "New"
	StatusAssigned      Status = "Assigned"
	StatusContacted     Status = "Contacted"
	StatusQuoteSent     Status = "QuoteSent"
	StatusQuoteApproved Status = "QuoteApproved"
	StatusInProduction  Status = "InProduction"
	StatusCompleted     Status = "Completed"
	StatusLost          Status = "Lost"
)

// AllStatuses lists every valid lead status in pipeline order.
var AllStatuses = []Status{
	StatusNew,
	StatusAssigned,
	StatusContacted,
	StatusQuoteSent,
	StatusQuoteApproved,
	StatusInProduction,
	StatusCompleted,
	StatusLost,
}

// ParseStatus validates a raw status value. The boolean is false for any
// value outside the fixed status set.
func ParseStatus(raw string) (Status, bool) {
	for _, s := range AllStatuses {
		if string(s) == raw {
			return s, true
		}
	}
	return "", false
}

// String returns the status as a plain string.
func (s Status) String() string {
	return string(s)
}

// RequiresElevatedRole reports whether transitioning a lead into this status
// is restricted to owner/admin callers.
func (s Status) RequiresElevatedRole() bool {
	return s == StatusQuoteApproved
}
