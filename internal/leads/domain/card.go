package domain

// CardReference is the normalized handle to an external tracking card.
// The job's copy is authoritative; the lead caches the same ID for display.
type CardReference struct {
	CardID  string `json:"cardId"`
	CardURL string `json:"cardUrl"`
	// ListID is the external list/category the card landed in; it drives the
	// initial production stage lookup.
	ListID string `json:"listId,omitempty"`
}
