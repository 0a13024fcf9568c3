package events

import (
	"leadtrack_backend/platform/events"
	"leadtrack_backend/platform/logger"
)

// NewInMemoryBus constructs the process-local bus from platform/events.
func NewInMemoryBus(log *logger.Logger) *events.InMemoryBus {
	return events.NewInMemoryBus(log)
}
