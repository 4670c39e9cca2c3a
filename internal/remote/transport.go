package remote

import (
	"errors"

	"github.com/rs/zerolog"
)

// ErrClosed is returned by Emit after Close.
var ErrClosed = errors.New("transport closed")

// Transport carries events between the controller and the simulation server.
// Start hands the transport the controller inbox; inbound events are pushed
// there and never delivered to the controller directly.
type Transport interface {
	Start(inbox chan<- Event) error
	Emit(eventType string, payload any) error
	Close() error
}

// deliver pushes ev into inbox without blocking. A full inbox drops the event.
func deliver(inbox chan<- Event, ev Event, logger zerolog.Logger) bool {
	if inbox == nil {
		return false
	}
	select {
	case inbox <- ev:
		return true
	default:
		logger.Warn().Str("event", ev.Type).Msg("inbox full, dropping event")
		return false
	}
}
