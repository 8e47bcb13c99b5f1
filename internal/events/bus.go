// Package events provides the application-wide event bus. Domain flows emit
// events after key actions so decoupled listeners (notifications, metrics)
// can react without the flows knowing about them.
package events

import (
	"log/slog"
	"sync"
)

// Name identifies an event. Payloads are documented per constant.
type Name string

const (
	// SuccessLogin carries {"user": session user snapshot}.
	SuccessLogin Name = "SUCCESS_LOGIN"
	// FailedLogin carries {"error": message}.
	FailedLogin Name = "FAILED_LOGIN"
	// SuccessRegister carries {"user": session user snapshot} when the
	// auto-login after registration succeeded, otherwise no payload.
	SuccessRegister Name = "SUCCESS_REGISTER"
	// FailedRegister carries {"error": message}.
	FailedRegister Name = "FAILED_REGISTER"
	// AutoLoginFailed carries {"error": message}. Emitted when registration
	// succeeded but the follow-up login did not. Distinct from FailedRegister
	// so listeners can show a warning instead of an error.
	AutoLoginFailed Name = "AUTO_LOGIN_FAILED"
	// Logout has no payload.
	Logout Name = "LOGOUT"
	// UserDataUpdated carries {"user": session user snapshot}.
	UserDataUpdated Name = "USER_DATA_UPDATED"
)

// Payload is a free-form event payload.
type Payload map[string]any

// Handler receives a published event. Handlers run synchronously on the
// publisher's goroutine; keep them cheap.
type Handler func(name Name, payload Payload)

// Bus dispatches events to subscribed handlers. Subscribing to the empty name
// receives every event.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Name][]Handler
	logger   *slog.Logger
}

func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		handlers: make(map[Name][]Handler),
		logger:   logger,
	}
}

// Subscribe registers a handler for one event name. Pass the empty name to
// receive all events.
func (b *Bus) Subscribe(name Name, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], h)
}

// Publish delivers the event to all matching handlers in subscription order.
func (b *Bus) Publish(name Name, payload Payload) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers[name])+len(b.handlers[""]))
	handlers = append(handlers, b.handlers[name]...)
	handlers = append(handlers, b.handlers[""]...)
	b.mu.RUnlock()

	if b.logger != nil {
		b.logger.Debug("event published", "event", string(name))
	}
	for _, h := range handlers {
		h(name, payload)
	}
}
