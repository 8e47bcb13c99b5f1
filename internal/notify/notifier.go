// Package notify queues user-facing notifications. It is the server-side
// analog of a toast channel: flows push messages, the transport layer drains
// them into responses so the UI can render them.
package notify

import "sync"

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Notification is a single user-facing message. Code is a stable message key
// for the client's translation layer; Message is the fallback prose.
type Notification struct {
	Kind    Kind   `json:"kind"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Notifier accumulates notifications until drained.
type Notifier struct {
	mu      sync.Mutex
	pending []Notification
}

func New() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Success(code, message string) { n.push(KindSuccess, code, message) }
func (n *Notifier) Error(code, message string)   { n.push(KindError, code, message) }
func (n *Notifier) Warning(code, message string) { n.push(KindWarning, code, message) }
func (n *Notifier) Info(code, message string)    { n.push(KindInfo, code, message) }

func (n *Notifier) push(kind Kind, code, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending = append(n.pending, Notification{Kind: kind, Code: code, Message: message})
}

// Drain returns all pending notifications and clears the queue.
func (n *Notifier) Drain() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.pending
	n.pending = nil
	return out
}
