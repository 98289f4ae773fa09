// Package notify is the toast analogue: short, dismissible notifications for
// validation and business-rule feedback. Failures here never crash a screen.
package notify

import (
	"fmt"
	"io"
	"sync"
)

// Notification types.
const (
	TypeInfo    = "info"
	TypeSuccess = "success"
	TypeError   = "error"
)

// Notification carries a short title and an optional description.
type Notification struct {
	Type        string
	Title       string
	Description string
}

// Notifier receives user-facing notifications.
type Notifier interface {
	Notify(n Notification)
}

// Writer prints notifications to an io.Writer (the CLI surface).
type Writer struct {
	W io.Writer
}

// Notify writes "[type] title: description".
func (w Writer) Notify(n Notification) {
	if n.Description != "" {
		fmt.Fprintf(w.W, "[%s] %s: %s\n", n.Type, n.Title, n.Description)
		return
	}
	fmt.Fprintf(w.W, "[%s] %s\n", n.Type, n.Title)
}

// Memory records notifications for tests.
type Memory struct {
	mu   sync.Mutex
	seen []Notification
}

// Notify appends the notification.
func (m *Memory) Notify(n Notification) {
	m.mu.Lock()
	m.seen = append(m.seen, n)
	m.mu.Unlock()
}

// All returns a copy of everything notified so far.
func (m *Memory) All() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Notification(nil), m.seen...)
}

// Error is a shorthand for an error toast.
func Error(n Notifier, title, description string) {
	n.Notify(Notification{Type: TypeError, Title: title, Description: description})
}

// Success is a shorthand for a success toast.
func Success(n Notifier, title string) {
	n.Notify(Notification{Type: TypeSuccess, Title: title})
}
