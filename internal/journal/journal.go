// Package journal defines the optional dispatch-journal contract. The
// dispatch core itself keeps no state across calls; a journal, when
// configured, records the outcome of each dispatch after the fact.
package journal

import (
	"context"
	"time"
)

// Entry is one recorded dispatch.
type Entry struct {
	Time      time.Time `json:"time"`
	Node      string    `json:"node"`
	ChatID    string    `json:"chat_id"`
	MessageID int       `json:"message_id,omitempty"`
	ReplyTo   int       `json:"reply_to,omitempty"`
	Outcome   string    `json:"outcome"` // "sent" or "failed"
	Error     string    `json:"error,omitempty"`
}

// Recorder persists dispatch entries. Implementations are registered as the
// "journal.recorder" service; consumers degrade gracefully when absent.
type Recorder interface {
	Record(ctx context.Context, e Entry) error

	// Recent returns up to n entries, newest first.
	Recent(ctx context.Context, n int) ([]Entry, error)
}
