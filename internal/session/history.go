// Package session holds the conversation history of one chat session and the
// filter that decides which of its messages a user sees.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/crystaldolphin/toolchat/internal/schema"
)

// History is the ordered, append-only message log of one session.
// Appends are serialised; readers get independent snapshots.
type History struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	messages  schema.Messages
	updatedAt time.Time
}

// NewHistory returns a History that starts with the system prompt, if any.
func NewHistory(systemPrompt string) *History {
	now := time.Now()
	h := &History{
		ID:        uuid.NewString(),
		CreatedAt: now,
		updatedAt: now,
		messages:  schema.NewMessages(),
	}
	if systemPrompt != "" {
		h.messages.AddSystem(systemPrompt)
	}
	return h
}

// Append adds msgs to the end of the history in order.
func (h *History) Append(msgs ...schema.Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, m := range msgs {
		h.messages.Add(m)
	}
	h.updatedAt = time.Now()
}

// Snapshot returns a deep copy of the current history.
func (h *History) Snapshot() schema.Messages {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.messages.Clone()
}

// UpdatedAt returns the time of the last append.
func (h *History) UpdatedAt() time.Time {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.updatedAt
}

// snapshotAt returns a snapshot together with the time of the last append it
// includes.
func (h *History) snapshotAt() (schema.Messages, time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.messages.Clone(), h.updatedAt
}

// Len returns the number of messages.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.messages.Len()
}

// Visible returns the messages a user should see.
func (h *History) Visible() []schema.Message {
	snap := h.Snapshot()
	return Visible(snap.Messages)
}
