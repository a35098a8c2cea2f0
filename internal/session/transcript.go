package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/crystaldolphin/toolchat/internal/schema"
)

// SaveTranscript writes the full history to path as JSON lines: one metadata
// line followed by one line per message, in OpenAI wire format.
func SaveTranscript(path string, h *History) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	msgs, updated := h.snapshotAt()
	meta := map[string]any{
		"_type":      "metadata",
		"id":         h.ID,
		"created_at": h.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at": updated.UTC().Format(time.RFC3339Nano),
		"saved_at":   time.Now().UTC().Format(time.RFC3339),
		"messages":   msgs.Len(),
	}
	if err := enc.Encode(meta); err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}

	for _, msg := range msgs.Messages {
		if err := enc.Encode(messageToWire(msg)); err != nil {
			return fmt.Errorf("encode message: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create transcript dir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write transcript %s: %w", path, err)
	}
	return nil
}

// wireMessage is the on-disk JSON representation of a message.
type wireMessage struct {
	Role       string           `json:"role"`
	Content    string           `json:"content"`
	ToolCalls  []map[string]any `json:"tool_calls,omitempty"`
	ToolCallID string           `json:"tool_call_id,omitempty"`
	Name       string           `json:"name,omitempty"`
	IsError    bool             `json:"is_error,omitempty"`
}

func messageToWire(msg schema.Message) wireMessage {
	w := wireMessage{
		Role:       msg.Role,
		Content:    msg.Content,
		ToolCallID: msg.ToolCallID,
		Name:       msg.ToolName,
		IsError:    msg.IsError,
	}
	for _, tc := range msg.ToolCalls {
		w.ToolCalls = append(w.ToolCalls, tc.ToWireMap())
	}
	return w
}
