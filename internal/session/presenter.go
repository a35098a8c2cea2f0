package session

import "github.com/crystaldolphin/toolchat/internal/schema"

// Visible keeps user messages and final assistant answers. System messages,
// tool results and assistant messages that request tools are dropped. The
// input is not modified.
func Visible(messages []schema.Message) []schema.Message {
	out := make([]schema.Message, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case schema.RoleUser:
			out = append(out, m)
		case schema.RoleAssistant:
			if !m.HasToolCalls() {
				out = append(out, m)
			}
		}
	}
	return out
}
