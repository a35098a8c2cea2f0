package schema

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is one entry in the conversation history.
//
// Role is one of: "system", "user", "assistant", "tool".
//
// ToolCalls is populated for assistant messages that invoke tools.
// ToolCallID and ToolName are set for tool-result messages; IsError marks a
// result that carries an error payload instead of tool output.
type Message struct {
	Role       string
	Content    string
	ToolCalls  []ToolCallRequest
	ToolCallID string // "tool" role only
	ToolName   string // "tool" role only
	IsError    bool   // "tool" role only
}

// HasToolCalls reports whether m is an assistant message requesting tools.
func (m Message) HasToolCalls() bool {
	return m.Role == RoleAssistant && len(m.ToolCalls) > 0
}

func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

func NewAssistantMessage(content string, toolCalls []ToolCallRequest) Message {
	return Message{Role: RoleAssistant, Content: content, ToolCalls: toolCalls}
}

// NewToolResultMessage builds the tool message answering one request.
func NewToolResultMessage(res ToolCallResult) Message {
	return Message{
		Role:       RoleTool,
		Content:    res.Payload,
		ToolCallID: res.ID,
		ToolName:   res.Name,
		IsError:    res.Err != nil,
	}
}
