package schema

import (
	"context"
	"encoding/json"
)

// Tool is the capability every LLM-callable tool satisfies, whichever backend
// hosts it.
type Tool interface {
	Name() string
	Description() string
	// Parameters returns the JSON Schema (as raw JSON bytes) for this tool's parameters.
	Parameters() json.RawMessage
	Execute(ctx context.Context, params map[string]any) (string, error)
}
