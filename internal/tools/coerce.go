package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/crystaldolphin/toolchat/internal/shared/llmutils"
)

// CoerceArguments normalises tool-call arguments into a JSON object. Structured
// maps pass through; strings and raw bytes are decoded leniently. Anything that
// does not decode to an object wraps ErrArgumentCoercion.
func CoerceArguments(raw any) (map[string]any, error) {
	switch v := raw.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		if v == nil {
			return map[string]any{}, nil
		}
		return v, nil
	case string:
		return decodeArguments(v)
	case json.RawMessage:
		return decodeArguments(string(v))
	case []byte:
		return decodeArguments(string(v))
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArgumentCoercion, err)
	}
	return decodeArguments(string(data))
}

func decodeArguments(raw string) (map[string]any, error) {
	args, err := repairJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArgumentCoercion, err)
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

// repairJSON attempts to unmarshal a JSON object, retrying after stripping
// trailing garbage characters. Some LLMs emit truncated tool arguments.
func repairJSON(raw string) (map[string]any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return map[string]any{}, nil
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(raw), &out); err == nil {
		return out, nil
	}

	// Attempt 1: close a truncated object.
	stripped := strings.TrimRight(raw, " \t\n\r}]")
	if !strings.HasSuffix(stripped, "}") {
		stripped += "}"
	}
	if err := json.Unmarshal([]byte(stripped), &out); err == nil {
		return out, nil
	}

	// Attempt 2: keep the longest prefix ending in a complete object.
	if i := strings.LastIndex(raw, "}"); i >= 0 {
		if err := json.Unmarshal([]byte(raw[:i+1]), &out); err == nil {
			return out, nil
		}
	}

	return nil, fmt.Errorf("cannot decode %q as a JSON object", llmutils.Truncate(raw, 120))
}

