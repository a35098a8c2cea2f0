// Package mathserver is the bundled arithmetic MCP backend. It exposes add,
// subtract, multiply, divide, power and modulus, each taking two operands "a"
// and "b" given as numbers or numeric strings.
package mathserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Name is the server name announced during initialize.
const Name = "arith"

var (
	errDivideByZero  = errors.New("Cannot divide by zero")
	errModulusByZero = errors.New("Cannot perform modulus by zero")
)

type operands struct {
	A float64 `mapstructure:"a"`
	B float64 `mapstructure:"b"`
}

type operation struct {
	name        string
	description string
	apply       func(a, b float64) (float64, error)
}

var operations = []operation{
	{"add", "Add two numbers and return the result.", func(a, b float64) (float64, error) {
		return a + b, nil
	}},
	{"subtract", "Subtract b from a and return the result.", func(a, b float64) (float64, error) {
		return a - b, nil
	}},
	{"multiply", "Multiply two numbers and return the result.", func(a, b float64) (float64, error) {
		return a * b, nil
	}},
	{"divide", "Divide a by b and return the result. Fails if b is zero.", func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, errDivideByZero
		}
		return a / b, nil
	}},
	{"power", "Raise a to the power of b and return the result.", func(a, b float64) (float64, error) {
		return math.Pow(a, b), nil
	}},
	{"modulus", "Return the remainder when a is divided by b. Fails if b is zero.", modulus},
}

// modulus follows floored division: the result takes the sign of b.
func modulus(a, b float64) (float64, error) {
	if b == 0 {
		return 0, errModulusByZero
	}
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r, nil
}

var inputSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"a": map[string]any{"type": "number"},
		"b": map[string]any{"type": "number"},
	},
	"required": []any{"a", "b"},
}

// New returns an MCP server with every arithmetic tool registered.
func New(version string) *mcpsdk.Server {
	server := mcpsdk.NewServer(&mcpsdk.Implementation{Name: Name, Version: version}, nil)
	for _, op := range operations {
		server.AddTool(&mcpsdk.Tool{
			Name:        op.name,
			Description: op.description,
			InputSchema: inputSchema,
		}, handler(op))
	}
	return server
}

// Serve runs the server on transport until ctx is done or the peer hangs up.
func Serve(ctx context.Context, version string, transport mcpsdk.Transport) error {
	return New(version).Run(ctx, transport)
}

func handler(op operation) mcpsdk.ToolHandler {
	return func(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
		args, err := decodeOperands(req.Params.Arguments)
		if err != nil {
			return errorResult(err), nil
		}
		v, err := op.apply(args.A, args.B)
		if err != nil {
			slog.Debug("arithmetic failed", "tool", op.name, "err", err)
			return errorResult(err), nil
		}
		return &mcpsdk.CallToolResult{
			Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: strconv.FormatFloat(v, 'f', -1, 64)}},
		}, nil
	}
}

func errorResult(err error) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		IsError: true,
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: err.Error()}},
	}
}

// decodeOperands accepts numbers and numeric strings such as " 12 " or "3.14".
func decodeOperands(raw json.RawMessage) (operands, error) {
	var in map[string]any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &in); err != nil {
			return operands{}, fmt.Errorf("arguments must be a JSON object: %w", err)
		}
	}
	for _, key := range []string{"a", "b"} {
		if v, ok := in[key]; !ok || v == nil {
			return operands{}, fmt.Errorf("missing required argument %q", key)
		}
	}

	var out operands
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       trimStrings,
		Result:           &out,
	})
	if err != nil {
		return operands{}, err
	}
	if err := dec.Decode(in); err != nil {
		return operands{}, fmt.Errorf("expected a number (or numeric string): %w", err)
	}
	return out, nil
}

func trimStrings(from, to reflect.Type, data any) (any, error) {
	if s, ok := data.(string); ok {
		return strings.TrimSpace(s), nil
	}
	return data, nil
}
