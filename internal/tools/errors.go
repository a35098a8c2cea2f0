package tools

import (
	"errors"
	"fmt"
)

// Failures inside a round. The invoker wraps them with %w and turns them into
// error payloads; they never abort the round.
var (
	ErrToolNotFound     = errors.New("tool not found")
	ErrArgumentCoercion = errors.New("invalid tool arguments")
	ErrToolExecution    = errors.New("tool execution failed")
)

// CatalogCollisionError reports two backends exposing the same tool name.
type CatalogCollisionError struct {
	Tool   string
	First  string
	Second string
}

func (e *CatalogCollisionError) Error() string {
	return fmt.Sprintf("tool %q is exposed by both %q and %q (enable namespaceTools to prefix tool names with their backend)",
		e.Tool, e.First, e.Second)
}
