package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/crystaldolphin/toolchat/internal/schema"
)

const defaultToolTimeout = 30 * time.Second

// Invoker executes tool calls against the catalog. It never returns an error:
// every failure becomes a result whose payload starts with "Error: ".
type Invoker struct {
	catalog     *Catalog
	timeout     time.Duration
	concurrency int
}

// NewInvoker returns an Invoker bounding each call by timeout and running at
// most concurrency calls at once (0 means unlimited).
func NewInvoker(catalog *Catalog, timeout time.Duration, concurrency int) *Invoker {
	if timeout <= 0 {
		timeout = defaultToolTimeout
	}
	return &Invoker{catalog: catalog, timeout: timeout, concurrency: concurrency}
}

// Invoke resolves, coerces and executes one request.
func (inv *Invoker) Invoke(ctx context.Context, req schema.ToolCallRequest) (res schema.ToolCallResult) {
	defer func() {
		if r := recover(); r != nil {
			res = failed(req, fmt.Errorf("%w: %s: panic: %v", ErrToolExecution, req.Name, r))
		}
	}()

	tool, ok := inv.catalog.Lookup(req.Name)
	if !ok {
		return failed(req, fmt.Errorf("%w: %q (available: %s)", ErrToolNotFound, req.Name, strings.Join(inv.catalog.Names(), ", ")))
	}

	args, err := CoerceArguments(req.Arguments)
	if err != nil {
		return failed(req, err)
	}

	cctx, cancel := context.WithTimeout(ctx, inv.timeout)
	defer cancel()

	start := time.Now()
	out, err := execute(cctx, tool, args)
	if err != nil {
		if errors.Is(cctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s: %w", inv.timeout, err)
		}
		return failed(req, fmt.Errorf("%w: %s: %w", ErrToolExecution, req.Name, err))
	}

	slog.Debug("tool call finished", "tool", req.Name, "id", req.ID, "elapsed", time.Since(start))
	return schema.ToolCallResult{ID: req.ID, Name: req.Name, Payload: out}
}

type execOutcome struct {
	out string
	err error
}

// execute runs tool on its own goroutine and returns as soon as ctx is done,
// even if the backend ignores cancellation. An abandoned call finishes in the
// background and its outcome is discarded.
func execute(ctx context.Context, tool schema.Tool, args map[string]any) (string, error) {
	done := make(chan execOutcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- execOutcome{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		out, err := tool.Execute(ctx, args)
		done <- execOutcome{out: out, err: err}
	}()

	select {
	case o := <-done:
		return o.out, o.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// InvokeAll runs every request concurrently and returns the results in
// request order.
func (inv *Invoker) InvokeAll(ctx context.Context, reqs []schema.ToolCallRequest) []schema.ToolCallResult {
	results := make([]schema.ToolCallResult, len(reqs))

	var g errgroup.Group
	if inv.concurrency > 0 {
		g.SetLimit(inv.concurrency)
	}
	for i, req := range reqs {
		g.Go(func() error {
			results[i] = inv.Invoke(ctx, req)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func failed(req schema.ToolCallRequest, err error) schema.ToolCallResult {
	slog.Warn("tool call failed", "tool", req.Name, "id", req.ID, "err", err)
	return schema.ToolCallResult{
		ID:      req.ID,
		Name:    req.Name,
		Payload: "Error: " + err.Error(),
		Err:     err,
	}
}
