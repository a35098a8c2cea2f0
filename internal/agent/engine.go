// Package agent runs conversation rounds: the model decides, tools execute,
// the model finalizes.
package agent

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/crystaldolphin/toolchat/internal/schema"
	"github.com/crystaldolphin/toolchat/internal/session"
	"github.com/crystaldolphin/toolchat/internal/shared/llmutils"
)

// EmptyAnswer replaces a blank final answer.
const EmptyAnswer = "I've completed processing but have no response to give."

// ToolRunner executes one round of tool calls and answers each request, in
// request order. *tools.Invoker implements it.
type ToolRunner interface {
	InvokeAll(ctx context.Context, reqs []schema.ToolCallRequest) []schema.ToolCallResult
}

// Hooks observe a round. Every field is optional; hooks run on the goroutine
// calling Submit.
type Hooks struct {
	OnTransition  func(from, to State)
	OnProgress    func(hint string)
	OnFinalAnswer func(text string)
}

// Engine drives the round state machine over one session history. Rounds are
// strictly sequential: concurrent Submit calls wait for each other.
type Engine struct {
	provider    schema.LLMProvider
	settings    schema.AgentSettings
	history     *session.History
	invoker     ToolRunner
	definitions []map[string]any
	hooks       Hooks

	round sync.Mutex
	state atomic.Int32
}

// NewEngine returns an Engine in the AwaitingInput state. definitions are the
// tool definitions bound to the decision function.
func NewEngine(
	provider schema.LLMProvider,
	settings schema.AgentSettings,
	history *session.History,
	invoker ToolRunner,
	definitions []map[string]any,
	hooks Hooks,
) *Engine {
	if settings.MaxToolRounds <= 0 {
		settings.MaxToolRounds = 1
	}
	return &Engine{
		provider:    provider,
		settings:    settings,
		history:     history,
		invoker:     invoker,
		definitions: definitions,
		hooks:       hooks,
	}
}

// State returns the current state.
func (e *Engine) State() State { return State(e.state.Load()) }

// History returns the session history the engine appends to.
func (e *Engine) History() *session.History { return e.history }

// Submit runs one round for the user's text and returns the final answer.
// A failed LLM call aborts the round with a *DecisionFunctionError; tool
// failures never do.
func (e *Engine) Submit(ctx context.Context, text string) (string, error) {
	e.round.Lock()
	defer e.round.Unlock()
	defer e.transition(AwaitingInput)

	e.history.Append(schema.NewUserMessage(text))
	e.transition(Deciding)

	defs := e.definitions
	resp, err := e.decide(ctx, Deciding, defs)
	if err != nil {
		return "", err
	}

	rounds := 0
	withheld := false
	for resp.HasToolCalls() {
		if withheld {
			// Tools were withheld from this call, so the requests cannot be honoured.
			slog.Warn("dropping tool calls requested after the tool round limit",
				"count", len(resp.ToolCalls), "tools", llmutils.ToolHint(resp.ToolCalls))
			resp.ToolCalls = nil
			break
		}

		calls := assignIDs(resp.ToolCalls)
		e.history.Append(schema.NewAssistantMessage(resp.Content, calls))
		e.transition(ToolsRequested)
		e.progress(resp.Content, calls)

		e.transition(Invoking)
		for _, tc := range calls {
			slog.Info("Tool call", "name", tc.Name, "id", tc.ID,
				"args", llmutils.Truncate(tc.ArgumentsString(), 200))
		}
		results := e.invoker.InvokeAll(ctx, calls)
		msgs := make([]schema.Message, len(calls))
		for i, tc := range calls {
			res := results[i]
			// Pin correlation to the request even if a runner misreports it.
			res.ID, res.Name = tc.ID, tc.Name
			msgs[i] = schema.NewToolResultMessage(res)
		}
		e.history.Append(msgs...)
		rounds++

		e.transition(Finalizing)
		if rounds >= e.settings.MaxToolRounds {
			withheld = true
			defs = nil
		}
		resp, err = e.decide(ctx, Finalizing, defs)
		if err != nil {
			return "", err
		}
	}

	answer := strings.TrimSpace(llmutils.StripThink(resp.Content))
	answer = llmutils.StringOrDefault(answer, EmptyAnswer)
	e.history.Append(schema.NewAssistantMessage(answer, nil))
	e.transition(Answering)
	if e.hooks.OnFinalAnswer != nil {
		e.hooks.OnFinalAnswer(answer)
	}
	return answer, nil
}

func (e *Engine) decide(ctx context.Context, stage State, defs []map[string]any) (schema.LLMResponse, error) {
	if e.settings.LLMTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.settings.LLMTimeout)
		defer cancel()
	}

	resp, err := e.provider.Chat(ctx,
		e.history.Snapshot(),
		defs,
		schema.NewChatOptions(e.settings.Model, e.settings.MaxTokens, e.settings.Temperature),
	)
	if err != nil {
		slog.Error("LLM error", "stage", stage.String(), "err", err)
		return schema.LLMResponse{}, &DecisionFunctionError{Stage: stage, Err: err}
	}
	return resp, nil
}

func (e *Engine) transition(to State) {
	from := State(e.state.Swap(int32(to)))
	if from == to {
		return
	}
	slog.Debug("round transition", "from", from.String(), "to", to.String())
	if e.hooks.OnTransition != nil {
		e.hooks.OnTransition(from, to)
	}
}

// progress emits any text the model sent alongside its tool calls, then a
// short hint naming the calls.
func (e *Engine) progress(content string, calls []schema.ToolCallRequest) {
	if e.hooks.OnProgress == nil {
		return
	}
	if clean := strings.TrimSpace(llmutils.StripThink(content)); clean != "" {
		e.hooks.OnProgress(clean)
	}
	e.hooks.OnProgress(llmutils.ToolHint(calls))
}

// assignIDs returns a copy of calls in which every id is present and unique.
func assignIDs(calls []schema.ToolCallRequest) []schema.ToolCallRequest {
	out := make([]schema.ToolCallRequest, len(calls))
	seen := make(map[string]bool, len(calls))
	for i, tc := range calls {
		if tc.ID == "" || seen[tc.ID] {
			tc.ID = "call_" + uuid.NewString()
		}
		seen[tc.ID] = true
		out[i] = tc
	}
	return out
}
