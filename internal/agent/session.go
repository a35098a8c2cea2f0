package agent

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/crystaldolphin/toolchat/internal/config"
	"github.com/crystaldolphin/toolchat/internal/mcp"
	"github.com/crystaldolphin/toolchat/internal/schema"
	"github.com/crystaldolphin/toolchat/internal/session"
	"github.com/crystaldolphin/toolchat/internal/tools"
)

// Session is everything one chat session owns: the backend connections, the
// catalog built from them, the history and the engine. It is created by Open
// and released by Close.
type Session struct {
	Engine  *Engine
	Catalog *tools.Catalog
	History *session.History

	backends []tools.Backend
	ctx      context.Context
	cancel   context.CancelFunc

	closeOnce sync.Once
}

// Open connects every configured backend, builds the tool catalog and returns
// a ready session. On any failure the connections already opened are closed.
func Open(ctx context.Context, cfg *config.Config, creds mcp.CredentialSource, provider schema.LLMProvider, hooks Hooks) (*Session, error) {
	servers, err := mcp.ConfigsFrom(cfg.Tools.MCPServers, creds, cfg.HandshakeTimeout())
	if err != nil {
		return nil, err
	}

	clients, err := mcp.ConnectAll(ctx, servers)
	if err != nil {
		return nil, err
	}
	backends := make([]tools.Backend, len(clients))
	for i, c := range clients {
		backends[i] = c
	}

	return newSession(ctx, backends, tools.CatalogOptions{Namespace: cfg.Tools.NamespaceTools}, cfg.AgentSettings(), provider, hooks)
}

// newSession takes ownership of backends: they are closed if the session
// cannot be built, and by Close otherwise.
func newSession(
	ctx context.Context,
	backends []tools.Backend,
	opts tools.CatalogOptions,
	settings schema.AgentSettings,
	provider schema.LLMProvider,
	hooks Hooks,
) (*Session, error) {
	sctx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	catalog, err := tools.BuildCatalog(ctx, backends, opts)
	if err != nil {
		cancel()
		closeBackends(backends)
		return nil, err
	}

	history := session.NewHistory(settings.SystemPrompt)
	invoker := tools.NewInvoker(catalog, settings.ToolTimeout, settings.ToolConcurrency)

	return &Session{
		Engine:   NewEngine(provider, settings, history, invoker, catalog.Definitions(), hooks),
		Catalog:  catalog,
		History:  history,
		backends: backends,
		ctx:      sctx,
		cancel:   cancel,
	}, nil
}

// Submit runs one round. The round is cancelled when either ctx is done or the
// session is closed.
func (s *Session) Submit(ctx context.Context, text string) (string, error) {
	rctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()

	return s.Engine.Submit(rctx, text)
}

// Close cancels in-flight calls and closes every backend. It is safe to call
// more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		closeBackends(s.backends)
	})
}

func closeBackends(backends []tools.Backend) {
	for _, b := range backends {
		c, ok := b.(io.Closer)
		if !ok {
			continue
		}
		if err := c.Close(); err != nil {
			slog.Warn("backend close failed", "server", b.Name(), "err", err)
		}
	}
}
