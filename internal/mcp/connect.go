package mcp

import (
	"context"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"
)

// ConnectAll connects every configured server concurrently and returns the
// clients sorted by name. If any connection fails, the ones already opened are
// closed before the error is returned.
func ConnectAll(ctx context.Context, servers map[string]ServerConfig) ([]*Client, error) {
	names := make([]string, 0, len(servers))
	for name := range servers {
		names = append(names, name)
	}
	sort.Strings(names)

	clients := make([]*Client, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			c, err := Connect(gctx, name, servers[name])
			if err != nil {
				slog.Error("MCP server connect failed", "server", name, "err", err)
				return err
			}
			clients[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		CloseAll(clients)
		return nil, err
	}

	slog.Info("MCP servers connected", "count", len(clients))
	return clients, nil
}

// CloseAll closes every non-nil client, logging failures.
func CloseAll(clients []*Client) {
	for _, c := range clients {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil {
			slog.Warn("MCP server close failed", "server", c.name, "err", err)
		}
	}
}
