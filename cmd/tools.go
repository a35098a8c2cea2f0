package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/crystaldolphin/toolchat/internal/config"
	"github.com/crystaldolphin/toolchat/internal/mcp"
	"github.com/crystaldolphin/toolchat/internal/shared/llmutils"
	"github.com/crystaldolphin/toolchat/internal/tools"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Connect to the configured servers and list their tools",
	RunE:  runTools,
}

func runTools(_ *cobra.Command, _ []string) error {
	container, err := loadContainer()
	if err != nil {
		return err
	}
	cfg := container.Config()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HandshakeTimeout()*2)
	defer cancel()

	catalog, closeAll, err := discover(ctx, cfg, container.Credentials())
	if err != nil {
		return err
	}
	defer closeAll()

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TOOL\tBACKEND\tDESCRIPTION")
	for _, e := range catalog.Entries() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name(), e.Backend(), llmutils.Truncate(e.Description(), 70))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Printf("\n%d tools from %d servers\n", catalog.Len(), len(cfg.Tools.MCPServers))
	return nil
}

// discover builds a catalog without a provider, so listing tools needs no API key.
func discover(ctx context.Context, cfg *config.Config, creds mcp.CredentialSource) (*tools.Catalog, func(), error) {
	servers, err := mcp.ConfigsFrom(cfg.Tools.MCPServers, creds, cfg.HandshakeTimeout())
	if err != nil {
		return nil, nil, err
	}
	clients, err := mcp.ConnectAll(ctx, servers)
	if err != nil {
		return nil, nil, err
	}
	closeAll := func() { mcp.CloseAll(clients) }

	backends := make([]tools.Backend, len(clients))
	for i, c := range clients {
		backends[i] = c
	}
	catalog, err := tools.BuildCatalog(ctx, backends, tools.CatalogOptions{Namespace: cfg.Tools.NamespaceTools})
	if err != nil {
		closeAll()
		return nil, nil, err
	}
	return catalog, closeAll, nil
}
