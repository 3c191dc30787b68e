package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/snip-dev/snip/internal/config"
	"github.com/snip-dev/snip/internal/mcp"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio",
		Long: `Expose snippet search and storage as MCP tools over stdio,
for use by MCP-capable assistants and editors.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			srv, err := mcp.NewServer(cfg)
			if err != nil {
				return fmt.Errorf("start MCP server: %w", err)
			}
			return srv.Serve()
		},
	}
}
