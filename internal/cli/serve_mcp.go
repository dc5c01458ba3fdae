package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/macropower/vscroll/pkg/mcp"
)

const serveMCPExamples = `  # Serve over stdio, e.g. for an editor integration:
  vscroll serve-mcp

  # Serve streamable HTTP:
  vscroll serve-mcp --address localhost:50165`

type ServeMCPArgs struct {
	*RootArgs

	Address string
}

func NewServeMCPArgs(rootArgs *RootArgs) *ServeMCPArgs {
	return &ServeMCPArgs{RootArgs: rootArgs}
}

func (sa *ServeMCPArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sa.Address, "address", "", "Serve streamable HTTP at this address instead of stdio")

	must(cmd.RegisterFlagCompletionFunc("address", cobra.NoFileCompletions))
}

func NewServeMCPCmd(sa *ServeMCPArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "serve-mcp",
		Short:             "Serve the compute_window and replay_trace MCP tools",
		Example:           serveMCPExamples,
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			slog.Info("starting MCP server", slog.String("address", sa.Address))

			err := mcp.NewServer(sa.Address).Serve(cmd.Context())
			if err != nil {
				return fmt.Errorf("serve mcp: %w", err)
			}

			return nil
		},
	}
	sa.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}
