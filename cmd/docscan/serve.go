package main

import (
	"errors"
	"fmt"
	"os"

	mcpserver "docscan/internal/mcp"

	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdio",
		Long: `Starts a Model Context Protocol server on stdin/stdout exposing the
search_files, get_file_content and list_files tools.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			// Each call re-checks the directory, so a missing one is not fatal here
			if info, err := os.Stat(cfg.DocumentsDir); err != nil || !info.IsDir() {
				if err == nil {
					err = errors.New("not a directory")
				}
				opts.logger.Warn("Documents directory is not available yet", "dir", cfg.DocumentsDir, "error", err)
			}

			mcpserver.Version = Version
			srv := mcpserver.NewServer(opts.newEngine(cfg), opts.logger, cfg.ServerName)

			fmt.Fprintf(cmd.ErrOrStderr(), "docscan MCP server started on stdio (documents=%s)\n", cfg.DocumentsDir)
			return srv.Serve()
		},
	}
}
