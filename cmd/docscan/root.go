package main

import (
	"fmt"

	"docscan/internal/config"
	"docscan/internal/filemanager"
	"docscan/internal/format"
	"docscan/internal/logging"
	"docscan/internal/query"
	"docscan/internal/ui"
	"docscan/pkg/fileops"

	"github.com/spf13/cobra"
)

// Version is set via ldflags at build time.
var Version = "dev"

// rootOptions are the flags shared by every command.
type rootOptions struct {
	configPath string
	dir        string
	format     string
	pretty     bool
	logger     *logging.AppLogger
}

func newRootCmd(logger *logging.AppLogger) *cobra.Command {
	opts := &rootOptions{logger: logger}

	cmd := &cobra.Command{
		Use:   "docscan",
		Short: "Privacy-aware access to a folder of documents",
		Long: `docscan exposes the files of one flat directory through search, get and
list operations. Every file is tagged PUBLIC, SENSITIVE or CONFIDENTIAL from
markers in its content, and searches can be restricted to public files.

Run "docscan serve" to offer the operations to AI assistants over MCP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file path (default $XDG_CONFIG_HOME/docscan/config.yaml)")
	pf.StringVarP(&opts.dir, "dir", "d", "", "documents directory, overrides the config file")
	pf.StringVarP(&opts.format, "format", "f", "", "output format: narrative or structured")
	pf.BoolVar(&opts.pretty, "pretty", false, "render narrative output for the terminal")

	cmd.AddCommand(
		newServeCmd(opts),
		newSearchCmd(opts),
		newGetCmd(opts),
		newListCmd(opts),
		newClassifyCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)

	return cmd
}

// resolvedConfigPath is --config, or the platform default when unset.
func (o *rootOptions) resolvedConfigPath() string {
	if o.configPath != "" {
		return fileops.ExpandPath(o.configPath)
	}
	return config.ConfigPath()
}

// loadConfig applies the flags on top of the loaded configuration.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.resolvedConfigPath(), o.logger)
	if err != nil {
		return nil, err
	}
	if o.dir != "" {
		cfg.DocumentsDir = fileops.ExpandPath(o.dir)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	o.logger.DebugObject("config", cfg)
	return cfg, nil
}

func (o *rootOptions) newEngine(cfg *config.Config) *query.Engine {
	files := filemanager.NewFileManager(cfg.DocumentsDir, o.logger,
		filemanager.WithClassifier(cfg.Classifier()),
		filemanager.WithMaxFileSize(cfg.MaxFileSize),
	)
	return query.NewEngine(files, o.logger)
}

// engine loads the configuration and builds a query engine from it.
func (o *rootOptions) engine() (*query.Engine, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	return o.newEngine(cfg), nil
}

func (o *rootOptions) mode() (format.Mode, error) {
	return format.ParseModeOr(o.format, format.Narrative)
}

// write prints text, rendering narrative output with glamour when --pretty
// is set.
func (o *rootOptions) write(cmd *cobra.Command, mode format.Mode, text string) error {
	if o.pretty && mode == format.Narrative {
		rendered, err := ui.RenderMarkdown(text, ui.AutoStyle, ui.DefaultWidth)
		if err != nil {
			return err
		}
		text = rendered
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), text)
	return err
}
