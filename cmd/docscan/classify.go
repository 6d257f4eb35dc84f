package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"docscan/internal/config"
	"docscan/internal/format"
	"docscan/internal/privacy"
	"docscan/internal/ui"

	"github.com/spf13/cobra"
)

type classification struct {
	File    string       `json:"file"`
	Privacy privacy.Tier `json:"privacy_level"`
	Marker  string       `json:"marker,omitempty"`
	Error   string       `json:"error,omitempty"`
}

func newClassifyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <file>...",
		Short: "Show the privacy level of arbitrary files",
		Long: `Classifies the given files with the configured markers, wherever they
live. Useful to check how a document will be tagged before adding it.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := opts.mode()
			if err != nil {
				return err
			}
			cfg, err := config.Load(opts.resolvedConfigPath(), opts.logger)
			if err != nil {
				return err
			}
			classifier := cfg.Classifier()

			results := make([]classification, 0, len(args))
			var failed int
			for _, path := range args {
				c := classification{File: path}
				content, err := readLimited(path, cfg.MaxFileSize)
				if err != nil {
					c.Error = err.Error()
					failed++
					opts.logger.Warn("Skipping unreadable file", "file", path, "error", err)
				} else {
					c.Privacy, c.Marker = classifier.Match(content)
				}
				results = append(results, c)
			}

			if err := writeClassifications(cmd.OutOrStdout(), results, mode); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files could not be read", failed, len(args))
			}
			return nil
		},
	}
}

func readLimited(path string, maxSize int64) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", errors.New("not a regular file")
	}
	if maxSize > 0 && info.Size() > maxSize {
		return "", fmt.Errorf("file is larger than %d bytes", maxSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func writeClassifications(w io.Writer, results []classification, mode format.Mode) error {
	if mode == format.Structured {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	width := 0
	for _, r := range results {
		width = max(width, len(r.File))
	}
	for _, r := range results {
		name := r.File + strings.Repeat(" ", width-len(r.File))
		switch {
		case r.Error != "":
			fmt.Fprintf(w, "%s  %s\n", name, ui.ErrorStyle.Render(r.Error))
		case r.Marker != "":
			fmt.Fprintf(w, "%s  %s %s\n", name, ui.TierBadge(r.Privacy), ui.MarkerStyle.Render(fmt.Sprintf("(%q)", r.Marker)))
		default:
			fmt.Fprintf(w, "%s  %s\n", name, ui.TierBadge(r.Privacy))
		}
	}
	return nil
}
