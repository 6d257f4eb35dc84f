package main

import (
	"strings"

	"docscan/internal/format"
	"docscan/internal/query"

	"github.com/spf13/cobra"
)

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var (
		excludeSensitive bool
		limit            int
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search filenames and content",
		Long: `Searches every document whose filename or content contains the query,
ignoring case. Multiple arguments are joined with spaces.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := opts.mode()
			if err != nil {
				return err
			}
			engine, err := opts.engine()
			if err != nil {
				return err
			}

			result, err := engine.Search(cmd.Context(), query.SearchRequest{
				Query:            strings.Join(args, " "),
				ExcludeSensitive: excludeSensitive,
				Limit:            limit,
			})
			if err != nil {
				return err
			}

			out, err := format.Search(result, mode)
			if err != nil {
				return err
			}
			return opts.write(cmd, mode, out)
		},
	}

	cmd.Flags().BoolVarP(&excludeSensitive, "exclude-sensitive", "x", false, "only return PUBLIC documents")
	cmd.Flags().IntVarP(&limit, "limit", "n", query.DefaultSearchLimit, "maximum number of results")
	return cmd
}

func newGetCmd(opts *rootOptions) *cobra.Command {
	var includeMetadata bool

	cmd := &cobra.Command{
		Use:   "get <filename>",
		Short: "Print one document by exact filename",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := opts.mode()
			if err != nil {
				return err
			}
			engine, err := opts.engine()
			if err != nil {
				return err
			}

			result, err := engine.GetContent(cmd.Context(), query.ContentRequest{
				Filename:        args[0],
				IncludeMetadata: includeMetadata,
			})
			if err != nil {
				return err
			}

			out, err := format.Content(result, mode)
			if err != nil {
				return err
			}
			return opts.write(cmd, mode, out)
		},
	}

	cmd.Flags().BoolVarP(&includeMetadata, "metadata", "m", false, "include size, modified time and privacy level")
	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var req query.ListRequest

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents with their privacy level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := opts.mode()
			if err != nil {
				return err
			}
			engine, err := opts.engine()
			if err != nil {
				return err
			}

			result, err := engine.List(cmd.Context(), req)
			if err != nil {
				return err
			}

			out, err := format.List(result, mode)
			if err != nil {
				return err
			}
			return opts.write(cmd, mode, out)
		},
	}

	cmd.Flags().StringVarP(&req.Pattern, "pattern", "p", "", "glob matched against filenames, e.g. '*.txt'")
	cmd.Flags().StringVar(&req.PrivacyFilter, "privacy", "", "only list public, sensitive or confidential files")
	return cmd
}
