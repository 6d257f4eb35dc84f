package mcp

import (
	"context"
	"errors"
	"math"

	"docscan/internal/domain"
	"docscan/internal/format"
	"docscan/internal/query"

	"github.com/mark3labs/mcp-go/mcp"
)

// handleSearchFiles runs a search and renders the matches.
func (s *Server) handleSearchFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mode, err := responseMode(request, format.Structured)
	if err != nil {
		return s.toolError("search_files", err, format.Structured), nil
	}

	q, err := request.RequireString("query")
	if err != nil {
		return s.toolError("search_files", domain.NewInvalidArgument("query", "is required"), mode), nil
	}
	excludeSensitive, err := boolArg(request, "exclude_sensitive", false)
	if err != nil {
		return s.toolError("search_files", err, mode), nil
	}
	limit, err := intArg(request, "limit", query.DefaultSearchLimit)
	if err != nil {
		return s.toolError("search_files", err, mode), nil
	}

	req := query.SearchRequest{
		Query:            q,
		ExcludeSensitive: excludeSensitive,
		Limit:            limit,
	}

	result, err := s.docs.Search(ctx, req)
	if err != nil {
		return s.toolError("search_files", err, mode), nil
	}
	return s.render("search_files", mode, func() (string, error) { return format.Search(result, mode) })
}

// handleGetFileContent returns one document by exact filename.
func (s *Server) handleGetFileContent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mode, err := responseMode(request, format.Narrative)
	if err != nil {
		return s.toolError("get_file_content", err, format.Narrative), nil
	}

	filename, err := request.RequireString("filename")
	if err != nil {
		return s.toolError("get_file_content", domain.NewInvalidArgument("filename", "is required"), mode), nil
	}
	includeMetadata, err := boolArg(request, "include_metadata", false)
	if err != nil {
		return s.toolError("get_file_content", err, mode), nil
	}

	req := query.ContentRequest{
		Filename:        filename,
		IncludeMetadata: includeMetadata,
	}

	result, err := s.docs.GetContent(ctx, req)
	if err != nil {
		return s.toolError("get_file_content", err, mode), nil
	}
	return s.render("get_file_content", mode, func() (string, error) { return format.Content(result, mode) })
}

// handleListFiles lists documents, optionally filtered.
func (s *Server) handleListFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mode, err := responseMode(request, format.Narrative)
	if err != nil {
		return s.toolError("list_files", err, format.Narrative), nil
	}

	pattern, err := stringArg(request, "pattern")
	if err != nil {
		return s.toolError("list_files", err, mode), nil
	}
	privacyFilter, err := stringArg(request, "privacy_filter")
	if err != nil {
		return s.toolError("list_files", err, mode), nil
	}

	req := query.ListRequest{
		Pattern:       pattern,
		PrivacyFilter: privacyFilter,
	}

	result, err := s.docs.List(ctx, req)
	if err != nil {
		return s.toolError("list_files", err, mode), nil
	}
	return s.render("list_files", mode, func() (string, error) { return format.List(result, mode) })
}

func (s *Server) render(tool string, mode format.Mode, fn func() (string, error)) (*mcp.CallToolResult, error) {
	text, err := fn()
	if err != nil {
		return s.toolError(tool, err, mode), nil
	}
	return mcp.NewToolResultText(text), nil
}

// toolError reports err as a tool-level error result. Request errors stay at
// debug level; anything else is logged as a warning.
func (s *Server) toolError(tool string, err error, mode format.Mode) *mcp.CallToolResult {
	logger := s.logger.With("tool", tool, "kind", domain.Kind(err))
	if errors.Is(err, domain.ErrInvalidArgument) || errors.Is(err, domain.ErrNotFound) {
		logger.Debug("Tool request rejected", "error", err)
	} else {
		logger.Warn("Tool call failed", "error", err)
	}
	return mcp.NewToolResultError(format.Error(err, mode))
}

func responseMode(request mcp.CallToolRequest, fallback format.Mode) (format.Mode, error) {
	s, err := stringArg(request, "response_format")
	if err != nil {
		return "", err
	}
	return format.ParseModeOr(s, fallback)
}

// stringArg returns the named string argument, or "" when it is absent or null.
func stringArg(request mcp.CallToolRequest, name string) (string, error) {
	v, ok := request.GetArguments()[name]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", domain.NewInvalidArgument(name, "must be a string, got %T", v)
	}
	return s, nil
}

// boolArg returns the named boolean argument, or def when it is absent. Unlike
// GetBool, a value of another type is an error rather than def.
func boolArg(request mcp.CallToolRequest, name string, def bool) (bool, error) {
	v, ok := request.GetArguments()[name]
	if !ok || v == nil {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, domain.NewInvalidArgument(name, "must be a boolean, got %T", v)
	}
	return b, nil
}

// intArg accepts integral JSON numbers, which decode as float64.
func intArg(request mcp.CallToolRequest, name string, def int) (int, error) {
	v, ok := request.GetArguments()[name]
	if !ok || v == nil {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		if n >= math.MinInt32 && n <= math.MaxInt32 {
			return int(n), nil
		}
	case float64:
		if n == math.Trunc(n) && n >= math.MinInt32 && n <= math.MaxInt32 {
			return int(n), nil
		}
	}
	return 0, domain.NewInvalidArgument(name, "must be an integer, got %v", v)
}
