// Package query implements search, retrieval and listing over the document
// root, including privacy-tier filtering.
package query

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"docscan/internal/domain"
	"docscan/internal/filemanager"
	"docscan/internal/logging"
	"docscan/internal/privacy"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	MatchTypeFilename = "filename"
	MatchTypeContent  = "content"

	// snippetRadius is the number of bytes of context kept on each side of a
	// content hit
	snippetRadius = 60
	// previewLength is the number of content bytes a listing previews
	previewLength = 200
)

// SearchMatch is one document found by Search.
type SearchMatch struct {
	domain.Summary
	MatchType string `json:"match_type"`
	Snippet   string `json:"snippet,omitempty"`
}

// SearchResult is the response of Search.
type SearchResult struct {
	Query            string               `json:"query"`
	ExcludeSensitive bool                 `json:"excluded_sensitive"`
	Limit            int                  `json:"limit"`
	FilesFound       int                  `json:"files_found"`
	TotalMatches     int                  `json:"total_matches"`
	Matches          []SearchMatch        `json:"files"`
	Skipped          []domain.SkippedFile `json:"skipped,omitempty"`
}

// ContentResult is the response of GetContent. Metadata is nil unless it was
// requested.
type ContentResult struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
	// Encoding is "base64" when Content holds the encoded bytes of a file
	// that is not valid UTF-8, and empty otherwise.
	Encoding string          `json:"encoding,omitempty"`
	Metadata *domain.Summary `json:"metadata,omitempty"`
}

// EncodingBase64 marks base64-encoded content.
const EncodingBase64 = "base64"

// ListResult is the response of List.
type ListResult struct {
	Pattern       string               `json:"pattern,omitempty"`
	PrivacyFilter string               `json:"privacy_filter,omitempty"`
	Count         int                  `json:"count"`
	Files         []domain.Summary     `json:"files"`
	Skipped       []domain.SkippedFile `json:"skipped,omitempty"`
}

// Engine answers queries against a FileManager. It keeps no state between
// calls.
type Engine struct {
	files  *filemanager.FileManager
	logger *logging.AppLogger
}

// NewEngine creates an Engine reading documents through files.
func NewEngine(files *filemanager.FileManager, logger *logging.AppLogger) *Engine {
	return &Engine{
		files:  files,
		logger: logger,
	}
}

// Search returns documents whose filename or content contains the query,
// case-insensitively, sorted by filename and truncated to the request limit.
// With ExcludeSensitive only public documents are eligible.
func (e *Engine) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	defer e.logger.LogPerformance("search", time.Now())

	req.Query = strings.TrimSpace(req.Query)
	if err := req.Validate(); err != nil {
		return nil, invalidArgument(err)
	}

	entries, err := e.files.Enumerate(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(req.Query)
	result := &SearchResult{
		Query:            req.Query,
		ExcludeSensitive: req.ExcludeSensitive,
		Limit:            req.Limit,
		Matches:          []SearchMatch{},
	}

	for _, entry := range entries {
		if entry.Err != nil {
			result.Skipped = append(result.Skipped, skippedFile(entry))
			continue
		}

		doc := entry.Document
		if req.ExcludeSensitive && doc.Tier != privacy.Public {
			continue
		}

		nameHit := strings.Contains(strings.ToLower(doc.Name), needle)
		snippet := contentSnippet(doc.Content, needle)
		if !nameHit && snippet == "" {
			continue
		}

		match := SearchMatch{
			Summary:   doc.Summary(),
			MatchType: MatchTypeContent,
			Snippet:   snippet,
		}
		if nameHit {
			match.MatchType = MatchTypeFilename
		}
		result.Matches = append(result.Matches, match)
	}

	slices.SortStableFunc(result.Matches, func(a, b SearchMatch) int {
		return strings.Compare(a.Filename, b.Filename)
	})
	result.TotalMatches = len(result.Matches)
	if len(result.Matches) > req.Limit {
		result.Matches = result.Matches[:req.Limit]
	}
	result.FilesFound = len(result.Matches)

	e.logger.Debug("Search completed",
		"query", req.Query,
		"excludeSensitive", req.ExcludeSensitive,
		"matches", result.TotalMatches,
		"returned", len(result.Matches),
		"skipped", len(result.Skipped))

	return result, nil
}

// GetContent returns the full content of the document with exactly the given
// filename. Retrieval by name is not gated by privacy tier: tiers restrict
// discovery through Search and List only.
func (e *Engine) GetContent(ctx context.Context, req ContentRequest) (*ContentResult, error) {
	defer e.logger.LogPerformance("get_content", time.Now())

	if err := req.Validate(); err != nil {
		return nil, invalidArgument(err)
	}

	doc, err := e.files.Lookup(ctx, req.Filename)
	if err != nil {
		return nil, err
	}

	result := &ContentResult{
		Filename: doc.Name,
		Content:  doc.Content,
	}
	if req.IncludeMetadata {
		summary := doc.Summary()
		result.Metadata = &summary
	}

	e.logger.Debug("Content retrieved", "file", doc.Name, "tier", doc.Tier)
	return result, nil
}

// List returns every readable document, optionally narrowed by a glob
// pattern on the filename and by an exact privacy tier, sorted by filename.
func (e *Engine) List(ctx context.Context, req ListRequest) (*ListResult, error) {
	defer e.logger.LogPerformance("list", time.Now())

	if err := req.Validate(); err != nil {
		return nil, invalidArgument(err)
	}

	var tierFilter *privacy.Tier
	if req.PrivacyFilter != "" {
		tier, err := privacy.ParseTier(req.PrivacyFilter)
		if err != nil {
			return nil, domain.NewInvalidArgument("privacy_filter", "%v", err)
		}
		tierFilter = &tier
	}

	entries, err := e.files.Enumerate(ctx)
	if err != nil {
		return nil, err
	}

	result := &ListResult{
		Pattern: req.Pattern,
		Files:   []domain.Summary{},
	}
	if tierFilter != nil {
		result.PrivacyFilter = tierFilter.String()
	}

	for _, entry := range entries {
		if req.Pattern != "" {
			// The pattern was validated above, so Match cannot fail here
			if ok, _ := doublestar.Match(req.Pattern, entry.Name); !ok {
				continue
			}
		}
		if entry.Err != nil {
			result.Skipped = append(result.Skipped, skippedFile(entry))
			continue
		}
		if tierFilter != nil && entry.Document.Tier != *tierFilter {
			continue
		}
		summary := entry.Document.Summary()
		summary.Preview = leadingText(entry.Document.Content, previewLength)
		result.Files = append(result.Files, summary)
	}

	slices.SortStableFunc(result.Files, func(a, b domain.Summary) int {
		return strings.Compare(a.Filename, b.Filename)
	})
	result.Count = len(result.Files)

	e.logger.Debug("List completed",
		"pattern", req.Pattern,
		"privacyFilter", result.PrivacyFilter,
		"files", len(result.Files),
		"skipped", len(result.Skipped))

	return result, nil
}

func skippedFile(entry domain.Entry) domain.SkippedFile {
	reason := entry.Err.Error()
	var readErr *domain.ReadError
	if errors.As(entry.Err, &readErr) && readErr.Err != nil {
		reason = readErr.Err.Error()
	}
	return domain.SkippedFile{Filename: entry.Name, Reason: reason}
}

// leadingText returns the whitespace-collapsed start of content, cut on a
// rune boundary after at most n bytes.
func leadingText(content string, n int) string {
	if len(content) <= n {
		return strings.Join(strings.Fields(content), " ")
	}
	end := n
	for end > 0 && !utf8.RuneStart(content[end]) {
		end--
	}
	return strings.Join(strings.Fields(content[:end]), " ") + "..."
}

// contentSnippet returns whitespace-collapsed context around the first
// case-insensitive occurrence of needle (already lowercased) in content, or
// "" when content does not contain it.
func contentSnippet(content, needle string) string {
	lower := strings.ToLower(content)
	idx := strings.Index(lower, needle)
	if idx < 0 {
		return ""
	}

	// Byte offsets in lower only line up with content when lowering kept
	// every rune the same width
	src := content
	if len(lower) != len(content) {
		src = lower
	}

	start := max(idx-snippetRadius, 0)
	for start > 0 && !utf8.RuneStart(src[start]) {
		start--
	}
	end := min(idx+len(needle)+snippetRadius, len(src))
	for end < len(src) && !utf8.RuneStart(src[end]) {
		end++
	}

	snippet := strings.Join(strings.Fields(src[start:end]), " ")
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(src) {
		snippet += "..."
	}
	return snippet
}
