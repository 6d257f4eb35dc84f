package format

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"docscan/internal/domain"
	"docscan/internal/query"

	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

const (
	// previewWidth bounds a snippet or preview in narrative results
	previewWidth = 160
	wrapWidth    = 80
	timeLayout   = "2006-01-02 15:04:05 MST"
)

// Search renders a search result.
func Search(res *query.SearchResult, mode Mode) (string, error) {
	if mode == Structured {
		return marshal(res)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Search results for %q\n\n", res.Query)

	if len(res.Matches) == 0 {
		b.WriteString("No matching files found.\n")
	} else {
		fmt.Fprintf(&b, "Found %s matching %s", humanize.Comma(int64(res.TotalMatches)), plural(res.TotalMatches, "file"))
		if res.FilesFound < res.TotalMatches {
			fmt.Fprintf(&b, ", showing the first %d", res.FilesFound)
		}
		b.WriteString(".\n")
	}
	if res.ExcludeSensitive {
		b.WriteString("Sensitive and confidential files were excluded.\n")
	}

	for _, m := range res.Matches {
		b.WriteString("\n")
		writeSummary(&b, m.Summary)
		fmt.Fprintf(&b, "- **Match**: %s\n", m.MatchType)
		if m.Snippet != "" {
			fmt.Fprintf(&b, "\n> %s\n", preview(m.Snippet))
		}
	}

	writeSkipped(&b, res.Skipped)
	return b.String(), nil
}

// Content renders a single document. The content itself is reproduced
// verbatim in both modes. JSON strings cannot carry invalid UTF-8, so
// structured output base64-encodes such content and sets its encoding.
func Content(res *query.ContentResult, mode Mode) (string, error) {
	if mode == Structured {
		if res.Encoding == "" && !utf8.ValidString(res.Content) {
			encoded := *res
			encoded.Content = base64.StdEncoding.EncodeToString([]byte(res.Content))
			encoded.Encoding = query.EncodingBase64
			return marshal(&encoded)
		}
		return marshal(res)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", res.Filename)
	if md := res.Metadata; md != nil {
		if md.Title != "" {
			fmt.Fprintf(&b, "**Title**: %s  \n", md.Title)
		}
		fmt.Fprintf(&b, "**Privacy Level**: %s  \n", md.Privacy.Badge())
		fmt.Fprintf(&b, "**Size**: %s  \n", size(md.SizeBytes))
		fmt.Fprintf(&b, "**Modified**: %s\n\n", stamp(md.Modified))
		b.WriteString("---\n\n")
	}
	b.WriteString(res.Content)
	return b.String(), nil
}

// List renders a list result.
func List(res *query.ListResult, mode Mode) (string, error) {
	if mode == Structured {
		return marshal(res)
	}

	var b strings.Builder
	if len(res.Files) == 0 {
		b.WriteString("No files found.\n")
	} else {
		fmt.Fprintf(&b, "# Found %s %s\n", humanize.Comma(int64(res.Count)), plural(res.Count, "file"))
	}

	var filters []string
	if res.Pattern != "" {
		filters = append(filters, fmt.Sprintf("pattern `%s`", res.Pattern))
	}
	if res.PrivacyFilter != "" {
		filters = append(filters, fmt.Sprintf("privacy level %s", strings.ToUpper(res.PrivacyFilter)))
	}
	if len(filters) > 0 {
		fmt.Fprintf(&b, "\nFiltered by %s.\n", strings.Join(filters, " and "))
	}

	for _, f := range res.Files {
		b.WriteString("\n")
		writeSummary(&b, f)
	}

	writeSkipped(&b, res.Skipped)
	return b.String(), nil
}

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// Error renders err with its taxonomy kind. It never fails: a marshal error
// falls back to the plain message.
func Error(err error, mode Mode) string {
	kind := domain.Kind(err)
	if mode == Structured {
		out, mErr := marshal(errorBody{Error: err.Error(), Kind: kind})
		if mErr != nil {
			return err.Error()
		}
		return out
	}
	return fmt.Sprintf("**Error** (%s): %s", kind, err.Error())
}

func writeSummary(b *strings.Builder, s domain.Summary) {
	fmt.Fprintf(b, "## %s\n", s.Filename)
	if s.Title != "" {
		fmt.Fprintf(b, "- **Title**: %s\n", s.Title)
	}
	fmt.Fprintf(b, "- **Privacy Level**: %s\n", s.Privacy.Badge())
	fmt.Fprintf(b, "- **Size**: %s\n", size(s.SizeBytes))
	fmt.Fprintf(b, "- **Modified**: %s\n", stamp(s.Modified))
	if s.Preview != "" {
		fmt.Fprintf(b, "\n> %s\n", preview(s.Preview))
	}
}

func writeSkipped(b *strings.Builder, skipped []domain.SkippedFile) {
	if len(skipped) == 0 {
		return
	}
	fmt.Fprintf(b, "\n### Skipped %d unreadable %s\n", len(skipped), plural(len(skipped), "file"))
	for _, s := range skipped {
		fmt.Fprintf(b, "- `%s`: %s\n", s.Filename, s.Reason)
	}
}

func preview(snippet string) string {
	cut := truncate.StringWithTail(snippet, previewWidth, "...")
	return strings.ReplaceAll(wordwrap.String(cut, wrapWidth), "\n", "\n> ")
}

func size(n int64) string {
	if n < 0 {
		n = 0
	}
	return fmt.Sprintf("%s (%s bytes)", humanize.IBytes(uint64(n)), humanize.Comma(n))
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.UTC().Format(timeLayout)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func marshal(v any) (string, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode response: %w", err)
	}
	return string(out), nil
}
