// Package domain holds the document model shared by the scanner, the query
// engine and the formatters, together with the error taxonomy reported to
// callers.
package domain

import (
	"time"

	"docscan/internal/privacy"
)

// Document is a single file of the document root, materialized for the
// duration of one operation.
type Document struct {
	// Name is the base filename, unique within the document root
	Name string
	// Path is the absolute path the document was read from
	Path string

	Content string
	Size    int64
	ModTime time.Time

	Tier privacy.Tier
	// Marker is the marker that decided Tier, empty for public documents
	Marker string
	// Title comes from an optional YAML front matter block
	Title string
}

// Summary is the metadata view of a document, without its content.
type Summary struct {
	Filename  string       `json:"filename"`
	Title     string       `json:"title,omitempty"`
	SizeBytes int64        `json:"size_bytes"`
	Modified  time.Time    `json:"modified"`
	Privacy   privacy.Tier `json:"privacy_level"`
	// Preview is the start of the content, set by listings only
	Preview string `json:"preview,omitempty"`
}

// Summary returns the metadata view of d.
func (d *Document) Summary() Summary {
	return Summary{
		Filename:  d.Name,
		Title:     d.Title,
		SizeBytes: d.Size,
		Modified:  d.ModTime,
		Privacy:   d.Tier,
	}
}

// Entry is the outcome of scanning one file: either a Document or the
// per-file error that caused it to be skipped.
type Entry struct {
	Name     string
	Document *Document
	Err      error
}

// SkippedFile records a file left out of a result because it could not be read.
type SkippedFile struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}
