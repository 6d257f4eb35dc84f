// Package filemanager materializes the documents of the document root.
//
// Nothing is cached: every call re-reads the directory, so results always
// reflect the filesystem at the time of the call. Files that cannot be read
// are reported as per-file entries and never abort an enumeration.
package filemanager

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"docscan/internal/domain"
	"docscan/internal/logging"
	"docscan/internal/privacy"
	"docscan/pkg/fileops"

	"github.com/adrg/frontmatter"
)

// DefaultMaxFileSize is the per-file read limit used when none is configured.
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// documentFrontmatter holds the optional header fields read from a document.
type documentFrontmatter struct {
	Title string `yaml:"title" toml:"title" json:"title"`
}

// FileManager reads documents from a single directory.
type FileManager struct {
	documentsDir string
	logger       *logging.AppLogger
	classifier   *privacy.Classifier
	maxFileSize  int64
}

// Option configures a FileManager.
type Option func(*FileManager)

// WithClassifier overrides the default marker classifier.
func WithClassifier(c *privacy.Classifier) Option {
	return func(fm *FileManager) {
		if c != nil {
			fm.classifier = c
		}
	}
}

// WithMaxFileSize sets the per-file size limit in bytes. Zero disables it.
func WithMaxFileSize(n int64) Option {
	return func(fm *FileManager) {
		if n >= 0 {
			fm.maxFileSize = n
		}
	}
}

// NewFileManager creates a FileManager for documentsDir. The directory is
// not required to exist yet; each operation checks it.
func NewFileManager(documentsDir string, logger *logging.AppLogger, opts ...Option) *FileManager {
	if abs, err := filepath.Abs(fileops.ExpandPath(documentsDir)); err == nil && documentsDir != "" {
		documentsDir = abs
	}

	fm := &FileManager{
		documentsDir: documentsDir,
		logger:       logger,
		classifier:   privacy.Default(),
		maxFileSize:  DefaultMaxFileSize,
	}
	for _, opt := range opts {
		opt(fm)
	}
	return fm
}

// DocumentsDir returns the absolute document root.
func (fm *FileManager) DocumentsDir() string {
	return fm.documentsDir
}

// Enumerate reads and classifies every regular file directly under the
// document root. Per-file failures are returned as entries carrying a
// *domain.ReadError. The returned error is a *domain.DirectoryNotFoundError
// when the root is missing, or the context error if ctx is done.
func (fm *FileManager) Enumerate(ctx context.Context) ([]domain.Entry, error) {
	scanner, err := fm.openScanner()
	if err != nil {
		return nil, err
	}
	defer scanner.Close()

	files, err := scanner.Scan()
	if err != nil {
		return nil, fmt.Errorf("failed to scan documents directory: %w", err)
	}

	fm.logger.Debug("Scanned documents directory", "dir", fm.documentsDir, "fileCount", len(files))

	entries := make([]domain.Entry, 0, len(files))
	var skipped int
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entry := domain.Entry{Name: file.Name}
		if file.Err != nil {
			entry.Err = &domain.ReadError{Filename: file.Name, Err: file.Err}
		} else {
			entry.Document, entry.Err = fm.readDocument(scanner, file.Name)
		}

		if entry.Err != nil {
			fm.logger.Warn("Skipping unreadable file", "file", file.Name, "error", entry.Err)
			skipped++
		}
		entries = append(entries, entry)
	}

	fm.logger.Debug("Enumeration completed",
		"totalFiles", len(entries),
		"skipped", skipped)

	return entries, nil
}

// Lookup reads the single document with exactly the given name. Names are
// compared case-sensitively against the directory listing, so a
// case-insensitive filesystem cannot widen a match.
func (fm *FileManager) Lookup(ctx context.Context, name string) (*domain.Document, error) {
	if err := fileops.ValidateBaseName(name); err != nil {
		fm.logger.Debug("Rejected lookup name", "name", name, "reason", err)
		return nil, &domain.NotFoundError{Filename: name}
	}

	scanner, err := fm.openScanner()
	if err != nil {
		return nil, err
	}
	defer scanner.Close()

	files, err := scanner.Scan()
	if err != nil {
		return nil, fmt.Errorf("failed to scan documents directory: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, file := range files {
		if file.Name != name {
			continue
		}
		if file.Err != nil {
			return nil, &domain.ReadError{Filename: name, Err: file.Err}
		}
		return fm.readDocument(scanner, name)
	}

	return nil, &domain.NotFoundError{Filename: name}
}

func (fm *FileManager) openScanner() (*fileops.FlatScanner, error) {
	scanner, err := fileops.OpenFlatScanner(fm.documentsDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fileops.ErrNotDirectory) {
			return nil, &domain.DirectoryNotFoundError{Dir: fm.documentsDir, Err: err}
		}
		return nil, fmt.Errorf("failed to open documents directory: %w", err)
	}
	return scanner, nil
}

// readDocument loads and classifies one file. A file that disappears after
// being listed is a per-file read error like any other.
func (fm *FileManager) readDocument(scanner *fileops.FlatScanner, name string) (*domain.Document, error) {
	data, info, err := scanner.ReadFile(name, fm.maxFileSize)
	if err != nil {
		return nil, &domain.ReadError{Filename: name, Err: err}
	}

	content := string(data)
	tier, marker := fm.classifier.Match(content)

	doc := &domain.Document{
		Name:    name,
		Path:    filepath.Join(scanner.Dir(), name),
		Content: content,
		Size:    info.Size,
		ModTime: info.ModTime,
		Tier:    tier,
		Marker:  marker,
		Title:   parseTitle(data),
	}

	fm.logger.Debug("Read document",
		"file", name,
		"size", doc.Size,
		"tier", doc.Tier,
	)
	return doc, nil
}

// parseTitle returns the front matter title of data, or "" when there is no
// usable front matter.
func parseTitle(data []byte) string {
	var matter documentFrontmatter
	if _, err := frontmatter.Parse(bytes.NewReader(data), &matter); err != nil {
		return ""
	}
	return matter.Title
}
