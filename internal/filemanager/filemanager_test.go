package filemanager

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"docscan/internal/domain"
	"docscan/internal/logging"
	"docscan/internal/privacy"
)

func TestNewFileManager(t *testing.T) {
	logger, _ := logging.NewTestLogger()

	fm := NewFileManager("/does/not/exist/yet", logger)
	if fm == nil {
		t.Fatal("NewFileManager returned nil")
	}
	if fm.DocumentsDir() != "/does/not/exist/yet" {
		t.Errorf("DocumentsDir() = %q", fm.DocumentsDir())
	}
	if fm.maxFileSize != DefaultMaxFileSize {
		t.Errorf("Expected default max file size, got %d", fm.maxFileSize)
	}

	relative := NewFileManager("docs", logger)
	if !filepath.IsAbs(relative.DocumentsDir()) {
		t.Errorf("Expected relative documents dir to be made absolute, got %q", relative.DocumentsDir())
	}
}

func TestEnumerate_SampleSet(t *testing.T) {
	dir := createSampleDir(t)
	createTestDir(t, dir, "archive")
	createTestFile(t, filepath.Join(dir, "archive"), "old.txt", "password: nested and ignored")

	logger, _ := logging.NewTestLogger()
	fm := NewFileManager(dir, logger)

	entries, err := fm.Enumerate(context.Background())
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}
	if len(entries) != len(sampleDocuments) {
		t.Fatalf("Expected %d entries, got %d", len(sampleDocuments), len(entries))
	}

	wantTiers := map[string]privacy.Tier{
		"company_newsletter.txt": privacy.Public,
		"product_roadmap.txt":    privacy.Public,
		"team_meeting_notes.txt": privacy.Public,
		"hr_records.txt":         privacy.Sensitive,
		"it_credentials.txt":     privacy.Confidential,
	}

	var previous string
	for _, entry := range entries {
		if entry.Err != nil {
			t.Errorf("Unexpected error for %s: %v", entry.Name, entry.Err)
			continue
		}
		if entry.Name <= previous {
			t.Errorf("Entries not sorted: %q after %q", entry.Name, previous)
		}
		previous = entry.Name

		doc := entry.Document
		if doc.Tier != wantTiers[doc.Name] {
			t.Errorf("%s: tier = %v, want %v", doc.Name, doc.Tier, wantTiers[doc.Name])
		}
		if doc.Content != sampleDocuments[doc.Name] {
			t.Errorf("%s: content mismatch", doc.Name)
		}
		if doc.Size != int64(len(sampleDocuments[doc.Name])) {
			t.Errorf("%s: size = %d", doc.Name, doc.Size)
		}
		if doc.ModTime.IsZero() {
			t.Errorf("%s: missing modified time", doc.Name)
		}
		if doc.Path != filepath.Join(dir, doc.Name) {
			t.Errorf("%s: path = %q", doc.Name, doc.Path)
		}
	}
}

func TestEnumerate_SkipsUnreadableFiles(t *testing.T) {
	dir := createSampleDir(t)
	createTestFile(t, dir, "huge.txt", strings.Repeat("a", 2048))
	createSymlink(t, filepath.Join(dir, "gone.txt"), filepath.Join(dir, "dangling.txt"))

	logger, buf := logging.NewTestLogger()
	fm := NewFileManager(dir, logger, WithMaxFileSize(1024))

	entries, err := fm.Enumerate(context.Background())
	if err != nil {
		t.Fatalf("Enumerate should not fail because of single files: %v", err)
	}

	var docs, failed int
	for _, entry := range entries {
		if entry.Err != nil {
			failed++
			if !errors.Is(entry.Err, domain.ErrRead) {
				t.Errorf("%s: expected a read error, got %v", entry.Name, entry.Err)
			}
			if entry.Document != nil {
				t.Errorf("%s: failed entry should not carry a document", entry.Name)
			}
			continue
		}
		docs++
	}

	if docs != len(sampleDocuments) {
		t.Errorf("Expected %d readable documents, got %d", len(sampleDocuments), docs)
	}
	if failed != 2 {
		t.Errorf("Expected 2 skipped files, got %d", failed)
	}
	if !strings.Contains(buf.String(), "Skipping unreadable file") {
		t.Errorf("Expected skipped files to be logged, got: %s", buf.String())
	}
}

func TestEnumerate_DirectoryNotFound(t *testing.T) {
	logger, _ := logging.NewTestLogger()
	base := createTempTestDir(t)
	file := createTestFile(t, base, "plain.txt", "not a directory")

	for _, dir := range []string{filepath.Join(base, "missing"), file} {
		fm := NewFileManager(dir, logger)
		_, err := fm.Enumerate(context.Background())
		if !errors.Is(err, domain.ErrDirectoryNotFound) {
			t.Errorf("%s: expected DirectoryNotFound, got %v", dir, err)
		}
	}
}

func TestEnumerate_EmptyDirectory(t *testing.T) {
	logger, _ := logging.NewTestLogger()
	fm := NewFileManager(createTempTestDir(t), logger)

	entries, err := fm.Enumerate(context.Background())
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}
}

func TestEnumerate_ContextCancelled(t *testing.T) {
	logger, _ := logging.NewTestLogger()
	fm := NewFileManager(createSampleDir(t), logger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := fm.Enumerate(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestEnumerate_CustomClassifierAndTitle(t *testing.T) {
	dir := createTempTestDir(t)
	createTestFile(t, dir, "plan.md", "---\ntitle: Launch Plan\n---\nDRAFT: do not circulate")
	createTestFile(t, dir, "broken.md", "---\ntitle: [unterminated\nbody")

	logger, _ := logging.NewTestLogger()
	classifier := privacy.NewClassifier(privacy.WithExtraMarkers(nil, []string{"draft:"}))
	fm := NewFileManager(dir, logger, WithClassifier(classifier))

	entries, err := fm.Enumerate(context.Background())
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}

	docs := make(map[string]*domain.Document)
	for _, e := range entries {
		if e.Err != nil {
			t.Fatalf("Unexpected error for %s: %v", e.Name, e.Err)
		}
		docs[e.Name] = e.Document
	}

	plan := docs["plan.md"]
	if plan.Title != "Launch Plan" {
		t.Errorf("Expected front matter title, got %q", plan.Title)
	}
	if plan.Tier != privacy.Sensitive || plan.Marker != "draft:" {
		t.Errorf("Expected custom marker to classify as sensitive, got %v (%q)", plan.Tier, plan.Marker)
	}
	if !strings.HasPrefix(plan.Content, "---\ntitle: Launch Plan") {
		t.Error("Content must keep the raw front matter")
	}
	if docs["broken.md"].Title != "" {
		t.Errorf("Expected no title for malformed front matter, got %q", docs["broken.md"].Title)
	}
}

func TestLookup(t *testing.T) {
	dir := createSampleDir(t)
	createTestDir(t, dir, "folder")
	logger, _ := logging.NewTestLogger()
	fm := NewFileManager(dir, logger)
	ctx := context.Background()

	doc, err := fm.Lookup(ctx, "it_credentials.txt")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if doc.Content != sampleDocuments["it_credentials.txt"] {
		t.Error("Lookup returned different content")
	}
	if doc.Tier != privacy.Confidential {
		t.Errorf("Expected confidential tier, got %v", doc.Tier)
	}

	notFound := []string{"missing.txt", "IT_CREDENTIALS.TXT", "folder", "../it_credentials.txt", "", ".", ".."}
	for _, name := range notFound {
		if _, err := fm.Lookup(ctx, name); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("Lookup(%q): expected NotFound, got %v", name, err)
		}
	}
}

func TestLookup_BackslashInName(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("backslash is a path separator on Windows")
	}

	dir := createTempTestDir(t)
	name := `q1\report.txt`
	createTestFile(t, dir, name, "Quarterly numbers")
	logger, _ := logging.NewTestLogger()
	fm := NewFileManager(dir, logger)
	ctx := context.Background()

	entries, err := fm.Enumerate(ctx)
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Err != nil {
		t.Fatalf("Expected one readable entry, got %+v", entries)
	}

	doc, err := fm.Lookup(ctx, name)
	if err != nil {
		t.Fatalf("Lookup(%q) failed: %v", name, err)
	}
	if doc.Content != "Quarterly numbers" {
		t.Errorf("Lookup returned %q", doc.Content)
	}
}

func TestLookup_ReadErrorsAndMissingRoot(t *testing.T) {
	dir := createTempTestDir(t)
	createTestFile(t, dir, "huge.txt", strings.Repeat("z", 64))
	logger, _ := logging.NewTestLogger()
	ctx := context.Background()

	fm := NewFileManager(dir, logger, WithMaxFileSize(16))
	if _, err := fm.Lookup(ctx, "huge.txt"); !errors.Is(err, domain.ErrRead) {
		t.Errorf("Expected ReadError for oversized file, got %v", err)
	}

	missing := NewFileManager(filepath.Join(dir, "nope"), logger)
	if _, err := missing.Lookup(ctx, "huge.txt"); !errors.Is(err, domain.ErrDirectoryNotFound) {
		t.Errorf("Expected DirectoryNotFound, got %v", err)
	}
}
