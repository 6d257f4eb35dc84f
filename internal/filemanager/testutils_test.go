package filemanager

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// sampleDocuments mirrors a small mixed-tier document set
var sampleDocuments = map[string]string{
	"company_newsletter.txt": "Welcome to the spring newsletter!\nThe payment portal moves next week.",
	"product_roadmap.txt":    "Roadmap 2025: faster search, better payment flows.",
	"team_meeting_notes.txt": "Notes from Monday's sync. Action items below.",
	"hr_records.txt":         "Employee ID: E-1042\nName: Dana Smith\nRole: Analyst",
	"it_credentials.txt":     "Server access\npassword: correct-horse-battery-staple",
}

// createTempTestDir creates a temporary directory with automatic cleanup
func createTempTestDir(t *testing.T) string {
	t.Helper()
	return t.TempDir()
}

// createTestFile creates a test file with specified content
func createTestFile(t *testing.T, dir, filename, content string) string {
	t.Helper()
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
	return path
}

// createTestDir creates a test directory
func createTestDir(t *testing.T, dir, dirname string) string {
	t.Helper()
	path := filepath.Join(dir, dirname)
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("Failed to create test directory %s: %v", path, err)
	}
	return path
}

// createSymlink creates a symbolic link for testing
func createSymlink(t *testing.T, oldname, newname string) {
	t.Helper()
	if err := os.Symlink(oldname, newname); err != nil {
		if runtime.GOOS == "windows" {
			t.Skipf("symlink creation failed on Windows: %v", err)
		}
		t.Fatalf("failed to create symlink: %v", err)
	}
}

// createSampleDir writes sampleDocuments into a fresh directory
func createSampleDir(t *testing.T) string {
	t.Helper()
	dir := createTempTestDir(t)
	for name, content := range sampleDocuments {
		createTestFile(t, dir, name, content)
	}
	return dir
}
