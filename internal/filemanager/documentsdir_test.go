package filemanager

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestGetDefaultDocumentsDir(t *testing.T) {
	dir := GetDefaultDocumentsDir()
	if !filepath.IsAbs(dir) {
		t.Errorf("Expected absolute default documents dir, got %q", dir)
	}
	if !strings.HasSuffix(dir, filepath.Join("docscan", "documents")) {
		t.Errorf("Expected default dir to end with docscan/documents, got %q", dir)
	}
}

func TestValidateDocumentsDir(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantError string
	}{
		{"temp dir", t.TempDir(), ""},
		{"home relative", "~/documents", ""},
		{"empty", "  ", "cannot be empty"},
		{"traversal", "/srv/../../etc", "path traversal"},
	}
	if runtime.GOOS != "windows" {
		tests = append(tests,
			struct {
				name      string
				input     string
				wantError string
			}{"system dir", "/etc/docscan", "reserved"},
			struct {
				name      string
				input     string
				wantError string
			}{"filesystem root", "/", "reserved"},
		)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocumentsDir(tt.input)
			if tt.wantError == "" {
				if err != nil {
					t.Errorf("Expected %q to be valid, got: %v", tt.input, err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantError) {
				t.Errorf("Expected error containing %q, got: %v", tt.wantError, err)
			}
		})
	}
}
