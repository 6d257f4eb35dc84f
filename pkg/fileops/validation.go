package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ValidatePathSecurity performs static security validation on a directory or
// file path. It rejects empty paths and ".." traversal sequences and does not
// access the filesystem.
//
// Usage example:
//
//	if err := fileops.ValidatePathSecurity("../../etc/passwd"); err != nil {
//	    return err
//	}
func ValidatePathSecurity(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path cannot be empty")
	}

	// Check for path traversal in raw input
	for _, part := range strings.FieldsFunc(path, isSeparator) {
		if part == ".." {
			return fmt.Errorf("path traversal not allowed")
		}
	}

	// Clean and re-check for traversal
	cleanPath := filepath.Clean(path)
	if cleanPath == ".." || strings.HasPrefix(cleanPath, ".."+string(filepath.Separator)) {
		return fmt.Errorf("path traversal not allowed")
	}

	return nil
}

// ValidateBaseName checks that name refers to an entry directly inside a
// directory: non-empty, no path separators, and not "." or "..". Only the
// separators of the host OS count, so a backslash is an ordinary filename
// character on Unix.
func ValidateBaseName(name string) error {
	if name == "" {
		return fmt.Errorf("filename cannot be empty")
	}
	if name == "." || name == ".." {
		return fmt.Errorf("invalid filename: %q", name)
	}
	if strings.ContainsFunc(name, isHostSeparator) {
		return fmt.Errorf("filename contains path separators: %q", name)
	}
	if strings.ContainsRune(name, 0) {
		return fmt.Errorf("filename contains NUL byte")
	}
	return nil
}

// ExpandPath expands a path that starts with "~/" to the user's home directory.
//
// Usage example:
//
//	expanded := fileops.ExpandPath("~/Documents")
//	// Returns something like "/home/user/Documents"
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// Raw paths may come from any platform, so both separators split them.
func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}

func isHostSeparator(r rune) bool {
	return r < utf8.RuneSelf && os.IsPathSeparator(uint8(r))
}
