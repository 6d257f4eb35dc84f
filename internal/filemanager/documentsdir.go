package filemanager

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"docscan/pkg/fileops"

	"github.com/adrg/xdg"
)

// GetDefaultDocumentsDir returns the default document root,
// $XDG_DATA_HOME/docscan/documents on every platform xdg supports.
func GetDefaultDocumentsDir() string {
	return filepath.Join(xdg.DataHome, "docscan", "documents")
}

// ValidateDocumentsDir checks if the provided document root path is usable
// without touching the filesystem.
func ValidateDocumentsDir(input string) error {
	path := strings.TrimSpace(input)
	if path == "" {
		return fmt.Errorf("documents directory cannot be empty")
	}

	expandedPath := fileops.ExpandPath(path)

	if err := fileops.ValidatePathSecurity(expandedPath); err != nil {
		return err
	}

	if isReservedDirectory(expandedPath) {
		return fmt.Errorf("cannot use system or reserved directories")
	}

	return nil
}

// isReservedDirectory checks if the path is a system or reserved directory
func isReservedDirectory(path string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return true // If we can't resolve it, treat as reserved
	}

	// Common system directories to avoid. /root and /var stay usable.
	reservedDirs := []string{
		"/",
		"/bin",
		"/boot",
		"/dev",
		"/etc",
		"/lib",
		"/proc",
		"/sbin",
		"/sys",
		"/usr",
	}

	if runtime.GOOS == "windows" {
		windowsReserved := []string{
			"C:\\Windows",
			"C:\\Program Files",
			"C:\\Program Files (x86)",
			"C:\\System32",
		}
		reservedDirs = append(reservedDirs, windowsReserved...)
	}

	for _, reserved := range reservedDirs {
		if strings.EqualFold(absPath, reserved) {
			return true
		}
		if reserved != "/" && strings.HasPrefix(strings.ToLower(absPath), strings.ToLower(reserved)+string(os.PathSeparator)) {
			return true
		}
	}

	return false
}
