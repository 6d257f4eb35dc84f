package fileops

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	// ErrNotDirectory is returned when the scan path exists but is not a directory.
	ErrNotDirectory = errors.New("not a directory")

	// ErrFileTooLarge is returned by ReadFile when a file exceeds the size limit.
	ErrFileTooLarge = errors.New("file exceeds size limit")

	// ErrNotRegularFile is returned by ReadFile for directories and special files.
	ErrNotRegularFile = errors.New("not a regular file")
)

// FileInfo describes a file discovered directly under the scan root.
type FileInfo struct {
	// Name is the base filename
	Name string

	// Size is the file size in bytes
	Size int64

	// ModTime is the last modification time
	ModTime time.Time

	// Mode contains the file mode and permission bits of the resolved file
	Mode os.FileMode
}

// ScanEntry is one candidate file of a scan. Err is set when the entry could
// not be inspected (for example a dangling or escaping symlink); the rest of
// the scan is unaffected.
type ScanEntry struct {
	FileInfo
	Err error
}

// FlatScanner lists and reads the files directly under one directory.
type FlatScanner struct {
	// root defines the security boundary for all file access
	root *os.Root

	// scanRoot is the absolute path of the scanned directory
	scanRoot string
}

// OpenFlatScanner creates a scanner for dir.
//
// Errors wrap fs.ErrNotExist when dir does not exist and ErrNotDirectory when
// it is not a directory, so callers can tell a missing root apart from other
// failures.
func OpenFlatScanner(dir string) (*FlatScanner, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("scan path cannot be empty: %w", fs.ErrNotExist)
	}

	absPath, err := filepath.Abs(ExpandPath(dir))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve scan path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("cannot access scan path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan path %s: %w", absPath, ErrNotDirectory)
	}

	root, err := os.OpenRoot(absPath)
	if err != nil {
		return nil, fmt.Errorf("cannot create secure scan root: %w", err)
	}

	return &FlatScanner{root: root, scanRoot: absPath}, nil
}

// Dir returns the absolute path of the scanned directory.
func (s *FlatScanner) Dir() string {
	return s.scanRoot
}

// Close releases the root handle.
func (s *FlatScanner) Close() error {
	if s.root != nil {
		err := s.root.Close()
		s.root = nil
		return err
	}
	return nil
}

// Scan lists the regular files directly under the root, sorted by name.
// Only a failure to read the directory itself is returned as an error.
func (s *FlatScanner) Scan() ([]ScanEntry, error) {
	if s.root == nil {
		return nil, fmt.Errorf("scanner has been closed")
	}

	dir, err := s.root.Open(".")
	if err != nil {
		return nil, fmt.Errorf("failed to open directory: %w", err)
	}
	defer dir.Close()

	// ReadDir returns entries sorted by filename
	entries, err := dir.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var results []ScanEntry
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			// Stat through the root follows the link but refuses to leave it
			info, err := s.root.Stat(entry.Name())
			if err != nil {
				results = append(results, ScanEntry{
					FileInfo: FileInfo{Name: entry.Name()},
					Err:      fmt.Errorf("cannot resolve symlink: %w", err),
				})
				continue
			}
			if !info.Mode().IsRegular() {
				continue
			}
			results = append(results, ScanEntry{FileInfo: newFileInfo(entry.Name(), info)})
			continue
		}

		if !entry.Type().IsRegular() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// Removed between ReadDir and Info, or not accessible
			results = append(results, ScanEntry{
				FileInfo: FileInfo{Name: entry.Name()},
				Err:      fmt.Errorf("failed to get file info: %w", err),
			})
			continue
		}
		results = append(results, ScanEntry{FileInfo: newFileInfo(entry.Name(), info)})
	}

	return results, nil
}

// ReadFile reads a file directly under the root. A maxSize of zero or less
// disables the size limit. The returned FileInfo reports the number of bytes
// actually read.
func (s *FlatScanner) ReadFile(name string, maxSize int64) ([]byte, FileInfo, error) {
	if s.root == nil {
		return nil, FileInfo{}, fmt.Errorf("scanner has been closed")
	}
	if err := ValidateBaseName(name); err != nil {
		return nil, FileInfo{}, err
	}

	f, err := s.root.Open(name)
	if err != nil {
		return nil, FileInfo{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, FileInfo{}, fmt.Errorf("cannot stat file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, FileInfo{}, fmt.Errorf("%s: %w", name, ErrNotRegularFile)
	}
	if maxSize > 0 && info.Size() > maxSize {
		return nil, FileInfo{}, fmt.Errorf("file size %d bytes exceeds limit %d bytes: %w", info.Size(), maxSize, ErrFileTooLarge)
	}

	var r io.Reader = f
	if maxSize > 0 {
		// The file may grow between Stat and Read
		r = io.LimitReader(f, maxSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, FileInfo{}, fmt.Errorf("failed to read file: %w", err)
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, FileInfo{}, fmt.Errorf("file grew beyond limit %d bytes: %w", maxSize, ErrFileTooLarge)
	}

	fi := newFileInfo(name, info)
	fi.Size = int64(len(data))
	return data, fi, nil
}

func newFileInfo(name string, info fs.FileInfo) FileInfo {
	return FileInfo{
		Name:    name,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Mode:    info.Mode(),
	}
}
