package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is
var (
	ErrDirectoryNotFound = errors.New("directory not found")
	ErrRead              = errors.New("read error")
	ErrNotFound          = errors.New("not found")
	ErrInvalidArgument   = errors.New("invalid argument")
)

// Error kinds as reported to callers of the transport layer
const (
	KindDirectoryNotFound = "directory_not_found"
	KindReadError         = "read_error"
	KindNotFound          = "not_found"
	KindInvalidArgument   = "invalid_argument"
	KindInternal          = "internal"
)

type (
	// DirectoryNotFoundError indicates the document root is missing or is not a directory
	DirectoryNotFoundError struct {
		Dir string
		Err error
	}

	// ReadError indicates a single file could not be read
	ReadError struct {
		Filename string
		Err      error
	}

	// NotFoundError indicates no document has the requested name
	NotFoundError struct {
		Filename string
	}

	// InvalidArgumentError indicates a request was rejected before any I/O
	InvalidArgumentError struct {
		Field   string
		Message string
	}
)

func (e *DirectoryNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("documents directory %q not found: %v", e.Dir, e.Err)
	}
	return fmt.Sprintf("documents directory %q not found", e.Dir)
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read file %q: %v", e.Filename, e.Err)
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file %q not found in documents directory", e.Filename)
}

func (e *InvalidArgumentError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *DirectoryNotFoundError) Unwrap() error { return e.Err }
func (e *ReadError) Unwrap() error              { return e.Err }

func (e *DirectoryNotFoundError) Is(target error) bool { return target == ErrDirectoryNotFound }
func (e *ReadError) Is(target error) bool              { return target == ErrRead }
func (e *NotFoundError) Is(target error) bool          { return target == ErrNotFound }
func (e *InvalidArgumentError) Is(target error) bool   { return target == ErrInvalidArgument }

// NewInvalidArgument creates an InvalidArgumentError for a request field
func NewInvalidArgument(field, format string, args ...any) error {
	return &InvalidArgumentError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Kind maps an error to its taxonomy name. Unknown errors map to KindInternal.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidArgument):
		return KindInvalidArgument
	case errors.Is(err, ErrDirectoryNotFound):
		return KindDirectoryNotFound
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrRead):
		return KindReadError
	default:
		return KindInternal
	}
}
