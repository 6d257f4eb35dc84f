package query

import (
	"errors"
	"slices"

	"docscan/internal/domain"
	"docscan/internal/privacy"

	"github.com/bmatcuk/doublestar/v4"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	// DefaultSearchLimit applies when a caller does not pass a limit
	DefaultSearchLimit = 10
	MaxQueryLength     = 200
	MaxFilenameLength  = 255
)

// SearchRequest asks for documents whose name or content contains Query.
type SearchRequest struct {
	Query            string `json:"query"`
	ExcludeSensitive bool   `json:"exclude_sensitive"`
	Limit            int    `json:"limit"`
}

// ContentRequest asks for one document by exact filename.
type ContentRequest struct {
	Filename        string `json:"filename"`
	IncludeMetadata bool   `json:"include_metadata"`
}

// ListRequest asks for all documents, optionally narrowed by a glob pattern
// and an exact privacy tier. Empty strings mean no filter.
type ListRequest struct {
	Pattern       string `json:"pattern"`
	PrivacyFilter string `json:"privacy_filter"`
}

// NewSearchRequest returns a request with the default limit.
func NewSearchRequest(query string) SearchRequest {
	return SearchRequest{Query: query, Limit: DefaultSearchLimit}
}

func (r *SearchRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Query,
			validation.Required,
			validation.RuneLength(1, MaxQueryLength),
		),
		validation.Field(&r.Limit,
			// Required rejects zero, Min rejects negatives
			validation.Required.Error("must be greater than 0"),
			validation.Min(1).Error("must be greater than 0"),
		),
	)
}

func (r *ContentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Filename,
			validation.Required,
			validation.RuneLength(1, MaxFilenameLength),
		),
	)
}

func (r *ListRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Pattern, validation.By(validPattern)),
		validation.Field(&r.PrivacyFilter, validation.By(validTier)),
	)
}

func validPattern(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if !doublestar.ValidatePattern(s) {
		return errors.New("malformed glob pattern")
	}
	return nil
}

func validTier(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := privacy.ParseTier(s); err != nil {
		return errors.New("must be one of public, sensitive, confidential")
	}
	return nil
}

// invalidArgument converts ozzo validation errors into the domain error type.
func invalidArgument(err error) error {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return &domain.InvalidArgumentError{Message: err.Error()}
	}

	fields := make([]string, 0, len(verrs))
	for field := range verrs {
		fields = append(fields, field)
	}
	slices.Sort(fields)

	if len(fields) == 1 {
		return &domain.InvalidArgumentError{Field: fields[0], Message: verrs[fields[0]].Error()}
	}
	return &domain.InvalidArgumentError{Message: verrs.Error()}
}
