// Package privacy classifies document text into privacy tiers using fixed
// content markers.
package privacy

import (
	"fmt"
	"strings"
)

// Tier is the privacy classification of a document. Higher values are more
// restrictive.
type Tier int

const (
	Public Tier = iota
	Sensitive
	Confidential
)

// AllTiers lists every tier from least to most restrictive.
var AllTiers = []Tier{Public, Sensitive, Confidential}

// String returns the lowercase wire name of the tier.
func (t Tier) String() string {
	switch t {
	case Public:
		return "public"
	case Sensitive:
		return "sensitive"
	case Confidential:
		return "confidential"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// Badge returns the uppercase label used in human-readable output.
func (t Tier) Badge() string {
	return strings.ToUpper(t.String())
}

// ParseTier parses a tier name case-insensitively.
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "public":
		return Public, nil
	case "sensitive":
		return Sensitive, nil
	case "confidential":
		return Confidential, nil
	default:
		return Public, fmt.Errorf("unknown privacy tier %q: must be one of public, sensitive, confidential", s)
	}
}

// MarshalText implements encoding.TextMarshaler so tiers serialize by name.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(text []byte) error {
	parsed, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
