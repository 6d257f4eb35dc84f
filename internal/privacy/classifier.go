package privacy

import (
	"slices"
	"strings"
)

// Rule maps a set of content markers to the tier they signal.
type Rule struct {
	Tier    Tier
	Markers []string
}

// DefaultRules are the built-in marker sets.
var DefaultRules = []Rule{
	{Tier: Confidential, Markers: []string{"[CONFIDENTIAL]", "SSN:", "credit card:", "password:"}},
	{Tier: Sensitive, Markers: []string{"[SENSITIVE]", "internal only", "employee id:"}},
}

// Classifier assigns tiers by case-insensitive substring search over a rule
// table. Rules are evaluated from the most restrictive tier down, so the first
// hit decides the tier. A Classifier is immutable after construction.
type Classifier struct {
	rules []Rule // markers lowercased, sorted by tier descending
}

// NewClassifier builds a classifier from the given rules. Rules for the same
// tier are merged; empty markers are dropped.
func NewClassifier(rules []Rule) *Classifier {
	byTier := make(map[Tier][]string)
	for _, r := range rules {
		for _, m := range r.Markers {
			m = strings.ToLower(strings.TrimSpace(m))
			if m == "" || slices.Contains(byTier[r.Tier], m) {
				continue
			}
			byTier[r.Tier] = append(byTier[r.Tier], m)
		}
	}

	c := &Classifier{}
	for tier, markers := range byTier {
		if tier == Public {
			// Public is the fallback, a marker cannot lower a tier.
			continue
		}
		c.rules = append(c.rules, Rule{Tier: tier, Markers: markers})
	}
	slices.SortFunc(c.rules, func(a, b Rule) int { return int(b.Tier) - int(a.Tier) })
	return c
}

// WithExtraMarkers returns the default rules extended by additional markers.
func WithExtraMarkers(confidential, sensitive []string) []Rule {
	rules := make([]Rule, 0, len(DefaultRules)+2)
	rules = append(rules, DefaultRules...)
	if len(confidential) > 0 {
		rules = append(rules, Rule{Tier: Confidential, Markers: confidential})
	}
	if len(sensitive) > 0 {
		rules = append(rules, Rule{Tier: Sensitive, Markers: sensitive})
	}
	return rules
}

// Classify returns the privacy tier of content.
func (c *Classifier) Classify(content string) Tier {
	tier, _ := c.Match(content)
	return tier
}

// Match returns the tier of content together with the (lowercased) marker that
// decided it. The marker is empty for Public content.
func (c *Classifier) Match(content string) (Tier, string) {
	lower := strings.ToLower(content)
	for _, rule := range c.rules {
		for _, marker := range rule.Markers {
			if strings.Contains(lower, marker) {
				return rule.Tier, marker
			}
		}
	}
	return Public, ""
}

var defaultClassifier = NewClassifier(DefaultRules)

// Default returns the classifier built from DefaultRules.
func Default() *Classifier {
	return defaultClassifier
}

// Classify classifies content with the default rules.
func Classify(content string) Tier {
	return defaultClassifier.Classify(content)
}
