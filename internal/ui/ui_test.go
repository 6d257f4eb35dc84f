package ui

import (
	"strings"
	"testing"

	"docscan/internal/privacy"
)

func TestTierBadge(t *testing.T) {
	for _, tier := range privacy.AllTiers {
		badge := TierBadge(tier)
		if !strings.Contains(badge, tier.Badge()) {
			t.Errorf("badge for %v should contain %q, got %q", tier, tier.Badge(), badge)
		}
	}
}

func TestRenderMarkdown(t *testing.T) {
	md := "# Found 2 files\n\n## hr_records.txt\n- **Privacy Level**: SENSITIVE\n"

	out, err := RenderMarkdown(md, "ascii", 60)
	if err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}
	for _, want := range []string{"Found 2 files", "hr_records.txt", "SENSITIVE"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderMarkdown_UnknownStyle(t *testing.T) {
	if _, err := RenderMarkdown("text", "no-such-style", 0); err == nil {
		t.Error("expected error for unknown glamour style")
	}
}
