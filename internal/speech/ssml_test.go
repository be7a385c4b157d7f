package speech

import (
	"strings"
	"testing"
)

func TestEnhanceBreaks(t *testing.T) {
	tests := []struct {
		in       string
		contains string
	}{
		{"a strong drive - right down the middle", `drive<break strength="medium"/>right`},
		{"and... it drops", `and<break strength="medium"/> it drops`},
	}

	for _, tt := range tests {
		if got := EnhanceBreaks(tt.in); !strings.Contains(got, tt.contains) {
			t.Errorf("EnhanceBreaks(%q) = %q, want it to contain %q", tt.in, got, tt.contains)
		}
	}

	plain := "no pauses here"
	if got := EnhanceBreaks(plain); got != plain {
		t.Errorf("text without pause markers must pass through unchanged, got %q", got)
	}
}

func TestFixPronunciations(t *testing.T) {
	got := FixPronunciations("Putting from here takes the lead.")
	if strings.Contains(got, "Putting") {
		t.Errorf("capitalized putting not replaced: %q", got)
	}
	if strings.Contains(got, " lead") {
		t.Errorf("lead not replaced: %q", got)
	}
	if !strings.Contains(got, "phoneme") {
		t.Errorf("no phoneme markup produced: %q", got)
	}
}
