package validation

import (
	"strings"
	"testing"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain name", "Snack Time", "Snack Time"},
		{"path separators replaced", "a/b\\c", "a_b_c"},
		{"colon replaced", "morning: routine", "morning_ routine"},
		{"whitespace collapsed", "  lots   of\tspace ", "lots of space"},
		{"control characters dropped", "he\x00llo\x07", "hello"},
		{"empty falls back", "", "board"},
		{"dot falls back", ".", "board"},
		{"dotdot falls back", "..", "board"},
		{"leading hyphen stripped", "-flags", "flags"},
		{"hebrew preserved", "לוח תקשורת", "לוח תקשורת"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeName(tt.input); got != tt.want {
				t.Errorf("SanitizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeNameTruncates(t *testing.T) {
	long := strings.Repeat("x", 300)
	got := SanitizeName(long)
	if len(got) != MaxNameLength {
		t.Errorf("len(SanitizeName(long)) = %d, want %d", len(got), MaxNameLength)
	}
}

func TestValidateFilename(t *testing.T) {
	valid := []string{"board.gridset", "Snack Time.obz", "vocab.touchchat"}
	for _, name := range valid {
		if err := ValidateFilename(name); err != nil {
			t.Errorf("ValidateFilename(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", ".", "..", "a/b", "a\\b", "a\x00b", "-rf", "tab\tname"}
	for _, name := range invalid {
		if err := ValidateFilename(name); err == nil {
			t.Errorf("ValidateFilename(%q) = nil, want error", name)
		}
	}
}
