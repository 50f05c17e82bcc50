package errors

import (
	"strings"
	"testing"
)

func TestValidateUsername(t *testing.T) {
	valid := []string{
		"ana",
		"octocat",
		"a",
		"user-name",
		"User123",
		strings.Repeat("a", 39),
	}
	for _, name := range valid {
		if err := ValidateUsername(name); err != nil {
			t.Errorf("ValidateUsername(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{
		"",
		"   ",
		strings.Repeat("a", 40),
		"a/b",
		`a\b`,
		"a?b",
		"a#b",
		"a%b",
		"..",
		"a..b",
		"a b",
		"a\tb",
		"a\nb",
		"a\x00b",
	}
	for _, name := range invalid {
		err := ValidateUsername(name)
		if err == nil {
			t.Errorf("ValidateUsername(%q) = nil, want error", name)
			continue
		}
		if !Is(err, ErrCodeInvalidInput) {
			t.Errorf("ValidateUsername(%q) code = %q, want %s", name, GetCode(err), ErrCodeInvalidInput)
		}
	}
}
