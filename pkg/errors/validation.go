package errors

import (
	"strings"
	"unicode"
)

// maxUsernameLength matches GitHub's own limit of 39 characters.
const maxUsernameLength = 39

// ValidateUsername validates a GitHub username before any network call.
// It rejects names that could be used for path injection in API URLs.
//
// The validation rules are intentionally conservative:
//   - No empty or whitespace-only names
//   - No control characters or whitespace
//   - No path separators or traversal sequences
//   - Maximum length of 39 characters (GitHub's limit)
func ValidateUsername(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "username cannot be empty")
	}

	if len(name) > maxUsernameLength {
		return New(ErrCodeInvalidInput, "username too long (max %d characters)", maxUsernameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "username contains invalid characters")
		}
	}

	if strings.ContainsAny(name, "/\\?#%") || strings.Contains(name, "..") {
		return New(ErrCodeInvalidInput, "username contains invalid characters")
	}

	return nil
}
