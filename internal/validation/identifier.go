package validation

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	apperrors "github.com/promptforge/prompt-forge/internal/errors"
)

// Identifier limits for values used as file name stems.
const (
	MaxIDLength       = 100
	MaxFilenameLength = 100
)

// idPattern permits only alphanumerics, hyphens, and underscores. No path
// separators, no dots, no whitespace.
var idPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// SanitizeID validates a template identifier before it is used to derive a
// file path. Returns the trimmed identifier or an INVALID_IDENTIFIER error.
func SanitizeID(id string) (string, error) {
	return sanitizeStem(id, MaxIDLength, "template ID")
}

// SanitizeFilename validates an export filename stem using the same
// alphabet and length rules as template identifiers.
func SanitizeFilename(name string) (string, error) {
	return sanitizeStem(name, MaxFilenameLength, "filename")
}

func sanitizeStem(value string, maxLength int, kind string) (string, error) {
	value = strings.TrimSpace(value)

	if value == "" {
		return "", apperrors.InvalidIdentifierError(value, fmt.Sprintf("%s cannot be empty", kind))
	}

	if !idPattern.MatchString(value) {
		return "", apperrors.InvalidIdentifierError(value,
			"only alphanumeric characters, hyphens, and underscores are allowed")
	}

	if len(value) > maxLength {
		return "", apperrors.InvalidIdentifierError(value,
			fmt.Sprintf("%s too long: %d characters", kind, len(value)))
	}

	return value, nil
}

// EnsureWithin verifies that path, once resolved to its canonical absolute
// form, is a descendant of root. This is a second line of defense against
// traversal that survives a passed sanitizer.
func EnsureWithin(root, path string) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return apperrors.InvalidIdentifierError(path, fmt.Sprintf("cannot resolve root: %v", err))
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return apperrors.InvalidIdentifierError(path, fmt.Sprintf("cannot resolve path: %v", err))
	}

	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return apperrors.InvalidIdentifierError(path,
			fmt.Sprintf("path escapes root directory %s", root))
	}

	return nil
}
