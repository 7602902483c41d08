// Package validation provides centralized input sanitization for prompt-forge.
//
// Two families of rules live here. Field sanitization trims, bounds, and
// denylist-checks every scalar and list value before it becomes part of a
// component. Identifier sanitization (identifier.go) guards every
// caller-supplied string that is used to derive a file path.
//
// The denylist is defense in depth against injection into downstream
// renderers that may embed the text in HTML or markup contexts. It is not a
// claim of exhaustive XSS protection.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	apperrors "github.com/promptforge/prompt-forge/internal/errors"
)

// Field limits shared by component construction and schema validation.
const (
	MaxGoalLength     = 500
	MaxDocumentLength = 10_000
	MaxOutputLength   = 1_000
	MaxListItems      = 10
	MaxItemLength     = 500
)

// dangerousPatterns are rejected outright in any string field.
// Case-insensitive, dot matches newline.
var dangerousPatterns = []struct {
	pattern *regexp.Regexp
	name    string
}{
	{regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`), "Script tags"},
	{regexp.MustCompile(`(?is)javascript:`), "JavaScript protocol"},
	{regexp.MustCompile(`(?is)on\w+\s*=`), "Event handlers"},
	{regexp.MustCompile(`(?is)<iframe[^>]*>`), "Iframe tags"},
}

// SanitizeString trims a scalar field value and validates it against the
// length limit and the dangerous-pattern denylist. Returns the trimmed value.
func SanitizeString(value string, maxLength int, field string) (string, error) {
	value = strings.TrimSpace(value)

	if len([]rune(value)) > maxLength {
		return "", apperrors.ValidationError(
			fmt.Sprintf("%s: Input too long (%d > %d characters)", field, len([]rune(value)), maxLength)).
			WithContext("field", field).
			WithContext("actual", len([]rune(value))).
			WithContext("limit", maxLength)
	}

	for _, dp := range dangerousPatterns {
		if dp.pattern.MatchString(value) {
			return "", apperrors.ValidationError(
				fmt.Sprintf("%s: Potentially malicious content detected (%s)", field, dp.name)).
				WithContext("field", field).
				WithContext("pattern", dp.name)
		}
	}

	return value, nil
}

// SanitizeList trims and validates a list field. Items that are empty after
// trimming are dropped silently, not rejected.
func SanitizeList(items []string, maxItems, maxItemLength int, field string) ([]string, error) {
	if len(items) > maxItems {
		return nil, apperrors.ValidationError(
			fmt.Sprintf("%s: Too many items (%d > %d)", field, len(items), maxItems)).
			WithContext("field", field).
			WithContext("actual", len(items)).
			WithContext("limit", maxItems)
	}

	sanitized := make([]string, 0, len(items))
	for i, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		clean, err := SanitizeString(item, maxItemLength, fmt.Sprintf("%s[%d]", field, i))
		if err != nil {
			return nil, err
		}
		sanitized = append(sanitized, clean)
	}

	return sanitized, nil
}
