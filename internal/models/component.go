package models

import (
	"fmt"
	"strings"

	apperrors "github.com/promptforge/prompt-forge/internal/errors"
	"github.com/promptforge/prompt-forge/internal/validation"
)

// Component is the structured content of one prompt snapshot. Instances are
// built through NewComponent so that callers never hold a half-valid value;
// a Component that exists has already been trimmed, bounded, and
// denylist-checked.
type Component struct {
	Role     []string `json:"role"`
	Goal     string   `json:"goal"`
	Context  []string `json:"context"`
	Document string   `json:"document"`
	Output   string   `json:"output"`
	Rule     []string `json:"rule"`
}

// ComponentDraft carries raw caller-supplied field values into NewComponent.
type ComponentDraft struct {
	Role     []string
	Goal     string
	Context  []string
	Document string
	Output   string
	Rule     []string
}

// NewComponent validates and normalizes a draft into a trusted Component.
func NewComponent(draft ComponentDraft) (*Component, error) {
	c := &Component{
		Role:     draft.Role,
		Goal:     draft.Goal,
		Context:  draft.Context,
		Document: draft.Document,
		Output:   draft.Output,
		Rule:     draft.Rule,
	}
	if err := c.sanitize(); err != nil {
		return nil, err
	}
	return c, nil
}

// sanitize validates and normalizes every field in place. It also runs after
// deserialization so that persisted documents are held to the same rules as
// fresh input.
func (c *Component) sanitize() error {
	if strings.TrimSpace(c.Goal) == "" {
		return apperrors.NewAppError(apperrors.ErrCodeMissingField, "Goal is required").
			WithContext("field", "Goal")
	}

	goal, err := validation.SanitizeString(c.Goal, validation.MaxGoalLength, "Goal")
	if err != nil {
		return wrapComponentErr(err)
	}
	c.Goal = goal

	if c.Document != "" {
		doc, err := validation.SanitizeString(c.Document, validation.MaxDocumentLength, "Document")
		if err != nil {
			return wrapComponentErr(err)
		}
		c.Document = doc
	}

	if c.Output != "" {
		out, err := validation.SanitizeString(c.Output, validation.MaxOutputLength, "Output")
		if err != nil {
			return wrapComponentErr(err)
		}
		c.Output = out
	}

	for _, list := range []struct {
		name  string
		items *[]string
	}{
		{"Role", &c.Role},
		{"Context", &c.Context},
		{"Rule", &c.Rule},
	} {
		clean, err := validation.SanitizeList(*list.items, validation.MaxListItems, validation.MaxItemLength, list.name)
		if err != nil {
			return wrapComponentErr(err)
		}
		*list.items = clean
	}

	return nil
}

func wrapComponentErr(err error) error {
	appErr := apperrors.GetAppError(err)
	appErr.Message = fmt.Sprintf("Component validation failed: %s", appErr.Message)
	return appErr
}

// Validate re-checks the structural invariants. Components built through
// NewComponent always pass; this exists for callers holding deserialized
// values they want to assert on.
func (c *Component) Validate() error {
	if strings.TrimSpace(c.Goal) == "" {
		return apperrors.NewAppError(apperrors.ErrCodeMissingField, "Goal is required")
	}
	if len([]rune(c.Goal)) > validation.MaxGoalLength {
		return apperrors.ValidationError(fmt.Sprintf("Goal exceeds %d characters", validation.MaxGoalLength))
	}
	for name, items := range map[string][]string{"Role": c.Role, "Context": c.Context, "Rule": c.Rule} {
		if len(items) > validation.MaxListItems {
			return apperrors.ValidationError(fmt.Sprintf("%s has more than %d items", name, validation.MaxListItems))
		}
	}
	return nil
}

// IsEmpty reports whether every field is unset.
func (c *Component) IsEmpty() bool {
	return len(c.Role) == 0 && c.Goal == "" && len(c.Context) == 0 &&
		c.Document == "" && c.Output == "" && len(c.Rule) == 0
}

// Clone returns a deep copy.
func (c *Component) Clone() *Component {
	clone := &Component{
		Goal:     c.Goal,
		Document: c.Document,
		Output:   c.Output,
	}
	clone.Role = append([]string(nil), c.Role...)
	clone.Context = append([]string(nil), c.Context...)
	clone.Rule = append([]string(nil), c.Rule...)
	return clone
}
