package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/promptforge/prompt-forge/internal/errors"
)

// defaultGoal seeds the synthesized first version of a template created
// without any versions.
const defaultGoal = "기능 분석"

// Template is the named, categorized aggregate a user manages: an ordered,
// never-empty collection of versions plus a pointer to the current one.
//
// The current-version pointer is self-healing. Every mutating operation
// restores the invariant that the pointer resolves to an existing version,
// falling back to the last element when it does not.
type Template struct {
	TemplateID     string                 `json:"template_id"`
	Name           string                 `json:"name"`
	Category       Category               `json:"category"`
	CurrentVersion int                    `json:"current_version"`
	Versions       []*Version             `json:"versions"`
	Tags           []string               `json:"tags"`
	Metadata       map[string]interface{} `json:"metadata"`

	render RenderFunc
}

// NewTemplate creates a template with a generated id and, when no versions
// are supplied later, a synthesized default version so the aggregate is
// never empty.
func NewTemplate(name string, category Category, tags []string, render RenderFunc) (*Template, error) {
	t := &Template{
		TemplateID:     uuid.NewString(),
		Name:           name,
		Category:       category,
		CurrentVersion: 1,
		Tags:           tags,
		Metadata:       map[string]interface{}{},
		render:         render,
	}
	if err := t.Normalize(render); err != nil {
		return nil, err
	}
	return t, nil
}

// SetRenderFunc injects the renderer used by mutating operations. The store
// calls this after deserialization.
func (t *Template) SetRenderFunc(render RenderFunc) {
	t.render = render
}

// Normalize validates and repairs the aggregate in place: trims the name and
// tags, coerces the category, synthesizes a default version when none exist,
// re-sanitizes every component, renders missing prompt text, and clamps the
// current-version pointer. Deserialized templates pass through here before
// being trusted.
func (t *Template) Normalize(render RenderFunc) error {
	t.render = render

	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return apperrors.NewAppError(apperrors.ErrCodeMissingField, "Template name is required")
	}

	if !t.Category.Valid() {
		t.Category = ParseCategory(string(t.Category))
	}

	if strings.TrimSpace(t.TemplateID) == "" {
		t.TemplateID = uuid.NewString()
	}

	tags := t.Tags[:0]
	for _, tag := range t.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	t.Tags = tags

	if t.Metadata == nil {
		t.Metadata = map[string]interface{}{}
	}

	for _, v := range t.Versions {
		if v.Components == nil {
			v.Components = &Component{}
		}
		if err := v.Components.sanitize(); err != nil {
			return err
		}
		v.Description = strings.TrimSpace(v.Description)
		if v.CreatedAt.IsZero() {
			v.CreatedAt = time.Now()
		}
		v.ensureRendered(render)
	}

	if len(t.Versions) == 0 {
		defaultComponent, err := NewComponent(ComponentDraft{Goal: defaultGoal})
		if err != nil {
			return err
		}
		t.Versions = []*Version{NewVersion(1, defaultComponent, "", render)}
	}

	if t.CurrentVersion < 1 || t.CurrentVersion > len(t.Versions) {
		t.CurrentVersion = len(t.Versions)
	}

	return nil
}

// AddVersion appends a new version numbered count+1 and makes it current.
func (t *Template) AddVersion(components *Component, description string) int {
	number := len(t.Versions) + 1
	t.Versions = append(t.Versions, NewVersion(number, components, description, t.render))
	t.CurrentVersion = number
	return number
}

// Current resolves the current-version pointer. When the pointer does not
// match any stored version it falls back to the last element, so the result
// is never nil while versions exist.
func (t *Template) Current() *Version {
	if len(t.Versions) == 0 {
		return nil
	}
	for _, v := range t.Versions {
		if v.Version == t.CurrentVersion {
			return v
		}
	}
	return t.Versions[len(t.Versions)-1]
}

// VersionByNumber returns the version with the given sequence number, or nil.
func (t *Template) VersionByNumber(number int) *Version {
	for _, v := range t.Versions {
		if v.Version == number {
			return v
		}
	}
	return nil
}

// UpdateCurrent mutates the current version in place, keeping its number,
// and re-renders its prompt text. Returns false only when no current version
// exists, which cannot happen while the aggregate invariant holds.
func (t *Template) UpdateCurrent(components *Component, description string) bool {
	current := t.Current()
	if current == nil {
		return false
	}

	current.Components = components
	current.Description = strings.TrimSpace(description)
	current.GeneratedPrompt = ""
	current.ensureRendered(t.render)

	return true
}

// DeleteVersion removes the version with the given number. The last
// remaining version cannot be deleted. When the deleted version was current,
// the pointer moves to the last element.
func (t *Template) DeleteVersion(number int) bool {
	if len(t.Versions) <= 1 {
		return false
	}

	for i, v := range t.Versions {
		if v.Version == number {
			t.Versions = append(t.Versions[:i], t.Versions[i+1:]...)
			if t.CurrentVersion == number {
				t.CurrentVersion = t.Versions[len(t.Versions)-1].Version
			}
			return true
		}
	}

	return false
}

// SetCurrent moves the pointer to an existing version number.
func (t *Template) SetCurrent(number int) bool {
	if t.VersionByNumber(number) == nil {
		return false
	}
	t.CurrentVersion = number
	return true
}

// TemplateSummary is the lightweight catalog view of a template.
type TemplateSummary struct {
	TemplateID     string     `json:"template_id"`
	Name           string     `json:"name"`
	Category       Category   `json:"category"`
	VersionCount   int        `json:"version_count"`
	CurrentVersion int        `json:"current_version"`
	CreatedAt      *time.Time `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
	Tags           []string   `json:"tags"`
	HasComponents  bool       `json:"has_components"`
}

// Summary builds the catalog view: creation time of the first version,
// update time of the current one.
func (t *Template) Summary() TemplateSummary {
	s := TemplateSummary{
		TemplateID:     t.TemplateID,
		Name:           t.Name,
		Category:       t.Category,
		VersionCount:   len(t.Versions),
		CurrentVersion: t.CurrentVersion,
		Tags:           t.Tags,
	}

	if len(t.Versions) > 0 {
		created := t.Versions[0].CreatedAt
		s.CreatedAt = &created
	}
	if current := t.Current(); current != nil {
		updated := current.CreatedAt
		s.UpdatedAt = &updated
		s.HasComponents = current.Components != nil && !current.Components.IsEmpty()
	}

	return s
}
