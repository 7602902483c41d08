package models

import (
	"strings"
	"time"
)

// RenderFunc turns a component into delivery text. The renderer is injected
// so that version construction stays decoupled from the generator package.
type RenderFunc func(*Component) string

// Version is one historical snapshot of a template: a component set paired
// with its rendered text and descriptive metadata. Immutable after creation
// except through Template.UpdateCurrent, which re-renders.
type Version struct {
	Version         int        `json:"version"`
	CreatedAt       time.Time  `json:"created_at"`
	Components      *Component `json:"components"`
	GeneratedPrompt string     `json:"generated_prompt"`
	Description     string     `json:"description"`
}

// NewVersion creates a version for the given sequence number. When render is
// non-nil and the component is non-empty, the prompt text is generated at
// construction time so the stored snapshot is never silently stale.
func NewVersion(number int, components *Component, description string, render RenderFunc) *Version {
	v := &Version{
		Version:     number,
		CreatedAt:   time.Now(),
		Components:  components,
		Description: strings.TrimSpace(description),
	}
	v.ensureRendered(render)
	return v
}

// ensureRendered fills GeneratedPrompt when it is empty and the component
// has content. Re-rendering after later component edits is the caller's job.
func (v *Version) ensureRendered(render RenderFunc) {
	if v.GeneratedPrompt != "" || render == nil {
		return
	}
	if v.Components == nil || v.Components.IsEmpty() {
		return
	}
	v.GeneratedPrompt = render(v.Components)
}
