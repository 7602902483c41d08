// Package generator renders validated components into delivery text.
//
// Rendering is deterministic and side-effect free: the same component and
// format always produce byte-identical output. Sections appear in the fixed
// order Role, Goal, Document, Context, Output, Rule, and empty sections are
// omitted entirely.
package generator

import (
	"fmt"
	"strings"

	"github.com/promptforge/prompt-forge/internal/models"
)

// Format selects the delivery form of a rendered prompt.
type Format string

const (
	// FormatXML wraps each section in <Name>...</Name> tags.
	FormatXML Format = "XML"
	// FormatMarkdown renders each section under a "# Name" heading.
	FormatMarkdown Format = "Markdown"
)

// longItemThreshold is the strict rune-count bound above which a context or
// rule item switches from a bullet to a numbered paragraph entry.
const longItemThreshold = 100

// documentReminder is appended to the goal whenever a document is attached.
const documentReminder = "**중요: 아래 제공된 Document를 반드시 참고하세요.**"

// Generator renders prompts in a configured default format.
type Generator struct {
	format Format
}

// New creates a generator with the given default format.
func New(format Format) *Generator {
	return &Generator{format: format}
}

// Default returns a generator with the XML tagged format.
func Default() *Generator {
	return New(FormatXML)
}

// Generate renders the component in the generator's default format.
//
// Generate is total over validated components: an internal fault produces a
// human-readable in-band error string instead of a panic, so the calling
// layer never needs recovery logic of its own.
func (g *Generator) Generate(c *models.Component) (result string) {
	return g.GenerateAs(c, g.format)
}

// GenerateAs renders the component in an explicit format.
func (g *Generator) GenerateAs(c *models.Component, format Format) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = fmt.Sprintf("프롬프트 생성 중 오류 발생: %v", r)
		}
	}()

	sections := buildSections(c)

	var parts []string
	for _, s := range sections {
		if s.body == "" {
			continue
		}
		if format == FormatMarkdown {
			parts = append(parts, fmt.Sprintf("# %s\n\n%s", s.name, s.body))
		} else {
			parts = append(parts, fmt.Sprintf("<%s>\n%s\n</%s>", s.name, s.body, s.name))
		}
	}

	return strings.Join(parts, "\n\n")
}

type section struct {
	name string
	body string
}

// buildSections composes every section body in fixed order. Empty bodies
// cause the section to be dropped by the caller.
func buildSections(c *models.Component) []section {
	goal := c.Goal
	if strings.TrimSpace(c.Document) != "" {
		goal = fmt.Sprintf("%s\n\n%s", c.Goal, documentReminder)
	}

	return []section{
		{"Role", roleSection(c.Role)},
		{"Goal", goalSection(goal)},
		{"Document", strings.TrimSpace(c.Document)},
		{"Context", listSection(c.Context)},
		{"Output", strings.TrimSpace(c.Output)},
		{"Rule", listSection(c.Rule)},
	}
}

// roleSection joins roles with commas; a single role stands alone.
func roleSection(roles []string) string {
	if len(roles) == 0 {
		return ""
	}
	return strings.Join(roles, ", ")
}

// goalSection passes the trimmed goal through. Goals over the long-item
// threshold are rendered identically to short ones; the branch exists so the
// distinction stays visible where the composition rules live.
func goalSection(goal string) string {
	text := strings.TrimSpace(goal)
	if text == "" {
		return ""
	}
	if len([]rune(text)) > longItemThreshold {
		return text
	}
	return text
}

// listSection formats context and rule items. Each item is classified
// independently: strictly more than 100 characters becomes a 1-based
// numbered entry, anything else a bullet. Entries are joined by blank lines.
func listSection(items []string) string {
	if len(items) == 0 {
		return ""
	}

	formatted := make([]string, 0, len(items))
	for i, item := range items {
		if len([]rune(item)) > longItemThreshold {
			formatted = append(formatted, fmt.Sprintf("%d. %s", i+1, item))
		} else {
			formatted = append(formatted, fmt.Sprintf("- %s", item))
		}
	}

	return strings.Join(formatted, "\n\n")
}

// PromptSummary describes which sections a component populates and how long
// the rendered prompt would be.
type PromptSummary struct {
	RoleCount       int  `json:"role_count"`
	HasGoal         bool `json:"has_goal"`
	ContextCount    int  `json:"context_count"`
	HasDocument     bool `json:"has_document"`
	HasOutput       bool `json:"has_output"`
	RuleCount       int  `json:"rule_count"`
	TotalSections   int  `json:"total_sections"`
	EstimatedLength int  `json:"estimated_length"`
}

// Summary reports populated sections and the estimated rendered length in
// the generator's default format.
func (g *Generator) Summary(c *models.Component) PromptSummary {
	s := PromptSummary{
		RoleCount:    len(c.Role),
		HasGoal:      c.Goal != "",
		ContextCount: len(c.Context),
		HasDocument:  strings.TrimSpace(c.Document) != "",
		HasOutput:    c.Output != "",
		RuleCount:    len(c.Rule),
	}

	for _, populated := range []bool{
		len(c.Role) > 0, s.HasGoal, len(c.Context) > 0, s.HasDocument, s.HasOutput, len(c.Rule) > 0,
	} {
		if populated {
			s.TotalSections++
		}
	}

	s.EstimatedLength = len(g.Generate(c))
	return s
}

// Variations renders the base component plus one variant per option, where
// each option extends a single section. Duplicate renderings are dropped.
func (g *Generator) Variations(base *models.Component, variations map[string][]string) []string {
	prompts := []string{g.Generate(base)}

	for sectionName, options := range variations {
		for _, option := range options {
			modified := base.Clone()

			switch sectionName {
			case "role":
				if !contains(modified.Role, option) {
					modified.Role = append(modified.Role, option)
				}
			case "context":
				if !contains(modified.Context, option) {
					modified.Context = append(modified.Context, option)
				}
			case "output":
				modified.Output = option
			case "rule":
				if !contains(modified.Rule, option) {
					modified.Rule = append(modified.Rule, option)
				}
			}

			rendered := g.Generate(modified)
			if !contains(prompts, rendered) {
				prompts = append(prompts, rendered)
			}
		}
	}

	return prompts
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
