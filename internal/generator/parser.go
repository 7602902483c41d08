package generator

import "strings"

// Keywords is the best-effort result of reverse-parsing a rendered prompt.
type Keywords struct {
	Role    []string `json:"role"`
	Goal    string   `json:"goal"`
	Context []string `json:"context"`
	Output  string   `json:"output"`
	Rule    []string `json:"rule"`
}

// ExtractKeywords reverse-parses a previously rendered tagged-form prompt
// back into a keyword map. Role and Context are split on commas and Rule is
// stripped of leading bullet markers. This is lossy and best-effort, not an
// inverse of Generate: unknown sections are ignored and parse failures yield
// empty keywords.
func ExtractKeywords(promptText string) Keywords {
	keywords := Keywords{
		Role:    []string{},
		Context: []string{},
		Rule:    []string{},
	}

	for name, content := range parseSections(promptText) {
		switch strings.ToLower(name) {
		case "role":
			keywords.Role = splitCommaList(content)
		case "goal":
			keywords.Goal = strings.TrimSpace(content)
		case "context":
			keywords.Context = splitCommaList(content)
		case "output":
			keywords.Output = strings.TrimSpace(content)
		case "rule":
			var rules []string
			for _, line := range strings.Split(content, "\n") {
				line = strings.TrimSpace(line)
				if strings.HasPrefix(line, "- ") {
					rules = append(rules, line[2:])
				} else if line != "" {
					rules = append(rules, line)
				}
			}
			keywords.Rule = rules
		}
	}

	return keywords
}

// parseSections scans tagged-form text line by line, collecting the body of
// each <Section>...</Section> block.
func parseSections(promptText string) map[string]string {
	sections := make(map[string]string)

	var currentSection string
	var currentContent []string

	for _, line := range strings.Split(promptText, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "</") && strings.HasSuffix(line, ">"):
			if currentSection != "" {
				sections[currentSection] = strings.TrimSpace(strings.Join(currentContent, "\n"))
				currentSection = ""
				currentContent = nil
			}

		case strings.HasPrefix(line, "<") && strings.HasSuffix(line, ">"):
			if currentSection != "" {
				sections[currentSection] = strings.TrimSpace(strings.Join(currentContent, "\n"))
			}
			currentSection = strings.TrimSuffix(strings.TrimPrefix(line, "<"), ">")
			currentContent = nil

		case currentSection != "" && line != "":
			currentContent = append(currentContent, line)
		}
	}

	if currentSection != "" {
		sections[currentSection] = strings.TrimSpace(strings.Join(currentContent, "\n"))
	}

	return sections
}

func splitCommaList(content string) []string {
	parts := strings.Split(content, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		items = append(items, strings.TrimSpace(part))
	}
	return items
}
