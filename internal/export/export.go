// Package export writes prompt components out as standalone Markdown, JSON,
// YAML, or PDF files. It performs its own filename sanitization and size
// ceiling, independent of the template store's identifier rules but
// following the same alphabet and traversal-safety checks.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/promptforge/prompt-forge/internal/errors"
	"github.com/promptforge/prompt-forge/internal/models"
	"github.com/promptforge/prompt-forge/internal/validation"
)

// MaxFileSizeBytes bounds the content of any exported file.
const MaxFileSizeBytes = 10 * 1024 * 1024

// Service writes component exports to disk.
type Service struct {
	logger *slog.Logger
}

// NewService creates an export service.
func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// document is the JSON/YAML export envelope.
type document struct {
	Version  string                 `json:"version" yaml:"version"`
	Metadata map[string]interface{} `json:"metadata" yaml:"metadata"`
	Content  *models.Component      `json:"content" yaml:"content"`
}

// ExportMarkdown writes the component as a Markdown document and returns
// the created file path.
func (s *Service) ExportMarkdown(c *models.Component, filename, outputDir string) (string, error) {
	content := MarkdownContent(c)
	return s.writeFile(filename, outputDir, ".md", []byte(content))
}

// ExportJSON writes the component inside a versioned JSON envelope. When
// metadata is nil an export timestamp is recorded instead.
func (s *Service) ExportJSON(c *models.Component, filename, outputDir string, metadata map[string]interface{}) (string, error) {
	data, err := json.MarshalIndent(exportDocument(c, metadata), "", "  ")
	if err != nil {
		return "", apperrors.ExportError("serialize JSON", err)
	}
	return s.writeFile(filename, outputDir, ".json", data)
}

// ExportYAML writes the component inside the same envelope as YAML.
func (s *Service) ExportYAML(c *models.Component, filename, outputDir string, metadata map[string]interface{}) (string, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(exportDocument(c, metadata)); err != nil {
		return "", apperrors.ExportError("serialize YAML", err)
	}
	if err := encoder.Close(); err != nil {
		return "", apperrors.ExportError("serialize YAML", err)
	}
	return s.writeFile(filename, outputDir, ".yaml", buf.Bytes())
}

func exportDocument(c *models.Component, metadata map[string]interface{}) document {
	if metadata == nil {
		metadata = map[string]interface{}{
			"exported_at": time.Now().Format(time.RFC3339),
		}
	}
	return document{
		Version:  "1.0",
		Metadata: metadata,
		Content:  c,
	}
}

// MarkdownContent renders the component as a standalone Markdown document
// with the goal as title and one section per populated field.
func MarkdownContent(c *models.Component) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("# %s\n", c.Goal))

	if len(c.Role) > 0 {
		lines = append(lines, "## Role")
		for _, role := range c.Role {
			lines = append(lines, fmt.Sprintf("- %s", role))
		}
		lines = append(lines, "")
	}

	if len(c.Context) > 0 {
		lines = append(lines, "## Context")
		for _, ctx := range c.Context {
			lines = append(lines, fmt.Sprintf("- %s", ctx))
		}
		lines = append(lines, "")
	}

	if c.Document != "" {
		lines = append(lines, "## Document", c.Document, "")
	}

	if c.Output != "" {
		lines = append(lines, "## Output", c.Output, "")
	}

	if len(c.Rule) > 0 {
		lines = append(lines, "## Rules")
		for _, rule := range c.Rule {
			lines = append(lines, fmt.Sprintf("- %s", rule))
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// writeFile sanitizes the filename, verifies the resolved path stays inside
// the output directory, enforces the size ceiling, and writes the content.
func (s *Service) writeFile(filename, outputDir, extension string, content []byte) (string, error) {
	safeName, err := validation.SanitizeFilename(filename)
	if err != nil {
		return "", err
	}

	if len(content) > MaxFileSizeBytes {
		return "", apperrors.ExportError("size check", fmt.Errorf(
			"file size exceeds limit: %.2fMB > %.2fMB",
			float64(len(content))/1024/1024, float64(MaxFileSizeBytes)/1024/1024))
	}

	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", apperrors.ExportError("create output directory", err)
	}

	outputPath := filepath.Join(outputDir, safeName+extension)
	if err := validation.EnsureWithin(outputDir, outputPath); err != nil {
		return "", err
	}

	if err := os.WriteFile(outputPath, content, 0644); err != nil {
		return "", apperrors.ExportError("write file", err)
	}

	s.logger.Debug("component exported", "path", outputPath, "bytes", len(content))
	return outputPath, nil
}
