// Package service provides the business-logic facade over the generator,
// the template store, the catalog config, and the export writers.
package service

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/promptforge/prompt-forge/internal/config"
	apperrors "github.com/promptforge/prompt-forge/internal/errors"
	"github.com/promptforge/prompt-forge/internal/export"
	"github.com/promptforge/prompt-forge/internal/generator"
	"github.com/promptforge/prompt-forge/internal/models"
	"github.com/promptforge/prompt-forge/internal/schema"
	"github.com/promptforge/prompt-forge/internal/storage"
)

// Stats tracks per-session operation counters.
type Stats struct {
	TemplatesCreated int       `json:"templates_created"`
	TemplatesLoaded  int       `json:"templates_loaded"`
	TemplatesUpdated int       `json:"templates_updated"`
	TemplatesDeleted int       `json:"templates_deleted"`
	PromptsGenerated int       `json:"prompts_generated"`
	LastOperation    string    `json:"last_operation"`
	ServiceStarted   time.Time `json:"service_started"`
	TotalTemplates   int       `json:"total_templates"`
	CacheSize        int       `json:"cache_size"`
}

// Service wires the prompt generator, template store, config catalogs, and
// export writers together behind one API.
type Service struct {
	store     *storage.Store
	generator *generator.Generator
	config    *config.Loader
	exporter  *export.Service
	logger    *slog.Logger

	mu    sync.Mutex
	stats Stats
}

// New creates a service rooted at rootPath (empty selects the default store
// location under the user's home directory).
func New(rootPath string, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}

	gen := generator.Default()

	store, err := storage.NewStore(rootPath, gen.Generate, logger)
	if err != nil {
		return nil, err
	}

	loader := config.NewLoader(filepath.Join(store.BaseDir(), "data"), logger)
	if err := loader.EnsureExists(); err != nil {
		logger.Warn("failed to write default config", "error", err)
	}

	return &Service{
		store:     store,
		generator: gen,
		config:    loader,
		exporter:  export.NewService(logger),
		logger:    logger,
		stats:     Stats{ServiceStarted: time.Now()},
	}, nil
}

// Generator exposes the renderer for callers composing previews.
func (s *Service) Generator() *generator.Generator {
	return s.generator
}

// BaseDir returns the store's root directory.
func (s *Service) BaseDir() string {
	return s.store.BaseDir()
}

func (s *Service) recordOperation(operation string, bump func(*Stats)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if bump != nil {
		bump(&s.stats)
	}
	s.stats.LastOperation = operation
}

// GeneratePrompt validates the component and renders it in the default
// tagged format.
func (s *Service) GeneratePrompt(c *models.Component) (string, error) {
	return s.GeneratePromptAs(c, generator.FormatXML)
}

// GeneratePromptAs validates the component and renders it in an explicit
// format.
func (s *Service) GeneratePromptAs(c *models.Component, format generator.Format) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}

	prompt := s.generator.GenerateAs(c, format)

	s.recordOperation("프롬프트 생성", func(st *Stats) { st.PromptsGenerated++ })

	return prompt, nil
}

// CreateTemplate builds a new template whose first version holds the given
// components. The template is not persisted; call SaveTemplate.
func (s *Service) CreateTemplate(name, category string, c *models.Component, description string, tags []string) (*models.Template, error) {
	t, err := models.NewTemplate(name, models.ParseCategory(category), tags, s.generator.Generate)
	if err != nil {
		return nil, err
	}

	t.UpdateCurrent(c, description)

	s.recordOperation(fmt.Sprintf("템플릿 생성: %s", name), func(st *Stats) { st.TemplatesCreated++ })

	return t, nil
}

// SaveTemplate persists the template. With overwrite=false an existing file
// is a conflict.
func (s *Service) SaveTemplate(t *models.Template, overwrite bool) error {
	if err := s.store.Save(t, overwrite); err != nil {
		return err
	}

	s.recordOperation(fmt.Sprintf("템플릿 저장: %s", t.Name), func(st *Stats) { st.TemplatesUpdated++ })

	return nil
}

// LoadTemplate returns the template for id, or nil when absent or unreadable.
func (s *Service) LoadTemplate(id string) (*models.Template, error) {
	t, err := s.store.Load(id)
	if err != nil {
		return nil, err
	}
	if t != nil {
		s.recordOperation(fmt.Sprintf("템플릿 로드: %s", t.Name), func(st *Stats) { st.TemplatesLoaded++ })
	}
	return t, nil
}

// ListTemplates returns catalog summaries with optional category and tag
// filters, most recently updated first.
func (s *Service) ListTemplates(category string, tags []string) ([]models.TemplateSummary, error) {
	var cat models.Category
	if category != "" {
		cat = models.ParseCategory(category)
	}
	return s.store.List(cat, tags)
}

// SearchTemplates matches the query against names, tags, and rendered
// prompt text. An empty query returns the full listing.
func (s *Service) SearchTemplates(query string) ([]models.TemplateSummary, error) {
	return s.store.Search(query)
}

// FuzzySearchTemplates ranks templates by fuzzy match over name and tags.
// Unlike SearchTemplates this does not inspect rendered prompt text.
func (s *Service) FuzzySearchTemplates(query string) ([]models.TemplateSummary, error) {
	all, err := s.store.List("", nil)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return all, nil
	}

	searchStrings := make([]string, len(all))
	for i, summary := range all {
		searchStrings[i] = fmt.Sprintf("%s %s", summary.Name, strings.Join(summary.Tags, " "))
	}

	matches := fuzzy.Find(query, searchStrings)

	results := make([]models.TemplateSummary, 0, len(matches))
	for _, match := range matches {
		results = append(results, all[match.Index])
	}

	return results, nil
}

// DeleteTemplate removes the stored template, keeping a timestamped backup.
func (s *Service) DeleteTemplate(id string) error {
	if err := s.store.Delete(id); err != nil {
		return err
	}

	s.recordOperation(fmt.Sprintf("템플릿 삭제: %s", id), func(st *Stats) { st.TemplatesDeleted++ })

	return nil
}

// CopyTemplate duplicates a template under a new name, carrying only the
// current version. An empty newCategory keeps the source category.
func (s *Service) CopyTemplate(id, newName, newCategory string) (*models.Template, error) {
	var cat models.Category
	if newCategory != "" {
		cat = models.Category(newCategory)
	}
	return s.store.Copy(id, newName, cat)
}

// ExportTemplate serializes a stored template: "json" yields the full
// document, "text" the current version's rendered prompt.
func (s *Service) ExportTemplate(id, format string) (string, error) {
	t, err := s.store.Load(id)
	if err != nil {
		return "", err
	}
	if t == nil {
		return "", apperrors.NotFoundError(fmt.Sprintf("Template '%s'", id))
	}

	switch strings.ToLower(format) {
	case "json":
		data, err := json.MarshalIndent(t, "", "  ")
		if err != nil {
			return "", apperrors.ExportError("serialize template", err)
		}
		return string(data), nil

	case "text":
		if current := t.Current(); current != nil {
			return current.GeneratedPrompt, nil
		}
		return "", nil

	default:
		return "", apperrors.ValidationError(fmt.Sprintf("Unknown export format: %s", format))
	}
}

// ExportComponentFile writes the component to disk in the requested file
// format (md, json, yaml, pdf) and returns the created path.
func (s *Service) ExportComponentFile(c *models.Component, format, filename, outputDir string) (string, error) {
	switch strings.ToLower(format) {
	case "md", "markdown":
		return s.exporter.ExportMarkdown(c, filename, outputDir)
	case "json":
		return s.exporter.ExportJSON(c, filename, outputDir, nil)
	case "yaml", "yml":
		return s.exporter.ExportYAML(c, filename, outputDir, nil)
	case "pdf":
		return s.exporter.ExportPDF(c, filename, outputDir)
	default:
		return "", apperrors.ValidationError(fmt.Sprintf("Unknown export format: %s", format))
	}
}

// ImportTemplateFromJSON validates and persists a template document.
func (s *Service) ImportTemplateFromJSON(data []byte) (*models.Template, error) {
	if err := schema.ValidateTemplateDocument(data); err != nil {
		return nil, err
	}

	var t models.Template
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeFileCorrupted, "Invalid template document")
	}
	if err := t.Normalize(s.generator.Generate); err != nil {
		return nil, err
	}

	if err := s.store.Save(&t, true); err != nil {
		return nil, err
	}

	return &t, nil
}

// ValidateTemplateDocument checks raw bytes against the size ceiling and
// document schema without persisting anything.
func (s *Service) ValidateTemplateDocument(data []byte) error {
	return schema.ValidateTemplateDocument(data)
}

// Keywords returns the configured keyword catalog.
func (s *Service) Keywords() map[string][]string {
	return s.config.Keywords()
}

// Categories returns the configured category labels.
func (s *Service) Categories() []string {
	return s.config.Categories()
}

// OutputFormats returns the configured output-format catalog.
func (s *Service) OutputFormats() *config.OutputFormatCatalog {
	return s.config.LoadOutputFormats()
}

// ServiceStats returns a snapshot of the session counters plus store sizes.
func (s *Service) ServiceStats() Stats {
	s.mu.Lock()
	stats := s.stats
	s.mu.Unlock()

	stats.TotalTemplates = s.store.Count()
	stats.CacheSize = s.store.CacheSize()
	return stats
}

// Cleanup invalidates caches. Files on disk are untouched.
func (s *Service) Cleanup() {
	s.store.Cleanup()
	s.config.Reload()
}
