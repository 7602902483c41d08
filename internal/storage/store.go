// Package storage handles file system persistence for prompt templates.
//
// Each template is one JSON document named {template_id}.json under the
// store's templates directory. An in-memory cache shadows the files; deleted
// templates are copied into a timestamped backup directory before removal.
// The store assumes a single writer at a time per identifier — saves simply
// overwrite, with no file locking.
package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	apperrors "github.com/promptforge/prompt-forge/internal/errors"
	"github.com/promptforge/prompt-forge/internal/models"
	"github.com/promptforge/prompt-forge/internal/schema"
	"github.com/promptforge/prompt-forge/internal/validation"
)

const (
	templatesDirName = "templates"
	backupDirName    = "backup"

	// warmStartLimit bounds startup cost: only this many of the most
	// recently modified templates are loaded into the cache eagerly.
	warmStartLimit = 50

	backupTimestampLayout = "20060102_150405"
)

// Store provides file-backed CRUD over templates plus catalog queries.
type Store struct {
	rootPath     string
	templatesDir string
	cache        *TemplateCache
	render       models.RenderFunc
	logger       *slog.Logger
}

// NewStore creates a store rooted at rootPath (default ~/.prompt-forge),
// creates the directory layout, and warms the cache from the most recently
// modified template files.
func NewStore(rootPath string, render models.RenderFunc, logger *slog.Logger) (*Store, error) {
	if rootPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, apperrors.StorageError("resolve home directory", err)
		}
		rootPath = filepath.Join(homeDir, ".prompt-forge")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		rootPath:     rootPath,
		templatesDir: filepath.Join(rootPath, templatesDirName),
		cache:        NewTemplateCache(),
		render:       render,
		logger:       logger,
	}

	for _, dir := range []string{s.rootPath, s.templatesDir, filepath.Join(s.templatesDir, backupDirName)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, apperrors.StorageError(fmt.Sprintf("create directory %s", dir), err)
		}
	}

	s.warmCache()

	return s, nil
}

// BaseDir returns the root path of the store.
func (s *Store) BaseDir() string {
	return s.rootPath
}

// templatePath sanitizes the identifier and resolves the backing file path,
// confirming it stays inside the templates directory. Every file-deriving
// operation goes through here before touching the file system.
func (s *Store) templatePath(id string) (string, string, error) {
	safeID, err := validation.SanitizeID(id)
	if err != nil {
		return "", "", err
	}

	path := filepath.Join(s.templatesDir, safeID+".json")
	if err := validation.EnsureWithin(s.templatesDir, path); err != nil {
		return "", "", err
	}

	return safeID, path, nil
}

// Save writes the template's JSON document and updates the cache entry.
// With overwrite=false an existing file is a conflict, not an overwrite.
// A failed save leaves the prior on-disk state and cache entry untouched.
func (s *Store) Save(t *models.Template, overwrite bool) error {
	safeID, path, err := s.templatePath(t.TemplateID)
	if err != nil {
		return err
	}

	if !overwrite {
		if _, statErr := os.Stat(path); statErr == nil {
			return apperrors.AlreadyExistsError(fmt.Sprintf("Template '%s'", t.Name)).
				WithContext("template_id", safeID)
		}
	}

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return apperrors.StorageError("serialize template", err)
	}

	// Write-then-rename so a failure mid-write cannot clobber the prior file.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return apperrors.StorageError("write template file", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return apperrors.StorageError("write template file", err)
	}

	s.cache.Set(safeID, t)
	s.logger.Debug("template saved", "template_id", safeID, "name", t.Name)

	return nil
}

// Load returns the template for id, consulting the cache first. Missing
// files, malformed identifiers, and corrupt documents all degrade to a nil
// template with a logged warning — the read path favors availability.
func (s *Store) Load(id string) (*models.Template, error) {
	safeID, path, err := s.templatePath(id)
	if err != nil {
		s.logger.Warn("invalid template id", "template_id", id, "error", err)
		return nil, nil
	}

	if cached, ok := s.cache.Get(safeID); ok {
		return cached, nil
	}

	t, err := s.loadFile(path)
	if err != nil {
		if apperrors.HasCode(err, apperrors.ErrCodeFileNotFound) {
			return nil, nil
		}
		s.logger.Warn("failed to load template", "template_id", safeID, "error", err)
		return nil, nil
	}

	s.cache.Set(safeID, t)
	return t, nil
}

// loadFile reads, validates, and reconstructs a template document. Errors
// distinguish absence (FILE_NOT_FOUND) from corruption so that callers can
// skip broken entries while still reporting them.
func (s *Store) loadFile(path string) (*models.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeFileNotFound, "template file does not exist")
		}
		return nil, apperrors.StorageError("read template file", err)
	}

	if err := schema.ValidateTemplateDocument(data); err != nil {
		return nil, err
	}

	var t models.Template
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, apperrors.CorruptedError(path, err)
	}

	if err := t.Normalize(s.render); err != nil {
		return nil, apperrors.CorruptedError(path, err)
	}

	return &t, nil
}

// Delete backs the template file up into the backup directory, removes the
// original, and evicts the cache entry. Deleting an absent template is a
// not-found condition, not a silent success.
func (s *Store) Delete(id string) error {
	safeID, path, err := s.templatePath(id)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return apperrors.NotFoundError(fmt.Sprintf("Template '%s'", safeID))
	}

	backupDir := filepath.Join(s.templatesDir, backupDirName)
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		return apperrors.StorageError("create backup directory", err)
	}

	timestamp := time.Now().Format(backupTimestampLayout)
	backupPath := filepath.Join(backupDir, fmt.Sprintf("%s_%s.json", safeID, timestamp))
	if err := validation.EnsureWithin(s.templatesDir, backupPath); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.StorageError("read template for backup", err)
	}
	if err := os.WriteFile(backupPath, data, 0644); err != nil {
		return apperrors.StorageError("write backup file", err)
	}

	if err := os.Remove(path); err != nil {
		return apperrors.StorageError("delete template file", err)
	}

	s.cache.Delete(safeID)
	s.logger.Debug("template deleted", "template_id", safeID, "backup", backupPath)

	return nil
}

// List enumerates stored templates, applies optional category and tag
// filters, and returns summaries sorted by last update, most recent first.
// Documents that fail to load are skipped, not fatal to the listing.
func (s *Store) List(category models.Category, tags []string) ([]models.TemplateSummary, error) {
	files, err := filepath.Glob(filepath.Join(s.templatesDir, "*.json"))
	if err != nil {
		return nil, apperrors.StorageError("scan templates directory", err)
	}

	summaries := make([]models.TemplateSummary, 0, len(files))
	for _, file := range files {
		id := strings.TrimSuffix(filepath.Base(file), ".json")

		t, err := s.Load(id)
		if err != nil || t == nil {
			continue
		}

		if category != "" && category != models.CategoryAll && t.Category != category {
			continue
		}
		if len(tags) > 0 && !hasAnyTag(t.Tags, tags) {
			continue
		}

		summaries = append(summaries, t.Summary())
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaryUpdatedAt(summaries[i]).After(summaryUpdatedAt(summaries[j]))
	})

	return summaries, nil
}

// Search matches the query case-insensitively against template names, tags,
// and the rendered text of the current version. An empty query returns the
// unfiltered listing. Matching short-circuits per template.
func (s *Store) Search(query string) ([]models.TemplateSummary, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return s.List("", nil)
	}

	all, err := s.List("", nil)
	if err != nil {
		return nil, err
	}

	var matches []models.TemplateSummary
	for _, summary := range all {
		if strings.Contains(strings.ToLower(summary.Name), query) {
			matches = append(matches, summary)
			continue
		}

		if tagMatches(summary.Tags, query) {
			matches = append(matches, summary)
			continue
		}

		t, err := s.Load(summary.TemplateID)
		if err != nil || t == nil {
			continue
		}
		if current := t.Current(); current != nil {
			if strings.Contains(strings.ToLower(current.GeneratedPrompt), query) {
				matches = append(matches, summary)
			}
		}
	}

	return matches, nil
}

// Copy duplicates a template under a fresh id and name, carrying over the
// tags and only the current version's components and description. The copy
// is persisted before being returned.
func (s *Store) Copy(id, newName string, newCategory models.Category) (*models.Template, error) {
	original, err := s.Load(id)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, apperrors.NotFoundError(fmt.Sprintf("Template '%s'", id))
	}

	category := original.Category
	if newCategory != "" {
		if !newCategory.Valid() {
			return nil, apperrors.ValidationError(fmt.Sprintf("Unknown category: %s", newCategory))
		}
		category = newCategory
	}

	copied, err := models.NewTemplate(newName, category, append([]string(nil), original.Tags...), s.render)
	if err != nil {
		return nil, err
	}

	if current := original.Current(); current != nil {
		copied.UpdateCurrent(current.Components.Clone(), current.Description+" (복사본)")
	}

	if err := s.Save(copied, true); err != nil {
		return nil, err
	}

	return copied, nil
}

// Count returns the number of template files on disk.
func (s *Store) Count() int {
	files, err := filepath.Glob(filepath.Join(s.templatesDir, "*.json"))
	if err != nil {
		return 0
	}
	return len(files)
}

// CacheSize returns the number of cached templates.
func (s *Store) CacheSize() int {
	return s.cache.Len()
}

// Cleanup invalidates the whole cache. The files on disk are untouched.
func (s *Store) Cleanup() {
	s.cache.Clear()
}

// warmCache eagerly loads the most recently modified templates so common
// listings hit memory instead of disk.
func (s *Store) warmCache() {
	files, err := filepath.Glob(filepath.Join(s.templatesDir, "*.json"))
	if err != nil {
		s.logger.Warn("failed to warm template cache", "error", err)
		return
	}

	type fileInfo struct {
		path    string
		modTime time.Time
	}

	infos := make([]fileInfo, 0, len(files))
	for _, file := range files {
		stat, err := os.Stat(file)
		if err != nil {
			continue
		}
		infos = append(infos, fileInfo{path: file, modTime: stat.ModTime()})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].modTime.After(infos[j].modTime)
	})

	if len(infos) > warmStartLimit {
		infos = infos[:warmStartLimit]
	}

	for _, info := range infos {
		id := strings.TrimSuffix(filepath.Base(info.path), ".json")
		s.Load(id)
	}
}

func summaryUpdatedAt(s models.TemplateSummary) time.Time {
	if s.UpdatedAt == nil {
		return time.Time{}
	}
	return *s.UpdatedAt
}

func hasAnyTag(templateTags, wanted []string) bool {
	for _, w := range wanted {
		for _, t := range templateTags {
			if t == w {
				return true
			}
		}
	}
	return false
}

func tagMatches(tags []string, query string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
