package storage

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/promptforge/prompt-forge/internal/errors"
	"github.com/promptforge/prompt-forge/internal/models"
)

func testRender(c *models.Component) string {
	return "rendered:" + c.Goal
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := NewStore(t.TempDir(), testRender, logger)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return s
}

func newTestTemplate(t *testing.T, name string, category models.Category, tags []string) *models.Template {
	t.Helper()
	tmpl, err := models.NewTemplate(name, category, tags, testRender)
	if err != nil {
		t.Fatalf("failed to create template: %v", err)
	}
	return tmpl
}

func TestStore_SaveAndLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	tmpl := newTestTemplate(t, "전투 분석", models.CategoryPlanning, []string{"combat"})
	if err := s.Save(tmpl, false); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// Force a disk read by clearing the cache.
	s.Cleanup()

	loaded, err := s.Load(tmpl.TemplateID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected template, got nil")
	}
	if loaded.Name != "전투 분석" || loaded.Category != models.CategoryPlanning {
		t.Errorf("unexpected identity after round trip: %+v", loaded)
	}
	if len(loaded.Versions) != 1 {
		t.Errorf("expected one version, got %d", len(loaded.Versions))
	}
	if loaded.Versions[0].GeneratedPrompt == "" {
		t.Error("expected rendered prompt to survive the round trip")
	}
}

func TestStore_SaveConflictWithoutOverwrite(t *testing.T) {
	s := newTestStore(t)

	tmpl := newTestTemplate(t, "t", models.CategoryAll, nil)
	if err := s.Save(tmpl, false); err != nil {
		t.Fatalf("first save failed: %v", err)
	}

	err := s.Save(tmpl, false)
	if err == nil {
		t.Fatal("expected conflict on second save without overwrite")
	}
	if !apperrors.HasCode(err, apperrors.ErrCodeAlreadyExists) {
		t.Errorf("expected ALREADY_EXISTS, got %v", err)
	}

	if err := s.Save(tmpl, true); err != nil {
		t.Errorf("overwrite save failed: %v", err)
	}
}

func TestStore_LoadMissingReturnsNil(t *testing.T) {
	s := newTestStore(t)

	loaded, err := s.Load("does-not-exist")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded != nil {
		t.Error("expected nil for a missing template")
	}
}

func TestStore_LoadInvalidIDDegradesToNil(t *testing.T) {
	s := newTestStore(t)

	loaded, err := s.Load("../../etc/passwd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded != nil {
		t.Error("expected nil for a malformed identifier")
	}
}

func TestStore_LoadCorruptFileDegradesToNil(t *testing.T) {
	s := newTestStore(t)

	path := filepath.Join(s.templatesDir, "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to plant corrupt file: %v", err)
	}

	loaded, err := s.Load("broken")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded != nil {
		t.Error("expected nil for a corrupt document")
	}
}

func TestStore_DeleteCreatesBackup(t *testing.T) {
	s := newTestStore(t)

	tmpl := newTestTemplate(t, "t", models.CategoryAll, nil)
	if err := s.Save(tmpl, false); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := s.Delete(tmpl.TemplateID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(s.templatesDir, tmpl.TemplateID+".json")); !os.IsNotExist(err) {
		t.Error("expected template file to be removed")
	}

	backups, err := filepath.Glob(filepath.Join(s.templatesDir, backupDirName, tmpl.TemplateID+"_*.json"))
	if err != nil {
		t.Fatalf("backup glob failed: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected one backup file, got %d", len(backups))
	}

	loaded, err := s.Load(tmpl.TemplateID)
	if err != nil || loaded != nil {
		t.Error("expected template to be gone after delete")
	}
}

func TestStore_DeleteMissing(t *testing.T) {
	s := newTestStore(t)

	err := s.Delete("absent-template")
	if err == nil {
		t.Fatal("expected not-found error")
	}
	if !apperrors.HasCode(err, apperrors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestStore_ListFilters(t *testing.T) {
	s := newTestStore(t)

	planning := newTestTemplate(t, "기획 템플릿", models.CategoryPlanning, []string{"combat"})
	qa := newTestTemplate(t, "QA 템플릿", models.CategoryQA, []string{"testcase"})
	for _, tmpl := range []*models.Template{planning, qa} {
		if err := s.Save(tmpl, false); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	all, err := s.List("", nil)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 templates, got %d", len(all))
	}

	// The 전체 category matches everything.
	everything, err := s.List(models.CategoryAll, nil)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(everything) != 2 {
		t.Errorf("expected 전체 to match all templates, got %d", len(everything))
	}

	onlyQA, err := s.List(models.CategoryQA, nil)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(onlyQA) != 1 || onlyQA[0].Name != "QA 템플릿" {
		t.Errorf("unexpected category filter result: %+v", onlyQA)
	}

	tagged, err := s.List("", []string{"combat"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(tagged) != 1 || tagged[0].Name != "기획 템플릿" {
		t.Errorf("unexpected tag filter result: %+v", tagged)
	}
}

func TestStore_Search(t *testing.T) {
	s := newTestStore(t)

	tmpl := newTestTemplate(t, "전투 밸런스", models.CategoryPlanning, []string{"combat"})
	component, err := models.NewComponent(models.ComponentDraft{Goal: "스킬 데미지 분석"})
	if err != nil {
		t.Fatalf("component failed: %v", err)
	}
	tmpl.UpdateCurrent(component, "")
	if err := s.Save(tmpl, false); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	byName, err := s.Search("밸런스")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(byName) != 1 {
		t.Errorf("expected name match, got %d results", len(byName))
	}

	byTag, err := s.Search("COMBAT")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(byTag) != 1 {
		t.Errorf("expected case-insensitive tag match, got %d results", len(byTag))
	}

	byPrompt, err := s.Search("데미지")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(byPrompt) != 1 {
		t.Errorf("expected rendered-prompt match, got %d results", len(byPrompt))
	}

	none, err := s.Search("존재하지않는검색어")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no matches, got %d", len(none))
	}
}

func TestStore_Copy(t *testing.T) {
	s := newTestStore(t)

	original := newTestTemplate(t, "원본", models.CategoryPlanning, []string{"combat"})
	component, err := models.NewComponent(models.ComponentDraft{Goal: "기능 분석"})
	if err != nil {
		t.Fatalf("component failed: %v", err)
	}
	original.UpdateCurrent(component, "첫 버전")
	original.AddVersion(component.Clone(), "두번째 버전")
	if err := s.Save(original, false); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	copied, err := s.Copy(original.TemplateID, "사본", "")
	if err != nil {
		t.Fatalf("copy failed: %v", err)
	}

	if copied.TemplateID == original.TemplateID {
		t.Error("expected a fresh id for the copy")
	}
	if copied.Name != "사본" || copied.Category != models.CategoryPlanning {
		t.Errorf("unexpected copy identity: %+v", copied)
	}
	if len(copied.Versions) != 1 {
		t.Errorf("expected only the current version to be carried, got %d", len(copied.Versions))
	}
	if desc := copied.Current().Description; !strings.HasSuffix(desc, " (복사본)") {
		t.Errorf("expected copy suffix on description, got %q", desc)
	}

	// The copy is persisted.
	loaded, err := s.Load(copied.TemplateID)
	if err != nil || loaded == nil {
		t.Error("expected the copy to be saved")
	}
}

func TestStore_CopyMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Copy("absent", "사본", "")
	if err == nil {
		t.Fatal("expected not-found error")
	}
	if !apperrors.HasCode(err, apperrors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestStore_CopyInvalidCategory(t *testing.T) {
	s := newTestStore(t)

	original := newTestTemplate(t, "원본", models.CategoryPlanning, nil)
	if err := s.Save(original, false); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if _, err := s.Copy(original.TemplateID, "사본", "디자인"); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestStore_WarmCache(t *testing.T) {
	root := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	first, err := NewStore(root, testRender, logger)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	tmpl := newTestTemplate(t, "t", models.CategoryAll, nil)
	if err := first.Save(tmpl, false); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	second, err := NewStore(root, testRender, logger)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	if second.CacheSize() != 1 {
		t.Errorf("expected 1 warmed entry, got %d", second.CacheSize())
	}
}

func TestStore_Count(t *testing.T) {
	s := newTestStore(t)

	if s.Count() != 0 {
		t.Errorf("expected empty store, got %d", s.Count())
	}
	if err := s.Save(newTestTemplate(t, "t", models.CategoryAll, nil), false); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if s.Count() != 1 {
		t.Errorf("expected 1 template, got %d", s.Count())
	}
}
