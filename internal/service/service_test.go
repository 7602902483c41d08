package service

import (
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	apperrors "github.com/promptforge/prompt-forge/internal/errors"
	"github.com/promptforge/prompt-forge/internal/generator"
	"github.com/promptforge/prompt-forge/internal/models"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := New(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return svc
}

func testComponent(t *testing.T) *models.Component {
	t.Helper()
	c, err := models.NewComponent(models.ComponentDraft{
		Role: []string{"게임 기획자"},
		Goal: "전투 시스템 분석",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func TestGeneratePrompt(t *testing.T) {
	svc := newTestService(t)

	prompt, err := svc.GeneratePrompt(testComponent(t))
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !strings.Contains(prompt, "<Goal>\n전투 시스템 분석\n</Goal>") {
		t.Errorf("unexpected prompt:\n%s", prompt)
	}

	stats := svc.ServiceStats()
	if stats.PromptsGenerated != 1 {
		t.Errorf("expected 1 generated prompt, got %d", stats.PromptsGenerated)
	}
}

func TestGeneratePromptAs_Markdown(t *testing.T) {
	svc := newTestService(t)

	prompt, err := svc.GeneratePromptAs(testComponent(t), generator.FormatMarkdown)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !strings.Contains(prompt, "# Goal\n\n전투 시스템 분석") {
		t.Errorf("unexpected markdown prompt:\n%s", prompt)
	}
}

func TestCreateSaveLoad(t *testing.T) {
	svc := newTestService(t)

	tmpl, err := svc.CreateTemplate("전투 분석", "기획", testComponent(t), "첫 버전", []string{"combat"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.SaveTemplate(tmpl, false); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := svc.LoadTemplate(tmpl.TemplateID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded == nil || loaded.Name != "전투 분석" {
		t.Errorf("unexpected loaded template: %+v", loaded)
	}
	if loaded.Current().GeneratedPrompt == "" {
		t.Error("expected rendered prompt on the current version")
	}
}

func TestListAndSearch(t *testing.T) {
	svc := newTestService(t)

	tmpl, err := svc.CreateTemplate("전투 밸런스", "기획", testComponent(t), "", []string{"combat"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.SaveTemplate(tmpl, false); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	all, err := svc.ListTemplates("", nil)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 template, got %d", len(all))
	}

	matches, err := svc.SearchTemplates("밸런스")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("expected 1 match, got %d", len(matches))
	}

	fuzzyMatches, err := svc.FuzzySearchTemplates("밸런스")
	if err != nil {
		t.Fatalf("fuzzy search failed: %v", err)
	}
	if len(fuzzyMatches) != 1 {
		t.Errorf("expected 1 fuzzy match, got %d", len(fuzzyMatches))
	}
}

func TestDeleteTemplate(t *testing.T) {
	svc := newTestService(t)

	tmpl, err := svc.CreateTemplate("t", "전체", testComponent(t), "", nil)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.SaveTemplate(tmpl, false); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := svc.DeleteTemplate(tmpl.TemplateID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	loaded, err := svc.LoadTemplate(tmpl.TemplateID)
	if err != nil || loaded != nil {
		t.Error("expected template to be gone")
	}

	stats := svc.ServiceStats()
	if stats.TemplatesDeleted != 1 {
		t.Errorf("expected 1 deletion recorded, got %d", stats.TemplatesDeleted)
	}
}

func TestExportTemplate(t *testing.T) {
	svc := newTestService(t)

	tmpl, err := svc.CreateTemplate("t", "전체", testComponent(t), "", nil)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.SaveTemplate(tmpl, false); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	asJSON, err := svc.ExportTemplate(tmpl.TemplateID, "json")
	if err != nil {
		t.Fatalf("json export failed: %v", err)
	}
	var decoded models.Template
	if err := json.Unmarshal([]byte(asJSON), &decoded); err != nil {
		t.Fatalf("exported JSON does not decode: %v", err)
	}
	if decoded.TemplateID != tmpl.TemplateID {
		t.Error("expected the full document in the JSON export")
	}

	asText, err := svc.ExportTemplate(tmpl.TemplateID, "text")
	if err != nil {
		t.Fatalf("text export failed: %v", err)
	}
	if !strings.Contains(asText, "<Goal>") {
		t.Errorf("expected the rendered prompt, got %q", asText)
	}

	if _, err := svc.ExportTemplate(tmpl.TemplateID, "xml"); err == nil {
		t.Error("expected error for unknown export format")
	}

	if _, err := svc.ExportTemplate("absent", "json"); err == nil {
		t.Error("expected not-found error")
	} else if !apperrors.HasCode(err, apperrors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestImportTemplateFromJSON(t *testing.T) {
	svc := newTestService(t)

	doc := []byte(`{
		"template_id": "imported-template",
		"name": "가져온 템플릿",
		"category": "QA",
		"current_version": 1,
		"versions": [
			{"version": 1, "components": {"goal": "TestCase 작성"}}
		]
	}`)

	tmpl, err := svc.ImportTemplateFromJSON(doc)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if tmpl.TemplateID != "imported-template" {
		t.Errorf("unexpected id: %s", tmpl.TemplateID)
	}
	if tmpl.Current().GeneratedPrompt == "" {
		t.Error("expected the imported version to be rendered")
	}

	loaded, err := svc.LoadTemplate("imported-template")
	if err != nil || loaded == nil {
		t.Error("expected the imported template to be persisted")
	}
}

func TestImportTemplateFromJSON_RejectsInvalid(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ImportTemplateFromJSON([]byte(`{"name": "no versions"}`))
	if err == nil {
		t.Fatal("expected schema violation")
	}
	if !apperrors.HasCode(err, apperrors.ErrCodeSchemaViolation) {
		t.Errorf("expected SCHEMA_VIOLATION, got %v", err)
	}
}

func TestCopyTemplate(t *testing.T) {
	svc := newTestService(t)

	tmpl, err := svc.CreateTemplate("원본", "기획", testComponent(t), "", nil)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.SaveTemplate(tmpl, false); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	copied, err := svc.CopyTemplate(tmpl.TemplateID, "사본", "QA")
	if err != nil {
		t.Fatalf("copy failed: %v", err)
	}
	if copied.Category != models.CategoryQA {
		t.Errorf("expected QA category on the copy, got %s", copied.Category)
	}
}

func TestCatalogs(t *testing.T) {
	svc := newTestService(t)

	if len(svc.Keywords()) == 0 {
		t.Error("expected keyword catalog")
	}
	if len(svc.Categories()) == 0 {
		t.Error("expected category catalog")
	}
	if formats := svc.OutputFormats(); formats == nil || len(formats.Formats) == 0 {
		t.Error("expected output-format catalog")
	}
}
