package export

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/promptforge/prompt-forge/internal/models"
)

func newTestService() *Service {
	return NewService(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testComponent(t *testing.T) *models.Component {
	t.Helper()
	c, err := models.NewComponent(models.ComponentDraft{
		Role:    []string{"게임 기획자"},
		Goal:    "전투 시스템 분석",
		Context: []string{"신규 기능 개발"},
		Output:  "보고서",
		Rule:    []string{"상세 분석 필수"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func TestMarkdownContent(t *testing.T) {
	content := MarkdownContent(testComponent(t))

	if !strings.HasPrefix(content, "# 전투 시스템 분석\n") {
		t.Errorf("expected goal as title, got:\n%s", content)
	}
	for _, section := range []string{"## Role", "## Context", "## Output", "## Rules"} {
		if !strings.Contains(content, section) {
			t.Errorf("expected section %q in:\n%s", section, content)
		}
	}
	if strings.Contains(content, "## Document") {
		t.Error("expected the empty document section to be omitted")
	}
	if !strings.Contains(content, "- 게임 기획자") {
		t.Error("expected roles rendered as bullets")
	}
}

func TestExportMarkdown(t *testing.T) {
	dir := t.TempDir()

	path, err := newTestService().ExportMarkdown(testComponent(t), "analysis", dir)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.HasSuffix(path, "analysis.md") {
		t.Errorf("unexpected path: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !strings.Contains(string(data), "# 전투 시스템 분석") {
		t.Error("expected markdown content in the written file")
	}
}

func TestExportJSON_Envelope(t *testing.T) {
	dir := t.TempDir()

	path, err := newTestService().ExportJSON(testComponent(t), "analysis", dir, nil)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("written file is not valid JSON: %v", err)
	}
	if doc.Version != "1.0" {
		t.Errorf("expected envelope version 1.0, got %q", doc.Version)
	}
	if _, ok := doc.Metadata["exported_at"]; !ok {
		t.Error("expected exported_at in default metadata")
	}
	if doc.Content == nil || doc.Content.Goal != "전투 시스템 분석" {
		t.Error("expected component content in the envelope")
	}
}

func TestExportYAML(t *testing.T) {
	dir := t.TempDir()

	path, err := newTestService().ExportYAML(testComponent(t), "analysis", dir, map[string]interface{}{"source": "test"})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("written file is not valid YAML: %v", err)
	}
	if doc.Metadata["source"] != "test" {
		t.Errorf("expected supplied metadata, got %v", doc.Metadata)
	}
}

func TestExport_RejectsBadFilename(t *testing.T) {
	s := newTestService()
	dir := t.TempDir()

	for _, name := range []string{"", "../escape", "a/b", "report.md"} {
		if _, err := s.ExportMarkdown(testComponent(t), name, dir); err == nil {
			t.Errorf("expected filename %q to be rejected", name)
		}
	}
}

func TestWriteFile_SizeCeiling(t *testing.T) {
	s := newTestService()

	oversized := make([]byte, MaxFileSizeBytes+1)
	if _, err := s.writeFile("big", t.TempDir(), ".md", oversized); err == nil {
		t.Error("expected size ceiling error")
	}
}
