package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	apperrors "github.com/promptforge/prompt-forge/internal/errors"
	"github.com/promptforge/prompt-forge/internal/models"
	"github.com/promptforge/prompt-forge/internal/validation"
)

// pdfLinesPerPage bounds how many text lines are placed on one A4 page
// before a new page starts.
const pdfLinesPerPage = 40

// ExportPDF renders the component's Markdown content onto A4 pages and
// writes a PDF file via pdfcpu's create-from-JSON pipeline.
func (s *Service) ExportPDF(c *models.Component, filename, outputDir string) (string, error) {
	safeName, err := validation.SanitizeFilename(filename)
	if err != nil {
		return "", err
	}

	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", apperrors.ExportError("create output directory", err)
	}

	outputPath := filepath.Join(outputDir, safeName+".pdf")
	if err := validation.EnsureWithin(outputDir, outputPath); err != nil {
		return "", err
	}

	declaration, err := pdfDeclaration(c)
	if err != nil {
		return "", err
	}
	if len(declaration) > MaxFileSizeBytes {
		return "", apperrors.ExportError("size check", fmt.Errorf(
			"content exceeds limit: %d bytes > %d bytes", len(declaration), MaxFileSizeBytes))
	}

	declFile, err := os.CreateTemp("", "prompt-forge-pdf-*.json")
	if err != nil {
		return "", apperrors.ExportError("create PDF declaration", err)
	}
	declPath := declFile.Name()
	defer os.Remove(declPath)

	if _, err := declFile.Write(declaration); err != nil {
		declFile.Close()
		return "", apperrors.ExportError("write PDF declaration", err)
	}
	if err := declFile.Close(); err != nil {
		return "", apperrors.ExportError("write PDF declaration", err)
	}

	if err := api.CreateFile("", declPath, outputPath, model.NewDefaultConfiguration()); err != nil {
		return "", apperrors.ExportError("generate PDF", err)
	}

	s.logger.Debug("component exported", "path", outputPath)
	return outputPath, nil
}

// pdfDeclaration builds the pdfcpu page-description JSON for the component.
func pdfDeclaration(c *models.Component) ([]byte, error) {
	lines := strings.Split(MarkdownContent(c), "\n")

	pages := make(map[string]interface{})
	pageNumber := 0

	for start := 0; start < len(lines); start += pdfLinesPerPage {
		end := start + pdfLinesPerPage
		if end > len(lines) {
			end = len(lines)
		}
		pageNumber++

		texts := make([]map[string]interface{}, 0, end-start)
		for i, line := range lines[start:end] {
			if strings.TrimSpace(line) == "" {
				continue
			}
			texts = append(texts, map[string]interface{}{
				"value":  line,
				"anchor": "tl",
				"dx":     50,
				"dy":     -40 - i*18,
				"font": map[string]interface{}{
					"name": "Helvetica",
					"size": 11,
				},
			})
		}

		pages[fmt.Sprintf("%d", pageNumber)] = map[string]interface{}{
			"content": map[string]interface{}{
				"text": texts,
			},
		}
	}

	declaration := map[string]interface{}{
		"paper": "A4",
		"pages": pages,
	}

	data, err := json.Marshal(declaration)
	if err != nil {
		return nil, apperrors.ExportError("build PDF declaration", err)
	}
	return data, nil
}
