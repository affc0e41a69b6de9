package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	apperrors "github.com/studybuddy/backend/internal/pkg/errors"
)

// Extractor converts uploaded PDF bytes into normalized plain text using
// pdfcpu. Extraction goes through a temp file because pdfcpu's content
// extraction API is file based.
type Extractor struct {
	tempDir string
}

func NewExtractor() *Extractor {
	tempDir := filepath.Join(os.TempDir(), "studybuddy-pdf")
	_ = os.MkdirAll(tempDir, 0o755)
	return &Extractor{tempDir: tempDir}
}

func (e *Extractor) ExtractText(ctx context.Context, content []byte) (string, error) {
	if len(content) == 0 {
		return "", fmt.Errorf("%w: empty document", apperrors.ErrExtraction)
	}
	tempFile, err := os.CreateTemp(e.tempDir, "extract_*.pdf")
	if err != nil {
		return "", fmt.Errorf("%w: create temp file: %v", apperrors.ErrExtraction, err)
	}
	tempPath := tempFile.Name()
	defer os.Remove(tempPath)
	if _, err := tempFile.Write(content); err != nil {
		tempFile.Close()
		return "", fmt.Errorf("%w: write temp file: %v", apperrors.ErrExtraction, err)
	}
	tempFile.Close()

	pdfCtx, err := api.ReadContextFile(tempPath)
	if err != nil {
		return "", fmt.Errorf("%w: unreadable document: %v", apperrors.ErrExtraction, err)
	}
	pageCount := pdfCtx.PageCount

	outDir, err := os.MkdirTemp(e.tempDir, "pages_")
	if err != nil {
		return "", fmt.Errorf("%w: create temp dir: %v", apperrors.ErrExtraction, err)
	}
	defer os.RemoveAll(outDir)

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractContentFile(tempPath, outDir, nil, conf); err != nil {
		return "", fmt.Errorf("%w: extract content: %v", apperrors.ErrExtraction, err)
	}

	pageTexts := readPageTexts(outDir)
	var raw string
	for pageNum := 1; pageNum <= pageCount; pageNum++ {
		if text := pageTexts[pageNum]; text != "" {
			raw += text + "\n\n"
		}
	}

	cleaned := Normalize(raw)
	if cleaned == "" {
		return "", fmt.Errorf("%w: no text could be extracted", apperrors.ErrExtraction)
	}
	logutil.GetLogger(ctx).Debug("pdf text extracted",
		zap.Int("pages", pageCount),
		zap.Int("chars", len(cleaned)),
	)
	return cleaned, nil
}

// readPageTexts maps extracted page content files back to page numbers.
// pdfcpu writes one Content_page_N file per page.
func readPageTexts(dir string) map[int]string {
	pageTexts := make(map[int]string)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return pageTexts
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		var pageNum int
		if _, err := fmt.Sscanf(entry.Name(), "Content_page_%d", &pageNum); err == nil {
			pageTexts[pageNum] = string(data)
			continue
		}
		if _, err := fmt.Sscanf(entry.Name(), "page_%d", &pageNum); err == nil {
			pageTexts[pageNum] = string(data)
		}
	}
	return pageTexts
}
