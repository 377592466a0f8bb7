package ocr

import (
	"context"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/dealdesk/memogen/internal/config"
	"github.com/dealdesk/memogen/internal/model"
)

// Extractor extracts text content from scanned PDF files.
type Extractor interface {
	ExtractText(ctx context.Context, pdfPath string) (string, error)
}

// NewExtractor creates an Extractor based on config.
func NewExtractor(cfg config.OCRConfig) (Extractor, error) {
	switch cfg.Provider {
	case "vision", "":
		if cfg.CredentialsPath == "" {
			return nil, eris.New("ocr: vision provider requires credentials_path")
		}
		return NewVisionOCR(cfg.CredentialsPath, cfg.BaseURL)
	default:
		return nil, eris.Errorf("ocr: unknown provider %q", cfg.Provider)
	}
}

// ProcessBatch runs OCR over the given uploads sequentially and concatenates
// the per-file text with blank-line separators. OCR is best-effort: a failing
// or non-PDF file contributes no text and never aborts the batch. Every file
// is deleted after processing, including failures.
func ProcessBatch(ctx context.Context, ex Extractor, files []model.UploadedFile) string {
	var sb strings.Builder

	for _, f := range files {
		log := zap.L().With(zap.String("file", f.OriginalName))

		if f.ContentType != "application/pdf" {
			log.Warn("ocr: unsupported file type", zap.String("content_type", f.ContentType))
			removeUpload(f)
			continue
		}

		text, err := ex.ExtractText(ctx, f.Path)
		removeUpload(f)
		if err != nil {
			log.Error("ocr: extraction failed", zap.Error(err))
			continue
		}

		if text != "" {
			sb.WriteString(text)
			sb.WriteString("\n\n")
		}
		log.Info("ocr: text extracted", zap.Int("chars", len(text)))
	}

	return sb.String()
}

func removeUpload(f model.UploadedFile) {
	if err := os.Remove(f.Path); err != nil {
		zap.L().Debug("ocr: failed to remove upload", zap.String("path", f.Path), zap.Error(err))
	}
}
