package extract

import (
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/dealdesk/memogen/internal/model"
)

const (
	mimePDF  = "application/pdf"
	mimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ProcessDocuments extracts text from the uploaded documents sequentially and
// concatenates the results with blank-line separators. Unsupported media
// types are skipped with a warning; a parse failure of a recognized type
// fails the whole request. Each blob is deleted after processing regardless
// of outcome.
func ProcessDocuments(files []model.UploadedFile) (string, error) {
	var sb strings.Builder

	for i, f := range files {
		text, err := extractOne(f)
		if err != nil {
			// The failing file was already deleted; the rest never get
			// processed, so release them here.
			for _, rest := range files[i+1:] {
				removeUpload(rest.Path)
			}
			return "", err
		}
		if text != "" {
			sb.WriteString(text)
			sb.WriteString("\n\n")
		}
	}

	return sb.String(), nil
}

func extractOne(f model.UploadedFile) (string, error) {
	defer removeUpload(f.Path)

	switch f.ContentType {
	case mimePDF:
		text, err := extractPDF(f.Path)
		if err != nil {
			return "", eris.Wrapf(err, "extract: parse PDF %s", f.OriginalName)
		}
		return text, nil
	case mimeDocx:
		text, err := extractDocx(f.Path)
		if err != nil {
			return "", eris.Wrapf(err, "extract: parse DOCX %s", f.OriginalName)
		}
		return text, nil
	default:
		zap.L().Warn("extract: unsupported file type",
			zap.String("file", f.OriginalName),
			zap.String("content_type", f.ContentType),
		)
		return "", nil
	}
}

// extractPDF pulls the plain text of a flat-text (non-scanned) PDF.
func extractPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close() //nolint:errcheck

	reader, err := r.GetPlainText()
	if err != nil {
		return "", err
	}

	text, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}

	return string(text), nil
}

func removeUpload(path string) {
	if err := os.Remove(path); err != nil {
		zap.L().Debug("extract: failed to remove upload", zap.String("path", path), zap.Error(err))
	}
}
