package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dealdesk/memogen/internal/export"
	"github.com/dealdesk/memogen/internal/model"
)

var (
	genDocs      []string
	genOCRDocs   []string
	genProfiles  []string
	genURL       string
	genRound     string
	genValuation string
	genDate      string
	genOut       string
	genDocx      bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a memorandum from local files",
	RunE: func(cmd *cobra.Command, args []string) error {
		traceID := uuid.NewString()
		zap.L().Info("starting memo generation", zap.String("trace_id", traceID))

		documents, err := stageFiles(genDocs)
		if err != nil {
			return err
		}
		ocrDocuments, err := stageFiles(genOCRDocs)
		if err != nil {
			return err
		}

		p, _ := buildPipeline()

		result, err := p.Run(cmd.Context(), model.MemoRequest{
			Documents:    documents,
			OCRDocuments: ocrDocuments,
			ProfileURLs:  genProfiles,
			SourceURL:    genURL,
			Terms: model.DealTerms{
				CurrentRound:      genRound,
				ProposedValuation: genValuation,
				ValuationDate:     genDate,
			},
		}, traceID)
		if err != nil {
			return err
		}

		out := result.Memorandum
		if genDocx {
			doc, err := export.ConvertHTML(result.Memorandum)
			if err != nil {
				return err
			}
			out = string(doc)
		}

		if genOut == "" {
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		}
		if err := os.WriteFile(genOut, []byte(out), 0o644); err != nil {
			return eris.Wrap(err, "write output")
		}
		zap.L().Info("memorandum written", zap.String("path", genOut), zap.String("trace_id", result.TraceID))

		return nil
	},
}

// stageFiles copies local inputs into temp files so the pipeline's delete-
// after-processing contract never touches the originals.
func stageFiles(paths []string) ([]model.UploadedFile, error) {
	var files []model.UploadedFile

	for _, path := range paths {
		src, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrapf(err, "open input %s", path)
		}

		dst, err := os.CreateTemp("", "memogen-*")
		if err != nil {
			src.Close() //nolint:errcheck
			return nil, eris.Wrap(err, "create temp file")
		}

		_, err = io.Copy(dst, src)
		src.Close() //nolint:errcheck
		dst.Close() //nolint:errcheck
		if err != nil {
			return nil, eris.Wrapf(err, "stage input %s", path)
		}

		files = append(files, model.UploadedFile{
			Path:         dst.Name(),
			OriginalName: filepath.Base(path),
			ContentType:  contentTypeFor(path),
		})
	}

	return files, nil
}

func contentTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}

func init() {
	generateCmd.Flags().StringSliceVar(&genDocs, "doc", nil, "document to extract text from (repeatable)")
	generateCmd.Flags().StringSliceVar(&genOCRDocs, "ocr-doc", nil, "scanned PDF to OCR (repeatable)")
	generateCmd.Flags().StringSliceVar(&genProfiles, "linkedin", nil, "founder LinkedIn URL or username (repeatable)")
	generateCmd.Flags().StringVar(&genURL, "url", "", "company website URL")
	generateCmd.Flags().StringVar(&genRound, "round", "", "current funding round")
	generateCmd.Flags().StringVar(&genValuation, "valuation", "", "proposed valuation")
	generateCmd.Flags().StringVar(&genDate, "date", "", "analysis date")
	generateCmd.Flags().StringVar(&genOut, "out", "", "output path (default stdout)")
	generateCmd.Flags().BoolVar(&genDocx, "docx", false, "export as Word document instead of HTML")
	rootCmd.AddCommand(generateCmd)
}
