package server

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/dealdesk/memogen/internal/export"
	"github.com/dealdesk/memogen/internal/model"
	"github.com/dealdesk/memogen/internal/pipeline"
	"github.com/dealdesk/memogen/pkg/portkey"
)

const noTextMessage = "No text could be extracted from the uploaded files or URL. Please check the inputs and try again."

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.NewString()
	log := zap.L().With(zap.String("trace_id", traceID))
	log.Info("starting memo generation")

	if err := r.ParseMultipartForm(s.maxMemory); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart request"})
		return
	}

	documents, err := s.saveUploads(r.MultipartForm.File["documents"])
	if err != nil {
		log.Error("failed to store uploads", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "An error occurred while processing your request.",
		})
		return
	}
	ocrDocuments, err := s.saveUploads(r.MultipartForm.File["ocrDocuments"])
	if err != nil {
		log.Error("failed to store uploads", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "An error occurred while processing your request.",
		})
		return
	}

	req := model.MemoRequest{
		Documents:    documents,
		OCRDocuments: ocrDocuments,
		ProfileURLs:  r.MultipartForm.Value["linkedInUrls"],
		SourceURL:    r.FormValue("url"),
		Terms: model.DealTerms{
			CurrentRound:      r.FormValue("currentRound"),
			ProposedValuation: r.FormValue("proposedValuation"),
			ValuationDate:     r.FormValue("valuationDate"),
		},
	}

	// Generation runs for minutes; a dropped client connection must not
	// cancel it.
	result, err := s.pipeline.Run(context.WithoutCancel(r.Context()), req, traceID)
	if err != nil {
		if eris.Is(err, pipeline.ErrNoText) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": noTextMessage})
			return
		}
		log.Error("memo generation failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "An error occurred while processing your request.",
			"details": err.Error(),
		})
		return
	}

	log.Info("memo generation complete", zap.Int("chars", len(result.Memorandum)))
	writeJSON(w, http.StatusOK, map[string]string{
		"memorandum": result.Memorandum,
		"traceId":    result.TraceID,
	})
}

// saveUploads copies multipart file parts into temp storage. The pipeline
// owns deletion of every saved file.
func (s *Server) saveUploads(parts []*multipart.FileHeader) ([]model.UploadedFile, error) {
	var files []model.UploadedFile

	for _, fh := range parts {
		src, err := fh.Open()
		if err != nil {
			return nil, eris.Wrapf(err, "server: open upload %s", fh.Filename)
		}

		dst, err := os.CreateTemp(s.tempDir, "upload-*")
		if err != nil {
			src.Close() //nolint:errcheck
			return nil, eris.Wrap(err, "server: create temp file")
		}

		_, err = io.Copy(dst, src)
		src.Close() //nolint:errcheck
		dst.Close() //nolint:errcheck
		if err != nil {
			os.Remove(dst.Name()) //nolint:errcheck
			return nil, eris.Wrapf(err, "server: store upload %s", fh.Filename)
		}

		files = append(files, model.UploadedFile{
			Path:         dst.Name(),
			OriginalName: fh.Filename,
			ContentType:  fh.Header.Get("Content-Type"),
		})
	}

	return files, nil
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	doc, err := export.ConvertHTML(req.Content)
	if err != nil {
		zap.L().Error("document export failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "An error occurred while generating the Word document.",
		})
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+export.Filename)
	w.Write(doc) //nolint:errcheck
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TraceID string `json:"traceId"`
		Value   int    `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	err := s.llm.Feedback(r.Context(), portkey.FeedbackRequest{
		TraceID: req.TraceID,
		Value:   req.Value,
	})
	if err != nil {
		zap.L().Error("feedback submission failed", zap.String("trace_id", req.TraceID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "An error occurred while submitting feedback.",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Feedback submitted successfully"})
}
