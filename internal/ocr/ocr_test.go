package ocr

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/dealdesk/memogen/internal/config"
	"github.com/dealdesk/memogen/internal/model"
)

func writeTempPDF(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scan.pdf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testVisionOCR(baseURL string) *VisionOCR {
	return &VisionOCR{
		baseURL: baseURL,
		client:  &http.Client{},
		tokens:  oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"}),
	}
}

func TestVisionExtractText(t *testing.T) {
	pdfPath := writeTempPDF(t, "%PDF-1.4 fake scanned content")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/files:annotate", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var req annotateFilesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Requests, 1)
		assert.Equal(t, "application/pdf", req.Requests[0].InputConfig.MimeType)
		require.Len(t, req.Requests[0].Features, 1)
		assert.Equal(t, "DOCUMENT_TEXT_DETECTION", req.Requests[0].Features[0].Type)

		decoded, err := base64.StdEncoding.DecodeString(req.Requests[0].InputConfig.Content)
		require.NoError(t, err)
		assert.Contains(t, string(decoded), "fake scanned content")

		_, _ = w.Write([]byte(`{
			"responses": [{
				"responses": [
					{"fullTextAnnotation": {"text": "Page one text."}},
					{"fullTextAnnotation": {"text": "Page two text."}},
					{}
				]
			}]
		}`))
	}))
	defer srv.Close()

	v := testVisionOCR(srv.URL)
	text, err := v.ExtractText(context.Background(), pdfPath)
	require.NoError(t, err)
	assert.Equal(t, "Page one text.\n\nPage two text.", text)
}

func TestVisionExtractText_APIError(t *testing.T) {
	pdfPath := writeTempPDF(t, "%PDF-1.4")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": {"message": "permission denied"}}`))
	}))
	defer srv.Close()

	v := testVisionOCR(srv.URL)
	_, err := v.ExtractText(context.Background(), pdfPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vision API returned 403")
}

func TestVisionExtractText_MissingFile(t *testing.T) {
	v := testVisionOCR("http://unused")
	_, err := v.ExtractText(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read PDF")
}

func TestVisionExtractText_EmptyResponses(t *testing.T) {
	pdfPath := writeTempPDF(t, "%PDF-1.4")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"responses": []}`))
	}))
	defer srv.Close()

	v := testVisionOCR(srv.URL)
	text, err := v.ExtractText(context.Background(), pdfPath)
	require.NoError(t, err)
	assert.Empty(t, text)
}

// fakeExtractor returns canned text or an error keyed by file path.
type fakeExtractor struct {
	texts map[string]string
	errs  map[string]error
}

func (f *fakeExtractor) ExtractText(_ context.Context, pdfPath string) (string, error) {
	if err, ok := f.errs[pdfPath]; ok {
		return "", err
	}
	return f.texts[pdfPath], nil
}

func TestProcessBatch_PartialFailure(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.pdf")
	bad := filepath.Join(dir, "bad.pdf")
	require.NoError(t, os.WriteFile(good, []byte("%PDF"), 0644))
	require.NoError(t, os.WriteFile(bad, []byte("%PDF"), 0644))

	ex := &fakeExtractor{
		texts: map[string]string{good: "Recovered text."},
		errs:  map[string]error{bad: eris.New("ocr exploded")},
	}

	files := []model.UploadedFile{
		{Path: bad, OriginalName: "bad.pdf", ContentType: "application/pdf"},
		{Path: good, OriginalName: "good.pdf", ContentType: "application/pdf"},
	}

	text := ProcessBatch(context.Background(), ex, files)

	// The failing file contributes nothing but the batch still returns the
	// remaining text.
	assert.Equal(t, "Recovered text.\n\n", text)

	// All processed files are deleted, including the failing one.
	_, err := os.Stat(good)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(bad)
	assert.True(t, os.IsNotExist(err))
}

func TestProcessBatch_SkipsNonPDF(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "photo.png")
	require.NoError(t, os.WriteFile(img, []byte("png"), 0644))

	ex := &fakeExtractor{}
	text := ProcessBatch(context.Background(), ex, []model.UploadedFile{
		{Path: img, OriginalName: "photo.png", ContentType: "image/png"},
	})

	assert.Empty(t, text)
	// Skipped files are still deleted.
	_, err := os.Stat(img)
	assert.True(t, os.IsNotExist(err))
}

func TestProcessBatch_Empty(t *testing.T) {
	text := ProcessBatch(context.Background(), &fakeExtractor{}, nil)
	assert.Empty(t, text)
}

func TestNewExtractor(t *testing.T) {
	t.Run("missing_credentials", func(t *testing.T) {
		_, err := NewExtractor(config.OCRConfig{Provider: "vision"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "credentials_path")
	})

	t.Run("unknown_provider", func(t *testing.T) {
		_, err := NewExtractor(config.OCRConfig{Provider: "tesseract"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown provider")
	})

	t.Run("bad_credentials_file", func(t *testing.T) {
		_, err := NewExtractor(config.OCRConfig{
			Provider:        "vision",
			CredentialsPath: filepath.Join(t.TempDir(), "missing.json"),
		})
		require.Error(t, err)
	})
}
