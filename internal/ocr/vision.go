package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	defaultVisionBaseURL = "https://vision.googleapis.com"
	visionScope          = "https://www.googleapis.com/auth/cloud-vision"
)

// VisionOCR extracts text from scanned PDFs using the Google Cloud Vision
// files:annotate API with document text detection.
type VisionOCR struct {
	baseURL string
	client  *http.Client
	tokens  oauth2.TokenSource
}

// NewVisionOCR creates a VisionOCR extractor authenticated with the service
// account credentials file at credentialsPath. If baseURL is empty, the
// public API endpoint is used.
func NewVisionOCR(credentialsPath, baseURL string) (*VisionOCR, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, eris.Wrapf(err, "ocr: read credentials %s", credentialsPath)
	}

	jwtCfg, err := google.JWTConfigFromJSON(data, visionScope)
	if err != nil {
		return nil, eris.Wrap(err, "ocr: parse service account credentials")
	}

	if baseURL == "" {
		baseURL = defaultVisionBaseURL
	}

	return &VisionOCR{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 2 * time.Minute},
		tokens:  jwtCfg.TokenSource(context.Background()),
	}, nil
}

type annotateFilesRequest struct {
	Requests []annotateFileRequest `json:"requests"`
}

type annotateFileRequest struct {
	InputConfig inputConfig      `json:"inputConfig"`
	Features    []annotateFeature `json:"features"`
}

type inputConfig struct {
	MimeType string `json:"mimeType"`
	Content  string `json:"content"`
}

type annotateFeature struct {
	Type string `json:"type"`
}

type annotateFilesResponse struct {
	Responses []fileResponse `json:"responses"`
}

type fileResponse struct {
	Responses []pageResponse `json:"responses"`
}

type pageResponse struct {
	FullTextAnnotation *textAnnotation `json:"fullTextAnnotation"`
}

type textAnnotation struct {
	Text string `json:"text"`
}

// ExtractText reads a PDF file, submits it for document text detection, and
// returns the per-page text joined with blank lines.
func (v *VisionOCR) ExtractText(ctx context.Context, pdfPath string) (string, error) {
	data, err := os.ReadFile(pdfPath)
	if err != nil {
		return "", eris.Wrapf(err, "ocr: read PDF %s", pdfPath)
	}

	reqBody := annotateFilesRequest{
		Requests: []annotateFileRequest{
			{
				InputConfig: inputConfig{
					MimeType: "application/pdf",
					Content:  base64.StdEncoding.EncodeToString(data),
				},
				Features: []annotateFeature{{Type: "DOCUMENT_TEXT_DETECTION"}},
			},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", eris.Wrap(err, "ocr: marshal vision request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL+"/v1/files:annotate", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", eris.Wrap(err, "ocr: create vision request")
	}
	req.Header.Set("Content-Type", "application/json")

	token, err := v.tokens.Token()
	if err != nil {
		return "", eris.Wrap(err, "ocr: fetch access token")
	}
	token.SetAuthHeader(req)

	resp, err := v.client.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "ocr: vision API call")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", eris.Wrap(err, "ocr: read vision response")
	}

	if resp.StatusCode != http.StatusOK {
		return "", eris.Errorf("ocr: vision API returned %d: %s", resp.StatusCode, string(respBody))
	}

	var annotated annotateFilesResponse
	if err := json.Unmarshal(respBody, &annotated); err != nil {
		return "", eris.Wrap(err, "ocr: unmarshal vision response")
	}

	if len(annotated.Responses) == 0 {
		return "", nil
	}

	var pages []string
	for _, page := range annotated.Responses[0].Responses {
		if page.FullTextAnnotation != nil && page.FullTextAnnotation.Text != "" {
			pages = append(pages, page.FullTextAnnotation.Text)
		}
	}

	return strings.Join(pages, "\n\n"), nil
}
