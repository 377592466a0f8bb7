package pipeline

import (
	"context"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/dealdesk/memogen/internal/analysis"
	"github.com/dealdesk/memogen/internal/config"
	"github.com/dealdesk/memogen/internal/extract"
	"github.com/dealdesk/memogen/internal/model"
	"github.com/dealdesk/memogen/internal/ocr"
	"github.com/dealdesk/memogen/internal/prompt"
	"github.com/dealdesk/memogen/pkg/portkey"
	"github.com/dealdesk/memogen/pkg/proxycurl"
)

// ErrNoText marks a request whose inputs yielded no usable text. No LLM or
// enrichment call is made for such a request.
var ErrNoText = eris.New("pipeline: no text could be extracted from the provided inputs")

// Pipeline turns one memorandum request into a finished memorandum. It owns
// the stage ordering: document extraction, OCR, web extraction, the no-text
// gate, profile enrichment, opportunity summarization, market analysis, and
// final generation.
type Pipeline struct {
	llm      portkey.Client
	profiles proxycurl.Client
	ocr      ocr.Extractor
	web      *extract.WebExtractor
	analysis *analysis.Runner

	summaryModel string
	memoModel    string
}

// New assembles a Pipeline. ocrEx may be nil when no OCR provider is
// configured; scanned uploads are then dropped with a warning.
func New(llm portkey.Client, profiles proxycurl.Client, ocrEx ocr.Extractor, web *extract.WebExtractor, runner *analysis.Runner, models config.ModelsConfig) *Pipeline {
	return &Pipeline{
		llm:          llm,
		profiles:     profiles,
		ocr:          ocrEx,
		web:          web,
		analysis:     runner,
		summaryModel: models.Summary,
		memoModel:    models.Memo,
	}
}

// Run executes the full pipeline for one request. traceID groups every
// downstream LLM call under one gateway trace.
func (p *Pipeline) Run(ctx context.Context, req model.MemoRequest, traceID string) (*model.MemoResult, error) {
	log := zap.L().With(zap.String("trace_id", traceID))

	extracted, err := p.extractAll(ctx, req, log)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(extracted) == "" {
		return nil, ErrNoText
	}
	log.Info("pipeline: text extracted", zap.Int("chars", len(extracted)))

	founders := p.enrichProfiles(ctx, req.ProfileURLs)

	combined := combineText(req.Terms, extracted, founders)

	opportunity, err := p.summarizeMarketOpportunity(ctx, extracted, traceID)
	if err != nil {
		return nil, err
	}
	log.Info("pipeline: market opportunity summarized", zap.Int("chars", len(opportunity)))

	analysisResult, err := p.analysis.Run(ctx, opportunity, traceID)
	if err != nil {
		return nil, err
	}

	memo, err := p.generateMemo(ctx, prompt.MemoInput{
		MarketOpportunity:  opportunity,
		Terms:              req.Terms,
		MarketAnalysis:     analysisResult.MarketAnalysis,
		CompetitorAnalysis: analysisResult.CompetitorAnalysis,
		Context:            combined,
	}, traceID)
	if err != nil {
		return nil, err
	}
	log.Info("pipeline: memorandum generated", zap.Int("chars", len(memo)))

	return &model.MemoResult{
		Memorandum:        memo,
		TraceID:           traceID,
		MarketOpportunity: opportunity,
	}, nil
}

// extractAll gathers text from every source in fixed order: documents, then
// scanned documents, then the source URL. Document parse failures abort;
// OCR and web extraction are best-effort.
func (p *Pipeline) extractAll(ctx context.Context, req model.MemoRequest, log *zap.Logger) (string, error) {
	extracted, err := extract.ProcessDocuments(req.Documents)
	if err != nil {
		return "", err
	}

	if len(req.OCRDocuments) > 0 {
		if p.ocr == nil {
			log.Warn("pipeline: scanned documents received but no OCR provider configured",
				zap.Int("files", len(req.OCRDocuments)))
			discardUploads(req.OCRDocuments)
		} else {
			extracted += ocr.ProcessBatch(ctx, p.ocr, req.OCRDocuments)
		}
	}

	if req.SourceURL != "" {
		// The label must not count as extracted text on its own, or a dead
		// URL would defeat the no-text gate.
		if content := p.web.ExtractContent(ctx, req.SourceURL); content != "" {
			extracted += "\n\nContent from provided URL:\n" + content
		}
	}

	return extracted, nil
}

func discardUploads(files []model.UploadedFile) {
	for _, f := range files {
		if err := os.Remove(f.Path); err != nil {
			zap.L().Debug("pipeline: failed to remove upload", zap.String("path", f.Path), zap.Error(err))
		}
	}
}
