package main

import (
	"go.uber.org/zap"

	"github.com/dealdesk/memogen/internal/analysis"
	"github.com/dealdesk/memogen/internal/extract"
	"github.com/dealdesk/memogen/internal/ocr"
	"github.com/dealdesk/memogen/internal/pipeline"
	"github.com/dealdesk/memogen/pkg/portkey"
	"github.com/dealdesk/memogen/pkg/proxycurl"
)

// buildPipeline wires the clients and stages from config. The OCR extractor
// is optional; without credentials scanned uploads are skipped.
func buildPipeline() (*pipeline.Pipeline, portkey.Client) {
	var portkeyOpts []portkey.Option
	if cfg.Portkey.BaseURL != "" {
		portkeyOpts = append(portkeyOpts, portkey.WithBaseURL(cfg.Portkey.BaseURL))
	}
	if cfg.Portkey.Provider != "" {
		portkeyOpts = append(portkeyOpts, portkey.WithProvider(cfg.Portkey.Provider))
	}
	llm := portkey.NewClient(cfg.Portkey.Key, cfg.Portkey.ProviderKey, portkeyOpts...)

	profileOpts := []proxycurl.Option{proxycurl.WithRateLimit(cfg.Proxycurl.RatePerSecond)}
	if cfg.Proxycurl.BaseURL != "" {
		profileOpts = append(profileOpts, proxycurl.WithBaseURL(cfg.Proxycurl.BaseURL))
	}
	profiles := proxycurl.NewClient(cfg.Proxycurl.Key, profileOpts...)

	var ocrExtractor ocr.Extractor
	if cfg.OCR.CredentialsPath != "" {
		ex, err := ocr.NewExtractor(cfg.OCR)
		if err != nil {
			zap.L().Warn("ocr init failed, scanned uploads will be skipped", zap.Error(err))
		} else {
			ocrExtractor = ex
		}
	} else {
		zap.L().Info("no ocr credentials configured, scanned uploads will be skipped")
	}

	p := pipeline.New(llm, profiles, ocrExtractor, extract.NewWebExtractor(), analysis.NewRunner(cfg.Analysis), cfg.Models)
	return p, llm
}
