package prompt

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealdesk/memogen/internal/model"
)

func TestMemoSections(t *testing.T) {
	sections := MemoSections()
	require.Len(t, sections, 11)

	wantTitles := []string{
		"Executive Summary",
		"Market Opportunity and Sizing",
		"Competitive Landscape",
		"Product/Service Description",
		"Business Model",
		"Team",
		"Go-to-Market Strategy",
		"Main Risks",
		"What Can Go Massively Right",
		"Tech Evaluation and Scores",
		"Follow-up Questions",
	}
	for i, s := range sections {
		assert.Equal(t, wantTitles[i], s.Title)
		assert.NotEmpty(t, s.Requirements, "section %q has no requirements", s.Title)
	}
}

func TestBuildMemoPrompt_IncludesAllSections(t *testing.T) {
	p := BuildMemoPrompt(MemoInput{
		MarketOpportunity:  "Logistics SaaS for SMBs",
		Terms:              model.DealTerms{CurrentRound: "Series A", ProposedValuation: "$10M", ValuationDate: "2026-08-01"},
		MarketAnalysis:     "TAM $5B growing 20% CAGR",
		CompetitorAnalysis: "Two funded incumbents",
		Context:            "Acme Corp sells B2B SaaS for logistics.",
	}, MemoSections())

	for i, s := range MemoSections() {
		assert.Contains(t, p, fmt.Sprintf("%d. <h2>%s</h2>", i+1, s.Title))
	}

	assert.Contains(t, p, "Market Opportunity: Logistics SaaS for SMBs")
	assert.Contains(t, p, "Current Funding Round: Series A")
	assert.Contains(t, p, "Proposed Valuation: $10M")
	assert.Contains(t, p, "Analysis Date: 2026-08-01")
	assert.Contains(t, p, "Market Sizing Information: TAM $5B growing 20% CAGR")
	assert.Contains(t, p, "Competitor Analysis: Two funded incumbents")
	assert.Contains(t, p, "Additional Context: Acme Corp sells B2B SaaS for logistics.")
}

func TestBuildMemoPrompt_EmptyFieldsGetPlaceholders(t *testing.T) {
	p := BuildMemoPrompt(MemoInput{}, MemoSections())

	assert.Contains(t, p, "Current Funding Round: Not provided")
	assert.Contains(t, p, "Proposed Valuation: Not provided")
	assert.Contains(t, p, "Analysis Date: Not provided")
	assert.Contains(t, p, "Market Sizing Information: Not available")
	assert.Contains(t, p, "Competitor Analysis: Not available")
}

func TestBuildMemoPrompt_SectionOrderAndRequirements(t *testing.T) {
	sections := []Section{
		{Title: "First", Requirements: []string{"do this", "then that"}},
		{Title: "Second", Requirements: []string{"finally this"}},
	}

	p := BuildMemoPrompt(MemoInput{}, sections)

	first := strings.Index(p, "1. <h2>First</h2>")
	second := strings.Index(p, "2. <h2>Second</h2>")
	require.GreaterOrEqual(t, first, 0)
	require.Greater(t, second, first)
	assert.Contains(t, p, "   - do this")
	assert.Contains(t, p, "   - then that")
	assert.Contains(t, p, "   - finally this")
}

func TestBuildMemoPrompt_FormattingInstructions(t *testing.T) {
	p := BuildMemoPrompt(MemoInput{}, MemoSections())

	assert.Contains(t, p, "<p> for paragraphs")
	assert.Contains(t, p, "<h3> for subsections within main sections")
	assert.True(t, strings.HasPrefix(p, "You are a top-tier senior venture capitalist"))
}
