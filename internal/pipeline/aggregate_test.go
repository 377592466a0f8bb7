package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dealdesk/memogen/internal/model"
)

func TestCombineText(t *testing.T) {
	out := combineText(
		model.DealTerms{CurrentRound: "Series A", ProposedValuation: "$10M"},
		"Extracted pitch deck content.",
		[]model.ProfileResult{
			model.ProfileSuccess(&model.Profile{FullName: "Jane Doe", URL: "https://www.linkedin.com/in/janedoe"}),
			{},
			model.ProfileFailure(reasonNotFound),
		},
	)

	assert.Contains(t, out, "Current Deal Terms:")
	assert.Contains(t, out, "Current Funding Round: Series A")
	assert.Contains(t, out, "Proposed Valuation: $10M")
	assert.Contains(t, out, "Analysis Date: Not provided")
	assert.Contains(t, out, "Extracted Text from Documents:\nExtracted pitch deck content.")
	assert.Contains(t, out, "Founder Information from LinkedIn:")
	assert.Contains(t, out, "Name: Jane Doe")
	assert.Contains(t, out, "Error fetching founder background: "+reasonNotFound)
}

func TestFormatProfile(t *testing.T) {
	got := formatProfile(&model.Profile{
		FullName:   "Jane Doe",
		Occupation: "CEO at Acme",
		Summary:    "Repeat founder",
		Experiences: []model.Experience{
			{Title: "CEO", Company: "Acme"},
			{Title: "VP Eng", Company: "Widgets Inc"},
		},
		Education: []model.Education{{DegreeName: "BSc", School: "MIT"}},
		Skills:    []string{"Go", "Sales"},
		URL:       "https://www.linkedin.com/in/janedoe",
	})

	assert.Contains(t, got, "Name: Jane Doe")
	assert.Contains(t, got, "Current Position: CEO at Acme")
	assert.Contains(t, got, "Summary: Repeat founder")
	assert.Contains(t, got, "Experience: CEO at Acme, VP Eng at Widgets Inc")
	assert.Contains(t, got, "Education: BSc from MIT")
	assert.Contains(t, got, "Skills: Go, Sales")
	assert.Contains(t, got, "LinkedIn URL: https://www.linkedin.com/in/janedoe")
}

func TestFormatProfile_MissingCollections(t *testing.T) {
	got := formatProfile(&model.Profile{FullName: "Jane Doe"})

	assert.Contains(t, got, "Experience: Not available")
	assert.Contains(t, got, "Education: Not available")
	assert.Contains(t, got, "Skills: Not available")
}

func TestFounderBlocks_SkipsEmptySlots(t *testing.T) {
	blocks := founderBlocks([]model.ProfileResult{
		{},
		model.ProfileFailure(reasonUnavailable),
		{},
	})

	assert.Equal(t, []string{"Error fetching founder background: " + reasonUnavailable}, blocks)
}
