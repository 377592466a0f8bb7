package pipeline

import (
	"fmt"
	"strings"

	"github.com/dealdesk/memogen/internal/model"
)

// combineText assembles the additional-context bundle for the memo prompt:
// deal terms, the extracted text, and the founder blocks in input order.
func combineText(terms model.DealTerms, extracted string, founders []model.ProfileResult) string {
	var b strings.Builder

	b.WriteString("Current Deal Terms:\n")
	fmt.Fprintf(&b, "Current Funding Round: %s\n", model.OrNotProvided(terms.CurrentRound))
	fmt.Fprintf(&b, "Proposed Valuation: %s\n", model.OrNotProvided(terms.ProposedValuation))
	fmt.Fprintf(&b, "Analysis Date: %s\n", model.OrNotProvided(terms.ValuationDate))

	b.WriteString("Extracted Text from Documents:\n")
	b.WriteString(extracted)
	b.WriteString("\n")

	b.WriteString("Founder Information from LinkedIn:\n")
	b.WriteString(strings.Join(founderBlocks(founders), "\n\n"))

	return b.String()
}

// founderBlocks renders one text block per lookup result, skipping slots left
// empty by blank input URLs.
func founderBlocks(results []model.ProfileResult) []string {
	var blocks []string
	for _, r := range results {
		switch {
		case r.Profile != nil:
			blocks = append(blocks, formatProfile(r.Profile))
		case r.FailureReason != "":
			blocks = append(blocks, "Error fetching founder background: "+r.FailureReason)
		}
	}
	return blocks
}

func formatProfile(p *model.Profile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Name: %s\n", p.FullName)
	fmt.Fprintf(&b, "Current Position: %s\n", p.Occupation)
	fmt.Fprintf(&b, "Summary: %s\n", p.Summary)

	if len(p.Experiences) > 0 {
		entries := make([]string, 0, len(p.Experiences))
		for _, e := range p.Experiences {
			entries = append(entries, fmt.Sprintf("%s at %s", e.Title, e.Company))
		}
		fmt.Fprintf(&b, "Experience: %s\n", strings.Join(entries, ", "))
	} else {
		b.WriteString("Experience: Not available\n")
	}

	if len(p.Education) > 0 {
		entries := make([]string, 0, len(p.Education))
		for _, e := range p.Education {
			entries = append(entries, fmt.Sprintf("%s from %s", e.DegreeName, e.School))
		}
		fmt.Fprintf(&b, "Education: %s\n", strings.Join(entries, ", "))
	} else {
		b.WriteString("Education: Not available\n")
	}

	if len(p.Skills) > 0 {
		fmt.Fprintf(&b, "Skills: %s\n", strings.Join(p.Skills, ", "))
	} else {
		b.WriteString("Skills: Not available\n")
	}

	fmt.Fprintf(&b, "LinkedIn URL: %s", p.URL)

	return b.String()
}
