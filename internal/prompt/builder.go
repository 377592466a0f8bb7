package prompt

import (
	"fmt"
	"strings"

	"github.com/dealdesk/memogen/internal/model"
)

// Section is one required memo section: a heading plus the instructions the
// model must satisfy for it. Sections are rendered in slice order.
type Section struct {
	Title        string
	Requirements []string
}

// MemoInput carries everything the memorandum prompt interpolates.
type MemoInput struct {
	MarketOpportunity  string
	Terms              model.DealTerms
	MarketAnalysis     string
	CompetitorAnalysis string
	Context            string
}

const memoPreamble = `You are a top-tier senior venture capitalist with experience in evaluating early-stage startups. Your role is to generate comprehensive investment memorandums based on provided information. Format the output using HTML tags for better readability. Limit yourself to the data given in context and do not make up things or people will get fired. Each section should be detailed and comprehensive, with a particular focus on providing extensive information in the product description section. Generating all required sections of the memo is a must.

Generate a detailed and comprehensive investment memorandum based on the following information:`

const memoFormatting = `Use the provided information to create a coherent, comprehensive, and detailed memorandum. Expand on the information provided to create full, informative sections. Ensure the company's solution is positioned within the context of the market opportunity and competitive landscape.

Use appropriate HTML tags for formatting:
- <p> for paragraphs
- <ul> and <li> for unordered lists
- <ol> and <li> for ordered lists
- <strong> for emphasis
- <h3> for subsections within main sections

Avoid adding unnecessary spaces between sections. Focus on providing in-depth analysis and detailed information rather than worrying about the length of the memorandum. If for any given section you don't have context you can say there is not enough context on that specific section.`

// BuildMemoPrompt assembles the single user message for memorandum
// generation from the declarative section list.
func BuildMemoPrompt(in MemoInput, sections []Section) string {
	var b strings.Builder

	b.WriteString(memoPreamble)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Market Opportunity: %s\n\n", in.MarketOpportunity)

	b.WriteString("Current Deal Terms:\n")
	fmt.Fprintf(&b, "Current Funding Round: %s\n", model.OrNotProvided(in.Terms.CurrentRound))
	fmt.Fprintf(&b, "Proposed Valuation: %s\n", model.OrNotProvided(in.Terms.ProposedValuation))
	fmt.Fprintf(&b, "Analysis Date: %s\n\n", model.OrNotProvided(in.Terms.ValuationDate))

	b.WriteString("Market Analysis Result:\n")
	fmt.Fprintf(&b, "Market Sizing Information: %s\n", orNotAvailable(in.MarketAnalysis))
	fmt.Fprintf(&b, "Competitor Analysis: %s\n\n", orNotAvailable(in.CompetitorAnalysis))

	fmt.Fprintf(&b, "Additional Context: %s\n\n", in.Context)

	b.WriteString("Structure the memo with the following sections, using HTML tags for formatting:\n\n")
	for i, s := range sections {
		fmt.Fprintf(&b, "%d. <h2>%s</h2>\n", i+1, s.Title)
		for _, req := range s.Requirements {
			fmt.Fprintf(&b, "   - %s\n", req)
		}
		b.WriteString("\n")
	}

	b.WriteString(memoFormatting)

	return b.String()
}

func orNotAvailable(s string) string {
	if s == "" {
		return "Not available"
	}
	return s
}
