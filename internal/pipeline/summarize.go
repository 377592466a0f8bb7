package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/dealdesk/memogen/pkg/portkey"
)

const summarizeSystemPrompt = "You are a market research expert. Analyze the given company description and provide a concise summary of the market opportunity."

const summarizeUserPrompt = `Based on this company description, provide a focused summary of the market opportunity. Include:
1. The specific problem or need the company is addressing. Do not mention things like company is addressing... but directly just say the problem or opportunity in a given space, so isolate to focus solely on the space.
2. The target market or customer segment (be as specific as possible, e.g., 'small to medium e-commerce businesses' rather than just 'businesses').
Focus on the most crucial information to describe the specific space they are in, make sure it's no longer than 10 lines.
Company description: %s`

// summarizeMarketOpportunity condenses the extracted text into a short
// market-opportunity statement. The result feeds both the analysis process
// and the final memo prompt, so errors here abort the run.
func (p *Pipeline) summarizeMarketOpportunity(ctx context.Context, text, traceID string) (string, error) {
	resp, err := p.llm.ChatCompletion(ctx, portkey.ChatCompletionRequest{
		Model: p.summaryModel,
		Messages: []portkey.Message{
			{Role: "system", Content: summarizeSystemPrompt},
			{Role: "user", Content: fmt.Sprintf(summarizeUserPrompt, text)},
		},
		TraceID:  traceID,
		SpanID:   uuid.NewString(),
		SpanName: "Summarize Market Opportunity",
	})
	if err != nil {
		return "", eris.Wrap(err, "pipeline: summarize market opportunity")
	}
	if len(resp.Choices) == 0 {
		return "", eris.New("pipeline: summary completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
