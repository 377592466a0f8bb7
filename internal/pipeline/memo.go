package pipeline

import (
	"context"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/dealdesk/memogen/internal/prompt"
	"github.com/dealdesk/memogen/pkg/portkey"
)

// generateMemo produces the full HTML memorandum. The request is a single
// user message; the configured memo model is a reasoning model that rejects
// system-role messages.
func (p *Pipeline) generateMemo(ctx context.Context, in prompt.MemoInput, traceID string) (string, error) {
	resp, err := p.llm.ChatCompletion(ctx, portkey.ChatCompletionRequest{
		Model: p.memoModel,
		Messages: []portkey.Message{
			{Role: "user", Content: prompt.BuildMemoPrompt(in, prompt.MemoSections())},
		},
		TraceID:  traceID,
		SpanID:   uuid.NewString(),
		SpanName: "Generate Full Memorandum",
	})
	if err != nil {
		return "", eris.Wrap(err, "pipeline: generate memorandum")
	}
	if len(resp.Choices) == 0 {
		return "", eris.New("pipeline: memo completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
