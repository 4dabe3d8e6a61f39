package respond

import (
	"context"
	"fmt"
	"strings"

	"github.com/maitredhq/maitred/internal/llm"
)

const summaryPrompt = `You maintain a running summary of a restaurant assistant conversation.
Fold the latest exchange into the previous summary. Keep it under 150 words,
factual, and in the third person. Preserve names, dietary needs, and any
pending requests. Reply with the updated summary only.`

// Summarizer maintains the thread's rolling summary.
type Summarizer struct {
	client llm.Client
}

func NewSummarizer(client llm.Client) *Summarizer {
	return &Summarizer{client: client}
}

// Update folds one user/assistant exchange into prev and returns the new
// summary. On model failure it returns prev unchanged along with the error;
// the prior summary is always safe to keep.
func (s *Summarizer) Update(ctx context.Context, prev, userMsg, assistantMsg string) (string, error) {
	var b strings.Builder
	if prev != "" {
		b.WriteString("Previous summary:\n" + prev + "\n\n")
	}
	b.WriteString("Latest exchange:\nUser: " + userMsg + "\nAssistant: " + assistantMsg)

	out, err := s.client.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: summaryPrompt},
		{Role: llm.RoleUser, Content: b.String()},
	})
	if err != nil {
		return prev, fmt.Errorf("update summary: %w", err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return prev, nil
	}
	return out, nil
}
