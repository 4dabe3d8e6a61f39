// Package respond produces the turn's assistant message and maintains the
// rolling conversation summary.
package respond

import (
	"context"
	"fmt"
	"strings"

	"github.com/maitredhq/maitred/internal/llm"
	"github.com/maitredhq/maitred/internal/persona"
)

// Responder composes the final reply from everything the turn gathered.
type Responder struct {
	client llm.Client
	// suggestions gates the external persona's trailing "You might also
	// like" block.
	suggestions bool
}

func NewResponder(client llm.Client, suggestions bool) *Responder {
	return &Responder{client: client, suggestions: suggestions}
}

// Input is the material available when composing a reply. History is the
// already-windowed prior conversation; it excludes the current user message.
type Input struct {
	Persona    persona.Persona
	MemoryNote string
	Summary    string
	History    []llm.Message
	Utterance  string
	ToolResult string
}

// Reply generates the assistant message. Prompt order is fixed: persona
// instructions, memory note, summary, history, the user message, and the
// tool result last so the model grounds its answer in fresh data.
func (r *Responder) Reply(ctx context.Context, in Input) (string, error) {
	msgs := make([]llm.Message, 0, len(in.History)+5)
	msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: r.systemPrompt(in)})
	msgs = append(msgs, in.History...)
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: in.Utterance})
	if in.ToolResult != "" {
		msgs = append(msgs, llm.Message{
			Role:    llm.RoleTool,
			Content: "Data retrieved for this request:\n" + in.ToolResult,
		})
	}

	out, err := r.client.Complete(ctx, msgs)
	if err != nil {
		return "", fmt.Errorf("compose reply: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func (r *Responder) systemPrompt(in Input) string {
	parts := []string{in.Persona.SystemPrompt()}
	if in.MemoryNote != "" {
		parts = append(parts, in.MemoryNote)
	}
	if in.Summary != "" {
		parts = append(parts, "Conversation so far (summary):\n"+in.Summary)
	}
	if in.Persona == persona.External {
		if r.suggestions {
			parts = append(parts, persona.FollowUpsDirective)
		} else {
			parts = append(parts, persona.SuppressFollowUpsDirective)
		}
	}
	return strings.Join(parts, "\n\n")
}
