// Package intent routes each turn down the data path or the
// conversational path using a single cheap model call.
package intent

import (
	"context"
	"fmt"
	"strings"

	"github.com/maitredhq/maitred/internal/llm"
)

// Intent is the coarse routing decision for a turn.
type Intent string

const (
	DBQuery        Intent = "db_query"
	Conversational Intent = "conversational"
)

const classifyPrompt = `You are an intent classifier for a restaurant assistant.
Decide whether the user's message requires looking up data (employees, inventory,
recipes, menu items, performance stats, stock levels) or is plain conversation
(greetings, small talk, opinions, personal statements, thanks).

Reply with exactly one word: db_query or conversational.`

// Classifier decides the turn's route. The zero value is not usable;
// construct with New.
type Classifier struct {
	client llm.Client
}

func New(client llm.Client) *Classifier {
	return &Classifier{client: client}
}

// Classify returns the intent for one user utterance. The model's reply is
// lowercased and matched by prefix so trailing punctuation or chatter does
// not flip the route.
func (c *Classifier) Classify(ctx context.Context, utterance string) (Intent, error) {
	out, err := c.client.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: classifyPrompt},
		{Role: llm.RoleUser, Content: utterance},
	})
	if err != nil {
		return Conversational, fmt.Errorf("classify intent: %w", err)
	}
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(out)), "db_query") {
		return DBQuery, nil
	}
	return Conversational, nil
}
