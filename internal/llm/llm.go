// Package llm defines the model collaborator boundary.
//
// Every component that talks to the language model (classifier, planner,
// responder, summarizer) does so through Client, so tests can substitute a
// scripted fake and the Anthropic wiring stays in one place.
package llm

import "context"

// Role tags a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one role-tagged entry in a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Client sends an ordered message list to the model and returns one
// assistant message as plain text. Implementations may fail outright;
// callers decide how a failure degrades.
type Client interface {
	Complete(ctx context.Context, msgs []Message) (string, error)
}
