package llm

import (
	"context"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultModel is used when no model is configured.
const DefaultModel = string(anthropic.ModelClaude3_7SonnetLatest)

const defaultMaxTokens = 1024

// AnthropicClient implements Client against the Anthropic Messages API.
// The SDK reads ANTHROPIC_API_KEY from the environment.
type AnthropicClient struct {
	client  *anthropic.Client
	model   anthropic.Model
	timeout time.Duration
}

// NewAnthropic returns a client for the given model. A zero timeout
// disables the per-call deadline.
func NewAnthropic(model string, timeout time.Duration, opts ...option.RequestOption) *AnthropicClient {
	if model == "" {
		model = DefaultModel
	}
	c := anthropic.NewClient(opts...)
	return &AnthropicClient{client: &c, model: anthropic.Model(model), timeout: timeout}
}

// Complete sends msgs as a single Messages API call and concatenates the
// returned text blocks. System messages become the system param; tool
// messages are folded into user content since they carry lookup context,
// not API-level tool_use blocks.
func (a *AnthropicClient) Complete(ctx context.Context, msgs []Message) (string, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	var system []anthropic.TextBlockParam
	params := make([]anthropic.MessageParam, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case RoleSystem:
			system = append(system, anthropic.TextBlockParam{Text: m.Content})
		case RoleAssistant:
			params = append(params, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default: // user and tool
			params = append(params, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}

	req := anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: int64(defaultMaxTokens),
		Messages:  params,
	}
	if len(system) > 0 {
		req.System = system
	}

	msg, err := a.client.Messages.New(ctx, req)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, b := range msg.Content {
		if tb, ok := b.AsAny().(anthropic.TextBlock); ok && tb.Text != "" {
			if sb.Len() > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(tb.Text)
		}
	}
	return sb.String(), nil
}
