package respond

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/maitredhq/maitred/internal/llm"
	"github.com/maitredhq/maitred/internal/persona"
)

type scriptedClient struct {
	reply string
	err   error
	last  []llm.Message
}

func (s *scriptedClient) Complete(_ context.Context, msgs []llm.Message) (string, error) {
	s.last = msgs
	return s.reply, s.err
}

func TestReply_PromptOrder(t *testing.T) {
	fake := &scriptedClient{reply: "  Here you go.  "}
	r := NewResponder(fake, true)

	out, err := r.Reply(context.Background(), Input{
		Persona:    persona.Internal,
		MemoryNote: "Known guest profile:\nName: Sam",
		Summary:    "Sam asked about stock earlier.",
		History: []llm.Message{
			{Role: llm.RoleUser, Content: "earlier question"},
			{Role: llm.RoleAssistant, Content: "earlier answer"},
		},
		Utterance:  "what is running low?",
		ToolResult: `[{"item":"basil"}]`,
	})
	if err != nil {
		t.Fatal(err)
	}
	if out != "Here you go." {
		t.Errorf("reply not trimmed: %q", out)
	}

	msgs := fake.last
	if len(msgs) != 5 {
		t.Fatalf("got %d messages", len(msgs))
	}
	if msgs[0].Role != llm.RoleSystem {
		t.Fatal("system prompt must come first")
	}
	sys := msgs[0].Content
	for _, want := range []string{"operations assistant", "Known guest profile", "Sam asked about stock"} {
		if !strings.Contains(sys, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
	// note before summary
	if strings.Index(sys, "Known guest profile") > strings.Index(sys, "Sam asked about stock") {
		t.Error("memory note must precede summary")
	}
	if msgs[1].Content != "earlier question" || msgs[2].Content != "earlier answer" {
		t.Error("history must follow the system prompt")
	}
	if msgs[3].Role != llm.RoleUser || msgs[3].Content != "what is running low?" {
		t.Errorf("user message = %+v", msgs[3])
	}
	if msgs[4].Role != llm.RoleTool || !strings.Contains(msgs[4].Content, "basil") {
		t.Errorf("tool context must come last: %+v", msgs[4])
	}
}

func TestReply_NoToolResult(t *testing.T) {
	fake := &scriptedClient{reply: "hi"}
	r := NewResponder(fake, true)
	_, err := r.Reply(context.Background(), Input{
		Persona:   persona.External,
		Utterance: "hello",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(fake.last) != 2 {
		t.Fatalf("got %d messages, want system + user", len(fake.last))
	}
}

func TestReply_SuggestionsFlag(t *testing.T) {
	fake := &scriptedClient{reply: "hi"}

	r := NewResponder(fake, true)
	_, err := r.Reply(context.Background(), Input{Persona: persona.External, Utterance: "hello"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(fake.last[0].Content, persona.FollowUpsDirective) {
		t.Error("suggestions on must append the follow-ups directive")
	}
	if strings.Contains(fake.last[0].Content, persona.SuppressFollowUpsDirective) {
		t.Error("suggestions on must not carry the suppression directive")
	}

	r = NewResponder(fake, false)
	_, err = r.Reply(context.Background(), Input{Persona: persona.External, Utterance: "hello"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(fake.last[0].Content, persona.SuppressFollowUpsDirective) {
		t.Error("suggestions off must append the suppression directive")
	}
	// The contradictory pairing is never produced.
	if strings.Contains(fake.last[0].Content, persona.FollowUpsDirective) {
		t.Error("suggestions off must drop the follow-ups directive entirely")
	}

	// The internal persona gets neither directive.
	for _, suggestions := range []bool{true, false} {
		r = NewResponder(fake, suggestions)
		_, err = r.Reply(context.Background(), Input{Persona: persona.Internal, Utterance: "hello"})
		if err != nil {
			t.Fatal(err)
		}
		if strings.Contains(fake.last[0].Content, persona.FollowUpsDirective) ||
			strings.Contains(fake.last[0].Content, persona.SuppressFollowUpsDirective) {
			t.Error("internal persona must not carry follow-up directives")
		}
	}
}

func TestReply_ErrorPropagates(t *testing.T) {
	r := NewResponder(&scriptedClient{err: errors.New("boom")}, true)
	_, err := r.Reply(context.Background(), Input{Persona: persona.Internal, Utterance: "hi"})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestSummarizer_Update(t *testing.T) {
	fake := &scriptedClient{reply: "Sam asked about desserts."}
	s := NewSummarizer(fake)

	out, err := s.Update(context.Background(), "Old summary.", "any desserts?", "We have tiramisu.")
	if err != nil {
		t.Fatal(err)
	}
	if out != "Sam asked about desserts." {
		t.Errorf("got %q", out)
	}
	body := fake.last[1].Content
	for _, want := range []string{"Old summary.", "any desserts?", "We have tiramisu."} {
		if !strings.Contains(body, want) {
			t.Errorf("summarizer input missing %q", want)
		}
	}
}

func TestSummarizer_KeepsPrevOnFailure(t *testing.T) {
	s := NewSummarizer(&scriptedClient{err: errors.New("boom")})
	out, err := s.Update(context.Background(), "prior", "u", "a")
	if err == nil {
		t.Fatal("expected error")
	}
	if out != "prior" {
		t.Errorf("failed update must return the prior summary, got %q", out)
	}

	s = NewSummarizer(&scriptedClient{reply: "   "})
	out, err = s.Update(context.Background(), "prior", "u", "a")
	if err != nil {
		t.Fatal(err)
	}
	if out != "prior" {
		t.Errorf("blank model output must keep the prior summary, got %q", out)
	}
}
