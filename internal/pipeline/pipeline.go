// Package pipeline drives one conversation turn end to end: intent
// detection, planning, clarification, tool execution, response, fact
// extraction, summarization, and checkpointing.
//
// Invariants:
//   - Exactly one assistant-facing reply per turn, and at most one assistant
//     message is persisted.
//   - The user message is persisted even when later stages fail.
//   - Tool and model failures degrade the turn; they never lose the thread.
package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/maitredhq/maitred/internal/checkpoint"
	"github.com/maitredhq/maitred/internal/clarify"
	"github.com/maitredhq/maitred/internal/executor"
	"github.com/maitredhq/maitred/internal/facts"
	"github.com/maitredhq/maitred/internal/intent"
	"github.com/maitredhq/maitred/internal/llm"
	"github.com/maitredhq/maitred/internal/persona"
	"github.com/maitredhq/maitred/internal/planner"
	"github.com/maitredhq/maitred/internal/respond"
	"github.com/maitredhq/maitred/internal/telemetry"
	"github.com/maitredhq/maitred/internal/windowing"
	"github.com/maitredhq/maitred/memory"
)

// State names one stage of the turn state machine.
type State string

const (
	StateStart        State = "START"
	StateDetectIntent State = "DETECT_INTENT"
	StatePlan         State = "PLAN"
	StateClarify      State = "CLARIFY"
	StateExec         State = "EXEC"
	StateRespond      State = "RESPOND"
	StateSummarize    State = "SUMMARIZE"
	StateEnd          State = "END"
)

const (
	apologyStepLimit = "Sorry, I hit my processing limit for this request. Could you rephrase or try again?"
	apologyInternal  = "Sorry, I ran into a problem while answering. Please try again."
)

// Pipeline processes turns for both personas over shared stores.
type Pipeline struct {
	classifier *intent.Classifier
	planner    *planner.Planner
	executors  map[persona.Persona]*executor.Executor
	responder  *respond.Responder
	summarizer *respond.Summarizer

	checkpoints checkpoint.Store
	memories    *memory.Store

	historyWindow int
	stepLimit     int
	logger        *zap.Logger

	mu          sync.Mutex
	threadLocks map[string]*sync.Mutex
}

// Options carries the pipeline's collaborators and tuning.
type Options struct {
	Classifier  *intent.Classifier
	Planner     *planner.Planner
	Executors   map[persona.Persona]*executor.Executor
	Responder   *respond.Responder
	Summarizer  *respond.Summarizer
	Checkpoints checkpoint.Store
	Memories    *memory.Store
	// HistoryWindow caps how many prior messages are replayed to the model.
	HistoryWindow int
	// StepLimit bounds state transitions per turn.
	StepLimit int
	Logger    *zap.Logger
}

func New(opts Options) *Pipeline {
	if opts.HistoryWindow <= 0 {
		opts.HistoryWindow = 20
	}
	if opts.StepLimit <= 0 {
		opts.StepLimit = 12
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Pipeline{
		classifier:    opts.Classifier,
		planner:       opts.Planner,
		executors:     opts.Executors,
		responder:     opts.Responder,
		summarizer:    opts.Summarizer,
		checkpoints:   opts.Checkpoints,
		memories:      opts.Memories,
		historyWindow: opts.HistoryWindow,
		stepLimit:     opts.StepLimit,
		logger:        opts.Logger,
		threadLocks:   map[string]*sync.Mutex{},
	}
}

// lockThread serializes turns per thread so checkpoint read-modify-write
// cycles never interleave.
func (p *Pipeline) lockThread(threadID string) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()
	l, ok := p.threadLocks[threadID]
	if !ok {
		l = &sync.Mutex{}
		p.threadLocks[threadID] = l
	}
	return l
}

// turn accumulates everything one ProcessTurn invocation produces.
type turn struct {
	persona    persona.Persona
	threadID   string
	utterance  string
	snap       checkpoint.Snapshot
	knownName  string
	memoryNote string
	intent     intent.Intent
	plan       *planner.Plan
	clarified  bool
	toolResult string
	reply      string
	replyOK    bool // the reply came from the responder, not an apology
}

// ProcessTurn runs one user utterance through the full state machine and
// returns the assistant reply. threadID may be empty; the persona's default
// thread is used. Model and tool failures are absorbed into the reply; an
// error is returned only for unusable input.
func (p *Pipeline) ProcessTurn(ctx context.Context, pers persona.Persona, threadID, utterance string) (string, error) {
	if !pers.Valid() {
		return "", errors.New("unknown persona")
	}
	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return "", errors.New("empty utterance")
	}
	if threadID == "" {
		threadID = pers.BaseThreadID()
	}

	lock := p.lockThread(threadID)
	lock.Lock()
	defer lock.Unlock()

	turnID := uuid.NewString()
	ctx = telemetry.WithTurnID(ctx, turnID)
	start := time.Now()
	telemetry.Emit("turn_start", map[string]any{
		"turn_id":   turnID,
		"thread_id": threadID,
		"persona":   string(pers),
	})
	telemetry.EmitUtteranceFeatures(ctx, utterance)

	t := &turn{persona: pers, threadID: threadID, utterance: utterance}
	p.loadThread(ctx, t)
	p.recordUserFacts(ctx, t)

	state := StateStart
	for steps := 0; state != StateEnd; steps++ {
		if steps >= p.stepLimit {
			p.logger.Error("turn exceeded step limit",
				zap.String("thread_id", threadID), zap.Int("limit", p.stepLimit))
			t.reply = apologyStepLimit
			t.replyOK = false
			state = StateEnd
			break
		}
		state = p.step(ctx, state, t)
	}

	p.persist(ctx, t)
	p.recordAssistantFacts(ctx, t)

	telemetry.Emit("turn_end", map[string]any{
		"turn_id":     turnID,
		"thread_id":   threadID,
		"intent":      string(t.intent),
		"planned":     t.plan != nil,
		"clarified":   t.clarified,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return t.reply, nil
}

// step performs one state transition.
func (p *Pipeline) step(ctx context.Context, state State, t *turn) State {
	switch state {
	case StateStart:
		return StateDetectIntent

	case StateDetectIntent:
		it, err := p.classifier.Classify(ctx, t.utterance)
		if err != nil {
			// Failed classification defaults to conversation.
			p.logger.Warn("intent classification failed", zap.Error(err))
		}
		t.intent = it
		if it == intent.DBQuery {
			return StatePlan
		}
		return StateRespond

	case StatePlan:
		plan, err := p.planner.Propose(ctx, t.persona, t.utterance)
		if err != nil {
			p.logger.Warn("planning failed", zap.Error(err))
		}
		t.plan = plan
		if plan == nil {
			// Nothing executable; answer conversationally.
			return StateRespond
		}
		return StateClarify

	case StateClarify:
		if req := clarify.Check(t.plan.Tool, t.plan.Args); req != nil {
			t.clarified = true
			t.reply = req.Question
			t.replyOK = true
			p.logger.Info("asking for clarification",
				zap.String("tool", t.plan.Tool), zap.String("field", req.Field))
			return StateSummarize
		}
		return StateExec

	case StateExec:
		exec, ok := p.executors[t.persona]
		if !ok {
			p.logger.Error("no executor for persona", zap.String("persona", string(t.persona)))
			return StateRespond
		}
		t.toolResult = exec.Execute(ctx, t.threadID, t.plan)
		return StateRespond

	case StateRespond:
		history, stats := windowing.Window(t.snap.Messages, p.historyWindow)
		p.logger.Debug("prepared history window",
			zap.Int("messages", stats.Total), zap.Int("skipped_groups", stats.SkippedGroups))
		reply, err := p.responder.Reply(ctx, respond.Input{
			Persona:    t.persona,
			MemoryNote: t.memoryNote,
			Summary:    t.snap.Summary,
			History:    history,
			Utterance:  t.utterance,
			ToolResult: t.toolResult,
		})
		if err != nil {
			p.logger.Error("response generation failed", zap.Error(err))
			t.reply = apologyInternal
			t.replyOK = false
			return StateEnd
		}
		t.reply = reply
		t.replyOK = true
		return StateSummarize

	case StateSummarize:
		summary, err := p.summarizer.Update(ctx, t.snap.Summary, t.utterance, t.reply)
		if err != nil {
			// Keep the prior summary.
			p.logger.Warn("summary update failed", zap.Error(err))
		}
		t.snap.Summary = summary
		return StateEnd

	default:
		p.logger.Error("unknown state", zap.String("state", string(state)))
		return StateEnd
	}
}

// loadThread fetches the checkpoint and the memory note. Failures leave the
// turn with empty context rather than aborting it.
func (p *Pipeline) loadThread(ctx context.Context, t *turn) {
	snap, ok, err := p.checkpoints.Get(ctx, t.threadID)
	if err != nil {
		p.logger.Warn("checkpoint load failed", zap.String("thread_id", t.threadID), zap.Error(err))
	}
	if ok {
		t.snap = snap
	} else {
		t.snap = checkpoint.Snapshot{ThreadID: t.threadID}
	}

	name, err := p.memories.KnownName(ctx, t.threadID)
	if err != nil {
		p.logger.Warn("known-name lookup failed", zap.Error(err))
	}
	t.knownName = name

	note, err := p.memories.BuildNote(ctx, t.threadID)
	if err != nil {
		p.logger.Warn("memory note build failed", zap.Error(err))
	}
	t.memoryNote = note
}

// recordUserFacts extracts durable facts from the user's utterance and
// refreshes the memory note when anything new was stored.
func (p *Pipeline) recordUserFacts(ctx context.Context, t *turn) {
	extracted := facts.Extract(t.utterance, t.knownName)
	if len(extracted) == 0 {
		return
	}
	for _, f := range extracted {
		content := f.Key + ":" + f.Value
		if _, err := p.memories.Add(ctx, t.threadID, content, []string{f.Key}, facts.ImportanceFor(f.Key), memory.SourceUser); err != nil {
			p.logger.Warn("memory write failed", zap.String("content", content), zap.Error(err))
			continue
		}
		if f.Key == memory.KeyUserName {
			t.knownName = f.Value
		}
	}
	note, err := p.memories.BuildNote(ctx, t.threadID)
	if err == nil {
		t.memoryNote = note
	}
}

// recordAssistantFacts extracts facts the assistant stated, so details it
// confirmed ("noted, you're allergic to peanuts") survive the turn.
func (p *Pipeline) recordAssistantFacts(ctx context.Context, t *turn) {
	if !t.replyOK || t.clarified {
		return
	}
	for _, f := range facts.Extract(t.reply, t.knownName) {
		// Never let the assistant rename the guest.
		if f.Key == memory.KeyUserName {
			continue
		}
		content := f.Key + ":" + f.Value
		if _, err := p.memories.Add(ctx, t.threadID, content, []string{f.Key}, facts.ImportanceFor(f.Key), memory.SourceAssistant); err != nil {
			p.logger.Warn("memory write failed", zap.String("content", content), zap.Error(err))
		}
	}
}

// persist appends this turn's messages and writes the checkpoint. The user
// message and any tool result are kept even when the responder failed, so
// the thread's history stays truthful.
func (p *Pipeline) persist(ctx context.Context, t *turn) {
	t.snap.ThreadID = t.threadID
	t.snap.Messages = append(t.snap.Messages, llm.Message{Role: llm.RoleUser, Content: t.utterance})
	if t.toolResult != "" {
		t.snap.Messages = append(t.snap.Messages, llm.Message{Role: llm.RoleTool, Content: t.toolResult})
	}
	if t.replyOK {
		t.snap.Messages = append(t.snap.Messages, llm.Message{Role: llm.RoleAssistant, Content: t.reply})
	}
	if err := p.checkpoints.Put(ctx, t.snap); err != nil {
		p.logger.Error("checkpoint write failed", zap.String("thread_id", t.threadID), zap.Error(err))
	}
}
