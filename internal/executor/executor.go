// Package executor runs one planned tool call and always produces a tool
// result string. Tool failures are contained here: they become explanatory
// text for the responder, never a fatal turn error.
package executor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/maitredhq/maitred/internal/planner"
	"github.com/maitredhq/maitred/internal/telemetry"
	"github.com/maitredhq/maitred/tools"
)

// ToolError is a machine-readable error body surfaced in the tool result as JSON.
type ToolError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error returns a compact, single-line JSON string to keep tool results small.
func (e ToolError) Error() string {
	b, _ := json.Marshal(e)
	return string(b)
}

const maxLoggedResultRunes = 300

// Executor dispatches plans against a fixed tool set.
type Executor struct {
	byName map[string]tools.Definition
	logger *zap.Logger
}

func New(defs []tools.Definition, logger *zap.Logger) *Executor {
	byName := make(map[string]tools.Definition, len(defs))
	for _, d := range defs {
		byName[d.Name] = d
	}
	return &Executor{byName: byName, logger: logger}
}

// Execute runs the plan and returns the tool result text. It never returns
// an error: unknown tools, handler errors, and panics all fold into the
// result so the responder can explain what happened.
func (e *Executor) Execute(ctx context.Context, threadID string, plan *planner.Plan) (result string) {
	turnID, _ := telemetry.TurnIDFromContext(ctx)
	start := time.Now()

	emit := func(errStr string) {
		fields := map[string]any{
			"tool_name":   plan.Tool,
			"duration_ms": time.Since(start).Milliseconds(),
			"output_size": len(result),
			"turn_id":     turnID,
		}
		if errStr != "" {
			fields["error"] = errStr
		} else {
			fields["error"] = nil
		}
		telemetry.Emit("tool_exec", fields)
	}

	defer func() {
		if r := recover(); r != nil {
			result = ToolError{Code: "tool_panic", Message: fmt.Sprint(r)}.Error()
			emit("tool panic")
			e.logger.Error("tool panicked",
				zap.String("tool", plan.Tool), zap.Any("panic", r))
		}
	}()

	def, ok := e.byName[plan.Tool]
	if !ok {
		result = ToolError{Code: "tool_not_found", Message: "no tool named " + plan.Tool}.Error()
		emit("tool not found")
		e.logger.Warn("tool not found", zap.String("tool", plan.Tool))
		return result
	}

	out, err := def.Invoke(ctx, threadID, plan.Args)
	if err != nil {
		result = ToolError{Code: "tool_failed", Message: err.Error()}.Error()
		// Generic error string in telemetry; the detailed message stays in
		// the tool result only.
		emit("tool error")
		e.logger.Warn("tool failed",
			zap.String("tool", plan.Tool), zap.Error(err))
		return result
	}

	result = out
	emit("")
	e.logger.Info("tool executed",
		zap.String("tool", plan.Tool),
		zap.Any("args", plan.Args))
	e.logger.Debug("tool result",
		zap.String("tool", plan.Tool),
		zap.String("result", clampRunes(result, maxLoggedResultRunes)))
	return result
}

// clampRunes trims s to at most n runes for log lines.
func clampRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
