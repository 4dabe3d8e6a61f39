package telemetry

import (
	"context"
	"strings"
	"unicode/utf8"
)

// EmitUtteranceFeatures records cheap local features of a user utterance so
// turn shapes can be analyzed offline without persisting the text itself.
func EmitUtteranceFeatures(ctx context.Context, utterance string) {
	if !observeEnabled() {
		return
	}
	turnID, _ := TurnIDFromContext(ctx)
	Emit("utterance_features", map[string]any{
		"turn_id": turnID,
		"bytes":   len(utterance),
		"runes":   utf8.RuneCountInString(utterance),
		"words":   len(strings.Fields(utterance)),
	})
}
