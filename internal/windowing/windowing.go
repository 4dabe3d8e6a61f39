// Package windowing prepares the slice of conversation history sent to the
// model. The unit of inclusion is a turn group, never a lone message, so a
// tool result can never appear without the user message that caused it.
package windowing

import "github.com/maitredhq/maitred/internal/llm"

// Group describes a contiguous span of messages [Start, End) in the original
// slice: one user message plus every tool and assistant message that follows
// it, up to the next user message.
type Group struct {
	Start int // inclusive index into msgs
	End   int // exclusive index into msgs
}

// Stats summarizes the result of window preparation.
//
// Fields:
// - Total: messages included.
// - Cap: the message cap used.
// - IncludedGroups: number of groups included.
// - SkippedGroups: total groups minus IncludedGroups.
type Stats struct {
	Total          int
	Cap            int
	IncludedGroups int
	SkippedGroups  int
}

// GroupTurns groups messages into turn units. A group starts at a user
// message; messages before the first user message form one leading group.
func GroupTurns(msgs []llm.Message) []Group {
	if len(msgs) == 0 {
		return nil
	}
	var groups []Group
	start := 0
	for i := 1; i < len(msgs); i++ {
		if msgs[i].Role == llm.RoleUser {
			groups = append(groups, Group{Start: start, End: i})
			start = i
		}
	}
	return append(groups, Group{Start: start, End: len(msgs)})
}

// Window returns the newest subslice of msgs that fits within limit messages
// without splitting a group. The newest group is always included, even when
// it alone exceeds the limit. limit <= 0 means no window at all.
func Window(msgs []llm.Message, limit int) ([]llm.Message, Stats) {
	groups := GroupTurns(msgs)
	if len(groups) == 0 || limit <= 0 {
		return nil, Stats{Cap: limit, SkippedGroups: len(groups)}
	}

	total := 0
	included := 0
	startIdx := len(groups)
	for gi := len(groups) - 1; gi >= 0; gi-- {
		size := groups[gi].End - groups[gi].Start
		if included > 0 && total+size > limit {
			break
		}
		total += size
		included++
		startIdx = gi
	}

	return msgs[groups[startIdx].Start:], Stats{
		Total:          total,
		Cap:            limit,
		IncludedGroups: included,
		SkippedGroups:  len(groups) - included,
	}
}
