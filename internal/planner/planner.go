// Package planner turns a data-seeking utterance into at most one tool call.
// A nil plan is a valid outcome and sends the turn down the conversational
// path; the planner never guesses a tool it cannot justify.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/maitredhq/maitred/internal/llm"
	"github.com/maitredhq/maitred/internal/persona"
)

// Plan is one whitelisted tool call with flat scalar arguments.
type Plan struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args"`
}

const promptTemplate = `You plan a single database lookup for a restaurant assistant.

Available tools:
%s

Reply with ONLY a JSON object of the form {"tool": "<name>", "args": {...}}.
Rules:
- Pick exactly one tool from the list above, or reply {"tool": null} when no
  tool fits the request.
- args values must be plain strings or numbers.
- Never include a "limit" argument.
- For get_recipe_details and get_menu_item_details, pass the dish name as
  "dish_name" (or a numeric "id" when the user gave one).`

// Planner produces plans from utterances. Construct with New.
type Planner struct {
	client llm.Client
}

func New(client llm.Client) *Planner {
	return &Planner{client: client}
}

// dishPrep locates dish references in an utterance ("tell me about the
// lasagna", "details for Margherita Pizza"). The dish name follows the LAST
// preposition, so "the ingredients for the lasagna" yields "lasagna".
var dishPrep = regexp.MustCompile(`(?i)\b(?:for|about|of)\s+(?:the\s+)?`)

// singleItemTools require a dish_name or id argument to be executable.
var singleItemTools = map[string]bool{
	persona.ToolRecipeDetails:   true,
	persona.ToolMenuItemDetails: true,
}

// Propose asks the model for a plan scoped to p's whitelist. It returns
// (nil, nil) when the model declines to pick a tool or picks one off the
// whitelist; the caller then answers conversationally.
func (pl *Planner) Propose(ctx context.Context, p persona.Persona, utterance string) (*Plan, error) {
	prompt := fmt.Sprintf(promptTemplate, "- "+strings.Join(p.PlannerTools(), "\n- "))
	out, err := pl.client.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: prompt},
		{Role: llm.RoleUser, Content: utterance},
	})
	if err != nil {
		return nil, fmt.Errorf("propose plan: %w", err)
	}

	plan, ok := decode(out)
	if !ok || plan.Tool == "" {
		return nil, nil
	}
	if !p.AllowsTool(plan.Tool) {
		return nil, nil
	}
	if !flatArgs(plan.Args) {
		return nil, nil
	}
	if plan.Args == nil {
		plan.Args = map[string]any{}
	}
	if _, set := plan.Args["output_format"]; !set {
		plan.Args["output_format"] = "structured"
	}
	delete(plan.Args, "limit")
	salvageDishName(plan, utterance)
	return plan, nil
}

// decode parses the model reply, tolerating prose around the JSON object by
// salvaging the first balanced {...} span.
func decode(out string) (*Plan, bool) {
	var plan Plan
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &plan); err == nil {
		return &plan, true
	}
	raw := balancedObject(out)
	if raw == "" || !gjson.Valid(raw) {
		return nil, false
	}
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, false
	}
	return &plan, true
}

// balancedObject returns the first top-level {...} span in s, or "".
func balancedObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '"':
			if i == 0 || s[i-1] != '\\' {
				inString = !inString
			}
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1]
				}
			}
		}
	}
	return ""
}

// flatArgs rejects nested structures; tool arguments are scalars only.
func flatArgs(args map[string]any) bool {
	for _, v := range args {
		switch v.(type) {
		case map[string]any, []any:
			return false
		}
	}
	return true
}

// salvageDishName fills a missing dish reference for single-item lookups
// from the utterance itself, so an obvious request does not bounce through
// a clarification round.
func salvageDishName(plan *Plan, utterance string) {
	if !singleItemTools[plan.Tool] {
		return
	}
	if _, ok := plan.Args["dish_name"]; ok {
		return
	}
	if _, ok := plan.Args["id"]; ok {
		return
	}
	locs := dishPrep.FindAllStringIndex(utterance, -1)
	if locs == nil {
		return
	}
	name := utterance[locs[len(locs)-1][1]:]
	if i := strings.IndexAny(name, ".?!\n"); i >= 0 {
		name = name[:i]
	}
	if name = strings.TrimSpace(name); name != "" {
		plan.Args["dish_name"] = name
	}
}
