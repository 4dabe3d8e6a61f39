// Package clarify decides whether a plan is executable as-is or needs one
// more detail from the user. It is pure policy: no model calls, no I/O.
package clarify

import (
	"fmt"

	"github.com/maitredhq/maitred/internal/persona"
)

// Request is a clarification question tied to the field it asks about. The
// field tag lets a caller avoid asking about the same gap twice in a turn.
type Request struct {
	Field    string
	Question string
}

// menuScopeFields are the arguments that scope a daily-menu lookup. At least
// one must be present or the query returns the whole menu for no reason the
// user asked for.
var menuScopeFields = []string{
	"menu_date", "location", "category_filter",
	"max_price", "min_price", "dietary_filter",
}

var singleItemField = map[string]string{
	persona.ToolRecipeDetails:   "dish_name",
	persona.ToolMenuItemDetails: "dish_name",
}

// Check inspects a proposed tool call. A nil return means the plan is
// executable; otherwise the returned request carries the question to relay
// verbatim to the user.
func Check(tool string, args map[string]any) *Request {
	if tool == "" {
		return nil
	}

	if field, ok := singleItemField[tool]; ok {
		if !present(args, field) && !present(args, "id") {
			subject := "menu item"
			if tool == persona.ToolRecipeDetails {
				subject = "recipe"
			}
			return &Request{
				Field:    field,
				Question: fmt.Sprintf("Which %s would you like details on?", subject),
			}
		}
	}

	if tool == persona.ToolQueryMenu {
		for _, f := range menuScopeFields {
			if present(args, f) {
				return nil
			}
		}
		return &Request{
			Field:    "menu_scope",
			Question: "Would you like today's full menu, or should I filter by category, dietary needs, or price?",
		}
	}

	return nil
}

func present(args map[string]any, field string) bool {
	v, ok := args[field]
	if !ok || v == nil {
		return false
	}
	if s, isStr := v.(string); isStr && s == "" {
		return false
	}
	return true
}
