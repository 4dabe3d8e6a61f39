// Package persona fixes the two caller roles: internal restaurant staff and
// external guests. A persona determines the tool whitelist, the system
// prompt, and the default thread key; it never changes for the life of a
// thread.
package persona

// Persona identifies the caller role for a conversation thread.
type Persona string

const (
	Internal Persona = "internal"
	External Persona = "external"
)

// Valid reports whether p is a known persona.
func (p Persona) Valid() bool {
	return p == Internal || p == External
}

// BaseThreadID is the default thread key when the caller supplies none.
func (p Persona) BaseThreadID() string {
	if p == External {
		return "customer_session"
	}
	return "internal_staff_session"
}

// Data-lookup tool names. The planner whitelist covers lookups only; memory
// capabilities are registered alongside but never planned against.
const (
	ToolQueryEmployees      = "query_employees"
	ToolEmployeePerformance = "get_employee_performance_stats"
	ToolQueryInventory      = "query_storage_inventory"
	ToolLowStockAlerts      = "get_low_stock_alerts"
	ToolQueryRecipes        = "query_recipes"
	ToolRecipeDetails       = "get_recipe_details"
	ToolQueryMenu           = "query_daily_menu"
	ToolMenuItemDetails     = "get_menu_item_details"
)

var internalTools = []string{
	ToolQueryEmployees,
	ToolEmployeePerformance,
	ToolQueryInventory,
	ToolLowStockAlerts,
	ToolQueryRecipes,
	ToolRecipeDetails,
	ToolQueryMenu,
	ToolMenuItemDetails,
}

var externalTools = []string{
	ToolQueryMenu,
	ToolMenuItemDetails,
}

// PlannerTools returns the data-lookup whitelist the planner may choose from.
// The returned slice is a copy.
func (p Persona) PlannerTools() []string {
	src := internalTools
	if p == External {
		src = externalTools
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// AllowsTool reports whether name is on p's planner whitelist.
func (p Persona) AllowsTool(name string) bool {
	for _, t := range p.PlannerTools() {
		if t == name {
			return true
		}
	}
	return false
}
