package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/maitredhq/maitred/internal/catalog"
	"github.com/maitredhq/maitred/internal/persona"
)

type queryEmployeesInput struct {
	Role         string `json:"role,omitempty" jsonschema_description:"Filter by role (chef, server, bartender, host)."`
	Shift        string `json:"shift,omitempty" jsonschema_description:"Filter by shift (morning, evening)."`
	OutputFormat string `json:"output_format,omitempty" jsonschema_description:"structured (JSON, default) or text."`
}

type employeePerformanceInput struct {
	Name         string `json:"name,omitempty" jsonschema_description:"Employee name or part of it; omit for everyone."`
	OutputFormat string `json:"output_format,omitempty" jsonschema_description:"structured (JSON, default) or text."`
}

type queryInventoryInput struct {
	Category     string `json:"category,omitempty" jsonschema_description:"Filter by category (produce, dairy, dry goods, pantry, meat)."`
	Location     string `json:"location,omitempty" jsonschema_description:"Filter by storage location (walk-in, dry storage)."`
	OutputFormat string `json:"output_format,omitempty" jsonschema_description:"structured (JSON, default) or text."`
}

type lowStockInput struct {
	OutputFormat string `json:"output_format,omitempty" jsonschema_description:"structured (JSON, default) or text."`
}

type queryRecipesInput struct {
	Cuisine        string `json:"cuisine,omitempty" jsonschema_description:"Filter by cuisine (italian, mediterranean)."`
	MaxPrepMinutes int    `json:"max_prep_minutes,omitempty" jsonschema_description:"Only recipes at or under this prep time."`
	OutputFormat   string `json:"output_format,omitempty" jsonschema_description:"structured (JSON, default) or text."`
}

type recipeDetailsInput struct {
	ID           int    `json:"id,omitempty" jsonschema_description:"Recipe id, when known."`
	DishName     string `json:"dish_name,omitempty" jsonschema_description:"Recipe name or part of it."`
	OutputFormat string `json:"output_format,omitempty" jsonschema_description:"structured (JSON, default) or text."`
}

type queryMenuInput struct {
	MenuDate       string  `json:"menu_date,omitempty" jsonschema_description:"Menu date, YYYY-MM-DD."`
	Location       string  `json:"location,omitempty" jsonschema_description:"Dining location (main dining, terrace)."`
	CategoryFilter string  `json:"category_filter,omitempty" jsonschema_description:"Dish category (starter, main, dessert)."`
	DietaryFilter  string  `json:"dietary_filter,omitempty" jsonschema_description:"Dietary need (vegan, vegetarian, gluten-free, dairy-free)."`
	MinPrice       float64 `json:"min_price,omitempty" jsonschema_description:"Lowest acceptable price."`
	MaxPrice       float64 `json:"max_price,omitempty" jsonschema_description:"Highest acceptable price."`
	OutputFormat   string  `json:"output_format,omitempty" jsonschema_description:"structured (JSON, default) or text."`
}

type menuItemDetailsInput struct {
	ID           int    `json:"id,omitempty" jsonschema_description:"Menu item id, when known."`
	DishName     string `json:"dish_name,omitempty" jsonschema_description:"Dish name or part of it."`
	OutputFormat string `json:"output_format,omitempty" jsonschema_description:"structured (JSON, default) or text."`
}

// CatalogTools binds the data-lookup definitions to one catalog.
func CatalogTools(cat *catalog.Catalog) []Definition {
	return []Definition{
		{
			Name:        persona.ToolQueryEmployees,
			Description: "List restaurant staff, optionally filtered by role and shift.",
			InputSchema: GenerateSchema[queryEmployeesInput](),
			Personas:    staffOnly,
			Invoke: func(ctx context.Context, _ string, args map[string]any) (string, error) {
				emps, err := cat.QueryEmployees(ctx, stringArg(args, "role"), stringArg(args, "shift"))
				if err != nil {
					return "", err
				}
				if len(emps) == 0 {
					return "No employees match.", nil
				}
				if structured(args) {
					return marshal(emps)
				}
				var b strings.Builder
				for _, e := range emps {
					fmt.Fprintf(&b, "%s - %s, %s shift, hired %s\n", e.Name, e.Role, e.Shift, e.HireDate)
				}
				return b.String(), nil
			},
		},
		{
			Name:        persona.ToolEmployeePerformance,
			Description: "Performance stats for one employee, or the whole team ranked best first.",
			InputSchema: GenerateSchema[employeePerformanceInput](),
			Personas:    staffOnly,
			Invoke: func(ctx context.Context, _ string, args map[string]any) (string, error) {
				emps, err := cat.EmployeePerformance(ctx, stringArg(args, "name"))
				if err != nil {
					return "", err
				}
				if len(emps) == 0 {
					return "No employees match.", nil
				}
				if structured(args) {
					return marshal(emps)
				}
				var b strings.Builder
				for _, e := range emps {
					fmt.Fprintf(&b, "%s (%s): score %.1f, %d orders handled\n", e.Name, e.Role, e.PerformanceScore, e.OrdersHandled)
				}
				return b.String(), nil
			},
		},
		{
			Name:        persona.ToolQueryInventory,
			Description: "List storage inventory, optionally filtered by category and location.",
			InputSchema: GenerateSchema[queryInventoryInput](),
			Personas:    staffOnly,
			Invoke: func(ctx context.Context, _ string, args map[string]any) (string, error) {
				items, err := cat.QueryInventory(ctx, stringArg(args, "category"), stringArg(args, "location"))
				if err != nil {
					return "", err
				}
				if len(items) == 0 {
					return "No inventory lines match.", nil
				}
				if structured(args) {
					return marshal(items)
				}
				var b strings.Builder
				for _, it := range items {
					fmt.Fprintf(&b, "%s: %.1f %s in %s (reorder at %.1f)\n", it.Item, it.Quantity, it.Unit, it.Location, it.ReorderLevel)
				}
				return b.String(), nil
			},
		},
		{
			Name:        persona.ToolLowStockAlerts,
			Description: "Inventory lines at or below their reorder level, most depleted first.",
			InputSchema: GenerateSchema[lowStockInput](),
			Personas:    staffOnly,
			Invoke: func(ctx context.Context, _ string, args map[string]any) (string, error) {
				items, err := cat.LowStockAlerts(ctx)
				if err != nil {
					return "", err
				}
				if len(items) == 0 {
					return "All stock levels are healthy.", nil
				}
				if structured(args) {
					return marshal(items)
				}
				var b strings.Builder
				for _, it := range items {
					fmt.Fprintf(&b, "LOW: %s at %.1f %s (reorder level %.1f)\n", it.Item, it.Quantity, it.Unit, it.ReorderLevel)
				}
				return b.String(), nil
			},
		},
		{
			Name:        persona.ToolQueryRecipes,
			Description: "List kitchen recipes, optionally filtered by cuisine and prep-time ceiling.",
			InputSchema: GenerateSchema[queryRecipesInput](),
			Personas:    staffOnly,
			Invoke: func(ctx context.Context, _ string, args map[string]any) (string, error) {
				recipes, err := cat.QueryRecipes(ctx, stringArg(args, "cuisine"), int(intArg(args, "max_prep_minutes")))
				if err != nil {
					return "", err
				}
				if len(recipes) == 0 {
					return "No recipes match.", nil
				}
				if structured(args) {
					return marshal(recipes)
				}
				var b strings.Builder
				for _, r := range recipes {
					fmt.Fprintf(&b, "%s (%s, %d min, %s)\n", r.Name, r.Cuisine, r.PrepMinutes, r.Difficulty)
				}
				return b.String(), nil
			},
		},
		{
			Name:        persona.ToolRecipeDetails,
			Description: "Full detail for one recipe, by id or dish name, including directions.",
			InputSchema: GenerateSchema[recipeDetailsInput](),
			Personas:    staffOnly,
			Invoke: func(ctx context.Context, _ string, args map[string]any) (string, error) {
				r, err := cat.RecipeDetails(ctx, intArg(args, "id"), stringArg(args, "dish_name"))
				if err != nil {
					return "", err
				}
				if r == nil {
					return "No such recipe.", nil
				}
				if structured(args) {
					return marshal(r)
				}
				return fmt.Sprintf("%s (%s, %d min, %s)\nIngredients: %s\nDirections: %s\n",
					r.Name, r.Cuisine, r.PrepMinutes, r.Difficulty, r.Ingredients, r.Directions), nil
			},
		},
		{
			Name:        persona.ToolQueryMenu,
			Description: "Today's published menu, filterable by date, location, category, dietary need, and price range.",
			InputSchema: GenerateSchema[queryMenuInput](),
			Personas:    bothPersonas,
			Invoke: func(ctx context.Context, _ string, args map[string]any) (string, error) {
				items, err := cat.QueryMenu(ctx, catalog.MenuFilter{
					Date:     stringArg(args, "menu_date"),
					Location: stringArg(args, "location"),
					Category: stringArg(args, "category_filter"),
					Dietary:  stringArg(args, "dietary_filter"),
					MinPrice: floatArg(args, "min_price"),
					MaxPrice: floatArg(args, "max_price"),
				})
				if err != nil {
					return "", err
				}
				if len(items) == 0 {
					return "No menu items match.", nil
				}
				if structured(args) {
					return marshal(items)
				}
				var b strings.Builder
				for _, m := range items {
					fmt.Fprintf(&b, "%s (%s) - %.2f", m.Name, m.Category, m.Price)
					if m.Dietary != "" {
						fmt.Fprintf(&b, " [%s]", m.Dietary)
					}
					b.WriteString("\n")
				}
				return b.String(), nil
			},
		},
		{
			Name:        persona.ToolMenuItemDetails,
			Description: "Full detail for one menu item, by id or dish name.",
			InputSchema: GenerateSchema[menuItemDetailsInput](),
			Personas:    bothPersonas,
			Invoke: func(ctx context.Context, _ string, args map[string]any) (string, error) {
				m, err := cat.MenuItemDetails(ctx, intArg(args, "id"), stringArg(args, "dish_name"))
				if err != nil {
					return "", err
				}
				if m == nil {
					return "That dish is not on the menu.", nil
				}
				if structured(args) {
					return marshal(m)
				}
				out := fmt.Sprintf("%s (%s) - %.2f\n%s\n", m.Name, m.Category, m.Price, m.Description)
				if m.Dietary != "" {
					out += "Dietary: " + m.Dietary + "\n"
				}
				return out, nil
			},
		},
	}
}
