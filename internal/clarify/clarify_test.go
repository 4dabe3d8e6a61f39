package clarify

import (
	"testing"

	"github.com/maitredhq/maitred/internal/persona"
)

func TestCheck_SingleItemTools(t *testing.T) {
	req := Check(persona.ToolMenuItemDetails, map[string]any{"output_format": "structured"})
	if req == nil {
		t.Fatal("missing dish reference should require clarification")
	}
	if req.Field != "dish_name" {
		t.Errorf("field = %s", req.Field)
	}

	if req := Check(persona.ToolMenuItemDetails, map[string]any{"dish_name": "Tiramisu"}); req != nil {
		t.Errorf("dish_name present, got %+v", req)
	}
	if req := Check(persona.ToolRecipeDetails, map[string]any{"id": 7}); req != nil {
		t.Errorf("id present, got %+v", req)
	}
	if req := Check(persona.ToolRecipeDetails, map[string]any{"dish_name": ""}); req == nil {
		t.Error("empty dish_name counts as missing")
	}
}

func TestCheck_MenuNeedsScope(t *testing.T) {
	if req := Check(persona.ToolQueryMenu, map[string]any{"output_format": "structured"}); req == nil {
		t.Fatal("unscoped menu query should require clarification")
	}
	for _, f := range []string{"menu_date", "location", "category_filter", "max_price", "dietary_filter"} {
		if req := Check(persona.ToolQueryMenu, map[string]any{f: "x"}); req != nil {
			t.Errorf("%s scopes the query, got %+v", f, req)
		}
	}
}

func TestCheck_OtherToolsPass(t *testing.T) {
	for _, tool := range []string{
		persona.ToolQueryEmployees,
		persona.ToolQueryInventory,
		persona.ToolLowStockAlerts,
		persona.ToolQueryRecipes,
	} {
		if req := Check(tool, nil); req != nil {
			t.Errorf("%s: got %+v", tool, req)
		}
	}
	if req := Check("", nil); req != nil {
		t.Errorf("no tool, got %+v", req)
	}
}
