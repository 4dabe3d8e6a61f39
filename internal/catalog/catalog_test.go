package catalog_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maitredhq/maitred/internal/catalog"
)

func openSeeded(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Open(filepath.Join(t.TempDir(), "catalog.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	require.NoError(t, c.Seed(context.Background()))
	return c
}

func TestSeed_Idempotent(t *testing.T) {
	c := openSeeded(t)
	require.NoError(t, c.Seed(context.Background()))

	emps, err := c.QueryEmployees(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, emps, 6, "second seed must not duplicate rows")
}

func TestQueryEmployees(t *testing.T) {
	c := openSeeded(t)
	ctx := context.Background()

	chefs, err := c.QueryEmployees(ctx, "chef", "")
	require.NoError(t, err)
	require.Len(t, chefs, 2)
	for _, e := range chefs {
		assert.Equal(t, "chef", e.Role)
	}

	evening, err := c.QueryEmployees(ctx, "chef", "evening")
	require.NoError(t, err)
	require.Len(t, evening, 1)
	assert.Equal(t, "Marco Rinaldi", evening[0].Name)

	none, err := c.QueryEmployees(ctx, "sommelier", "")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestEmployeePerformance(t *testing.T) {
	c := openSeeded(t)
	ctx := context.Background()

	all, err := c.EmployeePerformance(ctx, "")
	require.NoError(t, err)
	require.NotEmpty(t, all)
	for i := 1; i < len(all); i++ {
		assert.GreaterOrEqual(t, all[i-1].PerformanceScore, all[i].PerformanceScore, "ordered best first")
	}

	one, err := c.EmployeePerformance(ctx, "marco")
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "Marco Rinaldi", one[0].Name)
}

func TestInventoryAndLowStock(t *testing.T) {
	c := openSeeded(t)
	ctx := context.Background()

	dairy, err := c.QueryInventory(ctx, "dairy", "")
	require.NoError(t, err)
	require.Len(t, dairy, 2)

	walkIn, err := c.QueryInventory(ctx, "dairy", "walk-in")
	require.NoError(t, err)
	assert.Len(t, walkIn, 2)

	low, err := c.LowStockAlerts(ctx)
	require.NoError(t, err)
	names := make(map[string]bool, len(low))
	for _, it := range low {
		names[it.Item] = true
		assert.LessOrEqual(t, it.Quantity, it.ReorderLevel)
	}
	assert.True(t, names["Mozzarella di bufala"])
	assert.True(t, names["Fresh basil"])
	assert.True(t, names["Guanciale"])
	assert.False(t, names["Arborio rice"], "well-stocked items never alert")
}

func TestRecipes(t *testing.T) {
	c := openSeeded(t)
	ctx := context.Background()

	italian, err := c.QueryRecipes(ctx, "italian", 0)
	require.NoError(t, err)
	assert.Len(t, italian, 4)

	quick, err := c.QueryRecipes(ctx, "italian", 25)
	require.NoError(t, err)
	for _, r := range quick {
		assert.LessOrEqual(t, r.PrepMinutes, 25)
	}

	byName, err := c.RecipeDetails(ctx, 0, "carbonara")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, "Spaghetti Carbonara", byName.Name)
	assert.NotEmpty(t, byName.Directions, "details include directions")

	byID, err := c.RecipeDetails(ctx, byName.ID, "")
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, byName.Name, byID.Name)

	missing, err := c.RecipeDetails(ctx, 0, "beef wellington")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMenu(t *testing.T) {
	c := openSeeded(t)
	ctx := context.Background()

	desserts, err := c.QueryMenu(ctx, catalog.MenuFilter{Category: "dessert"})
	require.NoError(t, err)
	assert.Len(t, desserts, 2)

	vegan, err := c.QueryMenu(ctx, catalog.MenuFilter{Dietary: "vegan"})
	require.NoError(t, err)
	require.NotEmpty(t, vegan)
	for _, m := range vegan {
		assert.Contains(t, m.Dietary, "vegan")
	}

	cheap, err := c.QueryMenu(ctx, catalog.MenuFilter{MaxPrice: 10})
	require.NoError(t, err)
	for _, m := range cheap {
		assert.LessOrEqual(t, m.Price, 10.0)
	}

	all, err := c.QueryMenu(ctx, catalog.MenuFilter{})
	require.NoError(t, err)
	for _, m := range all {
		assert.True(t, m.Available, "unavailable dishes never appear")
		assert.NotEqual(t, "Truffle Tagliatelle", m.Name)
	}

	dish, err := c.MenuItemDetails(ctx, 0, "tiramisu")
	require.NoError(t, err)
	require.NotNil(t, dish)
	assert.Equal(t, "Tiramisu", dish.Name)

	missing, err := c.MenuItemDetails(ctx, 0, "sushi platter")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
