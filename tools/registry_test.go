package tools_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/maitredhq/maitred/internal/catalog"
	"github.com/maitredhq/maitred/internal/persona"
	"github.com/maitredhq/maitred/memory"
	"github.com/maitredhq/maitred/tools"
)

func newFixtures(t *testing.T) (*catalog.Catalog, *memory.Store) {
	t.Helper()
	dir := t.TempDir()
	cat, err := catalog.Open(filepath.Join(dir, "catalog.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = cat.Close() })
	require.NoError(t, cat.Seed(context.Background()))

	store, err := memory.Open(filepath.Join(dir, "memories.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return cat, store
}

func find(t *testing.T, defs []tools.Definition, name string) tools.Definition {
	t.Helper()
	for _, d := range defs {
		if d.Name == name {
			return d
		}
	}
	t.Fatalf("tool %s not in registry", name)
	return tools.Definition{}
}

func TestRegistry_PersonaScope(t *testing.T) {
	cat, store := newFixtures(t)

	internal := tools.Registry(persona.Internal, cat, store)
	assert.Len(t, internal, 12, "8 lookups + 4 memory ops")

	external := tools.Registry(persona.External, cat, store)
	assert.Len(t, external, 6, "2 menu lookups + 4 memory ops")
	names := map[string]bool{}
	for _, d := range external {
		names[d.Name] = true
	}
	assert.True(t, names[persona.ToolQueryMenu])
	assert.True(t, names[persona.ToolMenuItemDetails])
	assert.False(t, names[persona.ToolQueryEmployees])
	assert.False(t, names[persona.ToolQueryInventory])
}

func TestCatalogTools_StructuredOutput(t *testing.T) {
	cat, store := newFixtures(t)
	defs := tools.Registry(persona.Internal, cat, store)
	ctx := context.Background()

	out, err := find(t, defs, persona.ToolQueryEmployees).
		Invoke(ctx, "t1", map[string]any{"role": "chef", "output_format": "structured"})
	require.NoError(t, err)
	require.True(t, gjson.Valid(out), "structured output is JSON: %s", out)
	assert.Equal(t, int64(2), gjson.Parse(out).Get("#").Int())

	out, err = find(t, defs, persona.ToolQueryEmployees).
		Invoke(ctx, "t1", map[string]any{"role": "chef", "output_format": "text"})
	require.NoError(t, err)
	assert.False(t, gjson.Valid(out) && strings.HasPrefix(strings.TrimSpace(out), "["))
	assert.Contains(t, out, "Marco Rinaldi")
}

func TestCatalogTools_DishLookup(t *testing.T) {
	cat, store := newFixtures(t)
	defs := tools.Registry(persona.External, cat, store)
	ctx := context.Background()

	out, err := find(t, defs, persona.ToolMenuItemDetails).
		Invoke(ctx, "t1", map[string]any{"dish_name": "tiramisu"})
	require.NoError(t, err)
	assert.Equal(t, "Tiramisu", gjson.Get(out, "name").String())

	out, err = find(t, defs, persona.ToolMenuItemDetails).
		Invoke(ctx, "t1", map[string]any{"dish_name": "sushi platter"})
	require.NoError(t, err)
	assert.Equal(t, "That dish is not on the menu.", out)
}

func TestCatalogTools_MenuFilters(t *testing.T) {
	cat, store := newFixtures(t)
	defs := tools.Registry(persona.External, cat, store)
	ctx := context.Background()

	out, err := find(t, defs, persona.ToolQueryMenu).
		Invoke(ctx, "t1", map[string]any{"dietary_filter": "vegan", "max_price": 10.0})
	require.NoError(t, err)
	require.True(t, gjson.Valid(out))
	gjson.Parse(out).ForEach(func(_, item gjson.Result) bool {
		assert.Contains(t, item.Get("dietary").String(), "vegan")
		assert.LessOrEqual(t, item.Get("price").Float(), 10.0)
		return true
	})
}

func TestMemoryTools_Lifecycle(t *testing.T) {
	cat, store := newFixtures(t)
	defs := tools.Registry(persona.External, cat, store)
	ctx := context.Background()

	out, err := find(t, defs, "save_memory").
		Invoke(ctx, "t1", map[string]any{"content": "preference:window seat", "tags": "preference", "importance": 3})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "Saved memory "))
	id := strings.TrimPrefix(out, "Saved memory ")

	out, err = find(t, defs, "list_memories").Invoke(ctx, "t1", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "preference:window seat")

	out, err = find(t, defs, "search_memory").
		Invoke(ctx, "t1", map[string]any{"query": "WINDOW"})
	require.NoError(t, err)
	assert.Contains(t, out, "window seat")

	// Another thread sees nothing.
	out, err = find(t, defs, "list_memories").Invoke(ctx, "t2", nil)
	require.NoError(t, err)
	assert.Equal(t, "No memories stored.", out)

	out, err = find(t, defs, "delete_memory").
		Invoke(ctx, "t1", map[string]any{"id": id})
	require.NoError(t, err)
	assert.Equal(t, "Deleted memory "+id, out)

	out, err = find(t, defs, "delete_memory").
		Invoke(ctx, "t1", map[string]any{"id": id})
	require.NoError(t, err)
	assert.Equal(t, "No memory with that id.", out)
}

func TestMemoryTools_Validation(t *testing.T) {
	cat, store := newFixtures(t)
	defs := tools.Registry(persona.External, cat, store)
	ctx := context.Background()

	_, err := find(t, defs, "save_memory").Invoke(ctx, "t1", map[string]any{})
	assert.Error(t, err)
	_, err = find(t, defs, "search_memory").Invoke(ctx, "t1", map[string]any{"query": "  "})
	assert.Error(t, err)
	_, err = find(t, defs, "delete_memory").Invoke(ctx, "t1", map[string]any{})
	assert.Error(t, err)
}
