package tools

import (
	"github.com/maitredhq/maitred/internal/catalog"
	"github.com/maitredhq/maitred/internal/persona"
	"github.com/maitredhq/maitred/memory"
)

// Registry returns the definitions p may invoke: the persona's data lookups
// plus the memory operations, which both personas carry.
func Registry(p persona.Persona, cat *catalog.Catalog, store *memory.Store) []Definition {
	all := append(CatalogTools(cat), MemoryTools(store)...)
	out := make([]Definition, 0, len(all))
	for _, d := range all {
		if d.AllowedFor(p) {
			out = append(out, d)
		}
	}
	return out
}
