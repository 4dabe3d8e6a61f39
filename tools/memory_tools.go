package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/maitredhq/maitred/memory"
)

type saveMemoryInput struct {
	Content    string `json:"content" jsonschema_description:"The fact to remember, as key:value (e.g. preference:spicy food)."`
	Tags       string `json:"tags,omitempty" jsonschema_description:"Optional comma-separated tags."`
	Importance int    `json:"importance,omitempty" jsonschema_description:"1 (trivia) to 5 (critical); defaults to 2."`
}

type listMemoriesInput struct {
	Limit int `json:"limit,omitempty" jsonschema_description:"Maximum records to return (default 20)."`
}

type searchMemoryInput struct {
	Query string `json:"query" jsonschema_description:"Text to match against stored facts, case-insensitively."`
	Limit int    `json:"limit,omitempty" jsonschema_description:"Maximum records to return (default 5)."`
}

type deleteMemoryInput struct {
	ID string `json:"id" jsonschema_description:"The record id to delete."`
}

// MemoryTools binds the memory-ledger operations to one store. Every call is
// scoped to the invoking thread; there is no cross-thread access.
func MemoryTools(store *memory.Store) []Definition {
	return []Definition{
		{
			Name:        "save_memory",
			Description: "Persist one durable fact about the current conversation.",
			InputSchema: GenerateSchema[saveMemoryInput](),
			Personas:    bothPersonas,
			Invoke: func(ctx context.Context, threadID string, args map[string]any) (string, error) {
				content := strings.TrimSpace(stringArg(args, "content"))
				if content == "" {
					return "", errors.New("save_memory requires content")
				}
				var tags []string
				for _, t := range strings.Split(stringArg(args, "tags"), ",") {
					if t = strings.TrimSpace(t); t != "" {
						tags = append(tags, t)
					}
				}
				importance := int(intArg(args, "importance"))
				if importance == 0 {
					importance = 2
				}
				id, err := store.Add(ctx, threadID, content, tags, importance, memory.SourceAssistant)
				if err != nil {
					return "", err
				}
				return "Saved memory " + id, nil
			},
		},
		{
			Name:        "list_memories",
			Description: "List stored facts for the current conversation, newest first.",
			InputSchema: GenerateSchema[listMemoriesInput](),
			Personas:    bothPersonas,
			Invoke: func(ctx context.Context, threadID string, args map[string]any) (string, error) {
				limit := int(intArg(args, "limit"))
				if limit <= 0 {
					limit = 20
				}
				recs, err := store.List(ctx, threadID, limit)
				if err != nil {
					return "", err
				}
				return renderRecords(recs), nil
			},
		},
		{
			Name:        "search_memory",
			Description: "Search stored facts for the current conversation.",
			InputSchema: GenerateSchema[searchMemoryInput](),
			Personas:    bothPersonas,
			Invoke: func(ctx context.Context, threadID string, args map[string]any) (string, error) {
				query := strings.TrimSpace(stringArg(args, "query"))
				if query == "" {
					return "", errors.New("search_memory requires a query")
				}
				recs, err := store.Search(ctx, threadID, query, int(intArg(args, "limit")))
				if err != nil {
					return "", err
				}
				return renderRecords(recs), nil
			},
		},
		{
			Name:        "delete_memory",
			Description: "Delete one stored fact by id.",
			InputSchema: GenerateSchema[deleteMemoryInput](),
			Personas:    bothPersonas,
			Invoke: func(ctx context.Context, threadID string, args map[string]any) (string, error) {
				id := strings.TrimSpace(stringArg(args, "id"))
				if id == "" {
					return "", errors.New("delete_memory requires an id")
				}
				ok, err := store.Delete(ctx, threadID, id)
				if err != nil {
					return "", err
				}
				if !ok {
					return "No memory with that id.", nil
				}
				return "Deleted memory " + id, nil
			},
		},
	}
}

func renderRecords(recs []memory.Record) string {
	if len(recs) == 0 {
		return "No memories stored."
	}
	var b strings.Builder
	for _, r := range recs {
		fmt.Fprintf(&b, "[%s] %s (importance %d, %s)\n", r.ID, r.Content, r.Importance, r.Source)
	}
	return b.String()
}
