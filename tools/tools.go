// Package tools defines the assistant's capability surface.
//
// Includes:
//   - Definition: name, description, JSON input schema, persona scope, handler.
//   - GenerateSchema[T](): derive JSON Schema from Go structs.
//   - Data lookups over the restaurant catalog (staff, inventory, recipes, menu).
//   - Memory ledger operations (save, list, search, delete) scoped to a thread.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/invopop/jsonschema"

	"github.com/maitredhq/maitred/internal/persona"
)

// Definition describes one invocable capability. Invoke receives the calling
// thread's id so memory tools stay scoped; data lookups ignore it.
type Definition struct {
	Name        string
	Description string
	InputSchema anthropic.ToolInputSchemaParam
	Personas    []persona.Persona
	Invoke      func(ctx context.Context, threadID string, args map[string]any) (string, error)
}

// AllowedFor reports whether p may invoke the tool.
func (d Definition) AllowedFor(p persona.Persona) bool {
	for _, allowed := range d.Personas {
		if allowed == p {
			return true
		}
	}
	return false
}

// GenerateSchema derives the Anthropic tool input schema from a Go struct.
func GenerateSchema[T any]() anthropic.ToolInputSchemaParam {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	return anthropic.ToolInputSchemaParam{
		Properties: schema.Properties,
	}
}

var bothPersonas = []persona.Persona{persona.Internal, persona.External}
var staffOnly = []persona.Persona{persona.Internal}

// stringArg reads a string argument, tolerating numeric values.
func stringArg(args map[string]any, key string) string {
	switch v := args[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}

// intArg reads an integer argument, tolerating JSON numbers and strings.
func intArg(args map[string]any, key string) int64 {
	switch v := args[key].(type) {
	case float64:
		return int64(v)
	case int:
		return int64(v)
	case int64:
		return v
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// floatArg reads a numeric argument, tolerating strings.
func floatArg(args map[string]any, key string) float64 {
	switch v := args[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// structured reports whether the caller asked for machine-readable output.
// It is the default when output_format is absent.
func structured(args map[string]any) bool {
	return stringArg(args, "output_format") != "text"
}

func marshal(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	return string(b), nil
}
