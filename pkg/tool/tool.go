package tool

import (
	"context"
	"errors"
)

type Tool struct {
	Name        string
	Description string

	Parameters map[string]any
}

var (
	ErrInvalidTool = errors.New("invalid tool")
)

type Provider interface {
	Tools(ctx context.Context) ([]Tool, error)
	Execute(ctx context.Context, name string, parameters map[string]any) (any, error)
}

// NormalizeSchema fills in the object/array defaults MCP clients expect.
func NormalizeSchema(schema map[string]any) map[string]any {
	// Handle empty schema
	if len(schema) == 0 {
		return map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		}
	}

	// Infer type from structure if missing
	if schema["type"] == nil {
		if schema["properties"] != nil {
			schema["type"] = "object"
		} else if schema["items"] != nil {
			schema["type"] = "array"
		} else {
			schema["type"] = "object"
		}
	}

	schemaType, _ := schema["type"].(string)

	switch schemaType {
	case "object":
		if schema["properties"] == nil {
			schema["properties"] = map[string]any{}
		}

	case "array":
		if schema["items"] == nil {
			schema["items"] = map[string]any{"type": "string"}
		}
	}

	return schema
}
