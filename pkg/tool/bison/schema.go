package bison

import "maps"

func object(required []string, properties map[string]any) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}

	if len(required) > 0 {
		schema["required"] = required
	}

	return schema
}

func prop(kind, description string, extra ...map[string]any) map[string]any {
	p := map[string]any{
		"type":        kind,
		"description": description,
	}

	for _, e := range extra {
		maps.Copy(p, e)
	}

	return p
}

func integer(description string) map[string]any {
	return prop("integer", description, map[string]any{"minimum": 1})
}

func integers(description string) map[string]any {
	return prop("array", description, map[string]any{
		"items": map[string]any{"type": "integer", "minimum": 1},
	})
}

func str(description string, enum ...string) map[string]any {
	if len(enum) == 0 {
		return prop("string", description)
	}

	return prop("string", description, map[string]any{"enum": enum})
}

func boolean(description string, def bool) map[string]any {
	return prop("boolean", description, map[string]any{"default": def})
}

func date(description string) map[string]any {
	return prop("string", description+" (YYYY-MM-DD)", map[string]any{
		"pattern": `^\d{4}-\d{2}-\d{2}$`,
	})
}
