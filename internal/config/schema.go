package config

import (
	"bytes"
	"encoding/json"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var projectSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"include": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items":    map[string]any{"type": "string", "minLength": 1},
		},
		"exclude": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string", "minLength": 1},
		},
		"suffix": map[string]any{
			"type":      "string",
			"minLength": 1,
			"pattern":   `^[^/\\]+$`,
		},
		"out_dir":  map[string]any{"type": "string"},
		"on_error": map[string]any{"enum": []any{OnErrorFail, OnErrorCopy, OnErrorSkip}},
		"jobs":     map[string]any{"type": "integer", "minimum": 1},
		"report":   map[string]any{"type": "string"},
		"watch": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"interval": map[string]any{"type": "string", "minLength": 1},
			},
		},
	},
	"required": []any{"include", "suffix", "on_error", "jobs"},
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	b, err := json.Marshal(projectSchema)
	if err != nil {
		return nil, err
	}
	if err := c.AddResource("minify.schema.json", bytes.NewReader(b)); err != nil {
		return nil, err
	}
	return c.Compile("minify.schema.json")
})
