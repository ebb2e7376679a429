package mcp

import (
	"encoding/json"

	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/office-mcp/internal/shared/types"
)

// typeAny marks parameters that accept any JSON value
const typeAny = "any"

// InputSchema renders tool parameters as a JSON Schema object
func InputSchema(params []types.Parameter) (json.RawMessage, error) {
	properties := make(map[string]interface{}, len(params))
	required := []string{}

	for _, p := range params {
		prop := map[string]interface{}{}
		if p.Type != "" && p.Type != typeAny {
			prop["type"] = p.Type
		}
		if p.Type == "array" {
			prop["items"] = map[string]interface{}{}
		}
		if p.Description != "" {
			prop["description"] = p.Description
		}
		if len(p.Enum) > 0 {
			prop["enum"] = p.Enum
		}
		if p.Default != nil {
			prop["default"] = p.Default
		}
		properties[p.Name] = prop

		if p.Required {
			required = append(required, p.Name)
		}
	}

	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}

	data, err := sonic.Marshal(schema)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

func encodeText(data map[string]interface{}) (string, error) {
	return sonic.ConfigStd.MarshalToString(data)
}
