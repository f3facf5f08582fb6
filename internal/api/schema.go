// internal/api/schema.go
package api

import (
	"github.com/xeipuuv/gojsonschema"
)

const harmonyCheckSchemaJSON = `{
	"type": "object",
	"required": ["references"],
	"properties": {
		"references": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "status"],
				"properties": {
					"id": {"type": "string", "minLength": 1},
					"url": {"type": "string"},
					"name": {"type": "string"},
					"status": {"type": "string", "enum": ["pending", "processing", "ready", "error"]},
					"tokens": {"type": "object"}
				}
			}
		},
		"sectionMapping": {
			"type": "object",
			"additionalProperties": {"type": "string"}
		},
		"options": {
			"type": "object",
			"properties": {
				"colorWeight": {"type": "number", "minimum": 0, "maximum": 1},
				"typographyWeight": {"type": "number", "minimum": 0, "maximum": 1},
				"spacingWeight": {"type": "number", "minimum": 0, "maximum": 1},
				"colorThreshold": {"type": "number", "minimum": 0, "maximum": 100},
				"typographyThreshold": {"type": "number", "minimum": 0, "maximum": 100},
				"spacingThreshold": {"type": "number", "minimum": 0, "maximum": 100}
			}
		}
	}
}`

const mergeSchemaJSON = `{
	"type": "object",
	"required": ["references", "strategy"],
	"properties": {
		"references": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id"],
				"properties": {
					"id": {"type": "string", "minLength": 1}
				}
			}
		},
		"strategy": {
			"type": "object",
			"required": ["base"],
			"properties": {
				"base": {"type": "string", "minLength": 1},
				"overrides": {
					"type": "array",
					"items": {
						"type": "object",
						"required": ["referenceId", "path"],
						"properties": {
							"referenceId": {"type": "string"},
							"path": {"type": "string"}
						}
					}
				}
			}
		},
		"options": {
			"type": "object",
			"properties": {
				"strict": {"type": "boolean"}
			}
		}
	}
}`

var (
	harmonyCheckSchema = mustSchema(harmonyCheckSchemaJSON)
	mergeSchema        = mustSchema(mergeSchemaJSON)
)

func mustSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(err)
	}
	return schema
}

// validateSchema returns the schema violations for a request body, or a
// single entry when the body is not valid JSON at all.
func validateSchema(schema *gojsonschema.Schema, body []byte) []string {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return []string{"body is not valid JSON: " + err.Error()}
	}
	if result.Valid() {
		return nil
	}
	violations := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		violations = append(violations, e.String())
	}
	return violations
}
