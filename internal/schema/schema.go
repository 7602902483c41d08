// Package schema validates template documents before they are trusted.
//
// Validation runs in two stages: a byte-size ceiling rejected before any
// parsing, then structural JSON-schema validation of required keys, bounded
// lengths, and enum membership.
package schema

import (
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"

	apperrors "github.com/promptforge/prompt-forge/internal/errors"
)

// MaxDocumentBytes is the serialized-document ceiling, enforced before the
// payload reaches the JSON parser.
const MaxDocumentBytes = 1_000_000

const templateSchema = `{
  "type": "object",
  "required": ["name", "category", "template_id", "versions"],
  "properties": {
    "template_id": {
      "type": "string",
      "pattern": "^[a-zA-Z0-9_-]+$",
      "minLength": 1,
      "maxLength": 100
    },
    "name": {
      "type": "string",
      "minLength": 1,
      "maxLength": 200
    },
    "category": {
      "type": "string",
      "enum": ["기획", "프로그램", "아트", "QA", "전체"]
    },
    "current_version": {
      "type": "integer",
      "minimum": 1
    },
    "versions": {
      "type": "array",
      "minItems": 1,
      "maxItems": 100,
      "items": {
        "type": "object",
        "required": ["version", "components"],
        "properties": {
          "version": {
            "type": "integer",
            "minimum": 1
          },
          "components": {
            "type": "object",
            "required": ["goal"],
            "properties": {
              "goal": {"type": "string", "minLength": 1, "maxLength": 500},
              "document": {"type": "string", "maxLength": 10000},
              "output": {"type": "string", "maxLength": 1000},
              "role": {
                "type": "array",
                "maxItems": 10,
                "items": {"type": "string", "maxLength": 500}
              },
              "context": {
                "type": "array",
                "maxItems": 10,
                "items": {"type": "string", "maxLength": 500}
              },
              "rule": {
                "type": "array",
                "maxItems": 10,
                "items": {"type": "string", "maxLength": 500}
              }
            }
          }
        }
      }
    },
    "tags": {
      "type": "array",
      "maxItems": 10,
      "items": {"type": "string", "maxLength": 50}
    },
    "metadata": {
      "type": "object"
    }
  }
}`

var compiled = jsonschema.MustCompileString("template.json", templateSchema)

// ValidateTemplateDocument checks a raw template document against the size
// ceiling and the structural schema. A nil return means the bytes are safe
// to deserialize into a template.
func ValidateTemplateDocument(data []byte) error {
	if len(data) > MaxDocumentBytes {
		return apperrors.PayloadTooLargeError(len(data), MaxDocumentBytes)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeFileCorrupted, "Invalid JSON format")
	}

	if err := compiled.Validate(doc); err != nil {
		return apperrors.SchemaViolationError(err.Error())
	}

	return nil
}
