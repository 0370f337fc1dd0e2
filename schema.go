package kitcompanion

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Feed document schemas. The feeds have no versioning or negotiation; a
// document that fails its schema is treated the same as malformed JSON.

const examplesSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "type", "title", "sender", "body", "isScam", "difficulty", "redFlags", "explanation"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"type": {"enum": ["email", "text", "marketplace", "popup"]},
			"title": {"type": "string", "minLength": 1},
			"sender": {"type": "string"},
			"subject": {"type": "string"},
			"body": {"type": "string", "minLength": 1},
			"isScam": {"type": "boolean"},
			"difficulty": {"enum": ["beginner", "intermediate", "advanced"]},
			"redFlags": {"type": "array", "items": {"type": "string"}},
			"explanation": {"type": "string"},
			"howToSpot": {"type": "string"}
		}
	}
}`

const questionsSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["question", "category", "options", "correctAnswer", "explanation"],
		"properties": {
			"question": {"type": "string", "minLength": 1},
			"category": {"enum": ["email", "text", "marketplace", "popup"]},
			"options": {"type": "array", "items": {"type": "string"}, "minItems": 2},
			"correctAnswer": {"type": "integer", "minimum": 0},
			"explanation": {"type": "string"}
		}
	}
}`

var (
	examplesSchemaLoader  = gojsonschema.NewStringLoader(examplesSchema)
	questionsSchemaLoader = gojsonschema.NewStringLoader(questionsSchema)
)

// ValidateExamplesDocument checks a raw example feed document against the
// feed schema.
func ValidateExamplesDocument(data []byte) error {
	return validateDocument(examplesSchemaLoader, data)
}

// ValidateQuestionsDocument checks a raw question bank document against
// the feed schema. The correctAnswer upper bound depends on the options
// length and is enforced by ParseQuestions, not the schema.
func ValidateQuestionsDocument(data []byte) error {
	return validateDocument(questionsSchemaLoader, data)
}

func validateDocument(schema gojsonschema.JSONLoader, data []byte) error {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("validating feed document: %w", err)
	}
	if !result.Valid() {
		var issues []string
		for _, desc := range result.Errors() {
			issues = append(issues, desc.String())
		}
		return fmt.Errorf("feed document failed schema: %s", strings.Join(issues, "; "))
	}
	return nil
}
