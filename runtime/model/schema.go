package model

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrNoJSONObject indicates ExtractJSONObject could not find a `{` followed
// later by a `}` in the text.
var ErrNoJSONObject = errors.New("model: no JSON object found in response")

// ExtractJSONObject strips markdown code fences and locates the outermost
// `{ ... }` span. It returns the raw bytes of the outermost JSON object
// found in text.
func ExtractJSONObject(text string) ([]byte, error) {
	s := stripCodeFences(text)
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start == -1 || end == -1 || end < start {
		return nil, ErrNoJSONObject
	}
	return []byte(s[start : end+1]), nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl != -1 {
		// Drop an optional language tag on the fence's opening line (```json).
		firstLine := s[:nl]
		if !strings.ContainsAny(firstLine, "{}\"") {
			s = s[nl+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ValidateJSON compiles schemaJSON (a JSON Schema document) and validates raw
// against it, returning a typed validation error on mismatch. Never attempts
// partial parse recovery: a schema failure is handled entirely by the
// caller's documented fallback, not by this helper.
func ValidateJSON(schemaJSON []byte, raw []byte) error {
	if len(schemaJSON) == 0 {
		return nil
	}
	compiler := jsonschema.NewCompiler()
	var schemaDoc any
	if err := json.Unmarshal(schemaJSON, &schemaDoc); err != nil {
		return err
	}
	if err := compiler.AddResource("schema.json", schemaDoc); err != nil {
		return err
	}
	sch, err := compiler.Compile("schema.json")
	if err != nil {
		return err
	}
	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return err
	}
	return sch.Validate(instance)
}

// ParseJSON extracts the outermost JSON object from text, validates it
// against schemaJSON (when non-empty), and unmarshals it into out. Use this
// for every LLM node that parses a strict-JSON response (assessment, gap
// analysis, query-type detection, quick-answer check, org-intent).
func ParseJSON(text string, schemaJSON []byte, out any) error {
	raw, err := ExtractJSONObject(text)
	if err != nil {
		return err
	}
	if err := ValidateJSON(schemaJSON, raw); err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
