package task

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/kaptinlin/jsonschema"
)

// ValidateInput checks an execution input against the definition's input
// schema. A definition without a schema accepts any input.
func (d *Definition) ValidateInput(input map[string]any) error {
	if len(d.InputSchema) == 0 {
		return nil
	}
	schemaBytes, err := json.Marshal(d.InputSchema)
	if err != nil {
		return fmt.Errorf("failed to compile input schema: %w", err)
	}
	schema, err := jsonschema.NewCompiler().Compile(schemaBytes)
	if err != nil {
		return fmt.Errorf("failed to compile input schema: %w", err)
	}
	normalized, err := normalize(input)
	if err != nil {
		return err
	}
	result := schema.Validate(normalized)
	if result.Valid {
		return nil
	}
	messages := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		messages = append(messages, e.Error())
	}
	sort.Strings(messages)
	return fmt.Errorf("invalid task input: %s", strings.Join(messages, "; "))
}

// normalize converts typed Go values such as []string into their generic JSON
// form before validation.
func normalize(input map[string]any) (map[string]any, error) {
	data, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to encode task input: %w", err)
	}
	out := make(map[string]any)
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode task input: %w", err)
	}
	return out, nil
}
