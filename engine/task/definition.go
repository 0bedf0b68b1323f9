package task

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

const redactedValue = "[REDACTED]"

// Definition is the parsed workflow submitted to the remote service when a
// task is created. Main holds step maps whose semantics belong to the service.
type Definition struct {
	Name        string           `json:"name"                   yaml:"name"`
	Description string           `json:"description,omitempty"  yaml:"description,omitempty"`
	InputSchema map[string]any   `json:"input_schema,omitempty" yaml:"input_schema,omitempty"`
	Tools       []Tool           `json:"tools,omitempty"        yaml:"tools,omitempty"`
	Main        []map[string]any `json:"main"                   yaml:"main"`
}

// Tool declares a tool the workflow steps may call.
type Tool struct {
	Name        string       `json:"name"                  yaml:"name"`
	Type        string       `json:"type"                  yaml:"type"`
	Integration *Integration `json:"integration,omitempty" yaml:"integration,omitempty"`
}

// Integration binds a tool to a third-party provider hosted by the service.
type Integration struct {
	Provider string            `json:"provider"        yaml:"provider"`
	Method   string            `json:"method,omitempty" yaml:"method,omitempty"`
	Setup    map[string]string `json:"setup,omitempty"  yaml:"setup,omitempty"`
}

// ToolByProvider returns the first integration tool backed by provider.
func (d *Definition) ToolByProvider(provider string) (*Tool, bool) {
	for i := range d.Tools {
		if d.Tools[i].Integration != nil && d.Tools[i].Integration.Provider == provider {
			return &d.Tools[i], true
		}
	}
	return nil, false
}

// Redacted returns a copy of the definition with every setup value masked.
// Step maps are shared with the receiver.
func (d *Definition) Redacted() *Definition {
	out := *d
	out.Tools = make([]Tool, len(d.Tools))
	for i, tool := range d.Tools {
		out.Tools[i] = tool
		if tool.Integration == nil {
			continue
		}
		integration := *tool.Integration
		integration.Setup = make(map[string]string, len(tool.Integration.Setup))
		for key, value := range tool.Integration.Setup {
			if value != "" {
				value = redactedValue
			}
			integration.Setup[key] = value
		}
		out.Tools[i].Integration = &integration
	}
	return &out
}

// YAML marshals the definition for display.
func (d *Definition) YAML() ([]byte, error) {
	data, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal task definition: %w", err)
	}
	return data, nil
}
