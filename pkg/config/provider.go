package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// cliProvider implements Source interface for CLI flags already keyed by config path.
type cliProvider struct {
	flags map[string]any
}

// NewCLIProvider creates a configuration source from flag values keyed by
// dotted config path, for example "poll.interval".
func NewCLIProvider(flags map[string]any) Source {
	return &cliProvider{
		flags: flags,
	}
}

// Load returns the CLI flags as nested configuration data.
func (c *cliProvider) Load() (map[string]any, error) {
	config := make(map[string]any)
	for path, value := range c.flags {
		if err := setNested(config, path, value); err != nil {
			return nil, fmt.Errorf("failed to set CLI flag %s: %w", path, err)
		}
	}
	return config, nil
}

// Type returns the source type identifier.
func (c *cliProvider) Type() SourceType {
	return SourceCLI
}

// setNested sets a value in a nested map structure using dot notation.
// It returns an error if a path conflict is encountered.
func setNested(m map[string]any, path string, value any) error {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, ".")
	current := m
	for i := 0; i < len(parts)-1; i++ {
		part := parts[i]
		if _, exists := current[part]; !exists {
			current[part] = make(map[string]any)
		}
		next, ok := current[part].(map[string]any)
		if !ok {
			return fmt.Errorf("configuration conflict: key %q is not a map", strings.Join(parts[:i+1], "."))
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
	return nil
}

// yamlProvider implements Source interface for YAML files.
type yamlProvider struct {
	path string
}

// NewYAMLProvider creates a new YAML file configuration source. A missing
// file yields no values.
func NewYAMLProvider(path string) Source {
	return &yamlProvider{
		path: path,
	}
}

// Load reads configuration from a YAML file.
func (y *yamlProvider) Load() (map[string]any, error) {
	if y.path == "" {
		return make(map[string]any), nil
	}
	data, err := os.ReadFile(y.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]any), nil
		}
		return nil, fmt.Errorf("failed to read YAML file: %w", err)
	}
	var config map[string]any
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML file: %w", err)
	}
	return filterNilValues(config), nil
}

// filterNilValues recursively removes nil values from a map
func filterNilValues(m map[string]any) map[string]any {
	result := make(map[string]any, len(m))
	for k, v := range m {
		if v == nil {
			continue
		}
		if nested, ok := v.(map[string]any); ok {
			result[k] = filterNilValues(nested)
			continue
		}
		result[k] = v
	}
	return result
}

// Type returns the source type identifier.
func (y *yamlProvider) Type() SourceType {
	return SourceYAML
}
