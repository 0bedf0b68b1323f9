package config

import (
	"context"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// loader implements the Service interface on top of koanf.
type loader struct {
	validator *validator.Validate
}

// sensitiveStringDecodeHook is a mapstructure decode hook that converts strings to SensitiveString
func sensitiveStringDecodeHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(SensitiveString("")) {
		return data, nil
	}

	switch v := data.(type) {
	case string:
		return SensitiveString(v), nil
	case []byte:
		return SensitiveString(v), nil
	default:
		return data, nil
	}
}

// NewService creates a new configuration service with validation support.
func NewService() Service {
	return &loader{
		validator: validator.New(),
	}
}

// Load resolves configuration with precedence defaults < file sources < environment < CLI sources.
func (l *loader) Load(_ context.Context, sources ...Source) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	var cliSources []Source
	for _, source := range sources {
		if source == nil || source.Type() == SourceEnv {
			continue
		}
		if source.Type() == SourceCLI {
			cliSources = append(cliSources, source)
			continue
		}
		if err := loadSource(k, source); err != nil {
			return nil, err
		}
	}

	if err := loadEnvironment(k); err != nil {
		return nil, err
	}

	for _, source := range cliSources {
		if err := loadSource(k, source); err != nil {
			return nil, err
		}
	}

	return l.unmarshalAndValidate(k)
}

// loadEnvironment loads only the variables declared through `env` struct tags.
// Empty variables are treated as unset.
func loadEnvironment(k *koanf.Koanf) error {
	envToPath := GenerateEnvToConfigMap()
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: "",
		TransformFunc: func(key string, value string) (string, any) {
			if value == "" {
				return "", nil
			}
			if configPath, exists := envToPath[key]; exists {
				return configPath, value
			}
			return "", nil
		},
	}), nil); err != nil {
		return fmt.Errorf("failed to load environment variables: %w", err)
	}
	return nil
}

// loadSource loads configuration from a single source.
func loadSource(k *koanf.Koanf, source Source) error {
	data, err := source.Load()
	if err != nil {
		return fmt.Errorf("failed to load from source %s: %w", source.Type(), err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := k.Load(rawMap(data), nil); err != nil {
		return fmt.Errorf("failed to apply source %s: %w", source.Type(), err)
	}
	return nil
}

// unmarshalAndValidate unmarshals the configuration and validates it.
func (l *loader) unmarshalAndValidate(k *koanf.Koanf) (*Config, error) {
	var config Config

	if err := k.UnmarshalWithConf("", &config, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &config,
			TagName:          "koanf",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				sensitiveStringDecodeHook,
			),
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := l.Validate(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration meets all validation requirements.
func (l *loader) Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}
	if err := l.validator.Struct(config); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// rawMap is a koanf.Provider adapter for map[string]any data.
type rawMap map[string]any

func (r rawMap) Read() (map[string]any, error) {
	return r, nil
}

func (r rawMap) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("ReadBytes not implemented")
}
