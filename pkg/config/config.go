package config

import (
	"context"
	"time"
)

// Config holds every setting the foodietour CLI reads. Values are resolved by
// the loader from defaults, an optional YAML file, the environment and flags.
type Config struct {
	Julep        JulepConfig        `koanf:"julep"`
	Integrations IntegrationsConfig `koanf:"integrations"`
	Agent        AgentConfig        `koanf:"agent"`
	Poll         PollConfig         `koanf:"poll"`
	Runtime      RuntimeConfig      `koanf:"runtime"`
	CLI          CLIConfig          `koanf:"cli"`
}

// JulepConfig contains the hosted orchestration API settings.
type JulepConfig struct {
	APIKey     SensitiveString `koanf:"api_key"     env:"JULEP_API_KEY"     sensitive:"true"`
	BaseURL    string          `koanf:"base_url"    env:"JULEP_BASE_URL"    validate:"required,url"`
	Timeout    time.Duration   `koanf:"timeout"     env:"JULEP_TIMEOUT"     validate:"gt=0"`
	RetryCount int             `koanf:"retry_count" env:"JULEP_RETRY_COUNT" validate:"gte=0,lte=10"`
}

// IntegrationsConfig contains the keys embedded into the workflow tools.
type IntegrationsConfig struct {
	OpenWeatherMapAPIKey SensitiveString `koanf:"openweathermap_api_key" env:"OPENWEATHERMAP_API_KEY" sensitive:"true"`
	BraveAPIKey          SensitiveString `koanf:"brave_api_key"          env:"BRAVE_API_KEY"          sensitive:"true"`
}

// AgentConfig describes the agent created for every run.
type AgentConfig struct {
	Name  string `koanf:"name"  env:"FOODIETOUR_AGENT_NAME"  validate:"required"`
	Model string `koanf:"model" env:"FOODIETOUR_AGENT_MODEL" validate:"required"`
	About string `koanf:"about" env:"FOODIETOUR_AGENT_ABOUT"`
}

// PollConfig controls the execution tracker. MaxAttempts of zero polls until
// a terminal status is seen or the command is interrupted.
type PollConfig struct {
	Interval    time.Duration `koanf:"interval"     env:"FOODIETOUR_POLL_INTERVAL"     validate:"gt=0"`
	MaxAttempts int           `koanf:"max_attempts" env:"FOODIETOUR_POLL_MAX_ATTEMPTS" validate:"gte=0"`
}

// RuntimeConfig contains logging behavior.
type RuntimeConfig struct {
	LogLevel string `koanf:"log_level" env:"FOODIETOUR_LOG_LEVEL" validate:"oneof=debug info warn error disabled"`
	LogJSON  bool   `koanf:"log_json"  env:"FOODIETOUR_LOG_JSON"`
}

// CLIConfig contains presentation settings for the command line.
type CLIConfig struct {
	Format      string `koanf:"format"      env:"FOODIETOUR_FORMAT"      validate:"oneof=auto text json"`
	Interactive bool   `koanf:"interactive" env:"FOODIETOUR_INTERACTIVE"`
}

const (
	DefaultBaseURL    = "https://api.julep.ai/api"
	DefaultAgentName  = "FoodieTourAgent"
	DefaultAgentModel = "claude-3.5-sonnet"
	DefaultAgentAbout = "An AI assistant specializing in culinary tours and recommendations."
)

// Service defines the configuration loading service.
type Service interface {
	// Load loads configuration from the specified sources with precedence order.
	Load(ctx context.Context, sources ...Source) (*Config, error)
	// Validate checks if the configuration meets all validation requirements.
	Validate(config *Config) error
}

// Source defines the interface for configuration sources.
type Source interface {
	// Load reads configuration from the source.
	Load() (map[string]any, error)
	// Type returns the source type identifier.
	Type() SourceType
}

// SourceType identifies the type of configuration source.
type SourceType string

const (
	SourceCLI     SourceType = "cli"
	SourceYAML    SourceType = "yaml"
	SourceEnv     SourceType = "env"
	SourceDefault SourceType = "default"
)

// Default returns a Config populated with the built-in defaults.
func Default() *Config {
	return &Config{
		Julep: JulepConfig{
			BaseURL:    DefaultBaseURL,
			Timeout:    30 * time.Second,
			RetryCount: 3,
		},
		Agent: AgentConfig{
			Name:  DefaultAgentName,
			Model: DefaultAgentModel,
			About: DefaultAgentAbout,
		},
		Poll: PollConfig{
			Interval:    5 * time.Second,
			MaxAttempts: 0,
		},
		Runtime: RuntimeConfig{
			LogLevel: "info",
		},
		CLI: CLIConfig{
			Format: "auto",
		},
	}
}

// Load loads configuration using the default service.
func Load(ctx context.Context, sources ...Source) (*Config, error) {
	return NewService().Load(ctx, sources...)
}
