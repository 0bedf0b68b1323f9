package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	data       map[string]any
	sourceType SourceType
	err        error
}

func (m *mockSource) Load() (map[string]any, error) {
	return m.data, m.err
}

func (m *mockSource) Type() SourceType {
	return m.sourceType
}

func TestLoader_Load(t *testing.T) {
	t.Run("Should load default configuration when no sources provided", func(t *testing.T) {
		cfg, err := NewService().Load(t.Context())

		require.NoError(t, err)
		assert.Equal(t, DefaultBaseURL, cfg.Julep.BaseURL)
		assert.Equal(t, 30*time.Second, cfg.Julep.Timeout)
		assert.Equal(t, 3, cfg.Julep.RetryCount)
		assert.Equal(t, DefaultAgentName, cfg.Agent.Name)
		assert.Equal(t, DefaultAgentModel, cfg.Agent.Model)
		assert.Equal(t, 5*time.Second, cfg.Poll.Interval)
		assert.Equal(t, 0, cfg.Poll.MaxAttempts)
		assert.Equal(t, "auto", cfg.CLI.Format)
	})

	t.Run("Should read credentials from the environment", func(t *testing.T) {
		t.Setenv("JULEP_API_KEY", "julep-secret")
		t.Setenv("OPENWEATHERMAP_API_KEY", "owm-secret")
		t.Setenv("BRAVE_API_KEY", "brave-secret")
		t.Setenv("FOODIETOUR_POLL_INTERVAL", "250ms")
		t.Setenv("FOODIETOUR_POLL_MAX_ATTEMPTS", "12")

		cfg, err := NewService().Load(t.Context())

		require.NoError(t, err)
		assert.Equal(t, "julep-secret", cfg.Julep.APIKey.Value())
		assert.Equal(t, "owm-secret", cfg.Integrations.OpenWeatherMapAPIKey.Value())
		assert.Equal(t, "brave-secret", cfg.Integrations.BraveAPIKey.Value())
		assert.Equal(t, 250*time.Millisecond, cfg.Poll.Interval)
		assert.Equal(t, 12, cfg.Poll.MaxAttempts)
	})

	t.Run("Should apply sources in precedence order", func(t *testing.T) {
		t.Setenv("FOODIETOUR_AGENT_MODEL", "env-model")
		fileSource := &mockSource{
			data: map[string]any{
				"agent": map[string]any{
					"name":  "FileAgent",
					"model": "file-model",
				},
				"poll": map[string]any{"interval": "2s"},
			},
			sourceType: SourceYAML,
		}
		flagSource := NewCLIProvider(map[string]any{
			"poll.interval": "1s",
		})

		cfg, err := NewService().Load(t.Context(), flagSource, fileSource)

		require.NoError(t, err)
		assert.Equal(t, "FileAgent", cfg.Agent.Name)
		assert.Equal(t, "env-model", cfg.Agent.Model)
		assert.Equal(t, time.Second, cfg.Poll.Interval)
	})

	t.Run("Should validate configuration after loading", func(t *testing.T) {
		source := &mockSource{
			data:       map[string]any{"poll": map[string]any{"interval": "0s"}},
			sourceType: SourceYAML,
		}

		_, err := NewService().Load(t.Context(), source)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
	})

	t.Run("Should reject unknown output formats", func(t *testing.T) {
		source := NewCLIProvider(map[string]any{"cli.format": "xml"})

		_, err := NewService().Load(t.Context(), source)

		require.Error(t, err)
	})

	t.Run("Should surface source errors", func(t *testing.T) {
		source := &mockSource{sourceType: SourceYAML, err: os.ErrPermission}

		_, err := NewService().Load(t.Context(), source)

		require.ErrorIs(t, err, os.ErrPermission)
	})
}

func TestYAMLProvider(t *testing.T) {
	t.Run("Should load settings from a YAML file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "foodietour.yaml")
		content := "julep:\n  base_url: https://julep.example.com/api\npoll:\n  max_attempts: 40\nagent:\n  about: ~\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := NewService().Load(t.Context(), NewYAMLProvider(path))

		require.NoError(t, err)
		assert.Equal(t, "https://julep.example.com/api", cfg.Julep.BaseURL)
		assert.Equal(t, 40, cfg.Poll.MaxAttempts)
		assert.Equal(t, DefaultAgentAbout, cfg.Agent.About)
	})

	t.Run("Should ignore a missing file", func(t *testing.T) {
		data, err := NewYAMLProvider(filepath.Join(t.TempDir(), "missing.yaml")).Load()

		require.NoError(t, err)
		assert.Empty(t, data)
	})

	t.Run("Should fail on malformed YAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("julep: [unterminated"), 0o600))

		_, err := NewYAMLProvider(path).Load()

		require.Error(t, err)
	})
}

func TestSetNested(t *testing.T) {
	t.Run("Should build nested maps from dotted paths", func(t *testing.T) {
		m := map[string]any{}

		require.NoError(t, setNested(m, "julep.timeout", "5s"))

		assert.Equal(t, map[string]any{"julep": map[string]any{"timeout": "5s"}}, m)
	})

	t.Run("Should report conflicts with scalar values", func(t *testing.T) {
		m := map[string]any{"julep": "scalar"}

		err := setNested(m, "julep.timeout", "5s")

		require.Error(t, err)
	})
}

func TestGenerateEnvMappings(t *testing.T) {
	t.Run("Should map every credential variable to its config path", func(t *testing.T) {
		mapping := GenerateEnvToConfigMap()

		assert.Equal(t, "julep.api_key", mapping["JULEP_API_KEY"])
		assert.Equal(t, "integrations.openweathermap_api_key", mapping["OPENWEATHERMAP_API_KEY"])
		assert.Equal(t, "integrations.brave_api_key", mapping["BRAVE_API_KEY"])
		assert.Equal(t, "poll.max_attempts", mapping["FOODIETOUR_POLL_MAX_ATTEMPTS"])
	})

	t.Run("Should resolve the variable for a config path", func(t *testing.T) {
		assert.Equal(t, "JULEP_API_KEY", GetEnvVarForConfigPath("julep.api_key"))
		assert.Equal(t, "", GetEnvVarForConfigPath("does.not.exist"))
	})
}

func TestLoader_EmptyEnvironment(t *testing.T) {
	t.Run("Should treat empty variables as unset", func(t *testing.T) {
		t.Setenv("FOODIETOUR_POLL_INTERVAL", "")
		t.Setenv("JULEP_BASE_URL", "")
		yamlSource := &mockSource{
			sourceType: SourceYAML,
			data:       map[string]any{"poll": map[string]any{"interval": "9s"}},
		}

		cfg, err := NewService().Load(t.Context(), yamlSource)

		require.NoError(t, err)
		assert.Equal(t, 9*time.Second, cfg.Poll.Interval)
		assert.Equal(t, DefaultBaseURL, cfg.Julep.BaseURL)
	})
}
