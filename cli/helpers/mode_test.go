package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compozy/foodietour/engine/execution"
	"github.com/compozy/foodietour/pkg/config"
)

func TestIsInteractive(t *testing.T) {
	t.Run("Should honor the interactive override", func(t *testing.T) {
		t.Setenv("CI", "true")
		cfg := config.Default()
		cfg.CLI.Interactive = true

		assert.True(t, IsInteractive(cfg))
	})

	t.Run("Should be false in CI", func(t *testing.T) {
		t.Setenv("CI", "true")

		assert.False(t, IsInteractive(config.Default()))
	})
}

func TestShouldUseColor(t *testing.T) {
	t.Run("Should respect NO_COLOR", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		cfg := config.Default()
		cfg.CLI.Interactive = true

		assert.False(t, ShouldUseColor(cfg))
	})

	t.Run("Should be false in CI", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		t.Setenv("GITHUB_ACTIONS", "true")

		assert.False(t, ShouldUseColor(config.Default()))
	})
}

func TestResolveFormat(t *testing.T) {
	t.Run("Should map auto to text", func(t *testing.T) {
		format, err := ResolveFormat(config.Default())

		require.NoError(t, err)
		assert.Equal(t, execution.FormatText, format)
	})

	t.Run("Should select json", func(t *testing.T) {
		cfg := config.Default()
		cfg.CLI.Format = "json"

		format, err := ResolveFormat(cfg)

		require.NoError(t, err)
		assert.Equal(t, execution.FormatJSON, format)
	})
}
