package prompt

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineCollector_Collect(t *testing.T) {
	t.Run("Should stop at the blank line after the last city", func(t *testing.T) {
		var out bytes.Buffer
		in := strings.NewReader("Lisbon\n  Osaka  \n\nIgnored\n")

		cities, err := NewLineCollector(in, &out).Collect(t.Context())

		require.NoError(t, err)
		assert.Equal(t, []string{"Lisbon", "Osaka"}, cities)
		assert.Equal(t, Banner+"\n", out.String())
	})

	t.Run("Should re-prompt on blank input before any city", func(t *testing.T) {
		var out bytes.Buffer
		in := strings.NewReader("\n   \nRome\n\n")

		cities, err := NewLineCollector(in, &out).Collect(t.Context())

		require.NoError(t, err)
		assert.Equal(t, []string{"Rome"}, cities)
		assert.Equal(t, 2, strings.Count(out.String(), EmptyHint))
	})

	t.Run("Should accept cities ended by EOF", func(t *testing.T) {
		cities, err := NewLineCollector(strings.NewReader("Lima"), &bytes.Buffer{}).Collect(t.Context())

		require.NoError(t, err)
		assert.Equal(t, []string{"Lima"}, cities)
	})

	t.Run("Should never return an empty list without error", func(t *testing.T) {
		for _, input := range []string{"", "\n", "\n\n\n", "  \n\t\n"} {
			cities, err := NewLineCollector(strings.NewReader(input), &bytes.Buffer{}).Collect(t.Context())

			require.ErrorIs(t, err, ErrNoCities, "input %q", input)
			assert.Empty(t, cities)
		}
	})

	t.Run("Should stop when the context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		_, err := NewLineCollector(strings.NewReader("Lisbon\n"), &bytes.Buffer{}).Collect(ctx)

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestStaticCollector_Collect(t *testing.T) {
	t.Run("Should return trimmed flag values", func(t *testing.T) {
		cities, err := NewStaticCollector([]string{" Paris ", "", "Tokyo"}).Collect(t.Context())

		require.NoError(t, err)
		assert.Equal(t, []string{"Paris", "Tokyo"}, cities)
	})

	t.Run("Should fail without cities", func(t *testing.T) {
		_, err := NewStaticCollector([]string{" "}).Collect(t.Context())

		require.ErrorIs(t, err, ErrNoCities)
	})
}

func TestParseCities(t *testing.T) {
	t.Run("Should split lines and drop blanks", func(t *testing.T) {
		assert.Equal(t, []string{"New York", "Cairo"}, ParseCities("New York\r\n\n Cairo \n"))
		assert.Empty(t, ParseCities(" \n "))
	})

	t.Run("Should validate form input", func(t *testing.T) {
		require.Error(t, validateCities("\n"))
		require.NoError(t, validateCities("Seoul"))
	})
}
