package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// extractCLIFlags copies explicitly set flags into flags keyed by config path.
func extractCLIFlags(cmd *cobra.Command, flags map[string]any) {
	addFlag := func(flagName, key string, getter func(string) (any, error)) {
		if cmd.Flags().Lookup(flagName) == nil || !cmd.Flags().Changed(flagName) {
			return
		}
		if value, err := getter(flagName); err == nil {
			flags[key] = value
		}
	}

	getString := func(name string) (any, error) { return cmd.Flags().GetString(name) }
	getInt := func(name string) (any, error) { return cmd.Flags().GetInt(name) }
	getBool := func(name string) (any, error) { return cmd.Flags().GetBool(name) }
	getDuration := func(name string) (any, error) { return cmd.Flags().GetDuration(name) }

	flagDefs := []struct {
		flagName string
		key      string
		getter   func(string) (any, error)
	}{
		// Runtime flags
		{"log-level", "runtime.log_level", getString},
		{"log-json", "runtime.log_json", getBool},

		// Remote API flags
		{"base-url", "julep.base_url", getString},
		{"timeout", "julep.timeout", getDuration},

		// Agent flags
		{"agent-model", "agent.model", getString},

		// Polling flags
		{"poll-interval", "poll.interval", getDuration},
		{"max-attempts", "poll.max_attempts", getInt},

		// Presentation flags
		{"format", "cli.format", getString},
		{"interactive", "cli.interactive", getBool},
	}

	for _, def := range flagDefs {
		addFlag(def.flagName, def.key, def.getter)
	}
}

// loadEnvFile loads environment variables from the env file named by the
// env-file flag. A missing file is not an error.
func loadEnvFile(cmd *cobra.Command) (string, error) {
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return "", fmt.Errorf("failed to get env-file flag: %w", err)
	}
	if envFile == "" {
		return "", nil
	}
	pwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	if !filepath.IsAbs(envFile) {
		envFile = filepath.Join(pwd, envFile)
	}
	absPath, err := filepath.Abs(filepath.Clean(envFile))
	if err != nil {
		return "", fmt.Errorf("failed to resolve env file path: %w", err)
	}
	if !isPathWithinDirectory(absPath, pwd) {
		return "", fmt.Errorf("env file path '%s' is outside the working directory", envFile)
	}
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to stat env file: %w", err)
	}
	if !fileInfo.Mode().IsRegular() {
		return "", fmt.Errorf("env file path '%s' is not a regular file", envFile)
	}
	if err := godotenv.Load(absPath); err != nil {
		return "", fmt.Errorf("failed to load env file %s: %w", absPath, err)
	}
	return absPath, nil
}

// isPathWithinDirectory checks if a given path is within the specified directory
func isPathWithinDirectory(path, dir string) bool {
	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return false
	}
	absDir, err := filepath.Abs(filepath.Clean(dir))
	if err != nil {
		return false
	}
	if !strings.HasSuffix(absDir, string(filepath.Separator)) {
		absDir += string(filepath.Separator)
	}
	return strings.HasPrefix(absPath, absDir) || absPath == strings.TrimSuffix(absDir, string(filepath.Separator))
}
