package logger

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func SetupLogger(logLevel string, logJSON, logSource bool, output io.Writer) Logger {
	cfg := DefaultConfig()
	cfg.Level = LogLevel(logLevel)
	cfg.JSON = logJSON
	cfg.AddSource = logSource
	if output != nil {
		cfg.Output = output
	}
	Init(cfg)
	return GetDefault()
}

func GetLoggerConfig(cmd *cobra.Command) (string, bool, bool, error) {
	logLevel, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return "", false, false, fmt.Errorf("failed to get log-level flag: %w", err)
	}

	logJSON, err := cmd.Flags().GetBool("log-json")
	if err != nil {
		return "", false, false, fmt.Errorf("failed to get log-json flag: %w", err)
	}

	logSource, err := cmd.Flags().GetBool("log-source")
	if err != nil {
		return "", false, false, fmt.Errorf("failed to get log-source flag: %w", err)
	}

	return logLevel, logJSON, logSource, nil
}
