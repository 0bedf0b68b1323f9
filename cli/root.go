package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/compozy/foodietour/pkg/config"
	"github.com/compozy/foodietour/pkg/logger"
	"github.com/compozy/foodietour/pkg/version"
)

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "foodietour",
		Short: "Plan one-day foodie tours with a hosted AI workflow",
		Long: "foodietour creates an agent and a workflow task on the Julep platform, runs it for the " +
			"cities you enter and prints the generated tour.",
		Version:      version.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return SetupGlobalConfig(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "Path to a YAML settings file")
	flags.String("env-file", ".env", "Path to the environment variables file")
	flags.String("log-level", "info", "Log level (debug, info, warn, error, disabled)")
	flags.Bool("log-json", false, "Output logs in JSON format")
	flags.Bool("log-source", false, "Include source code location in logs")
	flags.String("base-url", config.DefaultBaseURL, "Julep API base URL")
	flags.Duration("timeout", config.Default().Julep.Timeout, "Timeout for each API request")
	flags.Bool("interactive", false, "Force interactive prompts and spinners")

	root.AddCommand(
		RunCmd(),
		StatusCmd(),
		RenderCmd(),
		ConfigCmd(),
		VersionCmd(),
	)

	return root
}

// SetupGlobalConfig loads the env file and configuration for cmd and stores
// the resolved config and logger in its context.
func SetupGlobalConfig(cmd *cobra.Command) error {
	envFile, err := loadEnvFile(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	_, _, logSource, err := logger.GetLoggerConfig(cmd)
	if err != nil {
		return err
	}
	log := logger.SetupLogger(cfg.Runtime.LogLevel, cfg.Runtime.LogJSON, logSource, cmd.ErrOrStderr())
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.ContextWithLogger(ctx, log)
	ctx = config.ContextWithConfig(ctx, cfg)
	cmd.SetContext(ctx)
	log.Debug("configuration loaded", "env_file", envFile, "base_url", cfg.Julep.BaseURL)
	return nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	var sources []config.Source
	if configFile != "" {
		sources = append(sources, config.NewYAMLProvider(configFile))
	}
	cliFlags := make(map[string]any)
	extractCLIFlags(cmd, cliFlags)
	if len(cliFlags) > 0 {
		sources = append(sources, config.NewCLIProvider(cliFlags))
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(ctx, sources...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
