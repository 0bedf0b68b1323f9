package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/compozy/foodietour/cli/helpers"
	"github.com/compozy/foodietour/cli/prompt"
	"github.com/compozy/foodietour/cli/tui/components"
	"github.com/compozy/foodietour/cli/tui/styles"
	"github.com/compozy/foodietour/engine/execution"
	"github.com/compozy/foodietour/engine/task"
	"github.com/compozy/foodietour/engine/workflow"
	"github.com/compozy/foodietour/pkg/config"
	"github.com/compozy/foodietour/pkg/logger"
	"github.com/compozy/foodietour/sdk/client"
)

const spinnerTitle = "Planning your foodie tour..."

func RunCmd() *cobra.Command {
	defaults := config.Default()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate a foodie tour for one or more cities",
		Long: "Prompts for cities (one per line, blank line to finish) unless --city is given, " +
			"then runs the tour workflow and prints its output.",
		Args: cobra.NoArgs,
		RunE: runTour,
	}
	cmd.Flags().StringArray("city", nil, "City to include in the tour (repeatable)")
	cmd.Flags().Duration("poll-interval", defaults.Poll.Interval, "Delay between execution status polls")
	cmd.Flags().Int("max-attempts", defaults.Poll.MaxAttempts, "Maximum status polls, 0 polls until done")
	cmd.Flags().String("format", defaults.CLI.Format, "Output format (auto, text, json)")
	cmd.Flags().String("agent-model", defaults.Agent.Model, "Model used by the created agent")
	return cmd
}

func runTour(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	format, err := helpers.ResolveFormat(cfg)
	if err != nil {
		return err
	}
	interactive := helpers.IsInteractive(cfg) && format == execution.FormatText
	flagCities, err := cmd.Flags().GetStringArray("city")
	if err != nil {
		return fmt.Errorf("failed to get city flag: %w", err)
	}
	cities, err := selectCollector(cmd, flagCities, format, interactive).Collect(ctx)
	if err != nil {
		return err
	}
	runner, err := newRunner(ctx, cmd, cfg, format)
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Debug("starting foodie tour", "cities", strings.Join(cities, ", "))
	if !interactive {
		return runner.RunAndReport(ctx, cities)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), components.RenderHeader(80))
	var outcome *execution.Outcome
	runErr := components.RunWithSpinner(ctx, cmd.ErrOrStderr(), spinnerTitle, func(ctx context.Context) error {
		var err error
		outcome, err = runner.Run(ctx, cities)
		return err
	})
	return runner.Report(ctx, outcome, runErr)
}

func selectCollector(cmd *cobra.Command, cities []string, format execution.Format, interactive bool) prompt.Collector {
	switch {
	case len(cities) > 0:
		return prompt.NewStaticCollector(cities)
	case interactive:
		return prompt.NewFormCollector(nil, nil)
	case format == execution.FormatJSON:
		return prompt.NewLineCollector(cmd.InOrStdin(), cmd.ErrOrStderr())
	default:
		return prompt.NewLineCollector(cmd.InOrStdin(), cmd.OutOrStdout())
	}
}

func newRunner(
	ctx context.Context,
	cmd *cobra.Command,
	cfg *config.Config,
	format execution.Format,
) (*workflow.Runner, error) {
	api, err := buildClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return workflow.NewRunner(&workflow.Config{
		Client:   api,
		Renderer: task.NewRenderer(),
		Credentials: task.Credentials{
			OpenWeatherMapAPIKey: cfg.Integrations.OpenWeatherMapAPIKey.Value(),
			BraveAPIKey:          cfg.Integrations.BraveAPIKey.Value(),
		},
		Agent: client.AgentRequest{
			Name:  cfg.Agent.Name,
			Model: cfg.Agent.Model,
			About: cfg.Agent.About,
		},
		Tracking: execution.Options{
			PollInterval: cfg.Poll.Interval,
			MaxAttempts:  cfg.Poll.MaxAttempts,
		},
		Reporter: newReporter(cmd, cfg, format),
	})
}

func buildClient(ctx context.Context, cfg *config.Config) (*client.Client, error) {
	api, err := client.New(cfg.Julep.BaseURL).
		WithAPIKey(cfg.Julep.APIKey.Value()).
		WithTimeout(cfg.Julep.Timeout).
		WithRetryCount(cfg.Julep.RetryCount).
		Build(ctx)
	if err != nil {
		if cfg.Julep.APIKey.Value() == "" {
			return nil, fmt.Errorf("%w: set %s", err, config.GetEnvVarForConfigPath("julep.api_key"))
		}
		return nil, err
	}
	return api, nil
}

func newReporter(cmd *cobra.Command, cfg *config.Config, format execution.Format) *execution.Reporter {
	opts := []execution.ReporterOption{execution.WithFormat(format)}
	if format == execution.FormatText && helpers.ShouldUseColor(cfg) {
		opts = append(opts, execution.WithStyles(styles.SuccessLabel, styles.FailureLabel))
	}
	return execution.NewReporter(cmd.OutOrStdout(), opts...)
}
