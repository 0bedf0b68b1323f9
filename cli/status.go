package cli

import (
	"github.com/spf13/cobra"

	"github.com/compozy/foodietour/cli/helpers"
	"github.com/compozy/foodietour/engine/execution"
	"github.com/compozy/foodietour/engine/workflow"
	"github.com/compozy/foodietour/pkg/config"
)

func StatusCmd() *cobra.Command {
	defaults := config.Default()
	cmd := &cobra.Command{
		Use:   "status <execution-id>",
		Short: "Show the status of an execution",
		Long:  "Fetches an execution once, or with --wait tracks it until it finishes and prints the tour.",
		Args:  cobra.ExactArgs(1),
		RunE:  runStatus,
	}
	cmd.Flags().Bool("wait", false, "Poll until the execution finishes")
	cmd.Flags().Duration("poll-interval", defaults.Poll.Interval, "Delay between execution status polls")
	cmd.Flags().Int("max-attempts", defaults.Poll.MaxAttempts, "Maximum status polls, 0 polls until done")
	cmd.Flags().String("format", defaults.CLI.Format, "Output format (auto, text, json)")
	return cmd
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	format, err := helpers.ResolveFormat(cfg)
	if err != nil {
		return err
	}
	wait, err := cmd.Flags().GetBool("wait")
	if err != nil {
		return err
	}
	api, err := buildClient(ctx, cfg)
	if err != nil {
		return err
	}
	reporter := newReporter(cmd, cfg, format)
	if wait {
		runner, err := workflow.NewRunner(&workflow.Config{
			Client:   api,
			Tracking: execution.Options{PollInterval: cfg.Poll.Interval, MaxAttempts: cfg.Poll.MaxAttempts},
			Reporter: reporter,
		})
		if err != nil {
			return err
		}
		return runner.ResumeAndReport(ctx, args[0])
	}
	exec, err := api.GetExecution(ctx, args[0])
	if err != nil {
		return reporter.Error(err)
	}
	if exec.Status.IsTerminal() {
		return reporter.Outcome(&execution.Outcome{Execution: exec, Polls: 1})
	}
	return reporter.Pending(exec)
}
