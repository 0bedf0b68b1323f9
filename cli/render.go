package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/compozy/foodietour/engine/task"
	"github.com/compozy/foodietour/pkg/config"
)

func RenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Print the task definition that run would submit",
		Long:  "Renders the embedded workflow with the configured integration keys and prints it as YAML with secrets redacted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromContext(cmd.Context())
			def, err := task.NewRenderer().Render(task.Credentials{
				OpenWeatherMapAPIKey: cfg.Integrations.OpenWeatherMapAPIKey.Value(),
				BraveAPIKey:          cfg.Integrations.BraveAPIKey.Value(),
			})
			if err != nil {
				return fmt.Errorf("render task: %w", err)
			}
			data, err := def.Redacted().YAML()
			if err != nil {
				return fmt.Errorf("encode task: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
