package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/compozy/foodietour/pkg/config"
)

// ConfigCmd returns the config command group
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the resolved configuration",
	}
	cmd.AddCommand(configShowCmd(), configEnvCmd())
	return cmd
}

func configShowCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the configuration after defaults, file, environment and flags are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromContext(cmd.Context())
			flat := flattenConfig(cfg)
			switch format {
			case "json":
				return outputJSON(cmd.OutOrStdout(), flat)
			case "table", "":
				return outputTable(cmd.OutOrStdout(), flat)
			default:
				return fmt.Errorf("unsupported format %q (use table or json)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "output", "table", "Output format (table, json)")
	return cmd
}

func configEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the environment variables the configuration reads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ENV VAR\tCONFIG PATH\tSET")
			for _, m := range config.GenerateEnvMappings() {
				_, set := os.LookupEnv(m.EnvVar)
				fmt.Fprintf(w, "%s\t%s\t%t\n", m.EnvVar, m.ConfigPath, set)
			}
			return w.Flush()
		},
	}
}

func outputJSON(w io.Writer, flat map[string]string) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(flat)
}

func outputTable(w io.Writer, flat map[string]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintln(tw, "KEY\tVALUE")
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%s\n", k, flat[k])
	}
	return tw.Flush()
}

// flattenConfig maps every koanf path to its display value. Secrets are
// rendered through their String method and stay redacted.
func flattenConfig(cfg *config.Config) map[string]string {
	result := make(map[string]string)
	flattenStruct(reflect.ValueOf(cfg).Elem(), "", result)
	return result
}

func flattenStruct(v reflect.Value, prefix string, result map[string]string) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("koanf")
		if tag == "" || tag == "-" || !field.IsExported() {
			continue
		}
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}
		value := v.Field(i)
		if value.Kind() == reflect.Struct {
			flattenStruct(value, key, result)
			continue
		}
		if stringer, ok := value.Interface().(fmt.Stringer); ok {
			result[key] = stringer.String()
			continue
		}
		result[key] = fmt.Sprintf("%v", value.Interface())
	}
}
