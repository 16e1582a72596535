package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"smart-dashboard-backend/config"
	"smart-dashboard-backend/internal/city"
	"smart-dashboard-backend/internal/home"
	"smart-dashboard-backend/internal/sample"
)

const defaultConfigPath = "./config/config.yaml"

// NewRootCommand builds the dashboardd command tree.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dashboardd",
		Short:         "Smart city and smart home dashboard backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("config", "", "path to the yaml config (default $CONFIG_PATH or "+defaultConfigPath+")")

	rootCmd.AddCommand(newServeCommand(), newSummaryCommand())
	return rootCmd
}

// loadConfig resolves the config path from the flag, then CONFIG_PATH. Only
// the default path may be missing.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	var path string
	if f := cmd.Flag("config"); f != nil {
		path = f.Value.String()
	}
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		cfg, err := config.LoadOrDefault(defaultConfigPath)
		return cfg, defaultConfigPath, err
	}
	cfg, err := config.Load(path)
	return cfg, path, err
}

func newSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the headline figures of both dashboards as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h := sample.NewHome()
			out := map[string]any{
				"city": city.Summarize(sample.NewCity()),
				"home": home.Summarize(h.Devices, h.Rooms),
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
}
