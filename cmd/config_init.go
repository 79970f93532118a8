package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize kouseian configuration",
		Long: `Creates the configuration directory, a default config.yaml and the cache
directory for drafts and checklist state if they don't exist.
Existing files are left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return configInitRun(&DefaultConfigProvider{}, cmd.OutOrStdout())
		},
	}
}

// configInitRun contains the core logic for the config init command.
func configInitRun(cfgProvider ConfigProvider, writer io.Writer) error {
	Log.Info().Msg("Initializing configuration...")
	if err := cfgProvider.CreateDefaultConfigFiles(); err != nil {
		Log.Error().Err(err).Msg("Failed to initialize configuration files")
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}
	Log.Info().Msg("Configuration initialization complete.")
	fmt.Fprintln(writer, "Configuration directory and default files ensured.")
	return nil
}
