package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hayato-coosy/kouseian/internal/config"
)

func newConfigLocateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locate",
		Short: "Locate kouseian configuration files",
		Long:  `Displays the paths of the configuration file and the local data kouseian uses.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return configLocateRun(&DefaultConfigProvider{}, cmd.OutOrStdout())
		},
	}
}

// configLocateRun contains the core logic for the config locate command.
func configLocateRun(cfgProvider ConfigProvider, out io.Writer) error {
	configDir, err := cfgProvider.EnsureConfigDir()
	if err != nil {
		return fmt.Errorf("error ensuring config directory: %w", err)
	}

	fmt.Fprintf(out, "Configuration directory: %s\n", configDir)
	fmt.Fprintln(out, "Expected configuration files:")
	fmt.Fprintf(out, "- %s\n", filepath.Join(configDir, config.DefaultConfigFileName))
	fmt.Fprintln(out, "- .env in the working directory (optional)")
	fmt.Fprintln(out, "Local data:")
	fmt.Fprintf(out, "- %s (drafts and checklist state)\n", filepath.Join(configDir, config.DefaultCacheDirName))
	fmt.Fprintf(out, "- %s (sqlite store)\n", filepath.Join(configDir, config.DefaultSQLiteFileName))
	return nil
}
