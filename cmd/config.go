package cmd

import (
	"github.com/spf13/cobra"
)

// newConfigCmd builds the config command group.
func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage kouseian configuration",
		Long: `Provides commands to initialize, show and locate the kouseian configuration
and to store generation API keys in the OS keychain.
This command itself does not perform any action but serves as a parent for subcommands.`,
	}
	configCmd.AddCommand(
		newConfigInitCmd(),
		newConfigShowCmd(),
		newConfigSetKeyCmd(),
		newConfigLocateCmd(),
	)
	return configCmd
}
