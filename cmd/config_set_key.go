package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hayato-coosy/kouseian/internal/config"
)

func newConfigSetKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-key <provider> <api-key>",
		Short: "Stores a generation API key securely in the OS keychain",
		Long: `Stores the API key of a generation provider (gemini or openai) in the
operating system's keychain or keyring. Keys set in the config file or the
environment take precedence over the keychain.
The key is associated with the service 'kouseian' and user '<provider>_api_key'.`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{config.ProviderGemini, config.ProviderOpenAI},
		RunE: func(cmd *cobra.Command, args []string) error {
			return configSetKeyRun(&defaultKeyringClient{}, cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

// configSetKeyRun contains the core logic for the set-key command.
func configSetKeyRun(kc KeyringClient, writer io.Writer, provider, apiKey string) error {
	provider = strings.ToLower(strings.TrimSpace(provider))
	switch provider {
	case config.ProviderGemini, config.ProviderOpenAI:
	default:
		return fmt.Errorf("unsupported provider %q (want %s or %s)", provider, config.ProviderGemini, config.ProviderOpenAI)
	}
	if apiKey == "" {
		return errors.New("API key cannot be empty")
	}

	Log.Info().Str("provider", provider).Msg("Attempting to store API key in keychain...")
	if err := kc.Set(provider, apiKey); err != nil {
		Log.Error().Err(err).Msg("Failed to store API key in keychain")
		return fmt.Errorf("failed to store API key in keychain: %w", err)
	}

	Log.Info().Msg("API key stored successfully in keychain.")
	fmt.Fprintln(writer, "API key stored successfully.")
	return nil
}
