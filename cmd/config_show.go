package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hayato-coosy/kouseian/internal/config"
)

const maskedSecret = "********"

func newConfigShowCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current kouseian configuration",
		Long: `Displays the currently loaded configuration values from the config file,
.env and environment variables. Secrets are masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return configShowRun(&DefaultConfigProvider{}, &defaultKeyringClient{}, cmd.OutOrStdout(), output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text|yaml)")
	return cmd
}

// configShowRun contains the core logic for the 'config show' command.
func configShowRun(cfgProvider ConfigProvider, keyringClient KeyringClient, writer io.Writer, output string) error {
	cfg, err := cfgProvider.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}
	masked := maskSecrets(*cfg)

	switch strings.ToLower(output) {
	case "yaml":
		enc := yaml.NewEncoder(writer)
		enc.SetIndent(2)
		if err := enc.Encode(masked); err != nil {
			return fmt.Errorf("failed to encode configuration: %w", err)
		}
		return enc.Close()
	case "", "text":
	default:
		return fmt.Errorf("unsupported output format %q", output)
	}

	fmt.Fprintln(writer, "Current kouseian Configuration:")
	fmt.Fprintf(writer, "  Config Dir:     %s\n", cfg.ConfigDir)
	fmt.Fprintf(writer, "  LLM Provider:   %s\n", cfg.LLM.Provider)
	switch cfg.LLM.Provider {
	case config.ProviderOpenAI:
		fmt.Fprintf(writer, "    OpenAI Model: %s\n", cfg.LLM.OpenAI.ModelName)
		if cfg.LLM.OpenAI.BaseURL != "" {
			fmt.Fprintf(writer, "    OpenAI BaseURL: %s\n", cfg.LLM.OpenAI.BaseURL)
		}
	case config.ProviderGemini:
		fmt.Fprintf(writer, "    Gemini Model: %s\n", cfg.LLM.Gemini.ModelName)
		if cfg.LLM.Gemini.BaseURL != "" {
			fmt.Fprintf(writer, "    Gemini BaseURL: %s\n", cfg.LLM.Gemini.BaseURL)
		}
	default:
		fmt.Fprintf(writer, "    (No specific settings shown for provider '%s')\n", cfg.LLM.Provider)
	}
	fmt.Fprintf(writer, "  LLM API Key:    %s\n", apiKeyStatus(cfg, keyringClient))
	fmt.Fprintf(writer, "  Prompt Schema:  %s\n", cfg.Prompt.SchemaVersion)

	fmt.Fprintf(writer, "  Store Driver:   %s\n", cfg.Store.Driver)
	fmt.Fprintf(writer, "    Table:        %s\n", cfg.Store.Table)
	switch cfg.Store.Driver {
	case config.DriverSupabase:
		fmt.Fprintf(writer, "    Supabase URL: %s\n", cfg.Store.Supabase.URL)
		fmt.Fprintf(writer, "    Anon Key:     %s\n", masked.Store.Supabase.AnonKey)
	case config.DriverSQLite:
		fmt.Fprintf(writer, "    SQLite Path:  %s\n", cfg.Store.SQLite.Path)
	case config.DriverFirestore:
		fmt.Fprintf(writer, "    Project ID:   %s\n", cfg.Store.Firestore.ProjectID)
	}

	fmt.Fprintf(writer, "  Server Addr:    %s\n", cfg.Server.ListenAddr())
	if cfg.Server.BaseURL != "" {
		fmt.Fprintf(writer, "  Share BaseURL:  %s\n", cfg.Server.BaseURL)
	}
	authMode := cfg.Auth.Mode
	if authMode == "" {
		authMode = string(config.AuthDisabled)
	}
	fmt.Fprintf(writer, "  Auth Mode:      %s\n", authMode)
	if cfg.Auth.Basic.User != "" {
		fmt.Fprintf(writer, "    Basic User:   %s\n", cfg.Auth.Basic.User)
	}
	return nil
}

// apiKeyStatus describes where the active provider's key comes from without
// revealing it.
func apiKeyStatus(cfg *config.AppConfig, keyringClient KeyringClient) string {
	switch cfg.LLM.Provider {
	case config.ProviderOpenAI:
		if cfg.LLM.OpenAI.APIKey != "" {
			return "Set (from config or environment)"
		}
	case config.ProviderGemini:
		if cfg.LLM.Gemini.APIKey != "" {
			return "Set (from config or environment)"
		}
	}

	_, err := keyringClient.GetAPIKey(cfg.LLM.Provider)
	if err == nil {
		return "Set (use 'kouseian config set-key' to change)"
	}
	if errors.Is(err, config.ErrAPIKeyNotFound) {
		return "Not Set (use 'kouseian config set-key' to set)"
	}
	return fmt.Sprintf("Status Unknown (error checking keychain: %v)", err)
}

// maskSecrets returns a copy of cfg with every credential replaced.
func maskSecrets(cfg config.AppConfig) config.AppConfig {
	mask := func(s *string) {
		if *s != "" {
			*s = maskedSecret
		}
	}
	mask(&cfg.LLM.Gemini.APIKey)
	mask(&cfg.LLM.OpenAI.APIKey)
	mask(&cfg.Store.Supabase.AnonKey)
	mask(&cfg.Store.Firestore.CredentialsJSON)
	mask(&cfg.Auth.Basic.PasswordHash)
	mask(&cfg.Auth.Basic.Password)
	return cfg
}
