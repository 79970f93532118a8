package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"

	"github.com/hayato-coosy/kouseian/internal/llm"
	"github.com/hayato-coosy/kouseian/internal/prompt"
	"github.com/hayato-coosy/kouseian/internal/store"
)

const (
	// DefaultConfigFileName is the standard name for the main configuration file.
	DefaultConfigFileName = "config.yaml"
	// DefaultConfigDirName is the standard name for the configuration directory within the user's home directory.
	DefaultConfigDirName = ".kouseian"
	// DefaultCacheDirName is the directory under the config dir holding drafts and checklist state.
	DefaultCacheDirName = "cache"
	// DefaultSQLiteFileName is the database file used by the sqlite store when no path is set.
	DefaultSQLiteFileName = "briefs.db"
	// ConfigDirEnvVar is the environment variable used to override the default configuration directory path.
	ConfigDirEnvVar = "KOUSEIAN_CONFIG_DIR"
	// EnvPrefix prefixes every environment variable viper maps onto a config key.
	EnvPrefix = "KOUSEIAN"
)

// Provider and driver names accepted in the configuration.
const (
	ProviderGemini = llm.ProviderGemini
	ProviderOpenAI = llm.ProviderOpenAI

	DriverSupabase  = store.DriverSupabase
	DriverSQLite    = store.DriverSQLite
	DriverFirestore = store.DriverFirestore
	DriverMemory    = store.DriverMemory
)

// EnsureConfigDir checks if the configuration directory exists, creating it if necessary.
// It prioritizes baseDir if provided. If baseDir is empty, it checks the KOUSEIAN_CONFIG_DIR
// environment variable. If the environment variable is also empty or unset, it defaults to ~/.kouseian.
// The directory is created with 0700 permissions.
func EnsureConfigDir(baseDir string) (string, error) {
	var configDirPath string

	if baseDir != "" {
		configDirPath = baseDir
		log.Debug().Str("path", configDirPath).Msg("Using provided base directory path")
	} else if envDir := os.Getenv(ConfigDirEnvVar); envDir != "" {
		configDirPath = envDir
		log.Debug().Str("path", configDirPath).Str("env_var", ConfigDirEnvVar).Msg("Using config directory path from environment variable")
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		configDirPath = filepath.Join(homeDir, DefaultConfigDirName)
		log.Debug().Str("path", configDirPath).Msg("Using default config directory path")
	}

	info, err := os.Stat(configDirPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Info().Str("path", configDirPath).Msg("Config directory does not exist, attempting to create")
			if mkdirErr := os.MkdirAll(configDirPath, 0700); mkdirErr != nil {
				log.Error().Err(mkdirErr).Str("path", configDirPath).Msg("Failed to create config directory")
				return "", fmt.Errorf("%w: %w", ErrConfigDirCreate, mkdirErr)
			}
			log.Info().Str("path", configDirPath).Msg("Successfully created config directory")
			return configDirPath, nil
		}
		log.Error().Err(err).Str("path", configDirPath).Msg("Failed to stat config directory path")
		return "", fmt.Errorf("%w: %w", ErrConfigDirStat, err)
	}

	if !info.IsDir() {
		log.Error().Str("path", configDirPath).Msg("Config path exists but is not a directory")
		return "", ErrConfigDirNotDir
	}

	log.Debug().Str("path", configDirPath).Msg("Config directory exists and is a directory")
	return configDirPath, nil
}

// GeminiConfig holds configuration specific to the Gemini provider.
type GeminiConfig struct {
	APIKey    string `mapstructure:"api_key" yaml:"api_key"`
	ModelName string `mapstructure:"model_name" yaml:"model_name"`
	BaseURL   string `mapstructure:"base_url" yaml:"base_url"`
}

// OpenAIConfig holds configuration specific to the OpenAI provider.
type OpenAIConfig struct {
	APIKey    string `mapstructure:"api_key" yaml:"api_key"`
	ModelName string `mapstructure:"model_name" yaml:"model_name"`
	BaseURL   string `mapstructure:"base_url" yaml:"base_url"`
}

// LLMConfig selects the generation provider. Provider-specific settings are nested.
type LLMConfig struct {
	Provider string       `mapstructure:"provider" yaml:"provider"`
	Gemini   GeminiConfig `mapstructure:"gemini" yaml:"gemini"`
	OpenAI   OpenAIConfig `mapstructure:"openai" yaml:"openai"`
}

// SupabaseConfig locates the PostgREST endpoint of a Supabase project.
type SupabaseConfig struct {
	URL     string        `mapstructure:"url" yaml:"url"`
	AnonKey string        `mapstructure:"anon_key" yaml:"anon_key"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// SQLiteConfig holds the database file path for the sqlite store.
type SQLiteConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// FirestoreConfig holds the project and credentials for the firestore store.
type FirestoreConfig struct {
	ProjectID       string `mapstructure:"project_id" yaml:"project_id"`
	CredentialsJSON string `mapstructure:"credentials_json" yaml:"credentials_json"`
}

// StoreConfig selects the record store backing share links.
type StoreConfig struct {
	Driver    string          `mapstructure:"driver" yaml:"driver"`
	Table     string          `mapstructure:"table" yaml:"table"`
	Supabase  SupabaseConfig  `mapstructure:"supabase" yaml:"supabase"`
	SQLite    SQLiteConfig    `mapstructure:"sqlite" yaml:"sqlite"`
	Firestore FirestoreConfig `mapstructure:"firestore" yaml:"firestore"`
}

// BasicAuthConfig holds HTTP basic auth credentials. Password is the legacy
// plaintext form and is hashed when the auth mode is resolved.
type BasicAuthConfig struct {
	User         string `mapstructure:"user" yaml:"user"`
	PasswordHash string `mapstructure:"password_hash" yaml:"password_hash"`
	Password     string `mapstructure:"password" yaml:"password"`
}

// AuthConfig selects how non-API routes are protected.
type AuthConfig struct {
	Mode  string          `mapstructure:"mode" yaml:"mode"`
	Basic BasicAuthConfig `mapstructure:"basic" yaml:"basic"`
}

// ServerConfig holds HTTP server settings. Port, when set, overrides the
// port of Addr.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr" yaml:"addr"`
	Port            string        `mapstructure:"port" yaml:"port"`
	BaseURL         string        `mapstructure:"base_url" yaml:"base_url"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// ListenAddr returns the address the HTTP server binds to.
func (s ServerConfig) ListenAddr() string {
	if s.Port != "" {
		return ":" + s.Port
	}
	return s.Addr
}

// PromptConfig selects the output contract the prompt compiler renders.
type PromptConfig struct {
	SchemaVersion string `mapstructure:"schema_version" yaml:"schema_version"`
}

// AppConfig holds the overall application configuration.
type AppConfig struct {
	LLM    LLMConfig    `mapstructure:"llm" yaml:"llm"`
	Store  StoreConfig  `mapstructure:"store" yaml:"store"`
	Auth   AuthConfig   `mapstructure:"auth" yaml:"auth"`
	Server ServerConfig `mapstructure:"server" yaml:"server"`
	Prompt PromptConfig `mapstructure:"prompt" yaml:"prompt"`

	// ConfigDir is the directory the configuration was loaded from.
	ConfigDir string `mapstructure:"-" yaml:"-"`
}

// CacheDir returns the directory drafts and checklist state are kept in.
func (c *AppConfig) CacheDir() string {
	return filepath.Join(c.ConfigDir, DefaultCacheDirName)
}

// legacyEnv lists the unprefixed variable names still honoured for each key,
// in lookup order after the KOUSEIAN_ form.
var legacyEnv = map[string][]string{
	"llm.gemini.api_key":               {"GEMINI_API_KEY"},
	"llm.gemini.model_name":            {"GEMINI_MODEL_NAME"},
	"llm.openai.api_key":               {"OPENAI_API_KEY"},
	"store.supabase.url":               {"SUPABASE_URL", "NEXT_PUBLIC_SUPABASE_URL"},
	"store.supabase.anon_key":          {"SUPABASE_ANON_KEY", "NEXT_PUBLIC_SUPABASE_ANON_KEY"},
	"store.firestore.project_id":       {"GOOGLE_CLOUD_PROJECT"},
	"store.firestore.credentials_json": {"GOOGLE_APPLICATION_CREDENTIALS_JSON"},
	"auth.basic.user":                  {"BASIC_AUTH_USER"},
	"auth.basic.password_hash":         {"BASIC_AUTH_PASSWORD_HASH"},
	"auth.basic.password":              {"BASIC_AUTH_PASSWORD"},
	"server.port":                      {"PORT"},
}

func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// loadDotEnv reads a .env file from the working directory when present.
// Variables already set in the environment win.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Msg("Failed to load .env file")
			return
		}
		log.Debug().Msg("No .env file found")
		return
	}
	log.Debug().Msg("Loaded .env file")
}

// LoadConfig loads the application configuration from the config file (e.g., ~/.kouseian/config.yaml or baseDir/config.yaml),
// environment variables (KOUSEIAN_* and the legacy unprefixed names), and sets defaults.
// If baseDir is empty, it uses KOUSEIAN_CONFIG_DIR or ~/.kouseian.
func LoadConfig(baseDir string) (*AppConfig, error) {
	configDir, err := EnsureConfigDir(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure config directory: %w", err)
	}

	loadDotEnv()

	v := viper.New()

	v.SetDefault("llm.provider", ProviderGemini)
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model_name", llm.DefaultGeminiModel)
	v.SetDefault("llm.gemini.base_url", "")
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model_name", llm.DefaultOpenAIModel)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("store.driver", DriverSupabase)
	v.SetDefault("store.table", store.DefaultTable)
	v.SetDefault("store.supabase.url", "")
	v.SetDefault("store.supabase.anon_key", "")
	v.SetDefault("store.supabase.timeout", "10s")
	v.SetDefault("store.sqlite.path", "")
	v.SetDefault("store.firestore.project_id", "")
	v.SetDefault("store.firestore.credentials_json", "")
	v.SetDefault("auth.mode", string(AuthDisabled))
	v.SetDefault("auth.basic.user", "")
	v.SetDefault("auth.basic.password_hash", "")
	v.SetDefault("auth.basic.password", "")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.port", "")
	v.SetDefault("server.base_url", "")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("prompt.schema_version", string(prompt.DefaultVersion))

	configPath := filepath.Join(configDir, DefaultConfigFileName)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	log.Debug().Str("path", configPath).Msg("Attempting to load config file")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // llm.gemini.model_name -> KOUSEIAN_LLM_GEMINI_MODEL_NAME
	for key, names := range legacyEnv {
		if err := v.BindEnv(append([]string{key, envName(key)}, names...)...); err != nil {
			return nil, fmt.Errorf("%w: binding %s: %w", ErrConfigParse, key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Warn().Str("path", configPath).Msg("Config file not found. Using defaults and environment variables.")
		} else {
			log.Error().Err(err).Str("path", configPath).Msg("Failed to read config file")
			return nil, fmt.Errorf("%w: %w", ErrConfigRead, err)
		}
	} else {
		log.Debug().Str("path", configPath).Msg("Read config file successfully")
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		log.Error().Err(err).Str("path", configPath).Msg("Failed to unmarshal config file")
		return nil, fmt.Errorf("%w: %w", ErrConfigParse, err)
	}

	cfg.ConfigDir = configDir
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	cfg.Auth.Mode = strings.ToLower(strings.TrimSpace(cfg.Auth.Mode))
	if cfg.Store.SQLite.Path == "" {
		cfg.Store.SQLite.Path = filepath.Join(configDir, DefaultSQLiteFileName)
	}

	log.Debug().
		Str("provider", cfg.LLM.Provider).
		Str("store_driver", cfg.Store.Driver).
		Str("auth_mode", cfg.Auth.Mode).
		Str("listen_addr", cfg.Server.ListenAddr()).
		Msg("Unmarshalled config successfully")

	return &cfg, nil
}

// ResolveAPIKey returns the API key of the selected provider. A key set in
// the configuration or environment wins over one stored in the OS keyring.
// A missing key is a ConfigurationError naming the variable to set.
func (c *AppConfig) ResolveAPIKey() (string, error) {
	var configured, envVar string
	switch c.LLM.Provider {
	case "", ProviderGemini:
		configured, envVar = c.LLM.Gemini.APIKey, "GEMINI_API_KEY"
	case ProviderOpenAI:
		configured, envVar = c.LLM.OpenAI.APIKey, "OPENAI_API_KEY"
	default:
		return "", configurationError("llm", "unsupported provider %q", c.LLM.Provider)
	}
	if configured != "" {
		return configured, nil
	}

	provider := c.LLM.Provider
	if provider == "" {
		provider = ProviderGemini
	}
	key, err := GetAPIKey(provider)
	if err != nil {
		if errors.Is(err, ErrAPIKeyNotFound) {
			return "", configurationError("llm", "Missing %s", envVar)
		}
		return "", err
	}
	return key, nil
}

// CheckStore reports a ConfigurationError when the selected store driver is
// missing a required setting.
func (c *AppConfig) CheckStore() error {
	s := c.Store
	switch s.Driver {
	case DriverSupabase:
		if s.Supabase.URL == "" || s.Supabase.AnonKey == "" {
			return configurationError("store", "Supabase is not configured (SUPABASE_URL and SUPABASE_ANON_KEY)")
		}
	case DriverFirestore:
		if s.Firestore.ProjectID == "" {
			return configurationError("store", "Firestore project is not configured (GOOGLE_CLOUD_PROJECT)")
		}
	case DriverSQLite:
		if s.SQLite.Path == "" {
			return configurationError("store", "sqlite path is not configured")
		}
	case DriverMemory:
	default:
		return configurationError("store", "unsupported driver %q", s.Driver)
	}
	return nil
}

// --- Default File Creation ---

const defaultConfigYAML = `# Configuration for kouseian
# Located at ~/.kouseian/config.yaml
# Every key can be overridden with a KOUSEIAN_ prefixed environment variable,
# e.g. llm.provider -> KOUSEIAN_LLM_PROVIDER.

llm:
  # "gemini" or "openai"
  provider: "gemini"
  gemini:
    model_name: "gemini-1.5-pro-latest"
    # api_key: set GEMINI_API_KEY or run 'kouseian config set-key gemini'
  openai:
    model_name: "gpt-4o"
    # base_url: ""

store:
  # "supabase", "sqlite", "firestore" or "memory"
  driver: "supabase"
  table: "design-brief"
  supabase:
    # url and anon_key: set SUPABASE_URL and SUPABASE_ANON_KEY
    timeout: "10s"
  sqlite:
    # empty means ~/.kouseian/briefs.db
    path: ""
  firestore:
    project_id: ""

auth:
  # "disabled" or "basic". Basic auth needs BASIC_AUTH_USER and BASIC_AUTH_PASSWORD_HASH.
  mode: "disabled"

server:
  addr: ":8080"
  # base_url is used to build share links, e.g. https://brief.example.com
  base_url: ""
  shutdown_timeout: "10s"
`

// writeFileIfNotExists checks if a file exists. If not, it writes the provided content.
func writeFileIfNotExists(filePath string, content string, perm os.FileMode) error {
	_, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Info().Str("path", filePath).Msg("File does not exist, attempting to write default content")
			if errWrite := os.WriteFile(filePath, []byte(content), perm); errWrite != nil {
				log.Error().Err(errWrite).Str("path", filePath).Msg("Failed to write default file content")
				return fmt.Errorf("%w: %w", ErrDefaultFileWrite, errWrite)
			}
			log.Info().Str("path", filePath).Msg("Successfully wrote default file content")
			return nil
		}
		log.Error().Err(err).Str("path", filePath).Msg("Failed to stat file path")
		return fmt.Errorf("%w: %w", ErrDefaultFileStat, err)
	}
	log.Debug().Str("path", filePath).Msg("File already exists, no action needed")
	return nil
}

// CreateDefaultConfigFiles ensures the configuration directory exists and
// writes a default config.yaml and an empty cache directory if they do not
// already exist. If baseDir is empty, it uses the default ~/.kouseian.
func CreateDefaultConfigFiles(baseDir string) error {
	configDir, err := EnsureConfigDir(baseDir)
	if err != nil {
		return fmt.Errorf("failed to ensure config directory: %w", err)
	}

	if err := writeFileIfNotExists(filepath.Join(configDir, DefaultConfigFileName), defaultConfigYAML, 0600); err != nil {
		return err
	}

	cacheDir := filepath.Join(configDir, DefaultCacheDirName)
	if err := os.MkdirAll(cacheDir, 0700); err != nil {
		log.Error().Err(err).Str("path", cacheDir).Msg("Failed to create cache directory")
		return fmt.Errorf("%w: %w", ErrConfigDirCreate, err)
	}
	return nil
}

// --- API Key Handling ---

const keyringServiceName = "kouseian"

func keyringUser(provider string) string {
	return provider + "_api_key"
}

// GetAPIKey retrieves the API key for provider from the OS keyring, stored
// under the service "kouseian" and the user "<provider>_api_key". It returns
// ErrAPIKeyNotFound if no key is stored.
func GetAPIKey(provider string) (string, error) {
	user := keyringUser(provider)
	log.Debug().Str("service", keyringServiceName).Str("user", user).Msg("Attempting to get API key from keychain")
	key, err := keyring.Get(keyringServiceName, user)
	if err == nil {
		log.Debug().Msg("API key retrieved successfully (from keychain)")
		return key, nil
	}
	if errors.Is(err, keyring.ErrNotFound) {
		log.Debug().Str("service", keyringServiceName).Str("user", user).Msg("API key not found in keychain")
		return "", ErrAPIKeyNotFound
	}
	log.Error().Err(err).Str("service", keyringServiceName).Str("user", user).Msg("Error reading key from keychain")
	return "", fmt.Errorf("%w: %w", ErrKeyringGet, err)
}

// SetAPIKey stores the API key for provider in the OS keyring.
func SetAPIKey(provider, apiKey string) error {
	user := keyringUser(provider)
	log.Debug().Str("service", keyringServiceName).Str("user", user).Msg("Attempting to set API key in keychain")
	if err := keyring.Set(keyringServiceName, user, apiKey); err != nil {
		log.Error().Err(err).Str("service", keyringServiceName).Str("user", user).Msg("Failed to set API key in keychain")
		return fmt.Errorf("%w: %w", ErrKeyringSet, err)
	}
	log.Info().Str("service", keyringServiceName).Str("user", user).Msg("API key stored successfully in keychain")
	return nil
}
