package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/hayato-coosy/kouseian/internal/config"
	"github.com/hayato-coosy/kouseian/internal/llm"
	"github.com/hayato-coosy/kouseian/internal/present"
	"github.com/hayato-coosy/kouseian/internal/prompt"
	"github.com/hayato-coosy/kouseian/internal/share"
	"github.com/hayato-coosy/kouseian/internal/store"
	storefirestore "github.com/hayato-coosy/kouseian/internal/store/firestore"
	"github.com/hayato-coosy/kouseian/internal/store/sqlite"
	"github.com/hayato-coosy/kouseian/internal/store/supabase"
)

// --- Concrete Implementations of Shared Interfaces ---

// DefaultConfigProvider implements ConfigProvider with the config package.
// An empty BaseDir means KOUSEIAN_CONFIG_DIR or ~/.kouseian.
type DefaultConfigProvider struct {
	BaseDir string
}

func (p *DefaultConfigProvider) LoadConfig() (*config.AppConfig, error) {
	return config.LoadConfig(p.BaseDir)
}

func (p *DefaultConfigProvider) CreateDefaultConfigFiles() error {
	return config.CreateDefaultConfigFiles(p.BaseDir)
}

func (p *DefaultConfigProvider) EnsureConfigDir() (string, error) {
	return config.EnsureConfigDir(p.BaseDir)
}

// defaultKeyringClient implements KeyringClient with the OS keyring.
type defaultKeyringClient struct{}

func (k *defaultKeyringClient) Set(provider, apiKey string) error {
	return config.SetAPIKey(provider, apiKey)
}

func (k *defaultKeyringClient) GetAPIKey(provider string) (string, error) {
	return config.GetAPIKey(provider)
}

// --- Central Provider ---

// Provider is the dependency container handed to commands. The generator
// and the share service are built on first use so commands that need
// neither never open a store or a client.
type Provider struct {
	Config    ConfigProvider
	Keyring   KeyringClient
	AppConfig *config.AppConfig
	Cache     present.Cache

	generator *llm.Pipeline
	shares    *share.Service
	closers   []io.Closer
}

// GetProvider loads the configuration and returns a Provider backed by the
// real implementations. Drafts and checklist state live in files under the
// config directory.
func GetProvider() (*Provider, error) {
	cfgProvider := &DefaultConfigProvider{}
	appCfg, err := cfgProvider.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load application config: %w", err)
	}

	provider := &Provider{
		Config:    cfgProvider,
		Keyring:   &defaultKeyringClient{},
		AppConfig: appCfg,
		Cache:     present.NewFileCache(afero.NewOsFs(), appCfg.CacheDir()),
	}
	Log.Debug().Str("config_dir", appCfg.ConfigDir).Msg("Service Provider initialized successfully.")
	return provider, nil
}

// Compiler returns the prompt compiler for the configured schema version.
func (p *Provider) Compiler() (*prompt.Compiler, error) {
	return prompt.NewCompiler(prompt.SchemaVersion(p.AppConfig.Prompt.SchemaVersion))
}

// Generator returns the generation pipeline. A missing API key is a
// config.ConfigurationError.
func (p *Provider) Generator(ctx context.Context) (*llm.Pipeline, error) {
	if p.generator != nil {
		return p.generator, nil
	}

	cfg := p.AppConfig.LLM
	apiKey, err := p.AppConfig.ResolveAPIKey()
	if err != nil {
		return nil, err
	}

	providerCfg := llm.ProviderConfig{
		Provider: cfg.Provider,
		Gemini:   llm.GeminiConfig{Model: cfg.Gemini.ModelName, BaseURL: cfg.Gemini.BaseURL},
		OpenAI:   llm.OpenAIConfig{Model: cfg.OpenAI.ModelName, BaseURL: cfg.OpenAI.BaseURL},
	}
	if cfg.Provider == config.ProviderOpenAI {
		providerCfg.OpenAI.APIKey = apiKey
	} else {
		providerCfg.Gemini.APIKey = apiKey
	}

	generator, err := llm.NewGenerator(ctx, providerCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s client: %w", cfg.Provider, err)
	}
	compiler, err := p.Compiler()
	if err != nil {
		return nil, err
	}
	pipeline, err := llm.NewPipeline(compiler, generator)
	if err != nil {
		return nil, err
	}

	Log.Debug().Str("provider", cfg.Provider).Msg("Generation pipeline initialized")
	p.generator = pipeline
	return pipeline, nil
}

// Shares returns the share service over the configured store. An
// unconfigured store is a config.ConfigurationError.
func (p *Provider) Shares(ctx context.Context) (*share.Service, error) {
	if p.shares != nil {
		return p.shares, nil
	}
	if err := p.AppConfig.CheckStore(); err != nil {
		return nil, err
	}

	st, closer, err := newStore(ctx, p.AppConfig.Store)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		p.closers = append(p.closers, closer)
	}

	svc, err := share.NewService(st)
	if err != nil {
		return nil, err
	}
	Log.Debug().Str("driver", p.AppConfig.Store.Driver).Msg("Share service initialized")
	p.shares = svc
	return svc, nil
}

// Drafts returns the draft store.
func (p *Provider) Drafts() *present.Drafts {
	return present.NewDrafts(p.Cache)
}

// Checklists returns the checklist store.
func (p *Provider) Checklists() *present.Checklists {
	return present.NewChecklists(p.Cache)
}

// ShareBaseURL is the base of share links printed by the CLI.
func (p *Provider) ShareBaseURL() string {
	if p.AppConfig.Server.BaseURL != "" {
		return p.AppConfig.Server.BaseURL
	}
	return "http://localhost" + p.AppConfig.Server.ListenAddr()
}

// Close releases any store connections opened by the provider.
func (p *Provider) Close() error {
	var errs []error
	for _, c := range p.closers {
		errs = append(errs, c.Close())
	}
	p.closers = nil
	return errors.Join(errs...)
}

// newStore opens the record store selected by cfg.Driver. The closer is nil
// for stores holding no connection.
func newStore(ctx context.Context, cfg config.StoreConfig) (store.Store, io.Closer, error) {
	switch cfg.Driver {
	case config.DriverSupabase:
		c, err := supabase.New(supabase.Config{
			URL:     cfg.Supabase.URL,
			AnonKey: cfg.Supabase.AnonKey,
			Table:   cfg.Table,
			Timeout: cfg.Supabase.Timeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return c, nil, nil
	case config.DriverSQLite:
		s, err := sqlite.Open(ctx, cfg.SQLite.Path, cfg.Table)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case config.DriverFirestore:
		s, err := storefirestore.New(ctx, storefirestore.Config{
			ProjectID:       cfg.Firestore.ProjectID,
			CredentialsJSON: cfg.Firestore.CredentialsJSON,
			Collection:      cfg.Table,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case config.DriverMemory:
		Log.Warn().Msg("Using the in-memory store; shared briefs are lost on exit")
		return store.NewMemory(), nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", store.ErrUnknownDriver, cfg.Driver)
	}
}
