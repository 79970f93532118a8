package cmd

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayato-coosy/kouseian/internal/brief/brieftest"
	"github.com/hayato-coosy/kouseian/internal/config"
	"github.com/hayato-coosy/kouseian/internal/present"
	"github.com/hayato-coosy/kouseian/internal/prompt"
	"github.com/hayato-coosy/kouseian/internal/store"
)

func newTestProvider(cfg *config.AppConfig) *Provider {
	return &Provider{
		Config:    new(MockConfigProvider),
		Keyring:   new(MockKeyringClient),
		AppConfig: cfg,
		Cache:     present.NewMemoryCache(),
	}
}

func TestNewStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Memory", func(t *testing.T) {
		st, closer, err := newStore(ctx, config.StoreConfig{Driver: config.DriverMemory})
		require.NoError(t, err)
		assert.NotNil(t, st)
		assert.Nil(t, closer)
	})

	t.Run("SQLite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "briefs.db")
		st, closer, err := newStore(ctx, config.StoreConfig{
			Driver: config.DriverSQLite,
			Table:  store.DefaultTable,
			SQLite: config.SQLiteConfig{Path: path},
		})
		require.NoError(t, err)
		require.NotNil(t, closer)
		t.Cleanup(func() { _ = closer.Close() })
		assert.NotNil(t, st)
		assert.FileExists(t, path)
	})

	t.Run("Supabase", func(t *testing.T) {
		st, closer, err := newStore(ctx, config.StoreConfig{
			Driver:   config.DriverSupabase,
			Table:    store.DefaultTable,
			Supabase: config.SupabaseConfig{URL: "https://example.supabase.co", AnonKey: "anon"},
		})
		require.NoError(t, err)
		assert.NotNil(t, st)
		assert.Nil(t, closer)
	})

	t.Run("UnknownDriver", func(t *testing.T) {
		_, _, err := newStore(ctx, config.StoreConfig{Driver: "redis"})
		assert.ErrorIs(t, err, store.ErrUnknownDriver)
	})
}

func TestProviderShares(t *testing.T) {
	ctx := context.Background()

	t.Run("Memory", func(t *testing.T) {
		p := newTestProvider(&config.AppConfig{Store: config.StoreConfig{Driver: config.DriverMemory, Table: store.DefaultTable}})

		svc, err := p.Shares(ctx)
		require.NoError(t, err)

		id, err := svc.Create(ctx, brieftest.Result())
		require.NoError(t, err)
		got, err := svc.Resolve(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "春のキャンペーンLP", got.Summary.Title)

		again, err := p.Shares(ctx)
		require.NoError(t, err)
		assert.Same(t, svc, again, "service is built once")
		assert.NoError(t, p.Close())
	})

	t.Run("NotConfigured", func(t *testing.T) {
		p := newTestProvider(&config.AppConfig{Store: config.StoreConfig{Driver: config.DriverSupabase}})

		_, err := p.Shares(ctx)
		assert.ErrorIs(t, err, config.ErrConfiguration)
	})
}

func TestProviderGenerator_ConfiguredKey(t *testing.T) {
	p := newTestProvider(&config.AppConfig{
		LLM: config.LLMConfig{
			Provider: config.ProviderOpenAI,
			OpenAI:   config.OpenAIConfig{APIKey: "sk-test", ModelName: "gpt-test", BaseURL: "http://127.0.0.1:1/v1"},
		},
		Prompt: config.PromptConfig{SchemaVersion: string(prompt.DefaultVersion)},
	})

	gen, err := p.Generator(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, gen)
}

func TestProviderCompiler_UnsupportedSchema(t *testing.T) {
	p := newTestProvider(&config.AppConfig{Prompt: config.PromptConfig{SchemaVersion: "v9"}})

	_, err := p.Compiler()

	assert.ErrorIs(t, err, prompt.ErrUnsupportedSchema)
}

func TestProviderShareBaseURL(t *testing.T) {
	tests := []struct {
		name   string
		server config.ServerConfig
		want   string
	}{
		{name: "Configured", server: config.ServerConfig{BaseURL: "https://brief.example.com", Addr: ":8080"}, want: "https://brief.example.com"},
		{name: "FromAddr", server: config.ServerConfig{Addr: ":8080"}, want: "http://localhost:8080"},
		{name: "FromPort", server: config.ServerConfig{Addr: ":8080", Port: "3000"}, want: "http://localhost:3000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProvider(&config.AppConfig{Server: tt.server})
			assert.Equal(t, tt.want, p.ShareBaseURL())
		})
	}
}
