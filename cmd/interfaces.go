package cmd

import (
	"context"

	"github.com/hayato-coosy/kouseian/internal/brief"
	"github.com/hayato-coosy/kouseian/internal/config"
	"github.com/hayato-coosy/kouseian/internal/present"
)

// ConfigProvider loads the application configuration and manages the
// configuration directory. It lets commands be tested without touching the
// user's home directory.
type ConfigProvider interface {
	LoadConfig() (*config.AppConfig, error)
	CreateDefaultConfigFiles() error
	EnsureConfigDir() (string, error)
}

// KeyringClient stores and reads generation API keys in the operating
// system's credential store.
type KeyringClient interface {
	Set(provider, apiKey string) error
	GetAPIKey(provider string) (string, error)
}

// BriefGenerator turns a request into a normalized result with one
// generation call.
type BriefGenerator interface {
	GenerateBrief(ctx context.Context, req brief.Request) (brief.Result, error)
}

// ShareService creates and resolves share links.
type ShareService interface {
	Create(ctx context.Context, result brief.Result) (string, error)
	Resolve(ctx context.Context, id string) (brief.Result, error)
}

// DraftStore keeps the in-progress request between runs.
type DraftStore interface {
	Save(req brief.Request) error
	Load() (brief.Request, bool, error)
	Clear() error
}

// ChecklistStore keeps checklist state per brief.
type ChecklistStore interface {
	Load(id string) (present.Checklist, error)
	Toggle(id, item string) (present.Checklist, error)
}
