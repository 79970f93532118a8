package cmd

import (
	"github.com/stretchr/testify/mock"

	"github.com/hayato-coosy/kouseian/internal/brief"
	"github.com/hayato-coosy/kouseian/internal/config"
	"github.com/hayato-coosy/kouseian/internal/present"
)

// --- Mock ConfigProvider ---

type MockConfigProvider struct {
	mock.Mock
}

// LoadConfig matches ConfigProvider interface
func (m *MockConfigProvider) LoadConfig() (*config.AppConfig, error) {
	args := m.Called()
	cfg, _ := args.Get(0).(*config.AppConfig)
	return cfg, args.Error(1)
}

// CreateDefaultConfigFiles matches ConfigProvider interface
func (m *MockConfigProvider) CreateDefaultConfigFiles() error {
	args := m.Called()
	return args.Error(0)
}

// EnsureConfigDir matches ConfigProvider interface
func (m *MockConfigProvider) EnsureConfigDir() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

// --- Mock KeyringClient ---

type MockKeyringClient struct {
	mock.Mock
}

// Set matches KeyringClient interface
func (m *MockKeyringClient) Set(provider, apiKey string) error {
	args := m.Called(provider, apiKey)
	return args.Error(0)
}

// GetAPIKey matches KeyringClient interface
func (m *MockKeyringClient) GetAPIKey(provider string) (string, error) {
	args := m.Called(provider)
	return args.String(0), args.Error(1)
}

// --- Mock DraftStore ---

type MockDraftStore struct {
	mock.Mock
}

// Save matches DraftStore interface
func (m *MockDraftStore) Save(req brief.Request) error {
	args := m.Called(req)
	return args.Error(0)
}

// Load matches DraftStore interface
func (m *MockDraftStore) Load() (brief.Request, bool, error) {
	args := m.Called()
	req, _ := args.Get(0).(brief.Request)
	return req, args.Bool(1), args.Error(2)
}

// Clear matches DraftStore interface
func (m *MockDraftStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}

// --- Mock ChecklistStore ---

type MockChecklistStore struct {
	mock.Mock
}

// Load matches ChecklistStore interface
func (m *MockChecklistStore) Load(id string) (present.Checklist, error) {
	args := m.Called(id)
	list, _ := args.Get(0).(present.Checklist)
	return list, args.Error(1)
}

// Toggle matches ChecklistStore interface
func (m *MockChecklistStore) Toggle(id, item string) (present.Checklist, error) {
	args := m.Called(id, item)
	list, _ := args.Get(0).(present.Checklist)
	return list, args.Error(1)
}
