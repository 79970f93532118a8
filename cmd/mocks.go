package cmd

// This file contains mock implementations used across different test files
// within the cmd package, but which need to be accessible from outside
// _test.go files (e.g., for integration tests).

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hayato-coosy/kouseian/internal/brief"
)

// --- Mock BriefGenerator ---

// MockBriefGenerator is a mock implementation of BriefGenerator.
type MockBriefGenerator struct {
	mock.Mock
}

// GenerateBrief matches the BriefGenerator interface.
func (m *MockBriefGenerator) GenerateBrief(ctx context.Context, req brief.Request) (brief.Result, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(brief.Result)
	return result, args.Error(1)
}

// --- Mock ShareService ---

// MockShareService is a mock implementation of ShareService.
type MockShareService struct {
	mock.Mock
}

// Create matches the ShareService interface.
func (m *MockShareService) Create(ctx context.Context, result brief.Result) (string, error) {
	args := m.Called(ctx, result)
	return args.String(0), args.Error(1)
}

// Resolve matches the ShareService interface.
func (m *MockShareService) Resolve(ctx context.Context, id string) (brief.Result, error) {
	args := m.Called(ctx, id)
	result, _ := args.Get(0).(brief.Result)
	return result, args.Error(1)
}
