// Package mocks provides testify mocks for the adapter package.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	m "latte.dev/pkg/latte/internal/model"
)

// MockSuiteFSAdapter is a mock implementation of adapter.SuiteFSAdapter.
type MockSuiteFSAdapter struct {
	mock.Mock
}

// Glob mocks adapter.SuiteFSAdapter.Glob.
func (a *MockSuiteFSAdapter) Glob(ctx context.Context, patterns []string, exclude ...string) ([]m.Path, error) {
	args := a.Called(ctx, patterns, exclude)

	paths, _ := args.Get(0).([]m.Path)

	return paths, args.Error(1)
}

// ReadFile mocks adapter.SuiteFSAdapter.ReadFile.
func (a *MockSuiteFSAdapter) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	args := a.Called(ctx, path)

	content, _ := args.Get(0).([]byte)

	return content, args.Error(1)
}

// MockSuiteLoader is a mock implementation of adapter.SuiteLoader.
type MockSuiteLoader struct {
	mock.Mock
}

// Load mocks adapter.SuiteLoader.Load.
func (l *MockSuiteLoader) Load(ctx context.Context, path m.Path) (m.Suite, error) {
	args := l.Called(ctx, path)

	suite, _ := args.Get(0).(m.Suite)

	return suite, args.Error(1)
}

// MockCommandRunnerAdapter is a mock implementation of adapter.CommandRunnerAdapter.
type MockCommandRunnerAdapter struct {
	mock.Mock
}

// RunCommand mocks adapter.CommandRunnerAdapter.RunCommand.
func (r *MockCommandRunnerAdapter) RunCommand(ctx context.Context, workDir, command string) (string, error) {
	args := r.Called(ctx, workDir, command)
	return args.String(0), args.Error(1)
}
