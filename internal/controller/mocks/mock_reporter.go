// Package mocks provides testify mocks for the controller package.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	m "latte.dev/pkg/latte/internal/model"
)

// MockReporter is a mock implementation of controller.Reporter.
type MockReporter struct {
	mock.Mock
}

// NewMockReporter creates a MockReporter whose expectations are asserted
// when the test ends.
func NewMockReporter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockReporter {
	r := &MockReporter{}
	r.Mock.Test(t)

	t.Cleanup(func() { r.AssertExpectations(t) })

	return r
}

// RunStarted mocks controller.Reporter.RunStarted.
func (r *MockReporter) RunStarted(ctx context.Context) error {
	return r.Called(ctx).Error(0)
}

// GroupEntered mocks controller.Reporter.GroupEntered.
func (r *MockReporter) GroupEntered(ctx context.Context, entry m.GroupEntry) error {
	return r.Called(ctx, entry).Error(0)
}

// Concluded mocks controller.Reporter.Concluded.
func (r *MockReporter) Concluded(ctx context.Context, outcome m.Outcome) error {
	return r.Called(ctx, outcome).Error(0)
}

// RunFinished mocks controller.Reporter.RunFinished.
func (r *MockReporter) RunFinished(ctx context.Context, totals m.Totals) error {
	return r.Called(ctx, totals).Error(0)
}
