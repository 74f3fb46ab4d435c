// Package mocks provides testify mocks for the domain package.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"latte.dev/pkg/latte/internal/domain"
	m "latte.dev/pkg/latte/internal/model"
)

// MockWorkflow is a mock implementation of domain.Workflow.
type MockWorkflow struct {
	mock.Mock
}

// NewMockWorkflow creates a MockWorkflow whose expectations are asserted
// when the test ends.
func NewMockWorkflow(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWorkflow {
	w := &MockWorkflow{}
	w.Mock.Test(t)

	t.Cleanup(func() { w.AssertExpectations(t) })

	return w
}

// Run mocks domain.Workflow.Run.
func (w *MockWorkflow) Run(ctx context.Context, args domain.RunArgs) (m.Totals, error) {
	ret := w.Called(ctx, args)

	totals, _ := ret.Get(0).(m.Totals)

	return totals, ret.Error(1)
}

// List mocks domain.Workflow.List.
func (w *MockWorkflow) List(ctx context.Context, args domain.ListArgs) error {
	return w.Called(ctx, args).Error(0)
}
