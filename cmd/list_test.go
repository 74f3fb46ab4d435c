package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"latte.dev/pkg/latte/internal/domain"
	domainmocks "latte.dev/pkg/latte/internal/domain/mocks"
)

func TestListCmd(t *testing.T) {
	isolateLogs(t)

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	cmd := newRootCmd()
	cmd.AddCommand(newListCmd())
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})

	mockWorkflow.On("List", mock.Anything, mock.MatchedBy(func(args domain.ListArgs) bool {
		return args.Out == out &&
			len(args.Patterns) == 1 &&
			args.Patterns[0] == "./suites" &&
			assert.ObjectsAreEqual([]string{"wip"}, args.Exclude)
	})).Return(nil)

	cmd.SetArgs([]string{"list", "-x", "wip", "./suites"})
	require.NoError(t, cmd.Execute())
}

func TestListCmd_Error(t *testing.T) {
	isolateLogs(t)

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	cmd := newRootCmd()
	cmd.AddCommand(newListCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	mockWorkflow.On("List", mock.Anything, mock.Anything).Return(errors.New("boom"))

	cmd.SetArgs([]string{"list"})
	require.EqualError(t, cmd.Execute(), "boom")
}
