package controller

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "latte.dev/pkg/latte/internal/model"
)

func TestDisplaySuites(t *testing.T) {
	api := &m.Group{
		Name:  "api",
		Hooks: []m.Hook{{Kind: m.HookBefore}, {Kind: m.HookAfterEach}},
		Children: []m.Node{
			&m.Case{Name: "a"},
			&m.Group{Name: "errors", Kind: m.KindWhen, Children: []m.Node{&m.Case{Name: "b"}}},
		},
	}
	cli := &m.Group{Name: "cli", Children: []m.Node{&m.Case{Name: "c"}}}

	var out bytes.Buffer

	err := DisplaySuites(context.Background(), &out, []m.Suite{
		{Path: "api_suite.yaml", Groups: []*m.Group{api}},
		{Path: "cli_suite.yaml", Groups: []*m.Group{cli}},
	})
	require.NoError(t, err)

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "\n"))
	assert.Contains(t, text, "PATH")
	assert.Contains(t, text, "HOOKS")
	assert.Regexp(t, `api_suite\.yaml\s+\|?\s*2\s+\|?\s*2\s+\|?\s*2`, text)
	assert.Regexp(t, `cli_suite\.yaml\s+\|?\s*1\s+\|?\s*1\s+\|?\s*0`, text)
	assert.Regexp(t, `TOTAL FILES 2\s+\|?\s*3\s+\|?\s*3\s+\|?\s*2`, text)
}

func TestDisplaySuites_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer

	err := DisplaySuites(ctx, &out, nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}
