package latte_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"latte.dev/pkg/latte/pkg/latte"
)

func TestRun(t *testing.T) {
	guarded := &latte.Group{
		Name:     "the cache is cold",
		Kind:     latte.KindWhen,
		Hooks:    []latte.Hook{{Kind: latte.HookBeforeEach, Name: "warm up", Fn: func(*latte.T) error { return errors.New("miss") }}},
		Children: []latte.Node{&latte.Case{Name: "serves", Fn: func(*latte.T) error { return nil }}},
	}

	root := &latte.Group{Children: []latte.Node{
		&latte.Group{Name: "cache", Children: []latte.Node{
			&latte.Case{Name: "stores", Fn: func(t *latte.T) error {
				assert.Equal(t, 2, 1+1)
				return nil
			}},
			guarded,
		}},
	}}

	var out bytes.Buffer

	totals, err := latte.Run(context.Background(), root, latte.NewConsoleReporter(&out), latte.WithHookFailurePolicy(latte.RecordOnce))
	require.NoError(t, err)

	assert.Equal(t, latte.Totals{Passing: 1, Failing: 1, Pending: 1}, totals)
	assert.Contains(t, out.String(), "  1) cache when the cache is cold \"beforeEach\" hook \"warm up\":\n")
}

func ExampleRun() {
	root := &latte.Group{Children: []latte.Node{
		&latte.Group{Name: "math", Children: []latte.Node{
			&latte.Group{Name: "adding", Kind: latte.KindWhen, Children: []latte.Node{
				&latte.Case{Name: "sums", Fn: func(*latte.T) error { return nil }},
				&latte.Case{Name: "carries"},
			}},
		}},
	}}

	_, _ = latte.Run(context.Background(), root, latte.NewConsoleReporter(os.Stdout))
	// Output:
	//
	//
	//   math
	//     when adding
	//       ✓ sums
	//       - carries
	//
	//
	//   1 passing
	//   1 pending
}

// statusCounter is a reporter written against the public API only.
type statusCounter struct {
	byStatus map[latte.Status]int
	hooks    int
}

func (c *statusCounter) RunStarted(context.Context) error { return nil }

func (c *statusCounter) GroupEntered(context.Context, latte.GroupEntry) error { return nil }

func (c *statusCounter) Concluded(_ context.Context, outcome latte.Outcome) error {
	if outcome.Subject == latte.SubjectHook {
		c.hooks++
	}

	switch outcome.Status {
	case latte.Passing, latte.Failing, latte.Pending, latte.Skipped:
		c.byStatus[outcome.Status]++
	}

	return nil
}

func (c *statusCounter) RunFinished(context.Context, latte.Totals) error { return nil }

func TestRun_CustomReporter(t *testing.T) {
	group := &latte.Group{
		Name:  "custom",
		Hooks: []latte.Hook{{Kind: latte.HookAfterEach, Fn: func(*latte.T) error { return errors.New("leak") }}},
		Children: []latte.Node{
			&latte.Case{Name: "ok", Fn: func(*latte.T) error { return nil }},
			&latte.Case{Name: "todo"},
			&latte.Case{Name: "later", Fn: func(*latte.T) error { return nil }, Skip: true},
		},
	}

	counter := &statusCounter{byStatus: map[latte.Status]int{}}

	_, err := latte.Run(context.Background(), &latte.Group{Children: []latte.Node{group}}, counter)
	require.NoError(t, err)

	assert.Equal(t, map[latte.Status]int{latte.Passing: 1, latte.Failing: 1, latte.Pending: 1, latte.Skipped: 1}, counter.byStatus)
	assert.Equal(t, 1, counter.hooks)
}
