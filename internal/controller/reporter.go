// Package controller renders the events of a run for humans.
package controller

import (
	"context"

	m "latte.dev/pkg/latte/internal/model"
)

// Reporter consumes the result stream of a run. Events arrive synchronously
// and in traversal order. An error returned by any method aborts the run.
// A reporter holding resources may also implement io.Closer; the engine
// closes it when the run returns, aborted or not.
type Reporter interface {
	RunStarted(ctx context.Context) error
	// GroupEntered is called once per group with reachable cases, before the
	// first outcome beneath it.
	GroupEntered(ctx context.Context, entry m.GroupEntry) error
	// Concluded is called once per case and once per failing hook.
	Concluded(ctx context.Context, outcome m.Outcome) error
	RunFinished(ctx context.Context, totals m.Totals) error
}
