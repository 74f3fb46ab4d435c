// Package latte runs BDD style test trees built in Go and reports them on a
// console. Trees are plain values: nested Groups of Cases with Hooks.
package latte

import (
	"context"
	"io"

	"latte.dev/pkg/latte/internal/controller"
	"latte.dev/pkg/latte/internal/domain"
	m "latte.dev/pkg/latte/internal/model"
)

type (
	// Group is a named container of child groups and cases.
	Group = m.Group
	// Case is a named leaf with an optional body.
	Case = m.Case
	// Hook runs around the cases of its group.
	Hook = m.Hook
	// Node is a *Group or a *Case.
	Node = m.Node
	// Func is a case or hook body.
	Func = m.Func
	// T is handed to every body; testify's assert and require accept it.
	T = m.T
	// GroupKind selects how a group line is rendered.
	GroupKind = m.GroupKind
	// HookKind selects when a hook runs.
	HookKind = m.HookKind
	// Status classifies an Outcome.
	Status = m.Status
	// Subject tells a case Outcome from a hook Outcome.
	Subject = m.Subject
	// Totals are the counters of a finished run.
	Totals = m.Totals
	// GroupEntry, Outcome and FailureRecord make up the reporter events.
	GroupEntry    = m.GroupEntry
	Outcome       = m.Outcome
	FailureRecord = m.FailureRecord
	// Reporter consumes the events of a run.
	Reporter = controller.Reporter
	// Option configures a run.
	Option = domain.EngineOption
	// ReporterOption configures the console reporter.
	ReporterOption = controller.ReporterOption
)

// Group kinds.
const (
	// KindDescribe groups render by name alone.
	KindDescribe = m.KindDescribe
	// KindWhen groups render as "when <name>".
	KindWhen = m.KindWhen
)

// Hook kinds, in the order they run around a case.
const (
	// HookBefore runs once before the first runnable case of its group.
	HookBefore = m.HookBefore
	// HookBeforeEach runs before every runnable case beneath its group.
	HookBeforeEach = m.HookBeforeEach
	// HookAfterEach runs after every runnable case beneath its group.
	HookAfterEach = m.HookAfterEach
	// HookAfter runs once when its group is left.
	HookAfter = m.HookAfter
)

// Outcome statuses and subjects, for custom reporters.
const (
	Passing = m.Passing
	Failing = m.Failing
	Pending = m.Pending
	Skipped = m.Skipped

	SubjectCase = m.SubjectCase
	SubjectHook = m.SubjectHook
)

// Hook failure policies for WithHookFailurePolicy.
const (
	// RecordPerCase records a failing beforeEach hook once per guarded case.
	RecordPerCase = domain.RecordPerCase
	// RecordOnce records a failing beforeEach hook once per group.
	RecordOnce = domain.RecordOnce
)

var (
	// WithTimeout bounds every case and hook body.
	WithTimeout = domain.WithTimeout
	// WithHookFailurePolicy selects RecordPerCase or RecordOnce.
	WithHookFailurePolicy = domain.WithHookFailurePolicy
	// WithColor enables ANSI colors in the console reporter.
	WithColor = controller.WithColor
	// WithSpillDir keeps the failure recap in a temporary file under dir.
	WithSpillDir = controller.WithSpillDir
)

// Run executes the tree under root, which is an anonymous container, and
// returns once reporter has written the summary. Failures are reported, not
// returned.
func Run(ctx context.Context, root *Group, reporter Reporter, options ...Option) (Totals, error) {
	return domain.NewEngine(options...).Run(ctx, root, reporter)
}

// NewConsoleReporter returns the default indented reporter writing to out.
func NewConsoleReporter(out io.Writer, options ...ReporterOption) Reporter {
	return controller.NewDefaultReporter(out, options...)
}
