package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"latte.dev/pkg/latte/internal/adapter"
	"latte.dev/pkg/latte/internal/controller"
	m "latte.dev/pkg/latte/internal/model"
)

// ErrNoSuites is returned when no suite file matches the given patterns.
var ErrNoSuites = errors.New("no suite files found")

// LoadArgs selects the suite files to load.
type LoadArgs struct {
	Patterns []string
	Exclude  []string
	Parallel int // suite files decoded concurrently; < 1 means 1
}

// RunArgs contains the arguments for running suites.
type RunArgs struct {
	LoadArgs
	Reporter     controller.Reporter
	Timeout      time.Duration
	HookFailures HookFailurePolicy
}

// ListArgs contains the arguments for listing suites.
type ListArgs struct {
	LoadArgs
	Out io.Writer
}

// Workflow is what the CLI commands drive.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) (m.Totals, error)
	List(ctx context.Context, args ListArgs) error
}

type workflow struct {
	adapter.SuiteFSAdapter
	adapter.SuiteLoader
}

// NewWorkflow creates a Workflow that discovers suite files with fsAdapter
// and decodes them with loader.
func NewWorkflow(fsAdapter adapter.SuiteFSAdapter, loader adapter.SuiteLoader) Workflow {
	return &workflow{
		SuiteFSAdapter: fsAdapter,
		SuiteLoader:    loader,
	}
}

// Run loads every matching suite and runs them, in file order, as one tree.
func (w *workflow) Run(ctx context.Context, args RunArgs) (m.Totals, error) {
	suites, err := w.load(ctx, args.LoadArgs)
	if err != nil {
		return m.Totals{}, err
	}

	engine := NewEngine(
		WithTimeout(args.Timeout),
		WithHookFailurePolicy(args.HookFailures),
	)

	return engine.Run(ctx, m.Root(suites), args.Reporter)
}

// List loads every matching suite and displays a table of their sizes.
func (w *workflow) List(ctx context.Context, args ListArgs) error {
	suites, err := w.load(ctx, args.LoadArgs)
	if err != nil {
		return err
	}

	return controller.DisplaySuites(ctx, args.Out, suites)
}

func (w *workflow) load(ctx context.Context, args LoadArgs) ([]m.Suite, error) {
	paths, err := w.Glob(ctx, args.Patterns, args.Exclude...)
	if err != nil {
		slog.Error("Failed to find suite files", "patterns", args.Patterns, "error", err)
		return nil, fmt.Errorf("find suites: %w", err)
	}

	if len(paths) == 0 {
		return nil, ErrNoSuites
	}

	threads := args.Parallel
	if threads < 1 {
		threads = 1
	}

	suites := make([]m.Suite, len(paths))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(threads)

	for i, path := range paths {
		group.Go(func() error {
			suite, err := w.Load(groupCtx, path)
			if err != nil {
				return err
			}

			suites[i] = suite

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("load suites: %w", err)
	}

	slog.Debug("Suites loaded", "count", len(suites), "threads", threads)

	return suites, nil
}
