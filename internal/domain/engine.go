package domain

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"latte.dev/pkg/latte/internal/controller"
	m "latte.dev/pkg/latte/internal/model"
)

// Engine walks a test tree depth-first, runs hooks and cases in order and
// streams every outcome to a reporter.
type Engine interface {
	// Run executes the tree under root and returns after the reporter has
	// been told the run finished. Case and hook failures are reported, not
	// returned; the error is non-nil only when the reporter fails or ctx is
	// cancelled. A reporter that is also an io.Closer is closed when Run
	// returns, on every path.
	Run(ctx context.Context, root *m.Group, reporter controller.Reporter) (m.Totals, error)
}

type engine struct {
	cfg engineConfig
}

// NewEngine constructs an Engine.
func NewEngine(options ...EngineOption) Engine {
	cfg := engineConfig{policy: RecordPerCase}
	for _, option := range options {
		option(&cfg)
	}

	return &engine{cfg: cfg}
}

func (e *engine) Run(ctx context.Context, root *m.Group, reporter controller.Reporter) (m.Totals, error) {
	r := &run{
		cfg:      e.cfg,
		reporter: reporter,
		id:       uuid.NewString(),
	}

	slog.Info("run started", "run_id", r.id, "timeout", e.cfg.timeout, "hook_failures", e.cfg.policy)

	if closer, ok := reporter.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				slog.Error("close reporter", "run_id", r.id, "error", err)
			}
		}()
	}

	if err := reporter.RunStarted(ctx); err != nil {
		return m.Totals{}, fmt.Errorf("report run start: %w", err)
	}

	if root != nil {
		if err := r.group(ctx, root, 0); err != nil {
			slog.Error("run aborted", "run_id", r.id, "error", err)
			return r.totals, err
		}
	}

	if err := reporter.RunFinished(ctx, r.totals); err != nil {
		return r.totals, fmt.Errorf("report run finish: %w", err)
	}

	slog.Info("run finished", "run_id", r.id,
		"passing", r.totals.Passing, "failing", r.totals.Failing, "pending", r.totals.Pending)

	return r.totals, ctx.Err()
}

// frame is a group on the traversal stack.
type frame struct {
	group     *m.Group
	depth     int
	announced bool
	started   bool // before-all hooks were attempted
	blocked   bool // a before-all hook failed

	failedEach map[int]bool // before-each hooks already recorded as failing
}

// link is one hook of a case's applicable chain.
type link struct {
	level int // index into the stack of the declaring group
	index int // position among the group's hooks of the same kind
	hook  m.Hook
}

// run is the state of one execution. Nothing survives between runs.
type run struct {
	cfg      engineConfig
	reporter controller.Reporter
	id       string
	totals   m.Totals
	sequence int
	stack    []*frame
}

func (r *run) group(ctx context.Context, g *m.Group, depth int) error {
	f := &frame{group: g, depth: depth}
	r.stack = append(r.stack, f)

	for _, child := range g.Children {
		var err error

		switch c := child.(type) {
		case *m.Group:
			err = r.group(ctx, c, depth+1)
		case *m.Case:
			err = r.testCase(ctx, c)
		}

		if err != nil {
			return err
		}
	}

	if f.started {
		if err := r.runAll(ctx, len(r.stack)-1, m.HookAfter); err != nil {
			return err
		}
	}

	r.stack = r.stack[:len(r.stack)-1]

	return nil
}

func (r *run) testCase(ctx context.Context, c *m.Case) error {
	top := len(r.stack) - 1
	outcome := m.Outcome{Subject: m.SubjectCase, Label: c.Name, Depth: r.stack[top].depth}

	if !c.Runnable() || ctx.Err() != nil || r.blocked() {
		outcome.Status = m.Pending
		if c.Skip {
			outcome.Status = m.Skipped
		}

		return r.conclude(ctx, top, outcome)
	}

	blocked, err := r.start(ctx)
	if err != nil {
		return err
	}

	if blocked {
		outcome.Status = m.Pending
		return r.conclude(ctx, top, outcome)
	}

	completed, err := r.beforeEach(ctx, outcome.Depth)
	if err != nil {
		return err
	}

	if completed == len(r.stack) {
		if caught := invoke(ctx, c.Fn, r.cfg.timeout); caught != nil {
			outcome.Status = m.Failing
			outcome.Failure = r.record(top, c.Name, *caught)
		} else {
			outcome.Status = m.Passing
		}
	} else {
		outcome.Status = m.Pending
	}

	if err := r.conclude(ctx, top, outcome); err != nil {
		return err
	}

	return r.afterEach(ctx, completed, outcome.Depth)
}

// start runs the before-all hooks of every group on the stack that has not
// started yet, outermost first. It reports whether the case is blocked.
func (r *run) start(ctx context.Context) (bool, error) {
	for level, f := range r.stack {
		if f.started {
			continue
		}

		f.started = true

		for _, hook := range f.group.HooksOf(m.HookBefore) {
			caught := invoke(ctx, hook.Fn, r.cfg.timeout)
			if caught == nil {
				continue
			}

			f.blocked = true

			return true, r.hookFailed(ctx, level, level, f.depth, hook, *caught)
		}
	}

	return false, nil
}

// beforeEach runs the before-each chain from the root down. It returns the
// number of stack levels whose before-each hooks all completed.
func (r *run) beforeEach(ctx context.Context, depth int) (int, error) {
	var chain []link

	for level, f := range r.stack {
		for i, hook := range f.group.HooksOf(m.HookBeforeEach) {
			chain = append(chain, link{level: level, index: i, hook: hook})
		}
	}

	for _, l := range chain {
		f := r.stack[l.level]

		if r.cfg.policy == RecordOnce && f.failedEach[l.index] {
			return l.level, nil
		}

		caught := invoke(ctx, l.hook.Fn, r.cfg.timeout)
		if caught == nil {
			continue
		}

		if r.cfg.policy == RecordOnce {
			if f.failedEach == nil {
				f.failedEach = map[int]bool{}
			}

			f.failedEach[l.index] = true
		}

		return l.level, r.hookFailed(ctx, len(r.stack)-1, l.level, depth, l.hook, *caught)
	}

	return len(r.stack), nil
}

// afterEach runs the after-each hooks of the first completed levels, from the
// innermost group outwards.
func (r *run) afterEach(ctx context.Context, completed, depth int) error {
	for level := completed - 1; level >= 0; level-- {
		for _, hook := range r.stack[level].group.HooksOf(m.HookAfterEach) {
			caught := invoke(ctx, hook.Fn, r.cfg.timeout)
			if caught == nil {
				continue
			}

			if err := r.hookFailed(ctx, len(r.stack)-1, level, depth, hook, *caught); err != nil {
				return err
			}
		}
	}

	return nil
}

// runAll runs the once-per-group hooks of the given kind declared at level.
func (r *run) runAll(ctx context.Context, level int, kind m.HookKind) error {
	f := r.stack[level]

	for _, hook := range f.group.HooksOf(kind) {
		caught := invoke(ctx, hook.Fn, r.cfg.timeout)
		if caught == nil {
			continue
		}

		if err := r.hookFailed(ctx, level, level, f.depth, hook, *caught); err != nil {
			return err
		}
	}

	return nil
}

// hookFailed records and reports a failing hook. Groups are announced down
// to announce; the failure path ends at the declaring group at level.
func (r *run) hookFailed(ctx context.Context, announce, level, depth int, hook m.Hook, caught m.CaughtError) error {
	label := hook.Label()

	return r.conclude(ctx, announce, m.Outcome{
		Subject: m.SubjectHook,
		Label:   label,
		Depth:   depth,
		Status:  m.Failing,
		Failure: r.record(level, label, caught),
	})
}

// record assigns the next sequence number to a failure declared at level.
func (r *run) record(level int, label string, caught m.CaughtError) *m.FailureRecord {
	r.sequence++

	return &m.FailureRecord{
		Number: r.sequence,
		Path:   r.pathTo(level),
		Label:  label,
		Error:  caught,
	}
}

// conclude announces the groups down to level, updates the totals and
// reports the outcome.
func (r *run) conclude(ctx context.Context, level int, outcome m.Outcome) error {
	if err := r.announce(ctx, level); err != nil {
		return err
	}

	switch outcome.Status {
	case m.Passing:
		r.totals.Passing++
	case m.Failing:
		r.totals.Failing++
	case m.Pending, m.Skipped:
		r.totals.Pending++
	}

	slog.Debug("outcome", "run_id", r.id, "label", outcome.Label, "status", outcome.Status, "depth", outcome.Depth)

	if err := r.reporter.Concluded(ctx, outcome); err != nil {
		return fmt.Errorf("report outcome %q: %w", outcome.Label, err)
	}

	return nil
}

// announce emits the group-entered event of every unannounced group on the
// stack up to level. The root group is never announced.
func (r *run) announce(ctx context.Context, level int) error {
	for i := 1; i <= level && i < len(r.stack); i++ {
		f := r.stack[i]
		if f.announced {
			continue
		}

		f.announced = true

		entry := m.GroupEntry{Name: f.group.Name, Kind: f.group.Kind, Title: f.group.Title(), Depth: f.depth}
		if err := r.reporter.GroupEntered(ctx, entry); err != nil {
			return fmt.Errorf("report group %q: %w", entry.Title, err)
		}
	}

	return nil
}

func (r *run) blocked() bool {
	for _, f := range r.stack {
		if f.blocked {
			return true
		}
	}

	return false
}

// pathTo returns the titles of the groups from the top level down to level.
func (r *run) pathTo(level int) []string {
	path := make([]string, 0, level)

	for i := 1; i <= level && i < len(r.stack); i++ {
		path = append(path, r.stack[i].group.Title())
	}

	return path
}
