package controller

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	m "latte.dev/pkg/latte/internal/model"
	"latte.dev/pkg/latte/pkg"
)

const (
	indentUnit    = "  "
	recapIndent   = "     "
	passSymbol    = "✓"
	pendingSymbol = "-"
)

// ReporterOption configures a DefaultReporter.
type ReporterOption func(*reporterConfig)

type reporterConfig struct {
	color    bool
	spillDir string
}

// WithColor enables ANSI colors for symbols and summary counts.
func WithColor(enabled bool) ReporterOption {
	return func(c *reporterConfig) {
		c.color = enabled
	}
}

// WithSpillDir buffers failure records in a temporary file under dir until
// the recap is written, instead of in memory.
func WithSpillDir(dir string) ReporterOption {
	return func(c *reporterConfig) {
		c.spillDir = dir
	}
}

type palette struct {
	pass    func(string) string
	fail    func(string) string
	pending func(string) string
}

func plainPalette() palette {
	identity := func(s string) string { return s }
	return palette{pass: identity, fail: identity, pending: identity}
}

func colorPalette(w io.Writer) palette {
	renderer := lipgloss.NewRenderer(w)
	renderer.SetColorProfile(termenv.ANSI)

	style := func(color string) func(string) string {
		s := renderer.NewStyle().Foreground(lipgloss.Color(color))
		return func(text string) string { return s.Render(text) }
	}

	return palette{
		pass:    style("2"),
		fail:    style("1"),
		pending: style("6"),
	}
}

// DefaultReporter writes an indented tree of groups and cases as they
// conclude, followed by a summary and a recap of every failure.
type DefaultReporter struct {
	out      io.Writer
	colors   palette
	spillDir string
	failures pkg.Spill[m.FailureRecord]
}

// NewDefaultReporter creates a DefaultReporter writing to out.
func NewDefaultReporter(out io.Writer, options ...ReporterOption) *DefaultReporter {
	cfg := reporterConfig{}
	for _, option := range options {
		option(&cfg)
	}

	colors := plainPalette()
	if cfg.color {
		colors = colorPalette(out)
	}

	return &DefaultReporter{
		out:      out,
		colors:   colors,
		spillDir: cfg.spillDir,
	}
}

// RunStarted resets the failure buffer and writes the two blank lines that
// open the transcript.
func (r *DefaultReporter) RunStarted(_ context.Context) error {
	r.closeFailures()

	if err := r.openFailures(); err != nil {
		return err
	}

	return r.printf("\n\n")
}

// GroupEntered writes the group line.
func (r *DefaultReporter) GroupEntered(_ context.Context, entry m.GroupEntry) error {
	return r.printf("%s%s\n", indent(entry.Depth), entry.Title)
}

// Concluded writes the case or hook line and buffers failures for the recap.
func (r *DefaultReporter) Concluded(_ context.Context, outcome m.Outcome) error {
	prefix := indent(outcome.Depth + 1)

	switch outcome.Status {
	case m.Passing:
		return r.printf("%s%s %s\n", prefix, r.colors.pass(passSymbol), outcome.Label)
	case m.Pending, m.Skipped:
		return r.printf("%s%s %s\n", prefix, r.colors.pending(pendingSymbol), outcome.Label)
	case m.Failing:
		if outcome.Failure == nil {
			return fmt.Errorf("failing outcome %q carries no failure record", outcome.Label)
		}

		if err := r.openFailures(); err != nil {
			return err
		}

		if err := r.failures.Append(*outcome.Failure); err != nil {
			return fmt.Errorf("buffer failure %d: %w", outcome.Failure.Number, err)
		}

		number := fmt.Sprintf("%d)", outcome.Failure.Number)

		return r.printf("%s%s %s\n", prefix, r.colors.fail(number), outcome.Label)
	default:
		return fmt.Errorf("unknown status %v for %q", outcome.Status, outcome.Label)
	}
}

// RunFinished writes the summary and the failure recap.
func (r *DefaultReporter) RunFinished(_ context.Context, totals m.Totals) error {
	defer r.closeFailures()

	if err := r.printf("\n\n"); err != nil {
		return err
	}

	if err := r.printf("%s%s\n", indentUnit, r.colors.pass(fmt.Sprintf("%d passing", totals.Passing))); err != nil {
		return err
	}

	if totals.Failing > 0 {
		if err := r.printf("%s%s\n", indentUnit, r.colors.fail(fmt.Sprintf("%d failing", totals.Failing))); err != nil {
			return err
		}
	}

	if totals.Pending > 0 {
		if err := r.printf("%s%s\n", indentUnit, r.colors.pending(fmt.Sprintf("%d pending", totals.Pending))); err != nil {
			return err
		}
	}

	if totals.Failing == 0 {
		return nil
	}

	if err := r.printf("\n"); err != nil {
		return err
	}

	if r.failures == nil {
		return nil
	}

	return r.failures.Range(func(_ uint64, record m.FailureRecord) error {
		return r.printRecap(record)
	})
}

// Close releases the failure buffer of an unfinished run. The reporter can
// be started again afterwards.
func (r *DefaultReporter) Close() error {
	if r.failures == nil {
		return nil
	}

	err := r.failures.Close()
	r.failures = nil

	return err
}

func (r *DefaultReporter) printRecap(record m.FailureRecord) error {
	if err := r.printf("%s%d) %s:\n", indentUnit, record.Number, record.Title()); err != nil {
		return err
	}

	lines := strings.Split(record.Error.Type, "\n")
	if record.Error.Message != "" {
		lines = strings.Split(record.Error.Type+": "+record.Error.Message, "\n")
	}

	for _, line := range lines {
		if err := r.printf("%s%s\n", recapIndent, r.colors.fail(line)); err != nil {
			return err
		}
	}

	return nil
}

func (r *DefaultReporter) openFailures() error {
	if r.failures != nil {
		return nil
	}

	if r.spillDir == "" {
		r.failures = pkg.NewMemorySpill[m.FailureRecord]()
		return nil
	}

	spill, err := pkg.NewFileSpill[m.FailureRecord](r.spillDir)
	if err != nil {
		return fmt.Errorf("open failure buffer: %w", err)
	}

	r.failures = spill

	return nil
}

func (r *DefaultReporter) closeFailures() {
	_ = r.Close()
}

func (r *DefaultReporter) printf(format string, args ...any) error {
	_, err := fmt.Fprintf(r.out, format, args...)
	return err
}

func indent(depth int) string {
	if depth <= 0 {
		return ""
	}

	return strings.Repeat(indentUnit, depth)
}
