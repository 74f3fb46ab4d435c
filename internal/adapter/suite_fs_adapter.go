// Package adapter contains the infrastructure adapters of the latte CLI.
package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	m "latte.dev/pkg/latte/internal/model"
)

// DefaultSuitePattern matches suite files anywhere below the working directory.
const DefaultSuitePattern = "**/*_suite.{yaml,yml}"

// SuiteFSAdapter hides filesystem access from the workflow so it can be
// tested without touching the disk.
type SuiteFSAdapter interface {
	// Glob expands patterns into suite files. Matches keep pattern order and
	// are sorted within a pattern; duplicates are dropped, as are paths
	// matching any exclude regular expression. A pattern naming a directory
	// is expanded with DefaultSuitePattern below it.
	Glob(ctx context.Context, patterns []string, exclude ...string) ([]m.Path, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(ctx context.Context, path m.Path) ([]byte, error)
}

// LocalSuiteFSAdapter implements SuiteFSAdapter on the local filesystem.
type LocalSuiteFSAdapter struct{}

// NewLocalSuiteFSAdapter constructs a LocalSuiteFSAdapter.
func NewLocalSuiteFSAdapter() *LocalSuiteFSAdapter {
	return &LocalSuiteFSAdapter{}
}

// Glob implements SuiteFSAdapter.
func (a *LocalSuiteFSAdapter) Glob(ctx context.Context, patterns []string, exclude ...string) ([]m.Path, error) {
	excludes, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	if len(patterns) == 0 {
		patterns = []string{DefaultSuitePattern}
	}

	seen := map[string]bool{}
	paths := make([]m.Path, 0)

	for _, pattern := range patterns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if info, statErr := os.Stat(pattern); statErr == nil && info.IsDir() {
			pattern = filepath.Join(pattern, DefaultSuitePattern)
		}

		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			slog.Error("Invalid suite pattern", "pattern", pattern, "error", err)
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}

		sort.Strings(matches)

		for _, match := range matches {
			if seen[match] || excluded(match, excludes) {
				continue
			}

			seen[match] = true
			paths = append(paths, m.Path(match))
		}
	}

	slog.Debug("Suite files matched", "patterns", patterns, "count", len(paths))

	return paths, nil
}

// ReadFile implements SuiteFSAdapter.
func (a *LocalSuiteFSAdapter) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.ReadFile(string(path))
}

func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		compiled = append(compiled, re)
	}

	return compiled, nil
}

func excluded(path string, excludes []*regexp.Regexp) bool {
	for _, re := range excludes {
		if re.MatchString(path) {
			return true
		}
	}

	return false
}
