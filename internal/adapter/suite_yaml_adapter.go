package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"gopkg.in/yaml.v3"
	m "latte.dev/pkg/latte/internal/model"
)

// SuiteLoader turns a suite file into test groups.
type SuiteLoader interface {
	Load(ctx context.Context, path m.Path) (m.Suite, error)
}

// YAMLSuiteAdapter loads YAML suite files whose case and hook bodies are
// shell commands, run from the directory of the suite file.
type YAMLSuiteAdapter struct {
	fs     SuiteFSAdapter
	runner CommandRunnerAdapter
}

// NewYAMLSuiteAdapter constructs a YAMLSuiteAdapter.
func NewYAMLSuiteAdapter(fs SuiteFSAdapter, runner CommandRunnerAdapter) *YAMLSuiteAdapter {
	return &YAMLSuiteAdapter{fs: fs, runner: runner}
}

type hookSpec struct {
	Name string `yaml:"name"`
	Run  string `yaml:"run"`
}

type nodeSpec struct {
	Describe   *string    `yaml:"describe"`
	When       *string    `yaml:"when"`
	It         *string    `yaml:"it"`
	Run        string     `yaml:"run"`
	Skip       bool       `yaml:"skip"`
	Before     []hookSpec `yaml:"before"`
	After      []hookSpec `yaml:"after"`
	BeforeEach []hookSpec `yaml:"beforeEach"`
	AfterEach  []hookSpec `yaml:"afterEach"`
	Children   []nodeSpec `yaml:"children"`
}

type suiteSpec struct {
	nodeSpec `yaml:",inline"`
	Suites   []nodeSpec `yaml:"suites"`
}

// Load implements SuiteLoader.
func (a *YAMLSuiteAdapter) Load(ctx context.Context, path m.Path) (m.Suite, error) {
	content, err := a.fs.ReadFile(ctx, path)
	if err != nil {
		slog.Error("Failed to read suite", "path", path, "error", err)
		return m.Suite{}, fmt.Errorf("read suite %s: %w", path, err)
	}

	groups, err := a.decode(content, filepath.Dir(string(path)))
	if err != nil {
		slog.Error("Failed to decode suite", "path", path, "error", err)
		return m.Suite{}, fmt.Errorf("decode suite %s: %w", path, err)
	}

	return m.Suite{Path: path, Groups: groups}, nil
}

func (a *YAMLSuiteAdapter) decode(content []byte, dir string) ([]*m.Group, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)

	var doc suiteSpec
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty suite file")
		}

		return nil, err
	}

	specs := doc.Suites

	if doc.nodeSpec.isSet() {
		if len(specs) > 0 {
			return nil, errors.New("a suite file holds either one top-level group or a suites list")
		}

		specs = []nodeSpec{doc.nodeSpec}
	} else if doc.nodeSpec.hasGroupFields() || doc.Run != "" {
		return nil, errors.New("top-level hooks, children or run need a describe or when name")
	}

	if len(specs) == 0 {
		return nil, errors.New("no groups defined")
	}

	groups := make([]*m.Group, 0, len(specs))

	for i, s := range specs {
		node, err := a.build(s, dir, fmt.Sprintf("suites[%d]", i))
		if err != nil {
			return nil, err
		}

		group, ok := node.(*m.Group)
		if !ok {
			return nil, fmt.Errorf("suites[%d]: top-level entries must be describe or when groups", i)
		}

		groups = append(groups, group)
	}

	return groups, nil
}

func (s nodeSpec) isSet() bool {
	return s.Describe != nil || s.When != nil || s.It != nil
}

func (s nodeSpec) hasGroupFields() bool {
	return len(s.Before) > 0 || len(s.After) > 0 || len(s.BeforeEach) > 0 ||
		len(s.AfterEach) > 0 || len(s.Children) > 0
}

func (a *YAMLSuiteAdapter) build(s nodeSpec, dir, where string) (m.Node, error) {
	set := 0

	for _, name := range []*string{s.Describe, s.When, s.It} {
		if name != nil {
			set++
		}
	}

	if set != 1 {
		return nil, fmt.Errorf("%s: exactly one of describe, when or it must be set", where)
	}

	if s.It != nil {
		if s.hasGroupFields() {
			return nil, fmt.Errorf("%s: case %q cannot declare hooks or children", where, *s.It)
		}

		c := &m.Case{Name: *s.It, Skip: s.Skip}
		if s.Run != "" {
			c.Fn = a.command(dir, s.Run)
		}

		return c, nil
	}

	if s.Run != "" || s.Skip {
		return nil, fmt.Errorf("%s: run and skip apply to cases only", where)
	}

	group := &m.Group{Kind: m.KindDescribe}
	if s.Describe != nil {
		group.Name = *s.Describe
	} else {
		group.Name = *s.When
		group.Kind = m.KindWhen
	}

	hookSets := []struct {
		kind  m.HookKind
		specs []hookSpec
	}{
		{m.HookBefore, s.Before},
		{m.HookBeforeEach, s.BeforeEach},
		{m.HookAfterEach, s.AfterEach},
		{m.HookAfter, s.After},
	}

	for _, hs := range hookSets {
		for i, h := range hs.specs {
			if h.Run == "" {
				return nil, fmt.Errorf("%s.%s[%d]: hook has no run command", where, hs.kind, i)
			}

			group.Hooks = append(group.Hooks, m.Hook{Kind: hs.kind, Name: h.Name, Fn: a.command(dir, h.Run)})
		}
	}

	for i, child := range s.Children {
		node, err := a.build(child, dir, fmt.Sprintf("%s.children[%d]", where, i))
		if err != nil {
			return nil, err
		}

		group.Children = append(group.Children, node)
	}

	return group, nil
}

func (a *YAMLSuiteAdapter) command(dir, command string) m.Func {
	return func(t *m.T) error {
		_, err := a.runner.RunCommand(t.Context(), dir, command)
		return err
	}
}
