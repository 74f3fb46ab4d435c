// Package model defines the test tree and the outcome types produced by a run.
package model

import "fmt"

// GroupKind selects how a group is rendered.
type GroupKind string

const (
	// KindDescribe is a plain scope-opening group, rendered by name alone.
	KindDescribe GroupKind = "describe"
	// KindWhen is a condition group, rendered as "when <name>".
	KindWhen GroupKind = "when"
)

// HookKind identifies when a hook runs relative to the cases it guards.
type HookKind string

const (
	// HookBefore runs once before the first runnable case of its group.
	HookBefore HookKind = "before"
	// HookAfter runs once when its group is left.
	HookAfter HookKind = "after"
	// HookBeforeEach runs before every runnable descendant case.
	HookBeforeEach HookKind = "beforeEach"
	// HookAfterEach runs after every runnable descendant case.
	HookAfterEach HookKind = "afterEach"
)

// Func is the body of a case or a hook. A returned error or a panic fails it.
type Func func(t *T) error

// Node is a child of a Group: either a *Group or a *Case.
type Node interface {
	node()
}

// Hook is a function scoped to a Group and run around its descendant cases.
type Hook struct {
	Kind HookKind
	Name string // optional
	Fn   Func
}

// Label is the synthetic name a failing hook is reported under,
// e.g. `"beforeEach" hook` or `"beforeEach" hook "reset db"`.
func (h Hook) Label() string {
	if h.Name == "" {
		return fmt.Sprintf("%q hook", string(h.Kind))
	}

	return fmt.Sprintf("%q hook %q", string(h.Kind), h.Name)
}

// Group is a named, ordered container of child groups and cases plus the hooks
// scoped to them. The root group passed to a run is an anonymous container:
// it is never rendered and its name is not part of any path.
type Group struct {
	Name     string
	Kind     GroupKind
	Hooks    []Hook
	Children []Node
}

func (*Group) node() {}

// Title is the text a group contributes to output lines and failure paths.
func (g *Group) Title() string {
	if g.Kind == KindWhen {
		return "when " + g.Name
	}

	return g.Name
}

// HooksOf returns the group's hooks of the given kind in declaration order.
func (g *Group) HooksOf(kind HookKind) []Hook {
	var hooks []Hook

	for _, h := range g.Hooks {
		if h.Kind == kind {
			hooks = append(hooks, h)
		}
	}

	return hooks
}

// Case is a named leaf. A nil Fn marks it pending; Skip marks it skipped even
// when a body is present. Neither is ever invoked.
type Case struct {
	Name string
	Fn   Func
	Skip bool
}

func (*Case) node() {}

// Runnable reports whether the case body will be invoked.
func (c *Case) Runnable() bool {
	return !c.Skip && c.Fn != nil
}

// Counts summarizes the shape of a tree.
type Counts struct {
	Groups int
	Cases  int
	Hooks  int
}

// Count walks g and counts its descendant groups, cases and hooks.
// The group itself is counted as well.
func Count(g *Group) Counts {
	counts := Counts{Groups: 1, Hooks: len(g.Hooks)}

	for _, child := range g.Children {
		switch c := child.(type) {
		case *Group:
			sub := Count(c)
			counts.Groups += sub.Groups
			counts.Cases += sub.Cases
			counts.Hooks += sub.Hooks
		case *Case:
			counts.Cases++
		}
	}

	return counts
}
