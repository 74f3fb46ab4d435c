package model

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the classified result of a case or hook.
type Status int

const (
	// Passing indicates the body returned normally.
	Passing Status = iota
	// Failing indicates the body returned an error or panicked.
	Failing
	// Pending indicates the case has no body or was never invoked.
	Pending
	// Skipped indicates the case was explicitly skipped.
	Skipped
)

func (s Status) String() string {
	switch s {
	case Passing:
		return "passing"
	case Failing:
		return "failing"
	case Pending:
		return "pending"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Subject tells whether an outcome belongs to a case or to a hook.
type Subject int

const (
	// SubjectCase is a test case outcome.
	SubjectCase Subject = iota
	// SubjectHook is a hook outcome. Only failing hooks are reported.
	SubjectHook
)

// CaughtError is a captured failure: the dynamic type of the raised value and
// its message, if any. The original error stays reachable through Unwrap
// within the process that caught it.
type CaughtError struct {
	Type    string
	Message string

	err error
}

// NewCaughtError captures err.
func NewCaughtError(err error) CaughtError {
	if err == nil {
		return CaughtError{}
	}

	var caught CaughtError
	if errors.As(err, &caught) {
		return caught
	}

	return CaughtError{
		Type:    fmt.Sprintf("%T", err),
		Message: err.Error(),
		err:     err,
	}
}

// CaughtPanic captures a recovered panic value.
func CaughtPanic(v any) CaughtError {
	if err, ok := v.(error); ok {
		return NewCaughtError(err)
	}

	return CaughtError{
		Type:    fmt.Sprintf("%T", v),
		Message: fmt.Sprint(v),
	}
}

func (e CaughtError) Error() string {
	if e.Message == "" {
		return e.Type
	}

	return e.Type + ": " + e.Message
}

func (e CaughtError) Unwrap() error {
	return e.err
}

// FailureRecord is a failing outcome together with where it happened and the
// 1-based sequence number it was assigned during the run.
type FailureRecord struct {
	Number int
	Path   []string // titles of the enclosing groups, outermost first
	Label  string   // case name or hook label
	Error  CaughtError
}

// Title joins the path and the label, e.g. "describe when when failing test".
func (r FailureRecord) Title() string {
	parts := make([]string, 0, len(r.Path)+1)
	parts = append(parts, r.Path...)
	parts = append(parts, r.Label)

	return strings.Join(parts, " ")
}

// GroupEntry announces the first visit of a group that has reachable cases.
type GroupEntry struct {
	Name  string
	Kind  GroupKind
	Title string
	Depth int // 1 for top-level groups under the root
}

// Outcome is one concluded case, or one failing hook.
type Outcome struct {
	Subject Subject
	Label   string
	Depth   int // depth of the enclosing group; lines render at Depth+1
	Status  Status
	Failure *FailureRecord // set when Status is Failing
}

// Totals are the counters of a run.
type Totals struct {
	Passing int
	Failing int
	Pending int
}

// AssertionError collects the messages reported through T.Errorf.
type AssertionError struct {
	Messages []string
}

func (e *AssertionError) Error() string {
	return strings.Join(e.Messages, "\n")
}
