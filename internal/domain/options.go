package domain

import (
	"fmt"
	"strings"
	"time"
)

// HookFailurePolicy decides how often a failing before-each hook is recorded
// when it guards several cases.
type HookFailurePolicy int

const (
	// RecordPerCase re-invokes the hook for every guarded case and records
	// each failure separately.
	RecordPerCase HookFailurePolicy = iota
	// RecordOnce records the first failure only. Later cases in the same
	// group are reported pending without invoking the hook again.
	RecordOnce
)

func (p HookFailurePolicy) String() string {
	switch p {
	case RecordPerCase:
		return "per-case"
	case RecordOnce:
		return "once"
	default:
		return "unknown"
	}
}

// ParseHookFailurePolicy parses "per-case" or "once". An empty string means
// RecordPerCase.
func ParseHookFailurePolicy(value string) (HookFailurePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "per-case", "per_case":
		return RecordPerCase, nil
	case "once":
		return RecordOnce, nil
	default:
		return RecordPerCase, fmt.Errorf("unknown hook failure policy %q", value)
	}
}

// EngineOption is a functional option for NewEngine.
type EngineOption func(*engineConfig)

type engineConfig struct {
	timeout time.Duration
	policy  HookFailurePolicy
}

// WithTimeout bounds every case and hook body. Zero disables the bound.
func WithTimeout(timeout time.Duration) EngineOption {
	return func(c *engineConfig) {
		c.timeout = timeout
	}
}

// WithHookFailurePolicy sets how before-each hook failures are recorded.
func WithHookFailurePolicy(policy HookFailurePolicy) EngineOption {
	return func(c *engineConfig) {
		c.policy = policy
	}
}
