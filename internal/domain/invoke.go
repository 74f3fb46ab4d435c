package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	m "latte.dev/pkg/latte/internal/model"
)

// TimeoutError is raised for a body that outlives its deadline.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout of %dms exceeded", e.Timeout.Milliseconds())
}

// invoke runs fn and returns what it raised, or nil when it returned normally.
func invoke(ctx context.Context, fn m.Func, timeout time.Duration) *m.CaughtError {
	if fn == nil {
		return nil
	}

	if timeout <= 0 {
		return call(m.NewT(ctx), fn)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan *m.CaughtError, 1)

	go func() {
		done <- call(m.NewT(ctx), fn)
	}()

	select {
	case caught := <-done:
		// A body that returns after noticing its deadline still timed out.
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return timedOut(timeout)
		}

		return caught
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return timedOut(timeout)
		}

		caught := m.NewCaughtError(ctx.Err())

		return &caught
	}
}

func timedOut(timeout time.Duration) *m.CaughtError {
	caught := m.NewCaughtError(&TimeoutError{Timeout: timeout})
	return &caught
}

func call(t *m.T, fn m.Func) (caught *m.CaughtError) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}

		var c m.CaughtError
		if m.IsFailNow(v) {
			c = m.NewCaughtError(t.Err())
		} else {
			c = m.CaughtPanic(v)
		}

		caught = &c
	}()

	err := fn(t)
	if err == nil {
		err = t.Err()
	}

	if err == nil {
		return nil
	}

	c := m.NewCaughtError(err)

	return &c
}
