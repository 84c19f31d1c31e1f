package poll

import (
	"context"
	"fmt"
	"time"
)

// State classifies a fetched status payload.
type State int

const (
	// StatePending means the resource has reached neither a ready nor a
	// failed state and polling should continue.
	StatePending State = iota
	// StateReady terminates polling successfully.
	StateReady
	// StateFailed terminates polling with a FailureError.
	StateFailed
)

// Defaults match the demo scripts: a two second interval and a two minute
// budget. Slow resources (memory provisioning) raise MaxAttempts to 150.
const (
	DefaultInterval    = 2 * time.Second
	DefaultMaxAttempts = 60
)

// TimeoutError reports an exhausted attempt budget without the resource
// reaching a ready or failed state.
type TimeoutError struct {
	Attempts int
	Interval time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("status polling exhausted %d attempts at %s intervals", e.Attempts, e.Interval)
}

// FailureError reports that the remote resource entered a terminal failure
// state. Payload holds the last fetched status payload so callers can
// surface the remote diagnostics.
type FailureError struct {
	Payload any
}

func (e *FailureError) Error() string {
	return fmt.Sprintf("remote resource entered a failed state: %+v", e.Payload)
}

// Poller runs a bounded fixed-interval poll over a status fetch operation.
// The zero value is not usable; Fetch and Classify are required, the
// remaining fields default per the package constants.
type Poller[T any] struct {
	// Fetch retrieves the current status payload.
	Fetch func(ctx context.Context) (T, error)

	// Classify maps a payload onto the closed poll state set. Unknown
	// transient states must map to StatePending so new service states
	// keep the loop alive rather than aborting it.
	Classify func(T) State

	// Interval is the fixed sleep between attempts.
	Interval time.Duration

	// MaxAttempts bounds the loop. The loop always fetches at least once.
	MaxAttempts int

	// OnProgress, when set, is invoked after every pending attempt with
	// the one-based attempt number and the payload just fetched. Progress
	// reporting is a side channel and has no effect on the outcome.
	OnProgress func(attempt int, last T)
}

// Wait polls until the resource is ready, failed, the attempt budget is
// exhausted, or ctx is done. On success the ready payload is returned. On
// failure the last payload is returned together with a *FailureError; on an
// exhausted budget the last payload is returned with a *TimeoutError. Fetch
// errors are not retried and abort the loop immediately.
func (p Poller[T]) Wait(ctx context.Context) (T, error) {
	var last T

	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	maxAttempts := p.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		v, err := p.Fetch(ctx)
		if err != nil {
			return last, fmt.Errorf("fetch status: %w", err)
		}
		last = v

		switch p.Classify(v) {
		case StateReady:
			return v, nil
		case StateFailed:
			return v, &FailureError{Payload: v}
		}

		if p.OnProgress != nil {
			p.OnProgress(attempt, v)
		}

		// No sleep after the final attempt; the budget is on fetches.
		if attempt == maxAttempts {
			break
		}
		if err := sleep(ctx, interval); err != nil {
			return last, err
		}
	}

	return last, &TimeoutError{Attempts: maxAttempts, Interval: interval}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
