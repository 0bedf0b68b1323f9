package execution

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/compozy/foodietour/pkg/logger"
	"github.com/compozy/foodietour/sdk/client"
)

const (
	DefaultPollInterval = 5 * time.Second
	DefaultMaxAttempts  = 0
)

// ErrMaxAttemptsExceeded is returned when the poll budget runs out before the
// execution reaches a terminal status.
var ErrMaxAttemptsExceeded = errors.New("execution did not finish within the allowed polls")

// StatusGetter fetches the current state of a remote execution.
type StatusGetter interface {
	GetExecution(ctx context.Context, executionID string) (*client.Execution, error)
}

// Options controls polling. MaxAttempts of zero polls until the execution
// finishes or the context is cancelled.
type Options struct {
	PollInterval time.Duration
	MaxAttempts  int
}

func DefaultOptions() Options {
	return Options{PollInterval: DefaultPollInterval, MaxAttempts: DefaultMaxAttempts}
}

// Outcome is the terminal execution together with the number of polls it took.
type Outcome struct {
	Execution *client.Execution
	Polls     int
}

// Succeeded reports whether the tracked execution finished successfully.
func (o *Outcome) Succeeded() bool {
	return o != nil && o.Execution.Succeeded()
}

// Tracker polls an execution until it reaches a terminal status.
type Tracker struct {
	getter StatusGetter
	opts   Options
}

func NewTracker(getter StatusGetter, opts Options) (*Tracker, error) {
	if getter == nil {
		return nil, fmt.Errorf("status getter is required")
	}
	if opts.PollInterval <= 0 {
		return nil, fmt.Errorf("poll interval must be positive, got %s", opts.PollInterval)
	}
	if opts.MaxAttempts < 0 {
		return nil, fmt.Errorf("max attempts must not be negative, got %d", opts.MaxAttempts)
	}
	return &Tracker{getter: getter, opts: opts}, nil
}

// pendingError marks a poll that observed a non-terminal status.
type pendingError struct {
	status client.ExecutionStatus
}

func (e *pendingError) Error() string {
	return fmt.Sprintf("execution still %s", e.status)
}

// Wait fetches the execution until its status is terminal. Fetch errors end
// tracking immediately.
func (t *Tracker) Wait(ctx context.Context, executionID string) (*Outcome, error) {
	id := strings.TrimSpace(executionID)
	if id == "" {
		return nil, fmt.Errorf("execution id is required")
	}
	log := logger.FromContext(ctx).With("exec_id", id)
	var backoff retry.Backoff = retry.NewConstant(t.opts.PollInterval)
	if t.opts.MaxAttempts > 0 {
		backoff = retry.WithMaxRetries(uint64(t.opts.MaxAttempts-1), backoff)
	}
	outcome := &Outcome{}
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		exec, err := t.getter.GetExecution(ctx, id)
		if err != nil {
			return fmt.Errorf("poll execution %s: %w", id, err)
		}
		if exec == nil {
			return fmt.Errorf("poll execution %s: empty response", id)
		}
		outcome.Polls++
		outcome.Execution = exec
		if exec.Status.IsTerminal() {
			return nil
		}
		log.Debug("execution pending", "attempt", outcome.Polls, "status", exec.Status)
		return retry.RetryableError(&pendingError{status: exec.Status})
	})
	if err != nil {
		var pending *pendingError
		if errors.As(err, &pending) {
			return outcome, fmt.Errorf(
				"%w: status %s after %d polls",
				ErrMaxAttemptsExceeded,
				pending.status,
				outcome.Polls,
			)
		}
		return outcome, err
	}
	log.Debug("execution finished", "status", outcome.Execution.Status, "polls", outcome.Polls)
	return outcome, nil
}
