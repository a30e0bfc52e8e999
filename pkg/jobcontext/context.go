package jobcontext

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type contextKey string

var (
	keyJobID     contextKey = "job_id"
	keyWorkerID  contextKey = "worker_id"
	keyAttempt   contextKey = "attempt"
	keyStartTime contextKey = "job_start_time"
)

const defaultMaxAttempts = 3

// Begin derives a per-job context carrying job metadata and a hard timeout
// so a stuck provider call cannot pin a worker forever.
func Begin(parent context.Context, jobID uuid.UUID, workerID int, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	ctx, cancel := context.WithTimeout(parent, timeout)
	ctx = context.WithValue(ctx, keyJobID, jobID)
	ctx = context.WithValue(ctx, keyWorkerID, workerID)
	ctx = context.WithValue(ctx, keyAttempt, 0)
	ctx = context.WithValue(ctx, keyStartTime, time.Now())
	return ctx, cancel
}

// Execute runs fn under the job context with panic recovery and retries.
// Only errors classified retryable trigger another attempt, with
// exponential backoff between attempts.
func Execute(ctx context.Context, fn func(context.Context) error) error {
	var err error

	for attempt := 0; attempt < defaultMaxAttempts; attempt++ {
		ctx = context.WithValue(ctx, keyAttempt, attempt)

		func() {
			defer func() {
				if p := recover(); p != nil {
					err = fmt.Errorf("panic recovered: %v", p)
				}
			}()
			if ctx.Err() != nil {
				err = fmt.Errorf("context cancelled before job execution: %w", ctx.Err())
				return
			}
			err = fn(ctx)
		}()

		if err == nil {
			return nil
		}
		if !IsRetryableError(err) {
			return fmt.Errorf("non-retryable error: %w", err)
		}
		if attempt+1 >= defaultMaxAttempts {
			break
		}
		if ctx.Err() != nil {
			return fmt.Errorf("context cancelled during retry: %w", ctx.Err())
		}
		time.Sleep(Backoff(attempt+1, 5*time.Second))
	}

	return fmt.Errorf("job failed after %d attempts: %w", defaultMaxAttempts, err)
}

// JobID extracts the job id from a job context.
func JobID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(keyJobID).(uuid.UUID)
	return id, ok
}

// WorkerID extracts the worker id, -1 when absent.
func WorkerID(ctx context.Context) int {
	id, ok := ctx.Value(keyWorkerID).(int)
	if !ok {
		return -1
	}
	return id
}

// Attempt extracts the current retry attempt.
func Attempt(ctx context.Context) int {
	attempt, ok := ctx.Value(keyAttempt).(int)
	if !ok {
		return 0
	}
	return attempt
}

// StartTime extracts the job start time.
func StartTime(ctx context.Context) (time.Time, bool) {
	t, ok := ctx.Value(keyStartTime).(time.Time)
	return t, ok
}

// IsRetryableError reports whether an error class is worth retrying:
// timeouts, transient network failures, database lock contention, provider
// rate limits and 5xx responses.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())

	if strings.Contains(errStr, "context deadline exceeded") ||
		strings.Contains(errStr, "context canceled") {
		return true
	}

	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "network unreachable") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// Postgres serialization_failure and deadlock_detected
	if strings.Contains(errStr, "deadlock") ||
		strings.Contains(errStr, "40001") ||
		strings.Contains(errStr, "40p01") {
		return true
	}

	if strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "429") {
		return true
	}

	if strings.Contains(errStr, "status 5") ||
		strings.Contains(errStr, "internal server error") ||
		strings.Contains(errStr, "service unavailable") ||
		strings.Contains(errStr, "bad gateway") {
		return true
	}

	if strings.Contains(errStr, "temporary failure") ||
		strings.Contains(errStr, "try again") {
		return true
	}

	return false
}

// Backoff returns the exponential backoff delay for an attempt, capped at
// one minute.
func Backoff(attempt int, baseDelay time.Duration) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	delay := time.Duration(1<<uint(attempt)) * baseDelay
	if max := 60 * time.Second; delay > max {
		delay = max
	}
	return delay
}
