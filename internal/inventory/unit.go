package inventory

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/go-tangra/go-tangra-hwscore/internal/errors"
)

// Critical is the outcome of a domain whose failure fails the snapshot.
type Critical[T any] struct {
	Value T
	Err   error
}

// BestEffort is the outcome of a domain whose failure is tolerated.
// Value holds whatever was collected, even alongside Err.
type BestEffort[T any] struct {
	Value T
	Err   error
}

func settle[T any](v T, err error) BestEffort[T] {
	return BestEffort[T]{Value: v, Err: err}
}

// runUnit runs fn on its own goroutine, bounded by timeout. On expiry
// the goroutine is abandoned; fn owns its adapters and releases them
// when it eventually returns. A panic in fn is returned as ErrUnitFailed.
func runUnit[T any](ctx context.Context, timeout time.Duration, domain string, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		value T
		err   error
	}
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: errors.New().WithData(errors.ErrUnitFailed, fmt.Sprintf("%s: panic: %v", domain, r))}
			}
		}()
		v, err := fn(ctx)
		done <- outcome{value: v, err: err}
	}()

	select {
	case o := <-done:
		return o.value, o.err
	case <-ctx.Done():
		var zero T
		if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, errors.New().WithData(errors.ErrTimeout, fmt.Sprintf("%s after %s", domain, timeout))
		}
		return zero, errors.New().Wrap(errors.ErrUnitFailed, ctx.Err()).WithData(domain)
	}
}
