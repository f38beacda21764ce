package utils

import (
	"context"
	"math"
	"math/rand/v2"
	"time"
)

// RetryDelay pauses between attempts of the same task. Wait returns early
// with the context error when ctx is done.
type RetryDelay interface {
	Wait(ctx context.Context, taskName string, attempt int) error
}

// ConstantDelay waits Period seconds on every attempt.
type ConstantDelay struct {
	Period int
}

func (d ConstantDelay) Wait(ctx context.Context, taskName string, attempt int) error {
	return sleepCtx(ctx, time.Duration(d.Period)*time.Second)
}

// ExponentialBackoff waits min(2*2^attempt, 10) seconds plus up to one second of jitter.
type ExponentialBackoff struct{}

func (d ExponentialBackoff) Wait(ctx context.Context, taskName string, attempt int) error {
	backoff := math.Min(2*math.Pow(2, float64(attempt)), 10)
	jitter := time.Duration(rand.Int64N(int64(time.Second)))
	return sleepCtx(ctx, time.Duration(backoff)*time.Second+jitter)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
