package worker

import (
	"context"
	"fmt"
	"time"
)

// sleep ждёт d или отмены ctx.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	// Context-aware ожидание
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrInterrupted, ctx.Err())
	}
}
