package skein

import (
	"context"
	"time"
)

// Loop drives a Runtime at a fixed tick rate until ctx is cancelled or,
// when exitWhenDrained is set, the queue is empty and the runner idles.
// Session aborts are surfaced through hooks and logging rather than stopping
// the loop; only ctx cancellation returns its error.
//
// Hosts with their own frame loop (games, TUIs) should call Tick themselves
// instead.
func Loop[H any](ctx context.Context, rt *Runtime[H], interval time.Duration, exitWhenDrained bool) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// Tick errors are session-scoped; the runtime already
			// surfaced them via hooks and its logger.
			_ = rt.Tick(ctx)
			if exitWhenDrained && rt.Status().Idle() && rt.QueueLen() == 0 {
				return nil
			}
		}
	}
}
