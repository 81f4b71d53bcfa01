package main

import "context"

// withContext wraps a channel so ranging over it stops when the context
// is cancelled, letting pipeline stages unwind without draining their
// upstream.
func withContext[T any](ctx context.Context, ch <-chan T) <-chan T {
	out := make(chan T, 1)

	go func() {
		defer close(out)
		for val := range ch {
			select {
			case out <- val:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
