package firestore

import "context"

// emitLatest delivers v to out without blocking on a slow consumer: the
// buffered slot always holds the most recent snapshot, so within one
// subscription the last observed write wins.
func emitLatest[T any](ctx context.Context, out chan T, v T) {
	for {
		select {
		case out <- v:
			return
		case <-ctx.Done():
			return
		default:
		}

		// Slot occupied by a stale snapshot; drop it and retry.
		select {
		case <-out:
		default:
		}
	}
}
