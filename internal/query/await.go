// internal/query/await.go
package query

import "context"

// Await blocks until the subscription reaches a terminal status
// (success or error) or ctx is done. Loading snapshots are skipped.
func Await(ctx context.Context, sub *Subscription) (Result, error) {
	if r := sub.Current(); r.Status == StatusSuccess || r.Status == StatusError {
		return r, nil
	}
	for {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case r := <-sub.Updates():
			if r.Status == StatusSuccess || r.Status == StatusError {
				return r, nil
			}
		}
	}
}

// Value extracts a typed payload from a result.
func Value[T any](r Result) (T, bool) {
	v, ok := r.Data.(T)
	return v, ok
}
