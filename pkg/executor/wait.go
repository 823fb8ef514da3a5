package executor

import (
	"context"

	"github.com/vnykmshr/goasync/pkg/future"
)

// WaitAll blocks until every future settles or ctx is done. Settlement
// includes cancellation; inspect each future's snapshot for outcomes.
func WaitAll[T any](ctx context.Context, futs ...*future.Future[T]) error {
	for _, f := range futs {
		if _, err := f.Wait(ctx); err != nil {
			return err
		}
	}
	return nil
}

// AsCompleted returns a channel that delivers each future as it
// settles, in settlement order. The channel closes once every future
// has been delivered or ctx is done.
func AsCompleted[T any](ctx context.Context, futs []*future.Future[T]) <-chan *future.Future[T] {
	out := make(chan *future.Future[T], len(futs))

	// Buffered to len(futs) so the done-callbacks never block the
	// settling goroutine.
	settled := make(chan *future.Future[T], len(futs))
	for _, f := range futs {
		f := f
		f.OnDone(func(future.Snapshot[T]) { settled <- f })
	}

	go func() {
		defer close(out)
		for i := 0; i < len(futs); i++ {
			select {
			case f := <-settled:
				select {
				case out <- f:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
