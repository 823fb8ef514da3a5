/*
Package executor provides a worker pool whose submissions return
futures.

A fixed set of worker goroutines pulls submitted work from a bounded
queue. Each submission immediately returns a pending future.Future; the
worker that picks the job up moves it to RUNNING, executes it, and
settles the future with the result, the error, or — if it panicked — an
error carrying the stack trace.

	pool := executor.New(4, 100)
	defer pool.Shutdown()

	fut, err := executor.Submit(pool, func(ctx context.Context) (int, error) {
		return compute(ctx)
	})
	if err != nil {
		return err
	}

	v, err := fut.Result(ctx)

Cancellation composes with the future's state machine: cancelling a
future whose job is still queued prevents the work from running at all,
and the worker acknowledges the cancellation exactly once. Cancelling
mid-run marks the future cancelled and the worker's late result is
rejected and absorbed.

Shutdown is graceful: in-flight jobs finish, still-queued jobs have
their futures cancelled so no waiter is left hanging.

Fan-in helpers mirror the usual completion patterns:

	_ = executor.WaitAll(ctx, futs...)
	for f := range executor.AsCompleted(ctx, futs) {
		use(f.Snapshot())
	}
*/
package executor
