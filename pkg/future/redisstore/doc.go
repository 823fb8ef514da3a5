/*
Package redisstore publishes settled future results to Redis so that
other application instances can observe them.

A future is a process-local object. When the work it represents matters
across instances — a deduplicated job, a computation another service
waits on — the terminal snapshot can be published under a well-known
key:

	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	store, err := redisstore.New(redisstore.Config{Redis: rdb})
	if err != nil {
		log.Fatal(err)
	}

	// Producer side: publish on settlement.
	redisstore.Track(ctx, store, "report:2026-08", fut, nil)

	// Consumer side, possibly another process:
	snap, err := redisstore.Await[Report](ctx, store, "report:2026-08")

Records hold only terminal payloads and never change once written; they
expire after the configured TTL. Values are JSON-encoded, so the type
parameter on Fetch/Await must match what was published. Errors cross
the wire as text and are rehydrated as opaque errors.
*/
package redisstore
