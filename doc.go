/*
Package goasync provides low-level asynchronous execution primitives:
deadline-ordered timer scheduling, single-assignment completion objects
(futures), and a future-producing worker pool.

Timer Scheduling (pkg/timerheap):
  - binary min-heap of timer handles ordered by (deadline, sequence)
  - O(1) cancellation via lazy deletion
  - one-shot, repeating, and cron schedules

Completion Objects (pkg/future):
  - future: single-assignment result slot with a monotonic state machine
  - lock-free snapshot fast path for already-finished futures
  - redisstore: publish terminal results to Redis for other instances

Execution (pkg/executor):
  - worker pool whose submissions return futures
  - cancellation before pickup, panic recovery, graceful shutdown

Example usage:

	import (
		"github.com/vnykmshr/goasync/pkg/executor"
		"github.com/vnykmshr/goasync/pkg/timerheap"
	)

	pool := executor.New(4, 100) // 4 workers, queue 100
	fut, _ := executor.Submit(pool, fetchUser)

	sched := timerheap.New()
	h := sched.ScheduleAfter(time.Second, expireSession)
	h.Cancel() // safe from any goroutine
*/
package goasync
