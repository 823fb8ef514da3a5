package future

import (
	"errors"
	"sync"
	"testing"
)

// These tests guard the one concurrency-critical invariant of the
// package: a reader must never observe Done without a fully published
// payload, no matter how many readers race the settling writer. Run
// with -race.

func stressReaders(t *testing.T, cfg Config, settle func(f *Future[int]), check func(t *testing.T, snap Snapshot[int])) {
	t.Helper()

	const (
		rounds  = 200
		readers = 8
	)

	for round := 0; round < rounds; round++ {
		f := NewWithConfig[int](cfg)

		var wg sync.WaitGroup
		start := make(chan struct{})

		for r := 0; r < readers; r++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				for {
					snap := f.Snapshot()
					if !snap.Done {
						continue
					}
					check(t, snap)
					return
				}
			}()
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			settle(f)
		}()

		close(start)
		wg.Wait()
	}
}

func TestSnapshotRaceWithResult(t *testing.T) {
	for _, cfg := range []Config{{Strategy: LocklessFinished}, {Strategy: AlwaysLock}} {
		stressReaders(t, cfg,
			func(f *Future[int]) { _ = f.SetResult(42) },
			func(t *testing.T, snap Snapshot[int]) {
				if snap.Cancelled {
					t.Error("result race observed cancellation")
				}
				if snap.Value != 42 || snap.Err != nil {
					t.Errorf("partial payload: value=%d err=%v", snap.Value, snap.Err)
				}
			})
	}
}

func TestSnapshotRaceWithError(t *testing.T) {
	boom := errors.New("boom")
	stressReaders(t, Config{},
		func(f *Future[int]) { _ = f.SetError(boom) },
		func(t *testing.T, snap Snapshot[int]) {
			if snap.Err != boom || snap.Value != 0 {
				t.Errorf("partial payload: value=%d err=%v", snap.Value, snap.Err)
			}
		})
}

func TestSnapshotRaceWithCancel(t *testing.T) {
	stressReaders(t, Config{},
		func(f *Future[int]) { f.Cancel() },
		func(t *testing.T, snap Snapshot[int]) {
			if !snap.Cancelled || snap.Value != 0 || snap.Err != nil {
				t.Errorf("inconsistent cancelled snapshot: %+v", snap)
			}
		})
}

// One settling writer racing other would-be writers: exactly one wins.
func TestConcurrentResolutionSingleWinner(t *testing.T) {
	const rounds = 200

	for round := 0; round < rounds; round++ {
		f := New[int]()

		var wins int32
		var mu sync.Mutex
		var wg sync.WaitGroup
		start := make(chan struct{})

		attempt := func(try func() bool) {
			defer wg.Done()
			<-start
			if try() {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}

		wg.Add(3)
		go attempt(func() bool { return f.SetResult(1) == nil })
		go attempt(func() bool { return f.SetError(errors.New("x")) == nil })
		go attempt(func() bool { return f.Cancel() })

		close(start)
		wg.Wait()

		if wins != 1 {
			t.Fatalf("round %d: %d resolution attempts succeeded, want exactly 1", round, wins)
		}

		snap := f.Snapshot()
		if !snap.Done {
			t.Fatal("future not done after a successful resolution")
		}
	}
}
