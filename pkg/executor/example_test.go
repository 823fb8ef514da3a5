package executor_test

import (
	"context"
	"fmt"
	"sort"

	"github.com/vnykmshr/goasync/pkg/executor"
	"github.com/vnykmshr/goasync/pkg/future"
)

// Example demonstrates submitting work and reading the future.
func Example() {
	pool := executor.New(2, 10)
	defer pool.Shutdown()

	fut, err := executor.Submit(pool, func(ctx context.Context) (string, error) {
		return "done", nil
	})
	if err != nil {
		fmt.Println("submit failed:", err)
		return
	}

	v, err := fut.Result(context.Background())
	fmt.Println(v, err)

	// Output:
	// done <nil>
}

// Example_fanIn collects results as they complete.
func Example_fanIn() {
	pool := executor.New(4, 10)
	defer pool.Shutdown()

	futs := make([]*future.Future[int], 0, 5)
	for i := 1; i <= 5; i++ {
		i := i
		fut, err := executor.Submit(pool, func(ctx context.Context) (int, error) {
			return i * i, nil
		})
		if err != nil {
			fmt.Println("submit failed:", err)
			return
		}
		futs = append(futs, fut)
	}

	results := make([]int, 0, 5)
	for f := range executor.AsCompleted(context.Background(), futs) {
		results = append(results, f.Snapshot().Value)
	}

	sort.Ints(results)
	fmt.Println(results)

	// Output:
	// [1 4 9 16 25]
}

// Example_cancel shows that a future cancelled before pickup never runs.
func Example_cancel() {
	pool := executor.New(1, 10)
	defer pool.Shutdown()

	block := make(chan struct{})
	busy, _ := executor.Submit(pool, func(ctx context.Context) (int, error) {
		<-block
		return 0, nil
	})

	fut, _ := executor.Submit(pool, func(ctx context.Context) (int, error) {
		fmt.Println("this never prints")
		return 0, nil
	})

	fmt.Println(fut.Cancel())
	close(block)

	_, _ = busy.Wait(context.Background())
	_, err := fut.Result(context.Background())
	fmt.Println(err)

	// Output:
	// true
	// future cancelled
}
