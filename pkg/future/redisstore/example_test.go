package redisstore_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vnykmshr/goasync/pkg/future"
	"github.com/vnykmshr/goasync/pkg/future/redisstore"
)

// Example_basicUsage demonstrates publishing and observing a result
// across the store.
func Example_basicUsage() {
	// Create a Redis client (in real usage, use your Redis connection)
	rdb := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1, // Use a test database
	})
	defer func() { _ = rdb.Close() }()

	// Test Redis connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		fmt.Println("Redis not available, skipping example")
		return
	}

	store, err := redisstore.New(redisstore.Config{
		Redis:        rdb,
		KeyPrefix:    "example:futures",
		TTL:          time.Minute,
		PollInterval: 20 * time.Millisecond,
	})
	if err != nil {
		log.Fatalf("Failed to create store: %v", err)
	}

	// Producer: a future settled locally, published on settlement.
	fut := future.New[int]()
	redisstore.Track(ctx, store, "answer", fut, nil)
	_ = fut.SetResult(42)

	// Consumer: possibly a different process entirely.
	snap, err := redisstore.Await[int](ctx, store, "answer")
	if err != nil {
		log.Fatalf("Await: %v", err)
	}
	fmt.Println("observed:", snap.Value)

	_ = rdb.Del(ctx, "example:futures:answer")

	// Output varies: prints "observed: 42" when Redis is reachable
}
