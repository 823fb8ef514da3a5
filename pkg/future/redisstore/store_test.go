package redisstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vnykmshr/goasync/internal/testutil"
	errs "github.com/vnykmshr/goasync/pkg/common/errors"
	"github.com/vnykmshr/goasync/pkg/future"
)

// testStore connects to a local Redis test database, skipping the test
// when none is available.
func testStore(t *testing.T) (*Store, context.Context) {
	t.Helper()

	rdb := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	ctx, cancel := testutil.WithTimeout(t)
	t.Cleanup(cancel)

	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not available: %v", err)
	}

	store, err := New(Config{
		Redis:        rdb,
		KeyPrefix:    "goasync:test:" + t.Name(),
		TTL:          time.Minute,
		PollInterval: 10 * time.Millisecond,
	})
	testutil.AssertNoError(t, err)
	return store, ctx
}

func TestNewRequiresRedis(t *testing.T) {
	_, err := New(Config{})
	testutil.AssertError(t, err)
	if !errors.Is(err, errs.ErrInvalidConfiguration) {
		t.Errorf("want ErrInvalidConfiguration, got %v", err)
	}
}

func TestNewDefaults(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer func() { _ = rdb.Close() }()

	store, err := New(Config{Redis: rdb})
	testutil.AssertNoError(t, err)
	if store.InstanceID() == "" {
		t.Error("instance ID should be auto-generated")
	}
	testutil.AssertEqual(t, store.prefix, "goasync:futures")
}

func TestPublishRejectsUnsettled(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer func() { _ = rdb.Close() }()

	store, err := New(Config{Redis: rdb})
	testutil.AssertNoError(t, err)

	err = Publish(context.Background(), store, "k", future.Snapshot[int]{})
	testutil.AssertError(t, err)
}

func TestPublishFetchRoundTrip(t *testing.T) {
	store, ctx := testStore(t)

	tests := []struct {
		name string
		snap future.Snapshot[int]
	}{
		{"result", future.Snapshot[int]{Done: true, Value: 42}},
		{"error", future.Snapshot[int]{Done: true, Err: errors.New("boom")}},
		{"cancelled", future.Snapshot[int]{Done: true, Cancelled: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertNoError(t, Publish(ctx, store, tt.name, tt.snap))

			got, ok, err := Fetch[int](ctx, store, tt.name)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, ok, true)
			testutil.AssertEqual(t, got.Done, true)
			testutil.AssertEqual(t, got.Cancelled, tt.snap.Cancelled)
			testutil.AssertEqual(t, got.Value, tt.snap.Value)
			testutil.AssertEqual(t, (got.Err == nil), (tt.snap.Err == nil))
		})
	}
}

func TestFetchMissing(t *testing.T) {
	store, ctx := testStore(t)

	_, ok, err := Fetch[int](ctx, store, "no-such-key")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ok, false)
}

func TestTrackPublishesOnSettlement(t *testing.T) {
	store, ctx := testStore(t)

	fut := future.New[string]()
	Track(ctx, store, "tracked", fut, func(err error) { t.Errorf("publish: %v", err) })

	_, ok, err := Fetch[string](ctx, store, "tracked")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ok, false)

	testutil.AssertNoError(t, fut.SetResult("hello"))

	snap, ok, err := Fetch[string](ctx, store, "tracked")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, snap.Value, "hello")
}

func TestAwait(t *testing.T) {
	store, ctx := testStore(t)

	go func() {
		time.Sleep(30 * time.Millisecond)
		_ = Publish(ctx, store, "awaited", future.Snapshot[int]{Done: true, Value: 7})
	}()

	snap, err := Await[int](ctx, store, "awaited")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, snap.Value, 7)
}

func TestAwaitContextCancelled(t *testing.T) {
	store, _ := testStore(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := Await[int](ctx, store, "never-published")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("want DeadlineExceeded, got %v", err)
	}
}
