package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	errs "github.com/vnykmshr/goasync/pkg/common/errors"
	"github.com/vnykmshr/goasync/pkg/future"
)

// Config holds configuration for a result store.
type Config struct {
	// Redis client for coordination. Required.
	Redis redis.UniversalClient

	// KeyPrefix namespaces all keys written by this store.
	// Defaults to "goasync:futures".
	KeyPrefix string

	// InstanceID identifies this application instance in published
	// records. Auto-generated if empty.
	InstanceID string

	// TTL is the expiration applied to published records.
	// Defaults to one hour.
	TTL time.Duration

	// PollInterval is how often Await re-checks for a record.
	// Defaults to 100ms.
	PollInterval time.Duration
}

// Store publishes settled future snapshots to Redis so that other
// application instances can observe them. Only terminal payloads are
// ever written; a record, once present, never changes (it may expire).
type Store struct {
	rdb      redis.UniversalClient
	prefix   string
	instance string
	ttl      time.Duration
	poll     time.Duration
}

// New creates a result store with the given configuration.
func New(cfg Config) (*Store, error) {
	if cfg.Redis == nil {
		return nil, fmt.Errorf("%w: Redis client is required", errs.ErrInvalidConfiguration)
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "goasync:futures"
	}

	instance := cfg.InstanceID
	if instance == "" {
		instance = uuid.NewString()
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	poll := cfg.PollInterval
	if poll <= 0 {
		poll = 100 * time.Millisecond
	}

	return &Store{
		rdb:      cfg.Redis,
		prefix:   prefix,
		instance: instance,
		ttl:      ttl,
		poll:     poll,
	}, nil
}

// InstanceID returns the identifier stamped on published records.
func (s *Store) InstanceID() string {
	return s.instance
}

func (s *Store) key(k string) string {
	return s.prefix + ":" + k
}

// record is the wire form of a terminal snapshot.
type record struct {
	State      string          `json:"state"`
	Value      json.RawMessage `json:"value,omitempty"`
	Error      string          `json:"error,omitempty"`
	InstanceID string          `json:"instance_id"`
	ResolvedAt float64         `json:"resolved_at"`
}

// Publish writes a settled snapshot under the given key. Publishing an
// unsettled snapshot is rejected: only terminal payloads are final.
func Publish[T any](ctx context.Context, s *Store, key string, snap future.Snapshot[T]) error {
	if !snap.Done {
		return fmt.Errorf("redisstore: cannot publish unsettled future %q", key)
	}

	rec := record{
		InstanceID: s.instance,
		ResolvedAt: float64(time.Now().UnixNano()) / 1e9,
	}
	switch {
	case snap.Cancelled:
		rec.State = future.StateCancelled.String()
	case snap.Err != nil:
		rec.State = future.StateFinished.String()
		rec.Error = snap.Err.Error()
	default:
		raw, err := json.Marshal(snap.Value)
		if err != nil {
			return fmt.Errorf("redisstore: marshal value for %q: %w", key, err)
		}
		rec.State = future.StateFinished.String()
		rec.Value = raw
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("redisstore: marshal record for %q: %w", key, err)
	}

	if err := s.rdb.Set(ctx, s.key(key), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redisstore: set %q: %w", key, err)
	}
	return nil
}

// Track publishes the future's snapshot under the given key as soon as
// it settles. Publication errors are reported to onErr, which may be
// nil to discard them.
func Track[T any](ctx context.Context, s *Store, key string, f *future.Future[T], onErr func(error)) {
	f.OnDone(func(snap future.Snapshot[T]) {
		if err := Publish(ctx, s, key, snap); err != nil && onErr != nil {
			onErr(err)
		}
	})
}

// Fetch reads a published snapshot. The second return value reports
// whether a record was present.
func Fetch[T any](ctx context.Context, s *Store, key string) (future.Snapshot[T], bool, error) {
	var zero future.Snapshot[T]

	raw, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("redisstore: get %q: %w", key, err)
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return zero, false, fmt.Errorf("redisstore: decode %q: %w", key, err)
	}

	switch rec.State {
	case future.StateCancelled.String():
		return future.Snapshot[T]{Done: true, Cancelled: true}, true, nil
	case future.StateFinished.String():
		if rec.Error != "" {
			return future.Snapshot[T]{Done: true, Err: errors.New(rec.Error)}, true, nil
		}
		var v T
		if err := json.Unmarshal(rec.Value, &v); err != nil {
			return zero, false, fmt.Errorf("redisstore: decode value of %q: %w", key, err)
		}
		return future.Snapshot[T]{Done: true, Value: v}, true, nil
	default:
		return zero, false, fmt.Errorf("redisstore: record %q has unknown state %q", key, rec.State)
	}
}

// Await polls for a published snapshot until one appears or ctx is
// done.
func Await[T any](ctx context.Context, s *Store, key string) (future.Snapshot[T], error) {
	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	for {
		snap, ok, err := Fetch[T](ctx, s, key)
		if err != nil {
			return future.Snapshot[T]{}, err
		}
		if ok {
			return snap, nil
		}

		select {
		case <-ctx.Done():
			return future.Snapshot[T]{}, ctx.Err()
		case <-ticker.C:
		}
	}
}
