package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"prawn-monitoring/internal/domain/sensors"

	goredis "github.com/redis/go-redis/v9"
)

const (
	DefaultKey = "prawn:sensors:latest"

	// una lectura más vieja que esto no sirve para el dashboard
	DefaultTTL = 5 * time.Minute
)

type Options struct {
	Addr string
	Key  string
	TTL  time.Duration
}

// SnapshotCache guarda la última lectura como JSON en Redis para que
// varias réplicas del API compartan el mismo dato.
type SnapshotCache struct {
	client *goredis.Client
	key    string
	ttl    time.Duration
}

func NewSnapshotCache(opts Options) *SnapshotCache {
	return NewSnapshotCacheWithClient(goredis.NewClient(&goredis.Options{
		Addr: opts.Addr,
	}), opts)
}

func NewSnapshotCacheWithClient(client *goredis.Client, opts Options) *SnapshotCache {
	key := opts.Key
	if key == "" {
		key = DefaultKey
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SnapshotCache{client: client, key: key, ttl: ttl}
}

// Ping verifica la conexión al arrancar.
func (c *SnapshotCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *SnapshotCache) Close() error {
	return c.client.Close()
}

func (c *SnapshotCache) Get(ctx context.Context) (sensors.Snapshot, bool, error) {
	raw, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return sensors.Snapshot{}, false, nil
	}
	if err != nil {
		return sensors.Snapshot{}, false, fmt.Errorf("redis get %s: %w", c.key, err)
	}

	s, err := decodeSnapshot(raw)
	if err != nil {
		return sensors.Snapshot{}, false, err
	}
	return s, true, nil
}

func (c *SnapshotCache) Set(ctx context.Context, s sensors.Snapshot) error {
	raw, err := encodeSnapshot(s)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", c.key, err)
	}
	return nil
}

func encodeSnapshot(s sensors.Snapshot) ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return b, nil
}

func decodeSnapshot(raw []byte) (sensors.Snapshot, error) {
	var s sensors.Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return sensors.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return s, nil
}
