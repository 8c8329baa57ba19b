package memory

import (
	"context"
	"sync"
	"time"

	"prawn-monitoring/internal/domain/sensors"
)

// DefaultSnapshotTTL es el mismo vencimiento que usa el cache en Redis.
const DefaultSnapshotTTL = 5 * time.Minute

// SnapshotCache guarda la última lectura en memoria del proceso. Pasado
// el TTL desde el último Set, Get informa un miss.
type SnapshotCache struct {
	mu    sync.RWMutex
	snap  sensors.Snapshot
	ok    bool
	setAt time.Time
	ttl   time.Duration
	now   func() time.Time
}

// NewSnapshotCache con ttl <= 0 usa DefaultSnapshotTTL.
func NewSnapshotCache(ttl time.Duration) *SnapshotCache {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &SnapshotCache{ttl: ttl, now: time.Now}
}

func (c *SnapshotCache) Get(ctx context.Context) (sensors.Snapshot, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.ok || c.now().Sub(c.setAt) >= c.ttl {
		return sensors.Snapshot{}, false, nil
	}
	return cloneSnapshot(c.snap), true, nil
}

func (c *SnapshotCache) Set(ctx context.Context, s sensors.Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snap = cloneSnapshot(s)
	c.ok = true
	c.setAt = c.now()
	return nil
}

// el mapa de lecturas no se comparte con quien llama
func cloneSnapshot(s sensors.Snapshot) sensors.Snapshot {
	readings := make(map[sensors.Metric]float64, len(s.Readings))
	for k, v := range s.Readings {
		readings[k] = v
	}
	s.Readings = readings
	return s
}
