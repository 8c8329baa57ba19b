package sensors

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"prawn-monitoring/internal/platform/logger"

	"github.com/robfig/cron/v3"
)

const (
	DefaultInterval    = 5 * time.Second
	DefaultHistorySize = 60
)

var (
	ErrAlreadyRunning = errors.New("monitor already running")
	ErrNoData         = errors.New("no sensor data yet")
)

type MonitorOptions struct {
	Interval    time.Duration
	HistorySize int
	Logger      logger.Logger
}

// Stats resume la salud del monitor.
type Stats struct {
	Running     bool
	Readings    int
	Failures    int
	LastError   string
	LastReading time.Time
}

// Monitor refresca la fuente periódicamente (robfig/cron) y guarda la
// última lectura en el cache más un historial acotado.
type Monitor struct {
	source Source
	cache  SnapshotCache
	log    logger.Logger

	interval    time.Duration
	historySize int

	mu      sync.RWMutex
	history []Snapshot
	stats   Stats
	cron    *cron.Cron
	cancel  context.CancelFunc
}

func NewMonitor(source Source, cache SnapshotCache, opts MonitorOptions) *Monitor {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	size := opts.HistorySize
	if size <= 0 {
		size = DefaultHistorySize
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &Monitor{
		source:      source,
		cache:       cache,
		log:         log.With(map[string]any{"component": "sensor_monitor"}),
		interval:    interval,
		historySize: size,
	}
}

// Start arranca la fuente, hace una lectura inicial y programa el refresco.
// Una lectura inicial fallida no impide arrancar.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.stats.Running {
		m.mu.Unlock()
		return ErrAlreadyRunning
	}

	if err := m.source.Start(ctx); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("start sensor source: %w", err)
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger{m.log})), cron.WithLogger(cronLogger{m.log}))
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", m.interval), func() { m.tick(runCtx) }); err != nil {
		cancel()
		_ = m.source.Stop()
		m.mu.Unlock()
		return fmt.Errorf("schedule sensor refresh: %w", err)
	}

	m.cron = c
	m.cancel = cancel
	m.stats.Running = true
	m.mu.Unlock()

	// tick toma m.mu, así que la lectura inicial corre sin el lock
	m.tick(runCtx)

	// Stop pudo correr durante la lectura inicial; ese cron ya no es nuestro.
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cron != c {
		return nil
	}
	c.Start()

	m.log.Info("sensor monitor started", map[string]any{"interval": m.interval.String()})
	return nil
}

// Stop detiene el cron (esperando el job en curso) y la fuente.
func (m *Monitor) Stop() error {
	m.mu.Lock()
	if !m.stats.Running {
		m.mu.Unlock()
		return nil
	}
	c, cancel := m.cron, m.cancel
	m.cron, m.cancel = nil, nil
	m.stats.Running = false
	m.mu.Unlock()

	cancel()
	<-c.Stop().Done()

	if err := m.source.Stop(); err != nil {
		return fmt.Errorf("stop sensor source: %w", err)
	}
	m.log.Info("sensor monitor stopped", nil)
	return nil
}

func (m *Monitor) tick(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, m.interval)
	defer cancel()

	if _, err := m.Refresh(ctx); err != nil {
		m.log.Warn("sensor refresh failed", map[string]any{"error": err})
	}
}

// Refresh hace una lectura ahora. Si falla, la lectura anterior se mantiene.
func (m *Monitor) Refresh(ctx context.Context) (Snapshot, error) {
	s, err := m.source.Snapshot(ctx)
	if err != nil {
		m.mu.Lock()
		m.stats.Failures++
		m.stats.LastError = err.Error()
		m.mu.Unlock()
		return Snapshot{}, err
	}

	if err := m.cache.Set(ctx, s); err != nil {
		// el historial en memoria sigue sirviendo aunque el cache falle
		m.log.Warn("sensor cache write failed", map[string]any{"error": err})
	}

	m.mu.Lock()
	m.history = append(m.history, s)
	if over := len(m.history) - m.historySize; over > 0 {
		m.history = append([]Snapshot(nil), m.history[over:]...)
	}
	m.stats.Readings++
	m.stats.LastReading = s.Timestamp
	m.mu.Unlock()

	m.log.Debug("sensor snapshot refreshed", map[string]any{"status": s.Status})
	return s, nil
}

// Latest devuelve la última lectura cacheada o, si no hay, lee la fuente.
func (m *Monitor) Latest(ctx context.Context) (Snapshot, error) {
	s, ok, err := m.cache.Get(ctx)
	if err != nil {
		m.log.Warn("sensor cache read failed", map[string]any{"error": err})
	}
	if ok {
		return s, nil
	}

	s, err = m.Refresh(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrNoData, err)
	}
	return s, nil
}

// History devuelve el historial, más antiguo primero.
func (m *Monitor) History() []Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Snapshot, len(m.history))
	copy(out, m.history)
	return out
}

func (m *Monitor) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats
}

// cronLogger adapta logger.Logger a cron.Logger.
type cronLogger struct {
	log logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, kvToFields(keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	fields := kvToFields(keysAndValues)
	fields["error"] = err
	l.log.Error("cron: "+msg, fields)
}

func kvToFields(kv []any) map[string]any {
	fields := make(map[string]any, len(kv)/2+1)
	for i := 0; i+1 < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			continue
		}
		fields[k] = kv[i+1]
	}
	return fields
}
