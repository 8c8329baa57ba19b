package simulated

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"prawn-monitoring/internal/domain/sensors"
)

var ErrNotStarted = errors.New("simulated source not started")

// jitter es el valor base de cada métrica y la variación máxima (±).
type jitter struct {
	base   float64
	spread float64
}

var defaults = map[sensors.Metric]jitter{
	sensors.MetricPH:       {base: 7.2, spread: 0.2},
	sensors.MetricAmmonia:  {base: 0.4, spread: 0.1},
	sensors.MetricSalinity: {base: 15, spread: 1},
	sensors.MetricOxygen:   {base: 6.8, spread: 0.3},
}

// Source genera lecturas aleatorias alrededor de valores típicos de un
// estanque sano. Sirve para desarrollo y para el dashboard sin hardware.
type Source struct {
	mu      sync.Mutex
	rng     *rand.Rand
	now     func() time.Time
	started bool
}

// New crea una fuente con semilla aleatoria.
func New() *Source {
	return NewSeeded(rand.Uint64(), rand.Uint64())
}

// NewSeeded crea una fuente determinística (tests).
func NewSeeded(seed1, seed2 uint64) *Source {
	return &Source{
		rng: rand.New(rand.NewPCG(seed1, seed2)),
		now: time.Now,
	}
}

func (s *Source) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = true
	return nil
}

func (s *Source) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = false
	return nil
}

func (s *Source) Snapshot(ctx context.Context) (sensors.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return sensors.Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return sensors.Snapshot{}, ErrNotStarted
	}

	readings := make(map[sensors.Metric]float64, len(defaults))
	for m, j := range defaults {
		readings[m] = j.base + (s.rng.Float64()*2-1)*j.spread
	}

	return sensors.Snapshot{
		Timestamp: s.now().UTC(),
		Status:    sensors.StatusOperational,
		Readings:  readings,
	}, nil
}
