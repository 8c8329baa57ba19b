package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"prawn-monitoring/internal/domain/estimation"
)

var (
	ErrAlreadyExists = errors.New("already exists")
)

type estimationRepo struct {
	mu   sync.RWMutex
	byID map[string]estimation.Estimation
	// maxSize > 0 acota el historial descartando las más viejas.
	maxSize int
}

// NewEstimationRepo crea un historial en memoria. maxSize <= 0 = sin límite.
func NewEstimationRepo(maxSize int) estimation.Repository {
	return &estimationRepo{
		byID:    make(map[string]estimation.Estimation),
		maxSize: maxSize,
	}
}

func (r *estimationRepo) Create(ctx context.Context, e estimation.Estimation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("estimation id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return ErrAlreadyExists
	}
	r.byID[e.ID] = e

	if r.maxSize > 0 && len(r.byID) > r.maxSize {
		r.evictOldestLocked()
	}
	return nil
}

func (r *estimationRepo) List(ctx context.Context, limit int) ([]estimation.Estimation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]estimation.Estimation, 0, len(r.byID))
	for _, e := range r.byID {
		out = append(out, e)
	}

	// más recientes primero; ID como desempate para orden estable
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *estimationRepo) evictOldestLocked() {
	var (
		oldestID string
		first    = true
	)
	for id, e := range r.byID {
		if first || e.CreatedAt.Before(r.byID[oldestID].CreatedAt) {
			oldestID, first = id, false
		}
	}
	delete(r.byID, oldestID)
}
