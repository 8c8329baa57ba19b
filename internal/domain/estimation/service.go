package estimation

import (
	"context"
	"fmt"
	"time"

	"prawn-monitoring/internal/ports/upstream"

	"github.com/google/uuid"
)

const DefaultHistoryLimit = 50

type Service struct {
	repo      Repository
	predictor Predictor // puede ser nil
	now       func() time.Time
}

func NewService(repo Repository, predictor Predictor) *Service {
	return &Service{
		repo:      repo,
		predictor: predictor,
		now:       time.Now,
	}
}

// Estimate aplica la fórmula local y registra el resultado en el historial.
func (s *Service) Estimate(ctx context.Context, in Input) (Estimation, error) {
	res, err := Compute(in)
	if err != nil {
		return Estimation{}, err
	}
	return s.record(ctx, in, res, SourceLocal)
}

// Predict delega al modelo externo. Cualquier falla se reporta como
// upstream.ErrUnavailable, sin reintentos.
func (s *Service) Predict(ctx context.Context, in Input) (Estimation, error) {
	if err := in.Validate(); err != nil {
		return Estimation{}, err
	}
	if s.predictor == nil {
		return Estimation{}, upstream.Unavailable("predict", ErrPredictorNotConfigured)
	}

	count, err := s.predictor.Predict(ctx, in)
	if err != nil {
		return Estimation{}, fmt.Errorf("predict count: %w", err)
	}
	return s.record(ctx, in, Result{CountPerKg: count}, SourceModel)
}

func (s *Service) History(ctx context.Context, limit int) ([]Estimation, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.repo.List(ctx, limit)
}

func (s *Service) record(ctx context.Context, in Input, res Result, src Source) (Estimation, error) {
	e := Estimation{
		ID:        uuid.NewString(),
		Input:     in,
		Result:    res,
		Source:    src,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return Estimation{}, fmt.Errorf("record estimation: %w", err)
	}
	return e, nil
}
