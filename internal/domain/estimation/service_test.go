package estimation

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"prawn-monitoring/internal/ports/upstream"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test doubles
// -------------------------

type testRepo struct {
	items   []Estimation
	failErr error
}

func (r *testRepo) Create(ctx context.Context, e Estimation) error {
	if r.failErr != nil {
		return r.failErr
	}
	r.items = append(r.items, e)
	return nil
}

func (r *testRepo) List(ctx context.Context, limit int) ([]Estimation, error) {
	out := append([]Estimation(nil), r.items...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakePredictor struct {
	count float64
	err   error
	got   Input
}

func (p *fakePredictor) Predict(ctx context.Context, in Input) (float64, error) {
	p.got = in
	return p.count, p.err
}

// -------------------------
// Tests
// -------------------------

func TestService_Estimate_RecordsLocalEstimation(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo, nil)

	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	in := Input{PondAgeDays: 0, FoodIntakePerLakh: 1000, Season: SeasonSummer}
	e, err := svc.Estimate(context.Background(), in)
	require.NoError(t, err)

	want := Estimation{
		Input:     in,
		Result:    Result{CountPerKg: 36},
		Source:    SourceLocal,
		CreatedAt: now,
	}
	if diff := cmp.Diff(want, e, cmpopts.IgnoreFields(Estimation{}, "ID")); diff != "" {
		t.Fatalf("estimation mismatch (-want +got):\n%s", diff)
	}
	assert.NotEmpty(t, e.ID)
	require.Len(t, repo.items, 1)
	assert.Equal(t, e, repo.items[0])
}

func TestService_Estimate_RejectsNonFinite(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo, nil)

	_, err := svc.Estimate(context.Background(), Input{PondAgeDays: 1, FoodIntakePerLakh: inf()})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, repo.items)
}

func TestService_Estimate_RejectsOverflowingResult(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo, nil)

	for _, in := range []Input{
		{PondAgeDays: -1e308, FoodIntakePerLakh: 1e308, Season: SeasonSummer},
		{PondAgeDays: -1e308, FoodIntakePerLakh: -1e308, Season: SeasonRainy},
	} {
		_, err := svc.Estimate(context.Background(), in)
		require.ErrorIs(t, err, ErrInvalidInput, "input %+v", in)

		var ie *InvalidInputError
		require.True(t, errors.As(err, &ie))
		assert.Equal(t, "result", ie.Field)
	}
	assert.Empty(t, repo.items)

	// extremos que no desbordan se registran normalmente
	e, err := svc.Estimate(context.Background(), Input{PondAgeDays: 1e308, FoodIntakePerLakh: 1e308, Season: SeasonSummer})
	require.NoError(t, err)
	assert.Greater(t, e.Result.CountPerKg, 1e300)
	assert.Len(t, repo.items, 1)
}

func TestService_Estimate_PropagatesRepoError(t *testing.T) {
	boom := errors.New("disk full")
	svc := NewService(&testRepo{failErr: boom}, nil)

	_, err := svc.Estimate(context.Background(), Input{FoodIntakePerLakh: 1000})
	assert.ErrorIs(t, err, boom)
}

func TestService_Predict_WithoutPredictorIsUpstreamUnavailable(t *testing.T) {
	svc := NewService(&testRepo{}, nil)

	_, err := svc.Predict(context.Background(), Input{FoodIntakePerLakh: 1000})
	assert.ErrorIs(t, err, upstream.ErrUnavailable)
	assert.ErrorIs(t, err, ErrPredictorNotConfigured)
}

func TestService_Predict_RecordsModelEstimation(t *testing.T) {
	repo := &testRepo{}
	pred := &fakePredictor{count: 41.7}
	svc := NewService(repo, pred)

	in := Input{PondAgeDays: 60, FoodIntakePerLakh: 900, Season: SeasonRainy}
	e, err := svc.Predict(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, in, pred.got)
	assert.Equal(t, 41.7, e.Result.CountPerKg)
	assert.Equal(t, SourceModel, e.Source)
	require.Len(t, repo.items, 1)
}

func TestService_Predict_UpstreamFailure(t *testing.T) {
	repo := &testRepo{}
	pred := &fakePredictor{err: upstream.Unavailable("predict", errors.New("connection refused"))}
	svc := NewService(repo, pred)

	_, err := svc.Predict(context.Background(), Input{FoodIntakePerLakh: 1000})
	assert.ErrorIs(t, err, upstream.ErrUnavailable)
	assert.Empty(t, repo.items)
}

func TestService_History_DefaultLimitAndOrder(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo, nil)

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < DefaultHistoryLimit+5; i++ {
		ts := base.Add(time.Duration(i) * time.Minute)
		svc.now = func() time.Time { return ts }
		_, err := svc.Estimate(context.Background(), Input{PondAgeDays: float64(i), FoodIntakePerLakh: 1000})
		require.NoError(t, err)
	}

	items, err := svc.History(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, items, DefaultHistoryLimit)
	assert.True(t, items[0].CreatedAt.After(items[1].CreatedAt))
	assert.Equal(t, float64(DefaultHistoryLimit+4), items[0].Input.PondAgeDays)
}

func inf() float64 {
	var zero float64
	return 1 / zero
}
