package estimation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"prawn-monitoring/internal/ports/upstream"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(pred Predictor) (http.Handler, *testRepo) {
	repo := &testRepo{}
	r := chi.NewRouter()
	RegisterRoutes(r, NewService(repo, pred))
	return r, repo
}

func TestEstimateHandler_JSON(t *testing.T) {
	h, repo := newTestRouter(nil)

	body := `{"pondAgeDays": 150, "foodIntakePerLakh": "1000", "season": "Winter"}`
	req := httptest.NewRequest(http.MethodPost, "/estimate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"countPerKg": 12}`, w.Body.String())
	assert.Len(t, repo.items, 1)
}

func TestEstimateHandler_Form(t *testing.T) {
	h, _ := newTestRouter(nil)

	form := url.Values{
		"pondAgeDays":       {"75"},
		"foodIntakePerLakh": {"500"},
		"season":            {"Rainy"},
	}
	req := httptest.NewRequest(http.MethodPost, "/estimate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 7.5, res.CountPerKg)
}

func TestEstimateHandler_BadInput(t *testing.T) {
	h, repo := newTestRouter(nil)

	for _, body := range []string{
		`{"pondAgeDays": "abc", "foodIntakePerLakh": 1000, "season": "Summer"}`,
		`{"foodIntakePerLakh": 1000}`,
		`{not json}`,
		`{"pondAgeDays": true, "foodIntakePerLakh": 1000}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/estimate", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
	}
	assert.Empty(t, repo.items)
}

type stubPredictor func(ctx context.Context, in Input) (float64, error)

func (f stubPredictor) Predict(ctx context.Context, in Input) (float64, error) { return f(ctx, in) }

func TestPredictHandler_MapsUpstreamFailureTo502(t *testing.T) {
	h, _ := newTestRouter(stubPredictor(func(ctx context.Context, in Input) (float64, error) {
		return 0, upstream.Unavailable("predict", errors.New("dial tcp: refused"))
	}))

	req := httptest.NewRequest(http.MethodPost, "/estimate/predict",
		strings.NewReader(`{"pondAgeDays": 10, "foodIntakePerLakh": 1000, "season": "Summer"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestPredictHandler_OK(t *testing.T) {
	h, _ := newTestRouter(stubPredictor(func(ctx context.Context, in Input) (float64, error) {
		return 55.5, nil
	}))

	req := httptest.NewRequest(http.MethodPost, "/estimate/predict",
		strings.NewReader(`{"pondAgeDays": 10, "foodIntakePerLakh": 1000, "season": "Summer"}`))
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"countPerKg": 55.5}`, w.Body.String())
}

func TestHistoryHandler(t *testing.T) {
	h, _ := newTestRouter(nil)

	for _, age := range []string{"0", "150"} {
		req := httptest.NewRequest(http.MethodPost, "/estimate",
			strings.NewReader(`{"pondAgeDays": `+age+`, "foodIntakePerLakh": 1000, "season": "Summer"}`))
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/estimates?limit=1", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var out []estimationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, SourceLocal, out[0].Source)
	assert.Contains(t, w.Body.String(), `"created_at":`)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/estimates?limit=-2", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEstimateHandler_ExtremeInputs(t *testing.T) {
	cases := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"overflow to +Inf", `{"pondAgeDays": -1e308, "foodIntakePerLakh": 1e308, "season": "Summer"}`, http.StatusBadRequest},
		{"overflow to -Inf", `{"pondAgeDays": "-1e308", "foodIntakePerLakh": "-1e308", "season": "Winter"}`, http.StatusBadRequest},
		{"huge but finite", `{"pondAgeDays": 1e308, "foodIntakePerLakh": 1e308, "season": "Summer"}`, http.StatusOK},
		{"huge age", `{"pondAgeDays": 1e308, "foodIntakePerLakh": 1000, "season": "Winter"}`, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, repo := newTestRouter(nil)

			req := httptest.NewRequest(http.MethodPost, "/estimate", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			h.ServeHTTP(w, req)
			require.Equal(t, tc.wantStatus, w.Code, w.Body.String())

			if tc.wantStatus != http.StatusOK {
				assert.Contains(t, w.Body.String(), "out of range")
				assert.Empty(t, repo.items)
				return
			}
			var res Result
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
			require.Len(t, repo.items, 1)

			// el historial sigue siendo JSON válido
			w = httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/estimates", nil))
			require.Equal(t, http.StatusOK, w.Code)
			var out []estimationResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
			assert.Len(t, out, 1)
		})
	}
}

func TestWriteJSON_EncodeFailureIs500(t *testing.T) {
	w := httptest.NewRecorder()
	writeJSON(w, http.StatusOK, Result{CountPerKg: inf()})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Header().Get("Content-Type"), "application/json")
}
