package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"prawn-monitoring/internal/domain/diagnosis"
	"prawn-monitoring/internal/domain/estimation"
	"prawn-monitoring/internal/middleware"
	"prawn-monitoring/internal/router"
)

func TestHTTP_EndToEnd_EstimationFlow(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	// 1) Health
	{
		st, body := doReq(t, ts.URL, "GET", "/health", nil)
		if st != http.StatusOK || string(body) != "ok" {
			t.Fatalf("expected 200 ok, got %d body=%s", st, string(body))
		}
	}

	// 2) Estimación local
	{
		st, body := doReq(t, ts.URL, "POST", "/estimate", map[string]any{
			"pondAgeDays":       60,
			"foodIntakePerLakh": "1500",
			"season":            "Summer",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 estimate, got %d body=%s", st, string(body))
		}
		var res estimation.Result
		if err := json.Unmarshal(body, &res); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if res.CountPerKg != 32.4 {
			t.Fatalf("expected 32.4, got %v", res.CountPerKg)
		}
	}

	// 3) Input inválido
	{
		st, _ := doReq(t, ts.URL, "POST", "/estimate", map[string]any{
			"pondAgeDays":       "sixty",
			"foodIntakePerLakh": 1500,
			"season":            "Summer",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 on invalid input, got %d", st)
		}
	}

	// 4) Sin backend configurado, /predict es upstream unavailable
	{
		st, _ := doReq(t, ts.URL, "POST", "/estimate/predict", map[string]any{
			"pondAgeDays":       60,
			"foodIntakePerLakh": 1500,
			"season":            "Summer",
		})
		if st != http.StatusBadGateway {
			t.Fatalf("expected 502 without predictor, got %d", st)
		}
	}

	// 5) Historial
	{
		st, body := doReq(t, ts.URL, "GET", "/estimates?limit=10", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 history, got %d body=%s", st, string(body))
		}
		var items []map[string]any
		if err := json.Unmarshal(body, &items); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("expected 1 recorded estimation, got %d", len(items))
		}
		if items[0]["source"] != "local" {
			t.Fatalf("expected local source, got %v", items[0]["source"])
		}
	}
}

func TestHTTP_EndToEnd_SensorsAndDiagnosis(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	// 1) Última lectura (simulada, a demanda)
	{
		st, body := doReq(t, ts.URL, "GET", "/sensors/latest", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 latest, got %d body=%s", st, string(body))
		}
		var snap struct {
			Status  string             `json:"status"`
			Sensors map[string]float64 `json:"sensors"`
		}
		if err := json.Unmarshal(body, &snap); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if snap.Status != "operational" {
			t.Fatalf("expected operational, got %q", snap.Status)
		}
		if _, ok := snap.Sensors["ph"]; !ok {
			t.Fatalf("expected ph reading, got %v", snap.Sensors)
		}
	}

	// 2) Calidad de agua
	{
		st, body := doReq(t, ts.URL, "GET", "/water-quality", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 water-quality, got %d body=%s", st, string(body))
		}
		var wq struct {
			Overall string           `json:"overall"`
			Metrics []map[string]any `json:"metrics"`
		}
		if err := json.Unmarshal(body, &wq); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(wq.Metrics) != 4 {
			t.Fatalf("expected 4 simulated metrics, got %d", len(wq.Metrics))
		}
	}

	// 3) Cuestionario
	{
		st, body := doReq(t, ts.URL, "GET", "/diagnosis/questions", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 questions, got %d", st)
		}
		var qs []map[string]string
		if err := json.Unmarshal(body, &qs); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(qs) != len(diagnosis.Questions) {
			t.Fatalf("expected %d questions, got %d", len(diagnosis.Questions), len(qs))
		}
	}

	// 4) Evaluación local: 8 sí con pH simulado dentro de rango
	{
		payload := map[string]any{}
		for i := 0; i < 10; i++ {
			payload[diagnosis.Key(i)] = i < 8
		}
		st, body := doReq(t, ts.URL, "POST", "/diagnosis/assessment", payload)
		if st != http.StatusOK {
			t.Fatalf("expected 200 assessment, got %d body=%s", st, string(body))
		}
		var a map[string]any
		if err := json.Unmarshal(body, &a); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if a["healthy"] != true {
			t.Fatalf("expected healthy assessment, got %v", a)
		}
	}

	// 5) Sin backend, el diagnóstico completo es 502
	{
		st := postDiagnosis(t, ts.URL)
		if st != http.StatusBadGateway {
			t.Fatalf("expected 502 without submitter, got %d", st)
		}
	}

	// 6) Swagger
	{
		st, body := doReq(t, ts.URL, "GET", "/swagger/doc.json", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 swagger doc, got %d", st)
		}
		if !bytes.Contains(body, []byte("/water-quality")) {
			t.Fatalf("swagger doc missing routes: %s", string(body))
		}
	}
}

type okSubmitter struct{}

func (okSubmitter) Submit(ctx context.Context, a diagnosis.Answers, img *diagnosis.Image) (diagnosis.Report, error) {
	return diagnosis.Report{Data: []byte("%PDF-1.4")}, nil
}

func TestHTTP_DiagnosisIsRateLimited(t *testing.T) {
	rl := middleware.NewRateLimiter(2, time.Minute)
	defer rl.Stop()

	ts := httptest.NewServer(router.NewRouter(router.Options{
		Submitter:   okSubmitter{},
		RateLimiter: rl,
	}))
	defer ts.Close()

	for i := 0; i < 2; i++ {
		if st := postDiagnosis(t, ts.URL); st != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, st)
		}
	}
	if st := postDiagnosis(t, ts.URL); st != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after limit, got %d", st)
	}

	// las rutas locales no están limitadas
	if st, _ := doReq(t, ts.URL, "GET", "/diagnosis/questions", nil); st != http.StatusOK {
		t.Fatalf("expected 200 questions, got %d", st)
	}
}

func postDiagnosis(t *testing.T, baseURL string) int {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for i := 0; i < 10; i++ {
		if err := mw.WriteField(diagnosis.Key(i), "yes"); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	res, err := http.Post(baseURL+"/diagnosis", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)
	return res.StatusCode
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
