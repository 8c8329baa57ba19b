package sensors

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, m *Monitor) {
	r.Route("/sensors", func(sr chi.Router) {
		sr.Get("/latest", latestHandler(m))
		sr.Get("/history", historyHandler(m))
		sr.Get("/metrics", metricsHandler())
	})

	r.Get("/water-quality", waterQualityHandler(m))
}

type assessmentResponse struct {
	Metric Metric  `json:"metric"`
	Name   string  `json:"name"`
	Unit   string  `json:"unit,omitempty"`
	Value  float64 `json:"value"`
	Level  Level   `json:"level"`
	Range  Range   `json:"range"`
}

type waterQualityResponse struct {
	Timestamp time.Time            `json:"timestamp"`
	Status    string               `json:"status"`
	Overall   Level                `json:"overall"`
	Metrics   []assessmentResponse `json:"metrics"`
}

type metricSpecResponse struct {
	Metric Metric `json:"metric"`
	Name   string `json:"name"`
	Unit   string `json:"unit,omitempty"`
	Range  Range  `json:"range"`
}

// latestHandler godoc
// @Summary Última lectura de sensores
// @Tags sensors
// @Produce json
// @Success 200 {object} Snapshot
// @Failure 503 {string} string "sensor data unavailable"
// @Router /sensors/latest [get]
func latestHandler(m *Monitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := m.Latest(r.Context())
		if err != nil {
			http.Error(w, "sensor data unavailable", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, http.StatusOK, s)
	}
}

// historyHandler godoc
// @Summary Historial reciente de lecturas (más antiguo primero)
// @Tags sensors
// @Produce json
// @Success 200 {array} Snapshot
// @Router /sensors/history [get]
func historyHandler(m *Monitor) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, m.History())
	}
}

// metricsHandler godoc
// @Summary Rangos óptimos por métrica
// @Tags sensors
// @Produce json
// @Success 200 {array} metricSpecResponse
// @Router /sensors/metrics [get]
func metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		all := Specs()
		out := make([]metricSpecResponse, 0, len(all))
		for _, s := range all {
			out = append(out, metricSpecResponse{Metric: s.Metric, Name: s.Name, Unit: s.Unit, Range: s.Range})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// waterQualityHandler godoc
// @Summary Calidad de agua
// @Description Última lectura con el nivel (normal, warning, critical) de cada métrica presente.
// @Tags sensors
// @Produce json
// @Success 200 {object} waterQualityResponse
// @Failure 503 {string} string "sensor data unavailable"
// @Router /water-quality [get]
func waterQualityHandler(m *Monitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := m.Latest(r.Context())
		if err != nil {
			http.Error(w, "sensor data unavailable", http.StatusServiceUnavailable)
			return
		}

		items := Assess(s)
		out := waterQualityResponse{
			Timestamp: s.Timestamp,
			Status:    s.Status,
			Overall:   Overall(items),
			Metrics:   make([]assessmentResponse, 0, len(items)),
		}
		for _, a := range items {
			out.Metrics = append(out.Metrics, assessmentResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// writeJSON está duplicado en los handlers de cada módulo (estimation,
// sensors, diagnosis) para no crear un paquete de helpers compartidos todavía.
// Se codifica antes de escribir el status para poder responder 500 si falla.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
