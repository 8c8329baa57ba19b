package estimation

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"prawn-monitoring/internal/ports/upstream"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/estimate", estimateHandler(svc))
	r.Post("/estimate/predict", predictHandler(svc))
	r.Get("/estimates", historyHandler(svc))
}

// estimateRequest acepta números JSON o strings numéricos (los inputs del
// formulario llegan como texto).
type estimateRequest struct {
	PondAgeDays       json.RawMessage `json:"pondAgeDays" swaggertype:"number"`
	FoodIntakePerLakh json.RawMessage `json:"foodIntakePerLakh" swaggertype:"number"`
	Season            string          `json:"season" enums:"Summer,Winter,Rainy"`
}

type estimationResponse struct {
	ID                string    `json:"id"`
	PondAgeDays       float64   `json:"pondAgeDays"`
	FoodIntakePerLakh float64   `json:"foodIntakePerLakh"`
	Season            Season    `json:"season"`
	CountPerKg        float64   `json:"countPerKg"`
	Source            Source    `json:"source"`
	CreatedAt         time.Time `json:"created_at"`
}

// estimateHandler godoc
// @Summary Estimar conteo por kilo
// @Description Aplica la fórmula local: 30 * max(0.5, 1 - edad/150) * (alimento/1000) * multiplicador estacional, redondeado a 2 decimales. Acepta JSON o form-urlencoded.
// @Tags estimation
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param payload body estimateRequest true "Edad del estanque, alimento por lakh y temporada"
// @Success 200 {object} Result
// @Failure 400 {string} string "invalid input"
// @Router /estimate [post]
func estimateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := decodeInput(r)
		if err != nil {
			writeError(w, err)
			return
		}

		e, err := svc.Estimate(r.Context(), in)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, e.Result)
	}
}

// predictHandler godoc
// @Summary Predecir conteo con el modelo externo
// @Description Reenvía los mismos campos al endpoint /predict del backend de ML.
// @Tags estimation
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param payload body estimateRequest true "Edad del estanque, alimento por lakh y temporada"
// @Success 200 {object} Result
// @Failure 400 {string} string "invalid input"
// @Failure 502 {string} string "upstream unavailable"
// @Router /estimate/predict [post]
func predictHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := decodeInput(r)
		if err != nil {
			writeError(w, err)
			return
		}

		e, err := svc.Predict(r.Context(), in)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, e.Result)
	}
}

// historyHandler godoc
// @Summary Historial de estimaciones
// @Tags estimation
// @Produce json
// @Param limit query int false "Máximo de items (default 50)"
// @Success 200 {array} estimationResponse
// @Router /estimates [get]
func historyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
				return
			}
			limit = n
		}

		items, err := svc.History(r.Context(), limit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]estimationResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEstimationResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func decodeInput(r *http.Request) (Input, error) {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mt {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		// FormValue parsea ambos tipos.
		return ParseInput(
			r.FormValue("pondAgeDays"),
			r.FormValue("foodIntakePerLakh"),
			r.FormValue("season"),
		)
	default:
		var req estimateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return Input{}, &InvalidInputError{Field: "body", Reason: "must be valid json"}
		}
		return ParseInput(rawString(req.PondAgeDays), rawString(req.FoodIntakePerLakh), req.Season)
	}
}

// rawString convierte 12, "12" o null a su texto.
func rawString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return string(raw)
		}
		return s
	}
	return string(raw)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, upstream.ErrUnavailable):
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toEstimationResponse(e Estimation) estimationResponse {
	return estimationResponse{
		ID:                e.ID,
		PondAgeDays:       e.Input.PondAgeDays,
		FoodIntakePerLakh: e.Input.FoodIntakePerLakh,
		Season:            e.Input.Season,
		CountPerKg:        e.Result.CountPerKg,
		Source:            e.Source,
		CreatedAt:         e.CreatedAt,
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
