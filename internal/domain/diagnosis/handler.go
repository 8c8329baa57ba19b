package diagnosis

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"prawn-monitoring/internal/ports/upstream"

	"github.com/go-chi/chi/v5"
)

// multipart: foto + campos del cuestionario
const maxFormBytes = MaxImageBytes + 1<<20

// RegisterRoutes monta las rutas. limit envuelve el POST que llama al
// backend externo (puede ser nil).
func RegisterRoutes(r chi.Router, svc *Service, limit func(http.Handler) http.Handler) {
	r.Route("/diagnosis", func(dr chi.Router) {
		dr.Get("/questions", questionsHandler())
		dr.Post("/assessment", assessmentHandler(svc))

		if limit != nil {
			dr.With(limit).Post("/", submitHandler(svc))
		} else {
			dr.Post("/", submitHandler(svc))
		}
	})
}

type questionResponse struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type assessmentResponse struct {
	YesCount       int      `json:"yes_count"`
	PH             *float64 `json:"ph,omitempty"`
	PHOutOfRange   bool     `json:"ph_out_of_range"`
	Score          int      `json:"score"`
	Healthy        bool     `json:"healthy"`
	Recommendation string   `json:"recommendation"`
}

// questionsHandler godoc
// @Summary Cuestionario de diagnóstico
// @Tags diagnosis
// @Produce json
// @Success 200 {array} questionResponse
// @Router /diagnosis/questions [get]
func questionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		out := make([]questionResponse, 0, len(Questions))
		for i, q := range Questions {
			out = append(out, questionResponse{ID: Key(i), Text: q})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// submitHandler godoc
// @Summary Enviar diagnóstico
// @Description Reenvía q1..q10 y la foto opcional al backend de diagnóstico y devuelve el reporte PDF.
// @Tags diagnosis
// @Accept multipart/form-data
// @Produce application/pdf
// @Param q1 formData bool true "Is the growth rate good?"
// @Param prawn_image formData file false "Foto del camarón"
// @Success 200 {file} file
// @Failure 400 {string} string "invalid input"
// @Failure 429 {string} string "rate limit exceeded"
// @Failure 502 {string} string "upstream unavailable"
// @Router /diagnosis [post]
func submitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
		if err := r.ParseMultipartForm(maxFormBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			http.Error(w, "invalid multipart form", http.StatusBadRequest)
			return
		}

		answers, err := ParseAnswers(r.FormValue)
		if err != nil {
			writeError(w, err)
			return
		}

		img, err := readImage(r)
		if err != nil {
			writeError(w, err)
			return
		}

		rep, err := svc.Submit(r.Context(), answers, img)
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", rep.ContentType)
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": rep.Filename}))
		w.Header().Set("Content-Length", strconv.Itoa(len(rep.Data)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(rep.Data)
	}
}

// assessmentHandler godoc
// @Summary Evaluación local del cuestionario
// @Description Puntaje = respuestas sí, menos 1 si el pH actual está fuera de 7.0-9.0. Sano con 7 o más.
// @Tags diagnosis
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Success 200 {object} assessmentResponse
// @Failure 400 {string} string "invalid input"
// @Router /diagnosis/assessment [post]
func assessmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		get, err := answerGetter(r)
		if err != nil {
			writeError(w, err)
			return
		}

		answers, err := ParseAnswers(get)
		if err != nil {
			writeError(w, err)
			return
		}

		a := svc.Assess(r.Context(), answers)
		writeJSON(w, http.StatusOK, assessmentResponse(a))
	}
}

func answerGetter(r *http.Request) (func(string) string, error) {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mt {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		return r.FormValue, nil
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, &InvalidInputError{Field: "body", Reason: "must be valid json"}
	}
	return func(k string) string {
		v := bytes.TrimSpace(raw[k])
		if len(v) > 0 && v[0] == '"' {
			var s string
			if err := json.Unmarshal(v, &s); err == nil {
				return s
			}
		}
		if bytes.Equal(v, []byte("null")) {
			return ""
		}
		return string(v)
	}, nil
}

func readImage(r *http.Request) (*Image, error) {
	f, hdr, err := r.FormFile("prawn_image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, &InvalidInputError{Field: "prawn_image", Reason: "could not be read"}
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxImageBytes+1))
	if err != nil {
		return nil, &InvalidInputError{Field: "prawn_image", Reason: "could not be read"}
	}

	return &Image{
		Filename:    hdr.Filename,
		ContentType: hdr.Header.Get("Content-Type"),
		Data:        data,
	}, nil
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
