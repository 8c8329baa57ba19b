package diagnosis

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrSubmitterNotConfigured = errors.New("diagnosis backend not configured")
)

// MaxImageBytes es el tamaño máximo aceptado para la foto del camarón.
const MaxImageBytes = 10 << 20

// Questions es el cuestionario sí/no, en orden (q1..q10).
var Questions = [10]string{
	"Is the growth rate good?",
	"Is the food intake good?",
	"Are the weather conditions good?",
	"Is the pond affected by whitegutt previously?",
	"Is the plankton growth more or optimal?",
	"Are minerals provided 3-4 times every month?",
	"Is the estimated count matched with manual count?",
	"Are nearby ponds more affected by viruses?",
	"Are prawns losing shell at the correct time?",
	"Any shell loose cases in pond?",
}

// Answers son las respuestas a Questions, en el mismo orden.
type Answers [10]bool

// Key devuelve el nombre de campo de la pregunta i (0-based): q1..q10.
func Key(i int) string {
	return fmt.Sprintf("q%d", i+1)
}

// YesCount cuenta las respuestas afirmativas.
func (a Answers) YesCount() int {
	n := 0
	for _, v := range a {
		if v {
			n++
		}
	}
	return n
}

// Image es la foto opcional que acompaña el cuestionario.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Report es el reporte generado por el backend (PDF).
type Report struct {
	Filename    string
	ContentType string
	Data        []byte
}

// InvalidInputError indica qué campo del cuestionario está mal.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// ParseAnswer acepta las formas habituales de un booleano de formulario.
func ParseAnswer(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "y", "1", "on":
		return true, true
	case "false", "no", "n", "0", "off":
		return false, true
	default:
		return false, false
	}
}

// ParseAnswers lee q1..q10 con get. Todas son obligatorias.
func ParseAnswers(get func(key string) string) (Answers, error) {
	var a Answers
	for i := range a {
		k := Key(i)
		raw := get(k)
		if strings.TrimSpace(raw) == "" {
			return Answers{}, &InvalidInputError{Field: k, Reason: "is required"}
		}
		v, ok := ParseAnswer(raw)
		if !ok {
			return Answers{}, &InvalidInputError{Field: k, Reason: "must be yes/no"}
		}
		a[i] = v
	}
	return a, nil
}

// Fields serializa las respuestas como el backend las espera ("true"/"false").
func (a Answers) Fields() map[string]string {
	out := make(map[string]string, len(a))
	for i, v := range a {
		if v {
			out[Key(i)] = "true"
		} else {
			out[Key(i)] = "false"
		}
	}
	return out
}
