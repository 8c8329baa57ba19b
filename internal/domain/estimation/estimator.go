package estimation

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	baseCountPerKg = 30.0
	ageHorizonDays = 150.0
	minAgeFactor   = 0.5
	foodUnit       = 1000.0
)

// Multiplier devuelve el factor estacional. Cualquier valor desconocido
// (incluido "") cuenta como 1.0, igual que Rainy.
func (s Season) Multiplier() float64 {
	switch s {
	case SeasonSummer:
		return 1.2
	case SeasonWinter:
		return 0.8
	default:
		return 1.0
	}
}

// AgeFactor baja linealmente con la edad del estanque y se queda en 0.5
// a partir de los 75 días.
func AgeFactor(pondAgeDays float64) float64 {
	return math.Max(minAgeFactor, 1-pondAgeDays/ageHorizonDays)
}

// FoodFactor normaliza el alimento diario por lakh.
func FoodFactor(foodIntakePerLakh float64) float64 {
	return foodIntakePerLakh / foodUnit
}

// Estimate calcula el conteo por kilo redondeado a 2 decimales.
// Es pura: sin estado, segura para llamar concurrentemente.
// El resultado no se recorta; alimento cero o negativo da <= 0.
func Estimate(in Input) Result {
	count := baseCountPerKg *
		AgeFactor(in.PondAgeDays) *
		FoodFactor(in.FoodIntakePerLakh) *
		in.Season.Multiplier()

	return Result{CountPerKg: round2(count)}
}

// Compute valida la entrada y calcula el conteo. Entradas finitas pero
// extremas pueden desbordar la fórmula; ese resultado se rechaza.
func Compute(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}
	res := Estimate(in)
	if !finite(res.CountPerKg) {
		return Result{}, &InvalidInputError{Field: "result", Reason: "out of range"}
	}
	return res, nil
}

func round2(v float64) float64 {
	// decimal entra en pánico con NaN/Inf; Compute los rechaza después.
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Validate rechaza números no finitos.
func (in Input) Validate() error {
	if !finite(in.PondAgeDays) {
		return &InvalidInputError{Field: "pondAgeDays", Reason: "must be a finite number"}
	}
	if !finite(in.FoodIntakePerLakh) {
		return &InvalidInputError{Field: "foodIntakePerLakh", Reason: "must be a finite number"}
	}
	return nil
}

// ParseInput interpreta los campos crudos de un formulario o JSON.
func ParseInput(pondAgeDays, foodIntakePerLakh, season string) (Input, error) {
	age, err := parseNumber("pondAgeDays", pondAgeDays)
	if err != nil {
		return Input{}, err
	}
	food, err := parseNumber("foodIntakePerLakh", foodIntakePerLakh)
	if err != nil {
		return Input{}, err
	}

	return Input{
		PondAgeDays:       age,
		FoodIntakePerLakh: food,
		Season:            Season(strings.TrimSpace(season)),
	}, nil
}

func parseNumber(field, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, &InvalidInputError{Field: field, Reason: "is required"}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || !finite(v) {
		return 0, &InvalidInputError{Field: field, Value: raw, Reason: "must be a finite number"}
	}
	return v, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
