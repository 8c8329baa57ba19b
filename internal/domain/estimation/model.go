package estimation

import "time"

// Season es la temporada del ciclo de cultivo.
// @Enum Summer, Winter, Rainy
type Season string

const (
	SeasonSummer Season = "Summer"
	SeasonWinter Season = "Winter"
	SeasonRainy  Season = "Rainy"
)

// Input es lo que llega del formulario de estimación.
type Input struct {
	PondAgeDays       float64 // días desde la siembra
	FoodIntakePerLakh float64 // alimento diario por 100.000 camarones
	Season            Season
}

// Result es el conteo estimado de camarones por kilo.
type Result struct {
	CountPerKg float64 `json:"countPerKg"`
}

// Source indica quién produjo la estimación.
type Source string

const (
	SourceLocal Source = "local" // fórmula lineal de este servicio
	SourceModel Source = "model" // modelo entrenado del backend externo
)

// Estimation es una estimación ya calculada y registrada en el historial.
type Estimation struct {
	ID     string
	Input  Input
	Result Result
	Source Source

	CreatedAt time.Time
}
