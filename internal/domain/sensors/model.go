package sensors

import "time"

// Metric identifica una lectura del estanque.
type Metric string

const (
	MetricPH          Metric = "ph"
	MetricAmmonia     Metric = "ammonia"
	MetricSalinity    Metric = "salinity"
	MetricOxygen      Metric = "oxygen"
	MetricTDS         Metric = "tds"
	MetricTemperature Metric = "temperature"
)

const StatusOperational = "operational"

// Snapshot es una lectura completa de los sensores.
// El shape JSON es el que consume el dashboard: {timestamp, status, sensors: {...}}.
type Snapshot struct {
	Timestamp time.Time          `json:"timestamp"`
	Status    string             `json:"status"`
	Readings  map[Metric]float64 `json:"sensors"`
}

// Value devuelve la lectura de m si la fuente la reporta.
func (s Snapshot) Value(m Metric) (float64, bool) {
	v, ok := s.Readings[m]
	return v, ok
}

// Range define el rango óptimo de una métrica y el margen de advertencia
// hacia adentro de cada borde.
type Range struct {
	Min              float64 `json:"min"`
	Max              float64 `json:"max"`
	WarningThreshold float64 `json:"warning_threshold"`
}

type Level string

const (
	LevelNormal   Level = "normal"
	LevelWarning  Level = "warning"
	LevelCritical Level = "critical"
)

type MetricSpec struct {
	Metric Metric
	Name   string
	Unit   string
	Range  Range
}

// Assessment es el estado de una métrica en un snapshot.
type Assessment struct {
	Metric Metric
	Name   string
	Unit   string
	Value  float64
	Level  Level
	Range  Range
}
