package sensors

// specs en el orden en que se muestran.
var specs = []MetricSpec{
	{Metric: MetricPH, Name: "pH Level", Range: Range{Min: 7.0, Max: 8.5, WarningThreshold: 0.2}},
	{Metric: MetricAmmonia, Name: "Ammonia", Unit: "mg/L", Range: Range{Min: 0, Max: 0.5, WarningThreshold: 0.1}},
	{Metric: MetricSalinity, Name: "Salinity", Unit: "ppt", Range: Range{Min: 12, Max: 20, WarningThreshold: 2}},
	{Metric: MetricOxygen, Name: "Dissolved Oxygen", Unit: "mg/L", Range: Range{Min: 6.0, Max: 8.0, WarningThreshold: 0.5}},
	{Metric: MetricTDS, Name: "TDS", Unit: "ppm", Range: Range{Min: 1000, Max: 1500, WarningThreshold: 50}},
	{Metric: MetricTemperature, Name: "Temperature", Unit: "°C", Range: Range{Min: 28, Max: 32, WarningThreshold: 0.5}},
}

// Specs devuelve una copia de la tabla de rangos.
func Specs() []MetricSpec {
	out := make([]MetricSpec, len(specs))
	copy(out, specs)
	return out
}

func SpecFor(m Metric) (MetricSpec, bool) {
	for _, s := range specs {
		if s.Metric == m {
			return s, true
		}
	}
	return MetricSpec{}, false
}

// Classify: fuera de [min,max] es crítico; dentro del margen de
// advertencia de cualquiera de los bordes es warning.
func Classify(v float64, r Range) Level {
	if v < r.Min || v > r.Max {
		return LevelCritical
	}
	if v < r.Min+r.WarningThreshold || v > r.Max-r.WarningThreshold {
		return LevelWarning
	}
	return LevelNormal
}

// Assess evalúa las métricas presentes en el snapshot.
func Assess(s Snapshot) []Assessment {
	out := make([]Assessment, 0, len(s.Readings))
	for _, spec := range specs {
		v, ok := s.Value(spec.Metric)
		if !ok {
			continue
		}
		out = append(out, Assessment{
			Metric: spec.Metric,
			Name:   spec.Name,
			Unit:   spec.Unit,
			Value:  v,
			Level:  Classify(v, spec.Range),
			Range:  spec.Range,
		})
	}
	return out
}

// Overall es el peor nivel de la lista.
func Overall(items []Assessment) Level {
	worst := LevelNormal
	for _, a := range items {
		switch a.Level {
		case LevelCritical:
			return LevelCritical
		case LevelWarning:
			worst = LevelWarning
		}
	}
	return worst
}
