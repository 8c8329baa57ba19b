package diagnosis

const (
	healthyScore = 7
	phLow        = 7.0
	phHigh       = 9.0
)

const (
	RecommendationGood      = "Overall conditions appear to be good. Continue monitoring feeding and water parameters regularly."
	RecommendationAttention = "Some parameters may need attention. Verify feeding, check for possible disease signs, and ensure water quality is within proper ranges."
)

// Assessment es la evaluación local del cuestionario.
type Assessment struct {
	YesCount       int
	PH             *float64 // nil si no hay lectura de sensores
	PHOutOfRange   bool
	Score          int
	Healthy        bool
	Recommendation string
}

// Assess puntúa las respuestas: +1 por cada sí, -1 si el pH conocido
// está fuera de [7.0, 9.0]. Con 7 o más se considera sano.
func Assess(a Answers, ph *float64) Assessment {
	out := Assessment{
		YesCount: a.YesCount(),
		PH:       ph,
	}
	out.Score = out.YesCount

	if ph != nil && (*ph < phLow || *ph > phHigh) {
		out.PHOutOfRange = true
		out.Score--
	}

	out.Healthy = out.Score >= healthyScore
	if out.Healthy {
		out.Recommendation = RecommendationGood
	} else {
		out.Recommendation = RecommendationAttention
	}
	return out
}
