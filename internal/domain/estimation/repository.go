package estimation

import "context"

type Repository interface {
	Create(ctx context.Context, e Estimation) error
	// List devuelve las más recientes primero.
	List(ctx context.Context, limit int) ([]Estimation, error)
}

// Predictor es el modelo entrenado del backend externo (/predict).
type Predictor interface {
	Predict(ctx context.Context, in Input) (float64, error)
}
