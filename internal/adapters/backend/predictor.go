package backend

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"prawn-monitoring/internal/domain/estimation"
	"prawn-monitoring/internal/ports/upstream"
)

const predictPath = "/predict"

// Predictor implementa estimation.Predictor contra POST /predict.
type Predictor struct {
	client *Client
}

func NewPredictor(c *Client) *Predictor {
	return &Predictor{client: c}
}

func (p *Predictor) Predict(ctx context.Context, in estimation.Input) (float64, error) {
	if err := p.client.check("predict"); err != nil {
		return 0, err
	}

	form := url.Values{}
	form.Set("Age_of_Pond", strconv.FormatFloat(in.PondAgeDays, 'f', -1, 64))
	form.Set("Food_Intake", strconv.FormatFloat(in.FoodIntakePerLakh, 'f', -1, 64))
	form.Set("Season", string(in.Season))

	// el modelo responde {"prediction": n} o {"error": "..."}, ambos con 200
	var out struct {
		Prediction *float64 `json:"prediction"`
		Error      string   `json:"error"`
	}
	if err := p.client.http.DoForm(ctx, predictPath, nil, form, &out); err != nil {
		return 0, upstream.Unavailable("predict", err)
	}
	if msg := strings.TrimSpace(out.Error); msg != "" {
		return 0, upstream.Unavailable("predict", errors.New(msg))
	}
	if out.Prediction == nil {
		return 0, upstream.Unavailable("predict", errors.New("response missing prediction"))
	}
	return *out.Prediction, nil
}
