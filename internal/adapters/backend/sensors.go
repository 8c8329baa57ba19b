package backend

import (
	"context"
	"errors"
	"net/http"
	"time"

	"prawn-monitoring/internal/domain/sensors"
	"prawn-monitoring/internal/ports/upstream"
)

const readSensorPath = "/read_sensor"

// readSensorResponse es lo que devuelve GET /read_sensor.
type readSensorResponse struct {
	PH          *float64 `json:"pH"`
	TDS         *float64 `json:"tds"`
	Temperature *float64 `json:"temperature"`
}

// RemoteSource implementa sensors.Source leyendo del backend.
type RemoteSource struct {
	client *Client
	now    func() time.Time
}

func NewRemoteSource(c *Client) *RemoteSource {
	return &RemoteSource{
		client: c,
		now:    time.Now,
	}
}

func (s *RemoteSource) Start(ctx context.Context) error {
	return s.client.check("sensors")
}

func (s *RemoteSource) Stop() error { return nil }

func (s *RemoteSource) Snapshot(ctx context.Context) (sensors.Snapshot, error) {
	if err := s.client.check("sensors"); err != nil {
		return sensors.Snapshot{}, err
	}

	var out readSensorResponse
	if err := s.client.http.DoJSON(ctx, http.MethodGet, readSensorPath, nil, nil, &out); err != nil {
		return sensors.Snapshot{}, upstream.Unavailable("sensors", err)
	}

	readings := make(map[sensors.Metric]float64, 3)
	if out.PH != nil {
		readings[sensors.MetricPH] = *out.PH
	}
	if out.TDS != nil {
		readings[sensors.MetricTDS] = *out.TDS
	}
	if out.Temperature != nil {
		readings[sensors.MetricTemperature] = *out.Temperature
	}
	if len(readings) == 0 {
		return sensors.Snapshot{}, upstream.Unavailable("sensors", errors.New("empty sensor response"))
	}

	return sensors.Snapshot{
		Timestamp: s.now().UTC(),
		Status:    sensors.StatusOperational,
		Readings:  readings,
	}, nil
}
