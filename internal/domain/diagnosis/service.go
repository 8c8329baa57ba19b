package diagnosis

import (
	"context"
	"fmt"
	"strings"

	"prawn-monitoring/internal/domain/sensors"
	"prawn-monitoring/internal/ports/upstream"
)

const (
	ReportFilename    = "diagnosis_report.pdf"
	ReportContentType = "application/pdf"
)

// Submitter manda cuestionario + foto al backend de diagnóstico y devuelve
// el reporte generado.
type Submitter interface {
	Submit(ctx context.Context, answers Answers, image *Image) (Report, error)
}

// SensorReader da la última lectura para ajustar la evaluación por pH.
type SensorReader interface {
	Latest(ctx context.Context) (sensors.Snapshot, error)
}

type Service struct {
	submitter Submitter    // puede ser nil
	sensors   SensorReader // puede ser nil
}

func NewService(submitter Submitter, sensors SensorReader) *Service {
	return &Service{
		submitter: submitter,
		sensors:   sensors,
	}
}

// Submit reenvía al backend. Falla con upstream.ErrUnavailable si el
// backend no responde o no está configurado; no hay reintentos.
func (s *Service) Submit(ctx context.Context, answers Answers, image *Image) (Report, error) {
	if image != nil {
		if len(image.Data) == 0 {
			image = nil
		} else if len(image.Data) > MaxImageBytes {
			return Report{}, &InvalidInputError{Field: "prawn_image", Reason: "is too large"}
		}
	}
	if s.submitter == nil {
		return Report{}, upstream.Unavailable("diagnosis", ErrSubmitterNotConfigured)
	}

	rep, err := s.submitter.Submit(ctx, answers, image)
	if err != nil {
		return Report{}, fmt.Errorf("submit diagnosis: %w", err)
	}

	if strings.TrimSpace(rep.Filename) == "" {
		rep.Filename = ReportFilename
	}
	if strings.TrimSpace(rep.ContentType) == "" {
		rep.ContentType = ReportContentType
	}
	return rep, nil
}

// Assess evalúa localmente usando el pH actual si hay lectura.
func (s *Service) Assess(ctx context.Context, answers Answers) Assessment {
	return Assess(answers, s.currentPH(ctx))
}

func (s *Service) currentPH(ctx context.Context) *float64 {
	if s.sensors == nil {
		return nil
	}
	snap, err := s.sensors.Latest(ctx)
	if err != nil {
		return nil
	}
	ph, ok := snap.Value(sensors.MetricPH)
	if !ok {
		return nil
	}
	return &ph
}
