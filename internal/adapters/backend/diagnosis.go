package backend

import (
	"context"
	"mime"
	"strings"

	"prawn-monitoring/internal/domain/diagnosis"
	"prawn-monitoring/internal/platform/httpclient"
	"prawn-monitoring/internal/ports/upstream"
)

const diagnosisPath = "/diagnosis"

// DiagnosisSubmitter implementa diagnosis.Submitter contra POST /diagnosis.
type DiagnosisSubmitter struct {
	client *Client
}

func NewDiagnosisSubmitter(c *Client) *DiagnosisSubmitter {
	return &DiagnosisSubmitter{client: c}
}

func (d *DiagnosisSubmitter) Submit(ctx context.Context, answers diagnosis.Answers, image *diagnosis.Image) (diagnosis.Report, error) {
	if err := d.client.check("diagnosis"); err != nil {
		return diagnosis.Report{}, err
	}

	var files []httpclient.FilePart
	if image != nil {
		name := image.Filename
		if strings.TrimSpace(name) == "" {
			name = "prawn_image"
		}
		files = append(files, httpclient.FilePart{
			Field:       "prawn_image",
			Filename:    name,
			ContentType: image.ContentType,
			Data:        image.Data,
		})
	}

	resp, err := d.client.http.DoMultipart(ctx, diagnosisPath, nil, answers.Fields(), files)
	if err != nil {
		return diagnosis.Report{}, upstream.Unavailable("diagnosis", err)
	}

	return diagnosis.Report{
		Filename:    attachmentFilename(resp.Header.Get("Content-Disposition")),
		ContentType: resp.Header.Get("Content-Type"),
		Data:        resp.Body,
	}, nil
}

// attachmentFilename devuelve "" si el header no trae filename; el service
// completa el nombre por defecto.
func attachmentFilename(cd string) string {
	if cd == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(cd)
	if err != nil {
		return ""
	}
	return params["filename"]
}
