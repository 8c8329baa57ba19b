package backend

import (
	"errors"
	"strings"
	"time"

	"prawn-monitoring/internal/platform/httpclient"
	"prawn-monitoring/internal/ports/upstream"
)

var ErrBackendNotConfigured = errors.New("backend client not configured")

// Config del backend externo (sensores, modelo de conteo, diagnóstico).
type Config struct {
	BaseURL string

	// Timeout HTTP por request. Si es <= 0 se usa httpclient.DefaultTimeout.
	Timeout time.Duration
}

// Client habla con el backend externo. Toda falla (red, status no-2xx,
// JSON inválido) se devuelve como upstream.ErrUnavailable.
type Client struct {
	http *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	hc, err := httpclient.NewWithBaseURL(base, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != ""
}

func (c *Client) check(service string) error {
	if !c.IsConfigured() {
		return upstream.Unavailable(service, ErrBackendNotConfigured)
	}
	return nil
}
