package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultTimeout = 10 * time.Second

	// DefaultMaxBodyBytes limita lo que se lee de una respuesta. Los reportes
	// PDF del backend caben de sobra.
	DefaultMaxBodyBytes = 16 << 20
)

// ErrBodyTooLarge: una respuesta 2xx superó MaxBodyBytes. No se devuelve
// el body truncado.
var ErrBodyTooLarge = errors.New("httpclient: response body too large")

// Client envuelve *http.Client con helpers comunes para adapters.
type Client struct {
	HTTP    *http.Client
	BaseURL string // opcional; si se define, los Do* aceptan paths relativos

	// MaxBodyBytes <= 0 usa DefaultMaxBodyBytes.
	MaxBodyBytes int64
}

// New crea un Client con timeout razonable.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		HTTP: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewWithBaseURL crea un Client con BaseURL + timeout.
func NewWithBaseURL(baseURL string, timeout time.Duration) (*Client, error) {
	c := New(timeout)
	if strings.TrimSpace(baseURL) == "" {
		return c, nil
	}
	_, err := url.ParseRequestURI(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	c.BaseURL = strings.TrimRight(baseURL, "/")
	return c, nil
}

// HTTPError representa una respuesta no-2xx.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// Response es una respuesta 2xx ya leída.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// FilePart es un archivo para DoMultipart.
type FilePart struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

// DoJSON hace un request JSON.
// - in: body a enviar (opcional). Si nil => no body.
// - out: donde decodificar JSON (opcional). Si nil => ignora body.
// Retorna error si status no es 2xx.
func (c *Client) DoJSON(
	ctx context.Context,
	method string,
	pathOrURL string,
	headers map[string]string,
	in any,
	out any,
) error {
	var (
		body        io.Reader
		contentType string
	)
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("httpclient: marshal json: %w", err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}

	resp, err := c.do(ctx, method, pathOrURL, headers, body, contentType, "application/json")
	if err != nil {
		return err
	}
	return decodeJSON(resp.Body, out)
}

// DoForm manda application/x-www-form-urlencoded y decodifica JSON.
func (c *Client) DoForm(
	ctx context.Context,
	pathOrURL string,
	headers map[string]string,
	form url.Values,
	out any,
) error {
	resp, err := c.do(ctx, http.MethodPost, pathOrURL, headers,
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", "application/json")
	if err != nil {
		return err
	}
	return decodeJSON(resp.Body, out)
}

// DoMultipart manda multipart/form-data y devuelve el body crudo
// (p.ej. un PDF).
func (c *Client) DoMultipart(
	ctx context.Context,
	pathOrURL string,
	headers map[string]string,
	fields map[string]string,
	files []FilePart,
) (*Response, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("httpclient: write field %s: %w", k, err)
		}
	}
	for _, f := range files {
		fw, err := createFilePart(mw, f)
		if err != nil {
			return nil, fmt.Errorf("httpclient: create form file: %w", err)
		}
		if _, err := fw.Write(f.Data); err != nil {
			return nil, fmt.Errorf("httpclient: write form file: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("httpclient: close multipart: %w", err)
	}

	return c.do(ctx, http.MethodPost, pathOrURL, headers, &buf, mw.FormDataContentType(), "*/*")
}

// createFilePart es mw.CreateFormFile pero respetando f.ContentType.
func createFilePart(mw *multipart.Writer, f FilePart) (io.Writer, error) {
	ct := f.ContentType
	if strings.TrimSpace(ct) == "" {
		ct = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(f.Field), quoteEscaper.Replace(f.Filename)))
	h.Set("Content-Type", ct)
	return mw.CreatePart(h)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func (c *Client) do(
	ctx context.Context,
	method string,
	pathOrURL string,
	headers map[string]string,
	body io.Reader,
	contentType string,
	accept string,
) (*Response, error) {
	if c == nil || c.HTTP == nil {
		return nil, errors.New("httpclient: nil client")
	}

	fullURL, err := c.resolveURL(pathOrURL)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: new request: %w", err)
	}

	req.Header.Set("Accept", accept)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		req.Header.Set(k, v)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := readAtMost(resp.Body, c.MaxBodyBytes)
	tooLarge := errors.Is(err, ErrBodyTooLarge)
	if err != nil && !tooLarge {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	// en un error basta con el comienzo del body
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}
	if tooLarge {
		return nil, fmt.Errorf("%w (limit %d bytes)", ErrBodyTooLarge, len(raw))
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       raw,
	}, nil
}

func decodeJSON(raw []byte, out any) error {
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("httpclient: unmarshal json: %w", err)
	}
	return nil
}

func (c *Client) resolveURL(pathOrURL string) (string, error) {
	pathOrURL = strings.TrimSpace(pathOrURL)
	if pathOrURL == "" {
		return "", errors.New("httpclient: empty url")
	}

	// Si ya es URL absoluta, úsala tal cual.
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return pathOrURL, nil
	}

	if strings.TrimSpace(c.BaseURL) == "" {
		return "", errors.New("httpclient: relative path requires BaseURL")
	}

	if !strings.HasPrefix(pathOrURL, "/") {
		pathOrURL = "/" + pathOrURL
	}
	return c.BaseURL + pathOrURL, nil
}

// readAtMost lee hasta max bytes. Si el body sigue, devuelve los primeros
// max junto con ErrBodyTooLarge.
func readAtMost(r io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		max = DefaultMaxBodyBytes
	}
	raw, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(raw)) > max {
		return raw[:max], ErrBodyTooLarge
	}
	return raw, nil
}
