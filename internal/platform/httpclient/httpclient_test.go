package httpclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoJSON_RelativePathRequiresBaseURL(t *testing.T) {
	c := New(time.Second)
	err := c.DoJSON(context.Background(), http.MethodGet, "/read_sensor", nil, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires BaseURL")
}

func TestNewWithBaseURL_RejectsGarbage(t *testing.T) {
	_, err := NewWithBaseURL("::not a url", time.Second)
	require.Error(t, err)
}

func TestDoJSON_DecodesAndReportsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"pH": 8.1}`))
		default:
			http.Error(w, "nope", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c, err := NewWithBaseURL(srv.URL+"/", time.Second)
	require.NoError(t, err)

	var out struct {
		PH float64 `json:"pH"`
	}
	require.NoError(t, c.DoJSON(context.Background(), http.MethodGet, "ok", nil, nil, &out))
	assert.Equal(t, 8.1, out.PH)

	err = c.DoJSON(context.Background(), http.MethodGet, "/fail", nil, nil, &out)
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Equal(t, "nope", httpErr.Body)
}

func TestDoForm_SendsURLEncoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "Summer", r.PostForm.Get("Season"))
		_, _ = w.Write([]byte(`{"prediction": 42.5}`))
	}))
	defer srv.Close()

	c, err := NewWithBaseURL(srv.URL, time.Second)
	require.NoError(t, err)

	var out struct {
		Prediction float64 `json:"prediction"`
	}
	err = c.DoForm(context.Background(), "/predict", nil, url.Values{"Season": {"Summer"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, 42.5, out.Prediction)
}

func TestDoMultipart_SendsFieldsAndFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Equal(t, "true", r.FormValue("q1"))

		f, hdr, err := r.FormFile("prawn_image")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "prawn.jpg", hdr.Filename)
		assert.Equal(t, []byte("jpegdata"), data)

		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4"))
	}))
	defer srv.Close()

	c, err := NewWithBaseURL(srv.URL, time.Second)
	require.NoError(t, err)

	resp, err := c.DoMultipart(context.Background(), "/diagnosis", nil,
		map[string]string{"q1": "true"},
		[]FilePart{{Field: "prawn_image", Filename: "prawn.jpg", Data: []byte("jpegdata")}},
	)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, []byte("%PDF-1.4"), resp.Body)
}

func TestDo_RejectsOversizedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/exact":
			_, _ = w.Write([]byte(strings.Repeat("a", 16)))
		case "/big":
			_, _ = w.Write([]byte(strings.Repeat("a", 64)))
		default:
			http.Error(w, strings.Repeat("e", 64), http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	c, err := NewWithBaseURL(srv.URL, time.Second)
	require.NoError(t, err)
	c.MaxBodyBytes = 16

	resp, err := c.DoMultipart(context.Background(), "/exact", nil, nil, nil)
	require.NoError(t, err)
	assert.Len(t, resp.Body, 16)

	_, err = c.DoMultipart(context.Background(), "/big", nil, nil, nil)
	require.ErrorIs(t, err, ErrBodyTooLarge)

	// un error grande sigue siendo HTTPError, con el body recortado
	_, err = c.DoMultipart(context.Background(), "/fail", nil, nil, nil)
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
	assert.Len(t, httpErr.Body, 16)
}
