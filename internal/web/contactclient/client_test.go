package contactclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-portfolio/internal/domain"
	"go-portfolio/internal/web/form"

	"github.com/stretchr/testify/assert"
)

var sample = domain.ContactRequest{Name: "Alice", Email: "alice@example.com", Message: "Hello there, nice site!"}

func TestSubmit_PostsJSON(t *testing.T) {
	var got domain.ContactRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/contact", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message":"Thank you!"}`))
	}))
	defer srv.Close()

	out := New(srv.URL+"/contact", WithHTTPClient(srv.Client())).Submit(context.Background(), sample)

	assert.Equal(t, form.OutcomeSuccess, out.Kind)
	assert.Equal(t, "Thank you!", out.Message)
	assert.NoError(t, out.Err)
	assert.Equal(t, sample, got)
}

func TestSubmit_Outcomes(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		kind    form.OutcomeKind
		message string
	}{
		{name: "server failure", status: http.StatusOK, body: `{"success":false,"message":"Not now."}`, kind: form.OutcomeServerFailure, message: "Not now."},
		{name: "non-2xx with envelope", status: http.StatusTooManyRequests, body: `{"success":false,"message":"Too many requests."}`, kind: form.OutcomeTransportFailure},
		{name: "server error", status: http.StatusInternalServerError, body: `{"success":false,"message":"boom"}`, kind: form.OutcomeTransportFailure},
		{name: "malformed json", status: http.StatusOK, body: `<html>oops</html>`, kind: form.OutcomeTransportFailure},
		{name: "created", status: http.StatusCreated, body: `{"success":true,"message":"ok"}`, kind: form.OutcomeSuccess, message: "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			out := New(srv.URL, WithHTTPClient(srv.Client())).Submit(context.Background(), sample)

			assert.Equal(t, tt.kind, out.Kind)
			assert.Equal(t, tt.message, out.Message)
			if tt.kind == form.OutcomeTransportFailure {
				assert.ErrorIs(t, out.Err, ErrTransport)
			}
		})
	}
}

func TestSubmit_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	out := New(url).Submit(context.Background(), sample)

	assert.Equal(t, form.OutcomeTransportFailure, out.Kind)
	assert.ErrorIs(t, out.Err, ErrTransport)
}

func TestSubmit_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	out := New(srv.URL, WithHTTPClient(srv.Client()), WithTimeout(50*time.Millisecond)).
		Submit(context.Background(), sample)

	assert.Equal(t, form.OutcomeTransportFailure, out.Kind)
	assert.ErrorIs(t, out.Err, ErrTransport)
	assert.ErrorIs(t, out.Err, context.DeadlineExceeded)
}

func TestNew_Defaults(t *testing.T) {
	c := New("")
	assert.Equal(t, DefaultEndpoint, c.endpoint)
	assert.Equal(t, DefaultTimeout, c.timeout)
	assert.Same(t, http.DefaultClient, c.httpClient)
}
