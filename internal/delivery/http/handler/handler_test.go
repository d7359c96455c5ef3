package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go-portfolio/config"
	"go-portfolio/internal/delivery/http/handler"
	"go-portfolio/internal/delivery/http/response"
	"go-portfolio/internal/domain"
	"go-portfolio/internal/usecase"
	"go-portfolio/pkg/apperror"
	"go-portfolio/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type MockContactUsecase struct {
	mock.Mock
}

func (m *MockContactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest, clientIP string) error {
	return m.Called(ctx, req, clientIP).Error(0)
}

type testServer struct {
	router    *gin.Engine
	contactUC *MockContactUsecase
	metrics   *metrics.Metrics
}

func newTestServer(t *testing.T, mutate func(*config.Config)) *testServer {
	t.Helper()
	cfg := &config.Config{
		AppEnv:                 "development",
		RateLimitEnabled:       true,
		RateLimitMaxRequests:   5,
		RateLimitWindowSeconds: 300,
		TemplateDir:            t.TempDir(),
		StaticDir:              filepath.Join(t.TempDir(), "missing"),
		ResumePath:             filepath.Join(t.TempDir(), "resume.pdf"),
		ResumeDownloadName:     "Jo_Doe_Resume.pdf",
	}
	if mutate != nil {
		mutate(cfg)
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	contactUC := new(MockContactUsecase)

	router := handler.NewRouter(handler.RouterDeps{
		ContactUC: contactUC,
		HealthUC:  usecase.NewHealthUsecase(nil),
		Metrics:   m,
		Registry:  registry,
		Config:    cfg,
	})

	return &testServer{router: router, contactUC: contactUC, metrics: m}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func contactRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/contact", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	return req
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSubmitContact_Success(t *testing.T) {
	s := newTestServer(t, nil)

	s.contactUC.On("SendContactMessage", mock.Anything, &domain.ContactRequest{
		Name:    "Jo Doe",
		Email:   "jo@example.com",
		Message: "Hello, this is a test.",
	}, "203.0.113.7").Return(nil)

	w := s.do(contactRequest(`{"name":"Jo Doe","email":"jo@example.com","message":"Hello, this is a test."}`))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.True(t, body.Success)
	assert.Equal(t, domain.ContactSuccessMessage, body.Message)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.ContactSubmissionsTotal.WithLabelValues(metrics.OutcomeSent)))
	s.contactUC.AssertExpectations(t)
}

func TestSubmitContact_MalformedBody(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(contactRequest(`{not json`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.False(t, body.Success)
	assert.Equal(t, "Invalid request data.", body.Message)
	s.contactUC.AssertNotCalled(t, "SendContactMessage", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitContact_UsecaseErrors(t *testing.T) {
	cases := []struct {
		desc    string
		err     error
		code    int
		outcome string
	}{
		{"validation", apperror.BadRequest("Please fill in all fields."), http.StatusBadRequest, metrics.OutcomeInvalid},
		{"unconfigured", apperror.ServiceUnavailable(domain.ContactFallbackMessage("owner@example.com"), nil), http.StatusServiceUnavailable, metrics.OutcomeUnavailable},
		{"send failure", apperror.New(http.StatusInternalServerError, domain.ContactFallbackMessage("owner@example.com"), assert.AnError), http.StatusInternalServerError, metrics.OutcomeFailed},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			s := newTestServer(t, nil)
			s.contactUC.On("SendContactMessage", mock.Anything, mock.Anything, mock.Anything).Return(tc.err)

			w := s.do(contactRequest(`{"name":"Jo","email":"jo@example.com","message":"Hello, this is a test."}`))

			assert.Equal(t, tc.code, w.Code)
			body := decode(t, w)
			assert.False(t, body.Success)
			assert.Equal(t, tc.err.Error(), body.Message)
			assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.ContactSubmissionsTotal.WithLabelValues(tc.outcome)))
		})
	}
}

func TestSubmitContact_RateLimited(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.RateLimitMaxRequests = 1
	})
	s.contactUC.On("SendContactMessage", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	payload := `{"name":"Jo","email":"jo@example.com","message":"Hello, this is a test."}`
	assert.Equal(t, http.StatusOK, s.do(contactRequest(payload)).Code)

	w := s.do(contactRequest(payload))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, domain.RateLimitedMessage, decode(t, w).Message)
	s.contactUC.AssertNumberOfCalls(t, "SendContactMessage", 1)
}

func TestPages(t *testing.T) {
	templateDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(templateDir, "portfolio.html"), []byte(`<html><body id="page">portfolio <form id="contactForm" data-contact-email="{{.ContactEmail}}"></form></body></html>`), 0o644))
	resumeDir := t.TempDir()
	resumePath := filepath.Join(resumeDir, "resume.pdf")
	require.NoError(t, os.WriteFile(resumePath, []byte("%PDF-1.4"), 0o644))

	s := newTestServer(t, func(cfg *config.Config) {
		cfg.TemplateDir = templateDir
		cfg.ResumePath = resumePath
		cfg.ContactEmailTo = "owner@example.com"
	})

	t.Run("home", func(t *testing.T) {
		w := s.do(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "portfolio")
		assert.Contains(t, w.Body.String(), `data-contact-email="owner@example.com"`)
		assert.NotEmpty(t, w.Header().Get("Content-Security-Policy"))
	})

	t.Run("resume download", func(t *testing.T) {
		w := s.do(httptest.NewRequest(http.MethodGet, "/download-resume", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), "Jo_Doe_Resume.pdf")
		assert.Equal(t, "%PDF-1.4", w.Body.String())
	})

	t.Run("unknown path renders page with 404", func(t *testing.T) {
		w := s.do(httptest.NewRequest(http.MethodGet, "/nope", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "portfolio")
	})
}

func TestResumeMissing(t *testing.T) {
	s := newTestServer(t, nil)
	w := s.do(httptest.NewRequest(http.MethodGet, "/download-resume", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode(t, w).Success)

	w = s.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "portfolio_http_request_duration_seconds")
}
