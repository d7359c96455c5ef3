package handler

import (
	"go-portfolio/config"
	"go-portfolio/internal/delivery/http/middleware"
	"go-portfolio/internal/delivery/http/response"
	"go-portfolio/internal/domain"
	"go-portfolio/internal/usecase"
	"go-portfolio/pkg/logger"
	"go-portfolio/pkg/metrics"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterDeps struct {
	ContactUC       domain.ContactUsecase
	HealthUC        usecase.HealthUsecase
	RateLimitStore  middleware.RateLimitStore // nil without Redis
	FallbackLimiter *middleware.MemoryRateLimitStore
	Metrics         *metrics.Metrics
	Registry        *prometheus.Registry
	Config          *config.Config
}

// Served when no template directory is deployed, e.g. in tests.
const fallbackPage = `<!DOCTYPE html><html lang="en"><head><meta charset="UTF-8"><title>Portfolio</title></head><body></body></html>`

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ClientIP())
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config.IsProduction()))
	r.Use(middleware.RequestMetrics(deps.Metrics))
	r.Use(middleware.ErrorHandler())

	loadTemplates(r, deps.Config.TemplateDir)
	if info, err := os.Stat(deps.Config.StaticDir); err == nil && info.IsDir() {
		r.Static("/static", deps.Config.StaticDir)
	}

	// Health Check
	r.GET("/health", func(c *gin.Context) {
		status, healthy := deps.HealthUC.Check(c.Request.Context())
		if !healthy {
			c.JSON(http.StatusServiceUnavailable, response.Response{
				Success:   false,
				Message:   "System degraded",
				Data:      status,
				RequestID: c.GetString(response.RequestIDKey),
			})
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	if deps.Registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	fallback := deps.FallbackLimiter
	if fallback == nil {
		fallback = middleware.NewMemoryRateLimitStore()
	}
	limiter := middleware.RateLimitMiddleware(
		middleware.ContactRateLimitConfig(
			deps.Config.RateLimitEnabled,
			deps.Config.RateLimitMaxRequests,
			time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
		),
		deps.RateLimitStore,
		fallback,
		deps.Metrics,
	)

	// Public routes
	NewContactHandler(r, deps.ContactUC, limiter, deps.Metrics)
	NewPageHandler(r, PageConfig{
		ResumePath:         deps.Config.ResumePath,
		ResumeDownloadName: deps.Config.ResumeDownloadName,
		ContactEmail:       deps.Config.ContactEmailTo,
	})

	return r
}

func loadTemplates(r *gin.Engine, dir string) {
	pattern := filepath.Join(dir, "*.html")
	if matches, err := filepath.Glob(pattern); err == nil && len(matches) > 0 {
		r.LoadHTMLGlob(pattern)
		return
	}
	logger.Log.Warn("No page templates found, serving placeholder page", "dir", dir)
	r.SetHTMLTemplate(template.Must(template.New(pageTemplate).Parse(fallbackPage)))
}
