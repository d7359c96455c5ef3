package handler

import (
	"go-portfolio/pkg/logger"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

const pageTemplate = "portfolio.html"

// PageConfig locates the site content served next to the API.
type PageConfig struct {
	ResumePath         string
	ResumeDownloadName string
	// ContactEmail is rendered into the page for the client's fallback message.
	ContactEmail string
}

type PageHandler struct {
	cfg PageConfig
}

// NewPageHandler registers the portfolio page, the resume download and the
// not-found fallback, which renders the page with a 404 status.
func NewPageHandler(r *gin.Engine, cfg PageConfig) {
	handler := &PageHandler{cfg: cfg}

	r.GET("/", handler.Home)
	r.GET("/download-resume", handler.DownloadResume)
	r.NoRoute(handler.NotFound)
}

func (h *PageHandler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, pageTemplate, h.pageData())
}

func (h *PageHandler) DownloadResume(c *gin.Context) {
	if _, err := os.Stat(h.cfg.ResumePath); err != nil {
		logger.Log.Warn("Resume not found", "path", h.cfg.ResumePath, "error", err)
		c.HTML(http.StatusNotFound, pageTemplate, h.pageData())
		return
	}
	c.FileAttachment(h.cfg.ResumePath, h.cfg.ResumeDownloadName)
}

func (h *PageHandler) NotFound(c *gin.Context) {
	logger.Log.Warn("404 error", "url", c.Request.URL.String())
	c.HTML(http.StatusNotFound, pageTemplate, h.pageData())
}

func (h *PageHandler) pageData() gin.H {
	return gin.H{"ContactEmail": h.cfg.ContactEmail}
}
