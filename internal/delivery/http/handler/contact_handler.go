package handler

import (
	"errors"
	"go-portfolio/internal/delivery/http/middleware"
	"go-portfolio/internal/delivery/http/response"
	"go-portfolio/internal/domain"
	"go-portfolio/pkg/apperror"
	"go-portfolio/pkg/metrics"
	"go-portfolio/pkg/validation"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
	metrics   *metrics.Metrics
}

// NewContactHandler registers the contact route behind the given limiter
func NewContactHandler(r gin.IRoutes, contactUC domain.ContactUsecase, limiter gin.HandlerFunc, m *metrics.Metrics) {
	handler := &ContactHandler{
		contactUC: contactUC,
		metrics:   m,
	}

	r.POST("/contact", limiter, handler.SubmitContact)
}

// SubmitContact accepts {name, email, message} and relays it to the owner.
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req domain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.RecordContact(metrics.OutcomeInvalid)
		_ = c.Error(apperror.BadRequest(validation.MsgInvalidRequest))
		return
	}

	if err := h.contactUC.SendContactMessage(c.Request.Context(), &req, middleware.GetClientIP(c)); err != nil {
		h.metrics.RecordContact(outcomeFor(err))
		_ = c.Error(err)
		return
	}

	h.metrics.RecordContact(metrics.OutcomeSent)
	response.Success(c, http.StatusOK, domain.ContactSuccessMessage, nil)
}

func outcomeFor(err error) string {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		return metrics.OutcomeFailed
	}
	switch appErr.Code {
	case http.StatusBadRequest:
		return metrics.OutcomeInvalid
	case http.StatusServiceUnavailable:
		return metrics.OutcomeUnavailable
	default:
		return metrics.OutcomeFailed
	}
}
