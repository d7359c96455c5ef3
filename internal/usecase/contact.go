package usecase

import (
	"context"
	"errors"
	"go-portfolio/internal/domain"
	"go-portfolio/pkg/apperror"
	"go-portfolio/pkg/logger"
	"go-portfolio/pkg/validation"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var errMailerNotConfigured = errors.New("email service is not configured")

// Maximum stored lengths after escaping
const (
	maxNameLength    = 100
	maxEmailLength   = 255
	maxMessageLength = 5000
)

type contactUsecase struct {
	mailer       domain.ContactMailer
	archive      domain.ContactRepository
	validate     *validator.Validate
	contactEmail string
	now          func() time.Time
}

// NewContactUsecase creates a new contact usecase. archive may be nil when no
// database is configured; contactEmail is offered to visitors when delivery fails.
func NewContactUsecase(mailer domain.ContactMailer, archive domain.ContactRepository, validate *validator.Validate, contactEmail string) domain.ContactUsecase {
	return &contactUsecase{
		mailer:       mailer,
		archive:      archive,
		validate:     validate,
		contactEmail: contactEmail,
		now:          time.Now,
	}
}

// SendContactMessage validates the contact request and sends the email
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest, clientIP string) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)

	if err := uc.validate.Struct(req); err != nil {
		return apperror.BadRequest(validation.ContactErrorMessage(err))
	}

	if !uc.mailer.IsConfigured() {
		return apperror.ServiceUnavailable(domain.ContactFallbackMessage(uc.contactEmail), errMailerNotConfigured)
	}

	msg := &domain.ContactMessage{
		Name:       sanitize(req.Name, maxNameLength),
		Email:      sanitize(req.Email, maxEmailLength),
		Message:    sanitize(req.Message, maxMessageLength),
		ClientIP:   clientIP,
		ReceivedAt: uc.now(),
	}

	if uc.archive != nil {
		if err := uc.archive.Save(ctx, msg); err != nil {
			logger.Log.Warn("Failed to archive contact message", "error", err, "ip", clientIP)
		}
	}

	if err := uc.mailer.SendContactMessage(ctx, msg); err != nil {
		logger.Log.Error("Error sending email", "error", err, "ip", clientIP)
		return apperror.New(http.StatusInternalServerError, domain.ContactFallbackMessage(uc.contactEmail), err)
	}

	logger.Log.Info("Contact form submitted successfully", "email", msg.Email, "ip", clientIP)
	return nil
}

// sanitize escapes HTML and truncates to max runes.
func sanitize(text string, max int) string {
	if text == "" {
		return ""
	}
	escaped := []rune(html.EscapeString(text))
	if len(escaped) > max {
		escaped = escaped[:max]
	}
	return string(escaped)
}
