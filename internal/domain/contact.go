package domain

import (
	"context"
	"time"
)

// ContactRequest is the payload the contact form posts to /contact.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100,contact_name"`
	Email   string `json:"email" validate:"required,contact_email"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

// ContactResult is the envelope /contact answers with.
type ContactResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ContactMessage is an accepted, sanitized submission ready for delivery.
type ContactMessage struct {
	ID         string
	Name       string
	Email      string
	Message    string
	ClientIP   string
	ReceivedAt time.Time
}

const (
	ContactSuccessMessage = "Thank you for your message! I will get back to you soon."
	RateLimitedMessage    = "Too many requests. Please try again later."
)

// ContactFallbackMessage is shown when a message could not be delivered,
// pointing the visitor at a direct address when one is configured.
func ContactFallbackMessage(contactEmail string) string {
	if contactEmail == "" {
		return "Sorry, there was an error sending your message. Please try again later."
	}
	return "Sorry, there was an error sending your message. Please try again later or contact me directly at " + contactEmail
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SendContactMessage validates and sends a contact form message
	SendContactMessage(ctx context.Context, req *ContactRequest, clientIP string) error
}

// ContactMailer delivers accepted messages to the site owner.
type ContactMailer interface {
	SendContactMessage(ctx context.Context, msg *ContactMessage) error
	IsConfigured() bool
}

// ContactRepository archives accepted messages.
type ContactRepository interface {
	Save(ctx context.Context, msg *ContactMessage) error
}
