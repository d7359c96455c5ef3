package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"go-portfolio/pkg/contactform"

	"github.com/go-playground/validator/v10"
)

// Stricter than the page rule: the backend only relays plain ASCII addresses.
var contactEmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const (
	MsgMissingFields  = "Please fill in all fields."
	MsgNameLength     = "Name must be between 2 and 100 characters."
	MsgNameInvalid    = "Name contains invalid characters."
	MsgInvalidEmail   = contactform.MsgInvalidEmail
	MsgMessageLength  = "Message must be between 10 and 5000 characters."
	MsgInvalidRequest = "Invalid request data."
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("contact_email", ContactEmail)
	_ = v.RegisterValidation("contact_name", ContactName)
}

// ContactName rejects control characters. The name ends up in a mail
// header, where CR or LF would start a new header line.
func ContactName(fl validator.FieldLevel) bool {
	return !strings.ContainsFunc(fl.Field().String(), unicode.IsControl)
}

// ContactEmail validates the address format accepted by the mail relay.
func ContactEmail(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return contactEmailRegex.MatchString(val)
}

// ContactErrorMessage converts a validator error on a contact request into the
// single message shown to the visitor. Missing fields win over format errors.
func ContactErrorMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return MsgInvalidRequest
	}

	for _, e := range validationErrors {
		if e.Tag() == "required" {
			return MsgMissingFields
		}
	}

	// Errors are reported in struct field order: name, email, message.
	first := validationErrors[0]
	switch first.Field() {
	case "Name":
		if first.Tag() == "contact_name" {
			return MsgNameInvalid
		}
		return MsgNameLength
	case "Email":
		return MsgInvalidEmail
	case "Message":
		return MsgMessageLength
	default:
		return MsgInvalidRequest
	}
}
