// Package contactform holds the contact form rules the page applies before
// anything is sent. It has no dependencies so the WebAssembly client can use it.
package contactform

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Contact form field identifiers. They double as the keys of FieldErrors
// and as the DOM ids of the form inputs.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldMessage = "message"
)

// Fields lists the contact form fields in display order.
var Fields = []string{FieldName, FieldEmail, FieldMessage}

const (
	MsgNameTooShort    = "Name must be at least 2 characters long."
	MsgInvalidEmail    = "Please enter a valid email address."
	MsgMessageTooShort = "Message must be at least 10 characters long."
)

const (
	minNameLength    = 2
	minMessageLength = 10
)

// local@domain.tld: no whitespace or extra @ in any part
var formEmailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldErrors maps a field id to its error message. Valid fields are absent.
type FieldErrors map[string]string

// ValidateContactForm applies the form-level rules used by the page before
// anything is sent. An empty value is treated as absent.
func ValidateContactForm(name, email, message string) FieldErrors {
	errs := FieldErrors{}

	if trimmedLength(name) < minNameLength {
		errs[FieldName] = MsgNameTooShort
	}
	if email == "" || !IsFormEmail(email) {
		errs[FieldEmail] = MsgInvalidEmail
	}
	if trimmedLength(message) < minMessageLength {
		errs[FieldMessage] = MsgMessageTooShort
	}

	return errs
}

// IsFormEmail reports whether email has the nonspace@nonspace.nonspace shape.
func IsFormEmail(email string) bool {
	return formEmailRegex.MatchString(email)
}

func trimmedLength(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}
