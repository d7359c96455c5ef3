package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContactFallbackMessage(t *testing.T) {
	msg := ContactFallbackMessage("owner@example.com")
	assert.Contains(t, msg, "contact me directly at owner@example.com")

	msg = ContactFallbackMessage("")
	assert.Equal(t, "Sorry, there was an error sending your message. Please try again later.", msg)
	assert.NotContains(t, msg, "directly at")
}
