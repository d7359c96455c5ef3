package scroll

import (
	"testing"

	"go-portfolio/internal/web/dom/domtest"

	"github.com/stretchr/testify/assert"
)

func TestUpdateVisibility(t *testing.T) {
	ctrl := domtest.NewElement("button", "scrollTop", "opacity-0", "invisible")
	a := New(domtest.NewDocument().Add(ctrl))

	tests := []struct {
		offset  float64
		visible bool
	}{
		{0, false},
		{300, false},
		{301, true},
		{1200, true},
		{1200, true},
		{299.5, false},
	}

	for _, tt := range tests {
		a.UpdateVisibility(tt.offset)
		assert.Equal(t, tt.visible, ctrl.HasClass("opacity-100"), "offset=%v", tt.offset)
		assert.Equal(t, tt.visible, ctrl.HasClass("visible"), "offset=%v", tt.offset)
		assert.Equal(t, !tt.visible, ctrl.HasClass("opacity-0"), "offset=%v", tt.offset)
		assert.Equal(t, !tt.visible, ctrl.HasClass("invisible"), "offset=%v", tt.offset)
	}
}

func TestUpdateVisibility_Idempotent(t *testing.T) {
	ctrl := domtest.NewElement("button", "scrollTop", "fixed", "opacity-0", "invisible")
	a := New(domtest.NewDocument().Add(ctrl))

	a.UpdateVisibility(500)
	a.UpdateVisibility(500)

	assert.Equal(t, []string{"fixed", "opacity-100", "visible"}, ctrl.Classes())
}

func TestUpdateVisibility_MissingControl(t *testing.T) {
	a := New(domtest.NewDocument())
	assert.NotPanics(t, func() { a.UpdateVisibility(1000) })
}

func TestNavigateTo(t *testing.T) {
	about := domtest.NewElement("section", "about")
	a := New(domtest.NewDocument().Add(about))

	t.Run("existing target", func(t *testing.T) {
		assert.True(t, a.NavigateTo("#about"))
		assert.Equal(t, 1, about.ScrollCount)
	})

	t.Run("unknown target is swallowed", func(t *testing.T) {
		assert.True(t, a.NavigateTo("#missing"))
		assert.Equal(t, 1, about.ScrollCount)
	})

	t.Run("bare hash", func(t *testing.T) {
		assert.True(t, a.NavigateTo("#"))
	})

	t.Run("external link is left alone", func(t *testing.T) {
		assert.False(t, a.NavigateTo("/download-resume"))
		assert.False(t, a.NavigateTo("https://example.com/#about"))
		assert.Equal(t, 1, about.ScrollCount)
	})
}
