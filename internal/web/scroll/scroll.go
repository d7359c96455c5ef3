// Package scroll shows the back-to-top control past a scroll threshold and
// turns in-page anchor clicks into smooth scrolls.
package scroll

import (
	"strings"

	"go-portfolio/internal/web/dom"
)

// Threshold is the vertical offset in pixels past which the control shows.
const Threshold = 300

var (
	shownClasses  = []string{"opacity-100", "visible"}
	hiddenClasses = []string{"opacity-0", "invisible"}
)

type Affordances struct {
	doc dom.Document
}

func New(doc dom.Document) *Affordances {
	return &Affordances{doc: doc}
}

// UpdateVisibility shows the scroll-to-top control when offsetY is past
// Threshold and hides it otherwise.
func (a *Affordances) UpdateVisibility(offsetY float64) {
	ctrl := a.doc.GetElementByID(dom.IDScrollTop)
	if ctrl == nil {
		return
	}
	if offsetY > Threshold {
		ctrl.RemoveClass(hiddenClasses...)
		ctrl.AddClass(shownClasses...)
		return
	}
	ctrl.RemoveClass(shownClasses...)
	ctrl.AddClass(hiddenClasses...)
}

// IsFragmentLink reports whether href points inside the page.
func IsFragmentLink(href string) bool {
	return strings.HasPrefix(href, "#")
}

// NavigateTo scrolls the element named by a fragment href into view. It
// reports whether the caller must prevent the default navigation, which is
// true for every fragment href even when no element matches.
func (a *Affordances) NavigateTo(href string) bool {
	if !IsFragmentLink(href) {
		return false
	}
	id := strings.TrimPrefix(href, "#")
	if id == "" {
		return true
	}
	if target := a.doc.GetElementByID(id); target != nil {
		target.ScrollIntoView()
	}
	return true
}
