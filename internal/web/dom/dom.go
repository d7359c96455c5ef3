// Package dom is the narrow view of the browser page that the behavior layer
// binds to. The browser binding lives in jsdom; domtest provides an
// in-memory page for tests.
package dom

import "time"

// Element identifiers and selectors the page markup provides.
const (
	IDThemeToggle    = "themeToggle"
	IDScrollTop      = "scrollTop"
	IDToastContainer = "toast-container"
	IDContactForm    = "contactForm"
	IDSubmitButton   = "submit-btn"
	IDFormMessage    = "form-message"

	SelectorSunIcon    = ".sun-icon"
	SelectorMoonIcon   = ".moon-icon"
	SelectorButtonText = ".btn-text"
	SelectorSpinner    = ".btn-spinner"
)

// ErrorElementID returns the id of the element showing fieldID's error.
func ErrorElementID(fieldID string) string {
	return fieldID + "-error"
}

// Element is a single node. Lookups return a nil Element when nothing matches.
type Element interface {
	ID() string

	Value() string
	SetValue(v string)
	Text() string
	SetText(s string)

	SetClassName(names string)
	AddClass(names ...string)
	RemoveClass(names ...string)
	HasClass(name string) bool

	Attribute(name string) string
	SetAttribute(name, value string)
	Style(prop string) string
	SetStyle(prop, value string)

	Disabled() bool
	SetDisabled(disabled bool)

	AppendChild(child Element)
	RemoveChild(child Element)
	Contains(child Element) bool
	QuerySelector(selector string) Element

	// ScrollIntoView smoothly aligns the element's top with the viewport.
	ScrollIntoView()
}

// Document is the page.
type Document interface {
	// Root is the document element that carries the theme marker.
	Root() Element
	GetElementByID(id string) Element
	QuerySelector(selector string) Element
	CreateElement(tag string) Element
}

// Storage is the browser profile's persistent key-value store.
type Storage interface {
	GetItem(key string) (string, bool)
	SetItem(key, value string)
}

// Scheduler runs fn once after d on the page's event loop.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}
