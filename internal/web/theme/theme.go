// Package theme persists the light/dark preference and renders it onto the
// document root and the sun/moon toggle icons.
package theme

import "go-portfolio/internal/web/dom"

// Preference is the visitor's colour scheme.
type Preference string

const (
	Light Preference = "light"
	Dark  Preference = "dark"
)

const (
	// StorageKey holds the persisted preference.
	StorageKey = "theme"
	// DarkClass marks the document root in dark mode.
	DarkClass = "dark"
)

// Manager owns the applied preference. The root marker and the icons are
// rendered from it, never read back.
type Manager struct {
	doc     dom.Document
	store   dom.Storage
	current Preference
}

func NewManager(doc dom.Document, store dom.Storage) *Manager {
	return &Manager{doc: doc, store: store, current: Light}
}

// GetPreference returns the persisted preference, Light when none is stored.
func (m *Manager) GetPreference() Preference {
	if v, ok := m.store.GetItem(StorageKey); ok && Preference(v) == Dark {
		return Dark
	}
	return Light
}

// Init applies the persisted preference; called once at page load.
func (m *Manager) Init() Preference {
	pref := m.GetPreference()
	m.ApplyPreference(pref)
	return pref
}

// Current is the applied preference.
func (m *Manager) Current() Preference {
	return m.current
}

// ApplyPreference sets or clears the root marker and shows exactly one icon.
func (m *Manager) ApplyPreference(pref Preference) {
	if pref != Dark {
		pref = Light
	}
	m.current = pref

	if root := m.doc.Root(); root != nil {
		if pref == Dark {
			root.AddClass(DarkClass)
		} else {
			root.RemoveClass(DarkClass)
		}
	}

	setIconVisible(m.doc.QuerySelector(dom.SelectorSunIcon), pref == Light)
	setIconVisible(m.doc.QuerySelector(dom.SelectorMoonIcon), pref == Dark)
}

// Toggle flips the applied preference, persists it and re-renders.
func (m *Manager) Toggle() Preference {
	next := Dark
	if m.current == Dark {
		next = Light
	}
	m.store.SetItem(StorageKey, string(next))
	m.ApplyPreference(next)
	return next
}

func setIconVisible(icon dom.Element, visible bool) {
	if icon == nil {
		return
	}
	if visible {
		icon.SetStyle("opacity", "1")
		icon.SetStyle("pointerEvents", "auto")
		return
	}
	icon.SetStyle("opacity", "0")
	icon.SetStyle("pointerEvents", "none")
}
