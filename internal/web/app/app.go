// Package app wires the page behaviors together. Event handlers in cmd/web
// call the On* methods; everything here is testable against domtest.
package app

import (
	"context"
	"log/slog"
	"strings"

	"go-portfolio/internal/web/dom"
	"go-portfolio/internal/web/form"
	"go-portfolio/internal/web/scroll"
	"go-portfolio/internal/web/theme"
	"go-portfolio/internal/web/toast"
)

// ContactEmailAttr is read from the contact form to name the fallback address.
const ContactEmailAttr = "data-contact-email"

type Config struct {
	ContactEmail string
	Submitter    form.Submitter
	Logger       *slog.Logger
}

type App struct {
	Theme  *theme.Manager
	Scroll *scroll.Affordances
	Toasts *toast.Notifier
	Form   *form.Workflow

	doc dom.Document
	log *slog.Logger
}

func New(doc dom.Document, store dom.Storage, sched dom.Scheduler, cfg Config) *App {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	email := cfg.ContactEmail
	if email == "" {
		email = ContactEmailFrom(doc)
	}

	toasts := toast.NewNotifier(doc, sched)
	return &App{
		Theme:  theme.NewManager(doc, store),
		Scroll: scroll.New(doc),
		Toasts: toasts,
		Form:   form.NewWorkflow(doc, toasts, cfg.Submitter, form.Config{ContactEmail: email, Logger: log}),
		doc:    doc,
		log:    log,
	}
}

// ContactEmailFrom returns the address the contact form advertises, or ""
// when the server has none configured.
func ContactEmailFrom(doc dom.Document) string {
	if f := doc.GetElementByID(dom.IDContactForm); f != nil {
		return strings.TrimSpace(f.Attribute(ContactEmailAttr))
	}
	return ""
}

// Init applies the stored theme and reports page elements the behaviors
// expect but cannot find.
func (a *App) Init() {
	pref := a.Theme.Init()
	a.log.Debug("Theme applied", slog.String("theme", string(pref)))

	for _, id := range []string{dom.IDToastContainer, dom.IDContactForm, dom.IDSubmitButton, dom.IDFormMessage} {
		if a.doc.GetElementByID(id) == nil {
			a.log.Warn("Page element missing", slog.String("id", id))
		}
	}
}

func (a *App) OnThemeToggle() theme.Preference {
	return a.Theme.Toggle()
}

func (a *App) OnScroll(offsetY float64) {
	a.Scroll.UpdateVisibility(offsetY)
}

// OnAnchorClick reports whether the click's default navigation must be
// prevented.
func (a *App) OnAnchorClick(href string) bool {
	return a.Scroll.NavigateTo(href)
}

func (a *App) OnBlur(fieldID string) {
	a.Form.OnBlur(fieldID)
}

func (a *App) OnInput(fieldID string) {
	a.Form.OnInput(fieldID)
}

// OnSubmit runs one submission. A rejected re-entry is logged and otherwise
// ignored.
func (a *App) OnSubmit(ctx context.Context) form.Status {
	status, err := a.Form.Submit(ctx)
	if err != nil {
		a.log.Debug("Submit ignored", slog.String("reason", err.Error()))
	}
	return status
}
