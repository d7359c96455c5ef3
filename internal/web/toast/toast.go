// Package toast shows transient notifications in the page's toast container.
package toast

import (
	"errors"
	"time"

	"go-portfolio/internal/web/dom"
)

// Severity selects the toast colour.
type Severity string

const (
	Success Severity = "success"
	Error   Severity = "error"
)

const (
	EnterDelay   = 10 * time.Millisecond
	DisplayTime  = 4000 * time.Millisecond
	RemovalDelay = 300 * time.Millisecond
)

const baseClasses = " text-white px-6 py-4 rounded-lg shadow-xl max-w-sm transform transition-all duration-300 translate-x-full opacity-0"

var (
	hiddenClasses  = []string{"translate-x-full", "opacity-0"}
	visibleClasses = []string{"translate-x-0", "opacity-100"}
)

// ErrNoContainer is returned when the page has no toast container.
var ErrNoContainer = errors.New("toast container not found")

type Notifier struct {
	doc   dom.Document
	sched dom.Scheduler
}

func NewNotifier(doc dom.Document, sched dom.Scheduler) *Notifier {
	return &Notifier{doc: doc, sched: sched}
}

// Show appends a toast and schedules its enter, exit and removal. Toasts are
// independent of each other.
func (n *Notifier) Show(message string, sev Severity) error {
	container := n.doc.GetElementByID(dom.IDToastContainer)
	if container == nil {
		return ErrNoContainer
	}

	el := n.doc.CreateElement("div")
	el.SetClassName(colorClasses(sev) + baseClasses)
	el.SetAttribute("role", "alert")
	el.SetAttribute("aria-live", "assertive")
	el.SetText(message)
	container.AppendChild(el)

	n.sched.AfterFunc(EnterDelay, func() {
		el.RemoveClass(hiddenClasses...)
		el.AddClass(visibleClasses...)
	})

	n.sched.AfterFunc(DisplayTime, func() {
		el.RemoveClass(visibleClasses...)
		el.AddClass(hiddenClasses...)

		n.sched.AfterFunc(RemovalDelay, func() {
			if container.Contains(el) {
				container.RemoveChild(el)
			}
		})
	})

	return nil
}

func colorClasses(sev Severity) string {
	if sev == Error {
		return "bg-red-500 dark:bg-red-600"
	}
	return "bg-green-500 dark:bg-green-600"
}
