// Package form drives the contact form: per-field validation feedback, the
// submission state machine and the result banner.
package form

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"go-portfolio/internal/domain"
	"go-portfolio/internal/web/dom"
	"go-portfolio/internal/web/toast"
	"go-portfolio/pkg/contactform"
)

const (
	MsgFixErrors    = "Please fix the errors in the form."
	LabelIdle       = "Send Message"
	LabelSubmitting = "Sending..."

	bannerReset = "form-message hidden p-4 rounded-lg text-sm"
	bannerError = "form-message p-4 rounded-lg text-sm bg-red-100 dark:bg-red-900/30 text-red-700 dark:text-red-400 border border-red-300 dark:border-red-700"
)

var (
	errorBorder   = []string{"border-red-500", "dark:border-red-400"}
	neutralBorder = []string{"border-gray-300", "dark:border-gray-600"}
	focusBorder   = []string{"border-blue-600", "dark:border-blue-400"}
)

// ErrSubmitInFlight is returned by Submit while a previous submission is
// still waiting for the server.
var ErrSubmitInFlight = errors.New("submission already in progress")

// Status is the submission state.
type Status int

const (
	StatusIdle Status = iota
	StatusValidating
	StatusSubmitting
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusValidating:
		return "validating"
	case StatusSubmitting:
		return "submitting"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// OutcomeKind classifies the result of a submission attempt.
type OutcomeKind int

const (
	// OutcomeSuccess means the server accepted the message.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeServerFailure means the server answered with success=false.
	OutcomeServerFailure
	// OutcomeTransportFailure covers network errors, non-2xx statuses and
	// unreadable responses.
	OutcomeTransportFailure
)

// Outcome is the result of one submission.
type Outcome struct {
	Kind    OutcomeKind
	Message string
	Err     error
}

// Submitter posts an accepted form to the backend.
type Submitter interface {
	Submit(ctx context.Context, req domain.ContactRequest) Outcome
}

// Notifier shows toasts.
type Notifier interface {
	Show(message string, sev toast.Severity) error
}

// FieldState tracks what the page currently shows for one field.
type FieldState struct {
	Error string
}

// Invalid reports whether the field is showing an error.
func (s FieldState) Invalid() bool { return s.Error != "" }

type Config struct {
	// ContactEmail is named in the message shown on transport failures.
	ContactEmail string
	Logger       *slog.Logger
}

type Workflow struct {
	doc       dom.Document
	toasts    Notifier
	submitter Submitter
	fallback  string
	log       *slog.Logger

	mu     sync.Mutex
	status Status
	fields map[string]FieldState
}

func NewWorkflow(doc dom.Document, toasts Notifier, submitter Submitter, cfg Config) *Workflow {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Workflow{
		doc:       doc,
		toasts:    toasts,
		submitter: submitter,
		fallback:  domain.ContactFallbackMessage(cfg.ContactEmail),
		log:       log,
		fields:    make(map[string]FieldState, len(contactform.Fields)),
	}
}

// Status returns the current submission state.
func (w *Workflow) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// FieldState returns the tracked state of fieldID.
func (w *Workflow) FieldState(fieldID string) FieldState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fields[fieldID]
}

// DisplayFieldError shows msg under fieldID, or clears the field's error
// when msg is empty. Missing elements are skipped.
func (w *Workflow) DisplayFieldError(fieldID, msg string) {
	w.mu.Lock()
	w.fields[fieldID] = FieldState{Error: msg}
	w.mu.Unlock()

	field := w.doc.GetElementByID(fieldID)
	errEl := w.doc.GetElementByID(dom.ErrorElementID(fieldID))

	if msg != "" {
		if field != nil {
			field.SetAttribute("aria-invalid", "true")
			field.AddClass(errorBorder...)
			field.RemoveClass(neutralBorder...)
			field.RemoveClass(focusBorder...)
		}
		if errEl != nil {
			errEl.SetText(msg)
			errEl.RemoveClass("hidden")
		}
		return
	}

	if field != nil {
		field.SetAttribute("aria-invalid", "false")
		field.RemoveClass(errorBorder...)
		field.AddClass(neutralBorder...)
	}
	if errEl != nil {
		errEl.SetText("")
		errEl.AddClass("hidden")
	}
}

// ClearAllErrors clears every field's error.
func (w *Workflow) ClearAllErrors() {
	for _, f := range contactform.Fields {
		w.DisplayFieldError(f, "")
	}
}

// OnBlur validates only fieldID and shows or clears its error.
func (w *Workflow) OnBlur(fieldID string) {
	field := w.doc.GetElementByID(fieldID)
	if field == nil {
		return
	}

	var errs contactform.FieldErrors
	switch fieldID {
	case contactform.FieldName:
		errs = contactform.ValidateContactForm(field.Value(), "", "")
	case contactform.FieldEmail:
		errs = contactform.ValidateContactForm("", field.Value(), "")
	case contactform.FieldMessage:
		errs = contactform.ValidateContactForm("", "", field.Value())
	default:
		return
	}
	w.DisplayFieldError(fieldID, errs[fieldID])
}

// OnInput clears fieldID's error once the visitor edits a field that is
// showing one.
func (w *Workflow) OnInput(fieldID string) {
	if w.FieldState(fieldID).Invalid() {
		w.DisplayFieldError(fieldID, "")
	}
}

// Submit runs one submission to completion and returns the terminal status.
// It blocks on the network; callers on the page's event loop run it in a
// goroutine after preventing the default submission.
func (w *Workflow) Submit(ctx context.Context) (Status, error) {
	w.mu.Lock()
	if w.status == StatusSubmitting || w.status == StatusValidating {
		w.mu.Unlock()
		return w.status, ErrSubmitInFlight
	}
	w.status = StatusValidating
	w.mu.Unlock()

	req := domain.ContactRequest{
		Name:    w.fieldValue(contactform.FieldName),
		Email:   w.fieldValue(contactform.FieldEmail),
		Message: w.fieldValue(contactform.FieldMessage),
	}

	w.ClearAllErrors()
	w.resetBanner()

	if errs := contactform.ValidateContactForm(req.Name, req.Email, req.Message); len(errs) > 0 {
		for _, f := range contactform.Fields {
			if msg, ok := errs[f]; ok {
				w.DisplayFieldError(f, msg)
			}
		}
		w.notify(MsgFixErrors, toast.Error)
		w.setStatus(StatusIdle)
		return StatusIdle, nil
	}

	w.setStatus(StatusSubmitting)
	w.setBusy(true)
	defer w.setBusy(false)

	out := w.submitter.Submit(ctx, req)

	switch out.Kind {
	case OutcomeSuccess:
		w.notify(out.Message, toast.Success)
		w.resetFields()
		w.ClearAllErrors()
		w.setStatus(StatusSucceeded)
		return StatusSucceeded, nil
	case OutcomeServerFailure:
		w.notify(out.Message, toast.Error)
		w.showBanner(out.Message)
	default:
		w.log.Error("Contact form submission failed",
			slog.String("error", errString(out.Err)),
		)
		w.notify(w.fallback, toast.Error)
		w.showBanner(w.fallback)
	}

	w.setStatus(StatusFailed)
	return StatusFailed, nil
}

func (w *Workflow) setStatus(s Status) {
	w.mu.Lock()
	w.status = s
	w.mu.Unlock()
}

func (w *Workflow) fieldValue(fieldID string) string {
	if el := w.doc.GetElementByID(fieldID); el != nil {
		return strings.TrimSpace(el.Value())
	}
	return ""
}

func (w *Workflow) resetFields() {
	for _, f := range contactform.Fields {
		if el := w.doc.GetElementByID(f); el != nil {
			el.SetValue("")
		}
	}
}

func (w *Workflow) resetBanner() {
	if b := w.doc.GetElementByID(dom.IDFormMessage); b != nil {
		b.SetText("")
		b.SetClassName(bannerReset)
	}
}

func (w *Workflow) showBanner(msg string) {
	if b := w.doc.GetElementByID(dom.IDFormMessage); b != nil {
		b.SetText(msg)
		b.SetClassName(bannerError)
	}
}

func (w *Workflow) setBusy(busy bool) {
	btn := w.doc.GetElementByID(dom.IDSubmitButton)
	if btn == nil {
		return
	}
	btn.SetDisabled(busy)

	if label := btn.QuerySelector(dom.SelectorButtonText); label != nil {
		if busy {
			label.SetText(LabelSubmitting)
		} else {
			label.SetText(LabelIdle)
		}
	}

	if spinner := btn.QuerySelector(dom.SelectorSpinner); spinner != nil {
		if busy {
			spinner.RemoveClass("hidden")
			spinner.SetStyle("display", "inline-block")
		} else {
			spinner.AddClass("hidden")
			spinner.SetStyle("display", "none")
		}
	}
}

func (w *Workflow) notify(msg string, sev toast.Severity) {
	if err := w.toasts.Show(msg, sev); err != nil {
		w.log.Warn("Toast not shown", slog.String("error", err.Error()))
	}
}

func errString(err error) string {
	if err == nil {
		return "unknown"
	}
	return err.Error()
}
