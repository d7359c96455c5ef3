// Package domtest is an in-memory page for exercising the behavior layer
// without a browser.
package domtest

import (
	"sort"
	"strings"
	"time"

	"go-portfolio/internal/web/dom"
)

// Element is a mutable in-memory node.
type Element struct {
	Tag      string
	id       string
	value    string
	text     string
	classes  []string
	attrs    map[string]string
	styles   map[string]string
	disabled bool
	parent   *Element
	children []*Element

	// ScrollCount counts ScrollIntoView calls.
	ScrollCount int
}

// NewElement creates a detached element with the given id and classes.
func NewElement(tag, id string, classes ...string) *Element {
	e := &Element{
		Tag:    tag,
		id:     id,
		attrs:  map[string]string{},
		styles: map[string]string{},
	}
	e.AddClass(classes...)
	return e
}

// Append attaches children and returns e for chaining.
func (e *Element) Append(children ...*Element) *Element {
	for _, c := range children {
		e.AppendChild(c)
	}
	return e
}

// Children returns the direct children in order.
func (e *Element) Children() []*Element {
	return append([]*Element(nil), e.children...)
}

// Classes returns the class list in order.
func (e *Element) Classes() []string {
	return append([]string(nil), e.classes...)
}

func (e *Element) ID() string        { return e.id }
func (e *Element) Value() string     { return e.value }
func (e *Element) SetValue(v string) { e.value = v }
func (e *Element) Text() string      { return e.text }
func (e *Element) SetText(s string)  { e.text = s }

func (e *Element) SetClassName(names string) {
	e.classes = nil
	e.AddClass(strings.Fields(names)...)
}

func (e *Element) AddClass(names ...string) {
	for _, n := range names {
		if !e.HasClass(n) {
			e.classes = append(e.classes, n)
		}
	}
}

func (e *Element) RemoveClass(names ...string) {
	kept := e.classes[:0]
	for _, c := range e.classes {
		remove := false
		for _, n := range names {
			if c == n {
				remove = true
				break
			}
		}
		if !remove {
			kept = append(kept, c)
		}
	}
	e.classes = kept
}

func (e *Element) HasClass(name string) bool {
	for _, c := range e.classes {
		if c == name {
			return true
		}
	}
	return false
}

func (e *Element) Attribute(name string) string    { return e.attrs[name] }
func (e *Element) SetAttribute(name, value string) { e.attrs[name] = value }
func (e *Element) Style(prop string) string        { return e.styles[prop] }
func (e *Element) SetStyle(prop, value string)     { e.styles[prop] = value }
func (e *Element) Disabled() bool                  { return e.disabled }
func (e *Element) SetDisabled(disabled bool)       { e.disabled = disabled }
func (e *Element) ScrollIntoView()                 { e.ScrollCount++ }

func (e *Element) AppendChild(child dom.Element) {
	c := child.(*Element)
	if c.parent != nil {
		c.parent.RemoveChild(c)
	}
	c.parent = e
	e.children = append(e.children, c)
}

// RemoveChild panics when child is not a direct child, like the browser.
func (e *Element) RemoveChild(child dom.Element) {
	c := child.(*Element)
	for i, existing := range e.children {
		if existing == c {
			e.children = append(e.children[:i], e.children[i+1:]...)
			c.parent = nil
			return
		}
	}
	panic("domtest: RemoveChild of a node that is not a child")
}

// Contains reports whether child is e or one of its descendants.
func (e *Element) Contains(child dom.Element) bool {
	c, ok := child.(*Element)
	if !ok || c == nil {
		return false
	}
	for n := c; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

func (e *Element) QuerySelector(selector string) dom.Element {
	if found := e.find(selector); found != nil {
		return found
	}
	return nil
}

// find walks descendants depth-first. Supports "#id", ".class" and "tag".
func (e *Element) find(selector string) *Element {
	for _, c := range e.children {
		if c.matches(selector) {
			return c
		}
		if found := c.find(selector); found != nil {
			return found
		}
	}
	return nil
}

func (e *Element) matches(selector string) bool {
	switch {
	case strings.HasPrefix(selector, "#"):
		return e.id != "" && e.id == selector[1:]
	case strings.HasPrefix(selector, "."):
		return e.HasClass(selector[1:])
	default:
		return strings.EqualFold(e.Tag, selector)
	}
}

// Document is an in-memory page rooted at an <html> element with a <body>.
type Document struct {
	html *Element
	Body *Element
}

func NewDocument() *Document {
	body := NewElement("body", "")
	html := NewElement("html", "").Append(body)
	return &Document{html: html, Body: body}
}

// Add appends elements to the body and returns the document.
func (d *Document) Add(elements ...*Element) *Document {
	d.Body.Append(elements...)
	return d
}

// Element returns the element with id, or nil.
func (d *Document) Element(id string) *Element {
	return d.html.find("#" + id)
}

// HTML returns the root element.
func (d *Document) HTML() *Element { return d.html }

func (d *Document) Root() dom.Element { return d.html }

func (d *Document) GetElementByID(id string) dom.Element {
	if id == "" {
		return nil
	}
	return d.QuerySelector("#" + id)
}

func (d *Document) QuerySelector(selector string) dom.Element {
	return d.html.QuerySelector(selector)
}

func (d *Document) CreateElement(tag string) dom.Element {
	return NewElement(tag, "")
}

// Storage is an in-memory dom.Storage.
type Storage struct {
	Items map[string]string
}

func NewStorage() *Storage {
	return &Storage{Items: map[string]string{}}
}

func (s *Storage) GetItem(key string) (string, bool) {
	v, ok := s.Items[key]
	return v, ok
}

func (s *Storage) SetItem(key, value string) {
	s.Items[key] = value
}

// Scheduler is a manual clock: callbacks run only when Advance passes
// their deadline, in deadline order.
type Scheduler struct {
	now   time.Duration
	seq   int
	tasks []task
}

type task struct {
	at  time.Duration
	seq int
	fn  func()
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) AfterFunc(d time.Duration, fn func()) {
	s.seq++
	s.tasks = append(s.tasks, task{at: s.now + d, seq: s.seq, fn: fn})
}

// Now is the simulated time elapsed since creation.
func (s *Scheduler) Now() time.Duration { return s.now }

// Pending is the number of callbacks not yet run.
func (s *Scheduler) Pending() int { return len(s.tasks) }

// Advance moves the clock forward by d, running every callback that falls
// due, including ones scheduled by callbacks during the advance.
func (s *Scheduler) Advance(d time.Duration) {
	target := s.now + d
	for {
		sort.SliceStable(s.tasks, func(i, j int) bool {
			if s.tasks[i].at != s.tasks[j].at {
				return s.tasks[i].at < s.tasks[j].at
			}
			return s.tasks[i].seq < s.tasks[j].seq
		})
		if len(s.tasks) == 0 || s.tasks[0].at > target {
			break
		}
		next := s.tasks[0]
		s.tasks = s.tasks[1:]
		s.now = next.at
		next.fn()
	}
	s.now = target
}
