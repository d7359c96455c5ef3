//go:build js && wasm

// Package jsdom binds the dom port to the browser through syscall/js.
package jsdom

import (
	"syscall/js"
	"time"

	"go-portfolio/internal/web/dom"
)

// Element wraps a DOM node.
type Element struct {
	v js.Value
}

// Wrap returns nil for null/undefined so callers can nil-check lookups.
func Wrap(v js.Value) dom.Element {
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	return &Element{v: v}
}

// JSValue exposes the underlying node for event binding.
func (e *Element) JSValue() js.Value { return e.v }

func (e *Element) ID() string        { return e.v.Get("id").String() }
func (e *Element) Value() string     { return e.v.Get("value").String() }
func (e *Element) SetValue(v string) { e.v.Set("value", v) }
func (e *Element) Text() string      { return e.v.Get("textContent").String() }
func (e *Element) SetText(s string)  { e.v.Set("textContent", s) }

func (e *Element) SetClassName(names string) { e.v.Set("className", names) }

func (e *Element) AddClass(names ...string) {
	e.v.Get("classList").Call("add", toArgs(names)...)
}

func (e *Element) RemoveClass(names ...string) {
	e.v.Get("classList").Call("remove", toArgs(names)...)
}

func (e *Element) HasClass(name string) bool {
	return e.v.Get("classList").Call("contains", name).Bool()
}

func (e *Element) Attribute(name string) string {
	v := e.v.Call("getAttribute", name)
	if v.IsNull() {
		return ""
	}
	return v.String()
}

func (e *Element) SetAttribute(name, value string) { e.v.Call("setAttribute", name, value) }
func (e *Element) Style(prop string) string        { return e.v.Get("style").Get(prop).String() }
func (e *Element) SetStyle(prop, value string)     { e.v.Get("style").Set(prop, value) }
func (e *Element) Disabled() bool                  { return e.v.Get("disabled").Bool() }
func (e *Element) SetDisabled(disabled bool)       { e.v.Set("disabled", disabled) }

func (e *Element) AppendChild(child dom.Element) {
	e.v.Call("appendChild", child.(*Element).v)
}

func (e *Element) RemoveChild(child dom.Element) {
	e.v.Call("removeChild", child.(*Element).v)
}

func (e *Element) Contains(child dom.Element) bool {
	c, ok := child.(*Element)
	if !ok || c == nil {
		return false
	}
	return e.v.Call("contains", c.v).Bool()
}

func (e *Element) QuerySelector(selector string) dom.Element {
	return Wrap(e.v.Call("querySelector", selector))
}

func (e *Element) ScrollIntoView() {
	opts := js.Global().Get("Object").New()
	opts.Set("behavior", "smooth")
	opts.Set("block", "start")
	e.v.Call("scrollIntoView", opts)
}

// Document wraps window.document.
type Document struct {
	v js.Value
}

func NewDocument() *Document {
	return &Document{v: js.Global().Get("document")}
}

func (d *Document) Root() dom.Element {
	return Wrap(d.v.Get("documentElement"))
}

func (d *Document) GetElementByID(id string) dom.Element {
	return Wrap(d.v.Call("getElementById", id))
}

// QuerySelector returns nil for selectors the browser rejects, such as "#".
func (d *Document) QuerySelector(selector string) (el dom.Element) {
	defer func() {
		if recover() != nil {
			el = nil
		}
	}()
	return Wrap(d.v.Call("querySelector", selector))
}

func (d *Document) CreateElement(tag string) dom.Element {
	return Wrap(d.v.Call("createElement", tag))
}

// QuerySelectorAll returns every match of selector.
func (d *Document) QuerySelectorAll(selector string) []*Element {
	list := d.v.Call("querySelectorAll", selector)
	out := make([]*Element, 0, list.Length())
	for i := 0; i < list.Length(); i++ {
		out = append(out, &Element{v: list.Index(i)})
	}
	return out
}

// Storage wraps window.localStorage.
type Storage struct {
	v js.Value
}

func NewStorage() *Storage {
	return &Storage{v: js.Global().Get("localStorage")}
}

func (s *Storage) GetItem(key string) (string, bool) {
	v := s.v.Call("getItem", key)
	if v.IsNull() {
		return "", false
	}
	return v.String(), true
}

func (s *Storage) SetItem(key, value string) {
	s.v.Call("setItem", key, value)
}

// Scheduler runs callbacks through window.setTimeout so they execute on the
// page's event loop.
type Scheduler struct{}

func (Scheduler) AfterFunc(d time.Duration, fn func()) {
	var cb js.Func
	cb = js.FuncOf(func(js.Value, []js.Value) any {
		cb.Release()
		fn()
		return nil
	})
	js.Global().Call("setTimeout", cb, d.Milliseconds())
}

// Listen registers fn for event on target and returns a function that
// removes the listener.
func Listen(target js.Value, event string, fn func(ev js.Value)) func() {
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		var ev js.Value
		if len(args) > 0 {
			ev = args[0]
		}
		fn(ev)
		return nil
	})
	target.Call("addEventListener", event, cb)
	return func() {
		target.Call("removeEventListener", event, cb)
		cb.Release()
	}
}

func toArgs(names []string) []any {
	args := make([]any, len(names))
	for i, n := range names {
		args[i] = n
	}
	return args
}
