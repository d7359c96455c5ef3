//go:build js && wasm

// Command web is the portfolio page's client, compiled to WebAssembly and
// loaded by the page served from cmd/api.
package main

import (
	"context"
	"os"
	"syscall/js"

	"go-portfolio/internal/web/app"
	"go-portfolio/internal/web/contactclient"
	"go-portfolio/internal/web/dom"
	"go-portfolio/internal/web/dom/jsdom"
	"go-portfolio/pkg/contactform"
	"go-portfolio/pkg/logger"
)

func main() {
	log := logger.New("info", os.Stdout)

	doc := jsdom.NewDocument()
	a := app.New(doc, jsdom.NewStorage(), jsdom.Scheduler{}, app.Config{
		ContactEmail: app.ContactEmailFrom(doc),
		Submitter:    contactclient.New(contactclient.DefaultEndpoint),
		Logger:       log,
	})
	a.Init()

	window := js.Global()

	if toggle, ok := doc.GetElementByID(dom.IDThemeToggle).(*jsdom.Element); ok {
		jsdom.Listen(toggle.JSValue(), "click", func(js.Value) {
			a.OnThemeToggle()
		})
	}

	if top, ok := doc.GetElementByID(dom.IDScrollTop).(*jsdom.Element); ok {
		jsdom.Listen(top.JSValue(), "click", func(js.Value) {
			opts := js.Global().Get("Object").New()
			opts.Set("top", 0)
			opts.Set("behavior", "smooth")
			window.Call("scrollTo", opts)
		})
	}

	jsdom.Listen(window, "scroll", func(js.Value) {
		a.OnScroll(window.Get("pageYOffset").Float())
	})

	for _, anchor := range doc.QuerySelectorAll(`a[href^="#"]`) {
		jsdom.Listen(anchor.JSValue(), "click", func(ev js.Value) {
			if a.OnAnchorClick(anchor.Attribute("href")) {
				ev.Call("preventDefault")
			}
		})
	}

	for _, id := range contactform.Fields {
		field, ok := doc.GetElementByID(id).(*jsdom.Element)
		if !ok {
			continue
		}
		jsdom.Listen(field.JSValue(), "blur", func(js.Value) { a.OnBlur(id) })
		jsdom.Listen(field.JSValue(), "input", func(js.Value) { a.OnInput(id) })
	}

	if form, ok := doc.GetElementByID(dom.IDContactForm).(*jsdom.Element); ok {
		jsdom.Listen(form.JSValue(), "submit", func(ev js.Value) {
			ev.Call("preventDefault")
			// The fetch blocks; event callbacks must return first.
			go a.OnSubmit(context.Background())
		})
	}

	select {}
}
