// Package dom exposes a built document to the scripting engine.
package dom

import (
	"fmt"

	"github.com/wudi/formkit/document"
	"github.com/wudi/formkit/observability"
	"github.com/wudi/formkit/scripting"
)

type Adapter struct {
	doc   *document.Document
	log   observability.Logger
	alert func(string)
}

type Option func(*Adapter)

// WithAlertSink routes app.alert messages to fn instead of the logger.
func WithAlertSink(fn func(string)) Option {
	return func(a *Adapter) { a.alert = fn }
}

func WithLogger(log observability.Logger) Option {
	return func(a *Adapter) {
		if log != nil {
			a.log = log
		}
	}
}

func New(doc *document.Document, opts ...Option) *Adapter {
	a := &Adapter{doc: doc, log: observability.NopLogger{}}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Adapter) GetField(name string) (scripting.FormFieldProxy, error) {
	node, ok := a.doc.Field(name)
	if !ok {
		return nil, fmt.Errorf("field not found: %s", name)
	}
	return NewFieldProxy(name, node), nil
}

func (a *Adapter) GetPage(index int) (scripting.PageProxy, error) {
	pages := a.doc.Pages()
	if index < 0 || index >= len(pages) {
		return nil, fmt.Errorf("page index out of range")
	}
	return NewPageProxy(index, pages[index]), nil
}

func (a *Adapter) Alert(message string) {
	if a.alert != nil {
		a.alert(message)
		return
	}
	a.log.Warn("script alert", observability.String("message", message))
}
