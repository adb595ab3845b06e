// Package scripting runs document JavaScript against a small Acrobat-style
// object model (app.alert, getField, getPage).
package scripting

import (
	"context"
	"errors"
)

// ErrSyntax is wrapped by CheckSyntax when a script does not compile.
var ErrSyntax = errors.New("javascript syntax error")

// Engine executes scripts in the context of one document.
type Engine interface {
	// Execute runs script and returns its exported completion value.
	Execute(ctx context.Context, script string) (any, error)

	// RegisterDOM binds app, getField and getPage to dom.
	RegisterDOM(dom PDFDOM) error
}

// PDFDOM is the document surface visible to scripts.
type PDFDOM interface {
	GetField(name string) (FormFieldProxy, error)
	GetPage(index int) (PageProxy, error)
	Alert(message string)
}

// FormFieldProxy is a form field as seen from script.
type FormFieldProxy interface {
	Name() string
	GetValue() any
	SetValue(value any)
}

// PageProxy is a page as seen from script.
type PageProxy interface {
	GetIndex() int
	Width() float64
	Height() float64
}
