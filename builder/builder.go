// Package builder assembles interactive form documents: pages with a default
// text font, widget fields and buttons, appearance streams, placed JPEG images
// and JavaScript actions bound to event triggers.
//
// A Builder mutates the document.Context of the Document it wraps. The context
// has no locking, so calls against one Builder must not run concurrently.
package builder

import (
	"fmt"

	"github.com/wudi/formkit/document"
	"github.com/wudi/formkit/ir/raw"
	"github.com/wudi/formkit/observability"
)

type Builder struct {
	doc    *document.Document
	cfg    *Config
	log    observability.Logger
	tracer observability.Tracer

	font    raw.ObjectRef
	actions map[raw.ObjectRef]struct{}
}

type Option func(*Builder)

func WithLogger(log observability.Logger) Option {
	return func(b *Builder) {
		if log != nil {
			b.log = log
		}
	}
}

func WithTracer(t observability.Tracer) Option {
	return func(b *Builder) {
		if t != nil {
			b.tracer = t
		}
	}
}

// New returns a Builder over doc. A nil cfg selects NewDefaultConfig.
func New(doc *document.Document, cfg *Config, opts ...Option) (*Builder, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", ErrInvalidOptions)
	}
	if cfg == nil {
		cfg = NewDefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	b := &Builder{
		doc:     doc,
		cfg:     cfg,
		log:     observability.NopLogger{},
		tracer:  observability.NopTracer(),
		actions: make(map[raw.ObjectRef]struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

func (b *Builder) Document() *document.Document { return b.doc }

func (b *Builder) Config() Config { return *b.cfg }

// AddField places a widget on page and lists it in the AcroForm.
func (b *Builder) AddField(page *document.Page, field *document.Node) {
	page.AddAnnotation(field)
	b.doc.AddField(field)
	b.formResources()
}

// defaultAppearance selects the shared page font at auto size in black.
func (b *Builder) defaultAppearance() string {
	return "/" + FontResource + " 0 Tf 0 g"
}

// formResources points the AcroForm /DR and /DA at the shared font so
// field /DA strings resolve.
func (b *Builder) formResources() {
	form := b.doc.AcroForm()
	if _, ok := form.Get("DR"); ok {
		return
	}
	fonts := raw.Dict()
	fonts.Set(raw.NameLiteral(FontResource), raw.RefTo(b.fontRef()))
	dr := raw.Dict()
	dr.Set(raw.NameLiteral("Font"), fonts)
	form.Set("DR", dr)
	form.Set("DA", raw.Str([]byte(b.defaultAppearance())))
}

func (b *Builder) context() *document.Context { return b.doc.Context() }
