package writer

import (
	"context"
	"io"

	"github.com/go-playground/validator/v10"

	"github.com/wudi/formkit/document"
	"github.com/wudi/formkit/ir/raw"
	"github.com/wudi/formkit/observability"
)

type PDFVersion string

const (
	PDF14 PDFVersion = "1.4"
	PDF17 PDFVersion = "1.7"
	PDF20 PDFVersion = "2.0"
)

type Config struct {
	Version PDFVersion `validate:"omitempty,oneof=1.4 1.5 1.6 1.7 2.0"`
	// Compression is the Flate level for streams without a filter; 0 disables compression.
	Compression   int `validate:"min=-2,max=9"`
	Deterministic bool
}

// Validate checks the configuration against its struct tags.
func (cfg Config) Validate() error {
	return validator.New().Struct(cfg)
}

type Writer interface {
	Write(ctx context.Context, doc *document.Document, w io.Writer, cfg Config) error
	SerializeObject(ref raw.ObjectRef, obj raw.Object) ([]byte, error)
}

// Interceptor observes every indirect object as it is written.
type Interceptor interface {
	BeforeWrite(ctx context.Context, ref raw.ObjectRef, obj raw.Object) error
	AfterWrite(ctx context.Context, ref raw.ObjectRef, obj raw.Object, bytesWritten int64) error
}

type WriterBuilder struct {
	interceptors []Interceptor
	tracer       observability.Tracer
}

func (b *WriterBuilder) WithInterceptor(i Interceptor) *WriterBuilder {
	b.interceptors = append(b.interceptors, i)
	return b
}

func (b *WriterBuilder) WithTracer(t observability.Tracer) *WriterBuilder {
	b.tracer = t
	return b
}

func (b *WriterBuilder) Build() Writer {
	tracer := b.tracer
	if tracer == nil {
		tracer = observability.NopTracer()
	}
	return &impl{interceptors: b.interceptors, tracer: tracer}
}

// NewWriter returns a writer without interceptors.
func NewWriter() Writer { return (&WriterBuilder{}).Build() }

type loggingInterceptor struct {
	log observability.Logger
}

// LoggingInterceptor logs each written object at debug level.
func LoggingInterceptor(log observability.Logger) Interceptor {
	if log == nil {
		log = observability.NopLogger{}
	}
	return loggingInterceptor{log: log}
}

func (l loggingInterceptor) BeforeWrite(context.Context, raw.ObjectRef, raw.Object) error { return nil }

func (l loggingInterceptor) AfterWrite(_ context.Context, ref raw.ObjectRef, obj raw.Object, n int64) error {
	l.log.Debug("object written",
		observability.Int("num", ref.Num),
		observability.String("type", obj.Type()),
		observability.Int64("bytes", n),
	)
	return nil
}
