package writer

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/wudi/formkit/document"
	"github.com/wudi/formkit/ir/raw"
	"github.com/wudi/formkit/observability"
)

type impl struct {
	interceptors []Interceptor
	tracer       observability.Tracer
}

func (w *impl) SerializeObject(ref raw.ObjectRef, obj raw.Object) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("%d %d obj\n", ref.Num, ref.Gen))
	switch o := obj.(type) {
	case *raw.DictObj, *raw.ArrayObj, raw.NameObj, raw.NumberObj, raw.BoolObj, raw.NullObj,
		raw.StringObj, raw.HexStringObj, *raw.StreamObj, raw.RefObj:
		buf.Write(serializePrimitive(o))
		buf.WriteString("\n")
	default:
		return nil, fmt.Errorf("object %s: unsupported type %T", ref, obj)
	}
	buf.WriteString("endobj\n")
	return buf.Bytes(), nil
}

func (w *impl) Write(ctx context.Context, doc *document.Document, out io.Writer, cfg Config) (err error) {
	ctx, span := w.tracer.StartSpan(ctx, observability.SpanWrite)
	defer func() {
		if err != nil {
			span.SetError(err)
		}
		span.Finish()
	}()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("writer config: %w", err)
	}
	objects := doc.Context()
	if err := objects.CheckReferences(); err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-" + pdfVersion(cfg) + "\n%\xE2\xE3\xCF\xD3\n")
	offsets := make(map[int]int64)

	refs := objects.Refs()
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return err
		}
		obj, _ := objects.Lookup(ref)
		if s, ok := obj.(*raw.StreamObj); ok {
			prepared, err := prepareStream(s, cfg)
			if err != nil {
				return fmt.Errorf("object %s: %w", ref, err)
			}
			obj = prepared
		}
		for _, ic := range w.interceptors {
			if err := ic.BeforeWrite(ctx, ref, obj); err != nil {
				return err
			}
		}
		offset := int64(buf.Len())
		serialized, err := w.SerializeObject(ref, obj)
		if err != nil {
			return err
		}
		buf.Write(serialized)
		offsets[ref.Num] = offset
		for _, ic := range w.interceptors {
			if err := ic.AfterWrite(ctx, ref, obj, int64(len(serialized))); err != nil {
				return err
			}
		}
	}

	// XRef
	maxObjNum := 0
	if len(refs) > 0 {
		maxObjNum = refs[len(refs)-1].Num
	}
	xrefOffset := buf.Len()
	buf.WriteString(fmt.Sprintf("xref\n0 %d\n", maxObjNum+1))
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= maxObjNum; i++ {
		if off, ok := offsets[i]; ok {
			buf.WriteString(fmt.Sprintf("%010d 00000 n \n", off))
		} else {
			buf.WriteString("0000000000 65535 f \n")
		}
	}

	trailer := buildTrailer(maxObjNum+1, doc.Catalog().Ref, fileID(doc, cfg))
	buf.WriteString("trailer\n")
	buf.Write(serializePrimitive(trailer))
	buf.WriteString(fmt.Sprintf("\nstartxref\n%d\n%%%%EOF\n", xrefOffset))

	_, err = out.Write(buf.Bytes())
	return err
}

// prepareStream returns a copy of s with /Length set and, when configured,
// Flate-compressed data. The registered object is left untouched.
func prepareStream(s *raw.StreamObj, cfg Config) (*raw.StreamObj, error) {
	dict := raw.Dict()
	if s.Dict != nil {
		for k, v := range s.Dict.KV {
			dict.KV[k] = v
		}
	}
	data := s.Data
	if _, filtered := dict.Get(raw.NameLiteral("Filter")); !filtered && cfg.Compression != 0 && len(data) > 0 {
		encoded, err := flateEncode(data, cfg.Compression)
		if err != nil {
			return nil, err
		}
		data = encoded
		dict.Set(raw.NameLiteral("Filter"), raw.NameLiteral("FlateDecode"))
	}
	dict.Set(raw.NameLiteral("Length"), raw.NumberInt(int64(len(data))))
	return raw.NewStream(dict, data), nil
}
