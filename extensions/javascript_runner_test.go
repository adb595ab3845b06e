package extensions

import (
	"context"
	"errors"
	"testing"

	"github.com/wudi/formkit/builder"
	"github.com/wudi/formkit/document"
	"github.com/wudi/formkit/extensions/dom"
	"github.com/wudi/formkit/ir/raw"
	"github.com/wudi/formkit/scripting"
)

type mockEngine struct {
	executedScripts []string
	fail            bool
}

func (m *mockEngine) Execute(ctx context.Context, script string) (any, error) {
	m.executedScripts = append(m.executedScripts, script)
	if m.fail {
		return nil, errors.New("boom")
	}
	return nil, nil
}

func (m *mockEngine) RegisterDOM(dom scripting.PDFDOM) error {
	return nil
}

func buildForm(t *testing.T) *builder.Builder {
	t.Helper()
	b, err := builder.New(document.New(), nil)
	if err != nil {
		t.Fatalf("new builder: %v", err)
	}
	p1, _ := b.CreatePage(builder.PageOptions{Actions: builder.Actions{{Event: builder.EventPageOpen, Script: "open1"}}})
	b.CreatePage(builder.PageOptions{})
	total, _ := b.CreateField(builder.FieldOptions{Name: "total", Value: "0",
		Actions: builder.Actions{{Event: builder.EventCalculate, Script: `getField("total").value = "3";`}}})
	b.AddField(p1, total)
	other, _ := b.CreateField(builder.FieldOptions{Name: "other",
		Actions: builder.Actions{{Event: builder.EventKeystroke, Script: "never"}}})
	b.AddField(p1, other)
	return b
}

func TestJavaScriptRunner_Order(t *testing.T) {
	b := buildForm(t)
	engine := &mockEngine{}
	n, err := NewJavaScriptRunner(engine, nil).Run(context.Background(), b.Document())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if n != 2 || len(engine.executedScripts) != 2 {
		t.Fatalf("expected 2 scripts executed, got %d: %v", n, engine.executedScripts)
	}
	if engine.executedScripts[0] != "open1" {
		t.Errorf("page open script should run first, got %q", engine.executedScripts[0])
	}
}

func TestJavaScriptRunner_StopsOnError(t *testing.T) {
	engine := &mockEngine{fail: true}
	n, err := NewJavaScriptRunner(engine, nil).Run(context.Background(), buildForm(t).Document())
	if err == nil || n != 0 || len(engine.executedScripts) != 1 {
		t.Fatalf("expected the first failure to stop the run, n=%d err=%v", n, err)
	}
}

func TestJavaScriptRunner_UpdatesFields(t *testing.T) {
	b := buildForm(t)
	engine := scripting.NewEngine()
	if err := engine.RegisterDOM(dom.New(b.Document())); err != nil {
		t.Fatalf("register dom: %v", err)
	}
	if _, err := NewJavaScriptRunner(engine, nil).Run(context.Background(), b.Document()); err == nil {
		t.Fatalf("undefined page script should fail")
	}

	b.AttachPageScript(b.Document().Pages()[0], "open1")
	if _, err := NewJavaScriptRunner(engine, nil).Run(context.Background(), b.Document()); err != nil {
		t.Fatalf("guarded page script should not fail: %v", err)
	}
	total, _ := b.Document().Field("total")
	v, _ := total.Get("V")
	if got := string(v.(raw.String).Value()); got != "3" {
		t.Fatalf("calculate script did not run, total=%q", got)
	}
}

func TestJavaScriptRunner_NilEngine(t *testing.T) {
	if n, err := NewJavaScriptRunner(nil, nil).Run(context.Background(), document.New()); n != 0 || err != nil {
		t.Fatalf("nil engine should be a no-op, got %d %v", n, err)
	}
}
