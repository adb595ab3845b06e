// Package extensions holds optional passes over a built document.
package extensions

import (
	"context"
	"fmt"

	"github.com/wudi/formkit/document"
	"github.com/wudi/formkit/observability"
	"github.com/wudi/formkit/scripting"
)

// JavaScriptRunner replays the scripts a viewer runs when a document opens:
// each page's open action in page order, then each field's calculate action
// in /Fields order.
type JavaScriptRunner struct {
	engine scripting.Engine
	log    observability.Logger
}

func NewJavaScriptRunner(engine scripting.Engine, log observability.Logger) *JavaScriptRunner {
	if log == nil {
		log = observability.NopLogger{}
	}
	return &JavaScriptRunner{engine: engine, log: log}
}

func (r *JavaScriptRunner) Name() string {
	return "JavaScriptRunner"
}

// Run executes the scripts and returns how many ran.
func (r *JavaScriptRunner) Run(ctx context.Context, doc *document.Document) (int, error) {
	if r.engine == nil {
		return 0, nil
	}
	objects := doc.Context()
	ran := 0
	run := func(node *document.Node, event string) error {
		script, ok := objects.JavaScript(node, event)
		if !ok {
			return nil
		}
		if _, err := r.engine.Execute(ctx, script); err != nil {
			return fmt.Errorf("object %s event %s: %w", node.Ref, event, err)
		}
		ran++
		r.log.Debug("script executed",
			observability.Int("object", node.Ref.Num),
			observability.String("event", event),
		)
		return nil
	}

	for _, page := range doc.Pages() {
		if err := run(&page.Node, "O"); err != nil {
			return ran, err
		}
	}
	for _, field := range doc.Fields() {
		if err := run(field, "C"); err != nil {
			return ran, err
		}
	}
	return ran, nil
}
