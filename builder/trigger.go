package builder

import (
	"context"
	"fmt"

	"github.com/wudi/formkit/document"
	"github.com/wudi/formkit/observability"
	"github.com/wudi/formkit/scripting"
)

// Trigger runs the JavaScript action bound to event on node, the way a viewer
// would when the event fires.
func (b *Builder) Trigger(ctx context.Context, engine scripting.Engine, node *document.Node, event string) (_ any, err error) {
	ctx, span := b.tracer.StartSpan(ctx, observability.SpanTrigger)
	span.SetTag("event", event)
	defer func() {
		if err != nil {
			span.SetError(err)
		}
		span.Finish()
	}()

	script, err := b.ActionScript(node, event)
	if err != nil {
		return nil, err
	}
	return engine.Execute(ctx, script)
}

// ActionScript returns the script text bound to event on node.
func (b *Builder) ActionScript(node *document.Node, event string) (string, error) {
	script, ok := b.context().JavaScript(node, event)
	if !ok {
		return "", fmt.Errorf("%w: %q on object %s", ErrNoAction, event, node.Ref)
	}
	return script, nil
}
