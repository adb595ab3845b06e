package builder

import (
	"fmt"
	"sort"

	"github.com/wudi/formkit/document"
	"github.com/wudi/formkit/ir/raw"
	"github.com/wudi/formkit/observability"
	"github.com/wudi/formkit/scripting"
)

// Additional-actions trigger names. Any other non-empty name is stored as given.
const (
	EventPageOpen  = "O"
	EventPageClose = "C"
	EventEnter     = "E"
	EventExit      = "X"
	EventDown      = "D"
	EventUp        = "U"
	EventFocus     = "Fo"
	EventBlur      = "Bl"
	EventKeystroke = "K"
	EventFormat    = "F"
	EventValidate  = "V"
	EventCalculate = "C"
)

type Action struct {
	Event  string
	Script string
}

// Actions is applied in order; a later entry for the same event wins.
type Actions []Action

// ActionsFromMap orders m by event name.
func ActionsFromMap(m map[string]string) Actions {
	events := make([]string, 0, len(m))
	for ev := range m {
		events = append(events, ev)
	}
	sort.Strings(events)
	out := make(Actions, 0, len(events))
	for _, ev := range events {
		out = append(out, Action{Event: ev, Script: m[ev]})
	}
	return out
}

// GuardScript wraps code so a thrown error is shown with app.alert.
func GuardScript(code string) string {
	return "try { " + code + " } catch (e) { app.alert(e.stack || e); }"
}

// Attach binds a JavaScript action to event in the node's /AA table,
// replacing any action already bound to that event.
func (b *Builder) Attach(node *document.Node, event, script string) {
	if event == "" {
		b.log.Warn("skipping action with empty event name", observability.Int("node", node.Ref.Num))
		return
	}
	ctx := b.context()
	existing, _ := node.Get("AA")
	aa, ok := ctx.ResolveDict(existing)
	if !ok {
		aa = raw.Dict()
		node.Set("AA", aa)
	}

	key := raw.NameLiteral(event)
	if prev, ok := aa.Get(key); ok {
		if ref, ok := prev.(raw.RefObj); ok {
			if _, owned := b.actions[ref.Ref()]; owned {
				ctx.Delete(ref.Ref())
				delete(b.actions, ref.Ref())
			}
		}
	}

	action := raw.Dict()
	action.Set(raw.NameLiteral("S"), raw.NameLiteral("JavaScript"))
	action.Set(raw.NameLiteral("JS"), raw.TextString(script))
	ref := ctx.Register(action)
	b.actions[ref] = struct{}{}
	aa.Set(key, raw.RefTo(ref))

	b.log.Debug("action attached",
		observability.Int("node", node.Ref.Num),
		observability.String("event", event),
		observability.Int("action", ref.Num),
	)
}

func (b *Builder) AttachAll(node *document.Node, actions Actions) {
	for _, a := range actions {
		b.Attach(node, a.Event, a.Script)
	}
}

// AttachGuarded is Attach with the script wrapped by GuardScript.
func (b *Builder) AttachGuarded(node *document.Node, event, script string) {
	b.Attach(node, event, GuardScript(script))
}

// AttachPageScript runs a guarded script when page is opened.
func (b *Builder) AttachPageScript(page *document.Page, script string) {
	b.AttachGuarded(&page.Node, EventPageOpen, script)
}

func (b *Builder) checkScripts(actions Actions) error {
	if !b.cfg.CheckScripts {
		return nil
	}
	for _, a := range actions {
		if err := scripting.CheckSyntax(a.Event, a.Script); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidScript, err)
		}
	}
	return nil
}
