package contentstream

import (
	"context"
	"errors"

	"github.com/wudi/formkit/coords"
)

type Processor interface {
	Process(ctx context.Context, stream []byte, state *GraphicsState) error
	RegisterHandler(op string, h OperatorHandler)
}

type OperatorHandler interface {
	Handle(ctx *ExecutionContext, operands []Operand) error
}

// HandlerFunc adapts a function to OperatorHandler.
type HandlerFunc func(ctx *ExecutionContext, operands []Operand) error

func (f HandlerFunc) Handle(ctx *ExecutionContext, operands []Operand) error { return f(ctx, operands) }

type ExecutionContext struct {
	GraphicsState *GraphicsState
	TextState     *TextState
}

type GraphicsState struct {
	CTM       coords.Matrix
	FillColor []float64
	stack     []*GraphicsState
}

func NewGraphicsState() *GraphicsState { return &GraphicsState{CTM: coords.Identity()} }

func (gs *GraphicsState) Save() { clone := *gs; gs.stack = append(gs.stack, &clone) }
func (gs *GraphicsState) Restore() error {
	n := len(gs.stack)
	if n == 0 {
		return errors.New("state stack empty")
	}
	*gs = *gs.stack[n-1]
	gs.stack = gs.stack[:n-1]
	return nil
}

// Depth reports the number of saved states.
func (gs *GraphicsState) Depth() int { return len(gs.stack) }

type TextState struct {
	Font     string
	FontSize float64
}

type simpleProcessor struct{ handlers map[string]OperatorHandler }

// NewProcessor returns a processor that tracks q, Q, cm, rg and Tf itself and
// dispatches every operator to the handler registered for it.
func NewProcessor() Processor {
	return &simpleProcessor{handlers: make(map[string]OperatorHandler)}
}

func (p *simpleProcessor) RegisterHandler(op string, h OperatorHandler) { p.handlers[op] = h }

func (p *simpleProcessor) Process(ctx context.Context, stream []byte, state *GraphicsState) error {
	ops, err := Parse(stream)
	if err != nil {
		return err
	}
	ec := &ExecutionContext{GraphicsState: state, TextState: &TextState{}}
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.track(ec, op); err != nil {
			return err
		}
		if h, ok := p.handlers[op.Operator]; ok {
			if err := h.Handle(ec, op.Operands); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *simpleProcessor) track(ec *ExecutionContext, op Operation) error {
	gs := ec.GraphicsState
	switch op.Operator {
	case "q":
		gs.Save()
	case "Q":
		return gs.Restore()
	case "cm":
		vals, ok := numbers(op.Operands, 6)
		if !ok {
			return errors.New("cm expects 6 numbers")
		}
		var m coords.Matrix
		copy(m[:], vals)
		gs.CTM = m.Multiply(gs.CTM)
	case "rg":
		vals, ok := numbers(op.Operands, 3)
		if !ok {
			return errors.New("rg expects 3 numbers")
		}
		gs.FillColor = vals
	case "Tf":
		if len(op.Operands) == 2 {
			if name, ok := op.Operands[0].(NameOperand); ok {
				ec.TextState.Font = name.Value
			}
			if size, ok := op.Operands[1].(NumberOperand); ok {
				ec.TextState.FontSize = size.Value
			}
		}
	}
	return nil
}

func numbers(ops []Operand, n int) ([]float64, bool) {
	if len(ops) != n {
		return nil, false
	}
	out := make([]float64, n)
	for i, o := range ops {
		num, ok := o.(NumberOperand)
		if !ok {
			return nil, false
		}
		out[i] = num.Value
	}
	return out, true
}
