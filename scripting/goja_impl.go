package scripting

import (
	"context"
	"errors"
	"fmt"

	"github.com/dop251/goja"
)

type GojaEngine struct {
	vm *goja.Runtime
}

func NewEngine() *GojaEngine {
	return &GojaEngine{vm: goja.New()}
}

// CheckSyntax compiles script without running it.
func CheckSyntax(name, script string) error {
	if _, err := goja.Compile(name, script, false); err != nil {
		return fmt.Errorf("%s: %w: %v", name, ErrSyntax, err)
	}
	return nil
}

func (e *GojaEngine) Execute(ctx context.Context, script string) (any, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := make(chan struct{})
	stopped := make(chan struct{})
	defer func() {
		close(done)
		<-stopped
		e.vm.ClearInterrupt()
	}()

	go func() {
		defer close(stopped)
		select {
		case <-ctx.Done():
			e.vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	val, err := e.vm.RunString(script)
	if err != nil {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) {
			if cause := interrupted.Unwrap(); cause != nil {
				return nil, cause
			}
			return nil, context.Canceled
		}
		return nil, err
	}
	if val == nil {
		return nil, nil
	}
	return val.Export(), nil
}

func (e *GojaEngine) RegisterDOM(dom PDFDOM) error {
	app := e.vm.NewObject()
	if err := app.Set("alert", func(call goja.FunctionCall) goja.Value {
		msg := ""
		if len(call.Arguments) > 0 {
			msg = call.Argument(0).String()
		}
		dom.Alert(msg)
		return goja.Undefined()
	}); err != nil {
		return err
	}
	if err := e.vm.Set("app", app); err != nil {
		return err
	}

	if err := e.vm.Set("getField", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return goja.Undefined()
		}
		field, err := dom.GetField(call.Argument(0).String())
		if err != nil || field == nil {
			return goja.Null()
		}
		return e.fieldObject(field)
	}); err != nil {
		return err
	}

	return e.vm.Set("getPage", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return goja.Undefined()
		}
		page, err := dom.GetPage(int(call.Argument(0).ToInteger()))
		if err != nil || page == nil {
			return goja.Null()
		}
		obj := e.vm.NewObject()
		_ = obj.Set("index", page.GetIndex())
		_ = obj.Set("width", page.Width())
		_ = obj.Set("height", page.Height())
		return obj
	})
}

func (e *GojaEngine) fieldObject(field FormFieldProxy) goja.Value {
	obj := e.vm.NewObject()
	_ = obj.Set("name", field.Name())
	_ = obj.DefineAccessorProperty("value",
		e.vm.ToValue(func(goja.FunctionCall) goja.Value {
			return e.vm.ToValue(field.GetValue())
		}),
		e.vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) > 0 {
				field.SetValue(call.Argument(0).Export())
			}
			return goja.Undefined()
		}),
		goja.FLAG_TRUE,
		goja.FLAG_TRUE,
	)
	return obj
}
