package contentstream

import "github.com/wudi/formkit/coords"

// Operation represents a PDF operator and operands.
type Operation struct {
	Operator string
	Operands []Operand
}

// Operand is a type-safe operand value.
type Operand interface {
	operand()
	Type() string
}

type NumberOperand struct{ Value float64 }

func (NumberOperand) operand()     {}
func (NumberOperand) Type() string { return "number" }

type NameOperand struct{ Value string }

func (NameOperand) operand()     {}
func (NameOperand) Type() string { return "name" }

type StringOperand struct{ Value []byte }

func (StringOperand) operand()     {}
func (StringOperand) Type() string { return "string" }

type ArrayOperand struct{ Values []Operand }

func (ArrayOperand) operand()     {}
func (ArrayOperand) Type() string { return "array" }

func nums(vals ...float64) []Operand {
	out := make([]Operand, len(vals))
	for i, v := range vals {
		out[i] = NumberOperand{Value: v}
	}
	return out
}

// Save pushes the graphics state (q).
func Save() Operation { return Operation{Operator: "q"} }

// Restore pops the graphics state (Q).
func Restore() Operation { return Operation{Operator: "Q"} }

// Concat multiplies the CTM by m (cm).
func Concat(m coords.Matrix) Operation {
	return Operation{Operator: "cm", Operands: nums(m[:]...)}
}

// SetFillRGB sets the nonstroking color in DeviceRGB (rg).
func SetFillRGB(r, g, b float64) Operation {
	return Operation{Operator: "rg", Operands: nums(r, g, b)}
}

// Rectangle appends a rectangle subpath (re).
func Rectangle(x, y, width, height float64) Operation {
	return Operation{Operator: "re", Operands: nums(x, y, width, height)}
}

// Fill fills the current path using the nonzero winding rule (f).
func Fill() Operation { return Operation{Operator: "f"} }

// PaintXObject paints the named XObject resource (Do).
func PaintXObject(name string) Operation {
	return Operation{Operator: "Do", Operands: []Operand{NameOperand{Value: name}}}
}

func BeginText() Operation { return Operation{Operator: "BT"} }
func EndText() Operation   { return Operation{Operator: "ET"} }

// SetFont selects a font resource and size (Tf).
func SetFont(name string, size float64) Operation {
	return Operation{Operator: "Tf", Operands: []Operand{NameOperand{Value: name}, NumberOperand{Value: size}}}
}

// MoveText moves to the start of the next line (Td).
func MoveText(x, y float64) Operation {
	return Operation{Operator: "Td", Operands: nums(x, y)}
}

// ShowText shows a text string (Tj).
func ShowText(text string) Operation {
	return Operation{Operator: "Tj", Operands: []Operand{StringOperand{Value: []byte(text)}}}
}
