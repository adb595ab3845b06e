package contentstream

import (
	"fmt"
	"strconv"
)

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokName
	tokString
	tokOperator
	tokArrayStart
	tokArrayEnd
)

type token struct {
	kind tokenKind
	text string
	num  float64
}

func isWhite(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t' || c == '\f' || c == 0
}

func isDelim(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

// tokenize splits a content stream into operands and operators.
func tokenize(src []byte) ([]token, error) {
	var out []token
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case isWhite(c):
			i++
		case c == '%':
			for i < len(src) && src[i] != '\n' && src[i] != '\r' {
				i++
			}
		case c == '[':
			out = append(out, token{kind: tokArrayStart})
			i++
		case c == ']':
			out = append(out, token{kind: tokArrayEnd})
			i++
		case c == '/':
			j := i + 1
			for j < len(src) && !isWhite(src[j]) && !isDelim(src[j]) {
				j++
			}
			out = append(out, token{kind: tokName, text: string(src[i+1 : j])})
			i = j
		case c == '(':
			s, next, err := readLiteral(src, i)
			if err != nil {
				return nil, err
			}
			out = append(out, token{kind: tokString, text: s})
			i = next
		default:
			j := i
			for j < len(src) && !isWhite(src[j]) && !isDelim(src[j]) {
				j++
			}
			if j == i {
				return nil, fmt.Errorf("unexpected byte %q at offset %d", c, i)
			}
			word := string(src[i:j])
			if f, err := strconv.ParseFloat(word, 64); err == nil {
				out = append(out, token{kind: tokNumber, text: word, num: f})
			} else {
				out = append(out, token{kind: tokOperator, text: word})
			}
			i = j
		}
	}
	return out, nil
}

// readLiteral decodes the literal string starting at src[start] == '('.
func readLiteral(src []byte, start int) (string, int, error) {
	var buf []byte
	depth := 0
	for i := start; i < len(src); i++ {
		c := src[i]
		switch c {
		case '(':
			if depth > 0 {
				buf = append(buf, c)
			}
			depth++
		case ')':
			depth--
			if depth == 0 {
				return string(buf), i + 1, nil
			}
			buf = append(buf, c)
		case '\\':
			i++
			if i >= len(src) {
				return "", 0, fmt.Errorf("unterminated escape at offset %d", i)
			}
			switch e := src[i]; e {
			case 'n':
				buf = append(buf, '\n')
			case 'r':
				buf = append(buf, '\r')
			case 't':
				buf = append(buf, '\t')
			case 'b':
				buf = append(buf, '\b')
			case 'f':
				buf = append(buf, '\f')
			case '0', '1', '2', '3', '4', '5', '6', '7':
				v := 0
				n := 0
				for n < 3 && i < len(src) && src[i] >= '0' && src[i] <= '7' {
					v = v*8 + int(src[i]-'0')
					i++
					n++
				}
				i--
				buf = append(buf, byte(v))
			default:
				buf = append(buf, e)
			}
		default:
			buf = append(buf, c)
		}
	}
	return "", 0, fmt.Errorf("unterminated string starting at offset %d", start)
}

// Parse splits a content stream into operations.
func Parse(stream []byte) ([]Operation, error) {
	tokens, err := tokenize(stream)
	if err != nil {
		return nil, err
	}
	var ops []Operation
	var stack []Operand
	var arrays [][]Operand
	push := func(o Operand) {
		if n := len(arrays); n > 0 {
			arrays[n-1] = append(arrays[n-1], o)
			return
		}
		stack = append(stack, o)
	}
	for _, tok := range tokens {
		switch tok.kind {
		case tokNumber:
			push(NumberOperand{Value: tok.num})
		case tokName:
			push(NameOperand{Value: tok.text})
		case tokString:
			push(StringOperand{Value: []byte(tok.text)})
		case tokArrayStart:
			arrays = append(arrays, nil)
		case tokArrayEnd:
			n := len(arrays)
			if n == 0 {
				return nil, fmt.Errorf("unbalanced ]")
			}
			vals := arrays[n-1]
			arrays = arrays[:n-1]
			push(ArrayOperand{Values: vals})
		case tokOperator:
			if len(arrays) > 0 {
				return nil, fmt.Errorf("operator %s inside array", tok.text)
			}
			ops = append(ops, Operation{Operator: tok.text, Operands: stack})
			stack = nil
		}
	}
	if len(arrays) > 0 {
		return nil, fmt.Errorf("unterminated array")
	}
	if len(stack) > 0 {
		return nil, fmt.Errorf("dangling operands: %d", len(stack))
	}
	return ops, nil
}
