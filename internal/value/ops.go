package value

import (
	"strings"

	"github.com/Francis589-png/JUSUPLUSPLUS/internal/errs"
)

// These functions implement the language's strict operand-coercion rules.
// The stack VM and register VM call the very same functions so that all
// three backends raise identical error classifications for identical
// inputs.

// Add implements `+`: numeric addition for {number,number}, concatenation
// for {text,text}; any other pair is a type error.
func Add(a, b Value) (Value, error) {
	switch {
	case a.Type == TypeNumber && b.Type == TypeNumber:
		return Number(a.num + b.num), nil
	case a.Type == TypeString && b.Type == TypeString:
		return String(a.str + b.str), nil
	default:
		return Null, errs.New(errs.Type, "unsupported operand types for +: %s and %s", a.Type, b.Type)
	}
}

// Sub implements `-`: both operands must be numbers.
func Sub(a, b Value) (Value, error) {
	if a.Type != TypeNumber || b.Type != TypeNumber {
		return Null, errs.New(errs.Type, "unsupported operand types for -: %s and %s", a.Type, b.Type)
	}
	return Number(a.num - b.num), nil
}

// Mul implements `*`: numeric multiplication, or text repetition when one
// operand is text and the other a non-negative integer.
func Mul(a, b Value) (Value, error) {
	switch {
	case a.Type == TypeNumber && b.Type == TypeNumber:
		return Number(a.num * b.num), nil
	case a.Type == TypeString && b.Type == TypeNumber:
		return repeatText(a.str, b.num)
	case a.Type == TypeNumber && b.Type == TypeString:
		return repeatText(b.str, a.num)
	default:
		return Null, errs.New(errs.Type, "unsupported operand types for *: %s and %s", a.Type, b.Type)
	}
}

func repeatText(s string, n float64) (Value, error) {
	if n < 0 || n != float64(int64(n)) {
		return Null, errs.New(errs.Type, "string repeat count must be a non-negative integer")
	}
	return String(strings.Repeat(s, int(n))), nil
}

// Div implements `/`: both operands must be numbers; dividing by zero is
// a ZeroDivision error rather than a type error.
func Div(a, b Value) (Value, error) {
	if a.Type != TypeNumber || b.Type != TypeNumber {
		return Null, errs.New(errs.Type, "unsupported operand types for /: %s and %s", a.Type, b.Type)
	}
	if b.num == 0 {
		return Null, errs.New(errs.ZeroDivision, "division by zero")
	}
	return Number(a.num / b.num), nil
}

// Compare implements ordered comparison (< > <= >=): natural ordering for
// numbers, lexicographic for strings; any other pairing is a type error.
func Compare(a, b Value) (int, error) {
	switch {
	case a.Type == TypeNumber && b.Type == TypeNumber:
		switch {
		case a.num < b.num:
			return -1, nil
		case a.num > b.num:
			return 1, nil
		default:
			return 0, nil
		}
	case a.Type == TypeString && b.Type == TypeString:
		return strings.Compare(a.str, b.str), nil
	default:
		return 0, errs.New(errs.Type, "unsupported operand types for ordered comparison: %s and %s", a.Type, b.Type)
	}
}
