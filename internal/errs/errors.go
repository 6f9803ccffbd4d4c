// Package errs implements the classified runtime error types shared by
// every backend: Syntax, Name, Type, ZeroDivision, and Runtime errors all
// carry a message and, where available, the source position of the
// failing construct.
package errs

import (
	"fmt"

	"github.com/Francis589-png/JUSUPLUSPLUS/pkg/token"
)

// Kind classifies a language-level error for the driver's stderr
// reporting and exit-code logic.
type Kind int

const (
	Syntax Kind = iota
	Name
	Type
	ZeroDivision
	Runtime
)

var kindLabels = [...]string{
	Syntax:       "Syntax Error",
	Name:         "Name Error",
	Type:         "Type Error",
	ZeroDivision: "Math Error",
	Runtime:      "Runtime Error",
}

// Label returns the stderr classification prefix for this kind, e.g.
// "Type Error:".
func (k Kind) Label() string {
	if int(k) < len(kindLabels) {
		return kindLabels[k] + ":"
	}
	return "Error:"
}

// Error is a classified language error with optional source position.
type Error struct {
	Kind    Kind
	Message string
	HasPos  bool
	Pos     token.Position
}

// New creates a classified error with no position information.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewAt creates a classified error positioned at pos.
func NewAt(kind Kind, pos token.Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), HasPos: true, Pos: pos}
}

// Error implements the error interface, appending the
// " (at line L, col C)" suffix when position information is available.
func (e *Error) Error() string {
	if e.HasPos {
		return fmt.Sprintf("%s (at line %d, col %d)", e.Message, e.Pos.Line, e.Pos.Column)
	}
	return e.Message
}

// Report formats e the way the driver writes it to standard error: the
// classification prefix followed by the message.
func (e *Error) Report() string {
	return e.Kind.Label() + " " + e.Error()
}
