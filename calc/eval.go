// Package calc holds the calculator state machine and its evaluator.
//
// Operands are 32-bit signed integers; overflow wraps silently.
package calc

import (
	"errors"

	"keycalc/keypad"
)

var ErrDivisionByZero = errors.New("division by zero")

// Result is the outcome of one evaluation.
type Result struct {
	Value int32
	Fault bool
}

// Err returns ErrDivisionByZero for a faulted result.
func (r Result) Err() error {
	if r.Fault {
		return ErrDivisionByZero
	}
	return nil
}

// Apply evaluates a op b. Division by zero faults with Value 0; division truncates
// toward zero. Symbols other than the four operators return b.
func Apply(a, b int32, op keypad.Key) Result {
	switch op {
	case keypad.KeyAdd:
		return Result{Value: a + b}
	case keypad.KeySub:
		return Result{Value: a - b}
	case keypad.KeyMul:
		return Result{Value: a * b}
	case keypad.KeyDiv:
		if b == 0 {
			return Result{Fault: true}
		}
		return Result{Value: a / b}
	default:
		return Result{Value: b}
	}
}
