package calc

import (
	"errors"
	"math"
	"testing"

	"keycalc/keypad"
)

func TestApply(t *testing.T) {
	tests := []struct {
		a, b int32
		op   keypad.Key
		want int32
	}{
		{5, 3, keypad.KeyAdd, 8},
		{5, 3, keypad.KeySub, 2},
		{3, 5, keypad.KeySub, -2},
		{6, 7, keypad.KeyMul, 42},
		{7, 2, keypad.KeyDiv, 3},
		{-7, 2, keypad.KeyDiv, -3},
		{7, -2, keypad.KeyDiv, -3},
		{math.MaxInt32, 1, keypad.KeyAdd, math.MinInt32},
		{math.MinInt32, 1, keypad.KeySub, math.MaxInt32},
		{65536, 65536, keypad.KeyMul, 0},
		{math.MinInt32, -1, keypad.KeyDiv, math.MinInt32},
		{1, 9, keypad.KeyEqual, 9},
		{1, 9, keypad.KeyNone, 9},
	}
	for _, tt := range tests {
		got := Apply(tt.a, tt.b, tt.op)
		if got.Fault {
			t.Fatalf("Apply(%d, %d, %s) faulted", tt.a, tt.b, tt.op)
		}
		if got.Value != tt.want {
			t.Fatalf("Apply(%d, %d, %s) = %d, want %d", tt.a, tt.b, tt.op, got.Value, tt.want)
		}
		if got.Err() != nil {
			t.Fatalf("Apply(%d, %d, %s).Err() = %v, want nil", tt.a, tt.b, tt.op, got.Err())
		}
	}
}

func TestApplyDivisionByZero(t *testing.T) {
	for _, a := range []int32{0, 5, -5, math.MaxInt32, math.MinInt32} {
		got := Apply(a, 0, keypad.KeyDiv)
		if got != (Result{Value: 0, Fault: true}) {
			t.Fatalf("Apply(%d, 0, /) = %+v, want fault", a, got)
		}
		if !errors.Is(got.Err(), ErrDivisionByZero) {
			t.Fatalf("Err() = %v, want ErrDivisionByZero", got.Err())
		}
	}
	// Only division faults on a zero divisor.
	if got := Apply(5, 0, keypad.KeyMul); got.Fault || got.Value != 0 {
		t.Fatalf("Apply(5, 0, *) = %+v", got)
	}
}
