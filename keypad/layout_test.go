package keypad

import (
	"errors"
	"testing"
)

func TestLayoutByName(t *testing.T) {
	l, err := LayoutByName("Phone")
	if err != nil {
		t.Fatalf("LayoutByName: %v", err)
	}
	if got := l.At(0, 3); got != KeyAdd {
		t.Fatalf("At(0, 3) = %s, want +", got)
	}

	if _, err := LayoutByName("dvorak"); !errors.Is(err, ErrUnknownLayout) {
		t.Fatalf("LayoutByName(dvorak) error = %v, want ErrUnknownLayout", err)
	}
}

func TestLayoutFindAndLocate(t *testing.T) {
	row, col, ok := LayoutCalculator.Find(KeyDiv)
	if !ok || row != 0 || col != 3 {
		t.Fatalf("Find(/) = %d, %d, %v; want 0, 3, true", row, col, ok)
	}
	row, col, ok = LayoutCalculator.Locate('c')
	if !ok || row != 3 || col != 0 {
		t.Fatalf("Locate(c) = %d, %d, %v; want 3, 0, true", row, col, ok)
	}
	if _, _, ok := LayoutCalculator.Locate('x'); ok {
		t.Fatal("Locate(x) ok = true, want false")
	}
	if got := LayoutCalculator.At(4, 0); got != KeyNone {
		t.Fatalf("At(4, 0) = %s, want none", got)
	}
}

func TestNewLayoutValidation(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"ragged", []string{"123", "45"}},
		{"duplicate", []string{"11"}},
		{"invalid", []string{"1x"}},
		{"empty", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewLayout(tt.name, tt.rows...); err == nil {
				t.Fatalf("NewLayout(%q) error = nil", tt.rows)
			}
		})
	}

	l, err := NewLayout("sparse", "1.", "c2")
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}
	if got := l.At(0, 1); got != KeyNone {
		t.Fatalf("At(0, 1) = %s, want none", got)
	}
	if got := l.At(1, 0); got != KeyClear {
		t.Fatalf("At(1, 0) = %s, want C", got)
	}
}

func TestRegisterLayout(t *testing.T) {
	saved := builtinLayouts
	t.Cleanup(func() { builtinLayouts = saved })

	grid := MustLayout("grid", "12", "3=")
	if err := RegisterLayout(grid); err != nil {
		t.Fatalf("RegisterLayout: %v", err)
	}
	if _, err := LayoutByName("GRID"); err != nil {
		t.Fatalf("LayoutByName(GRID): %v", err)
	}
	if err := RegisterLayout(grid); err == nil {
		t.Fatal("second RegisterLayout(grid) error = nil")
	}
	if err := RegisterLayout(LayoutPhone); err == nil {
		t.Fatal("RegisterLayout(phone) error = nil, want duplicate")
	}
	if err := RegisterLayout(Layout{Name: "empty"}); !errors.Is(err, ErrLayoutShape) {
		t.Fatalf("RegisterLayout(empty) error = %v, want ErrLayoutShape", err)
	}
}
