package value

import (
	"testing"

	"merc/internal/bytecode"
)

func TestTruthy(t *testing.T) {
	tests := []struct {
		name     string
		input    Value
		expected bool
	}{
		{"null", nil, false},
		{"zero int", int64(0), false},
		{"nonzero int", int64(7), true},
		{"negative int", int64(-1), true},
		{"empty string", "", false},
		{"nonempty string", "a", true},
		{"empty list", NewList(nil), false},
		{"nonempty list", NewList([]Value{int64(1)}), true},
		{"false", false, false},
		{"true", true, true},
		{"function", &Function{Name: "f"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Truthy(tc.input); got != tc.expected {
				t.Errorf("Truthy(%v) = %v, want %v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestToInteger(t *testing.T) {
	tests := []struct {
		name     string
		input    Value
		expected int64
	}{
		{"null", nil, 0},
		{"true", true, 1},
		{"false", false, 0},
		{"int", int64(42), 42},
		{"numeric string", "123", 123},
		{"padded numeric string", "  9  ", 9},
		{"garbage string", "nope", 0},
		{"list", NewList(nil), 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ToInteger(tc.input); got != tc.expected {
				t.Errorf("ToInteger(%v) = %d, want %d", tc.input, got, tc.expected)
			}
		})
	}
}

func TestToStringList(t *testing.T) {
	l := NewList([]Value{int64(1), "two", true, nil})
	if got, want := ToString(l), "[1, two, true, null]"; got != want {
		t.Errorf("ToString(list) = %q, want %q", got, want)
	}
	if got, want := ToString(NewList(nil)), "[]"; got != want {
		t.Errorf("ToString(empty list) = %q, want %q", got, want)
	}
}

func TestToStringFunction(t *testing.T) {
	bc := &Function{Name: "add", Arity: 2, Body: &bytecode.Block{}}
	if got, want := ToString(bc), "add(_0, _1) { /* bytecode */ }"; got != want {
		t.Errorf("ToString(bytecode fn) = %q, want %q", got, want)
	}

	native := &Function{Name: "print", Arity: 1, Native: func(Stack) {}}
	if got, want := ToString(native), "print(_0) { /* machine code */ }"; got != want {
		t.Errorf("ToString(native fn) = %q, want %q", got, want)
	}
}

func TestNegate(t *testing.T) {
	if got := Negate(int64(5)); got != int64(-5) {
		t.Errorf("Negate(5) = %v, want -5", got)
	}
	if got := Negate("abc"); got != "cba" {
		t.Errorf("Negate(abc) = %v, want cba", got)
	}
	if got := Negate(true); got != false {
		t.Errorf("Negate(true) = %v, want false", got)
	}

	l := NewList([]Value{int64(1), int64(2), int64(3)})
	got, ok := Negate(l).(*List)
	if !ok {
		t.Fatalf("Negate(list) did not return a *List")
	}
	want := []Value{int64(-3), int64(-2), int64(-1)}
	for i, v := range want {
		if got.Items[i] != v {
			t.Errorf("Negate(list).Items[%d] = %v, want %v", i, got.Items[i], v)
		}
	}
	// Negate must not mutate the original list (it is shared and aliasable).
	if l.Items[0] != int64(1) {
		t.Errorf("Negate mutated its operand: l.Items[0] = %v", l.Items[0])
	}
}

func TestNotIsTrueLogicalNegation(t *testing.T) {
	// #! must differ from #- for every truthy-but-nonzero value: the
	// original source's bug aliased #! to negate, which would turn 5
	// into -5 rather than false.
	if got := Not(int64(5)); got != false {
		t.Errorf("Not(5) = %v, want false", got)
	}
	if got := Not(int64(0)); got != true {
		t.Errorf("Not(0) = %v, want true", got)
	}
	if got := Not(""); got != true {
		t.Errorf("Not(\"\") = %v, want true", got)
	}
}

func TestActivationIsolatesLocals(t *testing.T) {
	template := &Function{Name: "f", Arity: 1, Body: &bytecode.Block{}}
	a := template.Activation()
	b := template.Activation()

	a.SetLocal(0, int64(1))
	b.SetLocal(0, int64(2))

	if a.GetLocal(0) == b.GetLocal(0) {
		t.Fatalf("two activations of the same function shared locals")
	}
	if len(template.Locals) != 0 {
		t.Fatalf("calling Activation mutated the registry template's Locals")
	}
}
