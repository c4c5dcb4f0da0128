// Package intrinsics implements the registry-facing native functions of
// §4.5: the operator intrinsics the compiler emits calls to
// (`~==`, `~+`, `#-`, `==[]`, ...), the handful of ordinary builtins
// (`print`, `itoa`, `insert`, ...), and the host-added database
// functions in db.go.
package intrinsics

import (
	"log"

	"merc/internal/value"
)

func newOp(name string, arity int, fn value.NativeFunc) *value.Function {
	return &value.Function{Name: name, Arity: arity, Native: fn}
}

func operators() []*value.Function {
	return []*value.Function{
		newOp("==[]", 3, indexSet),
		newOp("~==", 2, equal),
		newOp("~!=", 2, notEqual),
		newOp("~<", 2, lessThan),
		newOp("~<=", 2, lessThanOrEqual),
		newOp("~>", 2, greaterThan),
		newOp("~>=", 2, greaterThanOrEqual),
		newOp("~&&", 2, and),
		newOp("~||", 2, or),
		newOp("~+", 2, add),
		newOp("~-", 2, sub),
		newOp("~*", 2, multiply),
		newOp("~/", 2, divide),
		newOp("~%", 2, modulo),
		newOp("~[]", 2, index),
		newOp("#-", 1, negate),
		newOp("#!", 1, not),
	}
}

// indexSet implements `==[]`: pop value, list, index (that push order,
// so index comes off the stack first), grow the list with Null as
// needed, then assign in place.
func indexSet(s value.Stack) {
	idx := int(value.ToInteger(s.Pop()))
	list := s.Pop()
	v := s.Pop()

	l, ok := list.(*value.List)
	if !ok {
		log.Printf("warning: ==[] called on a non-list value")
		return
	}
	if idx < 0 {
		log.Printf("warning: ==[] called with a negative index")
		return
	}
	for len(l.Items) <= idx {
		l.Items = append(l.Items, nil)
	}
	l.Items[idx] = v
}

func index(s value.Stack) {
	idx := int(value.ToInteger(s.Pop()))
	list := s.Pop()

	switch t := list.(type) {
	case *value.List:
		if idx < 0 || idx >= len(t.Items) {
			log.Printf("warning: ~[] index %d out of range", idx)
			s.Push(nil)
			return
		}
		s.Push(t.Items[idx])
	case string:
		if idx < 0 || idx >= len(t) {
			log.Printf("warning: ~[] index %d out of range", idx)
			s.Push(nil)
			return
		}
		s.Push(t[idx : idx+1])
	default:
		log.Printf("warning: ~[] called on a non-indexable value")
		s.Push(nil)
	}
}

func equal(s value.Stack) {
	b, a := s.Pop(), s.Pop()
	ord, ok := value.Compare(a, b)
	s.Push(ok && ord == value.Equal)
}

func notEqual(s value.Stack) {
	b, a := s.Pop(), s.Pop()
	ord, ok := value.Compare(a, b)
	s.Push(!ok || ord != value.Equal)
}

func lessThan(s value.Stack) {
	b, a := s.Pop(), s.Pop()
	ord, ok := value.Compare(a, b)
	s.Push(ok && ord == value.Less)
}

func lessThanOrEqual(s value.Stack) {
	b, a := s.Pop(), s.Pop()
	ord, ok := value.Compare(a, b)
	s.Push(ok && (ord == value.Less || ord == value.Equal))
}

func greaterThan(s value.Stack) {
	b, a := s.Pop(), s.Pop()
	ord, ok := value.Compare(a, b)
	s.Push(ok && ord == value.Greater)
}

func greaterThanOrEqual(s value.Stack) {
	b, a := s.Pop(), s.Pop()
	ord, ok := value.Compare(a, b)
	s.Push(ok && (ord == value.Greater || ord == value.Equal))
}

func and(s value.Stack) {
	b, a := s.Pop(), s.Pop()
	s.Push(value.Truthy(a) && value.Truthy(b))
}

func or(s value.Stack) {
	b, a := s.Pop(), s.Pop()
	s.Push(value.Truthy(a) || value.Truthy(b))
}

func add(s value.Stack) {
	b, a := s.Pop(), s.Pop()
	s.Push(value.Add(a, b))
}

func sub(s value.Stack) {
	b, a := s.Pop(), s.Pop()
	s.Push(value.Sub(a, b))
}

func multiply(s value.Stack) {
	b, a := s.Pop(), s.Pop()
	s.Push(value.Mul(a, b))
}

func divide(s value.Stack) {
	b, a := s.Pop(), s.Pop()
	s.Push(value.Div(a, b))
}

func modulo(s value.Stack) {
	b, a := s.Pop(), s.Pop()
	s.Push(value.Mod(a, b))
}

func negate(s value.Stack) {
	s.Push(value.Negate(s.Pop()))
}

func not(s value.Stack) {
	s.Push(value.Not(s.Pop()))
}
