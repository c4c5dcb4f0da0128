package value

// Add implements the binary `+` matrix in §4.1. It never fails: any
// pair involving Function collapses to Null, and List addition always
// builds a new List rather than mutating either operand.
func Add(a, b Value) Value {
	switch x := a.(type) {
	case int64:
		switch y := b.(type) {
		case int64:
			return x + y
		case bool:
			return x + boolToInt(y)
		case nil:
			return x
		case string:
			return ToString(x) + y
		case *List:
			return appendScalar(y, a)
		}
	case bool:
		switch y := b.(type) {
		case int64:
			return boolToInt(x) + y
		case bool:
			return boolToInt(x) + boolToInt(y)
		case nil:
			return x
		case string:
			return ToString(x) + y
		case *List:
			return appendScalar(y, a)
		}
	case nil:
		switch y := b.(type) {
		case int64:
			return y
		case bool:
			return y
		case nil:
			return nil
		case string:
			return "null" + y
		case *List:
			return appendScalar(y, a)
		}
	case string:
		switch y := b.(type) {
		case int64, bool, nil, string:
			return x + ToString(y)
		case *List:
			return appendScalar(y, a)
		}
	case *List:
		switch y := b.(type) {
		case *List:
			return NewList(append(append([]Value{}, x.Items...), y.Items...))
		case *Function:
			return nil
		default:
			return NewList(append(append([]Value{}, x.Items...), y))
		}
	}

	// a is *Function, or b was a type not handled above (only *Function
	// remains unhandled for the int64/bool/nil/string arms): any pair
	// involving Function collapses to Null.
	return nil
}

// appendScalar builds a new list holding l's contents followed by v, the
// same append-to-a-copy direction the List-left branch uses.
func appendScalar(l *List, v Value) Value {
	return NewList(append(append([]Value{}, l.Items...), v))
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// Sub implements `-`: integer-only, with Boolean coerced to 0/1.
func Sub(a, b Value) Value {
	ai, aok := asIntLike(a)
	bi, bok := asIntLike(b)
	if aok && bok {
		return ai - bi
	}
	return nil
}

func asIntLike(v Value) (int64, bool) {
	switch t := v.(type) {
	case int64:
		return t, true
	case bool:
		return boolToInt(t), true
	default:
		return 0, false
	}
}

// Mul implements `*`: integer product, string/list repetition.
func Mul(a, b Value) Value {
	if ai, aok := a.(int64); aok {
		if bi, bok := b.(int64); bok {
			return ai * bi
		}
		if s, ok := b.(string); ok {
			return repeatString(s, ai)
		}
	}
	if s, ok := a.(string); ok {
		if n, ok := b.(int64); ok {
			return repeatString(s, n)
		}
	}
	if l, ok := a.(*List); ok {
		if n, ok := b.(int64); ok {
			return repeatList(l, n)
		}
	}
	return nil
}

func repeatString(s string, n int64) string {
	if n <= 0 {
		return ""
	}
	out := make([]byte, 0, len(s)*int(n))
	for i := int64(0); i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}

// repeatList concatenates l's contents n times. n<=0 yields an empty
// list — the spec's prescribed fix for the original source's off-by-one
// (which preserved one copy when n was 0).
func repeatList(l *List, n int64) *List {
	if n <= 0 {
		return NewList(nil)
	}
	out := make([]Value, 0, len(l.Items)*int(n))
	for i := int64(0); i < n; i++ {
		out = append(out, l.Items...)
	}
	return NewList(out)
}

// Div implements `/`; division by zero yields the sentinel string "∞"
// rather than failing.
func Div(a, b Value) Value {
	ai, aok := a.(int64)
	bi, bok := b.(int64)
	if !aok || !bok {
		return nil
	}
	if bi == 0 {
		return "∞"
	}
	return ai / bi
}

// Mod implements `%`; modulo by zero yields the sentinel string
// "oopsie ><".
func Mod(a, b Value) Value {
	ai, aok := a.(int64)
	bi, bok := b.(int64)
	if !aok || !bok {
		return nil
	}
	if bi == 0 {
		return "oopsie ><"
	}
	return ai % bi
}

// Ordering mirrors Rust's std::cmp::Ordering: Less, Equal, Greater. A
// missing comparison (None in the original) is represented by ok=false.
type Ordering int

const (
	Less Ordering = iota - 1
	Equal
	Greater
)

// Compare implements §4.1's comparison lattice.
func Compare(a, b Value) (Ordering, bool) {
	switch x := a.(type) {
	case int64:
		switch y := b.(type) {
		case int64:
			return cmpInt(x, y), true
		case string:
			return cmpString(ToString(x), y), true
		case bool:
			return cmpInt(x, boolToInt(y)), true
		}
	case string:
		switch y := b.(type) {
		case string:
			return cmpString(x, y), true
		case int64:
			return cmpString(x, ToString(y)), true
		case bool:
			return cmpBool(x != "", y), true
		}
	case bool:
		switch y := b.(type) {
		case bool:
			return cmpBool(x, y), true
		case int64:
			return cmpInt(boolToInt(x), y), true
		case string:
			return cmpBool(x, y != ""), true
		}
	case nil:
		if b == nil {
			return Equal, true
		}
		return Equal, false
	case *List:
		if y, ok := b.(*List); ok {
			return compareLists(x, y), true
		}
		return Equal, false
	case *Function:
		if y, ok := b.(*Function); ok {
			return compareFunctions(x, y)
		}
		return Equal, false
	}

	return Equal, false
}

func compareFunctions(a, b *Function) (Ordering, bool) {
	if a.IsBytecode() != b.IsBytecode() {
		return Equal, false
	}
	return cmpString(a.Name, b.Name), true
}

func compareLists(a, b *List) Ordering {
	n := len(a.Items)
	if len(b.Items) < n {
		n = len(b.Items)
	}
	for i := 0; i < n; i++ {
		if ord, ok := Compare(a.Items[i], b.Items[i]); ok {
			if ord != Equal {
				return ord
			}
		} else {
			return Equal
		}
	}
	return cmpInt(int64(len(a.Items)), int64(len(b.Items)))
}

func cmpInt(a, b int64) Ordering {
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	default:
		return Equal
	}
}

func cmpString(a, b string) Ordering {
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	default:
		return Equal
	}
}

func cmpBool(a, b bool) Ordering {
	return cmpInt(boolToInt(a), boolToInt(b))
}
