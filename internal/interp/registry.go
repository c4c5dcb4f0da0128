package interp

import (
	"merc/internal/bytecode"
	"merc/internal/value"
)

// registerFunctionBody installs a freshly-folded function body under
// name, replacing any prior entry (§3: "insert is idempotent on the
// key"). The stored template always has empty Locals; only a per-call
// Activation ever carries populated locals (§9 Open Question, resolved
// in favor of per-activation locals).
func (rt *Runtime) registerFunctionBody(name string, paramCount int, body *bytecode.Block) {
	rt.functions[name] = &value.Function{
		Name:  name,
		Arity: paramCount,
		Body:  body,
	}
}

// lookupFunction finds a registered function by name (bytecode or
// native), or nil if none exists.
func (rt *Runtime) lookupFunction(name string) *value.Function {
	return rt.functions[name]
}

// globalDeclare appends a fresh Null-valued binding (§4.4 Global): a
// later redeclaration of the same name does not overwrite an earlier,
// already-set value (§8 property 4 — first match wins on lookup, and a
// second `Global` never clobbers an existing non-declaration binding).
func (rt *Runtime) globalDeclare(name string) {
	rt.globals = append(rt.globals, globalEntry{Name: name, Value: nil})
}

// globalGet returns the value of the first global matching name (§4.4
// GetFree). It reports false when no global has that name or when that
// first match holds Null; later entries with the same name are not
// searched.
func (rt *Runtime) globalGet(name string) (value.Value, bool) {
	for _, g := range rt.globals {
		if g.Name == name {
			if g.Value == nil {
				return nil, false
			}
			return g.Value, true
		}
	}
	return nil, false
}

// globalSet overwrites the first matching global, or appends a new
// binding if none exists (§4.4 SetFree).
func (rt *Runtime) globalSet(name string, v value.Value) {
	for i := range rt.globals {
		if rt.globals[i].Name == name {
			rt.globals[i].Value = v
			return
		}
	}
	rt.globals = append(rt.globals, globalEntry{Name: name, Value: v})
}
