package intrinsics

import "merc/internal/value"

// All returns every native function the driver registers at startup
// (§4.5's ~30 operator/builtin intrinsics, plus the dbconnect/dbquery/
// dbexecute/dbclose host extension).
func All() []*value.Function {
	out := append([]*value.Function{}, operators()...)
	out = append(out, funcs()...)
	out = append(out, dbFuncs()...)
	return out
}
