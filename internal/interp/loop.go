package interp

import (
	"log"

	"merc/internal/bytecode"
	"merc/internal/errors"
	"merc/internal/value"
)

// execInsns is the interpreter loop (§4.4): it walks insns off the
// shared iterator, dispatching each one, and returns the unwind status
// that resulted (falling off the end yields UnwindNone).
func (rt *Runtime) execInsns(it *instrIter) Unwind {
	for {
		insn, ok := it.next()
		if !ok {
			return UnwindNone
		}

		switch insn.Op {
		case bytecode.OpImport:
			rt.execImport()

		case bytecode.OpDefineFunction, bytecode.OpEndBlock:
			// No-op at execution time: already consumed by buildBlock.

		case bytecode.OpStartBlock:
			rt.buildBlock(it)

		case bytecode.OpReturn:
			v, _ := rt.popChecked()
			rt.returnValue = v
			if len(rt.callStack) > 0 {
				rt.callStack = rt.callStack[:len(rt.callStack)-1]
			}
			return UnwindReturn

		case bytecode.OpCallKnown:
			fn := rt.lookupFunction(insn.Name)
			if fn == nil {
				panic(errors.NewRuntimeError("call to unknown function " + insn.Name).WithStack(rt.callStackTrace()))
			}
			rt.callFunction(fn, insn.ArgCount)

		case bytecode.OpCallUnknown:
			top := rt.Pop()
			fn, isFn := top.(*value.Function)
			if !isFn {
				panic(errors.NewRuntimeError("call to a non-function value: " + value.ToString(top)).WithStack(rt.callStackTrace()))
			}
			rt.callFunction(fn, insn.ArgCount)

		case bytecode.OpNullConst:
			rt.Push(nil)

		case bytecode.OpBooleanConst:
			rt.Push(insn.Bool)

		case bytecode.OpIntegerConst:
			rt.Push(insn.Int)

		case bytecode.OpStringConst:
			rt.Push(insn.Str)

		case bytecode.OpListCount:
			rt.execListCount(insn.Count)

		case bytecode.OpGetLocal:
			act := rt.currentActivation()
			if act == nil {
				rt.Push(nil)
			} else {
				rt.Push(act.GetLocal(insn.LocalIdx))
			}

		case bytecode.OpSetLocal:
			act := rt.currentActivation()
			if act != nil {
				act.SetLocal(insn.LocalIdx, rt.peek())
			}

		case bytecode.OpDrop:
			rt.Pop()

		case bytecode.OpIf:
			preHeight := rt.stackHeight()
			cond := rt.Pop()
			var unwind Unwind
			if value.Truthy(cond) {
				unwind = rt.execInsns(&instrIter{insns: insn.Then.Insns})
			} else {
				unwind = rt.execInsns(&instrIter{insns: insn.Else.Insns})
			}
			rt.truncateTo(preHeight - 1)
			if unwind != UnwindNone {
				return unwind
			}

		case bytecode.OpLoop:
			for {
				height := rt.stackHeight()
				sub := rt.execInsns(&instrIter{insns: insn.Body.Insns})
				rt.truncateTo(height)
				if sub == UnwindBreak {
					break
				}
				if sub == UnwindReturn {
					return UnwindReturn
				}
			}

		case bytecode.OpBreakIfNot:
			v, ok := rt.popChecked()
			truthy := true
			if ok {
				truthy = value.Truthy(v)
			}
			if !truthy {
				return UnwindBreak
			}

		case bytecode.OpGlobal:
			rt.globalDeclare(value.ToString(rt.Pop()))

		case bytecode.OpGetFree:
			rt.execGetFree()

		case bytecode.OpSetFree:
			rt.execSetFree()

		default:
			log.Printf("warning: unknown instruction op %d, skipping", insn.Op)
		}
	}
}

func (rt *Runtime) peek() value.Value {
	n := len(rt.valueStack)
	if n == 0 {
		return nil
	}
	return rt.valueStack[n-1]
}

func (rt *Runtime) popChecked() (value.Value, bool) {
	n := len(rt.valueStack)
	if n == 0 {
		return nil, false
	}
	v := rt.valueStack[n-1]
	rt.valueStack = rt.valueStack[:n-1]
	return v, true
}

func (rt *Runtime) execImport() {
	pathVal, ok := rt.popChecked()
	if !ok {
		panic(errors.NewRuntimeError("Import: no path value on stack").WithStack(rt.callStackTrace()))
	}
	path := stripQuotes(value.ToString(pathVal))
	insns, err := rt.reader(path, rt.basePath)
	if err != nil {
		panic(errors.NewImportError(path, err))
	}
	rt.executeTopLevel(insns)
}

// stripQuotes drops one leading and one trailing byte — the parser
// emits quoted paths, per §4.4.
func stripQuotes(s string) string {
	if len(s) < 2 {
		return ""
	}
	return s[1 : len(s)-1]
}

func (rt *Runtime) execListCount(n int) {
	items := make([]value.Value, n)
	found := 0
	for i := n - 1; i >= 0; i-- {
		v, ok := rt.popChecked()
		if !ok {
			continue
		}
		items[i] = v
		found++
	}
	if found < n {
		log.Printf("warning: tried making a %d-long list but only found %d values on the stack", n, found)
	}
	rt.Push(value.NewList(items))
}

func (rt *Runtime) execGetFree() {
	nameVal, ok := rt.popChecked()
	if !ok {
		rt.Push(nil)
		return
	}
	name := value.ToString(nameVal)
	if v, found := rt.globalGet(name); found {
		rt.Push(v)
		return
	}
	if fn := rt.lookupFunction(name); fn != nil {
		rt.Push(fn)
		return
	}
	rt.Push(nil)
}

func (rt *Runtime) execSetFree() {
	nameVal, ok := rt.popChecked()
	val := rt.Pop()
	if !ok {
		return
	}
	rt.globalSet(value.ToString(nameVal), val)
}

// callFunction invokes fn with argCount arguments already sitting on
// the value stack (§4.4 CallKnown/CallUnknown). For native functions
// the native fn_ptr manages the stack itself and argCount is ignored
// here. For bytecode functions a fresh activation is created with its
// own Locals, populated by popping argCount values in reverse so the
// first-pushed argument ends up at index 0.
func (rt *Runtime) callFunction(fn *value.Function, argCount int) {
	if !fn.IsBytecode() {
		fn.Native(rt)
		return
	}

	act := fn.Activation()
	args := make([]value.Value, argCount)
	for i := 0; i < argCount; i++ {
		args[argCount-1-i] = rt.Pop()
	}
	act.Locals = args

	rt.callStack = append(rt.callStack, act)
	preHeight := rt.stackHeight()
	rt.execInsns(&instrIter{insns: act.Body.Insns})
	ret := rt.returnValue
	rt.returnValue = nil
	rt.truncateTo(preHeight)
	rt.Push(ret)
}
