package interp

import "merc/internal/bytecode"

// instrIter is a cursor over a flat instruction slice shared between the
// top-level walk (execInsns) and the block builder (buildBlock) — the
// same role Rust's `std::slice::Iter` plays in the original: build_block
// keeps advancing the very iterator the caller was already consuming.
type instrIter struct {
	insns []bytecode.Instruction
	pos   int
}

func (it *instrIter) next() (*bytecode.Instruction, bool) {
	if it.pos >= len(it.insns) {
		return nil, false
	}
	i := &it.insns[it.pos]
	it.pos++
	return i, true
}

// buildBlock folds a flat stream into nested blocks (§4.3). It is
// invoked the moment the top-level walk sees a StartBlock, and it keeps
// consuming insns off the shared iterator — including further nested
// StartBlocks, which just push more levels onto rt.blockStack rather
// than recursing — until it either registers a function (DefineFunction)
// and returns, or the iterator runs out.
func (rt *Runtime) buildBlock(it *instrIter) {
	rt.blockStack = append(rt.blockStack, &bytecode.Block{})

	for {
		insn, ok := it.next()
		if !ok {
			return
		}

		switch insn.Op {
		case bytecode.OpStartBlock:
			rt.blockStack = append(rt.blockStack, &bytecode.Block{})

		case bytecode.OpIf:
			elseBlock := insn.Else
			if elseBlock.Empty() {
				elseBlock = rt.popBlock()
			}
			thenBlock := insn.Then
			if thenBlock.Empty() {
				thenBlock = rt.popBlock()
			}
			rt.appendToTop(bytecode.Instruction{Op: bytecode.OpIf, Then: thenBlock, Else: elseBlock})

		case bytecode.OpLoop:
			body := insn.Body
			if body.Empty() {
				body = rt.popBlock()
			}
			rt.appendToTop(bytecode.Instruction{Op: bytecode.OpLoop, Body: body})

		case bytecode.OpDefineFunction:
			body := rt.popBlock()
			rt.registerFunctionBody(insn.Name, insn.ParamCount, body)
			return

		case bytecode.OpEndBlock:
			// Absorbed (§4.3): a bare block closer carries no content
			// of its own.

		default:
			rt.appendToTop(*insn)
		}
	}
}

func (rt *Runtime) popBlock() *bytecode.Block {
	n := len(rt.blockStack)
	if n == 0 {
		return &bytecode.Block{}
	}
	b := rt.blockStack[n-1]
	rt.blockStack = rt.blockStack[:n-1]
	return b
}

func (rt *Runtime) appendToTop(insn bytecode.Instruction) {
	n := len(rt.blockStack)
	if n == 0 {
		return
	}
	top := rt.blockStack[n-1]
	top.Insns = append(top.Insns, insn)
}
