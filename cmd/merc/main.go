// cmd/merc/main.go
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"merc/internal/bytecode"
	"merc/internal/errors"
	"merc/internal/intrinsics"
	"merc/internal/interp"
	"merc/internal/value"
)

const VERSION = "0.1.0"

var commandAliases = map[string]string{
	"r": "run",
	"d": "disasm",
	"v": "version",
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		showUsage()
		return
	}

	cmd := args[0]
	if alias, ok := commandAliases[cmd]; ok {
		cmd = alias
	}

	switch cmd {
	case "--help", "-h", "help":
		showUsage()
	case "--version", "-v", "version":
		showVersion()
	case "run":
		if len(args) < 2 {
			fmt.Println("Usage: merc run <file> [argv...]")
			os.Exit(1)
		}
		runFile(args[1], args[2:])
	case "disasm":
		if len(args) < 2 {
			fmt.Println("Usage: merc disasm <file>")
			os.Exit(1)
		}
		disasmFile(args[1])
	default:
		fmt.Printf("Unknown command: %s\n", args[0])
		showUsage()
		os.Exit(1)
	}
}

func runFile(filename string, argv []string) {
	defer func() {
		if r := recover(); r != nil {
			if err, ok := r.(*errors.MercError); ok {
				fmt.Fprintf(os.Stderr, "%s\n", err.Error())
				os.Exit(1)
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", r)
			os.Exit(1)
		}
	}()

	insns, err := readInstructions(filename, "")
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	// argv[0] is the file path itself, per §6.
	items := make([]value.Value, len(argv)+1)
	items[0] = filename
	for i, a := range argv {
		items[i+1] = a
	}

	rt := interp.New(readInstructions, intrinsics.All(), value.NewList(items), filepath.Dir(filename))
	result := rt.Run(insns)
	os.Exit(int(value.ToInteger(result)))
}

// readInstructions is the InstructionReader the runtime calls both for
// the driver's own entry file and for every Import it executes: it
// resolves path relative to baseDir, reads the raw wire bytes, and
// decodes them (§6).
func readInstructions(path, baseDir string) ([]bytecode.Instruction, error) {
	full := path
	if baseDir != "" && !filepath.IsAbs(path) {
		full = filepath.Join(baseDir, path)
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return nil, err
	}
	return bytecode.Decode(data)
}

func disasmFile(filename string) {
	data, err := os.ReadFile(filename)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	insns, err := bytecode.Decode(data)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	for i, insn := range insns {
		fmt.Printf("%4d  %s\n", i, describe(insn))
	}
}

func describe(insn bytecode.Instruction) string {
	switch insn.Op {
	case bytecode.OpDefineFunction:
		return fmt.Sprintf("DefineFunction %s/%d", insn.Name, insn.ParamCount)
	case bytecode.OpCallKnown:
		return fmt.Sprintf("CallKnown %s/%d", insn.Name, insn.ArgCount)
	case bytecode.OpCallUnknown:
		return fmt.Sprintf("CallUnknown/%d", insn.ArgCount)
	case bytecode.OpIntegerConst:
		return fmt.Sprintf("IntegerConst %d", insn.Int)
	case bytecode.OpStringConst:
		return fmt.Sprintf("StringConst %q", insn.Str)
	case bytecode.OpBooleanConst:
		return fmt.Sprintf("BooleanConst %t", insn.Bool)
	case bytecode.OpGetLocal:
		return fmt.Sprintf("GetLocal %d", insn.LocalIdx)
	case bytecode.OpSetLocal:
		return fmt.Sprintf("SetLocal %d", insn.LocalIdx)
	case bytecode.OpListCount:
		return fmt.Sprintf("ListCount %d", insn.Count)
	default:
		return opName(insn.Op)
	}
}

func opName(op bytecode.Op) string {
	names := map[bytecode.Op]string{
		bytecode.OpImport:         "Import",
		bytecode.OpStartBlock:     "StartBlock",
		bytecode.OpEndBlock:       "EndBlock",
		bytecode.OpReturn:         "Return",
		bytecode.OpNullConst:      "NullConst",
		bytecode.OpDrop:           "Drop",
		bytecode.OpIf:             "If",
		bytecode.OpLoop:           "Loop",
		bytecode.OpBreakIfNot:     "BreakIfNot",
		bytecode.OpGlobal:         "Global",
		bytecode.OpGetFree:        "GetFree",
		bytecode.OpSetFree:        "SetFree",
	}
	if n, ok := names[op]; ok {
		return n
	}
	return fmt.Sprintf("Op(%d)", op)
}

func showUsage() {
	fmt.Println("merc - bytecode execution core for a small dynamic scripting language")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  merc run <file> [argv...]   Run a compiled bytecode file       (alias: r)")
	fmt.Println("  merc disasm <file>          Print a decoded instruction stream (alias: d)")
	fmt.Println("  merc version                Show version                      (alias: v)")
}

func showVersion() {
	fmt.Printf("merc %s\n", VERSION)
}
