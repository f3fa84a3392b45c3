// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator drives a risc16 CPU from Starlark scripts.
//
// Scripts call builtins that set bus lines, operate memory, and invoke ALU
// operations. All CPU defines (REGISTERS, MEMORY_SIZE, STATUS_* ...) are
// visible to scripts as integers. Globals persist across Exec calls.
package emulator

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"os"

	"go.starlark.net/resolve"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/risc16/cpu"
	"github.com/ezrec/risc16/internal"
)

// fileOptions allow top level loops, so scripts can be written as plain
// sequences of machine steps.
var fileOptions = syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
}

// Emulator state. CPU + script globals.
type Emulator struct {
	Verbose  bool      // If set, enables verbose logging.
	*cpu.Cpu           // Reference to the CPU simulation.
	Output   io.Writer // Destination of script print() calls.

	predeclared starlark.StringDict // Defines and builtins.
	globals     starlark.StringDict // Live module globals, predeclared included.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:    cpu.NewCpu(),
		Output: os.Stdout,
	}

	emu.predeclared = starlark.StringDict{}
	for key, value := range emu.Defines() {
		emu.predeclared[key] = starlark.MakeInt(value)
	}
	maps.Copy(emu.predeclared, emu.makeBuiltins())

	emu.globals = maps.Clone(emu.predeclared)

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, int] {
	emulator_defines := map[string]int{
		"CONTROL_REGISTERS": internal.IterSeq2Len(emu.Cpu.Control.Registers()),
	}

	return internal.IterSeq2Concat(maps.All(emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Reset the CPU and forget all script globals.
func (emu *Emulator) Reset() {
	emu.Cpu.SetVerbose(emu.Verbose)
	emu.Cpu.Reset()
	emu.globals = maps.Clone(emu.predeclared)
}

// Globals returns the script globals defined so far.
// Defines and builtins are only listed if a script rebound them.
func (emu *Emulator) Globals() (globals starlark.StringDict) {
	globals = starlark.StringDict{}
	for key, value := range emu.globals {
		if emu.predeclared[key] == value {
			continue
		}
		globals[key] = value
	}
	return
}

func (emu *Emulator) thread(filename string) *starlark.Thread {
	return &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(emu.Output, msg)
		},
	}
}

// Exec runs a script. src may be a string, []byte or io.Reader.
// Globals bound by the script, even one that fails part way, are kept.
func (emu *Emulator) Exec(filename string, src any) (err error) {
	if emu.Verbose {
		log.Printf("emulator: exec %v", filename)
	}

	file, err := fileOptions.Parse(filename, src, 0)
	if err != nil {
		err = runtimeError(filename, err)
		return
	}

	_, err = emu.run(file)
	return
}

// Eval runs a chunk of source, usually a single line. A chunk that is a
// lone expression returns its value, anything else is executed and
// returns None.
func (emu *Emulator) Eval(src string) (value starlark.Value, err error) {
	file, err := fileOptions.Parse(_monitor_file, src, 0)
	if err != nil {
		err = runtimeError(_monitor_file, err)
		return
	}

	value, err = emu.run(file)
	return
}

// run executes a parsed chunk against the live globals.
func (emu *Emulator) run(file *syntax.File) (value starlark.Value, err error) {
	emu.Cpu.SetVerbose(emu.Verbose)

	thread := emu.thread(file.Path)

	value = starlark.None
	if expr := soleExpr(file); expr != nil {
		value, err = starlark.EvalExprOptions(file.Options, thread, expr, emu.globals)
	} else {
		err = starlark.ExecREPLChunk(file, thread, emu.globals)
	}
	if err != nil {
		value = nil
		err = runtimeError(file.Path, err)
	}

	return
}

// soleExpr returns the expression of a chunk holding only an expression
// statement, or nil.
func soleExpr(file *syntax.File) syntax.Expr {
	if len(file.Stmts) != 1 {
		return nil
	}

	stmt, ok := file.Stmts[0].(*syntax.ExprStmt)
	if !ok {
		return nil
	}

	return stmt.X
}

// runtimeError wraps err with the line of filename it occurred on.
func runtimeError(filename string, err error) error {
	var lineno int32

	var serr syntax.Error
	var rerrs resolve.ErrorList
	var eerr *starlark.EvalError
	switch {
	case errors.As(err, &serr):
		lineno = serr.Pos.Line
	case errors.As(err, &rerrs) && len(rerrs) > 0:
		lineno = rerrs[0].Pos.Line
	case errors.As(err, &eerr):
		for n := len(eerr.CallStack) - 1; n >= 0; n-- {
			frame := eerr.CallStack[n]
			if frame.Pos.Filename() == filename {
				lineno = frame.Pos.Line
				break
			}
		}
	}

	return &ErrRuntime{LineNo: int(lineno), Err: err}
}
