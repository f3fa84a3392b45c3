package emulator

import (
	"bufio"
	"fmt"
	"io"

	"go.starlark.net/repl"
	"go.starlark.net/starlark"
)

const _monitor_file = "<monitor>"

// Monitor reads statements and expressions from in, and runs them.
// Compound statements continue over following lines, up to a blank line.
// Expression values are written to out. Errors are reported to out and do
// not stop the monitor. Returns at the end of input.
func (emu *Emulator) Monitor(in io.Reader, out io.Writer, prompt string) (err error) {
	scanner := bufio.NewScanner(in)

	for {
		linePrompt := prompt
		eof := false
		readline := func() ([]byte, error) {
			if len(linePrompt) != 0 {
				fmt.Fprint(out, linePrompt)
				linePrompt = "... "
			}
			if !scanner.Scan() {
				eof = true
				return nil, io.EOF
			}
			return []byte(scanner.Text() + "\n"), nil
		}

		file, parse_err := fileOptions.ParseCompoundStmt(_monitor_file, readline)
		if parse_err != nil && eof {
			// Incomplete input at the end is discarded.
			break
		}
		if parse_err != nil {
			fmt.Fprintf(out, "%v\n", runtimeError(_monitor_file, parse_err))
			continue
		}

		value, run_err := emu.run(file)
		if run_err != nil {
			fmt.Fprintf(out, "%v\n", run_err)
			continue
		}
		if value != starlark.None {
			fmt.Fprintln(out, value.String())
		}
	}

	if len(prompt) != 0 {
		fmt.Fprintln(out)
	}

	err = scanner.Err()
	return
}

// REPL runs an interactive read-eval-print loop on the terminal, with line
// editing and history, against the same globals as Exec and Monitor.
func (emu *Emulator) REPL() {
	emu.Cpu.SetVerbose(emu.Verbose)

	repl.REPLOptions(&fileOptions, emu.thread(_monitor_file), emu.globals)
}
