// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/bradleyjkemp/memviz"
	"golang.org/x/term"

	"github.com/ezrec/risc16/emulator"
)

func main() {
	var script string
	var interactive bool
	var verbose bool
	var dump bool
	var graph string

	flag.StringVar(&script, "e", "", ".star script to run, - for stdin")
	flag.BoolVar(&interactive, "i", false, "Run the monitor after the script")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&dump, "d", false, "Dump the CPU state on exit")
	flag.StringVar(&graph, "g", "", "Write a graphviz rendering of the control unit and ALU")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(script) == 0 && !interactive {
		interactive = true
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Reset()

	if len(script) != 0 {
		var inf io.Reader
		if script == "-" {
			inf = os.Stdin
		} else {
			file, err := os.Open(script)
			if err != nil {
				log.Fatalf("%v: %v", script, err)
			}
			defer file.Close()
			inf = file
		}

		err := emu.Exec(script, inf)
		if err != nil {
			log.Fatalf("%v: %v", script, err)
		}
	}

	if interactive {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			emu.REPL()
		} else {
			err := emu.Monitor(os.Stdin, os.Stdout, "")
			if err != nil {
				log.Fatal(err)
			}
		}
	}

	if dump {
		fmt.Print(emu.Cpu.String())
	}

	if len(graph) != 0 {
		ouf, err := os.Create(graph)
		if err != nil {
			log.Fatalf("%v: %v", graph, err)
		}
		defer ouf.Close()

		memviz.Map(ouf, emu.Cpu.Control, emu.Cpu.Alu)
	}
}
