// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"iter"
	"log"
	"strings"

	"github.com/ezrec/risc16/alu"
	"github.com/ezrec/risc16/bus"
	"github.com/ezrec/risc16/fixed"
	"github.com/ezrec/risc16/internal"
	"github.com/ezrec/risc16/memory"
)

// ControlUnit holds the special registers and the status register.
type ControlUnit struct {
	ProgramCounter      fixed.Int  // pc
	InstructionRegister fixed.Int  // ir
	AddressRegister     fixed.Int  // ar
	DataRegister        fixed.Int  // dr
	StackPointer        fixed.Int  // sp
	Status              alu.Status // Status flags, shared with the ALU.
}

// NewControlUnit creates a control unit with all registers zeroed.
func NewControlUnit() (cu *ControlUnit) {
	cu = &ControlUnit{
		ProgramCounter:      fixed.NewUint16(0),
		InstructionRegister: fixed.NewUint16(0),
		AddressRegister:     fixed.NewUint16(0),
		DataRegister:        fixed.NewUint16(0),
		StackPointer:        fixed.NewUint16(0),
	}

	return
}

// Registers returns the special registers by their short names.
func (cu *ControlUnit) Registers() iter.Seq2[string, *fixed.Int] {
	return func(yield func(name string, reg *fixed.Int) bool) {
		regs := []struct {
			name string
			reg  *fixed.Int
		}{
			{"pc", &cu.ProgramCounter},
			{"ir", &cu.InstructionRegister},
			{"ar", &cu.AddressRegister},
			{"dr", &cu.DataRegister},
			{"sp", &cu.StackPointer},
		}
		for _, r := range regs {
			if !yield(r.name, r.reg) {
				return
			}
		}
	}
}

// Cpu is the simulation context for the central processing unit.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Control *ControlUnit   // Control unit, owner of the status register.
	Alu     *alu.Alu       // ALU, borrowing the control unit status register.
	Bus     *bus.Bus       // System bus.
	Memory  *memory.Memory // Memory attached to the system bus.
}

// NewCpu creates a new CPU, wiring the ALU to the control unit status
// register and the memory to the system bus.
func NewCpu() (cpu *Cpu) {
	cu := NewControlUnit()
	b := bus.NewBus()

	cpu = &Cpu{
		Control: cu,
		Alu:     alu.NewAlu(&cu.Status),
		Bus:     b,
		Memory:  memory.NewMemory(b),
	}

	return
}

// SetVerbose sets verbose logging on the CPU and all of its parts.
func (cpu *Cpu) SetVerbose(verbose bool) {
	cpu.Verbose = verbose
	cpu.Alu.Verbose = verbose
	cpu.Memory.Verbose = verbose
}

// Defines for the cpu.
func (cpu *Cpu) Defines() iter.Seq2[string, int] {
	return internal.IterSeq2Concat(cpu.Alu.Defines(), cpu.Memory.Defines())
}

// Reset the CPU state.
// - Clears the status register.
//
// TODO: clear the control unit registers, ALU and memory here once the
// machine has a boot sequence that depends on it.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Control.Status.Reset()
}

// ControlRegister returns the control unit register by its short name.
func (cpu *Cpu) ControlRegister(name string) (reg *fixed.Int, err error) {
	for key, r := range cpu.Control.Registers() {
		if key == strings.ToLower(name) {
			reg = r
			return
		}
	}

	err = ErrRegisterName(name)
	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	for name, reg := range cpu.Control.Registers() {
		text += fmt.Sprintf("% 5s: %04X\n", name, reg.Bits())
	}
	text += fmt.Sprintf("% 5s: %v\n", "flags", cpu.Control.Status)
	text += fmt.Sprintf("% 5s: %v\n", "bus", cpu.Bus)
	text += cpu.Alu.String()

	return
}
