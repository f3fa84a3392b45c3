// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package memory implements the central memory of the risc16 machine.
//
// Memory is 64K of byte cells attached to a system bus. Transfers happen
// only when Operate is called, and are controlled by the bus control lines.
// Words are little-endian: the low byte at the address, the high byte at
// the address plus one. A word at 0xFFFF wraps its high byte to 0x0000.
package memory

import (
	"iter"
	"log"
	"maps"

	"github.com/ezrec/risc16/bus"
	"github.com/ezrec/risc16/fixed"
)

const (
	MEMORY_SIZE  = 0x10000 // Number of byte cells.
	ADDRESS_MASK = 0xffff  // Mask of a valid address.
)

var _memory_defines = map[string]int{
	"MEMORY_SIZE":  MEMORY_SIZE,
	"ADDRESS_MASK": ADDRESS_MASK,
}

// Memory is the central memory.
type Memory struct {
	Verbose bool // Set to enable verbose logging.

	Bus  *bus.Bus    // Bus the memory is attached to.
	Cell []fixed.Int // Memory cells, unsigned 8-bit.
}

// NewMemory creates a zeroed memory attached to a bus.
func NewMemory(b *bus.Bus) (mem *Memory) {
	mem = &Memory{
		Bus:  b,
		Cell: make([]fixed.Int, MEMORY_SIZE),
	}

	mem.Reset()

	return
}

// Defines for the memory.
func (mem *Memory) Defines() iter.Seq2[string, int] {
	return maps.All(_memory_defines)
}

// Reset zeroes every cell.
func (mem *Memory) Reset() {
	for n := range mem.Cell {
		mem.Cell[n] = fixed.NewUint8(0)
	}
}

// Peek returns a cell without using the bus.
func (mem *Memory) Peek(address uint16) uint8 {
	return uint8(mem.Cell[address].Get())
}

// Operate performs the transfer requested by the bus lines.
// Returns false, with no transfer, if memory is not selected.
func (mem *Memory) Operate() (ok bool) {
	ctl := mem.Bus.Control
	if !ctl.MemorySelect {
		return
	}

	address := uint16(mem.Bus.Address.Get())
	data := &mem.Bus.Data

	// The high byte of a word wraps at the top of memory.
	next := address + 1

	if ctl.Read {
		if ctl.WordSize {
			lo := mem.Cell[address]
			hi := mem.Cell[next]
			data.Set(lo.Or(hi.LShiftBy(8)))
		} else {
			data.Set(mem.Cell[address].Get())
		}
	} else {
		if ctl.WordSize {
			mem.Cell[address].Set(data.And(0xff))
			mem.Cell[next].Set(data.RShiftBy(8))
		} else {
			mem.Cell[address].Set(data.And(0xff))
		}
	}

	if mem.Verbose {
		log.Printf("memory: %v", mem.Bus)
	}

	return true
}
