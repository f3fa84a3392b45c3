// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package bus defines the system bus of the risc16 machine.
//
// The bus is a plain holder of the address, data and control lines. It does
// not validate its lines; any combination of control bits can be set. A
// transfer only happens when a device such as memory operates on the bus.
package bus

import (
	"fmt"

	"github.com/ezrec/risc16/fixed"
)

// Control lines of the bus.
type Control struct {
	Read         bool // Set for a read from the device, clear for a write.
	MemorySelect bool // Set to select memory.
	WordSize     bool // Set for a 16-bit word transfer, clear for a byte.
}

func (ctl Control) String() string {
	dir := "write"
	if ctl.Read {
		dir = "read"
	}
	size := "byte"
	if ctl.WordSize {
		size = "word"
	}
	sel := "-"
	if ctl.MemorySelect {
		sel = "mem"
	}
	return fmt.Sprintf("%v %v %v", sel, dir, size)
}

// Bus is the system bus.
type Bus struct {
	Address fixed.Int // Address line, unsigned 16-bit.
	Data    fixed.Int // Data line, unsigned 16-bit.
	Control Control   // Control lines.
}

// NewBus creates a new bus with all lines clear.
func NewBus() (b *Bus) {
	b = &Bus{
		Address: fixed.NewUint16(0),
		Data:    fixed.NewUint16(0),
	}

	return
}

// String returns the state of all lines.
func (b *Bus) String() string {
	return fmt.Sprintf("address:%v data:%v control:%v", b.Address, b.Data, b.Control)
}
