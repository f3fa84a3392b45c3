// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package alu

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/risc16/fixed"
)

const (
	REGISTERS = 16 // Number of ALU registers.
)

var _alu_defines = map[string]int{
	"REGISTERS":       REGISTERS,
	"STATUS_ZERO":     int(STATUS_ZERO),
	"STATUS_NEGATIVE": int(STATUS_NEGATIVE),
	"STATUS_CARRY":    int(STATUS_CARRY),
	"STATUS_OVERFLOW": int(STATUS_OVERFLOW),
}

// Alu is the simulation context for the arithmetic logic unit.
type Alu struct {
	Verbose bool // Set to enable verbose logging.

	Register [REGISTERS]fixed.Int // Register bank, unsigned 16-bit.
	Status   *Status              // Status register, owned by the control unit.
}

// NewAlu creates a new ALU that updates the flags in status.
func NewAlu(status *Status) (alu *Alu) {
	alu = &Alu{
		Status: status,
	}

	alu.Reset()

	return
}

// Defines for the ALU.
func (alu *Alu) Defines() iter.Seq2[string, int] {
	return maps.All(_alu_defines)
}

// Reset zeroes all registers. Flags are not changed.
func (alu *Alu) Reset() {
	for n := range alu.Register {
		alu.Register[n] = fixed.NewUint16(0)
	}
}

// String returns the register bank as a string.
func (alu *Alu) String() (text string) {
	for n, reg := range alu.Register {
		sep := " "
		if n%4 == 3 {
			sep = "\n"
		}
		text += fmt.Sprintf("r%-2d: %04X%v", n, reg.Bits(), sep)
	}
	return
}

// valid checks that all register indices are in range.
func (alu *Alu) valid(op Op, regs ...int) bool {
	for _, r := range regs {
		if r < 0 || r >= REGISTERS {
			if alu.Verbose {
				log.Printf("alu: %v %v: register %d ignored", op, regs, r)
			}
			return false
		}
	}
	return true
}

// updateZeroAndNegative sets the zero and negative flags from register r.
func (alu *Alu) updateZeroAndNegative(r int) {
	alu.Status.Negative = alu.Register[r].Neg()
	alu.Status.Zero = alu.Register[r].Eq(0x0000)
}

func (alu *Alu) trace(op Op, r int) {
	if alu.Verbose {
		log.Printf("alu: %v r%d=%v %v", op, r, alu.Register[r], *alu.Status)
	}
}

// Add register s to register d.
func (alu *Alu) Add(d, s int) (ok bool) {
	if !alu.valid(OP_ADD, d, s) {
		return
	}

	rd, rs := &alu.Register[d], alu.Register[s]

	resc := fixed.NewUint32(rd.Add(rs.Get()))
	a, b := fixed.NewInt16(rd.Get()), fixed.NewInt16(rs.Get())
	res := fixed.NewInt32(a.Add(b.Get()))
	c := fixed.NewInt16(res.Get())

	rd.Set(res.Get())
	alu.Status.Carry = resc.Gt(0xFFFF)
	alu.Status.Overflow = !c.Eq(res.Get())
	alu.updateZeroAndNegative(d)
	alu.trace(OP_ADD, d)

	return true
}

// Sub subtracts register s from register d.
// Carry is set when there is no borrow.
func (alu *Alu) Sub(d, s int) (ok bool) {
	if !alu.valid(OP_SUB, d, s) {
		return
	}

	rd, rs := &alu.Register[d], alu.Register[s]

	a, b := fixed.NewInt16(rd.Get()), fixed.NewInt16(rs.Get())
	res := fixed.NewInt32(a.Sub(b.Get()))
	resc := fixed.NewInt32(rd.Add(rs.Twos()))

	rd.Set(res.Get())
	alu.Status.Carry = resc.Gt(0xFFFF)
	alu.Status.Overflow = !fixed.NewInt16(rd.Get()).Eq(res.Get())
	alu.updateZeroAndNegative(d)
	alu.trace(OP_SUB, d)

	return true
}

// Not complements register r.
func (alu *Alu) Not(r int) (ok bool) {
	if !alu.valid(OP_NOT, r) {
		return
	}

	rr := &alu.Register[r]
	rr.Set(rr.Not())
	alu.Status.Carry = false
	alu.Status.Overflow = false
	alu.updateZeroAndNegative(r)
	alu.trace(OP_NOT, r)

	return true
}

// And register s into register d.
func (alu *Alu) And(d, s int) (ok bool) {
	return alu.logical(OP_AND, d, s, fixed.Int.And)
}

// Or register s into register d.
func (alu *Alu) Or(d, s int) (ok bool) {
	return alu.logical(OP_OR, d, s, fixed.Int.Or)
}

// Xor register s into register d.
func (alu *Alu) Xor(d, s int) (ok bool) {
	return alu.logical(OP_XOR, d, s, fixed.Int.Xor)
}

func (alu *Alu) logical(op Op, d, s int, fn func(fixed.Int, int64) int64) (ok bool) {
	if !alu.valid(op, d, s) {
		return
	}

	rd := &alu.Register[d]
	rd.Set(fn(*rd, alu.Register[s].Get()))
	alu.Status.Carry = false
	alu.Status.Overflow = false
	alu.updateZeroAndNegative(d)
	alu.trace(op, d)

	return true
}

// Inc increments register r.
func (alu *Alu) Inc(r int) (ok bool) {
	if !alu.valid(OP_INC, r) {
		return
	}

	rr := &alu.Register[r]
	alu.Status.Carry = rr.Eq(0xFFFF)
	alu.Status.Overflow = rr.Eq(0x7FFF)
	rr.Set(rr.Add(0x0001))
	alu.updateZeroAndNegative(r)
	alu.trace(OP_INC, r)

	return true
}

// Dec decrements register r. Carry is always set.
func (alu *Alu) Dec(r int) (ok bool) {
	if !alu.valid(OP_DEC, r) {
		return
	}

	rr := &alu.Register[r]
	alu.Status.Carry = true
	alu.Status.Overflow = rr.Eq(0x8000)
	rr.Set(rr.Sub(0x0001))
	alu.updateZeroAndNegative(r)
	alu.trace(OP_DEC, r)

	return true
}

// LShift shifts register r left by one bit.
// Carry is set when the register was above 0x8000.
func (alu *Alu) LShift(r int) (ok bool) {
	if !alu.valid(OP_SHL, r) {
		return
	}

	rr := &alu.Register[r]
	alu.Status.Carry = rr.Gt(0x8000)
	alu.Status.Overflow = false
	rr.Set(rr.LShift())
	alu.updateZeroAndNegative(r)
	alu.trace(OP_SHL, r)

	return true
}

// RShift shifts register r right by one bit.
func (alu *Alu) RShift(r int) (ok bool) {
	if !alu.valid(OP_SHR, r) {
		return
	}

	rr := &alu.Register[r]
	alu.Status.Carry = false
	alu.Status.Overflow = false
	rr.Set(rr.RShift())
	alu.updateZeroAndNegative(r)
	alu.trace(OP_SHR, r)

	return true
}

// Apply performs op on register d, with s as the source register.
// Unary ops ignore s.
func (alu *Alu) Apply(op Op, d, s int) (ok bool) {
	switch op {
	case OP_ADD:
		ok = alu.Add(d, s)
	case OP_SUB:
		ok = alu.Sub(d, s)
	case OP_NOT:
		ok = alu.Not(d)
	case OP_AND:
		ok = alu.And(d, s)
	case OP_OR:
		ok = alu.Or(d, s)
	case OP_XOR:
		ok = alu.Xor(d, s)
	case OP_INC:
		ok = alu.Inc(d)
	case OP_DEC:
		ok = alu.Dec(d)
	case OP_SHL:
		ok = alu.LShift(d)
	case OP_SHR:
		ok = alu.RShift(d)
	}

	return
}
