// Package alu implements the arithmetic logic unit of the risc16 machine.
//
// The ALU has sixteen 16-bit registers (r0-r15) and a status register with
// zero, negative, carry and overflow flags. The status register is owned by
// the control unit and borrowed by the ALU.
//
// Every operation takes register indices. An index outside 0-15 turns the
// operation into a no-op: no register or flag changes and no error. The
// boolean result reports whether the operation was applied.
package alu
