// Package cpu implements the central processing unit of the risc16 machine.
//
// The CPU consists of a control unit holding the special registers (program
// counter, instruction register, address register, data register and stack
// pointer) and the status register, an ALU with sixteen general purpose
// registers, a system bus, and 64K of memory attached to the bus.
//
// There is no instruction set. Callers step the machine by hand: setting
// bus lines and operating the memory, or invoking ALU operations.
package cpu
