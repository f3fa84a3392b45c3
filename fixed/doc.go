// Package fixed implements fixed-width integers for the risc16 machine.
//
// An Int holds a native value constrained to an 8, 16 or 32-bit width,
// either signed or unsigned. Every assignment is masked to the width, and
// signed values are read back through a sign correction policy.
//
// Arithmetic helpers (Add, Sub) return native, unmasked results so that
// callers can detect carry and overflow before storing the result back.
package fixed
