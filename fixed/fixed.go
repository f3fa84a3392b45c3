// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package fixed

import (
	"fmt"
)

// Width is the number of bits in an Int.
type Width int

const (
	W8  = Width(8)  // Byte width.
	W16 = Width(16) // Word width.
	W32 = Width(32) // Double word width.
)

// Mask of all bits in the width.
func (w Width) Mask() int64 {
	return (int64(1) << w) - 1
}

// Flag is the sign bit of the width.
func (w Width) Flag() int64 {
	if w < 1 {
		return 0
	}
	return int64(1) << (w - 1)
}

// Sign is the sign correction policy of a signed Int.
type Sign int

const (
	SIGN_TWOS   = Sign(0) // Two's complement reading.
	SIGN_LEGACY = Sign(1) // -(bits ^ (mask - 1)) reading.
)

// TwosValue reads bits as a two's complement number of width w.
func TwosValue(bits int64, w Width) int64 {
	bits &= w.Mask()
	if (bits & w.Flag()) == w.Flag() {
		return bits - (w.Mask() + 1)
	}
	return bits
}

// LegacyValue reads bits with the -(bits ^ (mask - 1)) correction.
//
// The correction only agrees with two's complement at -1; for example
// 0x8000 reads as -32766 and 0xfffe reads as 0 at 16 bits.
func LegacyValue(bits int64, w Width) int64 {
	bits &= w.Mask()
	if (bits & w.Flag()) == w.Flag() {
		return -(bits ^ (w.Mask() - 1))
	}
	return bits
}

// Int is a fixed width integer. Use the New* constructors; the zero value
// has no width and always reads as zero.
type Int struct {
	Width  Width // Bit width.
	Signed bool  // Set if the value is read as signed.
	Sign   Sign  // Sign correction policy for signed values.

	n int64
}

// New creates an Int of the given width and signedness, set to n.
func New(w Width, signed bool, n int64) (i Int) {
	i = Int{Width: w, Signed: signed}
	i.Set(n)
	return
}

// NewInt8 creates a signed 8-bit Int.
func NewInt8(n int64) Int { return New(W8, true, n) }

// NewUint8 creates an unsigned 8-bit Int.
func NewUint8(n int64) Int { return New(W8, false, n) }

// NewInt16 creates a signed 16-bit Int.
func NewInt16(n int64) Int { return New(W16, true, n) }

// NewUint16 creates an unsigned 16-bit Int.
func NewUint16(n int64) Int { return New(W16, false, n) }

// NewInt32 creates a signed 32-bit Int.
func NewInt32(n int64) Int { return New(W32, true, n) }

// NewUint32 creates an unsigned 32-bit Int.
func NewUint32(n int64) Int { return New(W32, false, n) }

// Set the value, masked to the width and sign corrected if signed.
func (i *Int) Set(n int64) {
	i.n = n & i.Width.Mask()
	if i.Signed && i.Neg() {
		switch i.Sign {
		case SIGN_LEGACY:
			i.n = LegacyValue(i.n, i.Width)
		default:
			i.n = TwosValue(i.n, i.Width)
		}
	}
}

// Get the current (sign corrected) value.
func (i Int) Get() int64 {
	return i.n
}

// Bits returns the unsigned bit pattern of the value.
func (i Int) Bits() uint64 {
	return uint64(i.n & i.Width.Mask())
}

func (i Int) String() string {
	digits := int(i.Width) / 4
	return fmt.Sprintf("0x%0*x", digits, i.Bits())
}

// Add returns the native sum. The result is not masked.
func (i Int) Add(n int64) int64 {
	return i.n + n
}

// Sub returns the native difference. The result is not masked.
func (i Int) Sub(n int64) int64 {
	return i.n - n
}

// Neg is true if the sign bit is set.
func (i Int) Neg() bool {
	flag := i.Width.Flag()
	return flag != 0 && (i.n&flag) == flag
}

// Gt is true if the value is greater than n.
func (i Int) Gt(n int64) bool {
	return i.n > n
}

// Eq is true if the value equals n.
func (i Int) Eq(n int64) bool {
	return i.n == n
}

// Not returns the bitwise complement, masked to the width.
func (i Int) Not() int64 {
	return ^i.n & i.Width.Mask()
}

// Twos returns the two's complement negation, masked to the width.
func (i Int) Twos() int64 {
	return (^i.n + 1) & i.Width.Mask()
}

// And returns the bitwise and with n.
func (i Int) And(n int64) int64 {
	return i.n & n
}

// Or returns the bitwise or with n.
func (i Int) Or(n int64) int64 {
	return i.n | n
}

// Xor returns the bitwise exclusive or with n.
func (i Int) Xor(n int64) int64 {
	return i.n ^ n
}

// LShift returns the value shifted left by one bit, masked to the width.
func (i Int) LShift() int64 {
	return (i.n << 1) & i.Width.Mask()
}

// RShift returns the value shifted right by one bit.
func (i Int) RShift() int64 {
	return i.n >> 1
}

// LShiftBy returns the value shifted left by count bits. The result is not masked.
func (i Int) LShiftBy(count uint) int64 {
	return i.n << count
}

// RShiftBy returns the value shifted right by count bits.
func (i Int) RShiftBy(count uint) int64 {
	return i.n >> count
}
