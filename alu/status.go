// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package alu

import (
	"strings"
)

// Status register bits, as packed by Status.Value.
const (
	STATUS_ZERO     = uint8(1 << 0)
	STATUS_NEGATIVE = uint8(1 << 1)
	STATUS_CARRY    = uint8(1 << 2)
	STATUS_OVERFLOW = uint8(1 << 3)
)

// Status is the status register of the CPU.
type Status struct {
	Zero     bool // Result was zero.
	Negative bool // Result has the sign bit set.
	Carry    bool // Unsigned overflow.
	Overflow bool // Signed overflow.
}

// Reset clears all flags.
func (st *Status) Reset() {
	st.FromValue(0)
}

// Value packs the flags into the STATUS_* bits.
func (st Status) Value() (v uint8) {
	if st.Zero {
		v |= STATUS_ZERO
	}
	if st.Negative {
		v |= STATUS_NEGATIVE
	}
	if st.Carry {
		v |= STATUS_CARRY
	}
	if st.Overflow {
		v |= STATUS_OVERFLOW
	}
	return
}

// FromValue sets the flags from the STATUS_* bits.
func (st *Status) FromValue(v uint8) {
	st.Zero = v&STATUS_ZERO == STATUS_ZERO
	st.Negative = v&STATUS_NEGATIVE == STATUS_NEGATIVE
	st.Carry = v&STATUS_CARRY == STATUS_CARRY
	st.Overflow = v&STATUS_OVERFLOW == STATUS_OVERFLOW
}

// String renders the flags as ZNCV, lower case when clear.
func (st Status) String() string {
	s := strings.Builder{}

	flags := []struct {
		set  bool
		name rune
	}{
		{st.Zero, 'Z'},
		{st.Negative, 'N'},
		{st.Carry, 'C'},
		{st.Overflow, 'V'},
	}
	for _, flag := range flags {
		if flag.set {
			s.WriteRune(flag.name)
		} else {
			s.WriteRune(flag.name + ('a' - 'A'))
		}
	}

	return s.String()
}
