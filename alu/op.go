package alu

// Op is an ALU operation.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_ADD = Op(0) // add
	OP_SUB = Op(1) // sub
	OP_NOT = Op(2) // not
	OP_AND = Op(3) // and
	OP_OR  = Op(4) // or
	OP_XOR = Op(5) // xor
	OP_INC = Op(6) // inc
	OP_DEC = Op(7) // dec
	OP_SHL = Op(8) // shl
	OP_SHR = Op(9) // shr
)

// Unary is true if the op only uses a single register.
func (op Op) Unary() bool {
	switch op {
	case OP_NOT, OP_INC, OP_DEC, OP_SHL, OP_SHR:
		return true
	}
	return false
}

// ParseOp finds the Op by its name.
func ParseOp(name string) (op Op, err error) {
	for op = OP_ADD; op <= OP_SHR; op++ {
		if op.String() == name {
			return
		}
	}

	err = ErrOpInvalid
	return
}
