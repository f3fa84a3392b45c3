package emulator

import (
	"errors"
	"log"

	"go.starlark.net/starlark"

	"github.com/ezrec/risc16/alu"
	"github.com/ezrec/risc16/bus"
	"github.com/ezrec/risc16/fixed"
)

type builtinFunc func(emu *Emulator, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

var _builtins = map[string]builtinFunc{
	"alu":          (*Emulator).builtinAlu,
	"reg":          (*Emulator).builtinReg,
	"set_reg":      (*Emulator).builtinSetReg,
	"flags":        (*Emulator).builtinFlags,
	"status":       (*Emulator).builtinStatus,
	"control":      (*Emulator).builtinControl,
	"set_control":  (*Emulator).builtinSetControl,
	"bus":          (*Emulator).builtinBus,
	"operate":      (*Emulator).builtinOperate,
	"data":         (*Emulator).builtinData,
	"read":         (*Emulator).builtinRead,
	"write":        (*Emulator).builtinWrite,
	"peek":         (*Emulator).builtinPeek,
	"state":        (*Emulator).builtinState,
	"reset":        (*Emulator).builtinReset,
	"reset_memory": (*Emulator).builtinResetMemory,
	"reset_alu":    (*Emulator).builtinResetAlu,
}

// makeBuiltins binds all builtins to the emulator.
func (emu *Emulator) makeBuiltins() (dict starlark.StringDict) {
	dict = starlark.StringDict{}
	for name, fn := range _builtins {
		dict[name] = starlark.NewBuiltin(name, func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if emu.Verbose {
				log.Printf("emulator: %v%v", b.Name(), args)
			}
			return fn(emu, b, args, kwargs)
		})
	}
	return
}

// alu(op, d, s=0): apply an ALU op, returns False if it was ignored.
func (emu *Emulator) builtinAlu(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	var d, s int
	err := starlark.UnpackArgs(fn.Name(), args, kwargs, "op", &name, "d", &d, "s?", &s)
	if err != nil {
		return nil, err
	}

	op, err := alu.ParseOp(name)
	if err != nil {
		return nil, errors.Join(err, errors.New(f("op %q", name)))
	}

	return starlark.Bool(emu.Cpu.Alu.Apply(op, d, s)), nil
}

// reg(r): ALU register value, None if r is out of range.
func (emu *Emulator) builtinReg(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var r int
	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &r)
	if err != nil {
		return nil, err
	}

	if r < 0 || r >= alu.REGISTERS {
		return starlark.None, nil
	}

	return starlark.MakeInt64(emu.Cpu.Alu.Register[r].Get()), nil
}

// set_reg(r, value): load an ALU register, without changing flags.
func (emu *Emulator) builtinSetReg(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var r, value int
	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 2, &r, &value)
	if err != nil {
		return nil, err
	}

	if r < 0 || r >= alu.REGISTERS {
		return starlark.False, nil
	}

	emu.Cpu.Alu.Register[r].Set(int64(value))

	return starlark.True, nil
}

// flags(): dict of the status flags.
func (emu *Emulator) builtinFlags(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 0)
	if err != nil {
		return nil, err
	}

	st := emu.Cpu.Control.Status
	dict := starlark.NewDict(4)
	for _, flag := range []struct {
		name string
		set  bool
	}{
		{"zero", st.Zero},
		{"negative", st.Negative},
		{"carry", st.Carry},
		{"overflow", st.Overflow},
	} {
		err = dict.SetKey(starlark.String(flag.name), starlark.Bool(flag.set))
		if err != nil {
			return nil, err
		}
	}

	return dict, nil
}

// status(): packed status register.
func (emu *Emulator) builtinStatus(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 0)
	if err != nil {
		return nil, err
	}

	return starlark.MakeInt(int(emu.Cpu.Control.Status.Value())), nil
}

// control(name): control unit register value.
func (emu *Emulator) builtinControl(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &name)
	if err != nil {
		return nil, err
	}

	reg, err := emu.Cpu.ControlRegister(name)
	if err != nil {
		return nil, err
	}

	return starlark.MakeInt64(reg.Get()), nil
}

// set_control(name, value): load a control unit register.
func (emu *Emulator) builtinSetControl(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	var value int
	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 2, &name, &value)
	if err != nil {
		return nil, err
	}

	reg, err := emu.Cpu.ControlRegister(name)
	if err != nil {
		return nil, err
	}

	reg.Set(int64(value))

	return starlark.None, nil
}

// bus(address=, data=, read=, select=, word=): set bus lines.
// Lines not named keep their current value.
func (emu *Emulator) builtinBus(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var address, data, read, sel, word starlark.Value
	err := starlark.UnpackArgs(fn.Name(), args, kwargs,
		"address?", &address,
		"data?", &data,
		"read?", &read,
		"select?", &sel,
		"word?", &word,
	)
	if err != nil {
		return nil, err
	}

	b := emu.Cpu.Bus
	if address != nil {
		value, err := starlark.AsInt32(address)
		if err != nil {
			return nil, err
		}
		b.Address.Set(int64(value))
	}
	if data != nil {
		value, err := starlark.AsInt32(data)
		if err != nil {
			return nil, err
		}
		b.Data.Set(int64(value))
	}
	if read != nil {
		b.Control.Read = bool(read.Truth())
	}
	if sel != nil {
		b.Control.MemorySelect = bool(sel.Truth())
	}
	if word != nil {
		b.Control.WordSize = bool(word.Truth())
	}

	return starlark.None, nil
}

// operate(): operate memory on the bus, returns False if not selected.
func (emu *Emulator) builtinOperate(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 0)
	if err != nil {
		return nil, err
	}

	return starlark.Bool(emu.Cpu.Memory.Operate()), nil
}

// data(): current value of the data line.
func (emu *Emulator) builtinData(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 0)
	if err != nil {
		return nil, err
	}

	return starlark.MakeInt64(emu.Cpu.Bus.Data.Get()), nil
}

// transfer drives the bus lines for a memory transfer and operates memory.
func (emu *Emulator) transfer(address int, data int, read bool, word bool) int64 {
	b := emu.Cpu.Bus
	b.Address.Set(int64(address))
	if !read {
		b.Data.Set(int64(data))
	}
	b.Control = bus.Control{
		Read:         read,
		MemorySelect: true,
		WordSize:     word,
	}
	emu.Cpu.Memory.Operate()

	return b.Data.Get()
}

// read(address, word=False): read a byte or word from memory.
func (emu *Emulator) builtinRead(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var address int
	var word bool
	err := starlark.UnpackArgs(fn.Name(), args, kwargs, "address", &address, "word?", &word)
	if err != nil {
		return nil, err
	}

	return starlark.MakeInt64(emu.transfer(address, 0, true, word)), nil
}

// write(address, value, word=False): write a byte or word to memory.
func (emu *Emulator) builtinWrite(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var address, value int
	var word bool
	err := starlark.UnpackArgs(fn.Name(), args, kwargs, "address", &address, "value", &value, "word?", &word)
	if err != nil {
		return nil, err
	}

	emu.transfer(address, value, false, word)

	return starlark.None, nil
}

// peek(address): memory cell, bypassing the bus.
func (emu *Emulator) builtinPeek(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var address int
	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &address)
	if err != nil {
		return nil, err
	}

	// Masked the same way as the bus address line.
	cell := fixed.NewUint16(int64(address))

	return starlark.MakeInt(int(emu.Cpu.Memory.Peek(uint16(cell.Get())))), nil
}

// state(): CPU state as a string.
func (emu *Emulator) builtinState(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 0)
	if err != nil {
		return nil, err
	}

	return starlark.String(emu.Cpu.String()), nil
}

// reset(): CPU reset, which only clears the status flags.
func (emu *Emulator) builtinReset(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 0)
	if err != nil {
		return nil, err
	}

	emu.Cpu.Reset()

	return starlark.None, nil
}

// reset_memory(): zero all memory cells.
func (emu *Emulator) builtinResetMemory(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 0)
	if err != nil {
		return nil, err
	}

	emu.Cpu.Memory.Reset()

	return starlark.None, nil
}

// reset_alu(): zero all ALU registers.
func (emu *Emulator) builtinResetAlu(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 0)
	if err != nil {
		return nil, err
	}

	emu.Cpu.Alu.Reset()

	return starlark.None, nil
}
