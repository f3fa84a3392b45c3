package emulator

import (
	"bytes"
	"errors"
	"maps"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.starlark.net/starlark"

	"github.com/ezrec/risc16/alu"
	"github.com/ezrec/risc16/cpu"
	"github.com/ezrec/risc16/internal"
)

func newTestEmulator() (emu *Emulator, output *bytes.Buffer) {
	emu = NewEmulator()
	output = &bytes.Buffer{}
	emu.Output = output
	return
}

func doRun(t *testing.T, emu *Emulator, program []string) {
	err := emu.Exec("test.star", strings.Join(program, "\n"))
	if err != nil {
		t.Fatalf("%v", err)
	}
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.NotNil(emu.Cpu.Alu)
	assert.NotNil(emu.Cpu.Memory)
	assert.Empty(emu.Globals())
}

func TestEmulatorAlu(t *testing.T) {
	assert := assert.New(t)

	emu, _ := newTestEmulator()
	program := []string{
		"set_reg(0, 0x7fff)",
		"set_reg(1, 1)",
		"alu('add', 0, 1)",
		"add_flags = flags()",
		"set_reg(2, 0xffff)",
		"alu('inc', 2)",
		"inc_flags = flags()",
		"alu('dec', 3)",
		"alu('shl', 1)",
		"alu('xor', 4, 4)",
	}

	doRun(t, emu, program)

	a := emu.Cpu.Alu
	assert.Equal(int64(0x8000), a.Register[0].Get())
	assert.Equal(int64(0x0002), a.Register[1].Get())
	assert.Equal(int64(0x0000), a.Register[2].Get())
	assert.Equal(int64(0xffff), a.Register[3].Get())
	assert.Equal(alu.Status{Zero: true}, emu.Cpu.Control.Status)

	globals := emu.Globals()
	assert.Equal(`{"zero": False, "negative": True, "carry": False, "overflow": True}`, globals["add_flags"].String())
	assert.Equal(`{"zero": True, "negative": False, "carry": True, "overflow": False}`, globals["inc_flags"].String())
}

func TestEmulatorIgnoredIndex(t *testing.T) {
	assert := assert.New(t)

	emu, output := newTestEmulator()
	program := []string{
		"set_reg(0, 5)",
		"print(alu('add', 16, 0))",
		"print(alu('not', REGISTERS))",
		"print(alu('add', 0, 0))",
		"print(reg(16))",
		"print(set_reg(16, 1))",
	}

	doRun(t, emu, program)

	assert.Equal("False\nFalse\nTrue\nNone\nFalse\n", output.String())
	assert.Equal(int64(10), emu.Cpu.Alu.Register[0].Get())
}

func TestEmulatorMemory(t *testing.T) {
	assert := assert.New(t)

	emu, output := newTestEmulator()
	program := []string{
		"write(0x0010, 0x1234, word=True)",
		"print('%x %x' % (peek(0x10), peek(0x11)))",
		"print('%x' % read(0x0010, word=True))",
		"write(5, 0xab)",
		"print(read(5), peek(6))",
		"write(ADDRESS_MASK, 0xa55a, word=True)",
		"print(peek(0), read(0xffff, word=True))",
		"print(peek(0x10010) == peek(0x10), peek(-1) == peek(0xffff))",
	}

	doRun(t, emu, program)

	assert.Equal("34 12\n1234\n171 0\n165 42330\nTrue True\n", output.String())
}

func TestEmulatorBus(t *testing.T) {
	assert := assert.New(t)

	emu, output := newTestEmulator()
	program := []string{
		"bus(address=0x100, data=0xbeef, word=True)",
		"print(operate())", // not selected
		"print(peek(0x100))",
		"bus(select=True)",
		"print(operate())",
		"bus(data=0, read=True)",
		"operate()",
		"print('%x' % data())",
	}

	doRun(t, emu, program)

	assert.Equal("False\n0\nTrue\nbeef\n", output.String())
	assert.True(emu.Cpu.Bus.Control.Read)
	assert.True(emu.Cpu.Bus.Control.MemorySelect)
	assert.True(emu.Cpu.Bus.Control.WordSize)
}

func TestEmulatorControl(t *testing.T) {
	assert := assert.New(t)

	emu, output := newTestEmulator()
	program := []string{
		"set_control('pc', 0x10100)",
		"set_control('sp', -2)",
		"print(control('pc'), control('sp'))",
	}

	doRun(t, emu, program)

	assert.Equal("256 65534\n", output.String())
	assert.Equal(int64(0x100), emu.Cpu.Control.ProgramCounter.Get())
}

func TestEmulatorReset(t *testing.T) {
	assert := assert.New(t)

	emu, output := newTestEmulator()
	program := []string{
		"alu('dec', 0)",
		"write(0x20, 0x77)",
		"set_control('pc', 0x42)",
		"print(status() == STATUS_CARRY | STATUS_NEGATIVE)",
		"reset()",
		"print(status(), reg(0), peek(0x20), control('pc'))",
		"reset_alu()",
		"print(reg(0), peek(0x20))",
		"reset_memory()",
		"print(peek(0x20))",
	}

	doRun(t, emu, program)

	assert.Equal("True\n0 65535 119 66\n0 119\n0\n", output.String())
}

func TestEmulatorGlobals(t *testing.T) {
	assert := assert.New(t)

	emu, output := newTestEmulator()

	doRun(t, emu, []string{"base = 0x40", "def poke(a, v):", "    write(base + a, v)"})
	doRun(t, emu, []string{"poke(1, 0x99)", "print(peek(0x41))"})

	assert.Equal("153\n", output.String())

	emu.Reset()
	assert.Empty(emu.Globals())
}

func TestEmulatorLoop(t *testing.T) {
	assert := assert.New(t)

	emu, _ := newTestEmulator()
	program := []string{
		"for n in range(8):",
		"    write(n * 2, 0x100 + n, word=True)",
		"total = 0",
		"for n in range(8):",
		"    total += read(n * 2, word=True)",
	}

	doRun(t, emu, program)

	assert.Equal("2076", emu.Globals()["total"].String())
}

func TestEmulatorErrors(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name    string
		program []string
		lineno  int
		is      error
	}{
		{"op", []string{"set_reg(0, 1)", "", "alu('mul', 0, 1)"}, 3, alu.ErrOpInvalid},
		{"control", []string{"control('xx')"}, 1, cpu.ErrRegisterInvalid},
		{"syntax", []string{"x = 1", "y = )"}, 2, nil},
		{"undefined", []string{"x = 1", "launch()"}, 2, nil},
		{"nested", []string{"def f():", "    alu('bad', 0)", "f()"}, 2, alu.ErrOpInvalid},
	}

	for _, entry := range table {
		emu, _ := newTestEmulator()
		err := emu.Exec("test.star", strings.Join(entry.program, "\n"))
		if !assert.Error(err, entry.name) {
			continue
		}

		var rerr *ErrRuntime
		if assert.True(errors.As(err, &rerr), entry.name) {
			assert.Equal(entry.lineno, rerr.LineNo, entry.name)
		}
		if entry.is != nil {
			assert.ErrorIs(err, entry.is, entry.name)
		}
	}
}

func TestEmulatorDefines(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	defines := map[string]int{}
	for key, value := range emu.Defines() {
		defines[key] = value
	}

	assert.Equal(5, defines["CONTROL_REGISTERS"])
	assert.Equal(internal.IterSeq2Len(emu.Cpu.Control.Registers()), defines["CONTROL_REGISTERS"])
	assert.Equal(16, defines["REGISTERS"])
	assert.Equal(0x10000, defines["MEMORY_SIZE"])
	assert.Equal(8, defines["STATUS_OVERFLOW"])
}

func TestEmulatorMonitor(t *testing.T) {
	assert := assert.New(t)

	emu, output := newTestEmulator()

	input := strings.Join([]string{
		"# comment",
		"set_reg(0, 0x7fff)",
		"alu('inc', 0)",
		"",
		"reg(0)",
		"flags()['overflow']",
		"x = 5",
		"x + 1",
		"x = = 1",
		"print('hi')",
	}, "\n")

	err := emu.Monitor(strings.NewReader(input), output, "")
	assert.NoError(err)

	lines := strings.Split(strings.TrimSuffix(output.String(), "\n"), "\n")
	if assert.Equal(7, len(lines), output.String()) {
		assert.Equal("True", lines[0])
		assert.Equal("True", lines[1])
		assert.Equal("32768", lines[2])
		assert.Equal("True", lines[3])
		assert.Equal("6", lines[4])
		assert.Contains(lines[5], "line 1")
		assert.Equal("hi", lines[6])
	}
}

func TestEmulatorMonitorPrompt(t *testing.T) {
	assert := assert.New(t)

	emu, output := newTestEmulator()

	err := emu.Monitor(strings.NewReader("1 + 1\n"), output, "> ")
	assert.NoError(err)
	assert.Equal("> 2\n> \n", output.String())
}

func TestEmulatorMonitorGlobals(t *testing.T) {
	assert := assert.New(t)

	emu, output := newTestEmulator()

	doRun(t, emu, []string{"count = 0"})

	input := strings.Join([]string{
		"count += 1",
		"count += 1",
		"count",
		"def f(n):",
		"    return n * 7",
		"",
		"f(count)",
		"for n in range(3):",
		"    write(n, n + 1)",
		"",
		"peek(2)",
	}, "\n")

	err := emu.Monitor(strings.NewReader(input), output, "")
	assert.NoError(err)
	assert.Equal("2\n14\n3\n", output.String())

	err = emu.Exec("more.star", "count += f(1)")
	assert.NoError(err)
	assert.Equal("9", emu.Globals()["count"].String())
}

func TestEmulatorMonitorContinuation(t *testing.T) {
	assert := assert.New(t)

	emu, output := newTestEmulator()

	err := emu.Monitor(strings.NewReader("def f():\n    return 7\n\nf()\n"), output, "> ")
	assert.NoError(err)
	assert.Equal("> ... ... > 7\n> \n", output.String())
}

func TestEmulatorEval(t *testing.T) {
	assert := assert.New(t)

	emu, _ := newTestEmulator()

	value, err := emu.Eval("total = 3")
	assert.NoError(err)
	assert.Equal(starlark.None, value)

	value, err = emu.Eval("total += REGISTERS")
	assert.NoError(err)
	assert.Equal(starlark.None, value)

	value, err = emu.Eval("total")
	assert.NoError(err)
	assert.Equal("19", value.String())

	_, err = emu.Eval("missing + 1")
	var rerr *ErrRuntime
	if assert.True(errors.As(err, &rerr)) {
		assert.Equal(1, rerr.LineNo)
	}

	assert.Equal([]string{"total"}, slices.Collect(maps.Keys(emu.Globals())))
}
