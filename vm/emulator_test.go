package vm

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexaflex/chip8/devices/fffe/cpu"
	"github.com/hexaflex/chip8/devices/fffe/display"
	"github.com/hexaflex/chip8/devices/fffe/memory"
)

func TestRunLoop(t *testing.T) {
	//   CLS
	//   LD VA, 02
	//   JMP 200

	e := newEmulator(t, 0x00e0, 0x6a02, 0x1200)
	cycleCPU(t, e, 3)

	s := e.State()
	assert.Equal(t, byte(2), s.CPU.V[0xa])
	assert.Equal(t, uint16(0x200), s.CPU.PC)
	assert.Equal(t, uint64(3), s.CPU.InstructionCycles)
}

func TestDrawGlyph(t *testing.T) {
	//   LD I, 000
	//   DRW V0, V0, 5
	//   DRW V0, V0, 5

	e := newEmulator(t, 0xa000, 0xd005, 0xd005)
	cycleCPU(t, e, 2)

	fb := e.Framebuffer()
	require.Len(t, fb, display.PixelCount)

	// Glyph 0: F0 90 90 90 F0
	for x := 0; x < 4; x++ {
		assert.True(t, fb[x], "top row x=%d", x)
		assert.True(t, fb[4*display.Width+x], "bottom row x=%d", x)
	}
	assert.True(t, fb[display.Width])
	assert.False(t, fb[display.Width+1])
	assert.True(t, fb[display.Width+3])
	assert.False(t, fb[4])
	assert.Equal(t, byte(0), e.State().CPU.V[0xf])

	cycleCPU(t, e, 1)

	for i, on := range e.Framebuffer() {
		require.False(t, on, "pixel %d", i)
	}
	assert.Equal(t, byte(1), e.State().CPU.V[0xf])
}

func TestAddOverflow(t *testing.T) {
	//   LD V0, FF
	//   LD V1, 01
	//   ADD V0, V1

	e := newEmulator(t, 0x60ff, 0x6101, 0x8014)
	cycleCPU(t, e, 3)

	s := e.State()
	assert.Equal(t, byte(0), s.CPU.V[0])
	assert.Equal(t, byte(1), s.CPU.V[0xf])
}

func TestSubNoBorrow(t *testing.T) {
	//   LD V0, 05
	//   LD V1, 03
	//   SUB V0, V1

	e := newEmulator(t, 0x6005, 0x6103, 0x8015)
	cycleCPU(t, e, 3)

	s := e.State()
	assert.Equal(t, byte(2), s.CPU.V[0])
	assert.Equal(t, byte(1), s.CPU.V[0xf])
}

func TestKeyWait(t *testing.T) {
	//   LD V0, KEY
	//   JMP 202

	e := newEmulator(t, 0xf00a, 0x1202)
	cycleCPU(t, e, 5)
	assert.Equal(t, uint16(0x200), e.State().CPU.PC)

	require.NoError(t, e.SetKey(7, true))
	cycleCPU(t, e, 1)

	s := e.State()
	assert.Equal(t, byte(7), s.CPU.V[0])
	assert.Equal(t, uint16(0x202), s.CPU.PC)
	assert.True(t, s.Keypad[7])

	assert.Error(t, e.SetKey(16, true))
}

func TestTimers(t *testing.T) {
	//   LD V0, 10
	//   LD DT, V0
	//   LD ST, V0
	//   JMP 206

	e := newEmulator(t, 0x6010, 0xf015, 0xf018, 0x1206)
	cycleCPU(t, e, 3)

	s := e.State()
	require.Equal(t, byte(0x10), s.CPU.DT)
	require.Equal(t, byte(0x10), s.CPU.ST)
	assert.True(t, e.Beep())

	for i := 0; i < 0x10; i++ {
		require.NoError(t, e.CycleUntilTimer())
	}

	s = e.State()
	assert.Equal(t, byte(0), s.CPU.DT)
	assert.Equal(t, byte(0), s.CPU.ST)
	assert.False(t, e.Beep())
}

func TestCycleUntilTimerRate(t *testing.T) {
	//   JMP 200

	e := newEmulator(t, 0x1200)
	for i := 0; i < 60; i++ {
		require.NoError(t, e.CycleUntilTimer())
	}

	s := e.State()
	assert.Equal(t, uint64(60), s.CPU.TimerCycles)
	assert.Equal(t, uint64(500), s.CPU.InstructionCycles)
}

func TestFaultStopsCycling(t *testing.T) {
	//   RET

	e := newEmulator(t, 0x00ee)

	err := e.CycleUntilCPU()
	require.True(t, errors.Is(err, cpu.ErrStackUnderflow), "%v", err)
	assert.True(t, e.State().CPU.Halted)

	ticks := e.State().Ticks
	assert.Equal(t, err, e.CycleUntilTimer())
	assert.Equal(t, ticks, e.State().Ticks)

	require.NoError(t, e.Reset())
	assert.False(t, e.State().CPU.Halted)
	assert.Equal(t, uint64(0), e.State().Ticks)
}

func TestReset(t *testing.T) {
	//   LD V0, 33
	//   LD I, 300
	//   LD [I], V0
	//   CLS

	e := newEmulator(t, 0x6033, 0xa300, 0xf055, 0x00e0)
	cycleCPU(t, e, 3)
	require.Equal(t, byte(0x33), e.State().Memory[0x300])

	require.NoError(t, e.Reset())

	s := e.State()
	assert.Equal(t, byte(0), s.Memory[0x300])
	assert.Equal(t, byte(0), s.CPU.V[0])
	assert.Equal(t, uint16(memory.ProgramStart), s.CPU.PC)
	assert.Equal(t, []byte{0x60, 0x33}, s.Memory[0x200:0x202])
	assert.Equal(t, memory.Font[:], s.Memory[:len(memory.Font)])
}

func TestCapacity(t *testing.T) {
	_, err := New(make([]byte, memory.ProgramCapacity+1), nil)
	assert.True(t, errors.Is(err, memory.ErrCapacity), "%v", err)

	_, err = New(make([]byte, memory.ProgramCapacity), nil)
	assert.NoError(t, err)
}

func TestRates(t *testing.T) {
	e, err := New(nil, &Config{CPURate: 700, TimerRate: 50})
	require.NoError(t, err)

	assert.Equal(t, 700, e.ClockRate())
	assert.Equal(t, 50, e.TimerRate())
}

func TestInvalidConfig(t *testing.T) {
	_, err := New(nil, &Config{CPURate: 0, TimerRate: 60})
	assert.Error(t, err)
}

func TestDisassemble(t *testing.T) {
	e := newEmulator(t, 0x00e0, 0x6a02, 0x1200)

	instr, err := e.Disassemble(0x202)
	require.NoError(t, err)
	assert.Equal(t, 0x202, instr.IP)
	assert.Equal(t, "LD VA, 02", instr.String())

	_, err = e.Disassemble(memory.Size - 1)
	assert.Error(t, err)
}

func TestFramebufferRGBA(t *testing.T) {
	//   LD I, 000
	//   DRW V0, V0, 1

	e := newEmulator(t, 0xa000, 0xd001)
	cycleCPU(t, e, 2)

	rgba := e.FramebufferRGBA(ColorOn, ColorOff)
	require.Len(t, rgba, display.PixelCount*4)
	assert.Equal(t, ColorOn[:], rgba[0:4])
	assert.Equal(t, ColorOff[:], rgba[4*4:5*4])
}

func TestTrace(t *testing.T) {
	var seen []string

	cfg := DefaultConfig()
	cfg.Trace = func(i *cpu.Instruction) {
		seen = append(seen, i.String())
	}

	e, err := New(words(0x6a02, 0x1200), cfg)
	require.NoError(t, err)
	cycleCPU(t, e, 3)

	assert.Equal(t, []string{"LD VA, 02", "JMP 200", "LD VA, 02"}, seen)
}

func newEmulator(t *testing.T, program ...uint16) *Emulator {
	t.Helper()

	e, err := New(words(program...), nil)
	require.NoError(t, err)
	return e
}

func cycleCPU(t *testing.T, e *Emulator, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		require.NoError(t, e.CycleUntilCPU())
	}
}

func words(program ...uint16) []byte {
	out := make([]byte, 0, len(program)*2)
	for _, w := range program {
		out = append(out, byte(w>>8), byte(w))
	}
	return out
}
