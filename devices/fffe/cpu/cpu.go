// Package cpu implements the CHIP-8 interpreter core.
package cpu

import (
	"log"
	"time"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/arch"
	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/fffe/clock"
	"github.com/hexaflex/chip8/devices/fffe/memory"
)

// TraceFunc represents a callback handler for debug trace output.
// It is called after each fetch, before the instruction executes.
type TraceFunc func(*Instruction)

// CPU implements the runtime.
type CPU struct {
	v      [arch.RegisterCount]byte // V0..VF. VF doubles as the flag register.
	i      uint16                   // Address register.
	pc     uint16                   // Program counter.
	stack  [arch.StackDepth]uint16  // Return addresses.
	sp     int                      // Number of entries on the stack.
	dt     byte                     // Delay timer.
	st     byte                     // Sound timer.
	clock  *clock.Divider           // Instruction rate divider.
	timer  *clock.Divider           // Timer rate divider.
	trace  TraceFunc                // Handler for debug trace output.
	rng    RandomSource             // Source for the RND instruction.
	instr  Instruction              // Decoded instruction data.
	sprite [15]byte                 // Scratch buffer for sprite rows.
	fault  error                    // Fatal error which halted the CPU.
}

// New creates a new CPU running instructions and timers at the given rates.
// Optionally with the given debug trace handler and random source.
func New(cpuRate, timerRate int, trace TraceFunc, rng RandomSource) *CPU {
	if trace == nil {
		trace = func(*Instruction) { /* nop */ }
	}

	if rng == nil {
		rng = NewTimeRand()
	}

	c := &CPU{
		clock: clock.NewDivider(cpuRate),
		timer: clock.NewDivider(timerRate),
		trace: trace,
		rng:   rng,
	}

	c.Startup()
	return c
}

// ID returns the cpu's device Id.
func (c *CPU) ID() devices.ID {
	return devices.NewID(devices.Manufacturer, 0x0001)
}

// Startup puts the cpu in its power-on state and clears any fault.
func (c *CPU) Startup() error {
	c.v = [arch.RegisterCount]byte{}
	c.i = 0
	c.pc = memory.ProgramStart
	c.stack = [arch.StackDepth]uint16{}
	c.sp = 0
	c.dt = 0
	c.st = 0
	c.clock.Reset()
	c.timer.Reset()
	c.fault = nil
	return nil
}

// Shutdown cleans up internal resources.
func (c *CPU) Shutdown() error {
	return nil
}

// Tick runs one instruction if the instruction divider reports a new cycle
// at the given virtual time, and decrements the timers if the timer
// divider does. Both may happen in the same tick.
func (c *CPU) Tick(now time.Duration, mem devices.Memory, disp devices.Display, keys devices.Keypad) error {
	if c.fault != nil {
		return c.fault
	}

	if c.clock.Tick(now) {
		if err := c.Step(mem, disp, keys); err != nil {
			return err
		}
	}

	if c.timer.Tick(now) {
		c.CycleTimers()
	}

	return nil
}

// Step performs a single fetch-decode-execute step.
// Any error it returns halts the cpu until the next Startup.
func (c *CPU) Step(mem devices.Memory, disp devices.Display, keys devices.Keypad) error {
	if c.fault != nil {
		return c.fault
	}

	if err := c.step(mem, disp, keys); err != nil {
		c.pc = uint16(c.instr.IP)
		c.fault = err
		log.Println(c.ID(), "halted:", err)
		return err
	}

	return nil
}

func (c *CPU) step(mem devices.Memory, disp devices.Display, keys devices.Keypad) error {
	word, err := mem.Fetch(int(c.pc))
	if err != nil {
		c.instr = Instruction{IP: int(c.pc), Opcode: arch.Unknown}
		return NewError(&c.instr, err)
	}

	c.instr = Decode(word)
	c.instr.IP = int(c.pc)

	instr := &c.instr
	v := &c.v
	x, y := instr.X, instr.Y

	c.trace(instr)
	c.pc += 2

	switch instr.Opcode {
	case arch.CLS:
		disp.Clear()
	case arch.RET:
		if c.sp == 0 {
			return NewError(instr, ErrStackUnderflow)
		}
		c.sp--
		c.pc = c.stack[c.sp]
	case arch.JMP:
		c.pc = instr.NNN
	case arch.CALL:
		if c.sp == len(c.stack) {
			return NewError(instr, ErrStackOverflow)
		}
		c.stack[c.sp] = c.pc
		c.sp++
		c.pc = instr.NNN

	case arch.SEI:
		c.skipIf(v[x] == instr.NN)
	case arch.SNEI:
		c.skipIf(v[x] != instr.NN)
	case arch.SE:
		c.skipIf(v[x] == v[y])
	case arch.SNE:
		c.skipIf(v[x] != v[y])
	case arch.SKP:
		c.skipIf(keys.Pressed(int(v[x] & 0xf)))
	case arch.SKNP:
		c.skipIf(!keys.Pressed(int(v[x] & 0xf)))

	case arch.LDI:
		v[x] = instr.NN
	case arch.ADDI:
		v[x] += instr.NN

	case arch.LD:
		v[x] = v[y]
	case arch.OR:
		v[x] |= v[y]
	case arch.AND:
		v[x] &= v[y]
	case arch.XOR:
		v[x] ^= v[y]
	// VF is written first, so the result wins when x is F.
	case arch.ADD:
		sum := uint16(v[x]) + uint16(v[y])
		v[arch.VF] = flag(sum > 0xff)
		v[x] = byte(sum)
	case arch.SUB:
		diff := v[x] - v[y]
		v[arch.VF] = flag(v[x] >= v[y])
		v[x] = diff
	case arch.SUBN:
		diff := v[y] - v[x]
		v[arch.VF] = flag(v[y] >= v[x])
		v[x] = diff
	case arch.SHR:
		out := v[x]
		v[arch.VF] = out & 1
		v[x] = out >> 1
	case arch.SHL:
		out := v[x]
		v[arch.VF] = out >> 7
		v[x] = out << 1

	case arch.LDA:
		c.i = instr.NNN
	case arch.JMPO:
		c.pc = instr.NNN + uint16(v[0])
	case arch.RND:
		v[x] = c.rng.NextByte() & instr.NN

	case arch.DRW:
		rows := c.sprite[:instr.N]
		if err := mem.Read(int(c.i), rows); err != nil {
			return NewError(instr, err)
		}
		v[arch.VF] = flag(disp.DrawSprite(int(v[x]), int(v[y]), rows))

	case arch.LDVDT:
		v[x] = c.dt
	case arch.LDDTV:
		c.dt = v[x]
	case arch.LDSTV:
		c.st = v[x]
	case arch.ADDA:
		c.i += uint16(v[x])
	case arch.LDFONT:
		c.i = uint16(memory.GlyphAddress(v[x]))
	case arch.BCD:
		digits := []byte{v[x] / 100, v[x] / 10 % 10, v[x] % 10}
		if err := mem.Write(int(c.i), digits); err != nil {
			return NewError(instr, err)
		}
	case arch.STORE:
		if err := mem.Write(int(c.i), v[:x+1]); err != nil {
			return NewError(instr, err)
		}
	case arch.LOAD:
		if err := mem.Read(int(c.i), v[:x+1]); err != nil {
			return NewError(instr, err)
		}

	case arch.LDKEY:
		// Rewinding keeps re-fetching this instruction until a key is down.
		if key, ok := keys.FirstPressed(); ok {
			v[x] = byte(key)
		} else {
			c.pc -= 2
		}

	default:
		return NewError(instr, errors.Wrapf(ErrUnknownOpcode, "%04x", instr.Word))
	}

	return nil
}

// CycleTimers decrements the delay and sound timers if they are not zero.
func (c *CPU) CycleTimers() {
	if c.dt > 0 {
		c.dt--
	}

	if c.st > 0 {
		c.st--
	}
}

// Beep returns true while the sound timer is running.
func (c *CPU) Beep() bool {
	return c.st > 0
}

// Fault returns the error which halted the cpu, or nil if it is running.
func (c *CPU) Fault() error {
	return c.fault
}

// InstructionCycles returns the instruction divider's cycle count.
func (c *CPU) InstructionCycles() uint64 {
	return c.clock.Cycles()
}

// Rates returns the instruction and timer rates in herz.
func (c *CPU) Rates() (cpuRate, timerRate int) {
	return c.clock.Rate(), c.timer.Rate()
}

// TimerCycles returns the timer divider's cycle count.
func (c *CPU) TimerCycles() uint64 {
	return c.timer.Cycles()
}

// skipIf skips the next instruction if cond holds.
func (c *CPU) skipIf(cond bool) {
	if cond {
		c.pc += 2
	}
}

func flag(v bool) byte {
	if v {
		return 1
	}
	return 0
}
