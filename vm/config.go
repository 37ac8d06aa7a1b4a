package vm

import (
	"github.com/hexaflex/chip8/devices/fffe/clock"
	"github.com/hexaflex/chip8/devices/fffe/cpu"
)

// Config defines emulator configuration.
type Config struct {
	CPURate   int              // Instruction rate in herz. This is also the clock rate.
	TimerRate int              // Delay and sound timer rate in herz.
	Trace     cpu.TraceFunc    // Optional instruction trace handler.
	Random    cpu.RandomSource // Optional source for the RND instruction.
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() *Config {
	return &Config{
		CPURate:   clock.CPURate,
		TimerRate: clock.TimerRate,
	}
}
