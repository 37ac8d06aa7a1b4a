package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hexaflex/chip8/devices/fffe/clock"
	"github.com/hexaflex/chip8/devices/fffe/console"
)

// Config defines program configuration.
type Config struct {
	Program   string        // Path to the program file to load.
	CPURate   int           // Instruction rate in herz.
	TimerRate int           // Timer rate in herz.
	Hold      time.Duration // How long a key counts as held after it was typed.
	Bell      bool          // Ring the terminal bell while the buzzer sounds?
	Seed      int64         // Seed for the random number generator. Zero uses the current time.
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	c := Config{
		CPURate:   clock.CPURate,
		TimerRate: clock.TimerRate,
		Hold:      console.DefaultHold,
		Bell:      true,
	}

	flag.Usage = func() {
		fmt.Printf("%s [options] <program file>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.IntVar(&c.CPURate, "cpu-rate", c.CPURate, "Instructions executed per second.")
	flag.IntVar(&c.TimerRate, "timer-rate", c.TimerRate, "Delay and sound timer decrements per second.")
	flag.DurationVar(&c.Hold, "hold", c.Hold, "How long a typed key stays pressed.")
	flag.BoolVar(&c.Bell, "bell", c.Bell, "Ring the terminal bell when the buzzer starts.")
	flag.Int64Var(&c.Seed, "seed", c.Seed, "Random number generator seed. Zero seeds from the current time.")

	version := flag.Bool("version", false, "Display version information.")
	flag.Parse()

	if *version {
		fmt.Println(Version())
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	if c.CPURate < 1 || c.TimerRate < 1 {
		fmt.Fprintln(os.Stderr, "rates must be positive")
		os.Exit(1)
	}

	c.Program = flag.Arg(0)
	return &c
}
