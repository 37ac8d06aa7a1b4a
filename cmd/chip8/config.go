package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hexaflex/chip8/devices/fffe/beeper"
	"github.com/hexaflex/chip8/devices/fffe/clock"
	"github.com/hexaflex/chip8/devices/fffe/screen"
)

// Config defines program configuration.
type Config struct {
	Program     string       // Path to the program file to load.
	ScaleFactor int          // Amount by which each pixel is scaled.
	Fullscreen  bool         // Run in fullscreen?
	CPURate     int          // Instruction rate in herz.
	TimerRate   int          // Timer rate in herz.
	PrintTrace  bool         // Print instruction trace data?
	Mute        bool         // Disable the buzzer?
	Tone        float64      // Buzzer frequency in herz.
	Foreground  screen.Color // Color of lit pixels.
	Background  screen.Color // Color of unlit pixels.
	Seed        int64        // Seed for the random number generator. Zero uses the current time.
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	c := Config{
		ScaleFactor: 10,
		CPURate:     clock.CPURate,
		TimerRate:   clock.TimerRate,
		Tone:        beeper.DefaultFrequency,
		Foreground:  screen.White,
		Background:  screen.Black,
	}

	flag.Usage = func() {
		fmt.Printf("%s [options] <program file>\n", os.Args[0])
		flag.PrintDefaults()
	}

	fg := flag.String("fg", c.Foreground.String(), "Color of lit pixels as rrggbb.")
	bg := flag.String("bg", c.Background.String(), "Color of unlit pixels as rrggbb.")

	flag.IntVar(&c.ScaleFactor, "scale-factor", c.ScaleFactor, "Pixel scale factor for the display.")
	flag.BoolVar(&c.Fullscreen, "fullscreen", c.Fullscreen, "Run the display in fullscreen or windowed mode.")
	flag.IntVar(&c.CPURate, "cpu-rate", c.CPURate, "Instructions executed per second.")
	flag.IntVar(&c.TimerRate, "timer-rate", c.TimerRate, "Delay and sound timer decrements per second.")
	flag.BoolVar(&c.PrintTrace, "trace", c.PrintTrace, "Print instruction trace data.")
	flag.BoolVar(&c.Mute, "mute", c.Mute, "Disable the buzzer.")
	flag.Float64Var(&c.Tone, "tone", c.Tone, "Buzzer frequency in herz.")
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

	var err error
	if c.Foreground, err = screen.ParseColor(*fg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if c.Background, err = screen.ParseColor(*bg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if c.ScaleFactor < 1 || c.CPURate < 1 || c.TimerRate < 1 {
		fmt.Fprintln(os.Stderr, "scale factor and rates must be positive")
		os.Exit(1)
	}

	c.Program = flag.Arg(0)
	return &c
}

// FramePeriod returns the real time between two timer cycles.
func (c *Config) FramePeriod() time.Duration {
	return time.Second / time.Duration(c.TimerRate)
}
