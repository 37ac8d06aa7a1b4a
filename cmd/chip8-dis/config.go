package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hexaflex/chip8/devices/fffe/memory"
)

// Config defines program configuration.
type Config struct {
	Input  string // Program file to disassemble.
	Output string // Output file. Leave empty for stdout.
	Origin int    // Address the program is loaded at.
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	c := Config{Origin: memory.ProgramStart}

	flag.Usage = func() {
		fmt.Printf("%s [options] <program file>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.StringVar(&c.Output, "out", c.Output, "File path to write output to. Leave empty to use stdout.")
	flag.IntVar(&c.Origin, "origin", c.Origin, "Load address of the first program byte.")
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

	c.Input = flag.Arg(0)
	return &c
}
