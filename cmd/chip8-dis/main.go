package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hexaflex/chip8/devices/fffe/cpu"
)

func main() {
	config := parseArgs()

	rom, err := os.ReadFile(config.Input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	out, close := makeWriter(config)
	defer close()

	disassemble(out, rom, config.Origin)
}

// disassemble writes one line per instruction word in rom. A trailing
// odd byte is listed as data.
func disassemble(out io.Writer, rom []byte, origin int) {
	for i := 0; i+1 < len(rom); i += 2 {
		instr := cpu.Decode(uint16(rom[i])<<8 | uint16(rom[i+1]))
		instr.IP = origin + i
		fmt.Fprintf(out, "%03X  %04X  %s\n", instr.IP, instr.Word, instr.String())
	}

	if len(rom)%2 == 1 {
		n := len(rom) - 1
		fmt.Fprintf(out, "%03X  %02X    DB %02X\n", origin+n, rom[n], rom[n])
	}
}

// makeWriter creates an output writer and a cleanup function for it.
func makeWriter(c *Config) (io.Writer, func()) {
	if c.Output == "" {
		return os.Stdout, func() {}
	}

	dir, _ := filepath.Split(c.Output)
	if dir != "" {
		if err := os.MkdirAll(dir, 0744); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	fd, err := os.Create(c.Output)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	return fd, func() { fd.Close() }
}
