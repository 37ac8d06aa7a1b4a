package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices/fffe/console"
	"github.com/hexaflex/chip8/devices/fffe/cpu"
	"github.com/hexaflex/chip8/vm"
)

func main() {
	config := parseArgs()

	emu, err := load(config)
	if err != nil {
		log.Fatal(err)
	}

	term := console.New(os.Stdin, emu, config.Hold)
	if err := term.Startup(); err != nil {
		log.Fatal(err)
	}

	err = run(config, emu, term)

	if serr := term.Shutdown(); serr != nil {
		log.Println(serr)
	}

	fmt.Println()
	if err != nil {
		log.Fatal(err)
	}
}

// load creates an emulator for the configured program.
func load(c *Config) (*vm.Emulator, error) {
	rom, err := os.ReadFile(c.Program)
	if err != nil {
		return nil, err
	}

	config := vm.DefaultConfig()
	config.CPURate = c.CPURate
	config.TimerRate = c.TimerRate
	if c.Seed != 0 {
		config.Random = cpu.NewRand(c.Seed)
	}

	emu, err := vm.New(rom, config)
	return emu, errors.Wrapf(err, "%s", c.Program)
}

// run drives the emulator one timer cycle per tick until the user quits
// or the cpu halts.
func run(c *Config, emu *vm.Emulator, term *console.Device) error {
	ticker := time.NewTicker(time.Second / time.Duration(c.TimerRate))
	defer ticker.Stop()

	status := fmt.Sprintf("%s  ^R reset  ESC quit", c.Program)
	console.Draw(emu.Framebuffer(), status)

	beeping := false

	for now := range ticker.C {
		switch term.Poll(now) {
		case console.Quit:
			return nil
		case console.Reset:
			if err := emu.Reset(); err != nil {
				return err
			}
		}

		if err := emu.CycleUntilTimer(); err != nil {
			return err
		}

		if emu.Display().Changed() {
			console.Draw(emu.Framebuffer(), status)
		}

		beep := emu.Beep()
		if beep && !beeping && c.Bell {
			fmt.Print("\a")
		}
		beeping = beep
	}

	return nil
}
