package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/fffe/beeper"
	"github.com/hexaflex/chip8/devices/fffe/cpu"
	"github.com/hexaflex/chip8/devices/fffe/display"
	"github.com/hexaflex/chip8/devices/fffe/keyboard"
	"github.com/hexaflex/chip8/devices/fffe/screen"
	"github.com/hexaflex/chip8/vm"
)

// App defines application context.
type App struct {
	config       *Config          // Application configuration.
	window       *glfw.Window     // OpenGL/GLFW context.
	cpu          *CPUController   // Emulator with program to be run.
	screen       *screen.Device   // Renders the display.
	keyboard     *keyboard.Device // Host keyboard and gamepad input.
	beeper       *beeper.Device   // Buzzer output.
	host         devices.Map      // Host devices, started once a GL context exists.
	titleUpdated time.Time        // Value used to periodically update window title.
	lastRendered time.Time        // Last time a frame was rendered.
	lastAdvance  time.Time        // Last time the emulator was advanced.
	palette      int              // Index of the active color palette.
}

// NewApp creates a new application instance using the given configuration.
func NewApp(config *Config) *App {
	var a App
	a.config = config
	a.cpu = NewCPUController(config.FramePeriod())
	a.keyboard = keyboard.New(a.cpu)
	a.beeper = beeper.New(config.Tone)
	return &a
}

// Run runs the application and does not return until it is finished
// or an error occured during initialization.
func (a *App) Run() error {
	if err := a.initGL(); err != nil {
		return err
	}

	defer a.dispose()

	log.Println(Version())
	printHelp()

	if err := a.loadProgram(); err != nil {
		return err
	}

	a.host.Connect(a.screen)
	a.host.Connect(a.keyboard)

	// Starting muted never opens the audio output.
	if !a.config.Mute {
		a.host.Connect(a.beeper)
	}

	if err := a.host.Startup(); err != nil {
		return err
	}

	a.cpu.Start()
	a.lastAdvance = time.Now()

	for !a.window.ShouldClose() {
		a.mainLoop()
	}

	return nil
}

// mainLoop performs all main loop operations.
func (a *App) mainLoop() {
	a.keyboard.Update()

	now := time.Now()
	if err := a.cpu.Advance(now.Sub(a.lastAdvance)); err != nil {
		log.Println(err)
	}
	a.lastAdvance = now

	a.beeper.Set(!a.config.Mute && a.cpu.Running() && a.cpu.Emulator().Beep())

	// Render display contents at the timer rate.
	if time.Since(a.lastRendered) >= a.config.FramePeriod() {
		a.lastRendered = time.Now()
		gl.Clear(gl.COLOR_BUFFER_BIT)
		a.screen.Draw()
		a.window.SwapBuffers()
	}

	// Periodically update the window title to show the measured instruction rate.
	if time.Since(a.titleUpdated) >= time.Second*2 {
		a.titleUpdated = time.Now()
		freq := prettyFrequency(a.cpu.Frequency())
		a.window.SetTitle(fmt.Sprintf("%s %s - %s / %d Hz", AppName, AppVersion, freq, a.cpu.Emulator().ClockRate()))
	}

	glfw.WaitEventsTimeout(0.001)
}

// dispose ensures openGL/GLFW and other resources are cleaned up.
func (a *App) dispose() {
	a.cpu.Stop()

	if err := a.host.Shutdown(); err != nil {
		log.Println(err)
	}

	if a.window != nil {
		a.window.Destroy()
		a.window = nil
	}

	glfw.Terminate()
}

func (a *App) keyCallback(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if a.keyboard.HandleKey(key, action) || action != glfw.Press {
		return
	}

	var err error

	switch key {
	case glfw.KeyEscape:
		a.window.SetShouldClose(true)
	case glfw.KeyF1:
		printHelp()
	case glfw.KeyF2:
		err = a.saveState()
	case glfw.KeyF3:
		err = a.loadState()
	case glfw.KeyF5:
		err = a.loadProgram()
	case glfw.KeyF6:
		err = a.cpu.Reset()
	case glfw.KeySpace:
		a.cpu.ToggleRun()
		a.lastAdvance = time.Now()
	case glfw.KeyN:
		err = a.cpu.Step()
	case glfw.KeyT:
		a.config.PrintTrace = !a.config.PrintTrace
	case glfw.KeyM:
		a.config.Mute = !a.config.Mute
	case glfw.KeyP:
		p := palettes(a.config)
		a.palette = (a.palette + 1) % len(p)
		a.screen.SetColors(p[a.palette].on, p[a.palette].off)
		bg := p[a.palette].off.Vec4()
		gl.ClearColor(bg[0], bg[1], bg[2], bg[3])
	case glfw.KeyEqual:
		a.beeper.SetFrequency(shiftTone(a.beeper.Frequency(), 1))
		log.Printf("tone %.1f Hz", a.beeper.Frequency())
	case glfw.KeyMinus:
		a.beeper.SetFrequency(shiftTone(a.beeper.Frequency(), -1))
		log.Printf("tone %.1f Hz", a.beeper.Frequency())
	}

	if err != nil {
		log.Println(err)
	}
}

// initGL initializes GLFW and openGL.
func (a *App) initGL() error {
	err := glfw.Init()
	if err != nil {
		return errors.Wrapf(err, "glfw.Init failed")
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.Visible, glfw.True)
	glfw.WindowHint(glfw.Focused, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 2)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	var monitor *glfw.Monitor

	width := display.Width * a.config.ScaleFactor
	height := display.Height * a.config.ScaleFactor

	if a.config.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()

		width = mode.Width
		height = mode.Height

		glfw.WindowHint(glfw.Decorated, glfw.False)
		glfw.WindowHint(glfw.Maximized, glfw.True)
	} else {
		glfw.WindowHint(glfw.Decorated, glfw.True)
		glfw.WindowHint(glfw.Maximized, glfw.False)
	}

	a.window, err = glfw.CreateWindow(width, height, AppName, monitor, nil)
	if err != nil {
		a.dispose()
		return errors.Wrapf(err, "glfw.CreateWindow failed")
	}

	a.window.MakeContextCurrent()
	a.window.SetKeyCallback(a.keyCallback)

	glfw.SwapInterval(0)

	err = gl.Init()
	if err != nil {
		a.dispose()
		return errors.Wrapf(err, "gl.Init failed")
	}

	bg := a.config.Background.Vec4()
	gl.ClearColor(bg[0], bg[1], bg[2], bg[3])
	return nil
}

// loadProgram loads the current program from disk into a fresh emulator.
func (a *App) loadProgram() error {
	log.Println("loading", a.config.Program)

	rom, err := os.ReadFile(a.config.Program)
	if err != nil {
		return err
	}

	config := vm.DefaultConfig()
	config.CPURate = a.config.CPURate
	config.TimerRate = a.config.TimerRate
	config.Trace = a.printTrace
	if a.config.Seed != 0 {
		config.Random = cpu.NewRand(a.config.Seed)
	}

	emu, err := vm.New(rom, config)
	if err != nil {
		return errors.Wrapf(err, "%s", a.config.Program)
	}

	a.cpu.Load(emu)

	if a.screen == nil {
		a.screen = screen.New(emu.Display(), a.config.Foreground, a.config.Background)
	} else {
		a.screen.SetSource(emu.Display())
	}

	return nil
}

// stateFile returns the path of the snapshot file for the current program.
func (a *App) stateFile() string {
	return a.config.Program + ".state"
}

// saveState writes a snapshot of the machine to disk.
func (a *App) saveState() error {
	fd, err := os.Create(a.stateFile())
	if err != nil {
		return err
	}

	defer fd.Close()

	if err := a.cpu.Emulator().SaveState(fd); err != nil {
		return err
	}

	log.Println("state saved to", a.stateFile())
	return nil
}

// loadState restores the snapshot saved by saveState.
func (a *App) loadState() error {
	fd, err := os.Open(a.stateFile())
	if err != nil {
		return err
	}

	defer fd.Close()

	if err := a.cpu.Emulator().LoadState(fd); err != nil {
		return err
	}

	a.cpu.Load(a.cpu.Emulator())
	log.Println("state loaded from", a.stateFile())
	return nil
}

// printTrace prints instruction trace data. This can be toggled
// on and off through a.config.PrintTrace.
func (a *App) printTrace(i *cpu.Instruction) {
	if !a.config.PrintTrace {
		return
	}
	fmt.Println(a.cpu.Emulator().Trace(i))
}

// printHelp writes a short overview of supported shortcut keys to the log.
func printHelp() {
	var sb strings.Builder
	sb.WriteString("shortcut keys:\n")
	sb.WriteString(" ESC      Exit the emulator.\n")
	sb.WriteString(" F1       Display this help.\n")
	sb.WriteString(" F2       Save the machine state.\n")
	sb.WriteString(" F3       Restore the saved machine state.\n")
	sb.WriteString(" F5       (re)load the program from disk.\n")
	sb.WriteString(" F6       Reset the machine.\n")
	sb.WriteString(" SPACE    Pause/Resume program execution.\n")
	sb.WriteString(" N        Perform a single instruction step.\n")
	sb.WriteString(" T        Enable/Disable instruction trace output.\n")
	sb.WriteString(" M        Mute/Unmute the buzzer.\n")
	sb.WriteString(" P        Cycle the color palette.\n")
	sb.WriteString(" = / -    Raise/Lower the buzzer pitch by a semitone.\n")
	sb.WriteString(" keypad   1234/QWER/ASDF/ZXCV map to 123C/456D/789E/A0BF.")
	log.Println(sb.String())
}

// prettyFrequency returns a human-readable version of the given clock frequency in herz.
func prettyFrequency(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%.2f MHz", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2f KHz", v/1e3)
	default:
		return fmt.Sprintf("%.2f Hz", v)
	}
}
