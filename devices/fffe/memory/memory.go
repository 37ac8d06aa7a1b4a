// Package memory implements the 4 KiB system memory bank.
package memory

import (
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices"
)

const (
	Size            = 0x1000              // Total memory capacity.
	FontStart       = 0x000               // Address of the built-in font glyphs.
	ProgramStart    = 0x200               // Address at which programs are loaded.
	ProgramCapacity = Size - ProgramStart // Largest program image which fits.
)

// Known error conditions.
var (
	ErrCapacity    = errors.New("program image exceeds program memory")
	ErrOutOfBounds = errors.New("address out of bounds")
	ErrReadOnly    = errors.New("write to read-only font memory")
)

// Memory defines the system's memory bank.
type Memory struct {
	ram   [Size]byte
	image []byte // Loaded program image, restored on Startup.
}

var _ devices.Device = &Memory{}
var _ devices.Memory = &Memory{}

// New creates a memory bank with the font table in place.
func New() *Memory {
	var m Memory
	m.Startup()
	return &m
}

// ID returns the device id.
func (m *Memory) ID() devices.ID {
	return devices.NewID(devices.Manufacturer, 0x0003)
}

// Startup clears memory, installs the font table and
// restores the last loaded program image.
func (m *Memory) Startup() error {
	m.ram = [Size]byte{}
	copy(m.ram[FontStart:], Font[:])
	copy(m.ram[ProgramStart:], m.image)
	return nil
}

// Shutdown clears up device resources.
func (m *Memory) Shutdown() error {
	return nil
}

// Load copies the given program image into the program region.
func (m *Memory) Load(image []byte) error {
	if len(image) > ProgramCapacity {
		return errors.Wrapf(ErrCapacity, "%d bytes, at most %d fit", len(image), ProgramCapacity)
	}

	m.image = append(m.image[:0], image...)
	clear(m.ram[ProgramStart:])
	copy(m.ram[ProgramStart:], m.image)
	return nil
}

// Fetch reads the big-endian instruction word at the given address.
func (m *Memory) Fetch(addr int) (uint16, error) {
	if addr < 0 || addr >= Size-1 {
		return 0, errors.Wrapf(ErrOutOfBounds, "fetch at %04x", addr)
	}
	return uint16(m.ram[addr])<<8 | uint16(m.ram[addr+1]), nil
}

// Read reads len(p) bytes from memory into p, starting at the given address.
func (m *Memory) Read(addr int, p []byte) error {
	if err := checkRange(addr, len(p)); err != nil {
		return errors.Wrapf(err, "read %d bytes", len(p))
	}
	copy(p, m.ram[addr:])
	return nil
}

// Write writes len(p) bytes from p into memory, starting at the given address.
func (m *Memory) Write(addr int, p []byte) error {
	if err := checkRange(addr, len(p)); err != nil {
		return errors.Wrapf(err, "write %d bytes", len(p))
	}

	if len(p) > 0 && addr < FontStart+len(Font) {
		return errors.Wrapf(ErrReadOnly, "write at %04x", addr)
	}

	copy(m.ram[addr:], p)
	return nil
}

// U8 returns the byte at the given address, or 0 if it is out of range.
func (m *Memory) U8(addr int) byte {
	if addr < 0 || addr >= Size {
		return 0
	}
	return m.ram[addr]
}

// Bytes returns a copy of the memory contents.
func (m *Memory) Bytes() []byte {
	out := make([]byte, Size)
	copy(out, m.ram[:])
	return out
}

// Restore replaces the whole memory contents, font region included.
// The loaded program image is kept for the next Startup.
func (m *Memory) Restore(p []byte) error {
	if len(p) != Size {
		return errors.Wrapf(ErrOutOfBounds, "restore %d bytes, want %d", len(p), Size)
	}
	copy(m.ram[:], p)
	return nil
}

// checkRange ensures [addr, addr+n) lies inside memory.
func checkRange(addr, n int) error {
	if addr < 0 || addr+n > Size {
		return errors.Wrapf(ErrOutOfBounds, "range %04x-%04x", addr, addr+n)
	}
	return nil
}
