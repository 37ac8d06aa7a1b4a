package devices

// Memory defines the system's memory bank as seen by the CPU.
type Memory interface {
	// Fetch reads the big-endian instruction word at the given address.
	Fetch(addr int) (uint16, error)

	// Read reads len(p) bytes from memory into p, starting at the given address.
	Read(addr int, p []byte) error

	// Write writes len(p) bytes from p into memory, starting at the given address.
	Write(addr int, p []byte) error
}

// Display defines the monochrome framebuffer as seen by the CPU.
type Display interface {
	// Clear turns all pixels off.
	Clear()

	// DrawSprite XORs the given sprite rows onto the framebuffer at x, y.
	// Returns true if any lit pixel was hit by a lit sprite bit.
	DrawSprite(x, y int, rows []byte) bool
}

// Keypad defines the hexadecimal key pad as seen by the CPU.
type Keypad interface {
	// Pressed returns true if the given key is held down.
	Pressed(key int) bool

	// FirstPressed returns the lowest-indexed key which is held down.
	// Returns false if no key is pressed.
	FirstPressed() (int, bool)
}
