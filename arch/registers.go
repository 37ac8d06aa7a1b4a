package arch

import "fmt"

// Register file dimensions.
const (
	RegisterCount = 16  // Number of general purpose registers V0..VF.
	VF            = 0xf // VF doubles as carry, borrow and collision flag.
	StackDepth    = 16  // Number of return addresses the call stack can hold.
)

// RegisterName returns the name associated with the given register index.
// Returns "" if the index is not recognized.
func RegisterName(n int) string {
	if n < 0 || n >= RegisterCount {
		return ""
	}
	return fmt.Sprintf("V%X", n)
}
