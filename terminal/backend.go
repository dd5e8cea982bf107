package terminal

// Backend abstracts platform-specific terminal operations so the
// session, decoder and dimension probing stay portable.
type Backend interface {
	// Lifecycle
	// Init captures the original terminal attributes and enters raw mode.
	Init() error
	// Fini restores the original attributes. Safe to call more than once.
	Fini()

	// Capabilities
	// Size returns terminal dimensions from the driver, or an error when
	// the driver cannot answer (the session then falls back to cursor
	// position probing).
	Size() (rows, cols int, err error)

	// I/O
	// Write writes raw bytes to the terminal output.
	Write(p []byte) error
	// ReadByte returns the next input byte. The read is bounded by the
	// tick: it returns 0 with a nil error when no byte arrives in time,
	// which is what lets the caller re-enter its refresh loop.
	ReadByte() (byte, error)
}
