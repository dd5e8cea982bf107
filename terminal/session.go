package terminal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Session owns the controlling terminal for the process lifetime. It
// captures the original mode once on Open, holds raw mode while the
// viewer runs, and guarantees restoration on every exit path: Close is
// idempotent so it can sit behind a defer and still be called from
// error handling.
type Session struct {
	backend Backend
	decoder *Decoder

	mu     sync.Mutex
	opened bool
	closed bool
}

// NewSession creates a session over the process terminal
func NewSession() *Session {
	return newSession(newBackend())
}

// newSession wires a session over an explicit backend (tests)
func newSession(b Backend) *Session {
	return &Session{
		backend: b,
		decoder: NewDecoder(b),
	}
}

// Open enters raw mode: canonical input, echo and signal generation
// off, reads bounded by the tick
func (s *Session) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.opened {
		return nil
	}
	if err := s.backend.Init(); err != nil {
		return err
	}
	s.opened = true
	return nil
}

// Close restores the original terminal mode. Safe to call more than
// once; only the first call restores.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.opened || s.closed {
		return
	}
	s.backend.Fini()
	s.closed = true
}

// Size returns terminal dimensions. The driver query is the primary
// path; when it cannot answer, the cursor is parked at the bottom-right
// corner and the terminal is asked to report where it landed. The
// report is consumed synchronously, before any other read touches the
// input stream.
func (s *Session) Size() (rows, cols int, err error) {
	rows, cols, err = s.backend.Size()
	if err == nil {
		return rows, cols, nil
	}
	return s.sizeFromCursor()
}

// sizeFromCursor implements the fallback dimension probe
func (s *Session) sizeFromCursor() (int, int, error) {
	if err := s.backend.Write(seqCursorBottomRight); err != nil {
		return 0, 0, fmt.Errorf("park cursor for size probe: %w", err)
	}
	if err := s.backend.Write(seqCursorQuery); err != nil {
		return 0, 0, fmt.Errorf("query cursor position: %w", err)
	}

	report := make([]byte, 0, 16)
	for len(report) < 16 {
		c, err := s.backend.ReadByte()
		if err != nil {
			return 0, 0, fmt.Errorf("read cursor position report: %w", err)
		}
		if c == 0 {
			// tick expired mid-report, parse what arrived
			break
		}
		report = append(report, c)
		if c == 'R' {
			break
		}
	}

	rows, cols, err := ParseCursorReport(report)
	if err != nil {
		return 0, 0, err
	}
	return rows, cols, nil
}

// ReadKey blocks for up to one read tick and returns the next decoded
// keypress. KeyNone signals the tick expired with no input.
func (s *Session) ReadKey() (Event, error) {
	return s.decoder.Next()
}

// Write emits raw bytes to the terminal
func (s *Session) Write(p []byte) error {
	return s.backend.Write(p)
}

// ClearScreen wipes the display and homes the cursor, the state every
// exit path leaves behind
func (s *Session) ClearScreen() error {
	if err := s.backend.Write(SeqClearScreen); err != nil {
		return err
	}
	return s.backend.Write(SeqCursorHome)
}

// EmergencyReset attempts to restore the terminal to a sane state.
// Call this from panic recovery when Close cannot run normally.
func EmergencyReset(w io.Writer) {
	w.Write(SeqCursorShow)
	w.Write(SeqSGR0)
	w.Write(seqRIS)

	// Flush if it's a file
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}
