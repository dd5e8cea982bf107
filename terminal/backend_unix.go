//go:build unix

package terminal

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// readTick bounds a single input poll (milliseconds). The refresh loop
// regains control at this interval even with no keypress, and the same
// bound applies to escape sequence continuation bytes.
const readTick = 100

type unixBackend struct {
	in      *os.File
	out     *os.File
	inFd    int
	outFd   int
	oldTerm *term.State
}

func newBackend() Backend {
	return &unixBackend{
		in:    os.Stdin,
		out:   os.Stdout,
		inFd:  int(os.Stdin.Fd()),
		outFd: int(os.Stdout.Fd()),
	}
}

func (b *unixBackend) Init() error {
	if !term.IsTerminal(b.inFd) {
		return fmt.Errorf("stdin is not a terminal")
	}

	old, err := term.MakeRaw(b.inFd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	b.oldTerm = old
	return nil
}

// Fini restores the attributes captured by Init exactly once
func (b *unixBackend) Fini() {
	if b.oldTerm != nil {
		term.Restore(b.inFd, b.oldTerm)
		b.oldTerm = nil
	}
}

func (b *unixBackend) Write(p []byte) error {
	if _, err := b.out.Write(p); err != nil {
		return fmt.Errorf("write terminal: %w", err)
	}
	return nil
}

// ReadByte polls stdin for up to one tick and reads a single byte.
// A tick expiry reads as zero so the decoder can surface a no-op.
func (b *unixBackend) ReadByte() (byte, error) {
	var buf [1]byte
	for {
		fds := []unix.PollFd{
			{Fd: int32(b.inFd), Events: unix.POLLIN},
		}

		n, err := unix.Poll(fds, readTick)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return 0, fmt.Errorf("poll stdin: %w", err)
		}
		if n == 0 {
			return 0, nil // tick expired
		}

		rn, err := unix.Read(b.inFd, buf[:])
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return 0, fmt.Errorf("read stdin: %w", err)
		}
		if rn == 0 {
			return 0, nil
		}
		return buf[0], nil
	}
}

// Size queries the terminal driver for dimensions
func (b *unixBackend) Size() (int, int, error) {
	ws, err := unix.IoctlGetWinsize(b.outFd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, fmt.Errorf("query window size: %w", err)
	}
	if ws.Row == 0 || ws.Col == 0 {
		return 0, 0, fmt.Errorf("query window size: driver reported %dx%d", ws.Row, ws.Col)
	}
	return int(ws.Row), int(ws.Col), nil
}

// resetTerminalMode attempts to restore terminal to cooked mode.
// Best-effort for crash recovery; errors ignored
func resetTerminalMode() {
	// Try to restore via /dev/tty (works even if stdin redirected)
	if tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0); err == nil {
		defer tty.Close()
		fd := int(tty.Fd())
		// Get current termios, enable ECHO and ICANON
		if termios, err := unix.IoctlGetTermios(fd, unix.TCGETS); err == nil {
			termios.Lflag |= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
			termios.Iflag |= unix.ICRNL
			termios.Oflag |= unix.OPOST
			unix.IoctlSetTermios(fd, unix.TCSETS, termios)
		}
	}
}
