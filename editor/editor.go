// Package editor owns cursor state and composes the terminal session,
// buffer, viewport and renderer into the refresh/decode/apply loop.
package editor

import (
	"fmt"
	"io"

	clog "github.com/charmbracelet/log"

	"teditor/buffer"
	"teditor/terminal"
)

// Term is the slice of the terminal session the controller drives
type Term interface {
	Size() (rows, cols int, err error)
	ReadKey() (terminal.Event, error)
	Write(p []byte) error
}

// Config tunes controller behavior
type Config struct {
	ViKeys    bool
	StatusBar bool
	FileName  string
}

// Editor drives one session: refresh the screen, decode one command,
// apply it, repeat until quit
type Editor struct {
	term   Term
	buf    *buffer.Buffer
	vp     Viewport
	cursor Position
	rend   *Renderer
	viKeys bool
	logger *clog.Logger

	reloadCh <-chan struct{}
	reloadFn func() (*buffer.Buffer, error)
}

// New creates a controller. Screen dimensions are queried once and
// held for the session; the view does not track live resizes.
func New(term Term, buf *buffer.Buffer, cfg Config, logger *clog.Logger) (*Editor, error) {
	rows, cols, err := term.Size()
	if err != nil {
		return nil, fmt.Errorf("query screen dimensions: %w", err)
	}

	contentRows := rows
	if cfg.StatusBar && rows > 1 {
		contentRows = rows - 1
	}

	if logger == nil {
		logger = clog.New(io.Discard)
	}

	return &Editor{
		term:   term,
		buf:    buf,
		vp:     Viewport{Rows: contentRows, Cols: cols},
		rend:   NewRenderer(term, cfg.StatusBar && rows > 1, cfg.FileName),
		viKeys: cfg.ViKeys,
		logger: logger,
	}, nil
}

// SetReload wires a change notification channel and a loader; the
// buffer is replaced on the idle tick after a notification fires
func (e *Editor) SetReload(ch <-chan struct{}, load func() (*buffer.Buffer, error)) {
	e.reloadCh = ch
	e.reloadFn = load
}

// Cursor returns the current cursor position (tests)
func (e *Editor) Cursor() Position {
	return e.cursor
}

// Run drives the session loop until quit. Every error is fatal: the
// screen is cleared best-effort and the failing operation named in the
// returned error. The caller restores the terminal mode.
func (e *Editor) Run() error {
	for {
		e.vp.Follow(e.cursor)
		if err := e.rend.Refresh(e.buf, e.vp, e.cursor); err != nil {
			return e.fail("refresh screen", err)
		}

		ev, err := e.term.ReadKey()
		if err != nil {
			return e.fail("read key", err)
		}

		switch ev.Key {
		case terminal.KeyNone:
			// Tick expired with no input; service pending reloads and
			// fall through to the next refresh
			e.maybeReload()
		case terminal.KeyQuit:
			e.logger.Debug("quit")
			if err := e.clearScreen(); err != nil {
				return fmt.Errorf("clear screen on quit: %w", err)
			}
			return nil
		default:
			e.apply(ev)
		}
	}
}

// apply moves the cursor for one decoded keypress. Movement policy:
// left/up stop at zero, down stops one past the last line, right is
// unbounded (the viewport chases it), page and home/end keys snap.
func (e *Editor) apply(ev terminal.Event) {
	key := ev.Key
	if key == terminal.KeyRune && e.viKeys {
		key = viKey(ev.Raw)
	}

	switch key {
	case terminal.KeyLeft:
		if e.cursor.Col > 0 {
			e.cursor.Col--
		}
	case terminal.KeyRight:
		e.cursor.Col++
	case terminal.KeyUp:
		if e.cursor.Row > 0 {
			e.cursor.Row--
		}
	case terminal.KeyDown:
		if e.cursor.Row < e.buf.LineCount() {
			e.cursor.Row++
		}
	case terminal.KeyPageUp:
		e.cursor.Row = 0
	case terminal.KeyPageDown:
		e.cursor.Row = e.vp.Rows - 1
	case terminal.KeyHome:
		e.cursor.Col = 0
	case terminal.KeyEnd:
		e.cursor.Col = e.vp.Cols - 1
	case terminal.KeyDelete:
		// Read-only viewer; nothing to delete
	default:
		e.logger.Debug("ignored input", "key", ev.Key.String(), "raw", ev.Raw)
	}
}

// viKey maps h/j/k/l onto the arrow commands
func viKey(raw byte) terminal.Key {
	switch raw {
	case 'h':
		return terminal.KeyLeft
	case 'j':
		return terminal.KeyDown
	case 'k':
		return terminal.KeyUp
	case 'l':
		return terminal.KeyRight
	}
	return terminal.KeyRune
}

// maybeReload swaps in a fresh buffer when the watcher reported a
// change. Non-blocking; at most one reload per tick.
func (e *Editor) maybeReload() {
	if e.reloadCh == nil {
		return
	}
	select {
	case <-e.reloadCh:
	default:
		return
	}

	buf, err := e.reloadFn()
	if err != nil {
		e.logger.Warn("reload failed", "err", err)
		return
	}
	e.buf = buf
	if e.cursor.Row > buf.LineCount() {
		e.cursor.Row = buf.LineCount()
	}
	e.logger.Debug("buffer reloaded", "lines", buf.LineCount())
}

// clearScreen wipes the display and homes the cursor
func (e *Editor) clearScreen() error {
	if err := e.term.Write(terminal.SeqClearScreen); err != nil {
		return err
	}
	return e.term.Write(terminal.SeqCursorHome)
}

// fail clears the screen best-effort and names the failing operation
func (e *Editor) fail(op string, err error) error {
	_ = e.clearScreen()
	return fmt.Errorf("%s: %w", op, err)
}
