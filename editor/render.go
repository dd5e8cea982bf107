package editor

import (
	"fmt"
	"strings"

	runewidth "github.com/mattn/go-runewidth"

	"teditor/buffer"
	"teditor/terminal"
)

// Version is the banner version string
const Version = "0.0.1"

// frameWriter receives one complete frame per call
type frameWriter interface {
	Write(p []byte) error
}

// Renderer accumulates a full frame into one in-memory buffer and
// emits it in a single write. Escape sequences and text share the same
// accumulator; nothing reaches the terminal mid-frame, which is what
// keeps refresh tear-free.
type Renderer struct {
	out   frameWriter
	frame []byte

	statusBar bool
	fileName  string
}

// NewRenderer creates a renderer emitting to out
func NewRenderer(out frameWriter, statusBar bool, fileName string) *Renderer {
	return &Renderer{
		out:       out,
		frame:     make([]byte, 0, 4096),
		statusBar: statusBar,
		fileName:  fileName,
	}
}

// Refresh paints one frame and flushes it in a single write
func (r *Renderer) Refresh(b *buffer.Buffer, vp Viewport, cursor Position) error {
	frame := r.Frame(b, vp, cursor)
	if err := r.out.Write(frame); err != nil {
		return fmt.Errorf("flush frame: %w", err)
	}
	return nil
}

// Frame builds the frame bytes for the given state. The accumulator is
// reused across frames and valid until the next call.
func (r *Renderer) Frame(b *buffer.Buffer, vp Viewport, cursor Position) []byte {
	f := r.frame[:0]

	f = append(f, terminal.SeqCursorHide...)
	f = append(f, terminal.SeqCursorHome...)
	f = r.appendRows(f, b, vp)
	if r.statusBar {
		f = append(f, '\r', '\n')
		f = r.appendStatus(f, b, vp, cursor)
	}
	f = terminal.AppendCursorPos(f, cursor.Row-vp.RowOffset+1, cursor.Col-vp.ColOffset+1)
	f = append(f, terminal.SeqCursorShow...)

	r.frame = f
	return f
}

// appendRows emits every visible content row: the line slice when the
// buffer has a row there, the placeholder glyph when it does not, and
// the centered banner on the empty-buffer special row. Each row ends
// with clear-to-end-of-line; rows are separated, not terminated, by
// line breaks.
func (r *Renderer) appendRows(f []byte, b *buffer.Buffer, vp Viewport) []byte {
	for y := 0; y < vp.Rows; y++ {
		fileRow := y + vp.RowOffset
		switch {
		case fileRow < b.LineCount():
			line, _ := b.LineAt(fileRow)
			f = append(f, line.Window(vp.ColOffset, vp.Cols)...)
		case b.LineCount() == 0 && y == vp.Rows/3:
			f = appendBanner(f, vp.Cols)
		default:
			f = append(f, '~')
		}
		f = append(f, terminal.SeqClearLine...)
		if y < vp.Rows-1 {
			f = append(f, '\r', '\n')
		}
	}
	return f
}

// appendBanner emits the version banner centered in cols cells,
// left-padded with the placeholder glyph and spaces
func appendBanner(f []byte, cols int) []byte {
	banner := fmt.Sprintf("teditor -- version %s", Version)
	if runewidth.StringWidth(banner) > cols {
		return append(f, runewidth.Truncate(banner, cols, "")...)
	}

	padding := (cols - len(banner)) / 2
	if padding > 0 {
		f = append(f, '~')
		f = append(f, strings.Repeat(" ", padding-1)...)
	}
	return append(f, banner...)
}

// appendStatus emits the reverse-video status row: file name and line
// count left, cursor position and scroll indicator right
func (r *Renderer) appendStatus(f []byte, b *buffer.Buffer, vp Viewport, cursor Position) []byte {
	name := r.fileName
	if name == "" {
		name = "[No Name]"
	}
	left := fmt.Sprintf("%.20s - %d lines", name, b.LineCount())
	right := fmt.Sprintf("%d:%d %s", cursor.Row+1, cursor.Col+1, scrollIndicator(vp, b.LineCount()))

	f = append(f, terminal.SeqReverse...)
	f = append(f, runewidth.Truncate(left, vp.Cols, "")...)

	used := runewidth.StringWidth(left)
	if used > vp.Cols {
		used = vp.Cols
	}
	gap := vp.Cols - used - runewidth.StringWidth(right)
	if gap >= 0 {
		f = append(f, strings.Repeat(" ", gap)...)
		f = append(f, right...)
	} else {
		f = append(f, strings.Repeat(" ", vp.Cols-used)...)
	}

	f = append(f, terminal.SeqSGR0...)
	return append(f, terminal.SeqClearLine...)
}

// scrollIndicator reports vertical position as Top, Bot or a percentage
func scrollIndicator(vp Viewport, total int) string {
	if total <= vp.Rows || vp.RowOffset <= 0 {
		return "Top"
	}
	if vp.RowOffset+vp.Rows >= total {
		return "Bot"
	}
	maxOffset := total - vp.Rows
	pct := (vp.RowOffset * 100) / maxOffset
	if pct > 99 {
		pct = 99
	}
	return fmt.Sprintf("%d%%", pct)
}
