// Package buffer holds the loaded text as an ordered sequence of
// immutable lines. The viewer never mutates a line; everything here is
// load-time construction and read-only queries.
package buffer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	runewidth "github.com/mattn/go-runewidth"
)

// ErrOutOfRange reports a row index at or past the line count. The
// viewport keeps the cursor inside the buffer, so seeing this error at
// runtime means an invariant was violated upstream.
var ErrOutOfRange = errors.New("row out of range")

// DefaultTabWidth is the tab stop used when none is configured
const DefaultTabWidth = 8

// Line is one immutable row of text plus its render form with tabs
// expanded to the configured stop
type Line struct {
	raw    string
	render string
	n      int // rune count of raw
}

// Text returns the line as loaded
func (l Line) Text() string {
	return l.raw
}

// Len returns the character count of the line
func (l Line) Len() int {
	return l.n
}

// Window returns the render slice starting at logical column col,
// truncated to width display cells. Columns past the end of the line
// yield an empty string.
func (l Line) Window(col, width int) string {
	if col < 0 || width <= 0 {
		return ""
	}
	s := l.render
	for col > 0 && s != "" {
		_, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		col--
	}
	if col > 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "")
}

// expandTabs rewrites tabs as spaces up to the next tab stop
func expandTabs(s string, tabWidth int) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			pad := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", pad))
			col += pad
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}

// Buffer is an ordered, read-only sequence of lines. A zero-length
// buffer is a valid state; the renderer shows placeholder rows.
type Buffer struct {
	lines []Line
}

// Load builds a buffer from logical lines, insertion order preserved
func Load(lines []string, tabWidth int) *Buffer {
	if tabWidth < 1 {
		tabWidth = DefaultTabWidth
	}
	b := &Buffer{lines: make([]Line, 0, len(lines))}
	for _, s := range lines {
		b.lines = append(b.lines, Line{
			raw:    s,
			render: expandTabs(s, tabWidth),
			n:      utf8.RuneCountInString(s),
		})
	}
	return b
}

// LoadReader splits r on line boundaries and loads the result
func LoadReader(r io.Reader, tabWidth int) (*Buffer, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	return Load(lines, tabWidth), nil
}

// LoadFile reads path into a buffer
func LoadFile(path string, tabWidth int) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	b, err := LoadReader(f, tabWidth)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return b, nil
}

// LineCount returns the number of lines
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// LineAt returns the line at row
func (b *Buffer) LineAt(row int) (Line, error) {
	if row < 0 || row >= len(b.lines) {
		return Line{}, fmt.Errorf("%w: %d of %d", ErrOutOfRange, row, len(b.lines))
	}
	return b.lines[row], nil
}
