package editor

// Position addresses a logical row/column in the buffer. Row ranges
// over [0, line count]; row == count is the position just past the
// last line. Column is unconstrained at this level; horizontal scroll
// chases wherever it goes.
type Position struct {
	Row int
	Col int
}

// Viewport maps the cursor and buffer onto a bounded screen window by
// sliding row/column offsets. It never moves the cursor.
type Viewport struct {
	RowOffset int
	ColOffset int
	Rows      int
	Cols      int
}

// Follow slides the offsets the minimum distance needed to keep cursor
// inside [offset, offset+dimension). Pure function of cursor, prior
// offsets and dimensions; calling it twice with unchanged inputs
// leaves the offsets identical.
func (v *Viewport) Follow(cursor Position) {
	if cursor.Row < v.RowOffset {
		v.RowOffset = cursor.Row
	}
	if cursor.Row >= v.RowOffset+v.Rows {
		v.RowOffset = cursor.Row - v.Rows + 1
	}
	if cursor.Col < v.ColOffset {
		v.ColOffset = cursor.Col
	}
	if cursor.Col >= v.ColOffset+v.Cols {
		v.ColOffset = cursor.Col - v.Cols + 1
	}
}

// Contains reports whether cursor lies inside the visible window
func (v *Viewport) Contains(cursor Position) bool {
	return cursor.Row >= v.RowOffset && cursor.Row < v.RowOffset+v.Rows &&
		cursor.Col >= v.ColOffset && cursor.Col < v.ColOffset+v.Cols
}
