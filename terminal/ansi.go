package terminal

// Pre-allocated ANSI sequence fragments (avoid allocations during render)
var (
	// CSI sequences
	csi            = []byte("\x1b[")
	SeqClearScreen = []byte("\x1b[2J")
	SeqClearLine   = []byte("\x1b[K")
	SeqCursorHome  = []byte("\x1b[H")
	SeqSGR0        = []byte("\x1b[0m")
	SeqReverse     = []byte("\x1b[7m")
	seqRIS         = []byte("\x1bc") // Reset to Initial State (emergency)

	// Cursor control
	SeqCursorHide = []byte("\x1b[?25l")
	SeqCursorShow = []byte("\x1b[?25h")

	// Dimension probing
	seqCursorQuery       = []byte("\x1b[6n")
	seqCursorBottomRight = []byte("\x1b[999C\x1b[999B")
)

// appendInt appends the decimal form of n without allocation.
// Optimized for terminal coordinates (0-999 typical max)
func appendInt(dst []byte, n int) []byte {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		return append(dst, byte(n)+'0')
	}
	if n < 100 {
		return append(dst, byte(n/10)+'0', byte(n%10)+'0')
	}
	if n < 1000 {
		return append(dst, byte(n/100)+'0', byte(n/10%10)+'0', byte(n%10)+'0')
	}
	// Fallback for >999 (rare)
	var buf [5]byte
	i := 4
	for n > 0 {
		buf[i] = byte(n%10) + '0'
		n /= 10
		i--
	}
	return append(dst, buf[i+1:]...)
}

// AppendCursorPos appends the cursor positioning sequence
// ESC[{row};{col}H (1-indexed) to dst
func AppendCursorPos(dst []byte, row, col int) []byte {
	dst = append(dst, csi...)
	dst = appendInt(dst, row)
	dst = append(dst, ';')
	dst = appendInt(dst, col)
	return append(dst, 'H')
}
