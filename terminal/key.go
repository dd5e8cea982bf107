package terminal

// Key represents a parsed input key
type Key uint8

// Key constants
const (
	KeyNone Key = iota // read tick expired with no input
	KeyRune            // unmapped byte (check Event.Raw)

	// Navigation
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyDelete

	// Control chords
	KeyQuit // Ctrl+Q
)

// Event is a single decoded keypress
type Event struct {
	Key Key
	Raw byte // originating byte when Key is KeyRune
}

// escape sequence classification tables
// Sequences must match byte-for-byte, terminator included.

// csiLetterKeys maps the byte following ESC [ when it is not a digit
var csiLetterKeys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
}

// csiTildeKeys maps the digit of ESC [ <digit> ~ sequences
var csiTildeKeys = map[byte]Key{
	'1': KeyHome,
	'3': KeyDelete,
	'4': KeyEnd,
	'5': KeyPageUp,
	'6': KeyPageDown,
	'7': KeyHome,
	'8': KeyEnd,
}

// ss3Keys maps the byte following ESC O
var ss3Keys = map[byte]Key{
	'H': KeyHome,
	'F': KeyEnd,
}

var keyNames = map[Key]string{
	KeyNone:     "none",
	KeyRune:     "rune",
	KeyLeft:     "left",
	KeyRight:    "right",
	KeyUp:       "up",
	KeyDown:     "down",
	KeyPageUp:   "pgup",
	KeyPageDown: "pgdn",
	KeyHome:     "home",
	KeyEnd:      "end",
	KeyDelete:   "delete",
	KeyQuit:     "quit",
}

// String returns a short key name for diagnostics
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}
