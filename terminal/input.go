package terminal

import (
	"fmt"
)

// ctrlChord returns the control chord of c (Ctrl+Q == 'q' & 0x1F)
func ctrlChord(c byte) byte {
	return c & 0x1f
}

const escByte = 0x1b

// ByteReader supplies raw input bytes. A read bounded by the tick
// returns 0 when no byte arrived in time.
type ByteReader interface {
	ReadByte() (byte, error)
}

// Decoder translates the raw byte stream into key events, one event
// per logical keypress. Decoding is purely sequential: escape sequence
// continuation bytes are pulled from the same reader, and a byte that
// times out mid-sequence reads as zero and falls through to a
// best-effort classification.
type Decoder struct {
	src ByteReader
}

// NewDecoder creates a decoder over src
func NewDecoder(src ByteReader) *Decoder {
	return &Decoder{src: src}
}

// Next blocks for up to one read tick and returns the next event.
// KeyNone means the tick expired with no input; KeyRune carries any
// byte that maps to no navigation command and is ignored upstream.
func (d *Decoder) Next() (Event, error) {
	b, err := d.src.ReadByte()
	if err != nil {
		return Event{}, fmt.Errorf("read key: %w", err)
	}

	switch {
	case b == 0:
		return Event{Key: KeyNone}, nil
	case b == escByte:
		return d.decodeEscape()
	case b < 0x20:
		// Control chord branch, separate from escape classification
		if b == ctrlChord('q') {
			return Event{Key: KeyQuit}, nil
		}
		return Event{Key: KeyRune, Raw: b}, nil
	default:
		return Event{Key: KeyRune, Raw: b}, nil
	}
}

// decodeEscape classifies CSI (ESC [) and SS3 (ESC O) sequences
func (d *Decoder) decodeEscape() (Event, error) {
	b1, err := d.src.ReadByte()
	if err != nil {
		return Event{}, fmt.Errorf("read escape sequence: %w", err)
	}
	b2, err := d.src.ReadByte()
	if err != nil {
		return Event{}, fmt.Errorf("read escape sequence: %w", err)
	}

	switch b1 {
	case '[':
		if b2 > '0' && b2 <= '9' {
			// ESC [ <digit> ~ function keys
			b3, err := d.src.ReadByte()
			if err != nil {
				return Event{}, fmt.Errorf("read escape sequence: %w", err)
			}
			if b3 == '~' {
				if key, ok := csiTildeKeys[b2]; ok {
					return Event{Key: key}, nil
				}
			}
			return Event{Key: KeyRune, Raw: b3}, nil
		}
		if key, ok := csiLetterKeys[b2]; ok {
			return Event{Key: key}, nil
		}
	case 'O':
		if key, ok := ss3Keys[b2]; ok {
			return Event{Key: key}, nil
		}
	}

	return Event{Key: KeyRune, Raw: b2}, nil
}
