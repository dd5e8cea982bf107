// Package terminal provides raw-mode terminal access for the viewer:
// session lifecycle with guaranteed mode restoration, a byte-level
// input decoder for ANSI escape sequences, dimension probing with a
// cursor-report fallback, and pre-built escape sequence fragments for
// the renderer.
//
// The package is single-threaded. One file descriptor, one reader,
// one writer; the only suspension point is the tick-bounded input
// poll.
package terminal
