package editor

import (
	"errors"
	"strings"
	"testing"

	"teditor/buffer"
	"teditor/terminal"
)

// fakeTerm serves scripted key events and records writes. When the
// script runs out it produces Quit so Run always terminates.
type fakeTerm struct {
	rows, cols int
	events     []terminal.Event
	pos        int
	writes     []string
	readErr    error
}

func (f *fakeTerm) Size() (int, int, error) {
	return f.rows, f.cols, nil
}

func (f *fakeTerm) ReadKey() (terminal.Event, error) {
	if f.readErr != nil {
		return terminal.Event{}, f.readErr
	}
	if f.pos >= len(f.events) {
		return terminal.Event{Key: terminal.KeyQuit}, nil
	}
	ev := f.events[f.pos]
	f.pos++
	return ev, nil
}

func (f *fakeTerm) Write(p []byte) error {
	f.writes = append(f.writes, string(p))
	return nil
}

func key(k terminal.Key) terminal.Event {
	return terminal.Event{Key: k}
}

func runEditor(t *testing.T, buf *buffer.Buffer, events ...terminal.Event) (*Editor, *fakeTerm) {
	t.Helper()
	ft := &fakeTerm{rows: 24, cols: 80, events: events}
	ed, err := New(ft, buf, Config{}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := ed.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return ed, ft
}

func TestMoveUpAtTopIsNoOp(t *testing.T) {
	b := buffer.Load([]string{"a", "b"}, buffer.DefaultTabWidth)
	ed, _ := runEditor(t, b, key(terminal.KeyUp), key(terminal.KeyUp))

	if ed.Cursor().Row != 0 {
		t.Errorf("expected row 0, got %d", ed.Cursor().Row)
	}
}

func TestMoveLeftAtZeroIsNoOp(t *testing.T) {
	b := buffer.Load([]string{"a"}, buffer.DefaultTabWidth)
	ed, _ := runEditor(t, b, key(terminal.KeyLeft))

	if ed.Cursor().Col != 0 {
		t.Errorf("expected col 0, got %d", ed.Cursor().Col)
	}
}

func TestMoveDownClampsToLineCount(t *testing.T) {
	b := buffer.Load([]string{"a", "b", "c"}, buffer.DefaultTabWidth)

	events := make([]terminal.Event, 10)
	for i := range events {
		events[i] = key(terminal.KeyDown)
	}
	ed, _ := runEditor(t, b, events...)

	// Row may land one past the last line, never further
	if ed.Cursor().Row != 3 {
		t.Errorf("expected row clamped to 3, got %d", ed.Cursor().Row)
	}
}

func TestMoveRightIsUnbounded(t *testing.T) {
	b := buffer.Load([]string{"ab"}, buffer.DefaultTabWidth)

	events := make([]terminal.Event, 100)
	for i := range events {
		events[i] = key(terminal.KeyRight)
	}
	ed, _ := runEditor(t, b, events...)

	if ed.Cursor().Col != 100 {
		t.Errorf("expected col 100, got %d", ed.Cursor().Col)
	}
}

func TestPageAndSnapKeys(t *testing.T) {
	lines := make([]string, 100)
	for i := range lines {
		lines[i] = "line"
	}
	b := buffer.Load(lines, buffer.DefaultTabWidth)

	cases := []struct {
		name   string
		events []terminal.Event
		want   Position
	}{
		{"pagedown", []terminal.Event{key(terminal.KeyPageDown)}, Position{Row: 23}},
		{"pageup after down", []terminal.Event{key(terminal.KeyDown), key(terminal.KeyDown), key(terminal.KeyPageUp)}, Position{Row: 0}},
		{"end", []terminal.Event{key(terminal.KeyEnd)}, Position{Col: 79}},
		{"home after end", []terminal.Event{key(terminal.KeyEnd), key(terminal.KeyHome)}, Position{Col: 0}},
	}

	for _, tc := range cases {
		ed, _ := runEditor(t, b, tc.events...)
		if ed.Cursor() != tc.want {
			t.Errorf("%s: expected %+v, got %+v", tc.name, tc.want, ed.Cursor())
		}
	}
}

func TestViKeysMapToArrows(t *testing.T) {
	b := buffer.Load([]string{"one", "two", "three"}, buffer.DefaultTabWidth)
	ft := &fakeTerm{rows: 24, cols: 80, events: []terminal.Event{
		{Key: terminal.KeyRune, Raw: 'j'},
		{Key: terminal.KeyRune, Raw: 'j'},
		{Key: terminal.KeyRune, Raw: 'l'},
		{Key: terminal.KeyRune, Raw: 'k'},
		{Key: terminal.KeyRune, Raw: 'h'},
	}}
	ed, err := New(ft, b, Config{ViKeys: true}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := ed.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if ed.Cursor() != (Position{Row: 1, Col: 0}) {
		t.Errorf("expected {1 0}, got %+v", ed.Cursor())
	}
}

func TestViKeysDisabledIgnoresLetters(t *testing.T) {
	b := buffer.Load([]string{"one", "two"}, buffer.DefaultTabWidth)
	ft := &fakeTerm{rows: 24, cols: 80, events: []terminal.Event{
		{Key: terminal.KeyRune, Raw: 'j'},
	}}
	ed, err := New(ft, b, Config{ViKeys: false}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := ed.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if ed.Cursor() != (Position{}) {
		t.Errorf("expected cursor unmoved, got %+v", ed.Cursor())
	}
}

func TestUnknownBytesAreIgnored(t *testing.T) {
	b := buffer.Load([]string{"one"}, buffer.DefaultTabWidth)
	ed, _ := runEditor(t, b,
		terminal.Event{Key: terminal.KeyRune, Raw: 'x'},
		terminal.Event{Key: terminal.KeyRune, Raw: 0x02},
	)

	if ed.Cursor() != (Position{}) {
		t.Errorf("expected cursor unmoved, got %+v", ed.Cursor())
	}
}

func TestQuitClearsScreen(t *testing.T) {
	b := buffer.Load([]string{"one"}, buffer.DefaultTabWidth)
	_, ft := runEditor(t, b)

	out := strings.Join(ft.writes, "")
	end := out[strings.LastIndex(out, "\x1b[2J"):]
	if end != "\x1b[2J\x1b[H" {
		t.Errorf("expected clear + home as the final writes, got %q", end)
	}
}

func TestScrollFollowsCursorDown(t *testing.T) {
	lines := make([]string, 100)
	for i := range lines {
		lines[i] = "line"
	}
	b := buffer.Load(lines, buffer.DefaultTabWidth)

	events := make([]terminal.Event, 30)
	for i := range events {
		events[i] = key(terminal.KeyDown)
	}
	ed, _ := runEditor(t, b, events...)

	if ed.Cursor().Row != 30 {
		t.Fatalf("expected row 30, got %d", ed.Cursor().Row)
	}
	if !ed.vp.Contains(ed.Cursor()) {
		t.Errorf("viewport %+v does not contain cursor %+v", ed.vp, ed.Cursor())
	}
}

func TestReadErrorIsFatalAndNamed(t *testing.T) {
	b := buffer.Load([]string{"one"}, buffer.DefaultTabWidth)
	ft := &fakeTerm{rows: 24, cols: 80, readErr: errors.New("stdin gone")}
	ed, err := New(ft, b, Config{}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = ed.Run()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "read key") {
		t.Errorf("expected failing operation in error, got %v", err)
	}

	// The error path clears the screen before propagating
	out := strings.Join(ft.writes, "")
	if !strings.Contains(out, "\x1b[2J") {
		t.Errorf("expected clear screen on error path")
	}
}

func TestReloadOnIdleTick(t *testing.T) {
	b := buffer.Load([]string{"old"}, buffer.DefaultTabWidth)
	ch := make(chan struct{}, 1)
	ch <- struct{}{}

	ft := &fakeTerm{rows: 24, cols: 80, events: []terminal.Event{
		{Key: terminal.KeyNone},
	}}
	ed, err := New(ft, b, Config{}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ed.SetReload(ch, func() (*buffer.Buffer, error) {
		return buffer.Load([]string{"new", "content"}, buffer.DefaultTabWidth), nil
	})

	if err := ed.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ed.buf.LineCount() != 2 {
		t.Errorf("expected reloaded buffer with 2 lines, got %d", ed.buf.LineCount())
	}
}

func TestReloadClampsCursor(t *testing.T) {
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = "line"
	}
	b := buffer.Load(lines, buffer.DefaultTabWidth)
	ch := make(chan struct{}, 1)

	downs := make([]terminal.Event, 40)
	for i := range downs {
		downs[i] = key(terminal.KeyDown)
	}
	events := append(downs, terminal.Event{Key: terminal.KeyNone})

	ft := &fakeTerm{rows: 24, cols: 80, events: events}
	ed, err := New(ft, b, Config{}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ed.SetReload(ch, func() (*buffer.Buffer, error) {
		return buffer.Load([]string{"tiny"}, buffer.DefaultTabWidth), nil
	})
	ch <- struct{}{}

	if err := ed.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ed.Cursor().Row > 1 {
		t.Errorf("expected cursor clamped to new line count, got row %d", ed.Cursor().Row)
	}
}
