package terminal

import (
	"errors"
	"fmt"
)

// ErrBadCursorReport indicates a malformed cursor position response
var ErrBadCursorReport = errors.New("malformed cursor position report")

// ParseCursorReport parses the terminal's answer to a cursor position
// query: ESC [ <row> ; <col> R. Any deviation from that byte protocol
// is an error; the caller treats it as fatal.
func ParseCursorReport(report []byte) (row, col int, err error) {
	if len(report) < 6 || report[0] != escByte || report[1] != '[' {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadCursorReport, report)
	}

	i := 2
	row, i, err = parseReportInt(report, i)
	if err != nil {
		return 0, 0, err
	}
	if i >= len(report) || report[i] != ';' {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadCursorReport, report)
	}
	i++
	col, i, err = parseReportInt(report, i)
	if err != nil {
		return 0, 0, err
	}
	if i >= len(report) || report[i] != 'R' {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadCursorReport, report)
	}
	return row, col, nil
}

// parseReportInt consumes a run of ASCII digits starting at i
func parseReportInt(report []byte, i int) (int, int, error) {
	start := i
	n := 0
	for i < len(report) && report[i] >= '0' && report[i] <= '9' {
		n = n*10 + int(report[i]-'0')
		i++
	}
	if i == start {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadCursorReport, report)
	}
	return n, i, nil
}
