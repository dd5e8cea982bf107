package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	clog "github.com/charmbracelet/log"
)

const (
	logDir      = "logs"
	logFileName = "teditor.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging opens the debug log file, rotating an oversized
// predecessor out of the way first. With debug off the returned logger
// discards everything and the file is nil. Log output never goes to
// stdout or stderr: the terminal is raw while the viewer runs.
func setupLogging(debug bool) (*clog.Logger, *os.File) {
	if !debug {
		return clog.New(io.Discard), nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return clog.New(io.Discard), nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir,
			fmt.Sprintf("teditor-%s.log", time.Now().Format("20060102-150405")))
		os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return clog.New(io.Discard), nil
	}

	logger := clog.NewWithOptions(f, clog.Options{
		ReportTimestamp: true,
		Level:           clog.DebugLevel,
	})
	return logger, f
}
