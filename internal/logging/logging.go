// Package logging builds the logr.Logger used across edgescroll. The TUI owns
// the terminal, so logs go to a file and, optionally, to in-process sinks
// such as the demo's events pane.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger appending to path and to every extra sink at the
// given verbosity. With no path and no sinks it discards.
func New(path string, verbosity int, sinks ...io.Writer) (logr.Logger, io.Closer, error) {
	var closer io.Closer = nopCloser{}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return logr.Discard(), nopCloser{}, fmt.Errorf("log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return logr.Discard(), nopCloser{}, fmt.Errorf("open log file: %w", err)
		}
		sinks = append([]io.Writer{f}, sinks...)
		closer = f
	}
	if len(sinks) == 0 {
		return logr.Discard(), closer, nil
	}
	return ToWriter(io.MultiWriter(sinks...), verbosity), closer, nil
}

// LineSink forwards each written line to ch, dropping lines when ch is full
// so logging never blocks the UI loop.
type LineSink chan<- string

func (s LineSink) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		if line == "" {
			continue
		}
		select {
		case s <- line:
		default:
		}
	}
	return len(p), nil
}

// ToWriter returns a logger writing one JSON-ish line per entry to w.
func ToWriter(w io.Writer, verbosity int) logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(w, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(w, args)
	}, funcr.Options{
		LogTimestamp: true,
		Verbosity:    verbosity,
	})
}
