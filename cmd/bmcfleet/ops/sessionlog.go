// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ops

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/bureau-foundation/bmcfleet/cmd/bmcfleet/cli"
	"github.com/bureau-foundation/bmcfleet/lib/console"
)

// logDir is where session logs accumulate, relative to the working
// directory the operator ran from.
const logDir = "logs"

// NewConsole builds the operator console for one command: styled
// output when stdout is a terminal, prompts reading from stdin, and
// every line mirrored to an append-only session log at
// logs/<operation>.log. The returned closer flushes the log file;
// call it before returning from the command.
//
// A session log failure is reported but never blocks the run: power
// recovery matters more than the audit line.
func NewConsole(operation string, logger *slog.Logger) (*console.Console, func()) {
	options := []console.Option{
		console.WithInput(os.Stdin),
		console.WithColor(cli.IsTerminal()),
	}
	closer := func() {}

	file, err := openSessionLog(operation)
	if err != nil {
		logger.Warn("session log unavailable", "error", err)
	} else {
		options = append(options, console.WithLog(&timestampWriter{out: file}))
		closer = func() { file.Close() }
	}

	return console.New(os.Stdout, options...), closer
}

// openSessionLog opens logs/<operation>.log for appending, creating
// the directory on first use.
func openSessionLog(operation string) (*os.File, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s directory: %w", logDir, err)
	}
	path := filepath.Join(logDir, operation+".log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening session log: %w", err)
	}
	return file, nil
}

// timestampWriter prefixes each written line with an RFC 3339
// timestamp so the append-only session log orders runs unambiguously.
type timestampWriter struct {
	out     io.Writer
	partial bool
}

func (w *timestampWriter) Write(p []byte) (int, error) {
	var buffer bytes.Buffer
	for _, line := range bytes.SplitAfter(p, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		if !w.partial {
			fmt.Fprintf(&buffer, "%s ", time.Now().Format(time.RFC3339))
		}
		buffer.Write(line)
		w.partial = !bytes.HasSuffix(line, []byte("\n"))
	}
	if _, err := w.out.Write(buffer.Bytes()); err != nil {
		return 0, err
	}
	return len(p), nil
}
