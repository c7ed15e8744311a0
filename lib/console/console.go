// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package console renders fleet-run output for an operator terminal:
// progress lines, confirmation prompts, the settle countdown, and run
// summaries. Every line is mirrored to a session log file when one is
// attached, so destructive runs leave an audit trail.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/bmcfleet/lib/target"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	bannerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Console writes operator-facing output. Construct with New.
type Console struct {
	out   io.Writer
	in    *bufio.Reader
	log   io.Writer
	color bool
}

// Option configures a Console.
type Option func(*Console)

// WithInput sets the reader confirmation prompts read answers from.
func WithInput(r io.Reader) Option {
	return func(c *Console) { c.in = bufio.NewReader(r) }
}

// WithLog mirrors every rendered line, unstyled, to w.
func WithLog(w io.Writer) Option {
	return func(c *Console) { c.log = w }
}

// WithColor forces styling on or off. Default is off; commands enable
// it when stdout is a terminal.
func WithColor(enabled bool) Option {
	return func(c *Console) { c.color = enabled }
}

// New returns a Console writing to out.
func New(out io.Writer, options ...Option) *Console {
	console := &Console{out: out}
	for _, option := range options {
		option(console)
	}
	return console
}

// render applies a style only when color is enabled.
func (c *Console) render(style lipgloss.Style, s string) string {
	if !c.color {
		return s
	}
	return style.Render(s)
}

// line writes one finished line to the terminal and the session log.
func (c *Console) line(styled, plain string) {
	fmt.Fprintln(c.out, styled)
	if c.log != nil {
		fmt.Fprintln(c.log, plain)
	}
}

// Printf formats a progress line. Outcome words in the runner's line
// format get colored; the mirrored log line stays plain.
func (c *Console) Printf(format string, args ...any) {
	plain := fmt.Sprintf(format, args...)
	c.line(c.colorize(plain), plain)
}

// colorize highlights the outcome portion of a runner progress line.
func (c *Console) colorize(line string) string {
	if !c.color {
		return line
	}
	if idx := strings.Index(line, "→ SUCCESS"); idx >= 0 {
		return line[:idx] + "→ " + successStyle.Render(line[idx+len("→ "):])
	}
	if idx := strings.Index(line, "→ FAILED"); idx >= 0 {
		return line[:idx] + "→ " + failureStyle.Render(line[idx+len("→ "):])
	}
	return line
}

// Banner prints a run heading.
func (c *Console) Banner(text string) {
	c.line(c.render(bannerStyle, text), text)
}

// Warn prints a cautionary line.
func (c *Console) Warn(format string, args ...any) {
	plain := fmt.Sprintf(format, args...)
	c.line(c.render(warnStyle, plain), plain)
}

// Success prints an affirmative closing line.
func (c *Console) Success(format string, args ...any) {
	plain := fmt.Sprintf(format, args...)
	c.line(c.render(successStyle, plain), plain)
}

// Failure prints a closing line for a failed run.
func (c *Console) Failure(format string, args ...any) {
	plain := fmt.Sprintf(format, args...)
	c.line(c.render(failureStyle, plain), plain)
}

// Confirm lists the canonical targets and asks the operator to
// approve the run. It accepts yes/y and no/n (case-insensitive) and
// reprompts on anything else. EOF counts as refusal.
func (c *Console) Confirm(verb string, targets []target.Record) bool {
	c.Banner(fmt.Sprintf("About to run %s on %d target(s):", verb, len(targets)))
	for _, record := range targets {
		c.line(
			fmt.Sprintf("  %s  %s", record.Address, c.render(dimStyle, record.Name)),
			fmt.Sprintf("  %s  %s", record.Address, record.Name),
		)
	}
	return c.ask("Proceed? [yes/no]: ")
}

// ConfirmOverride asks separately about proceeding despite a
// cross-domain conflict. The prompt names the shared addresses so the
// operator approves the specific overlap, not a vague warning.
func (c *Console) ConfirmOverride(conflict error) bool {
	c.Warn("%v", conflict)
	return c.ask("Proceed anyway? [yes/no]: ")
}

func (c *Console) ask(prompt string) bool {
	if c.in == nil {
		return false
	}
	for {
		fmt.Fprint(c.out, prompt)
		if c.log != nil {
			fmt.Fprint(c.log, prompt)
		}
		answer, err := c.in.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if c.log != nil {
			fmt.Fprintln(c.log, answer)
		}
		switch answer {
		case "yes", "y":
			return true
		case "no", "n":
			return false
		}
		if err != nil {
			// EOF with no definitive answer: refuse.
			return false
		}
		c.line("Please answer yes or no.", "Please answer yes or no.")
	}
}
