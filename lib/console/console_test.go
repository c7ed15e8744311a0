// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/bmcfleet/lib/target"
)

func TestPrintfMirrorsToLog(t *testing.T) {
	var out, log strings.Builder
	c := New(&out, WithLog(&log))

	c.Printf("[1/2] node-01 (10.0.0.1) → SUCCESS")

	if got := out.String(); got != "[1/2] node-01 (10.0.0.1) → SUCCESS\n" {
		t.Errorf("out = %q", got)
	}
	if out.String() != log.String() {
		t.Errorf("log = %q, want mirror of out", log.String())
	}
}

func TestColorizedOutcomeKeepsLogPlain(t *testing.T) {
	var out, log strings.Builder
	c := New(&out, WithLog(&log), WithColor(true))

	c.Printf("[1/2] node-01 (10.0.0.1) → FAILED: HTTP 401")

	if !strings.Contains(log.String(), "→ FAILED: HTTP 401") {
		t.Errorf("log lost plain text: %q", log.String())
	}
	if strings.Contains(log.String(), "\x1b[") {
		t.Errorf("log contains ANSI escapes: %q", log.String())
	}
}

func TestConfirmAcceptsYesVariants(t *testing.T) {
	for _, answer := range []string{"yes\n", "y\n", "YES\n", " Y \n"} {
		var out strings.Builder
		c := New(&out, WithInput(strings.NewReader(answer)))
		if !c.Confirm("BMC reset", []target.Record{{Address: "10.0.0.1", Name: "node-01"}}) {
			t.Errorf("answer %q not accepted", answer)
		}
	}
}

func TestConfirmRejectsNoAndEOF(t *testing.T) {
	for _, answer := range []string{"no\n", "n\n", ""} {
		var out strings.Builder
		c := New(&out, WithInput(strings.NewReader(answer)))
		if c.Confirm("BMC reset", []target.Record{{Address: "10.0.0.1"}}) {
			t.Errorf("answer %q accepted, want refusal", answer)
		}
	}
}

func TestConfirmRepromptsOnGarbage(t *testing.T) {
	var out strings.Builder
	c := New(&out, WithInput(strings.NewReader("maybe\nyes\n")))
	if !c.Confirm("power cycle", []target.Record{{Address: "10.0.0.1"}}) {
		t.Fatal("second answer 'yes' not accepted")
	}
	if !strings.Contains(out.String(), "Please answer yes or no.") {
		t.Errorf("missing reprompt: %q", out.String())
	}
}

func TestConfirmListsEveryTarget(t *testing.T) {
	var out strings.Builder
	c := New(&out, WithInput(strings.NewReader("no\n")))
	targets := []target.Record{
		{Address: "10.0.0.1", Name: "node-01"},
		{Address: "10.0.0.2", Name: "node-02"},
	}
	c.Confirm("power cycle", targets)

	for _, record := range targets {
		if !strings.Contains(out.String(), record.Address) || !strings.Contains(out.String(), record.Name) {
			t.Errorf("target %s missing from prompt:\n%s", record.Address, out.String())
		}
	}
	if !strings.Contains(out.String(), "2 target(s)") {
		t.Errorf("prompt missing target count:\n%s", out.String())
	}
}

func TestConfirmWithoutInputRefuses(t *testing.T) {
	var out strings.Builder
	c := New(&out)
	if c.Confirm("power cycle", []target.Record{{Address: "10.0.0.1"}}) {
		t.Error("confirm with no input source must refuse")
	}
}

func TestCountdownFrames(t *testing.T) {
	var out strings.Builder
	c := New(&out)

	c.Countdown(15*time.Second, 15*time.Second)
	c.Countdown(7*time.Second, 15*time.Second)
	c.Countdown(0, 15*time.Second)

	frames := strings.Split(out.String(), "\r")
	if !strings.Contains(out.String(), "15s") || !strings.Contains(out.String(), " 7s") || !strings.Contains(out.String(), " 0s") {
		t.Errorf("frames missing seconds: %q", frames)
	}
	if !strings.HasSuffix(out.String(), "\n") {
		t.Error("final frame should end the line")
	}
}
