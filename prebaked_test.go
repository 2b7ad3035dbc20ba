// Copyright © 2025 Repline contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: prebaked_test.go
// Summary: Exercises the menu loop's response handling and error display.

package repline

import (
	"bytes"
	"strings"
	"testing"
)

func newMenuTest(input string) (*Repline, *bytes.Buffer) {
	var out bytes.Buffer
	return WithIO(strings.NewReader(input), &out, "", ">", "+"), &out
}

func TestMenuAcceptsAndBreaksOnInterrupt(t *testing.T) {
	rl, _ := newMenuTest("a\rb\r\x03")
	var lines []string
	err := menu(rl, func(_ *Repline, line string) (Response, error) {
		lines = append(lines, line)
		return Accept, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 || lines[0] != "a\n" || lines[1] != "b\n" {
		t.Fatalf("lines = %q", lines)
	}
	if hist := rl.History(); len(hist) != 2 || hist[0] != "a" || hist[1] != "b" {
		t.Fatalf("history = %q", hist)
	}
}

func TestMenuCtrlDRunsCallbackWithOldText(t *testing.T) {
	rl, _ := newMenuTest("x\x04\x03")
	var lines []string
	err := menu(rl, func(_ *Repline, line string) (Response, error) {
		lines = append(lines, line)
		return Continue, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	// Ctrl-D denies the buffer but the callback still sees the old text.
	if len(lines) != 1 || lines[0] != "x" {
		t.Fatalf("lines = %q", lines)
	}
	if len(rl.History()) != 0 {
		t.Fatalf("denied line recorded: %q", rl.History())
	}
}

func TestMenuBreakResponse(t *testing.T) {
	rl, _ := newMenuTest("stop\rnever read\r")
	calls := 0
	err := menu(rl, func(_ *Repline, _ string) (Response, error) {
		calls++
		return Break, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("callback ran %d times, want 1", calls)
	}
}

func TestMenuDenyResponse(t *testing.T) {
	rl, _ := newMenuTest("nope\r\x03")
	err := menu(rl, func(_ *Repline, _ string) (Response, error) {
		return Deny, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(rl.History()) != 0 {
		t.Fatalf("denied line recorded: %q", rl.History())
	}
}

func TestMenuPrintsCallbackErrors(t *testing.T) {
	rl, out := newMenuTest("bad\r\x03")
	err := menu(rl, func(_ *Repline, _ string) (Response, error) {
		return Continue, &EndOfTransmission{} // any error value will do
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "\x1b[91m") {
		t.Errorf("callback error not shown in red: %q", out.String())
	}
}

func TestMenuPropagatesExhaustion(t *testing.T) {
	rl, _ := newMenuTest("unfinished")
	err := menu(rl, func(_ *Repline, _ string) (Response, error) {
		return Accept, nil
	})
	if err != ErrEndOfInput {
		t.Fatalf("expected ErrEndOfInput, got %v", err)
	}
}
