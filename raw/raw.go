// Copyright © 2025 Repline contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: raw/raw.go
// Summary: Scoped raw-mode bracket for a terminal file descriptor.
// Usage: mode, err := raw.Enable(tty); defer mode.Restore()

// Package raw switches a terminal into raw input mode for the duration of a
// read session. Restore is idempotent and safe on a nil *Mode, so callers
// can defer it unconditionally and still release early on interrupt paths.
package raw

import (
	"os"

	"golang.org/x/term"
)

// Mode holds the terminal state captured when raw mode was entered.
type Mode struct {
	fd    int
	state *term.State
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// Enable puts f's terminal into raw mode and returns the bracket that undoes
// it. A nil or non-terminal f yields a nil Mode, on which Restore is a no-op.
func Enable(f *os.File) (*Mode, error) {
	if !IsTerminal(f) {
		return nil, nil
	}
	fd := int(f.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return &Mode{fd: fd, state: state}, nil
}

// Restore leaves raw mode. The first call restores the saved state; further
// calls, and calls on a nil Mode, do nothing.
func (m *Mode) Restore() error {
	if m == nil || m.state == nil {
		return nil
	}
	state := m.state
	m.state = nil
	return term.Restore(m.fd, state)
}
