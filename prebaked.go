// Copyright © 2025 Repline contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: prebaked.go
// Summary: Ready-made read-validate-accept menu loop around a session.
// Usage: repline.ReadAnd(color, begin, again, func(line string) ...)

package repline

import "errors"

// Response tells the menu loop what to do with the line it just read.
type Response int

const (
	// Accept the line and save it to history.
	Accept Response = iota
	// Deny the line and clear the buffer.
	Deny
	// Break ends the loop.
	Break
	// Continue gathers more input and tries again.
	Continue
)

// ReadAnd runs a menu loop: it reads a line, hands it to f, and obeys the
// returned Response. Ctrl-C ends the loop; Ctrl-D clears the buffer but
// still runs f on the old text. Errors returned by f are printed inline in
// red and the loop continues.
func ReadAnd(color, begin, again string, f func(line string) (Response, error)) error {
	return ReadAndMut(color, begin, again, func(_ *Repline, line string) (Response, error) {
		return f(line)
	})
}

// ReadAndMut is ReadAnd with the session exposed to the callback, which may
// reconfigure it or take further input mid-cycle.
func ReadAndMut(color, begin, again string, f func(rl *Repline, line string) (Response, error)) error {
	return menu(New(color, begin, again), f)
}

func menu(rl *Repline, f func(rl *Repline, line string) (Response, error)) error {
	for {
		line, err := rl.Read()
		if err != nil {
			var intr *Interrupted
			var eot *EndOfTransmission
			switch {
			case errors.As(err, &intr):
				return nil
			case errors.As(err, &eot):
				rl.Deny()
				line = eot.Text
			default:
				return err
			}
		}
		// Clear the submitted region before the callback writes output.
		rl.out.WriteString("\x1b[G\x1b[J")
		if err := rl.out.Flush(); err != nil {
			return err
		}
		resp, err := f(rl, line)
		if err != nil {
			if perr := rl.PrintInline("    \x1b[91m" + err.Error() + "\x1b[0m"); perr != nil {
				return perr
			}
			continue
		}
		switch resp {
		case Accept:
			rl.Accept()
		case Deny:
			rl.Deny()
		case Break:
			return nil
		case Continue:
		}
	}
}
