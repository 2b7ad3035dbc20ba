// Copyright © 2025 Repline contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: errors.go
// Summary: Error values a read cycle can surface to its caller.
// Usage: Matched with errors.Is / errors.As; interrupt and EOT carry text.

package repline

import "errors"

// ErrEndOfInput reports a clean end of the byte stream, or the explicit
// Esc+Enter close signal. No in-progress text accompanies it.
var ErrEndOfInput = errors.New("end of input")

// Interrupted is returned when the user presses Ctrl-C. Text holds whatever
// was in the buffer; callers typically end their outer loop.
type Interrupted struct {
	Text string
}

func (e *Interrupted) Error() string { return "interrupted (^C)" }

// EndOfTransmission is returned when the user presses Ctrl-D. Text holds the
// in-progress buffer; the caller decides whether to use or discard it.
type EndOfTransmission struct {
	Text string
}

func (e *EndOfTransmission) Error() string { return "end of transmission (^D)" }
