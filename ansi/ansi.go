// Copyright © 2025 Repline contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ansi/ansi.go
// Summary: Buffered terminal output sink emitting raw CSI sequences.
// Usage: The editor composes these primitives for all cursor-relative redraws.

// Package ansi is the output side of the line editor: a buffered writer over
// the terminal that exposes the handful of CSI primitives the editor needs.
// Nothing reaches the terminal until Flush, so a whole redraw lands in one
// write per input event.
package ansi

import (
	"bufio"
	"io"
	"strconv"
)

// Pre-allocated sequence fragments (avoid allocations during redraw).
var (
	csi         = []byte("\x1b[")
	sgrReset    = []byte("\x1b[0m")
	savePos     = []byte("\x1b7")
	restorePos  = []byte("\x1b8")
	clearScreen = []byte("\x1b[0J") // cursor to end of screen
	clearLine   = []byte("\x1b[0K") // cursor to end of line
)

// Writer is a buffered character sink for a VT100-compatible terminal.
type Writer struct {
	w *bufio.Writer
}

// NewWriter wraps w in a buffered ANSI sink.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

func (a *Writer) param(prefix byte, n int, final byte) error {
	if _, err := a.w.Write(csi); err != nil {
		return err
	}
	if prefix != 0 {
		if err := a.w.WriteByte(prefix); err != nil {
			return err
		}
	}
	if _, err := a.w.WriteString(strconv.Itoa(n)); err != nil {
		return err
	}
	return a.w.WriteByte(final)
}

// MoveToColumn moves the cursor to the 1-based column col on the current row.
func (a *Writer) MoveToColumn(col int) error {
	if col < 1 {
		col = 1
	}
	return a.param(0, col, 'G')
}

// CursorUp moves the cursor up n rows, keeping the column.
func (a *Writer) CursorUp(n int) error {
	if n < 1 {
		return nil
	}
	return a.param(0, n, 'A')
}

// CursorDown moves the cursor down n rows, keeping the column.
func (a *Writer) CursorDown(n int) error {
	if n < 1 {
		return nil
	}
	return a.param(0, n, 'B')
}

// CursorRight moves the cursor right n columns.
func (a *Writer) CursorRight(n int) error {
	if n < 1 {
		return nil
	}
	return a.param(0, n, 'C')
}

// CursorLeft moves the cursor left n columns.
func (a *Writer) CursorLeft(n int) error {
	if n < 1 {
		return nil
	}
	return a.param(0, n, 'D')
}

// CursorPrevLine moves the cursor to column 1, n rows up (CPL).
func (a *Writer) CursorPrevLine(n int) error {
	if n < 1 {
		n = 1
	}
	return a.param(0, n, 'F')
}

// SavePosition records the cursor position (DECSC).
func (a *Writer) SavePosition() error {
	_, err := a.w.Write(savePos)
	return err
}

// RestorePosition returns the cursor to the last saved position (DECRC).
func (a *Writer) RestorePosition() error {
	_, err := a.w.Write(restorePos)
	return err
}

// ClearToScreenEnd erases from the cursor to the end of the screen.
func (a *Writer) ClearToScreenEnd() error {
	_, err := a.w.Write(clearScreen)
	return err
}

// ClearToLineEnd erases from the cursor to the end of the current line.
func (a *Writer) ClearToLineEnd() error {
	_, err := a.w.Write(clearLine)
	return err
}

// SetColor writes a caller-supplied SGR color prefix verbatim. An empty code
// writes nothing, so uncolored prompts cost no bytes.
func (a *Writer) SetColor(code string) error {
	if code == "" {
		return nil
	}
	_, err := a.w.WriteString(code)
	return err
}

// ResetColor restores the default text attributes.
func (a *Writer) ResetColor() error {
	_, err := a.w.Write(sgrReset)
	return err
}

// WriteRune writes one character at the cursor.
func (a *Writer) WriteRune(r rune) error {
	_, err := a.w.WriteRune(r)
	return err
}

// WriteString writes s at the cursor.
func (a *Writer) WriteString(s string) error {
	_, err := a.w.WriteString(s)
	return err
}

// Flush pushes everything buffered since the last flush to the terminal.
func (a *Writer) Flush() error {
	return a.w.Flush()
}
