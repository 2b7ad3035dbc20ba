// Copyright © 2025 Repline contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ansi/ansi_test.go
// Summary: Verifies emitted CSI sequences and flush buffering.

package ansi

import (
	"bytes"
	"testing"
)

func TestPrimitives(t *testing.T) {
	tests := []struct {
		name string
		emit func(*Writer) error
		want string
	}{
		{"move to column", func(w *Writer) error { return w.MoveToColumn(3) }, "\x1b[3G"},
		{"move to column clamps", func(w *Writer) error { return w.MoveToColumn(0) }, "\x1b[1G"},
		{"cursor up", func(w *Writer) error { return w.CursorUp(2) }, "\x1b[2A"},
		{"cursor down", func(w *Writer) error { return w.CursorDown(1) }, "\x1b[1B"},
		{"cursor right", func(w *Writer) error { return w.CursorRight(4) }, "\x1b[4C"},
		{"cursor left", func(w *Writer) error { return w.CursorLeft(2) }, "\x1b[2D"},
		{"zero motion is silent", func(w *Writer) error { return w.CursorLeft(0) }, ""},
		{"prev line", func(w *Writer) error { return w.CursorPrevLine(3) }, "\x1b[3F"},
		{"save", func(w *Writer) error { return w.SavePosition() }, "\x1b7"},
		{"restore", func(w *Writer) error { return w.RestorePosition() }, "\x1b8"},
		{"clear screen end", func(w *Writer) error { return w.ClearToScreenEnd() }, "\x1b[0J"},
		{"clear line end", func(w *Writer) error { return w.ClearToLineEnd() }, "\x1b[0K"},
		{"set color", func(w *Writer) error { return w.SetColor("\x1b[33m") }, "\x1b[33m"},
		{"empty color is silent", func(w *Writer) error { return w.SetColor("") }, ""},
		{"reset color", func(w *Writer) error { return w.ResetColor() }, "\x1b[0m"},
		{"rune", func(w *Writer) error { return w.WriteRune('界') }, "界"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewWriter(&buf)
			if err := tt.emit(w); err != nil {
				t.Fatal(err)
			}
			if err := w.Flush(); err != nil {
				t.Fatal(err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBufferedUntilFlush(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.WriteString("pending")
	if buf.Len() != 0 {
		t.Fatalf("write reached the sink before Flush: %q", buf.String())
	}
	w.Flush()
	if buf.String() != "pending" {
		t.Fatalf("flush lost data: %q", buf.String())
	}
}
