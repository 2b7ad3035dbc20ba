// Copyright © 2025 Repline contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: editor/editor.go
// Summary: Dual-deque multi-line text buffer with cursor-aware redrawing.
// Usage: Owned by a session; every mutation keeps the terminal in sync.

// Package editor owns the text being edited and the logical cursor. The
// buffer is split at the cursor into two rune deques, head and tail; their
// concatenation is always the full text and the cursor offset is len(head).
// Newlines are ordinary characters inside the buffer, which is what makes
// the editor pseudo-multiline: each embedded newline starts a continuation
// line under its own "again" prompt.
//
// Every mutating operation takes the output sink and emits the minimal
// redraw for its change. Operations fail only when the sink refuses a write.
package editor

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/boxdyn/repline/ansi"
)

// Editor is the text buffer and cursor for one session.
type Editor struct {
	head []rune // content strictly before the cursor
	tail []rune // content at or after the cursor

	color string // SGR prefix for prompts
	begin string // prompt for the first line
	again string // prompt for continuation lines
}

// New returns an empty buffer with the given prompt configuration.
func New(color, begin, again string) *Editor {
	return &Editor{color: color, begin: begin, again: again}
}

// SetColor replaces the prompt highlight color.
func (e *Editor) SetColor(color string) { e.color = color }

// SetPrompts replaces the begin and again prompts.
func (e *Editor) SetPrompts(begin, again string) {
	e.begin = begin
	e.again = again
}

// String reconstructs the full buffer text, head then tail.
func (e *Editor) String() string {
	return string(e.head) + string(e.tail)
}

// Len reports the total number of characters in the buffer.
func (e *Editor) Len() int { return len(e.head) + len(e.tail) }

// IsEmpty reports whether the buffer holds no characters.
func (e *Editor) IsEmpty() bool { return e.Len() == 0 }

// AtStart reports whether the cursor sits before the first character.
func (e *Editor) AtStart() bool { return len(e.head) == 0 }

// AtEnd reports whether the cursor sits after the last character.
func (e *Editor) AtEnd() bool { return len(e.tail) == 0 }

// AtLineStart reports whether the cursor is at the start of its line.
func (e *Editor) AtLineStart() bool {
	return len(e.head) == 0 || e.head[len(e.head)-1] == '\n'
}

// AtLineEnd reports whether the cursor is at the end of its line.
func (e *Editor) AtLineEnd() bool {
	return len(e.tail) == 0 || e.tail[0] == '\n'
}

// EndsWith reports whether the text before the cursor ends with s.
func (e *Editor) EndsWith(s string) bool {
	pat := []rune(s)
	if len(pat) > len(e.head) {
		return false
	}
	off := len(e.head) - len(pat)
	for i, r := range pat {
		if e.head[off+i] != r {
			return false
		}
	}
	return true
}

// lineStart is the head index just past the last newline, i.e. where the
// cursor's line begins.
func (e *Editor) lineStart() int {
	for i := len(e.head) - 1; i >= 0; i-- {
		if e.head[i] == '\n' {
			return i + 1
		}
	}
	return 0
}

// currentPrompt is the prompt the cursor's line was drawn with.
func (e *Editor) currentPrompt() string {
	if strings.ContainsRune(string(e.head), '\n') {
		return e.again
	}
	return e.begin
}

func (e *Editor) writePrompt(w *ansi.Writer, prompt string) error {
	if err := w.SetColor(e.color); err != nil {
		return err
	}
	if err := w.WriteString(prompt); err != nil {
		return err
	}
	if err := w.ResetColor(); err != nil {
		return err
	}
	return w.WriteRune(' ')
}

// Undraw moves the terminal cursor to the start of the buffer's first drawn
// line and clears everything below. The buffer itself is untouched; callers
// follow up with Redraw or PrintHead.
func (e *Editor) Undraw(w *ansi.Writer) error {
	lines := 0
	for _, r := range e.head {
		if r == '\n' {
			lines++
		}
	}
	if lines == 0 {
		if err := w.MoveToColumn(1); err != nil {
			return err
		}
	} else if err := w.CursorPrevLine(lines); err != nil {
		return err
	}
	return w.ClearToScreenEnd()
}

// Redraw repaints the whole buffer from the current terminal position,
// leaving the cursor where the head ends.
func (e *Editor) Redraw(w *ansi.Writer) error {
	if err := e.writePrompt(w, e.begin); err != nil {
		return err
	}
	if err := e.writeRun(w, e.head); err != nil {
		return err
	}
	if err := w.SavePosition(); err != nil {
		return err
	}
	if err := e.writeRun(w, e.tail); err != nil {
		return err
	}
	return w.RestorePosition()
}

func (e *Editor) writeRun(w *ansi.Writer, runs []rune) error {
	for _, r := range runs {
		if r == '\n' {
			if err := w.WriteString("\r\n"); err != nil {
				return err
			}
			if err := e.writePrompt(w, e.again); err != nil {
				return err
			}
			continue
		}
		if err := w.WriteRune(r); err != nil {
			return err
		}
	}
	return nil
}

// PrintHead redraws the cursor's line up to the cursor: prompt first, then
// everything after the last newline.
func (e *Editor) PrintHead(w *ansi.Writer) error {
	if err := w.MoveToColumn(1); err != nil {
		return err
	}
	if err := e.writePrompt(w, e.currentPrompt()); err != nil {
		return err
	}
	for _, r := range e.head[e.lineStart():] {
		if err := w.WriteRune(r); err != nil {
			return err
		}
	}
	return nil
}

// PrintTail redraws the rest of the cursor's line without moving the visible
// cursor, bracketing the write with save/restore.
func (e *Editor) PrintTail(w *ansi.Writer) error {
	if err := w.SavePosition(); err != nil {
		return err
	}
	if err := w.ClearToLineEnd(); err != nil {
		return err
	}
	for _, r := range e.tail {
		if r == '\n' {
			break
		}
		if err := w.WriteRune(r); err != nil {
			return err
		}
	}
	return w.RestorePosition()
}

// PrintInline writes s at the cursor and puts the cursor back, used for
// transient diagnostics that must not disturb the edit position.
func (e *Editor) PrintInline(w *ansi.Writer, s string) error {
	if err := w.SavePosition(); err != nil {
		return err
	}
	if err := w.WriteString(s); err != nil {
		return err
	}
	return w.RestorePosition()
}

// Push inserts c at the cursor. A newline advances to a fresh continuation
// line; when a tail exists the region below is undrawn and repainted, since
// the old line contents are no longer contiguous with the cursor.
func (e *Editor) Push(c rune, w *ansi.Writer) error {
	// Tail optimization: nothing after the cursor means nothing to repaint.
	if len(e.tail) == 0 {
		e.head = append(e.head, c)
		if c == '\n' {
			if err := w.WriteString("\r\n"); err != nil {
				return err
			}
			return e.PrintHead(w)
		}
		return w.WriteRune(c)
	}

	if c == '\n' {
		if err := e.Undraw(w); err != nil {
			return err
		}
		e.head = append(e.head, c)
		return e.Redraw(w)
	}
	e.head = append(e.head, c)
	if err := w.WriteRune(c); err != nil {
		return err
	}
	return e.PrintTail(w)
}

// Submit appends the terminating newline and advances the terminal to a
// fresh row without echoing a continuation prompt. Only meaningful with the
// cursor at the buffer end.
func (e *Editor) Submit(w *ansi.Writer) error {
	e.head = append(e.head, '\n')
	return w.WriteString("\r\n")
}

// Extend pushes every character of s.
func (e *Editor) Extend(s string, w *ansi.Writer) error {
	for _, c := range s {
		if err := e.Push(c, w); err != nil {
			return err
		}
	}
	return nil
}

// Pop erases the character before the cursor and returns it. Erasing a
// newline pulls the cursor up to the previous terminal row and repaints;
// ok is false when there was nothing to erase.
func (e *Editor) Pop(w *ansi.Writer) (c rune, ok bool, err error) {
	if len(e.head) == 0 {
		return 0, false, nil
	}
	c = e.head[len(e.head)-1]
	if c == '\n' {
		if err := e.Undraw(w); err != nil {
			return 0, false, err
		}
		e.head = e.head[:len(e.head)-1]
		return c, true, e.Redraw(w)
	}
	e.head = e.head[:len(e.head)-1]
	if err := w.CursorLeft(runewidth.RuneWidth(c)); err != nil {
		return 0, false, err
	}
	return c, true, e.PrintTail(w)
}

// Delete erases the character at the cursor and returns it. Erasing a
// newline joins two lines, so the whole region below is repainted.
func (e *Editor) Delete(w *ansi.Writer) (c rune, ok bool, err error) {
	if len(e.tail) == 0 {
		return 0, false, nil
	}
	c = e.tail[0]
	if c == '\n' {
		if err := e.Undraw(w); err != nil {
			return 0, false, err
		}
		e.tail = e.tail[1:]
		return c, true, e.Redraw(w)
	}
	e.tail = e.tail[1:]
	return c, true, e.PrintTail(w)
}

// EraseWord erases backward until a whitespace character has been erased or
// the buffer is empty. The terminating whitespace is consumed.
func (e *Editor) EraseWord(w *ansi.Writer) error {
	for {
		c, ok, err := e.Pop(w)
		if err != nil {
			return err
		}
		if !ok || unicode.IsSpace(c) {
			return nil
		}
	}
}

// CursorBack moves the cursor left by steps characters, crossing newlines by
// repainting on the previous terminal row. It stops at the buffer start.
func (e *Editor) CursorBack(steps int, w *ansi.Writer) error {
	for ; steps > 0; steps-- {
		if len(e.head) == 0 {
			return nil
		}
		c := e.head[len(e.head)-1]
		if c == '\n' {
			if err := e.Undraw(w); err != nil {
				return err
			}
		}
		e.head = e.head[:len(e.head)-1]
		e.tail = append([]rune{c}, e.tail...)
		if c == '\n' {
			if err := e.Redraw(w); err != nil {
				return err
			}
			continue
		}
		if err := w.CursorLeft(runewidth.RuneWidth(c)); err != nil {
			return err
		}
	}
	return nil
}

// CursorForward moves the cursor right by steps characters, stopping at the
// buffer end.
func (e *Editor) CursorForward(steps int, w *ansi.Writer) error {
	for ; steps > 0; steps-- {
		if len(e.tail) == 0 {
			return nil
		}
		c := e.tail[0]
		if c == '\n' {
			if err := e.Undraw(w); err != nil {
				return err
			}
		}
		e.tail = e.tail[1:]
		e.head = append(e.head, c)
		if c == '\n' {
			if err := e.Redraw(w); err != nil {
				return err
			}
			continue
		}
		if err := w.CursorRight(runewidth.RuneWidth(c)); err != nil {
			return err
		}
	}
	return nil
}

// Home moves the cursor to the start of its line.
func (e *Editor) Home(w *ansi.Writer) error {
	for !e.AtLineStart() {
		if err := e.CursorBack(1, w); err != nil {
			return err
		}
	}
	return nil
}

// End moves the cursor to the end of its line.
func (e *Editor) End(w *ansi.Writer) error {
	for !e.AtLineEnd() {
		if err := e.CursorForward(1, w); err != nil {
			return err
		}
	}
	return nil
}

// isWordRune is the word-boundary class: alphanumerics and newlines on one
// side, everything else (whitespace AND punctuation) on the other. Word
// motion runs while the adjacent character stays in its starting class, so a
// run of punctuation skips exactly like a run of spaces.
func isWordRune(r rune) bool {
	return r == '\n' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// WordBack moves the cursor left until the class of the preceding character
// flips.
func (e *Editor) WordBack(w *ansi.Writer) error {
	if len(e.head) == 0 {
		return nil
	}
	class := isWordRune(e.head[len(e.head)-1])
	for len(e.head) > 0 && isWordRune(e.head[len(e.head)-1]) == class {
		if err := e.CursorBack(1, w); err != nil {
			return err
		}
	}
	return nil
}

// WordForward moves the cursor right until the class of the character under
// the cursor flips.
func (e *Editor) WordForward(w *ansi.Writer) error {
	if len(e.tail) == 0 {
		return nil
	}
	class := isWordRune(e.tail[0])
	for len(e.tail) > 0 && isWordRune(e.tail[0]) == class {
		if err := e.CursorForward(1, w); err != nil {
			return err
		}
	}
	return nil
}

// ToStart moves the cursor to the very start of the buffer by repeated
// line-wise motion.
func (e *Editor) ToStart(w *ansi.Writer) error {
	for len(e.head) > 0 {
		if err := e.Home(w); err != nil {
			return err
		}
		if len(e.head) == 0 {
			return nil
		}
		if err := e.CursorBack(1, w); err != nil {
			return err
		}
	}
	return nil
}

// ToEnd moves the cursor to the very end of the buffer by repeated line-wise
// motion.
func (e *Editor) ToEnd(w *ansi.Writer) error {
	for len(e.tail) > 0 {
		if err := e.End(w); err != nil {
			return err
		}
		if len(e.tail) == 0 {
			return nil
		}
		if err := e.CursorForward(1, w); err != nil {
			return err
		}
	}
	return nil
}

// CursorUp moves to the previous line, keeping the horizontal offset and
// clamping to the shorter line's end. On the first line it does nothing.
func (e *Editor) CursorUp(w *ansi.Writer) error {
	col := len(e.head) - e.lineStart()
	if e.lineStart() == 0 {
		return nil // already on the first line
	}
	if err := e.Home(w); err != nil {
		return err
	}
	if err := e.CursorBack(1, w); err != nil {
		return err
	}
	if err := e.Home(w); err != nil {
		return err
	}
	return e.advance(col, w)
}

// CursorDown moves to the next line, keeping the horizontal offset and
// clamping to the shorter line's end. On the last line it does nothing.
func (e *Editor) CursorDown(w *ansi.Writer) error {
	hasNext := false
	for _, r := range e.tail {
		if r == '\n' {
			hasNext = true
			break
		}
	}
	if !hasNext {
		return nil
	}
	col := len(e.head) - e.lineStart()
	if err := e.End(w); err != nil {
		return err
	}
	if err := e.CursorForward(1, w); err != nil {
		return err
	}
	return e.advance(col, w)
}

func (e *Editor) advance(col int, w *ansi.Writer) error {
	for ; col > 0 && !e.AtLineEnd(); col-- {
		if err := e.CursorForward(1, w); err != nil {
			return err
		}
	}
	return nil
}

// Restore replaces the buffer content with s and repaints the whole region,
// leaving the cursor at the end. Used by history recall.
func (e *Editor) Restore(s string, w *ansi.Writer) error {
	if err := e.Undraw(w); err != nil {
		return err
	}
	e.Clear()
	if err := e.PrintHead(w); err != nil {
		return err
	}
	return e.Extend(s, w)
}

// Clear empties the buffer without touching the screen.
func (e *Editor) Clear() {
	e.head = e.head[:0]
	e.tail = e.tail[:0]
}
