// Copyright © 2025 Repline contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: repline.go
// Summary: The session: key dispatch, escape-sequence machine, read loop.
// Usage: rl := repline.New(color, begin, again); text, err := rl.Read()

// Package repline is a small pseudo-multiline line-editing library for ANSI
// terminals. A session owns a byte decoder, a text buffer and a history
// store; Read drives the loop that turns raw keystrokes into edits and
// returns the submitted text.
package repline

import (
	"fmt"
	"io"
	"os"

	"github.com/boxdyn/repline/ansi"
	"github.com/boxdyn/repline/chars"
	"github.com/boxdyn/repline/editor"
	"github.com/boxdyn/repline/history"
	"github.com/boxdyn/repline/raw"
)

// indent is the literal group inserted by Tab and removed whole by a
// dedenting backspace.
const indent = "    "

// Repline reads and edits lines. One session owns all of its mutable state;
// concurrent sessions need nothing beyond independent instances.
type Repline struct {
	in   *chars.Chars
	tty  *os.File // raw-mode target when the input is a terminal
	out  *ansi.Writer
	ed   *editor.Editor
	hist *history.History
}

// New builds a session over stdin/stdout. Raw mode is entered for the
// duration of each Read when stdin is a terminal.
func New(color, begin, again string) *Repline {
	return WithIO(os.Stdin, os.Stdout, color, begin, again)
}

// WithInput builds a session reading from r and writing to stdout. Raw mode
// is only toggled when r is a terminal file, so scripted readers just work.
func WithInput(r io.Reader, color, begin, again string) *Repline {
	return WithIO(r, os.Stdout, color, begin, again)
}

// WithIO builds a session over an arbitrary reader and writer.
func WithIO(r io.Reader, w io.Writer, color, begin, again string) *Repline {
	rl := &Repline{
		in:   chars.New(r),
		out:  ansi.NewWriter(w),
		ed:   editor.New(color, begin, again),
		hist: history.New(0),
	}
	if f, ok := r.(*os.File); ok && raw.IsTerminal(f) {
		rl.tty = f
	}
	return rl
}

// SwapInput replaces the byte source, keeping the buffer and history. Useful
// for feeding scripted input before handing the session to the user.
func (r *Repline) SwapInput(in io.Reader) {
	r.in = chars.New(in)
	r.tty = nil
	if f, ok := in.(*os.File); ok && raw.IsTerminal(f) {
		r.tty = f
	}
}

// SetColor replaces the prompt highlight color.
func (r *Repline) SetColor(color string) { r.ed.SetColor(color) }

// SetPrompts replaces the begin and again prompts.
func (r *Repline) SetPrompts(begin, again string) { r.ed.SetPrompts(begin, again) }

// SetHistoryCapacity rebounds the history store (default 200).
func (r *Repline) SetHistoryCapacity(n int) { r.hist.SetCapacity(n) }

// History returns a copy of the stored lines, oldest first.
func (r *Repline) History() []string { return r.hist.Entries() }

// Accept records the current buffer in history and clears it for the next
// read. Call it after the caller has validated a submitted line.
func (r *Repline) Accept() {
	r.hist.Accept(r.ed.String())
	r.ed.Clear()
}

// Deny clears the current buffer without recording it.
func (r *Repline) Deny() {
	r.ed.Clear()
	r.hist.ResetCursor()
}

// PrintInline writes s at the terminal cursor and flushes, without moving
// the edit position. Used by menu loops for inline diagnostics.
func (r *Repline) PrintInline(s string) error {
	if err := r.ed.PrintInline(r.out, s); err != nil {
		return err
	}
	return r.out.Flush()
}

// Read runs one edit session: it enters raw mode (when attached to a
// terminal), prompts, and dispatches keystrokes until the line is submitted
// with Enter at the end of the buffer. The returned text keeps its embedded
// and trailing newlines. Ctrl-C and Ctrl-D surface as *Interrupted and
// *EndOfTransmission carrying the in-progress text; raw mode is released on
// every exit path.
func (r *Repline) Read() (string, error) {
	mode, err := raw.Enable(r.tty)
	if err != nil {
		return "", fmt.Errorf("enter raw mode: %w", err)
	}
	defer mode.Restore()

	if err := r.ed.PrintHead(r.out); err != nil {
		return "", err
	}
	for {
		if err := r.out.Flush(); err != nil {
			return "", err
		}
		c, err := r.in.Next()
		if err != nil {
			return "", decodeErr(err)
		}
		switch {
		case c == 0x03: // Ctrl-C: interrupt, immediately ends the session
			mode.Restore()
			r.out.WriteString("\r\n")
			r.out.Flush()
			return "", &Interrupted{Text: r.ed.String()}
		case c == 0x04: // Ctrl-D: end of transmission
			mode.Restore()
			r.out.WriteString("\r\n")
			r.out.Flush()
			return "", &EndOfTransmission{Text: r.ed.String()}
		case c == '\t':
			if err := r.ed.Extend(indent, r.out); err != nil {
				return "", err
			}
		case c == '\n':
			// Bare line feed without carriage return is swallowed.
		case c == '\r':
			// Enter submits only at the end of the buffer; mid-buffer it
			// just breaks the line. Submission does not echo a trailing
			// prompt line.
			if r.ed.AtEnd() {
				if err := r.ed.Submit(r.out); err != nil {
					return "", err
				}
				if err := r.out.Flush(); err != nil {
					return "", err
				}
				return r.ed.String(), nil
			}
			if err := r.ed.Push('\n', r.out); err != nil {
				return "", err
			}
		case c == 0x17: // Ctrl-W
			if err := r.ed.EraseWord(r.out); err != nil {
				return "", err
			}
		case c == 0x1b:
			if err := r.escape(); err != nil {
				return "", err
			}
		case c == 0x08 || c == 0x7f:
			if err := r.backspace(); err != nil {
				return "", err
			}
		case c < 0x20:
			// Remaining control characters are ignored.
		default:
			if err := r.ed.Push(c, r.out); err != nil {
				return "", err
			}
		}
	}
}

// backspace erases one character, or a whole trailing indent group in one
// step (dedent).
func (r *Repline) backspace() error {
	if !r.ed.EndsWith(indent) {
		_, _, err := r.ed.Pop(r.out)
		return err
	}
	for i := 0; i < len(indent); i++ {
		if _, _, err := r.ed.Pop(r.out); err != nil {
			return err
		}
	}
	return nil
}

// escape handles input after the escape byte. Esc followed by Enter is the
// explicit close signal; anything that is not a CSI introducer is swallowed
// so a partial sequence never leaks into the buffer.
func (r *Repline) escape() error {
	c, err := r.in.Next()
	if err != nil {
		return decodeErr(err)
	}
	switch c {
	case '[':
		return r.csi()
	case '\r':
		return ErrEndOfInput
	default:
		return nil
	}
}

// csi dispatches a control sequence. The look-ahead depth is the state: each
// nested read narrows the sequence until a full match or a mismatch, and a
// mismatch discards the partial progress without echoing it.
func (r *Repline) csi() error {
	c, err := r.in.Next()
	if err != nil {
		return decodeErr(err)
	}
	switch c {
	case 'A': // up: recall when at buffer start, line motion otherwise
		if r.ed.AtStart() && r.hist.CanPrev() {
			return r.recallPrev()
		}
		return r.ed.CursorUp(r.out)
	case 'B': // down: recall when at buffer end, line motion otherwise
		if r.ed.AtEnd() && r.hist.CanNext() {
			return r.recallNext()
		}
		return r.ed.CursorDown(r.out)
	case 'C':
		return r.ed.CursorForward(1, r.out)
	case 'D':
		return r.ed.CursorBack(1, r.out)
	case 'H':
		return r.ed.Home(r.out)
	case 'F':
		return r.ed.End(r.out)
	case '1':
		return r.csiModifier()
	case '3': // delete key
		c, err := r.in.Next()
		if err != nil {
			return decodeErr(err)
		}
		if c == '~' {
			_, _, err := r.ed.Delete(r.out)
			return err
		}
		return nil
	case '5': // page up
		c, err := r.in.Next()
		if err != nil {
			return decodeErr(err)
		}
		if c == '~' {
			return r.ed.ToStart(r.out)
		}
		return nil
	case '6': // page down
		c, err := r.in.Next()
		if err != nil {
			return decodeErr(err)
		}
		if c == '~' {
			return r.ed.ToEnd(r.out)
		}
		return nil
	default:
		return nil
	}
}

// csiModifier handles the "1;5" Ctrl-modifier prefix (Ctrl-Arrow word
// motion). Other modifier letters are recognized but unbound.
func (r *Repline) csiModifier() error {
	c, err := r.in.Next()
	if err != nil {
		return decodeErr(err)
	}
	if c != ';' {
		return nil
	}
	if c, err = r.in.Next(); err != nil {
		return decodeErr(err)
	}
	if c != '5' {
		return nil
	}
	if c, err = r.in.Next(); err != nil {
		return decodeErr(err)
	}
	switch c {
	case 'C':
		return r.ed.WordForward(r.out)
	case 'D':
		return r.ed.WordBack(r.out)
	default:
		return nil
	}
}

// recallPrev swaps the buffer for the previous history entry, leaving the
// cursor at the buffer start. In-progress edits are written back first.
func (r *Repline) recallPrev() error {
	text, ok := r.hist.Prev(r.ed.String())
	if !ok {
		return nil
	}
	if err := r.ed.Restore(text, r.out); err != nil {
		return err
	}
	return r.ed.ToStart(r.out)
}

// recallNext swaps the buffer for the next history entry, leaving the cursor
// at the buffer end.
func (r *Repline) recallNext() error {
	text, ok := r.hist.Next(r.ed.String())
	if !ok {
		return nil
	}
	return r.ed.Restore(text, r.out)
}

// decodeErr maps decoder results onto the session's error surface: clean
// exhaustion becomes ErrEndOfInput, malformed input passes through, and
// anything else is an underlying I/O failure.
func decodeErr(err error) error {
	if err == io.EOF {
		return ErrEndOfInput
	}
	if _, ok := err.(chars.BadUnicode); ok {
		return err
	}
	return fmt.Errorf("read input: %w", err)
}
