// Copyright © 2025 Repline contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: chars/chars.go
// Summary: Streaming UTF-8 decoder over a blocking byte source.
// Usage: The session pulls one decoded rune per input event via Next.

// Package chars decodes a raw byte stream into runes, one at a time, reading
// exactly the bytes each character needs. Malformed sequences come back as a
// BadUnicode error carrying the bits accumulated so far instead of being
// silently replaced, so the session can abort the read rather than guess.
package chars

import (
	"fmt"
	"io"
)

// BadUnicode is returned when the byte stream does not form a valid UTF-8
// sequence. Its value is the partially accumulated code point, kept for
// diagnostics.
type BadUnicode uint32

func (e BadUnicode) Error() string {
	return fmt.Sprintf("bad unicode: %#x is not a valid code point", uint32(e))
}

// Chars is a lazy, single-pass rune decoder. It is not restartable: every
// call to Next consumes bytes from the underlying reader.
type Chars struct {
	r   io.Reader
	br  io.ByteReader
	buf [1]byte
}

// New returns a decoder over r. When r implements io.ByteReader it is used
// directly; otherwise bytes are pulled with single-byte reads so the decoder
// never consumes ahead of the character it is producing.
func New(r io.Reader) *Chars {
	c := &Chars{r: r}
	if br, ok := r.(io.ByteReader); ok {
		c.br = br
	}
	return c
}

func (c *Chars) readByte() (byte, error) {
	if c.br != nil {
		return c.br.ReadByte()
	}
	for {
		n, err := c.r.Read(c.buf[:])
		if n > 0 {
			return c.buf[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
}

// Next decodes one rune. It returns io.EOF on a clean end of stream,
// including a stream that ends in the middle of a multi-byte sequence.
// A continuation byte that does not match the 10xxxxxx pattern, an invalid
// leading byte, or an accumulated value outside the Unicode range all return
// BadUnicode. Underlying read errors are returned verbatim and terminate
// decoding; they are never skipped.
func (c *Chars) Next() (rune, error) {
	b, err := c.readByte()
	if err != nil {
		return 0, err
	}
	var acc uint32
	var cont int
	switch {
	case b&0x80 == 0x00:
		return rune(b), nil
	case b&0xe0 == 0xc0:
		acc, cont = uint32(b&0x1f), 1
	case b&0xf0 == 0xe0:
		acc, cont = uint32(b&0x0f), 2
	case b&0xf8 == 0xf0:
		acc, cont = uint32(b&0x07), 3
	default:
		return 0, BadUnicode(b)
	}
	for i := 0; i < cont; i++ {
		b, err = c.readByte()
		if err == io.EOF {
			// Truncated sequence at end of stream: exhaustion, not failure.
			return 0, io.EOF
		}
		if err != nil {
			return 0, err
		}
		acc = acc<<6 | uint32(b&0x3f)
		if b&0xc0 != 0x80 {
			return 0, BadUnicode(acc)
		}
	}
	if acc > 0x10ffff || (acc >= 0xd800 && acc <= 0xdfff) {
		return 0, BadUnicode(acc)
	}
	return rune(acc), nil
}
