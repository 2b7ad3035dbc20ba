// Copyright © 2025 Repline contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: history/history.go
// Summary: Bounded, deduplicating store of submitted lines with recall.
// Usage: Owned by a session; Prev/Next drive up/down-arrow recall.

// Package history keeps previously submitted lines, most recent last, and a
// navigation cursor for recall. Recall writes the live buffer back into the
// slot being left, so edits made to a recalled line survive further
// navigation instead of being thrown away.
package history

import (
	"strings"
	"unicode"
)

// DefaultCapacity bounds the store when the caller does not choose one.
const DefaultCapacity = 200

// History is an insertion-ordered set of lines. The navigation index ranges
// over [0, Len()]; index == Len() means "not recalling", i.e. the user is
// editing a fresh line.
type History struct {
	entries  []string
	capacity int
	index    int
}

// New returns an empty store. A capacity below 1 selects DefaultCapacity.
func New(capacity int) *History {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &History{capacity: capacity}
}

// Len reports the number of stored lines.
func (h *History) Len() int { return len(h.entries) }

// Index reports the current navigation index.
func (h *History) Index() int { return h.index }

// Entries returns a copy of the stored lines, oldest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// ResetCursor leaves recall mode without touching the entries.
func (h *History) ResetCursor() { h.index = len(h.entries) }

// Accept records a submitted line: trailing whitespace is trimmed, a prior
// equal entry is removed so the line becomes most recent, the oldest entry is
// evicted past capacity, and the navigation cursor is reset.
func (h *History) Accept(text string) {
	text = strings.TrimRightFunc(text, unicode.IsSpace)
	for i, e := range h.entries {
		if e == text {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			break
		}
	}
	h.entries = append(h.entries, text)
	for len(h.entries) > h.capacity {
		h.entries = h.entries[1:]
	}
	h.index = len(h.entries)
}

// SetCapacity rebounds the store, evicting oldest entries as needed. Values
// below 1 select DefaultCapacity.
func (h *History) SetCapacity(capacity int) {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	h.capacity = capacity
	for len(h.entries) > h.capacity {
		h.entries = h.entries[1:]
		if h.index > 0 {
			h.index--
		}
	}
}

// CanPrev reports whether there is an older entry to recall.
func (h *History) CanPrev() bool { return h.index > 0 }

// CanNext reports whether there is a newer entry to recall.
func (h *History) CanNext() bool { return h.index < len(h.entries)-1 }

// Prev steps the cursor toward older entries and returns the entry to show.
// The in-progress text is written back first: into the slot being left when
// it exists, appended as a new entry otherwise (the fresh-line case), so
// nothing the user typed is lost.
func (h *History) Prev(current string) (string, bool) {
	if h.index <= 0 {
		return "", false
	}
	h.writeBack(current)
	h.index--
	return h.entries[h.index], true
}

// Next steps the cursor toward newer entries, writing the in-progress text
// back into the slot being left.
func (h *History) Next(current string) (string, bool) {
	if h.index >= len(h.entries)-1 {
		return "", false
	}
	h.writeBack(current)
	h.index++
	return h.entries[h.index], true
}

func (h *History) writeBack(current string) {
	if h.index < len(h.entries) {
		h.entries[h.index] = current
		return
	}
	h.entries = append(h.entries, current)
}
