// Copyright © 2025 Repline contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: history/history_test.go
// Summary: Exercises dedup, capacity eviction and recall write-back.

package history

import (
	"fmt"
	"reflect"
	"testing"
)

func TestAcceptDeduplicates(t *testing.T) {
	h := New(10)
	h.Accept("x")
	h.Accept("y")
	h.Accept("x")
	if got, want := h.Entries(), []string{"y", "x"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("entries = %v, want %v", got, want)
	}
	if h.Len() != 2 {
		t.Fatalf("len = %d, want 2", h.Len())
	}
}

func TestAcceptTrimsTrailingWhitespace(t *testing.T) {
	h := New(10)
	h.Accept("line\n")
	h.Accept("line \t ")
	if got, want := h.Entries(), []string{"line"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("entries = %v, want %v", got, want)
	}
}

func TestCapacityEvictsOldest(t *testing.T) {
	const cap = 5
	h := New(cap)
	for i := 0; i <= cap; i++ {
		h.Accept(fmt.Sprintf("line-%d", i))
	}
	if h.Len() != cap {
		t.Fatalf("len = %d, want %d", h.Len(), cap)
	}
	entries := h.Entries()
	if entries[0] != "line-1" {
		t.Errorf("oldest = %q, want line-1 (line-0 evicted)", entries[0])
	}
	if entries[cap-1] != fmt.Sprintf("line-%d", cap) {
		t.Errorf("newest = %q", entries[cap-1])
	}
}

func TestDefaultCapacity(t *testing.T) {
	h := New(0)
	if h.capacity != DefaultCapacity {
		t.Fatalf("capacity = %d, want %d", h.capacity, DefaultCapacity)
	}
}

func TestRecallWritesBackEdits(t *testing.T) {
	h := New(10)
	h.Accept("one")
	h.Accept("two")

	// Recall from a fresh line: the in-progress text is preserved as a new
	// entry so Down can return to it.
	text, ok := h.Prev("fresh")
	if !ok || text != "two" {
		t.Fatalf("Prev = %q, %v", text, ok)
	}
	// Edit the recalled line, then keep going back.
	text, ok = h.Prev("two EDITED")
	if !ok || text != "one" {
		t.Fatalf("Prev = %q, %v", text, ok)
	}
	// Coming forward again must show the edited version.
	text, ok = h.Next("one")
	if !ok || text != "two EDITED" {
		t.Fatalf("Next = %q, %v", text, ok)
	}
	// And one more step forward reaches the preserved fresh line.
	text, ok = h.Next("two EDITED")
	if !ok || text != "fresh" {
		t.Fatalf("Next = %q, %v", text, ok)
	}
	if ok := h.CanNext(); ok {
		t.Fatalf("CanNext past the newest slot")
	}
}

func TestRecallBounds(t *testing.T) {
	h := New(10)
	if _, ok := h.Prev("x"); ok {
		t.Fatal("Prev on empty history succeeded")
	}
	if _, ok := h.Next("x"); ok {
		t.Fatal("Next on empty history succeeded")
	}
	h.Accept("only")
	if _, ok := h.Next("x"); ok {
		t.Fatal("Next while not recalling succeeded")
	}
	if text, ok := h.Prev("x"); !ok || text != "only" {
		t.Fatalf("Prev = %q, %v", text, ok)
	}
	if _, ok := h.Prev("only"); ok {
		t.Fatal("Prev past the oldest entry succeeded")
	}
}

func TestAcceptResetsCursor(t *testing.T) {
	h := New(10)
	h.Accept("one")
	h.Accept("two")
	h.Prev("fresh")
	h.Accept("three")
	if h.Index() != h.Len() {
		t.Fatalf("index = %d after Accept, want %d", h.Index(), h.Len())
	}
}

func TestSetCapacityEvicts(t *testing.T) {
	h := New(10)
	for i := 0; i < 6; i++ {
		h.Accept(fmt.Sprintf("line-%d", i))
	}
	h.SetCapacity(3)
	if h.Len() != 3 {
		t.Fatalf("len = %d, want 3", h.Len())
	}
	if h.Entries()[0] != "line-3" {
		t.Errorf("oldest = %q, want line-3", h.Entries()[0])
	}
	if h.Index() != h.Len() {
		t.Errorf("index = %d, want %d", h.Index(), h.Len())
	}
}
