package minifier

import (
	"strings"
	"testing"
)

func TestSourceNormalizes(t *testing.T) {
	s := newSource(strings.NewReader("a\tb\r\nc\x00\x1f\x7f\xc3\xa9"))

	expected := []int{'a', ' ', 'b', '\n', '\n', 'c', ' ', ' ', 0x7f, 0xc3, 0xa9, eof, eof}
	for i, want := range expected {
		if got := s.get(); got != want {
			t.Fatalf("get() #%d = %d, want %d", i, got, want)
		}
	}
}

func TestSourcePeek(t *testing.T) {
	s := newSource(strings.NewReader("ab"))

	if got := s.peek(); got != 'a' {
		t.Fatalf("peek() = %q, want 'a'", rune(got))
	}
	if got := s.peek(); got != 'a' {
		t.Fatalf("second peek() = %q, want 'a'", rune(got))
	}
	if got := s.get(); got != 'a' {
		t.Fatalf("get() after peek = %q, want 'a'", rune(got))
	}
	if got := s.get(); got != 'b' {
		t.Fatalf("get() = %q, want 'b'", rune(got))
	}
	if got := s.peek(); got != eof {
		t.Fatalf("peek() at end = %d, want eof", got)
	}
	if got := s.get(); got != eof {
		t.Fatalf("get() at end = %d, want eof", got)
	}
}

func TestSourceCountsLines(t *testing.T) {
	s := newSource(strings.NewReader("a\nb\r\nc"))

	for s.peek() != eof {
		s.get()
	}
	if s.line != 3 {
		t.Errorf("line = %d, want 3", s.line)
	}
}

func TestSourcePeekDoesNotCountLine(t *testing.T) {
	s := newSource(strings.NewReader("\nx"))

	s.peek()
	if s.line != 1 {
		t.Fatalf("line after peek = %d, want 1", s.line)
	}
	s.get()
	if s.line != 2 {
		t.Errorf("line after get = %d, want 2", s.line)
	}
}
