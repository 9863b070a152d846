package minifier

import (
	"bufio"
	"errors"
	"io"
)

// eof is returned by the source once input is exhausted.
const eof = -1

// source reads normalized bytes with a single byte of lookahead.
type source struct {
	r         *bufio.Reader
	lookahead int
	peeked    bool
	line      int
	err       error

	// lookaheadLF marks a cached lookahead that is the \n of a \r\n pair.
	lookaheadLF bool
	afterCR     bool
}

func newSource(r io.Reader) *source {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &source{r: br, line: 1}
}

// get returns the next byte. Control characters other than newline become
// spaces and carriage returns become newlines.
func (s *source) get() int {
	var c int
	var crlf bool
	if s.peeked {
		s.peeked = false
		c, crlf = s.lookahead, s.lookaheadLF
	} else {
		c, crlf = s.read()
	}
	// The \n of a \r\n pair ends the line the \r already counted.
	if c == '\n' && !crlf {
		s.line++
	}
	return c
}

// peek returns the next byte without consuming it.
func (s *source) peek() int {
	if !s.peeked {
		s.lookahead, s.lookaheadLF = s.read()
		s.peeked = true
	}
	return s.lookahead
}

// read returns the next normalized byte and whether it is the \n following
// a \r.
func (s *source) read() (int, bool) {
	b, err := s.r.ReadByte()
	if err != nil {
		if !errors.Is(err, io.EOF) && s.err == nil {
			s.err = err
		}
		s.afterCR = false
		return eof, false
	}

	crlf := b == '\n' && s.afterCR
	s.afterCR = b == '\r'

	c := int(b)
	switch {
	case c == '\r':
		return '\n', false
	case c == '\n':
		return c, crlf
	case c < ' ':
		return ' ', false
	}
	return c, false
}
