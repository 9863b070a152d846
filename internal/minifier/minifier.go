// Package minifier removes comments and insignificant whitespace from
// JavaScript source while leaving string and regular expression literals
// untouched.
//
// The scanner holds two characters: a, the character waiting to be written,
// and b, the lookahead that decides what happens to a. It never builds a
// syntax tree; whether a slash starts a regular expression is decided only
// from the significant character before it.
package minifier

import (
	"bufio"
	"io"
	"strings"
)

// action is what the scanner does with the current pair.
type action int

const (
	// emit writes a, then moves b into a and fetches a new b.
	emit action = iota + 1
	// shift drops a, then moves b into a and fetches a new b.
	shift
	// skip drops b and fetches a new one.
	skip
)

type minifier struct {
	in  *source
	out *bufio.Writer
	err error

	a, b int

	// last is the most recent byte written.
	last    int
	started bool

	// gapA is set when whitespace was dropped between last and a,
	// gapB when whitespace was dropped between a and b.
	gapA, gapB bool
}

// Minify returns the minified form of src. On a fault the returned string
// holds the output produced up to that point.
func Minify(src string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(src))
	err := MinifyStream(strings.NewReader(src), &sb)
	return sb.String(), err
}

// MinifyStream reads JavaScript from r and writes the minified result to w.
// Output produced before a fault is flushed to w before the fault is returned.
func MinifyStream(r io.Reader, w io.Writer) error {
	m := &minifier{
		in:   newSource(r),
		out:  bufio.NewWriter(w),
		last: eof,
	}

	err := m.run()
	if ferr := m.out.Flush(); err == nil {
		err = ferr
	}
	return err
}

func (m *minifier) run() error {
	m.a = '\n'
	if err := m.do(skip); err != nil {
		return err
	}

	for m.a != eof {
		if err := m.do(m.decide()); err != nil {
			return err
		}
		if m.err != nil {
			return m.err
		}
	}

	if m.in.err != nil {
		return m.in.err
	}
	return m.err
}

// decide picks the action for the current (a, b) pair.
func (m *minifier) decide() action {
	switch m.a {
	case ' ':
		if isIdentifier(m.b) {
			return emit
		}
		return shift
	case '\n':
		switch m.b {
		case '{', '[', '(', '+', '-':
			return emit
		case ' ':
			return skip
		}
		if isIdentifier(m.b) {
			return emit
		}
		return shift
	}

	switch m.b {
	case ' ':
		if isIdentifier(m.a) {
			return emit
		}
		return skip
	case '\n':
		switch m.a {
		case '{', '}', ']', ')', '+', '-', '"', '\'':
			return emit
		}
		if isIdentifier(m.a) {
			return emit
		}
		return skip
	}
	return emit
}

func (m *minifier) do(act action) error {
	switch act {
	case emit, shift:
		if act == emit {
			m.emitA()
			m.gapA = m.gapB
		} else {
			m.gapA = m.gapA || m.gapB || isSpace(m.a)
		}
		m.gapB = false

		m.a = m.b
		if m.a == '\'' || m.a == '"' {
			if err := m.copyString(); err != nil {
				return err
			}
		}
	case skip:
		m.gapB = m.gapB || isSpace(m.b)
	}
	return m.advance()
}

// advance refreshes b and copies a regular expression literal if b opens one.
func (m *minifier) advance() error {
	b, err := m.next()
	if err != nil {
		return err
	}
	m.b = b

	if m.b == '/' && isRegexContext(m.a) {
		return m.copyRegex()
	}
	return nil
}

// emitA writes a. A space is put back when dropping whitespace would fuse a
// with the previous byte into a different token, as in "a - -b".
func (m *minifier) emitA() {
	if m.gapA && fuses(m.last, m.a) {
		m.put(' ')
	}
	m.put(m.a)
}

func (m *minifier) put(c int) {
	if c == '\n' && !m.started {
		return
	}
	m.started = true
	m.last = c
	if m.err == nil {
		m.err = m.out.WriteByte(byte(c))
	}
}

// fault reports kind at line, unless a read error is what cut the input short.
func (m *minifier) fault(kind error, line int) error {
	if m.in.err != nil {
		return m.in.err
	}
	return &SyntaxError{Err: kind, Line: line}
}

// isIdentifier reports whether c may be part of an identifier, number or
// keyword. Every byte above '~' counts, so non-ASCII text is never split.
func isIdentifier(c int) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= '0' && c <= '9') ||
		(c >= 'A' && c <= 'Z') ||
		c == '_' || c == '$' || c == '\\' || c > 126
}

// isRegexContext reports whether a slash following c must open a regular
// expression literal rather than divide.
func isRegexContext(c int) bool {
	switch c {
	case '(', ',', '=', '[', '!', ':', '&', '|', '?', '{', '}', ';', '\n':
		return true
	}
	return false
}

func isSpace(c int) bool {
	return c == ' ' || c == '\n'
}

// fuses reports whether writing next directly after prev forms ++, --, // or /*.
func fuses(prev, next int) bool {
	switch prev {
	case '+', '-':
		return next == prev
	case '/':
		return next == '/' || next == '*'
	}
	return false
}
