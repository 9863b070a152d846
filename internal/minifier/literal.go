package minifier

// next returns the next character with comments removed. A line comment
// yields the newline (or eof) that ends it, a block comment a single space.
func (m *minifier) next() (int, error) {
	c := m.in.get()
	if c != '/' {
		return c, nil
	}

	switch m.in.peek() {
	case '/':
		for {
			c = m.in.get()
			if c == '\n' || c == eof {
				return c, nil
			}
		}
	case '*':
		line := m.in.line
		m.in.get()
		for {
			switch m.in.get() {
			case '*':
				if m.in.peek() == '/' {
					m.in.get()
					return ' ', nil
				}
			case eof:
				return eof, m.fault(ErrUnterminatedComment, line)
			}
		}
	}
	return c, nil
}

// copyString writes the quoted string opened by a. On return a holds the
// closing quote, which the caller writes like any other character.
func (m *minifier) copyString() error {
	quote := m.a
	line := m.in.line

	for {
		m.put(m.a)
		m.a = m.in.get()
		if m.a == quote {
			break
		}
		if m.a <= '\n' {
			return m.fault(ErrUnterminatedString, line)
		}
		if m.a == '\\' {
			m.put(m.a)
			m.a = m.in.get()
			if m.a == eof {
				return m.fault(ErrUnterminatedString, line)
			}
		}
	}

	m.gapA = false
	return nil
}

// copyRegex writes a and the regular expression literal opened by b. On
// return a holds the closing slash and b the character after it.
func (m *minifier) copyRegex() error {
	line := m.in.line

	m.emitA()
	m.put(m.b)
	for {
		m.a = m.in.get()
		if m.a == '/' {
			break
		}
		if m.a == '\\' {
			m.put(m.a)
			m.a = m.in.get()
		}
		if m.a <= '\n' {
			return m.fault(ErrUnterminatedRegexLiteral, line)
		}
		m.put(m.a)
	}

	m.gapA, m.gapB = false, false
	b, err := m.next()
	if err != nil {
		return err
	}
	m.b = b
	return nil
}
