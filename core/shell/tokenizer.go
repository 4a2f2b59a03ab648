package shell

import "strings"

// Scanner lazily splits a string on a single delimiter byte.
//
// Every input yields at least one token: the empty string yields a single
// empty token and consecutive delimiters yield empty tokens between them.
type Scanner struct {
	input string
	delim byte
	pos   int
	done  bool
}

// NewScanner creates a Scanner positioned at the start of s.
func NewScanner(s string, delim byte) *Scanner {
	return &Scanner{input: s, delim: delim}
}

// Reset restarts the scanner over a new input.
func (s *Scanner) Reset(input string) {
	s.input = input
	s.pos = 0
	s.done = false
}

// Next returns the next token, ok is false once the input is exhausted.
func (s *Scanner) Next() (token string, ok bool) {
	if s.done {
		return "", false
	}

	rest := s.input[s.pos:]
	idx := strings.IndexByte(rest, s.delim)
	if idx < 0 {
		s.done = true
		s.pos = len(s.input)
		return rest, true
	}

	s.pos += idx + 1
	return rest[:idx], true
}

// Split returns every token of s.
func Split(s string, delim byte) []string {
	var out []string
	scanner := NewScanner(s, delim)
	for tok, ok := scanner.Next(); ok; tok, ok = scanner.Next() {
		out = append(out, tok)
	}
	return out
}

// ArgArray is a bounded list of tokens.
//
// The zero value has no room for tokens, use NewArgArray.
type ArgArray struct {
	tokens   []string
	capacity int
	scanner  Scanner
}

// NewArgArray creates an empty ArgArray holding at most capacity tokens.
func NewArgArray(capacity int) *ArgArray {
	if capacity < 0 {
		capacity = 0
	}
	return &ArgArray{
		tokens:   make([]string, 0, capacity),
		capacity: capacity,
	}
}

// Fill clears the array and stores the tokens of line. Tokens that don't fit
// are dropped and truncated is set.
//
// Filling a nil array only tokenizes the line.
func (a *ArgArray) Fill(line string, delim byte) (truncated bool) {
	if a == nil {
		return false
	}

	a.Clear()
	a.scanner.delim = delim
	a.scanner.Reset(line)
	for tok, ok := a.scanner.Next(); ok; tok, ok = a.scanner.Next() {
		if len(a.tokens) == a.capacity {
			return true
		}
		a.tokens = append(a.tokens, tok)
	}
	return false
}

// Len returns the number of tokens held.
func (a *ArgArray) Len() int {
	if a == nil {
		return 0
	}
	return len(a.tokens)
}

// Cap returns the maximum number of tokens the array can hold.
func (a *ArgArray) Cap() int {
	if a == nil {
		return 0
	}
	return a.capacity
}

// At returns the i-th token.
func (a *ArgArray) At(i int) string {
	return a.tokens[i]
}

// Set replaces the i-th token.
func (a *ArgArray) Set(i int, token string) {
	a.tokens[i] = token
}

// Args returns a copy of the tokens.
func (a *ArgArray) Args() []string {
	if a == nil {
		return nil
	}
	out := make([]string, len(a.tokens))
	copy(out, a.tokens)
	return out
}

// Clear removes all tokens.
func (a *ArgArray) Clear() {
	if a == nil {
		return
	}
	for i := range a.tokens {
		a.tokens[i] = ""
	}
	a.tokens = a.tokens[:0]
}
