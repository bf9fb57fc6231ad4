package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports a malformed filter attribute string. It names the
// offending filter, the expected format, and the offending token, per
// the error-string contract every node filter parser must honour.
type ParseError struct {
	Filter   string
	Expected string
	Token    string
	reason   string
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("invalid options for %s filter\nexpected %s", e.Filter, e.Expected)
	if e.reason != "" {
		msg += "\n" + e.reason
	}
	if e.Token != "" {
		msg += ": " + e.Token
	}
	return msg
}

// tokens splits an attribute string on runs of spaces, discarding
// empty fields so that repeated separators collapse to one.
func tokens(s string) []string {
	return strings.Fields(s)
}

// numberToken consumes the next token and parses it as a non-negative
// base-10 integer.
func numberToken(it *tokenIter, filterName, format, position string) (uint32, error) {
	tok, ok := it.next()
	if !ok {
		return 0, &ParseError{Filter: filterName, Expected: format, reason: "missing " + position + " [number]"}
	}
	n, err := strconv.ParseUint(tok, 10, 32)
	if err != nil {
		return 0, &ParseError{Filter: filterName, Expected: format, reason: "cannot parse " + position + " [number]", Token: tok}
	}
	return uint32(n), nil
}

// stringToken consumes the next token verbatim as a string attribute.
func stringToken(it *tokenIter, filterName, format, position string) (string, error) {
	tok, ok := it.next()
	if !ok {
		return "", &ParseError{Filter: filterName, Expected: format, reason: "missing " + position + " [string]"}
	}
	return tok, nil
}

// label consumes the next token and requires it to equal want exactly.
func label(it *tokenIter, filterName, format, want string) error {
	tok, ok := it.next()
	if !ok {
		return &ParseError{Filter: filterName, Expected: format, reason: "missing label " + want}
	}
	if tok != want {
		return &ParseError{Filter: filterName, Expected: format, reason: "expected " + want + ", found " + tok}
	}
	return nil
}

// extra rejects any remaining tokens as trailing input.
func extra(it *tokenIter, filterName, format string) error {
	if tok, ok := it.next(); ok {
		return &ParseError{Filter: filterName, Expected: format, reason: "trailing input after " + format, Token: tok}
	}
	return nil
}

type tokenIter struct {
	toks []string
	pos  int
}

func newTokenIter(s string) *tokenIter {
	return &tokenIter{toks: tokens(s)}
}

func (t *tokenIter) next() (string, bool) {
	if t.pos >= len(t.toks) {
		return "", false
	}
	tok := t.toks[t.pos]
	t.pos++
	return tok, true
}

func (t *tokenIter) peek() (string, bool) {
	if t.pos >= len(t.toks) {
		return "", false
	}
	return t.toks[t.pos], true
}
