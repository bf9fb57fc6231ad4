package parse

import "errors"

// ErrNoMatches is returned when a query executed successfully but found
// zero definitions for the searched identifier in a blob. Callers
// aggregating many blobs into a history should treat this as "skip this
// file", not as a hard failure.
var ErrNoMatches = errors.New("no matches found for identifier")

// ErrFilterEmpty is returned by ParsedFile.Filter when the predicate
// rejects every remaining match, which would otherwise violate the
// invariant that a live ParsedFile always has at least one match.
var ErrFilterEmpty = errors.New("filter removed all matches")

// ParseError wraps a failure to parse source bytes with a language's
// grammar.
type ParseError struct {
	Language string
	Err      error
}

func (e *ParseError) Error() string {
	return "parse " + e.Language + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }
