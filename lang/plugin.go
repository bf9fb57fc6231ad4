// Package lang describes the set of supported source languages: their
// file extensions, tree-sitter grammars, and the parameterised query that
// locates a named definition inside a parse tree.
package lang

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Plugin describes a single supported language. Implementations are
// immutable once registered; the same Plugin value is shared read-only
// across every search that uses it.
type Plugin interface {
	// Name is the display name of the language, e.g. "Rust".
	Name() string
	// Extensions lists the filename extensions this plugin claims,
	// without a leading dot, e.g. []string{"rs"}.
	Extensions() []string
	// Grammar returns the tree-sitter grammar used to parse source in
	// this language.
	Grammar() *sitter.Language
	// Query returns the s-expression query text that finds every
	// definition named identifier: top-level function definitions, and
	// variable/const bindings whose right-hand side is a lambda/closure,
	// for every language that has such syntax. The query must bind
	// exactly one capture to the definition node.
	Query(identifier string) string
}

// Instantiated pairs a Plugin with a compiled, identifier-specialised
// query. It is produced once per search and reused across every file in
// that search.
type Instantiated struct {
	Plugin     Plugin
	Identifier string
	query      *sitter.Query
}

// NewInstantiated compiles plugin's query template for identifier. It
// fails if the query does not compile against the plugin's grammar.
func NewInstantiated(plugin Plugin, identifier string) (*Instantiated, error) {
	q, err := sitter.NewQuery([]byte(plugin.Query(identifier)), plugin.Grammar())
	if err != nil {
		return nil, &QueryError{Language: plugin.Name(), Err: err}
	}
	return &Instantiated{Plugin: plugin, Identifier: identifier, query: q}, nil
}

// Query returns the compiled query bound to this instantiation.
func (i *Instantiated) Query() *sitter.Query {
	return i.query
}

// QueryError reports that a plugin's query template failed to compile
// against its own grammar.
type QueryError struct {
	Language string
	Err      error
}

func (e *QueryError) Error() string {
	return "language " + e.Language + ": query compile failed: " + e.Err.Error()
}

func (e *QueryError) Unwrap() error { return e.Err }

// GrammarError reports that a plugin's grammar itself could not be
// loaded (reserved for plugins whose grammar construction can fail; the
// built-in plugins never do, but third-party plugins may).
type GrammarError struct {
	Language string
	Err      error
}

func (e *GrammarError) Error() string {
	return "language " + e.Language + ": grammar load failed: " + e.Err.Error()
}

func (e *GrammarError) Unwrap() error { return e.Err }
