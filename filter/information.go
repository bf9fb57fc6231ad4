// Package filter implements the two filter layers that narrow search
// results: node filters, which inspect a single syntax node inside a
// ParsedFile, and history filters, which operate across commits and
// files. Node filters are parsed from small textual attribute strings
// described by a declared attribute model.
package filter

import sitter "github.com/smacker/go-tree-sitter"

// AttributeType is the declared type of one named attribute on a
// filter, used both to validate parsed input and to let a UI choose
// the right form control.
type AttributeType int

const (
	AttributeNumber AttributeType = iota
	AttributeString
)

func (t AttributeType) String() string {
	switch t {
	case AttributeNumber:
		return "number"
	case AttributeString:
		return "string"
	default:
		return "unknown"
	}
}

// Support declares which languages a filter applies to: every
// language, or exactly one named language. It is a tagged value, not
// a subtype hierarchy, per the capability-set design of this package.
type Support struct {
	all      bool
	language string
}

// SupportAll returns a Support value matching every language.
func SupportAll() Support { return Support{all: true} }

// SupportLanguage returns a Support value matching only name.
func SupportLanguage(name string) Support { return Support{language: name} }

// Matches reports whether this Support accepts languageName.
func (s Support) Matches(languageName string) bool {
	return s.all || s.language == languageName
}

func (s Support) String() string {
	if s.all {
		return "All"
	}
	return s.language
}

// FilterInformation is a reflective description of a node filter kind:
// its name, a human-readable description, which languages it applies
// to, and its named, typed attributes. UIs use it to build input
// forms; the attribute-string parser uses it to validate input.
type FilterInformation struct {
	Name        string
	Description string
	Support     Support
	Attributes  map[string]AttributeType
}

// Predicate inspects one syntax node (and the source bytes it was
// parsed from) and reports whether it should be kept.
type Predicate func(node *sitter.Node, source []byte) bool

// NodeFilterKind is a declared node filter: its introspection plus a
// parser that turns an attribute string into an instantiated
// Predicate. Built-in filters implement this; third-party filters may
// be registered alongside them.
//
// Parse receives the grammar of the language the filter will run
// against (the caller always knows this: a node filter is only ever
// applied to nodes inside one already-parsed, already-language-typed
// ParsedFile). Filters that never need a grammar, such as
// function_in_lines, simply ignore it.
type NodeFilterKind interface {
	Info() FilterInformation
	Parse(attributes string, grammar *sitter.Language) (NodeFilter, error)
}

// NodeFilter pairs a FilterInformation with a predicate produced by
// parsing an attribute string against that filter's declared
// attributes.
type NodeFilter struct {
	Info    FilterInformation
	Matches Predicate
}
