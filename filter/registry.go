package filter

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// UnknownFilterError reports that no built-in or registered node
// filter matches the requested name.
type UnknownFilterError struct {
	Name string
}

func (e *UnknownFilterError) Error() string {
	return fmt.Sprintf("unknown filter %q", e.Name)
}

// Builtins returns the minimum built-in node filter set named in the
// attribute grammar: function_in_lines, function_in_impl,
// function_with_parameter (once per supported language), and
// tree_sitter_query.
func Builtins() []NodeFilterKind {
	return []NodeFilterKind{
		FunctionInLines{},
		FunctionInImpl{},
		FunctionWithParameterRust{},
		FunctionWithParameterPython{},
		TreeSitterQuery{},
	}
}

// Resolve finds the first filter in kinds named name and applicable to
// languageName (support All, or support matching languageName
// exactly), then parses attributes against it using grammar.
func Resolve(name, attributes, languageName string, grammar *sitter.Language, kinds []NodeFilterKind) (NodeFilter, error) {
	for _, kind := range kinds {
		info := kind.Info()
		if info.Name != name {
			continue
		}
		if !info.Support.Matches(languageName) {
			continue
		}
		return kind.Parse(attributes, grammar)
	}
	return NodeFilter{}, &UnknownFilterError{Name: name}
}
