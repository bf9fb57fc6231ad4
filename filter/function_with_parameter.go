package filter

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
)

const functionWithParameterName = "function_with_parameter"

func parseParameterName(filterName, attributes string) (string, error) {
	it := newTokenIter(attributes)
	fst, ok := it.peek()
	if !ok {
		return "", &ParseError{
			Filter:   filterName,
			Expected: "[string] or name: [string]",
		}
	}
	if fst == "name:" {
		it.next()
		format := "name: [string]"
		name, err := stringToken(it, filterName, format, "name:")
		if err != nil {
			return "", err
		}
		if err := extra(it, filterName, format); err != nil {
			return "", err
		}
		return name, nil
	}
	it.next()
	if err := extra(it, filterName, "[string]"); err != nil {
		return "", err
	}
	return fst, nil
}

const rustParameterQuery = `
((function_item
  parameters: (parameters (parameter pattern: (identifier) @param))))
((let_declaration
  value: (closure_expression
    parameters: (closure_parameters [((identifier) @param)
                                      (parameter pattern: (identifier) @param)]))))
((const_item
  value: (closure_expression
    (closure_parameters [((identifier) @param)
                          (parameter pattern: (identifier) @param)]))))
((static_item
  value: (closure_expression
    (closure_parameters [((identifier) @param)
                          (parameter pattern: (identifier) @param)]))))
`

// FunctionWithParameterRust keeps Rust function/closure nodes declaring
// a parameter named by the "name" attribute.
type FunctionWithParameterRust struct{}

func (FunctionWithParameterRust) Info() FilterInformation {
	return FilterInformation{
		Name:        functionWithParameterName,
		Description: "Find a function with a given parameter",
		Support:     SupportLanguage("Rust"),
		Attributes:  map[string]AttributeType{"name": AttributeString},
	}
}

func (f FunctionWithParameterRust) Parse(attributes string, _ *sitter.Language) (NodeFilter, error) {
	name, err := parseParameterName(functionWithParameterName, attributes)
	if err != nil {
		return NodeFilter{}, err
	}

	query, err := sitter.NewQuery([]byte(rustParameterQuery), rust.GetLanguage())
	if err != nil {
		return NodeFilter{}, &ParseError{Filter: functionWithParameterName, Expected: "a compilable query", reason: err.Error()}
	}

	return NodeFilter{
		Info:    f.Info(),
		Matches: parameterMatcher(query, name),
	}, nil
}

const pythonParameterQuery = `
((function_definition
  parameters: (parameters [(identifier) @param
                            (typed_parameter (identifier) @param)
                            (default_parameter name: (identifier) @param)])))
((assignment
  right: (lambda
    parameters: (lambda_parameters (identifier) @param))))
`

// FunctionWithParameterPython keeps Python function/lambda nodes
// declaring a parameter named by the "name" attribute.
type FunctionWithParameterPython struct{}

func (FunctionWithParameterPython) Info() FilterInformation {
	return FilterInformation{
		Name:        functionWithParameterName,
		Description: "Find a function with a given parameter",
		Support:     SupportLanguage("Python"),
		Attributes:  map[string]AttributeType{"name": AttributeString},
	}
}

func (f FunctionWithParameterPython) Parse(attributes string, _ *sitter.Language) (NodeFilter, error) {
	name, err := parseParameterName(functionWithParameterName, attributes)
	if err != nil {
		return NodeFilter{}, err
	}

	query, err := sitter.NewQuery([]byte(pythonParameterQuery), python.GetLanguage())
	if err != nil {
		return NodeFilter{}, &ParseError{Filter: functionWithParameterName, Expected: "a compilable query", reason: err.Error()}
	}

	return NodeFilter{
		Info:    f.Info(),
		Matches: parameterMatcher(query, name),
	}, nil
}

// parameterMatcher runs query over node's subtree and reports whether
// any @param capture's text equals name. Every match in the subtree
// counts, including those of definitions nested inside node.
func parameterMatcher(query *sitter.Query, name string) Predicate {
	return func(node *sitter.Node, source []byte) bool {
		cursor := sitter.NewQueryCursor()
		defer cursor.Close()
		cursor.Exec(query, node)
		for {
			match, ok := cursor.NextMatch()
			if !ok {
				break
			}
			for _, capture := range match.Captures {
				if capture.Node.Content(source) == name {
					return true
				}
			}
		}
		return false
	}
}
