package filter

import sitter "github.com/smacker/go-tree-sitter"

// FunctionInImpl keeps Rust function nodes whose grandparent is an
// impl_item, i.e. methods defined inside an `impl` block. It accepts
// no attributes.
type FunctionInImpl struct{}

const functionInImplName = "function_in_impl"

func (FunctionInImpl) Info() FilterInformation {
	return FilterInformation{
		Name:        functionInImplName,
		Description: "find if any functions are in an impl block",
		Support:     SupportLanguage("Rust"),
		Attributes:  map[string]AttributeType{},
	}
}

func (f FunctionInImpl) Parse(attributes string, grammar *sitter.Language) (NodeFilter, error) {
	if len(tokens(attributes)) > 0 {
		return NodeFilter{}, &ParseError{
			Filter:   functionInImplName,
			Expected: "no options",
			reason:   "this filter accepts no options",
			Token:    attributes,
		}
	}
	return NodeFilter{
		Info: f.Info(),
		Matches: func(node *sitter.Node, source []byte) bool {
			parent := node.Parent()
			if parent == nil {
				return false
			}
			grandparent := parent.Parent()
			return grandparent != nil && grandparent.Type() == "impl_item"
		},
	}, nil
}
