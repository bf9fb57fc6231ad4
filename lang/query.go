package lang

import "strings"

// QuoteIdentifier escapes identifier for safe embedding inside a
// tree-sitter query string literal (used by #eq? predicates in the
// built-in plugins' query templates).
func QuoteIdentifier(identifier string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return r.Replace(identifier)
}

// DefinitionCapture is the capture name every built-in plugin binds to
// the whole definition node (function/binding), per the Plugin.Query
// contract: "query templates must bind one capture to the definition
// node".
const DefinitionCapture = "method-definition"

// nameCapture is the capture name every built-in plugin binds to the
// identifier being matched; used together with an #eq? predicate so that
// only definitions named identifier survive predicate filtering.
const nameCapture = "method-name"
