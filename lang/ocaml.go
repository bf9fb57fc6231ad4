package lang

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/ocaml"
)

// OCaml matches `let` bindings that take at least one parameter, whether
// written in curried form or as a `fun`/`function` body.
type OCaml struct{}

func (OCaml) Name() string          { return "OCaml" }
func (OCaml) Extensions() []string  { return []string{"ml"} }
func (OCaml) Grammar() *sitter.Language { return ocaml.GetLanguage() }

func (OCaml) Query(identifier string) string {
	name := QuoteIdentifier(identifier)
	return fmt.Sprintf(`
((value_definition
  (let_binding pattern: (value_name) @%[1]s (parameter)))
  @%[2]s
  (#eq? @%[1]s "%[3]s"))
((value_definition
  (let_binding pattern: (parenthesized_operator) @%[1]s (parameter)))
  @%[2]s
  (#eq? @%[1]s "%[3]s"))
((value_definition
  (let_binding pattern: (value_name) @%[1]s body: (function_expression)))
  @%[2]s
  (#eq? @%[1]s "%[3]s"))
((value_definition
  (let_binding pattern: (value_name) @%[1]s body: (fun_expression)))
  @%[2]s
  (#eq? @%[1]s "%[3]s"))
`, nameCapture, DefinitionCapture, name)
}
