package lang

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

// Rust matches `fn` items at any depth (including methods inside `impl`
// blocks) and `let`/`const`/`static` bindings whose value is a closure
// expression.
type Rust struct{}

func (Rust) Name() string          { return "Rust" }
func (Rust) Extensions() []string  { return []string{"rs"} }
func (Rust) Grammar() *sitter.Language { return rust.GetLanguage() }

func (Rust) Query(identifier string) string {
	name := QuoteIdentifier(identifier)
	return fmt.Sprintf(`
((function_item
  name: (identifier) @%[1]s)
  @%[2]s
  (#eq? @%[1]s "%[3]s"))
((let_declaration
  pattern: (identifier) @%[1]s
  value: (closure_expression)) @%[2]s
  (#eq? @%[1]s "%[3]s"))
((const_item
  name: (identifier) @%[1]s
  value: (closure_expression)) @%[2]s
  (#eq? @%[1]s "%[3]s"))
((static_item
  name: (identifier) @%[1]s
  value: (closure_expression)) @%[2]s
  (#eq? @%[1]s "%[3]s"))
`, nameCapture, DefinitionCapture, name)
}
