package lang

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// Java matches method declarations and local variable/field declarations
// whose value is a lambda expression.
type Java struct{}

func (Java) Name() string          { return "Java" }
func (Java) Extensions() []string  { return []string{"java"} }
func (Java) Grammar() *sitter.Language { return java.GetLanguage() }

func (Java) Query(identifier string) string {
	name := QuoteIdentifier(identifier)
	return fmt.Sprintf(`
((method_declaration
  name: (identifier) @%[1]s)
  @%[2]s
  (#eq? @%[1]s "%[3]s"))
((local_variable_declaration
  declarator: (variable_declarator
    name: (identifier) @%[1]s
    value: (lambda_expression)))
  @%[2]s
  (#eq? @%[1]s "%[3]s"))
((field_declaration
  declarator: (variable_declarator
    name: (identifier) @%[1]s
    value: (lambda_expression)))
  @%[2]s
  (#eq? @%[1]s "%[3]s"))
`, nameCapture, DefinitionCapture, name)
}
