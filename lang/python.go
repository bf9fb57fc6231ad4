package lang

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Python matches `def` functions and assignments whose value is a
// lambda.
type Python struct{}

func (Python) Name() string          { return "Python" }
func (Python) Extensions() []string  { return []string{"py"} }
func (Python) Grammar() *sitter.Language { return python.GetLanguage() }

func (Python) Query(identifier string) string {
	name := QuoteIdentifier(identifier)
	return fmt.Sprintf(`
((function_definition
  name: (identifier) @%[1]s)
  @%[2]s
  (#eq? @%[1]s "%[3]s"))
((assignment
  left: (identifier) @%[1]s
  right: (lambda)) @%[2]s
  (#eq? @%[1]s "%[3]s"))
`, nameCapture, DefinitionCapture, name)
}
