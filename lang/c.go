package lang

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
)

// C matches function definitions and forward declarations. C has no
// closure/lambda syntax, so there is no second query arm.
type C struct{}

func (C) Name() string          { return "C" }
func (C) Extensions() []string  { return []string{"c", "h"} }
func (C) Grammar() *sitter.Language { return c.GetLanguage() }

func (C) Query(identifier string) string {
	name := QuoteIdentifier(identifier)
	return fmt.Sprintf(`
((function_definition
  declarator: (function_declarator declarator: (identifier) @%[1]s))
  @%[2]s
  (#eq? @%[1]s "%[3]s"))
((declaration
  declarator: (function_declarator declarator: (identifier) @%[1]s))
  @%[2]s
  (#eq? @%[1]s "%[3]s"))
`, nameCapture, DefinitionCapture, name)
}
