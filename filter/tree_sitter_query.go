package filter

import (
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
)

const treeSitterQueryName = "tree_sitter_query"

// TreeSitterQuery compiles an arbitrary tree-sitter query string (the
// "query" attribute) against the grammar it is parsed for and keeps a
// node if that query has at least one match within the node's subtree.
// Each NodeFilter returned by Parse holds its own query cache, so the
// query is compiled once, on first use, and reused for every later node
// that filter inspects; separately-parsed filters share no cache.
type TreeSitterQuery struct{}

func (TreeSitterQuery) Info() FilterInformation {
	return FilterInformation{
		Name:        treeSitterQueryName,
		Description: "filter using an arbitrary tree-sitter query",
		Support:     SupportAll(),
		Attributes:  map[string]AttributeType{"query": AttributeString},
	}
}

func (f TreeSitterQuery) Parse(attributes string, grammar *sitter.Language) (NodeFilter, error) {
	it := newTokenIter(attributes)
	queryText := attributes
	if fst, ok := it.peek(); ok && fst == "query:" {
		it.next()
		queryText = joinTokens(it.toks[it.pos:])
	}

	// Scoped to this one instantiation, per spec.md §5: "the filter-query
	// cache inside tree_sitter_query is scoped to a single NodeFilter
	// instance" — not a package-level cache shared across instances.
	cache := &queryCache{}

	return NodeFilter{
		Info: f.Info(),
		Matches: func(node *sitter.Node, source []byte) bool {
			query, err := cache.get(queryText, grammar)
			if err != nil {
				return false
			}
			cursor := sitter.NewQueryCursor()
			defer cursor.Close()
			cursor.Exec(query, node)
			_, ok := cursor.NextMatch()
			return ok
		},
	}, nil
}

func joinTokens(toks []string) string {
	out := ""
	for i, t := range toks {
		if i > 0 {
			out += " "
		}
		out += t
	}
	return out
}

// queryCache memoizes compiled queries keyed by (query text, grammar),
// guarded by a mutex since Matches predicates may run concurrently
// across commits during a parallel history scan.
type queryCache struct {
	mu     sync.Mutex
	byText map[string]map[*sitter.Language]*sitter.Query
}

func (c *queryCache) get(queryText string, grammar *sitter.Language) (*sitter.Query, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.byText == nil {
		c.byText = make(map[string]map[*sitter.Language]*sitter.Query)
	}
	byGrammar, ok := c.byText[queryText]
	if !ok {
		byGrammar = make(map[*sitter.Language]*sitter.Query)
		c.byText[queryText] = byGrammar
	}
	if q, ok := byGrammar[grammar]; ok {
		return q, nil
	}
	q, err := sitter.NewQuery([]byte(queryText), grammar)
	if err != nil {
		return nil, err
	}
	byGrammar[grammar] = q
	return q, nil
}
