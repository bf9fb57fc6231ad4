// Package parse turns raw source bytes plus an instantiated language into
// a ParsedFile: a parse tree, the ordered set of source ranges matching
// the searched identifier, and enough metadata to re-evaluate node-level
// filters later without keeping a live reference into the tree.
package parse

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/daedalus-tools/funchistory/lang"
)

// ParsedFile is the result of searching one blob for one identifier. It
// is immutable; Filter produces a new ParsedFile sharing the same parse
// tree and source bytes but with a narrowed set of match ranges.
type ParsedFile struct {
	source     []byte
	filePath   string // empty when unset
	identifier string
	language   string
	tree       *sitter.Tree
	matches    []Range
}

// Predicate inspects a single syntax node (and the source bytes it was
// parsed from) and reports whether it should be kept.
type Predicate func(node *sitter.Node, source []byte) bool

// Parse parses source with inst's grammar, executes inst's compiled
// query against the root node, and collects every capture bound to the
// definition capture (lang.DefinitionCapture). It returns ErrNoMatches if
// the query compiles and runs but matches nothing.
func Parse(source []byte, inst *lang.Instantiated) (*ParsedFile, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(inst.Plugin.Grammar())

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, &ParseError{Language: inst.Plugin.Name(), Err: err}
	}

	ranges := collectMatches(inst.Query(), tree.RootNode(), source)
	if len(ranges) == 0 {
		return nil, ErrNoMatches
	}

	return &ParsedFile{
		source:     source,
		identifier: inst.Identifier,
		language:   inst.Plugin.Name(),
		tree:       tree,
		matches:    ranges,
	}, nil
}

func collectMatches(query *sitter.Query, root *sitter.Node, source []byte) []Range {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(query, root)

	var definitions []*sitter.Node
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		match = cursor.FilterPredicates(match, source)
		for _, capture := range match.Captures {
			if query.CaptureNameForId(capture.Index) == lang.DefinitionCapture {
				definitions = append(definitions, capture.Node)
			}
		}
	}

	// Alternative query patterns (e.g. fn vs. let/const/static bindings)
	// can in principle both capture the same node; dedup by start byte.
	definitions = lo.UniqBy(definitions, func(n *sitter.Node) uint32 { return n.StartByte() })

	ranges := lo.Map(definitions, func(n *sitter.Node, _ int) Range { return rangeOf(n) })
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].ByteStart < ranges[j].ByteStart })
	return ranges
}

func rangeOf(n *sitter.Node) Range {
	start, end := n.StartPoint(), n.EndPoint()
	return Range{
		ByteStart: n.StartByte(),
		ByteEnd:   n.EndByte(),
		RowStart:  start.Row,
		ColStart:  start.Column,
		RowEnd:    end.Row,
		ColEnd:    end.Column,
	}
}

// ParseWithFilename resolves a language plugin from filename via the
// lang package's extension resolution and delegates to Parse, setting
// FilePath on success.
func ParseWithFilename(source []byte, filename, identifier string, plugins []lang.Plugin) (*ParsedFile, error) {
	plugin, err := lang.ResolveByFilename(filename, plugins)
	if err != nil {
		return nil, err
	}
	inst, err := lang.NewInstantiated(plugin, identifier)
	if err != nil {
		return nil, err
	}
	pf, err := Parse(source, inst)
	if err != nil {
		return nil, err
	}
	pf.filePath = filename
	return pf, nil
}

// Filter re-descends the parse tree to recover a live node for each
// existing range and keeps only the ranges whose node satisfies
// predicate. The returned ParsedFile shares the same parse tree and
// source bytes.
func (p *ParsedFile) Filter(predicate Predicate) (*ParsedFile, error) {
	root := p.tree.RootNode()
	kept := make([]Range, 0, len(p.matches))
	for _, r := range p.matches {
		node := root.NamedDescendantForPointRange(
			sitter.Point{Row: r.RowStart, Column: r.ColStart},
			sitter.Point{Row: r.RowEnd, Column: r.ColEnd},
		)
		if node == nil {
			continue
		}
		if predicate(node, p.source) {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		return nil, ErrFilterEmpty
	}
	clone := *p
	clone.matches = kept
	return &clone, nil
}

// Source returns the raw source bytes this file was parsed from.
func (p *ParsedFile) Source() []byte { return p.source }

// FilePath returns the path this blob was loaded from, or "" if unset
// (e.g. when parsed directly via Parse rather than ParseWithFilename).
func (p *ParsedFile) FilePath() string { return p.filePath }

// SetFilePath overrides the file path, used by callers (such as the
// repository walker) that resolve the language out-of-band from the
// path already known from tree traversal.
func (p *ParsedFile) SetFilePath(path string) { p.filePath = path }

// Language returns the name of the language this file was parsed with.
func (p *ParsedFile) Language() string { return p.language }

// SearchedIdentifier returns the identifier that was searched for.
func (p *ParsedFile) SearchedIdentifier() string { return p.identifier }

// Tree returns the underlying parse tree.
func (p *ParsedFile) Tree() *sitter.Tree { return p.tree }

// Matches returns the ordered (by byte offset) set of match ranges.
func (p *ParsedFile) Matches() []Range { return p.matches }

// String renders every matched region, line-numbered (1-based),
// separated by "\n...\n", in byte-offset order.
func (p *ParsedFile) String() string {
	lines := strings.Split(string(p.source), "\n")
	var blocks []string
	for _, r := range p.matches {
		var b strings.Builder
		for line := int(r.RowStart); line <= int(r.RowEnd) && line < len(lines); line++ {
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(strconv.Itoa(line + 1))
			b.WriteString(": ")
			b.WriteString(lines[line])
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n...\n")
}
