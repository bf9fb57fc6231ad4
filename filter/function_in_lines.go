package filter

import sitter "github.com/smacker/go-tree-sitter"

// FunctionInLines keeps nodes whose full span lies within [start, end]
// (inclusive, 0-based rows). Accepts positional "start end", or
// labelled "start: start end: end" / "end: end start: start" forms.
type FunctionInLines struct{}

const functionInLinesName = "function_in_lines"
const functionInLinesPositional = "[number] [number]"

func (FunctionInLines) Info() FilterInformation {
	return FilterInformation{
		Name: functionInLinesName,
		Description: "filter: function_in_lines\n" +
			"filters to only functions within the specified lines\n" +
			"format:\n" +
			"\t[number] [number]\n" +
			"\tstart: [number] end: [number]\n" +
			"\tend: [number] start: [number]",
		Support: SupportAll(),
		Attributes: map[string]AttributeType{
			"start": AttributeNumber,
			"end":   AttributeNumber,
		},
	}
}

func (f FunctionInLines) Parse(attributes string, grammar *sitter.Language) (NodeFilter, error) {
	it := newTokenIter(attributes)
	fst, ok := it.peek()
	if !ok {
		return NodeFilter{}, &ParseError{
			Filter:   functionInLinesName,
			Expected: "[number] [number], start: [number] end: [number], or end: [number] start: [number]",
		}
	}

	var start, end uint32
	var err error
	switch fst {
	case "start:":
		it.next()
		format := "start: [number] end: [number]"
		if start, err = numberToken(it, functionInLinesName, format, "start:"); err != nil {
			return NodeFilter{}, err
		}
		if err = label(it, functionInLinesName, format, "end:"); err != nil {
			return NodeFilter{}, err
		}
		if end, err = numberToken(it, functionInLinesName, format, "end:"); err != nil {
			return NodeFilter{}, err
		}
		if err = extra(it, functionInLinesName, format); err != nil {
			return NodeFilter{}, err
		}
	case "end:":
		it.next()
		format := "end: [number] start: [number]"
		if end, err = numberToken(it, functionInLinesName, format, "end:"); err != nil {
			return NodeFilter{}, err
		}
		if err = label(it, functionInLinesName, format, "start:"); err != nil {
			return NodeFilter{}, err
		}
		if start, err = numberToken(it, functionInLinesName, format, "start:"); err != nil {
			return NodeFilter{}, err
		}
		if err = extra(it, functionInLinesName, format); err != nil {
			return NodeFilter{}, err
		}
	default:
		if start, err = numberToken(it, functionInLinesName, functionInLinesPositional, "first"); err != nil {
			return NodeFilter{}, err
		}
		if end, err = numberToken(it, functionInLinesName, functionInLinesPositional, "second"); err != nil {
			return NodeFilter{}, err
		}
		if err = extra(it, functionInLinesName, functionInLinesPositional); err != nil {
			return NodeFilter{}, err
		}
	}

	return NodeFilter{
		Info: f.Info(),
		Matches: func(node *sitter.Node, source []byte) bool {
			return node.StartPoint().Row >= start && node.EndPoint().Row <= end
		},
	}, nil
}
