// Package parse converts raw CODEOWNERS text into a structured document with
// exact source spans. Parsing is recovering, never fail-fast: a line that
// cannot be classified becomes an invalid line in the document and the parse
// carries on with the next one.
package parse

import (
	"fmt"
	"strings"

	"github.com/ownerlint/ownerlint/pkg/types"
)

// Parse classifies every line of source and returns the resulting document
// together with the parse errors encountered. The document is always complete:
// each input line appears exactly once, and rendering it reproduces source
// byte-for-byte regardless of errors.
func Parse(source string) (*types.Document, []string) {
	doc := &types.Document{Source: source}
	var errs []string

	offset := uint64(0)
	lineNo := uint32(1)
	for offset < uint64(len(source)) {
		rest := source[offset:]
		content := rest
		term := uint64(0)
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			content = rest[:nl]
			term = 1
			if strings.HasSuffix(content, "\r") {
				content = content[:len(content)-1]
				term = 2
			}
		}

		doc.Lines = append(doc.Lines, classifyLine(content, offset, lineNo, &errs))

		offset += uint64(len(content)) + term
		lineNo++
	}

	return doc, errs
}

func classifyLine(content string, offset uint64, lineNo uint32, errs *[]string) types.Line {
	span := types.Span{
		Offset: offset,
		Line:   lineNo,
		Column: 1,
		Length: uint32(len(content)),
	}

	trimmed := strings.TrimLeft(content, " \t")
	if trimmed == "" {
		return types.Line{Kind: types.LineBlank, Span: span}
	}

	// Only a line-initial # (after optional leading whitespace) starts a
	// comment. A # inside a later token is a literal character.
	if trimmed[0] == '#' {
		hash := strings.IndexByte(content, '#')
		return types.Line{
			Kind:    types.LineComment,
			Span:    span,
			Content: content[hash+1:],
		}
	}

	toks := scanTokens(content, offset, lineNo)
	pattern := &types.Pattern{Text: toks[0].text, Span: toks[0].span}

	owners := make([]types.Owner, 0, len(toks)-1)
	for _, tok := range toks[1:] {
		owner, err := classifyOwner(tok)
		if err != nil {
			*errs = append(*errs, fmt.Sprintf("line %d: %s", lineNo, err))
			return types.Line{
				Kind: types.LineInvalid,
				Span: span,
				Raw:  content,
				Err:  err.Error(),
			}
		}
		owners = append(owners, owner)
	}

	return types.Line{
		Kind:    types.LineRule,
		Span:    span,
		Pattern: pattern,
		Owners:  owners,
	}
}
