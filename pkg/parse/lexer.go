package parse

import (
	"fmt"
	"strings"

	"github.com/ownerlint/ownerlint/pkg/types"
)

// token is a whitespace-delimited run of bytes within a single line.
type token struct {
	text string
	span types.Span
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

// scanTokens splits line content into tokens, recording the exact span of
// each. Trailing and inter-token whitespace never lands in a token span.
func scanTokens(content string, lineOffset uint64, lineNo uint32) []token {
	var toks []token
	i := 0
	for i < len(content) {
		if isSpace(content[i]) {
			i++
			continue
		}
		start := i
		for i < len(content) && !isSpace(content[i]) {
			i++
		}
		toks = append(toks, token{
			text: content[start:i],
			span: types.Span{
				Offset: lineOffset + uint64(start),
				Line:   lineNo,
				Column: uint32(start) + 1,
				Length: uint32(i - start),
			},
		})
	}
	return toks
}

// classifyOwner turns a token into an Owner, or reports why it cannot be one.
// A leading @ marks a user or an org/team reference; a token containing @
// elsewhere is an email address. Anything else is not an owner.
func classifyOwner(tok token) (types.Owner, error) {
	text := tok.text
	if strings.HasPrefix(text, "@") {
		rest := text[1:]
		if rest == "" {
			return types.Owner{}, fmt.Errorf("invalid owner %q: missing name after '@'", text)
		}
		switch strings.Count(rest, "/") {
		case 0:
			return types.UserOwner(rest, tok.span), nil
		case 1:
			org, team, _ := strings.Cut(rest, "/")
			if org == "" || team == "" {
				return types.Owner{}, fmt.Errorf("invalid owner %q: empty organization or team name", text)
			}
			return types.TeamOwner(org, team, tok.span), nil
		default:
			return types.Owner{}, fmt.Errorf("invalid owner %q: more than one '/' in team reference", text)
		}
	}
	if strings.Contains(text, "@") {
		return types.EmailOwner(text, tok.span), nil
	}
	return types.Owner{}, fmt.Errorf("invalid owner %q: expected @user, @org/team, or an email address", text)
}
