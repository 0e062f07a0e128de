package expression

import (
	"strings"

	"github.com/robbyt/go-polytemplate/platform/constants"
	"github.com/robbyt/go-polytemplate/platform/data"
)

// segment is either literal text or the body of an expression token.
type segment struct {
	text   string
	expr   bool
	offset int
}

// scan splits template into literal and expression segments. The closing
// brace of a token is found with bracket nesting and quote awareness.
func scan(template string) ([]segment, error) {
	var segments []segment
	pos := 0
	for {
		start := strings.Index(template[pos:], constants.ExpressionPrefix)
		if start < 0 {
			if pos < len(template) {
				segments = append(segments, segment{text: template[pos:], offset: pos})
			}
			return segments, nil
		}
		start += pos
		if start > pos {
			segments = append(segments, segment{text: template[pos:start], offset: pos})
		}

		bodyStart := start + len(constants.ExpressionPrefix)
		end, ok := closingBrace(template[bodyStart:])
		if !ok {
			return nil, &data.SyntaxError{Template: template, Offset: start, Msg: "unterminated expression"}
		}
		body := template[bodyStart : bodyStart+end]
		if strings.TrimSpace(body) == "" {
			return nil, &data.SyntaxError{Template: template, Offset: start, Msg: "empty expression"}
		}
		segments = append(segments, segment{text: body, expr: true, offset: start})
		pos = bodyStart + end + len(constants.ExpressionSuffix)
	}
}

// closingBrace returns the index of the '}' closing an expression body.
func closingBrace(s string) (int, bool) {
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case '{', '[', '(':
			depth++
		case ']', ')':
			if depth > 0 {
				depth--
			}
		case '}':
			if depth == 0 {
				return i, true
			}
			depth--
		}
	}
	return 0, false
}
