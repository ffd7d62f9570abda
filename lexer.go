package chess

import (
	"fmt"
	"strings"
	"unicode"
)

// TokenType identifies the kind of a PGN token.
type TokenType int

const (
	EOF TokenType = iota
	TagStart
	TagKey
	TagValue
	TagEnd
	MoveNumber
	DOT
	ELLIPSIS
	MOVE
	COMMENT
	NAG
	VariationStart
	VariationEnd
	RESULT
)

var tokenTypeNames = [...]string{
	EOF:            "EOF",
	TagStart:       "TagStart",
	TagKey:         "TagKey",
	TagValue:       "TagValue",
	TagEnd:         "TagEnd",
	MoveNumber:     "MoveNumber",
	DOT:            "DOT",
	ELLIPSIS:       "ELLIPSIS",
	MOVE:           "MOVE",
	COMMENT:        "COMMENT",
	NAG:            "NAG",
	VariationStart: "VariationStart",
	VariationEnd:   "VariationEnd",
	RESULT:         "RESULT",
}

func (t TokenType) String() string {
	if t >= 0 && int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a single lexical element of a PGN game.
type Token struct {
	Value string
	Type  TokenType
}

// TokenizeGame splits the PGN text of one game into tokens. Line comments
// (";" to end of line) and escape lines ("%" in the first column) are dropped.
func TokenizeGame(text string) ([]Token, error) {
	l := &lexer{input: text}
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok.Type == EOF {
			return l.tokens, nil
		}
		l.tokens = append(l.tokens, tok)
	}
}

type lexer struct {
	input  string
	tokens []Token
	pos    int
	inTag  bool
}

func (l *lexer) next() (Token, error) {
	l.skipSpaceAndLineComments()
	if l.pos >= len(l.input) {
		return Token{Type: EOF}, nil
	}

	c := l.input[l.pos]
	switch {
	case c == '[':
		l.pos++
		l.inTag = true
		return Token{Type: TagStart, Value: "["}, nil
	case c == ']':
		l.pos++
		l.inTag = false
		return Token{Type: TagEnd, Value: "]"}, nil
	case c == '"':
		return l.tagValue()
	case l.inTag:
		return Token{Type: TagKey, Value: l.word()}, nil
	case c == '{':
		end := strings.IndexByte(l.input[l.pos:], '}')
		if end < 0 {
			return Token{}, fmt.Errorf("chess: unterminated comment at offset %d", l.pos)
		}
		comment := l.input[l.pos+1 : l.pos+end]
		l.pos += end + 1
		return Token{Type: COMMENT, Value: comment}, nil
	case c == '(':
		l.pos++
		return Token{Type: VariationStart, Value: "("}, nil
	case c == ')':
		l.pos++
		return Token{Type: VariationEnd, Value: ")"}, nil
	case c == '$':
		l.pos++
		return Token{Type: NAG, Value: "$" + l.word()}, nil
	case c == '.':
		if strings.HasPrefix(l.input[l.pos:], "...") {
			l.pos += 3
			return Token{Type: ELLIPSIS, Value: "..."}, nil
		}
		l.pos++
		return Token{Type: DOT, Value: "."}, nil
	case c == '*':
		l.pos++
		return Token{Type: RESULT, Value: "*"}, nil
	}

	w := l.word()
	switch {
	case w == "":
		return Token{}, fmt.Errorf("chess: unexpected character %q at offset %d", c, l.pos)
	case w == "1-0" || w == "0-1" || w == "1/2-1/2":
		return Token{Type: RESULT, Value: w}, nil
	case isDigits(w):
		return Token{Type: MoveNumber, Value: w}, nil
	}
	return Token{Type: MOVE, Value: w}, nil
}

func (l *lexer) skipSpaceAndLineComments() {
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		switch {
		case c == ';' || (c == '%' && (l.pos == 0 || l.input[l.pos-1] == '\n')):
			if end := strings.IndexByte(l.input[l.pos:], '\n'); end >= 0 {
				l.pos += end
			} else {
				l.pos = len(l.input)
			}
		case unicode.IsSpace(rune(c)):
			l.pos++
		default:
			return
		}
	}
}

func (l *lexer) tagValue() (Token, error) {
	var sb strings.Builder
	for i := l.pos + 1; i < len(l.input); i++ {
		switch c := l.input[i]; c {
		case '\\':
			if i+1 < len(l.input) {
				i++
				sb.WriteByte(l.input[i])
			}
		case '"':
			l.pos = i + 1
			return Token{Type: TagValue, Value: sb.String()}, nil
		default:
			sb.WriteByte(c)
		}
	}
	return Token{}, fmt.Errorf("chess: unterminated tag value at offset %d", l.pos)
}

// word consumes a run of characters up to whitespace or a delimiter. A
// trailing move number dot is left in place.
func (l *lexer) word() string {
	start := l.pos
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if unicode.IsSpace(rune(c)) || strings.IndexByte("[]{}()\";$", c) >= 0 {
			break
		}
		if c == '.' && isDigits(l.input[start:l.pos]) {
			break
		}
		l.pos++
	}
	return l.input[start:l.pos]
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
