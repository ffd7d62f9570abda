package chess

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/exp/maps"
)

// PGN takes a reader and returns a function that updates
// the game to reflect the PGN data.  The movetext may be in algebraic
// notation, or the whole input may be a bare list of UCI moves.  The returned
// function is designed to be used in the NewGame constructor.
// An error is returned if there is a problem parsing the PGN data.
func PGN(r io.Reader) (func(*Game), error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	s := strings.TrimSpace(string(raw))
	if s == "" {
		return nil, ErrNoGameFound
	}

	var game *Game
	if looksLikeCoordinateMoves(s) {
		game, err = UCIToGame(splitMoveTokens(s), "")
	} else {
		var tokens []Token
		if tokens, err = TokenizeGame(s); err == nil {
			game, err = NewParser(tokens).Parse()
		}
	}
	if err != nil {
		return nil, err
	}

	return func(g *Game) {
		g.copy(game)
	}, nil
}

// Parser builds a game from the tokens of one PGN game.
type Parser struct {
	game     *Game
	tokens   []Token
	result   Outcome
	position int
}

// NewParser creates a new parser instance initialized with the given tokens.
//
// Example:
//
//	tokens, err := TokenizeGame(text)
//	parser := NewParser(tokens)
func NewParser(tokens []Token) *Parser {
	game := NewGame()
	game.tagPairs = make(TagPairs)
	return &Parser{
		tokens: tokens,
		game:   game,
	}
}

func (p *Parser) currentToken() Token {
	if p.position >= len(p.tokens) {
		return Token{Type: EOF}
	}
	return p.tokens[p.position]
}

func (p *Parser) advance() {
	p.position++
}

func (p *Parser) errorf(err error, format string, args ...any) *ParserError {
	tok := p.currentToken()
	return &ParserError{
		Err:        err,
		Message:    fmt.Sprintf(format, args...),
		TokenType:  tok.Type,
		TokenValue: tok.Value,
		Position:   p.position,
	}
}

// Parse processes all tokens and returns the complete game.
// This includes parsing header information (tags), moves,
// variations, comments, and the game result.
//
// Returns an error if the PGN is malformed or contains illegal moves.
func (p *Parser) Parse() (*Game, error) {
	for p.currentToken().Type == TagStart {
		if err := p.parseTagPair(); err != nil {
			return nil, err
		}
	}

	if fen, ok := p.game.tagPairs["FEN"]; ok {
		pos, err := decodeFEN(fen)
		if err != nil {
			return nil, p.errorf(err, "invalid FEN tag")
		}
		p.game.setStartingPosition(pos)
	}

	if err := p.parseLine(p.game.rootMove, false); err != nil {
		return nil, err
	}

	g := p.game
	g.currentMove = g.rootMove
	for len(g.currentMove.children) > 0 {
		g.currentMove = g.currentMove.children[0]
	}
	g.pos = g.currentMove.position
	g.evaluatePositionStatus()

	// A recorded result wins over the evaluated one; "*" records nothing.
	if p.result == NoOutcome || p.result == "" {
		p.result = parseOutcome(g.tagPairs["Result"])
	}
	if p.result != NoOutcome {
		g.outcome = p.result
	}
	return g, nil
}

func (p *Parser) parseTagPair() error {
	p.advance() // [
	if p.currentToken().Type != TagKey {
		return p.errorf(nil, "expected tag key")
	}
	key := p.currentToken().Value
	p.advance()

	if p.currentToken().Type != TagValue {
		return p.errorf(nil, "expected tag value")
	}
	value := p.currentToken().Value
	p.advance()

	if p.currentToken().Type != TagEnd {
		return p.errorf(nil, "expected tag end")
	}
	p.advance()

	p.game.tagPairs[key] = value
	return nil
}

// parseLine reads the moves that continue from parent. It stops at the end
// of input or a result token for the main line, and at the closing
// parenthesis inside a variation.
func (p *Parser) parseLine(parent *Move, inVariation bool) error {
	cur := parent
	for {
		tok := p.currentToken()
		switch tok.Type {
		case EOF:
			if inVariation {
				return p.errorf(nil, "unterminated variation")
			}
			return nil

		case RESULT:
			if inVariation {
				return p.errorf(nil, "result inside variation")
			}
			p.result = parseOutcome(tok.Value)
			p.advance()
			return nil

		case VariationEnd:
			if !inVariation {
				return p.errorf(nil, "unexpected end of variation")
			}
			p.advance()
			return nil

		case VariationStart:
			if cur == parent {
				return p.errorf(nil, "variation before any move")
			}
			p.advance()
			// A variation is an alternative to the last move, so it hangs
			// off that move's parent.
			if err := p.parseLine(cur.parent, true); err != nil {
				return err
			}

		case MoveNumber, DOT, ELLIPSIS:
			p.advance()

		case NAG:
			cur.nag = tok.Value
			p.advance()

		case COMMENT:
			addPGNComment(cur, tok.Value)
			p.advance()

		case MOVE:
			move, err := AlgebraicNotation{}.Decode(cur.position, tok.Value)
			if err != nil {
				return p.errorf(err, "no legal move found for position")
			}
			move.number = cur.position.moveCount
			move.position = cur.position.Update(move)
			p.game.AddVariation(cur, move)
			cur = move
			p.advance()

		default:
			return p.errorf(nil, "unexpected token")
		}
	}
}

var commandPattern = regexp.MustCompile(`\[%(\w+)\s+([^\]]*)\]`)

// addPGNComment attaches a brace comment to move, moving any embedded
// [%key value] commands into the move's command map.
func addPGNComment(move *Move, comment string) {
	commands := make(map[string]string)
	for _, m := range commandPattern.FindAllStringSubmatch(comment, -1) {
		commands[m[1]] = strings.TrimSpace(m[2])
	}
	if len(commands) > 0 {
		if move.command == nil {
			move.command = make(map[string]string)
		}
		maps.Copy(move.command, commands)
	}
	move.AddComment(commandPattern.ReplaceAllString(comment, ""))
}

// looksLikeCoordinateMoves reports whether s is nothing but UCI moves,
// optionally followed by "*".
func looksLikeCoordinateMoves(s string) bool {
	if strings.ContainsAny(s, "[]{}()") {
		return false
	}
	toks := splitMoveTokens(s)
	if len(toks) == 0 {
		return false
	}
	for _, t := range toks {
		if !isCoordinateMoveToken(t) {
			return false
		}
	}
	return true
}

func splitMoveTokens(s string) []string {
	raw := strings.Fields(s)
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.Trim(t, ",;")
		if t == "" || t == "*" {
			continue
		}
		out = append(out, t)
	}
	return out
}
