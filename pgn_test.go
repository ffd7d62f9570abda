package chess

import (
	"errors"
	"strings"
	"testing"

	notnil "github.com/notnil/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const annotatedPGN = `[Event "Casual"]
[Site "?"]
[Date "2024.01.01"]
[Round "1"]
[White "Alice"]
[Black "Bob"]
[Result "1-0"]

1. e4 {best by test} e5 (1... c5 2. Nf3) 2. Nf3 $1 Nc6 {[%clk 0:05:00]} 3. Bb5
1-0`

func mustParsePGN(t *testing.T, s string) *Game {
	t.Helper()
	opt, err := PGN(strings.NewReader(s))
	require.NoError(t, err)
	return NewGame(opt)
}

func TestTokenizeGame(t *testing.T) {
	tokens, err := TokenizeGame(`[Event "a \"b\""] 1. e4 {c} (1. d4) 1... e5 $2 ; rest of line
% escaped line
1-0`)
	require.NoError(t, err)

	want := []Token{
		{Type: TagStart, Value: "["},
		{Type: TagKey, Value: "Event"},
		{Type: TagValue, Value: `a "b"`},
		{Type: TagEnd, Value: "]"},
		{Type: MoveNumber, Value: "1"},
		{Type: DOT, Value: "."},
		{Type: MOVE, Value: "e4"},
		{Type: COMMENT, Value: "c"},
		{Type: VariationStart, Value: "("},
		{Type: MoveNumber, Value: "1"},
		{Type: DOT, Value: "."},
		{Type: MOVE, Value: "d4"},
		{Type: VariationEnd, Value: ")"},
		{Type: MoveNumber, Value: "1"},
		{Type: ELLIPSIS, Value: "..."},
		{Type: MOVE, Value: "e5"},
		{Type: NAG, Value: "$2"},
		{Type: RESULT, Value: "1-0"},
	}
	assert.Equal(t, want, tokens)
}

func TestTokenizeGameErrors(t *testing.T) {
	for _, s := range []string{
		`1. e4 {never closed`,
		`[Event "never closed]`,
	} {
		_, err := TokenizeGame(s)
		assert.Error(t, err, s)
	}
}

func TestTokenTypeString(t *testing.T) {
	assert.Equal(t, "MOVE", MOVE.String())
	assert.Equal(t, "VariationEnd", VariationEnd.String())
	assert.Equal(t, "TokenType(99)", TokenType(99).String())
}

func TestPGNWithValidData(t *testing.T) {
	g := mustParsePGN(t, annotatedPGN)

	assert.Equal(t, WhiteWon, g.Outcome())
	assert.Equal(t, "Alice", g.GetTagPair("White"))
	assert.Equal(t, "2024.01.01", g.GetTagPair("Date"))

	moves := g.Moves()
	require.Len(t, moves, 5)
	assert.Equal(t, "best by test", moves[0].Comments())
	assert.Equal(t, "$1", moves[2].NAG())
	clk, ok := moves[3].GetCommand("clk")
	assert.True(t, ok)
	assert.Equal(t, "0:05:00", clk)
	assert.Equal(t, "", moves[3].Comments())
	assert.Equal(t, 3, moves[4].Number())

	vars := g.Variations(moves[0])
	require.Len(t, vars, 1)
	assert.Equal(t, "c7c5", vars[0].String())
	require.Len(t, vars[0].Children(), 1)
	assert.Equal(t, "g1f3", vars[0].Children()[0].String())

	assert.Equal(t, moves[4], g.CurrentMove())
	assert.Equal(t, "r1bqkbnr/pppp1ppp/2n5/1B2p3/4P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 3 3", g.FEN())
}

func TestPGNRoundTrip(t *testing.T) {
	g := mustParsePGN(t, annotatedPGN)
	assert.Equal(t, annotatedPGN, g.String())

	again := mustParsePGN(t, g.String())
	assert.Equal(t, g.String(), again.String())
}

func TestTaglessPGN(t *testing.T) {
	g := mustParsePGN(t, "1. e4 e5 2. Nf3 *")
	assert.Len(t, g.Moves(), 3)
	assert.Equal(t, NoOutcome, g.Outcome())
	assert.Equal(t, "1. e4 e5 2. Nf3 *", g.String())
}

func TestPGNWithoutResultUsesTag(t *testing.T) {
	g := mustParsePGN(t, "[Result \"1/2-1/2\"]\n\n1. e4 e5")
	assert.Equal(t, Draw, g.Outcome())
	assert.True(t, strings.HasSuffix(g.String(), "1. e4 e5 1/2-1/2"))
}

func TestPGNDetectsCheckmate(t *testing.T) {
	g := mustParsePGN(t, "1. f3 e5 2. g4 Qh4#")
	assert.Equal(t, BlackWon, g.Outcome())
	assert.Equal(t, Checkmate, g.Method())
}

func TestPGNFromFEN(t *testing.T) {
	const fen = "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
	g := mustParsePGN(t, `[SetUp "1"]
[FEN "`+fen+`"]

1... c5 2. Nf3 *`)
	require.Len(t, g.Moves(), 2)
	assert.Equal(t, fen, g.GetRootMove().Position().String())
	assert.Equal(t, "c7c5", g.Moves()[0].String())
}

func TestPGNWithUCIMoves(t *testing.T) {
	g := mustParsePGN(t, "e2e4 e7e5 g1f3")
	assert.Len(t, g.Moves(), 3)
	assert.Equal(t, "g1f3", g.CurrentMove().String())
}

func TestPGNWithEmptyData(t *testing.T) {
	_, err := PGN(strings.NewReader("  \n "))
	assert.ErrorIs(t, err, ErrNoGameFound)
}

func TestPGNErrors(t *testing.T) {
	tests := []struct {
		name    string
		pgn     string
		illegal bool
	}{
		{name: "illegal move", pgn: "1. e4 e4 *", illegal: true},
		{name: "illegal move in variation", pgn: "1. e4 (1. e5) e5 *", illegal: true},
		{name: "bad FEN tag", pgn: "[FEN \"nonsense\"]\n\n*"},
		{name: "unterminated variation", pgn: "1. e4 (1. d4 *"},
		{name: "unbalanced parenthesis", pgn: "1. e4 ) *"},
		{name: "variation before move", pgn: "(1. d4) 1. e4 *"},
		{name: "missing tag value", pgn: "[Event]\n\n*"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PGN(strings.NewReader(tt.pgn))
			require.Error(t, err)
			var perr *ParserError
			require.True(t, errors.As(err, &perr), err.Error())
			assert.Equal(t, tt.illegal, errors.Is(err, ErrIllegalMove))
		})
	}
}

func TestGameMarshalText(t *testing.T) {
	g := mustParsePGN(t, annotatedPGN)
	text, err := g.MarshalText()
	require.NoError(t, err)

	var decoded Game
	require.NoError(t, decoded.UnmarshalText(text))
	assert.Equal(t, g.String(), decoded.String())
	assert.Equal(t, g.FEN(), decoded.FEN())
}

func TestPGNRoundTripWithReader(t *testing.T) {
	tests := []struct {
		name  string
		moves string
	}{
		{"opening", "e2e4 e7e5 g1f3 b8c6 f1b5 a7a6"},
		{"castling", "e2e4 e7e5 g1f3 b8c6 f1c4 f8c5 e1g1 g8f6 d2d3 e8g8"},
		{"promotion", "e2e4 d7d5 e4d5 c7c6 d5c6 g8f6 c6b7 b8d7 b7a8q"},
		{"en passant", "e2e4 g8f6 e4e5 d7d5 e5d6"},
		{"fool's mate", "f2f3 e7e5 g2g4 d8h4"},
		{"scholar's mate", "e2e4 e7e5 f1c4 b8c6 d1h5 g8f6 h5f7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game, err := UCIToGame(UCIMoves(tt.moves), "")
			require.NoError(t, err)

			opt, err := notnil.PGN(strings.NewReader(game.String()))
			require.NoError(t, err)
			theirs := notnil.NewGame(opt)

			var got []string
			for _, m := range theirs.Moves() {
				got = append(got, m.String())
			}
			assert.Equal(t, UCIMoves(tt.moves), got)
			assert.Equal(t, game.GetTagPair("Result"), theirs.Outcome().String())
			assert.Equal(t, game.Position().Board().String(), theirs.Position().Board().String())
		})
	}
}

// longGame is a complete 42-move game on one line.
const longGame = "1. e4 e5 2. Nf3 Nc6 3. Bb5 a6 4. Ba4 Nf6 5. O-O Be7 6. Re1 b5 7. Bb3 d6 8. c3 O-O 9. h3 Nb8 10. d4 Nbd7 11. c4 c6 12. cxb5 axb5 13. Nc3 Bb7 14. Bg5 h6 15. Bh4 Re8 16. a3 Bf8 17. Rc1 Qb6 18. dxe5 dxe5 19. Qe2 Nh5 20. Qd2 Nc5 21. Bc2 Nf4 22. Bg3 Rad8 23. Qe3 Qc7 24. Rcd1 Rxd1 25. Rxd1 Nce6 26. Bb3 Bc5 27. Qe1 Nd4 28. Nxd4 Bxd4 29. Bxf4 exf4 30. Rxd4 c5 31. Rd1 c4 32. Bc2 Qe5 33. f3 Qc5+ 34. Qf2 Qe5 35. Qd4 Qg5 36. Qd7 Re7 37. Qd8+ Kh7 38. e5+ g6 39. Qd6 Bxf3 40. Rd2 Rxe5 41. Qd4 Re1+ 42. Kf2 Qg3# 0-1"

func TestGameStringWrapsMovetext(t *testing.T) {
	g := mustParsePGN(t, longGame)
	require.Equal(t, BlackWon, g.Outcome())

	text := g.String()
	lines := strings.Split(text, "\n")
	require.Greater(t, len(lines), 1)
	for _, line := range lines {
		assert.LessOrEqual(t, len(line), 80, line)
		assert.Equal(t, strings.TrimSpace(line), line)
	}
	assert.Equal(t, longGame, strings.Join(lines, " "))

	again := mustParsePGN(t, text)
	assert.Equal(t, len(g.Moves()), len(again.Moves()))
	assert.Equal(t, g.FEN(), again.FEN())
}

func TestGameStringKeepsLongCommentWhole(t *testing.T) {
	comment := strings.Repeat("a long remark ", 8) + "end"
	g := NewGame()
	pushMoves(t, g, "e4", "e5", "Nf3")
	g.Moves()[1].AddComment(comment)

	lines := strings.Split(g.String(), "\n")
	assert.Contains(t, lines, "{"+comment+"}")

	again := mustParsePGN(t, g.String())
	assert.Equal(t, comment, again.Moves()[1].Comments())
}

func TestWrapMovetext(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"1. e4 e5 *", 80, "1. e4 e5 *"},
		{"1. e4 e5 2. Nf3 *", 8, "1. e4 e5\n2. Nf3 *"},
		{"1. e4 {two words} e5 *", 6, "1. e4\n{two words}\ne5 *"},
		{"1. e4 (1. d4) *", 9, "1. e4 (1.\nd4) *"},
	}
	for _, tt := range tests {
		var sb strings.Builder
		wrapMovetext(&sb, tt.text, tt.width)
		assert.Equal(t, tt.want, sb.String(), tt.text)
	}
}
