package chess

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUCIMoves(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"e2e4 e7e5", []string{"e2e4", "e7e5"}},
		{"position startpos moves e2e4 e7e5", []string{"e2e4", "e7e5"}},
		{"  position   startpos moves\te2e4\n", []string{"e2e4"}},
		{"position startpos moves", []string{}},
		{"position startpos e2e4", []string{"position", "startpos", "e2e4"}},
		{"position fen 8/8/8/8/8/8/8/8 w - - 0 1 moves e2e4", []string{"position", "fen", "8/8/8/8/8/8/8/8", "w", "-", "-", "0", "1", "moves", "e2e4"}},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := UCIMoves(tt.line)
			assert.Equal(t, len(tt.want), len(got))
			if len(tt.want) > 0 {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestUCIToPGN(t *testing.T) {
	pgn, err := UCIToPGN(UCIMoves("e2e4 e7e5 g1f3 b8c6"), "")
	require.NoError(t, err)
	assert.Contains(t, pgn, "1. e4 e5 2. Nf3 Nc6")
	assert.Contains(t, pgn, `[Result "*"]`)
	assert.True(t, strings.HasSuffix(pgn, " *"))

	want := `[Event "?"]
[Site "?"]
[Date "????.??.??"]
[Round "?"]
[White "?"]
[Black "?"]
[Result "*"]

1. e4 e5 2. Nf3 Nc6 *`
	assert.Equal(t, want, pgn)
}

func TestUCIToPGNCheckmate(t *testing.T) {
	pgn, err := UCIToPGN(UCIMoves("f2f3 e7e5 g2g4 d8h4"), "")
	require.NoError(t, err)
	assert.Contains(t, pgn, `[Result "0-1"]`)
	assert.True(t, strings.HasSuffix(pgn, "1. f3 e5 2. g4 Qh4# 0-1"), pgn)
}

func TestUCIToGameOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		moves   string
		outcome Outcome
		method  Method
	}{
		{
			name:    "scholar's mate",
			moves:   "e2e4 e7e5 f1c4 b8c6 d1h5 g8f6 h5f7",
			outcome: WhiteWon,
			method:  Checkmate,
		},
		{
			name:    "stalemate",
			fen:     "k1K5/8/8/8/8/8/8/1Q6 w - - 0 1",
			moves:   "b1b6",
			outcome: Draw,
			method:  Stalemate,
		},
		{
			name:    "bare kings after capture",
			fen:     "4k3/8/8/8/8/8/3q4/4K3 w - - 0 1",
			moves:   "e1d2",
			outcome: Draw,
			method:  InsufficientMaterial,
		},
		{
			name:    "unfinished",
			moves:   "d2d4 d7d5",
			outcome: NoOutcome,
			method:  NoMethod,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game, err := UCIToGame(UCIMoves(tt.moves), tt.fen)
			require.NoError(t, err)
			assert.Equal(t, tt.outcome, game.Outcome())
			assert.Equal(t, tt.method, game.Method())
			assert.Equal(t, tt.outcome.String(), game.GetTagPair("Result"))
			assert.True(t, strings.HasSuffix(game.String(), " "+tt.outcome.String()))
		})
	}
}

func TestUCIToPGNPreamble(t *testing.T) {
	plain, err := UCIToPGN(UCIMoves("e2e4 e7e5"), "")
	require.NoError(t, err)
	prefixed, err := UCIToPGN(UCIMoves("position startpos moves e2e4 e7e5"), "")
	require.NoError(t, err)
	assert.Equal(t, plain, prefixed)
}

func TestUCIToPGNDeterministic(t *testing.T) {
	moves := UCIMoves("e2e4 c7c5 g1f3 d7d6 d2d4 c5d4 f3d4 g8f6 b1c3 a7a6")
	first, err := UCIToPGN(moves, "")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := UCIToPGN(moves, "")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestUCIToPGNFromFEN(t *testing.T) {
	const fen = "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1"
	pgn, err := UCIToPGN([]string{"e2e4", "e8d7"}, fen)
	require.NoError(t, err)
	assert.Contains(t, pgn, `[SetUp "1"]`)
	assert.Contains(t, pgn, `[FEN "`+fen+`"]`)
	assert.True(t, strings.HasSuffix(pgn, "1. e4 Kd7 *"), pgn)
}

func TestUCIToPGNEmpty(t *testing.T) {
	pgn, err := UCIToPGN(nil, "")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(pgn, "\n\n*"), pgn)
}

func TestUCIToPGNIllegalMove(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		moves string
		ply   string
	}{
		{name: "pawn jumps three", moves: "e2e5", ply: "ply 1 (e2e5)"},
		{name: "wrong side", moves: "e2e4 e2e3", ply: "ply 2 (e2e3)"},
		{
			name:  "exposes the king",
			fen:   "4r1k1/8/8/8/8/8/4B3/4K3 w - - 0 1",
			moves: "e2d3",
			ply:   "ply 1 (e2d3)",
		},
		{name: "garbage token", moves: "e2e4 hello", ply: "ply 2 (hello)"},
		{name: "preamble mid line", moves: "e2e4 position startpos moves", ply: "ply 2 (position)"},
		{name: "after the game ended", moves: "f2f3 e7e5 g2g4 d8h4 e2e4", ply: "ply 5 (e2e4)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pgn, err := UCIToPGN(UCIMoves(tt.moves), tt.fen)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrIllegalMove), err.Error())
			assert.Contains(t, err.Error(), tt.ply)
			assert.Empty(t, pgn)

			game, err := UCIToGame(UCIMoves(tt.moves), tt.fen)
			assert.Error(t, err)
			assert.Nil(t, game)
		})
	}
}

func TestUCIToPGNInvalidPosition(t *testing.T) {
	fens := []string{
		"not a fen",
		"8/8/8/8/8/8/8/8 w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
	}
	for _, fen := range fens {
		pgn, err := UCIToPGN([]string{"e2e4"}, fen)
		require.Error(t, err, fen)
		assert.True(t, errors.Is(err, ErrInvalidPosition), err.Error())
		var posErr *InvalidPositionError
		require.True(t, errors.As(err, &posErr))
		assert.Equal(t, fen, posErr.FEN)
		assert.Empty(t, pgn)
	}
}

func TestResultIdempotent(t *testing.T) {
	game, err := UCIToGame(UCIMoves("f2f3 e7e5 g2g4 d8h4"), "")
	require.NoError(t, err)
	pos := game.Position()
	assert.Equal(t, pos.Result(), pos.Result())
	assert.Equal(t, BlackWon, pos.Result())
}
