package chess

import (
	"fmt"
	"strings"
)

// uciPreamble is the prefix of a UCI "position" command that starts from the
// standard position. Only this exact form is recognised.
var uciPreamble = []string{"position", "startpos", "moves"}

// UCIMoves splits a line into UCI move tokens, dropping a leading
// "position startpos moves" preamble. Any other leading words are kept and
// will be rejected as moves.
func UCIMoves(line string) []string {
	tokens := strings.Fields(line)
	if len(tokens) >= len(uciPreamble) {
		match := true
		for i, w := range uciPreamble {
			if tokens[i] != w {
				match = false
				break
			}
		}
		if match {
			tokens = tokens[len(uciPreamble):]
		}
	}
	return tokens
}

// UCIToGame plays the UCI moves in order from startFEN, or from the standard
// starting position when startFEN is empty, and returns the finalized game.
// The first malformed FEN or illegal move aborts the conversion.
func UCIToGame(moves []string, startFEN string) (*Game, error) {
	var options []func(*Game)
	if startFEN != "" {
		fen, err := FEN(startFEN)
		if err != nil {
			return nil, err
		}
		options = append(options, fen)
	}
	game := NewGame(options...)

	for i, tok := range moves {
		if err := game.PushNotationMove(tok, UCINotation{}, nil); err != nil {
			return nil, fmt.Errorf("ply %d (%s): %w", i+1, tok, err)
		}
	}

	game.Finalize(game.Outcome())
	return game, nil
}

// UCIToPGN converts UCI moves played from startFEN into PGN text. See UCIToGame.
func UCIToPGN(moves []string, startFEN string) (string, error) {
	game, err := UCIToGame(moves, startFEN)
	if err != nil {
		return "", err
	}
	return game.String(), nil
}
