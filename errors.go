package chess

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPosition is matched by errors.Is for every *InvalidPositionError.
	ErrInvalidPosition = errors.New("chess: invalid position")
	// ErrIllegalMove is matched by errors.Is for every *IllegalMoveError.
	ErrIllegalMove = errors.New("chess: illegal move")
	// ErrNoGameFound is returned when a PGN reader holds no game.
	ErrNoGameFound = errors.New("chess: no game found")
)

// InvalidPositionError reports a FEN string that is malformed or describes a
// position that cannot arise in a legal game.
type InvalidPositionError struct {
	FEN    string
	Reason string
}

func (e *InvalidPositionError) Error() string {
	return fmt.Sprintf("chess: invalid position %q: %s", e.FEN, e.Reason)
}

// Is reports whether target is ErrInvalidPosition.
func (e *InvalidPositionError) Is(target error) bool {
	return target == ErrInvalidPosition
}

// IllegalMoveError reports move text that is malformed or does not name a
// legal move in the position it was played from.
type IllegalMoveError struct {
	Move   string
	FEN    string
	Reason string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("chess: illegal move %q in %q: %s", e.Move, e.FEN, e.Reason)
}

// Is reports whether target is ErrIllegalMove.
func (e *IllegalMoveError) Is(target error) bool {
	return target == ErrIllegalMove
}

// ParserError represents an error that occurred while parsing PGN.
type ParserError struct {
	Err        error
	Message    string
	TokenValue string
	TokenType  TokenType
	Position   int
}

func (e *ParserError) Error() string {
	msg := fmt.Sprintf("chess: parser error at token %d (%s %q): %s", e.Position, e.TokenType, e.TokenValue, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParserError) Unwrap() error {
	return e.Err
}

func illegalMove(pos *Position, move, reason string) *IllegalMoveError {
	return &IllegalMoveError{Move: move, FEN: pos.String(), Reason: reason}
}
