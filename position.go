package chess

import (
	"strconv"
	"strings"
)

// Side is a side of the board you can castle to.
type Side uint8

const (
	// KingSide is the right side of the board from white's perspective.
	KingSide Side = iota + 1
	// QueenSide is the left side of the board from white's perspective.
	QueenSide
)

// CastleRights holds the castling options still available to both players.
type CastleRights uint8

const (
	WhiteKingSideCastle CastleRights = 1 << iota
	WhiteQueenSideCastle
	BlackKingSideCastle
	BlackQueenSideCastle

	NoCastleRights  CastleRights = 0
	AllCastleRights              = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

func castleRight(c Color, side Side) CastleRights {
	switch {
	case c == White && side == KingSide:
		return WhiteKingSideCastle
	case c == White && side == QueenSide:
		return WhiteQueenSideCastle
	case c == Black && side == KingSide:
		return BlackKingSideCastle
	case c == Black && side == QueenSide:
		return BlackQueenSideCastle
	}
	return NoCastleRights
}

// CanCastle returns true if the given color and side combination
// can castle, otherwise returns false.
func (cr CastleRights) CanCastle(c Color, side Side) bool {
	r := castleRight(c, side)
	return r != NoCastleRights && cr&r != 0
}

// String implements the fmt.Stringer interface and returns
// a FEN compatible string.  Ex. KQq
func (cr CastleRights) String() string {
	if cr == NoCastleRights {
		return "-"
	}
	var sb strings.Builder
	if cr&WhiteKingSideCastle != 0 {
		sb.WriteString("K")
	}
	if cr&WhiteQueenSideCastle != 0 {
		sb.WriteString("Q")
	}
	if cr&BlackKingSideCastle != 0 {
		sb.WriteString("k")
	}
	if cr&BlackQueenSideCastle != 0 {
		sb.WriteString("q")
	}
	return sb.String()
}

// castleRightsLost returns the rights forfeited when a piece leaves or
// arrives on sq.
func castleRightsLost(sq Square) CastleRights {
	switch sq {
	case E1:
		return WhiteKingSideCastle | WhiteQueenSideCastle
	case H1:
		return WhiteKingSideCastle
	case A1:
		return WhiteQueenSideCastle
	case E8:
		return BlackKingSideCastle | BlackQueenSideCastle
	case H8:
		return BlackKingSideCastle
	case A8:
		return BlackQueenSideCastle
	}
	return NoCastleRights
}

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Position represents the state of the game without regard to its outcome.
// A Position is never modified once built; Update returns a new one.
type Position struct {
	validMoves      []Move
	board           Board
	enPassantSquare Square
	halfMoveClock   int
	moveCount       int
	turn            Color
	castleRights    CastleRights
	inCheck         bool
	movesGenerated  bool
}

// StartingPosition returns the starting position
// rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1.
func StartingPosition() *Position {
	pos, err := decodeFEN(startFEN)
	if err != nil {
		panic(err)
	}
	return pos
}

// NewPositionFromFEN returns the position described by fen. The error is an
// *InvalidPositionError when fen is malformed or describes an illegal position.
func NewPositionFromFEN(fen string) (*Position, error) {
	return decodeFEN(fen)
}

// Update returns a new position resulting from the given move.
// The move itself isn't validated, if validation is needed use
// Game's Move method.
func (pos *Position) Update(m *Move) *Position {
	b := pos.board
	us := pos.turn
	moved := b.squares[m.s1]
	captured := b.squares[m.s2]
	isPawn := moved.Type() == Pawn

	b.squares[m.s1] = NoPiece
	b.squares[m.s2] = moved

	if isPawn && m.s2 == pos.enPassantSquare && captured == NoPiece && m.s1.File() != m.s2.File() {
		victim := NewSquare(m.s2.File(), m.s1.Rank())
		captured = b.squares[victim]
		b.squares[victim] = NoPiece
	}
	if isPawn && m.promo != NoPieceType {
		b.squares[m.s2] = NewPiece(m.promo, us)
	}
	if moved.Type() == King {
		rank := m.s1.Rank()
		switch int(m.s2.File()) - int(m.s1.File()) {
		case 2:
			b.squares[NewSquare(FileF, rank)] = b.squares[NewSquare(FileH, rank)]
			b.squares[NewSquare(FileH, rank)] = NoPiece
		case -2:
			b.squares[NewSquare(FileD, rank)] = b.squares[NewSquare(FileA, rank)]
			b.squares[NewSquare(FileA, rank)] = NoPiece
		}
	}

	ep := NoSquare
	if isPawn {
		if d := int(m.s2.Rank()) - int(m.s1.Rank()); d == 2 || d == -2 {
			ep = NewSquare(m.s1.File(), Rank((int(m.s1.Rank())+int(m.s2.Rank()))/2))
		}
	}

	halfMoveClock := pos.halfMoveClock + 1
	if isPawn || captured != NoPiece {
		halfMoveClock = 0
	}
	moveCount := pos.moveCount
	if us == Black {
		moveCount++
	}

	next := &Position{
		board:           b,
		turn:            us.Other(),
		castleRights:    pos.castleRights &^ (castleRightsLost(m.s1) | castleRightsLost(m.s2)),
		enPassantSquare: ep,
		halfMoveClock:   halfMoveClock,
		moveCount:       moveCount,
	}
	next.inCheck = next.board.isAttacked(next.board.kingSquare(next.turn), us)
	return next
}

// ValidMoves returns a list of valid moves for the position.
func (pos *Position) ValidMoves() []Move {
	return append([]Move(nil), pos.legalMoves()...)
}

// legalMoves returns the cached legal move list, generating it on first use.
func (pos *Position) legalMoves() []Move {
	if !pos.movesGenerated {
		pos.validMoves = pos.generateLegalMoves()
		pos.movesGenerated = true
	}
	return pos.validMoves
}

// Status returns the position's status as one of the outcome methods.
// Possible returns values include Checkmate, Stalemate, and NoMethod.
func (pos *Position) Status() Method {
	if len(pos.legalMoves()) > 0 {
		return NoMethod
	}
	if pos.inCheck {
		return Checkmate
	}
	return Stalemate
}

// Result returns the outcome the position decides on its own: checkmate,
// stalemate, insufficient material and the seventy-five-move rule. Draws
// that depend on the history of the game are left to Game.
func (pos *Position) Result() Outcome {
	switch pos.Status() {
	case Checkmate:
		if pos.turn == White {
			return BlackWon
		}
		return WhiteWon
	case Stalemate:
		return Draw
	}
	if !pos.board.hasSufficientMaterial() || pos.halfMoveClock >= 150 {
		return Draw
	}
	return NoOutcome
}

// Board returns a copy of the position's board.
func (pos *Position) Board() *Board {
	b := pos.board
	return &b
}

// Turn returns the color to move next.
func (pos *Position) Turn() Color {
	return pos.turn
}

// CastleRights returns the castling rights of the position.
func (pos *Position) CastleRights() CastleRights {
	return pos.castleRights
}

// EnPassantSquare returns the en-passant square.
func (pos *Position) EnPassantSquare() Square {
	return pos.enPassantSquare
}

// HalfMoveClock returns the half-move clock (50-rule).
func (pos *Position) HalfMoveClock() int {
	return pos.halfMoveClock
}

// MoveCount returns the full move number, starting at 1 and incremented after Black moves.
func (pos *Position) MoveCount() int {
	return pos.moveCount
}

// InCheck returns true if the side to move is in check.
func (pos *Position) InCheck() bool {
	return pos.inCheck
}

// String implements the fmt.Stringer interface and returns a
// string with the FEN format: rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1
func (pos *Position) String() string {
	return strings.Join([]string{
		pos.board.String(),
		pos.turn.String(),
		pos.castleRights.String(),
		pos.enPassantSquare.String(),
		strconv.Itoa(pos.halfMoveClock),
		strconv.Itoa(pos.moveCount),
	}, " ")
}

// samePosition reports whether two positions repeat each other for the
// purposes of the repetition rules. An en-passant square only counts while
// a legal en-passant capture exists.
func (pos *Position) samePosition(other *Position) bool {
	return pos.board == other.board &&
		pos.turn == other.turn &&
		pos.castleRights == other.castleRights &&
		pos.enPassantCaptureSquare() == other.enPassantCaptureSquare()
}

// enPassantCaptureSquare returns the en-passant square if the side to move
// can legally capture on it, NoSquare otherwise.
func (pos *Position) enPassantCaptureSquare() Square {
	if pos.enPassantSquare == NoSquare {
		return NoSquare
	}
	moves := pos.legalMoves()
	for i := range moves {
		if moves[i].HasTag(EnPassant) {
			return pos.enPassantSquare
		}
	}
	return NoSquare
}
