package chess

import (
	"strconv"
	"strings"
)

// A Board represents a chess board and its relationship between squares and pieces.
type Board struct {
	squares [numOfSquaresInBoard]Piece
}

// NewBoard returns a board from a square to piece mapping.
func NewBoard(m map[Square]Piece) *Board {
	b := &Board{}
	for sq, p := range m {
		if sq >= A1 && sq <= H8 {
			b.squares[sq] = p
		}
	}
	return b
}

// Piece returns the piece for the given square.
func (b *Board) Piece(sq Square) Piece {
	if sq < A1 || sq > H8 {
		return NoPiece
	}
	return b.squares[sq]
}

// SquareMap returns a mapping of squares to pieces.  A square is only added to the map if it is occupied.
func (b *Board) SquareMap() map[Square]Piece {
	m := map[Square]Piece{}
	for sq, p := range b.squares {
		if p != NoPiece {
			m[Square(sq)] = p
		}
	}
	return m
}

// Draw returns visual representation of the board useful for debugging.
func (b *Board) Draw() string {
	var sb strings.Builder
	sb.WriteString("\n A B C D E F G H\n")
	for r := Rank8; r >= Rank1; r-- {
		sb.WriteString(r.String())
		for f := FileA; f <= FileH; f++ {
			p := b.Piece(NewSquare(f, r))
			if p == NoPiece {
				sb.WriteString("-")
			} else {
				sb.WriteString(p.Unicode())
			}
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// String implements the fmt.Stringer interface and returns
// a string in the FEN board format: rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR
func (b *Board) String() string {
	var sb strings.Builder
	for r := Rank8; r >= Rank1; r-- {
		empty := 0
		for f := FileA; f <= FileH; f++ {
			p := b.squares[NewSquare(f, r)]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r != Rank1 {
			sb.WriteString("/")
		}
	}
	return sb.String()
}

// kingSquare returns the square of the given color's king, or NoSquare.
func (b *Board) kingSquare(c Color) Square {
	king := NewPiece(King, c)
	for sq, p := range b.squares {
		if p == king {
			return Square(sq)
		}
	}
	return NoSquare
}

func (b *Board) count(p Piece) int {
	n := 0
	for _, q := range b.squares {
		if q == p {
			n++
		}
	}
	return n
}

// hasSufficientMaterial reports whether either side could still deliver mate.
// Dead positions recognised: king against king, a single minor piece against
// a bare king, and any number of bishops that all stand on one square color.
func (b *Board) hasSufficientMaterial() bool {
	knights := 0
	lightBishops, darkBishops := 0, 0
	for sq, p := range b.squares {
		switch p.Type() {
		case Queen, Rook, Pawn:
			return true
		case Knight:
			knights++
		case Bishop:
			if Square(sq).isLight() {
				lightBishops++
			} else {
				darkBishops++
			}
		}
	}
	if knights == 0 {
		return lightBishops > 0 && darkBishops > 0
	}
	return knights > 1 || lightBishops+darkBishops > 0
}
