package chess

// A Square is one of the 64 squares on a chess board, numbered a1=0 through h8=63.
type Square int8

// NoSquare represents the absence of a square, e.g. no en passant target.
const NoSquare Square = -1

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

const numOfSquaresInBoard = 64

// NewSquare returns the square at the given file and rank.
func NewSquare(f File, r Rank) Square {
	return Square(int8(r)*8 + int8(f))
}

// File returns the square's file.
func (sq Square) File() File {
	return File(int8(sq) % 8)
}

// Rank returns the square's rank.
func (sq Square) Rank() Rank {
	return Rank(int8(sq) / 8)
}

// String implements the fmt.Stringer interface and returns
// a string in the "a1" format.
func (sq Square) String() string {
	if sq < A1 || sq > H8 {
		return "-"
	}
	return sq.File().String() + sq.Rank().String()
}

// isLight reports whether the square is a light square.
func (sq Square) isLight() bool {
	return (int8(sq.File())+int8(sq.Rank()))%2 == 1
}

// offset returns the square df files and dr ranks away, or NoSquare when
// that leaves the board.
func (sq Square) offset(df, dr int) Square {
	f := int(sq.File()) + df
	r := int(sq.Rank()) + dr
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return NoSquare
	}
	return NewSquare(File(f), Rank(r))
}

// A File is the file of a square.
type File int8

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

// String returns the file letter, "a" through "h".
func (f File) String() string {
	return string(rune('a' + f))
}

// A Rank is the rank of a square.
type Rank int8

const (
	Rank1 Rank = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

// String returns the rank digit, "1" through "8".
func (r Rank) String() string {
	return string(rune('1' + r))
}

// parseSquare converts a square name (e.g., "e4") into a Square.
func parseSquare(s string) Square {
	const squareLen = 2
	if len(s) != squareLen {
		return NoSquare
	}

	file := int(s[0]) - 'a'
	rank := int(s[1]) - '1'

	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare
	}

	return Square(rank*8 + file)
}

func isFile(c byte) bool {
	return c >= 'a' && c <= 'h'
}

func isRank(c byte) bool {
	return c >= '1' && c <= '8'
}
