package chess

// A Color is the color of a chess piece.
type Color int8

const (
	// NoColor is used for empty squares and undecided outcomes.
	NoColor Color = iota
	// White represents the color white.
	White
	// Black represents the color black.
	Black
)

// Other returns the opposite color of the receiver.
func (c Color) Other() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

// String implements the fmt.Stringer interface and returns
// the color's FEN compatible notation.
func (c Color) String() string {
	switch c {
	case White:
		return "w"
	case Black:
		return "b"
	}
	return "-"
}

// Name returns a display friendly name.
func (c Color) Name() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	}
	return "No Color"
}

// PieceType is the type of a piece.
type PieceType int8

const (
	// NoPieceType represents a lack of piece type.
	NoPieceType PieceType = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

// PieceTypes returns all piece types.
func PieceTypes() [6]PieceType {
	return [6]PieceType{King, Queen, Rook, Bishop, Knight, Pawn}
}

// PieceTypeFromString returns the piece type for an uppercase or
// lowercase letter ("k", "Q", ...), or NoPieceType.
func PieceTypeFromString(s string) PieceType {
	if len(s) != 1 {
		return NoPieceType
	}
	return pieceTypeFromByte(s[0])
}

func pieceTypeFromByte(b byte) PieceType {
	switch b {
	case 'k', 'K':
		return King
	case 'q', 'Q':
		return Queen
	case 'r', 'R':
		return Rook
	case 'b', 'B':
		return Bishop
	case 'n', 'N':
		return Knight
	case 'p', 'P':
		return Pawn
	}
	return NoPieceType
}

// String returns the lowercase letter used for the piece type in UCI
// promotions and FEN, or "" for NoPieceType.
func (p PieceType) String() string {
	switch p {
	case King:
		return "k"
	case Queen:
		return "q"
	case Rook:
		return "r"
	case Bishop:
		return "b"
	case Knight:
		return "n"
	case Pawn:
		return "p"
	}
	return ""
}

// sanString returns the uppercase SAN piece letter; pawns have none.
func (p PieceType) sanString() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

// Piece is a piece type with a color.
type Piece int8

const (
	// NoPiece represents no piece.
	NoPiece Piece = iota
	WhiteKing
	WhiteQueen
	WhiteRook
	WhiteBishop
	WhiteKnight
	WhitePawn
	BlackKing
	BlackQueen
	BlackRook
	BlackBishop
	BlackKnight
	BlackPawn
)

// NewPiece returns the piece matching the PieceType and Color.
// NoPiece is returned if the PieceType or Color isn't valid.
func NewPiece(t PieceType, c Color) Piece {
	if t == NoPieceType {
		return NoPiece
	}
	switch c {
	case White:
		return Piece(t)
	case Black:
		return Piece(int8(t) + 6)
	}
	return NoPiece
}

// Type returns the type of the piece.
func (p Piece) Type() PieceType {
	switch {
	case p >= WhiteKing && p <= WhitePawn:
		return PieceType(p)
	case p >= BlackKing && p <= BlackPawn:
		return PieceType(int8(p) - 6)
	}
	return NoPieceType
}

// Color returns the color of the piece.
func (p Piece) Color() Color {
	switch {
	case p >= WhiteKing && p <= WhitePawn:
		return White
	case p >= BlackKing && p <= BlackPawn:
		return Black
	}
	return NoColor
}

// String returns the piece's FEN letter: uppercase for white,
// lowercase for black.
func (p Piece) String() string {
	s := p.Type().String()
	if s == "" {
		return ""
	}
	if p.Color() == White {
		return string(rune(s[0] - 'a' + 'A'))
	}
	return s
}

var pieceUnicodes = map[Piece]string{
	WhiteKing: "♔", WhiteQueen: "♕", WhiteRook: "♖", WhiteBishop: "♗", WhiteKnight: "♘", WhitePawn: "♙",
	BlackKing: "♚", BlackQueen: "♛", BlackRook: "♜", BlackBishop: "♝", BlackKnight: "♞", BlackPawn: "♟",
}

// Unicode returns the chess symbol for the piece, or "" for NoPiece.
func (p Piece) Unicode() string {
	return pieceUnicodes[p]
}

func pieceFromFENByte(b byte) Piece {
	t := pieceTypeFromByte(b)
	if t == NoPieceType {
		return NoPiece
	}
	if b >= 'A' && b <= 'Z' {
		return NewPiece(t, White)
	}
	return NewPiece(t, Black)
}
