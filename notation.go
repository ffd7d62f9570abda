package chess

import (
	"fmt"
	"regexp"
	"strings"
)

// Encoder is the interface implemented by objects that can
// encode a move into a string given the position.  It is not
// the encoders responsibility to validate the move.
type Encoder interface {
	Encode(pos *Position, m *Move) string
}

// Decoder is the interface implemented by objects that can
// decode a string into a move given the position. It is
// the decoders responsibility to validate the move.  An error
// is returned if the string could not be decoded.
type Decoder interface {
	Decode(pos *Position, s string) (*Move, error)
}

// Notation is the interface implemented by objects that can
// encode and decode moves.
type Notation interface {
	Encoder
	Decoder
}

// UCINotation is a more computer friendly alternative to algebraic
// notation.  This notation uses the same format as the UCI (Universal Chess
// Interface).  Examples: e2e4, e7e5, e1g1 (white short castling), e7e8q (for promotion)
type UCINotation struct{}

// String implements the fmt.Stringer interface and returns
// the notation's name.
func (UCINotation) String() string {
	return "UCI Notation"
}

// Encode implements the Encoder interface.
func (UCINotation) Encode(_ *Position, m *Move) string {
	return m.String()
}

// Decode implements the Decoder interface. The king-takes-rook spelling of
// castling (e1h1, e1a1) is accepted as an alias for e1g1 and e1c1.
func (UCINotation) Decode(pos *Position, s string) (*Move, error) {
	if !isCoordinateMoveToken(s) {
		return nil, illegalMove(pos, s, "not a UCI move")
	}
	s1 := parseSquare(s[0:2])
	s2 := parseSquare(s[2:4])
	promo := NoPieceType
	if len(s) == 5 {
		promo = pieceTypeFromByte(s[4])
	}

	if p := pos.board.Piece(s1); p.Type() == King && pos.board.Piece(s2) == NewPiece(Rook, p.Color()) {
		switch {
		case s2.File() == FileH && s1.File() == FileE:
			s2 = NewSquare(FileG, s1.Rank())
		case s2.File() == FileA && s1.File() == FileE:
			s2 = NewSquare(FileC, s1.Rank())
		}
	}

	for _, m := range pos.legalMoves() {
		if m.s1 != s1 || m.s2 != s2 {
			continue
		}
		if m.promo != promo {
			if promo == NoPieceType {
				return nil, illegalMove(pos, s, "promotion piece required")
			}
			continue
		}
		found := m
		return &found, nil
	}
	return nil, illegalMove(pos, s, "no such legal move")
}

// isCoordinateMoveToken reports whether t has the shape of a UCI move.
func isCoordinateMoveToken(t string) bool {
	if len(t) != 4 && len(t) != 5 {
		return false
	}
	if !isFile(t[0]) || !isRank(t[1]) || !isFile(t[2]) || !isRank(t[3]) {
		return false
	}
	if len(t) == 5 {
		switch t[4] {
		case 'q', 'r', 'b', 'n', 'Q', 'R', 'B', 'N':
			return true
		default:
			return false
		}
	}
	return true
}

// AlgebraicNotation (or Standard Algebraic Notation) is the
// official chess notation used by FIDE. Examples: e4, e5,
// O-O (short castling), e8=Q (promotion)
type AlgebraicNotation struct{}

// String implements the fmt.Stringer interface and returns
// the notation's name.
func (AlgebraicNotation) String() string {
	return "Algebraic Notation"
}

// Encode implements the Encoder interface.
func (AlgebraicNotation) Encode(pos *Position, m *Move) string {
	suffix := checkSuffix(pos, m)
	if m.HasTag(KingSideCastle) {
		return "O-O" + suffix
	}
	if m.HasTag(QueenSideCastle) {
		return "O-O-O" + suffix
	}

	p := pos.board.Piece(m.s1)
	var sb strings.Builder
	capture := m.HasTag(Capture) || m.HasTag(EnPassant)
	if p.Type() == Pawn {
		if capture {
			sb.WriteString(m.s1.File().String())
		}
	} else {
		sb.WriteString(p.Type().sanString())
		sb.WriteString(disambiguation(pos, m, p))
	}
	if capture {
		sb.WriteString("x")
	}
	sb.WriteString(m.s2.String())
	if m.promo != NoPieceType {
		sb.WriteString("=" + m.promo.sanString())
	}
	sb.WriteString(suffix)
	return sb.String()
}

// checkSuffix returns "#", "+" or "" for the move played in pos.
func checkSuffix(pos *Position, m *Move) string {
	next := pos.Update(m)
	if !next.inCheck {
		return ""
	}
	if len(next.legalMoves()) == 0 {
		return "#"
	}
	return "+"
}

// disambiguation returns the origin file, rank or square needed to tell m
// apart from other legal moves of the same piece type to the same square.
func disambiguation(pos *Position, m *Move, p Piece) string {
	ambiguous, sameFile, sameRank := false, false, false
	for _, other := range pos.legalMoves() {
		if other.s2 != m.s2 || other.s1 == m.s1 || pos.board.Piece(other.s1) != p {
			continue
		}
		ambiguous = true
		if other.s1.File() == m.s1.File() {
			sameFile = true
		}
		if other.s1.Rank() == m.s1.Rank() {
			sameRank = true
		}
	}
	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return m.s1.File().String()
	case !sameRank:
		return m.s1.Rank().String()
	}
	return m.s1.String()
}

var sanPattern = regexp.MustCompile(`^([NBRQK])?([a-h])?([1-8])?(x)?([a-h][1-8])(?:=?([NBRQ]))?$`)

// sanParts is the syntactic breakdown of a SAN move.
type sanParts struct {
	piece      PieceType
	originFile string
	originRank string
	dest       Square
	promotion  PieceType
	castle     Side
	capture    bool
}

// algebraicNotationParts splits SAN text into its parts without looking at
// a position. Trailing check, mate and annotation marks are ignored.
func algebraicNotationParts(s string) (sanParts, error) {
	text := strings.TrimRight(s, "+#!?")
	switch text {
	case "O-O", "0-0":
		return sanParts{piece: King, castle: KingSide}, nil
	case "O-O-O", "0-0-0":
		return sanParts{piece: King, castle: QueenSide}, nil
	}

	match := sanPattern.FindStringSubmatch(text)
	if match == nil {
		return sanParts{}, fmt.Errorf("chess: invalid algebraic notation %q", s)
	}
	parts := sanParts{
		piece:      Pawn,
		originFile: match[2],
		originRank: match[3],
		capture:    match[4] != "",
		dest:       parseSquare(match[5]),
		promotion:  PieceTypeFromString(match[6]),
	}
	if match[1] != "" {
		parts.piece = PieceTypeFromString(match[1])
	}
	if parts.promotion != NoPieceType && parts.piece != Pawn {
		return sanParts{}, fmt.Errorf("chess: only pawns promote in %q", s)
	}
	return parts, nil
}

// Decode implements the Decoder interface.
func (AlgebraicNotation) Decode(pos *Position, s string) (*Move, error) {
	parts, err := algebraicNotationParts(s)
	if err != nil {
		return nil, illegalMove(pos, s, err.Error())
	}

	var found *Move
	for _, m := range pos.legalMoves() {
		if !parts.matches(pos, &m) {
			continue
		}
		if found != nil {
			return nil, illegalMove(pos, s, "ambiguous move")
		}
		match := m
		found = &match
	}
	if found == nil {
		return nil, illegalMove(pos, s, "no such legal move")
	}
	return found, nil
}

func (parts sanParts) matches(pos *Position, m *Move) bool {
	switch parts.castle {
	case KingSide:
		return m.HasTag(KingSideCastle)
	case QueenSide:
		return m.HasTag(QueenSideCastle)
	}
	if m.s2 != parts.dest || pos.board.Piece(m.s1).Type() != parts.piece {
		return false
	}
	if parts.originFile != "" && m.s1.File().String() != parts.originFile {
		return false
	}
	if parts.originRank != "" && m.s1.Rank().String() != parts.originRank {
		return false
	}
	if parts.capture && !(m.HasTag(Capture) || m.HasTag(EnPassant)) {
		return false
	}
	if parts.piece == Pawn && !parts.capture && m.s1.File() != m.s2.File() {
		return false
	}
	return m.promo == parts.promotion
}
