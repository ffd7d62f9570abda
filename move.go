package chess

import "strings"

// A MoveTag represents a notable consequence of a move.
type MoveTag uint16

const (
	// KingSideCastle indicates that the move is a king side castle.
	KingSideCastle MoveTag = 1 << iota
	// QueenSideCastle indicates that the move is a queen side castle.
	QueenSideCastle
	// Capture indicates that the move captures a piece.
	Capture
	// EnPassant indicates that the move captures via en passant.
	EnPassant
	// Check indicates that the move puts the opposing player in check.
	Check
)

// A Move is one ply in a game. Moves are also the nodes of a game's move tree:
// the first child is the continuation of the line, later children are variations.
type Move struct {
	parent   *Move
	position *Position // position after the move; the start position for the root
	children []*Move
	command  map[string]string
	comments string
	nag      string
	number   int
	s1       Square
	s2       Square
	promo    PieceType
	tags     MoveTag
}

// S1 returns the origin square of the move.
func (m *Move) S1() Square {
	return m.s1
}

// S2 returns the destination square of the move.
func (m *Move) S2() Square {
	return m.s2
}

// Promo returns promotion piece type of the move.
func (m *Move) Promo() PieceType {
	return m.promo
}

// HasTag returns true if the move contains the MoveTag given.
func (m *Move) HasTag(tag MoveTag) bool {
	return (tag & m.tags) > 0
}

// AddTag adds the given MoveTag to the move's tags using a bitwise OR operation.
func (m *Move) AddTag(tag MoveTag) {
	m.tags |= tag
}

// String returns a string useful for debugging.  String doesn't return
// algebraic notation.
func (m *Move) String() string {
	return m.s1.String() + m.s2.String() + m.promo.String()
}

// Parent returns the move this move was played after, or nil for the root.
func (m *Move) Parent() *Move {
	return m.parent
}

// Children returns the continuations of this move; the first one is the main line.
func (m *Move) Children() []*Move {
	return m.children
}

// Position returns the position reached by playing the move.
func (m *Move) Position() *Position {
	return m.position
}

// Number returns the full move number the move was played at, or 0 if unknown.
func (m *Move) Number() int {
	return m.number
}

// Comments returns the comments attached to the move.
func (m *Move) Comments() string {
	return m.comments
}

// AddComment appends text to the move's comments.
func (m *Move) AddComment(comment string) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return
	}
	if m.comments != "" {
		m.comments += " "
	}
	m.comments += comment
}

// SetComment replaces the move's comments.
func (m *Move) SetComment(comment string) {
	m.comments = comment
}

// GetCommand returns the value of an embedded [%key value] command.
func (m *Move) GetCommand(key string) (string, bool) {
	v, ok := m.command[key]
	return v, ok
}

// SetCommand sets an embedded [%key value] command.
func (m *Move) SetCommand(key, value string) {
	if m.command == nil {
		m.command = make(map[string]string)
	}
	m.command[key] = value
}

// NAG returns the numeric annotation glyph of the move, e.g. "$1".
func (m *Move) NAG() string {
	return m.nag
}

// SetNAG sets the numeric annotation glyph of the move.
func (m *Move) SetNAG(nag string) {
	m.nag = nag
}

// sameMove reports whether both moves play the same squares and promotion.
func (m *Move) sameMove(o *Move) bool {
	return m.s1 == o.s1 && m.s2 == o.s2 && m.promo == o.promo
}
