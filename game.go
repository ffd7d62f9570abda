/*
Package chess records chess games: it validates and plays moves, keeps them in
a move tree, decides the outcome, and reads and writes the games as PGN.
Moves can be given in UCI (e2e4) or standard algebraic (e4) notation, and a
game may start from any legal FEN position.

Example usage:

	// Create new game
	game := NewGame()

	// Make moves
	game.PushNotationMove("e2e4", UCINotation{}, nil)
	game.PushNotationMove("e5", AlgebraicNotation{}, nil)

	// Record the result and print the PGN
	game.Finalize(game.Outcome())
	fmt.Println(game)
*/
package chess

import (
	"bytes"
	"errors"
	"fmt"

	"golang.org/x/exp/maps"
)

// A Outcome is the result of a game.
type Outcome string

const (
	// NoOutcome indicates that a game is in progress or ended without a result.
	NoOutcome Outcome = "*"
	// WhiteWon indicates that white won the game.
	WhiteWon Outcome = "1-0"
	// BlackWon indicates that black won the game.
	BlackWon Outcome = "0-1"
	// Draw indicates that game was a draw.
	Draw Outcome = "1/2-1/2"
)

// String implements the fmt.Stringer interface.
func (o Outcome) String() string {
	return string(o)
}

// parseOutcome maps a PGN result token to an Outcome; unknown tokens are NoOutcome.
func parseOutcome(s string) Outcome {
	switch Outcome(s) {
	case WhiteWon, BlackWon, Draw:
		return Outcome(s)
	}
	return NoOutcome
}

// A Method is the method that generated the outcome.
type Method uint8

const (
	// NoMethod indicates that an outcome hasn't occurred or that the method can't be determined.
	NoMethod Method = iota
	// Checkmate indicates that the game was won checkmate.
	Checkmate
	// DrawOffer indicates that the game was drawn by a draw offer.
	DrawOffer
	// Stalemate indicates that the game was drawn by stalemate.
	Stalemate
	// ThreefoldRepetition indicates that the game was drawn when the game
	// state was repeated three times and a player requested a draw.
	ThreefoldRepetition
	// FivefoldRepetition indicates that the game was automatically drawn
	// by the game state being repeated five times.
	FivefoldRepetition
	// FiftyMoveRule indicates that the game was drawn by the half
	// move clock being one hundred or greater when a player requested a draw.
	FiftyMoveRule
	// SeventyFiveMoveRule indicates that the game was automatically drawn
	// when the half move clock was one hundred and fifty or greater.
	SeventyFiveMoveRule
	// InsufficientMaterial indicates that the game was automatically drawn
	// because there was insufficient material for checkmate.
	InsufficientMaterial
)

var methodNames = map[Method]string{
	NoMethod:             "NoMethod",
	Checkmate:            "Checkmate",
	DrawOffer:            "DrawOffer",
	Stalemate:            "Stalemate",
	ThreefoldRepetition:  "ThreefoldRepetition",
	FivefoldRepetition:   "FivefoldRepetition",
	FiftyMoveRule:        "FiftyMoveRule",
	SeventyFiveMoveRule:  "SeventyFiveMoveRule",
	InsufficientMaterial: "InsufficientMaterial",
}

func (m Method) String() string {
	if s, ok := methodNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Method(%d)", uint8(m))
}

const (
	halfMoveClockForFiftyMoveRule          = 100
	halfMoveClockForSeventyFiveMoveRule    = 150
	numOfRepetitionsForThreefoldRepetition = 3
	numOfRepetitionsForFivefoldRepetition  = 5
)

// TagPairs represents a collection of PGN tag pairs.
type TagPairs map[string]string

// A Game represents a single chess game.
type Game struct {
	pos                            *Position // Current position
	rootMove                       *Move     // Root of move tree, holds the starting position
	currentMove                    *Move     // Current position in tree
	tagPairs                       TagPairs
	outcome                        Outcome
	method                         Method
	ignoreFivefoldRepetitionDraw   bool
	ignoreSeventyFiveMoveRuleDraw  bool
	ignoreInsufficientMaterialDraw bool
}

// FEN takes a string and returns a function that updates
// the game to reflect the FEN data.  Since FEN doesn't encode
// prior moves, the move list will be empty.  The returned
// function is designed to be used in the NewGame constructor.
// The error is an *InvalidPositionError if the FEN is malformed or illegal.
func FEN(fen string) (func(*Game), error) {
	pos, err := decodeFEN(fen)
	if err != nil {
		return nil, err
	}
	return func(g *Game) {
		g.setStartingPosition(pos)
	}, nil
}

// NewGame returns a new game in the standard starting position with the
// Seven Tag Roster filled with unknown values.
// Optional functions can be provided to configure the initial game state.
//
// Example:
//
//	// Standard game
//	game := NewGame()
//
//	// Game from FEN
//	fen, err := FEN("8/8/8/4k3/8/8/4P3/4K3 w - - 0 1")
//	if err != nil { ... }
//	game := NewGame(fen)
func NewGame(options ...func(*Game)) *Game {
	pos := StartingPosition()
	rootMove := &Move{position: pos}
	game := &Game{
		pos:         pos,
		rootMove:    rootMove,
		currentMove: rootMove,
		tagPairs: TagPairs{
			"Event":  "?",
			"Site":   "?",
			"Date":   "????.??.??",
			"Round":  "?",
			"White":  "?",
			"Black":  "?",
			"Result": NoOutcome.String(),
		},
		outcome: NoOutcome,
		method:  NoMethod,
	}
	for _, f := range options {
		if f != nil {
			f(game)
		}
	}
	return game
}

// setStartingPosition resets the game to start from pos. A position other
// than the standard one is recorded in the SetUp and FEN tags.
func (g *Game) setStartingPosition(pos *Position) {
	g.pos = pos
	g.rootMove = &Move{position: pos}
	g.currentMove = g.rootMove
	if pos.String() == startFEN {
		delete(g.tagPairs, "SetUp")
		delete(g.tagPairs, "FEN")
	} else {
		g.tagPairs["SetUp"] = "1"
		g.tagPairs["FEN"] = pos.String()
	}
	g.evaluatePositionStatus()
}

// AddVariation adds newMove as an alternative continuation of parent.
func (g *Game) AddVariation(parent *Move, newMove *Move) {
	if parent == nil {
		parent = g.rootMove
	}
	parent.children = append(parent.children, newMove)
	newMove.parent = parent
}

// GoBack moves the current move pointer to the previous move. It returns
// false when the game is already at its start.
func (g *Game) GoBack() bool {
	if g.currentMove == nil || g.currentMove.parent == nil {
		return false
	}
	g.currentMove = g.currentMove.parent
	g.pos = g.currentMove.position
	g.evaluatePositionStatus()
	return true
}

// GoForward follows the main line one move. It returns false at the end of the line.
func (g *Game) GoForward() bool {
	if g.currentMove == nil || len(g.currentMove.children) == 0 {
		return false
	}
	g.currentMove = g.currentMove.children[0]
	g.pos = g.currentMove.position
	g.evaluatePositionStatus()
	return true
}

// ValidMoves returns all legal moves in the current position.
func (g *Game) ValidMoves() []Move {
	return g.pos.ValidMoves()
}

// Moves returns the move history of the game following the main line.
func (g *Game) Moves() []*Move {
	var moves []*Move
	for m := g.rootMove; len(m.children) > 0; {
		m = m.children[0]
		moves = append(moves, m)
	}
	return moves
}

// GetRootMove returns the root move of the game.
func (g *Game) GetRootMove() *Move {
	return g.rootMove
}

// CurrentMove returns the move the game currently stands at; the root move
// before any move is played.
func (g *Game) CurrentMove() *Move {
	return g.currentMove
}

// Variations returns all alternative moves at the given position.
func (g *Game) Variations(move *Move) []*Move {
	if move == nil || len(move.children) <= 1 {
		return nil
	}
	return move.children[1:]
}

// Position returns the game's current position.
func (g *Game) Position() *Position {
	return g.pos
}

// Outcome returns the game outcome.
func (g *Game) Outcome() Outcome {
	return g.outcome
}

// Method returns the method in which the outcome occurred.
func (g *Game) Method() Method {
	return g.method
}

// FEN returns the FEN notation of the current position.
func (g *Game) FEN() string {
	return g.pos.String()
}

// Positions returns the starting position followed by the position after
// each main line move.
func (g *Game) Positions() []*Position {
	positions := []*Position{g.rootMove.position}
	for _, m := range g.Moves() {
		positions = append(positions, m.position)
	}
	return positions
}

// Finalize records outcome as the game's result and in its Result tag.
// It is meant to be called once, after the last move has been played.
func (g *Game) Finalize(outcome Outcome) {
	g.outcome = outcome
	g.tagPairs["Result"] = outcome.String()
}

// MarshalText implements the encoding.TextMarshaler interface and
// encodes the game's PGN.
func (g *Game) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface and
// assumes the data is in the PGN format.
func (g *Game) UnmarshalText(text []byte) error {
	toGame, err := PGN(bytes.NewReader(text))
	if err != nil {
		return err
	}
	toGame(g)
	return nil
}

// Draw attempts to draw the game by the given method.  If the
// method is valid, then the game is updated to a draw by that
// method.  If the method isn't valid then an error is returned.
func (g *Game) Draw(method Method) error {
	switch method {
	case ThreefoldRepetition:
		if g.numOfRepetitions() < numOfRepetitionsForThreefoldRepetition {
			return errors.New("chess: draw by ThreefoldRepetition requires at least three repetitions of the current board state")
		}
	case FiftyMoveRule:
		if g.pos.halfMoveClock < halfMoveClockForFiftyMoveRule {
			return errors.New("chess: draw by FiftyMoveRule requires a half move clock of 100 or greater")
		}
	case DrawOffer:
	default:
		return fmt.Errorf("chess: invalid draw method %s", method)
	}
	g.outcome = Draw
	g.method = method
	return nil
}

// EligibleDraws returns valid inputs for the Draw() method.
func (g *Game) EligibleDraws() []Method {
	draws := []Method{DrawOffer}
	if g.numOfRepetitions() >= numOfRepetitionsForThreefoldRepetition {
		draws = append(draws, ThreefoldRepetition)
	}
	if g.pos.halfMoveClock >= halfMoveClockForFiftyMoveRule {
		draws = append(draws, FiftyMoveRule)
	}
	return draws
}

// AddTagPair adds or updates a tag pair with the given key and
// value and returns true if the value is overwritten.
func (g *Game) AddTagPair(k, v string) bool {
	_, existing := g.tagPairs[k]
	g.tagPairs[k] = v
	return existing
}

// GetTagPair returns the value of the tag pair for the given key, or ""
// if it is not present.
func (g *Game) GetTagPair(k string) string {
	return g.tagPairs[k]
}

// TagPairs returns a copy of the game's tag pairs.
func (g *Game) TagPairs() TagPairs {
	return maps.Clone(g.tagPairs)
}

// RemoveTagPair removes the tag pair for the given key and
// returns true if a tag pair was removed.
func (g *Game) RemoveTagPair(k string) bool {
	if _, existing := g.tagPairs[k]; !existing {
		return false
	}
	delete(g.tagPairs, k)
	return true
}

// evaluatePositionStatus recomputes the outcome and method from the current position.
func (g *Game) evaluatePositionStatus() {
	g.outcome, g.method = NoOutcome, NoMethod

	switch g.pos.Status() {
	case Stalemate:
		g.outcome, g.method = Draw, Stalemate
		return
	case Checkmate:
		g.outcome, g.method = WhiteWon, Checkmate
		if g.pos.Turn() == White {
			g.outcome = BlackWon
		}
		return
	}

	switch {
	case !g.ignoreFivefoldRepetitionDraw && g.numOfRepetitions() >= numOfRepetitionsForFivefoldRepetition:
		g.outcome, g.method = Draw, FivefoldRepetition
	case !g.ignoreSeventyFiveMoveRuleDraw && g.pos.halfMoveClock >= halfMoveClockForSeventyFiveMoveRule:
		g.outcome, g.method = Draw, SeventyFiveMoveRule
	case !g.ignoreInsufficientMaterialDraw && !g.pos.board.hasSufficientMaterial():
		g.outcome, g.method = Draw, InsufficientMaterial
	}
}

// numOfRepetitions counts the positions on the path from the start to the
// current move that repeat the current position, the current one included.
func (g *Game) numOfRepetitions() int {
	count := 0
	for m := g.currentMove; m != nil; m = m.parent {
		if m.position != nil && g.pos.samePosition(m.position) {
			count++
		}
	}
	return count
}

// copy copies the game state from the given game.
func (g *Game) copy(game *Game) {
	g.tagPairs = maps.Clone(game.tagPairs)
	g.rootMove = game.rootMove
	g.currentMove = game.currentMove
	g.pos = game.pos
	g.outcome = game.outcome
	g.method = game.method
	g.ignoreFivefoldRepetitionDraw = game.ignoreFivefoldRepetitionDraw
	g.ignoreSeventyFiveMoveRuleDraw = game.ignoreSeventyFiveMoveRuleDraw
	g.ignoreInsufficientMaterialDraw = game.ignoreInsufficientMaterialDraw
}

// PushMoveOptions contains options for pushing a move to the game
type PushMoveOptions struct {
	// ForceMainline makes this move the main line if variations exist
	ForceMainline bool
}

// PushNotationMove decodes moveStr in the given notation against the current
// position and plays it. The error wraps ErrIllegalMove if the text does not
// name a legal move.
//
// Example:
//
//	err := game.PushNotationMove("e4", chess.AlgebraicNotation{}, nil)
//	err = game.PushNotationMove("c7c5", chess.UCINotation{}, nil)
func (g *Game) PushNotationMove(moveStr string, notation Notation, options *PushMoveOptions) error {
	move, err := notation.Decode(g.pos, moveStr)
	if err != nil {
		return err
	}
	return g.Move(move, options)
}

// Move plays move from the current position and appends it to the move tree.
// If the current move already has a continuation the move is added as a
// variation, unless options.ForceMainline is set. Playing a move that is
// already in the tree follows it instead of adding a duplicate.
func (g *Game) Move(move *Move, options *PushMoveOptions) error {
	if move == nil {
		return errors.New("chess: move cannot be nil")
	}
	if options == nil {
		options = &PushMoveOptions{}
	}

	legal := g.findLegalMove(move)
	if legal == nil {
		return illegalMove(g.pos, move.String(), "no such legal move")
	}
	move.tags = legal.tags

	if existing := g.findExistingMove(move); existing != nil {
		move = existing
		if options.ForceMainline {
			g.promoteToMainline(existing)
		}
	} else {
		move.number = g.pos.moveCount
		move.position = g.pos.Update(move)
		if options.ForceMainline {
			move.parent = g.currentMove
			g.currentMove.children = append([]*Move{move}, g.currentMove.children...)
		} else {
			g.AddVariation(g.currentMove, move)
		}
	}

	g.currentMove = move
	g.pos = move.position
	g.evaluatePositionStatus()
	return nil
}

func (g *Game) findLegalMove(move *Move) *Move {
	for _, m := range g.pos.legalMoves() {
		if m.sameMove(move) {
			found := m
			return &found
		}
	}
	return nil
}

func (g *Game) findExistingMove(move *Move) *Move {
	for _, child := range g.currentMove.children {
		if child.sameMove(move) {
			return child
		}
	}
	return nil
}

func (g *Game) promoteToMainline(move *Move) {
	children := g.currentMove.children
	for i, child := range children {
		if child == move {
			copy(children[1:i+1], children[:i])
			children[0] = move
			return
		}
	}
}

// ValidateSAN checks if a string is valid Standard Algebraic Notation (SAN) syntax.
// This function only validates the syntax, not whether the move is legal in any position.
// Examples of valid SAN: "e4", "Nf3", "O-O", "Qxd2+", "e8=Q#"
func ValidateSAN(s string) error {
	_, err := algebraicNotationParts(s)
	return err
}

// IgnoreFivefoldRepetitionDraw returns a Game option that disables automatic draws
// caused by the fivefold repetition rule.
func IgnoreFivefoldRepetitionDraw() func(*Game) {
	return func(g *Game) {
		g.ignoreFivefoldRepetitionDraw = true
		if g.method == FivefoldRepetition {
			g.evaluatePositionStatus()
		}
	}
}

// IgnoreSeventyFiveMoveRuleDraw returns a Game option that disables automatic draws
// triggered by the seventy-five move rule.
func IgnoreSeventyFiveMoveRuleDraw() func(*Game) {
	return func(g *Game) {
		g.ignoreSeventyFiveMoveRuleDraw = true
		if g.method == SeventyFiveMoveRule {
			g.evaluatePositionStatus()
		}
	}
}

// IgnoreInsufficientMaterialDraw returns a Game option that disables automatic draws
// caused by insufficient material.
func IgnoreInsufficientMaterialDraw() func(*Game) {
	return func(g *Game) {
		g.ignoreInsufficientMaterialDraw = true
		if g.method == InsufficientMaterial {
			g.evaluatePositionStatus()
		}
	}
}
