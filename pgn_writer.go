package chess

import (
	"fmt"
	"slices"
	"strings"
)

// tagOrder lists the tags written before all others: the Seven Tag Roster,
// then the tags describing a non-standard starting position.
var tagOrder = []string{
	"Event",
	"Site",
	"Date",
	"Round",
	"White",
	"Black",
	"Result",
	"SetUp",
	"FEN",
}

// String implements the fmt.Stringer interface and returns
// the game's PGN.
func (g *Game) String() string {
	var sb strings.Builder

	for _, key := range sortedTagKeys(g.tagPairs) {
		fmt.Fprintf(&sb, "[%s \"%s\"]\n", key, escapeTagValue(g.tagPairs[key]))
	}
	if len(g.tagPairs) > 0 {
		sb.WriteString("\n")
	}

	var movetext strings.Builder
	root := g.rootMove
	if root.comments != "" || len(root.command) > 0 {
		writeComment(&movetext, root)
		movetext.WriteString(" ")
	}
	if len(root.children) > 0 {
		writeLine(&movetext, root, true)
		movetext.WriteString(" ")
	}
	movetext.WriteString(g.resultToken())
	wrapMovetext(&sb, movetext.String(), movetextWidth)
	return sb.String()
}

// movetextWidth is the export line width of PGN movetext.
const movetextWidth = 80

// wrapMovetext writes text to sb, breaking lines between tokens so that no
// line is longer than width unless a single token is. A brace comment is one
// token.
func wrapMovetext(sb *strings.Builder, text string, width int) {
	lineLen := 0
	for _, tok := range movetextTokens(text) {
		switch {
		case lineLen == 0:
		case lineLen+1+len(tok) > width:
			sb.WriteString("\n")
			lineLen = 0
		default:
			sb.WriteString(" ")
			lineLen++
		}
		sb.WriteString(tok)
		lineLen += len(tok)
	}
}

// movetextTokens splits text on spaces outside brace comments.
func movetextTokens(text string) []string {
	var tokens []string
	start, inComment := 0, false
	for i := 0; i < len(text); i++ {
		switch c := text[i]; {
		case c == '{':
			inComment = true
		case c == '}':
			inComment = false
		case c == ' ' && !inComment:
			if i > start {
				tokens = append(tokens, text[start:i])
			}
			start = i + 1
		}
	}
	if start < len(text) {
		tokens = append(tokens, text[start:])
	}
	return tokens
}

// resultToken is the game termination marker: the Result tag once the game
// was finalized, the current outcome otherwise.
func (g *Game) resultToken() string {
	if r, ok := g.tagPairs["Result"]; ok && r != "" {
		return r
	}
	return g.outcome.String()
}

func sortedTagKeys(tags TagPairs) []string {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, cmpTags)
	return keys
}

// cmpTags orders tags from tagOrder first, in that order, and the rest by name.
func cmpTags(a, b string) int {
	ia, ib := tagRank(a), tagRank(b)
	if ia != ib {
		return ia - ib
	}
	return strings.Compare(a, b)
}

func tagRank(key string) int {
	for i, k := range tagOrder {
		if k == key {
			return i
		}
	}
	return len(tagOrder)
}

func escapeTagValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `"`, `\"`)
}

// writeLine writes the continuation of parent: its main line child and,
// after it, every variation of that child in parentheses, then the rest of
// the line. forceNumber asks for a move number even on a Black move, as
// needed at the start of the game or of a variation.
func writeLine(sb *strings.Builder, parent *Move, forceNumber bool) {
	for len(parent.children) > 0 {
		move := parent.children[0]
		writeMove(sb, parent.position, move, forceNumber)
		forceNumber = false

		for _, variation := range parent.children[1:] {
			sb.WriteString(" (")
			writeMove(sb, parent.position, variation, true)
			if len(variation.children) > 0 {
				sb.WriteString(" ")
				writeLine(sb, variation, false)
			}
			sb.WriteString(")")
			forceNumber = true
		}

		if len(move.children) > 0 {
			sb.WriteString(" ")
		}
		parent = move
	}
}

// writeMove writes one move played from pos, with its number, NAG and comment.
func writeMove(sb *strings.Builder, pos *Position, move *Move, forceNumber bool) {
	switch {
	case pos.turn == White:
		fmt.Fprintf(sb, "%d. ", pos.moveCount)
	case forceNumber:
		fmt.Fprintf(sb, "%d... ", pos.moveCount)
	}
	sb.WriteString(AlgebraicNotation{}.Encode(pos, move))
	if move.nag != "" {
		sb.WriteString(" " + move.nag)
	}
	if move.comments != "" || len(move.command) > 0 {
		sb.WriteString(" ")
		writeComment(sb, move)
	}
}

// writeComment writes the move's comment and its [%key value] commands in
// key order so that output is deterministic.
func writeComment(sb *strings.Builder, move *Move) {
	sb.WriteString("{")
	parts := make([]string, 0, len(move.command)+1)
	keys := make([]string, 0, len(move.command))
	for k := range move.command {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		parts = append(parts, "[%"+k+" "+move.command[k]+"]")
	}
	if move.comments != "" {
		parts = append(parts, move.comments)
	}
	sb.WriteString(strings.Join(parts, " "))
	sb.WriteString("}")
}
