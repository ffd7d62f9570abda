package chess

import (
	"fmt"
	"strconv"
	"strings"
)

// decodeFEN parses a FEN string and returns the position it describes. The
// half-move clock and full move number may be omitted and default to 0 and 1.
func decodeFEN(fen string) (*Position, error) {
	fen = strings.TrimSpace(fen)
	fields := strings.Fields(fen)
	if len(fields) < 4 || len(fields) > 6 {
		return nil, &InvalidPositionError{FEN: fen, Reason: fmt.Sprintf("expected 4 to 6 fields, got %d", len(fields))}
	}
	invalid := func(format string, args ...any) error {
		return &InvalidPositionError{FEN: fen, Reason: fmt.Sprintf(format, args...)}
	}

	pos := &Position{enPassantSquare: NoSquare, moveCount: 1}

	board, err := fenBoard(fields[0])
	if err != nil {
		return nil, invalid("%v", err)
	}
	pos.board = *board

	switch fields[1] {
	case "w":
		pos.turn = White
	case "b":
		pos.turn = Black
	default:
		return nil, invalid("unknown side to move %q", fields[1])
	}

	if pos.castleRights, err = fenCastleRights(fields[2]); err != nil {
		return nil, invalid("%v", err)
	}

	if fields[3] != "-" {
		pos.enPassantSquare = parseSquare(fields[3])
		if pos.enPassantSquare == NoSquare {
			return nil, invalid("bad en passant square %q", fields[3])
		}
	}

	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return nil, invalid("bad half move clock %q", fields[4])
		}
		pos.halfMoveClock = n
	}
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return nil, invalid("bad full move number %q", fields[5])
		}
		pos.moveCount = n
	}

	if reason := pos.illegality(); reason != "" {
		return nil, invalid("%s", reason)
	}
	pos.inCheck = pos.board.isAttacked(pos.board.kingSquare(pos.turn), pos.turn.Other())
	return pos, nil
}

func fenBoard(placement string) (*Board, error) {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("expected 8 ranks, got %d", len(ranks))
	}
	b := &Board{}
	for i, row := range ranks {
		rank := Rank(7 - i)
		file := 0
		prevDigit := false
		for j := 0; j < len(row); j++ {
			c := row[j]
			if c >= '1' && c <= '8' {
				if prevDigit {
					return nil, fmt.Errorf("consecutive empty square counts on rank %s", rank)
				}
				prevDigit = true
				file += int(c - '0')
				continue
			}
			prevDigit = false
			p := pieceFromFENByte(c)
			if p == NoPiece {
				return nil, fmt.Errorf("unknown piece %q on rank %s", c, rank)
			}
			if file > 7 {
				return nil, fmt.Errorf("rank %s has more than 8 squares", rank)
			}
			b.squares[NewSquare(File(file), rank)] = p
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("rank %s has %d squares", rank, file)
		}
	}
	return b, nil
}

func fenCastleRights(s string) (CastleRights, error) {
	if s == "-" {
		return NoCastleRights, nil
	}
	cr := NoCastleRights
	for _, c := range s {
		var r CastleRights
		switch c {
		case 'K':
			r = WhiteKingSideCastle
		case 'Q':
			r = WhiteQueenSideCastle
		case 'k':
			r = BlackKingSideCastle
		case 'q':
			r = BlackQueenSideCastle
		default:
			return NoCastleRights, fmt.Errorf("bad castling rights %q", s)
		}
		if cr&r != 0 {
			return NoCastleRights, fmt.Errorf("repeated castling right in %q", s)
		}
		cr |= r
	}
	return cr, nil
}

// illegality returns why the position could not arise in a legal game, or "".
func (pos *Position) illegality() string {
	b := &pos.board
	for _, c := range [2]Color{White, Black} {
		if n := b.count(NewPiece(King, c)); n != 1 {
			return fmt.Sprintf("%s has %d kings", c.Name(), n)
		}
	}
	for f := FileA; f <= FileH; f++ {
		for _, r := range [2]Rank{Rank1, Rank8} {
			if b.squares[NewSquare(f, r)].Type() == Pawn {
				return "pawn on first or eighth rank"
			}
		}
	}
	if b.isAttacked(b.kingSquare(pos.turn.Other()), pos.turn) {
		return fmt.Sprintf("%s is in check but it is %s's turn", pos.turn.Other().Name(), pos.turn.Name())
	}
	for _, c := range [2]Color{White, Black} {
		rank := Rank1
		if c == Black {
			rank = Rank8
		}
		for _, side := range [2]Side{KingSide, QueenSide} {
			if !pos.castleRights.CanCastle(c, side) {
				continue
			}
			if b.squares[NewSquare(FileE, rank)] != NewPiece(King, c) ||
				b.squares[NewSquare(castleRookFiles[side], rank)] != NewPiece(Rook, c) {
				return fmt.Sprintf("castling right %s without king and rook on their home squares",
					castleRight(c, side))
			}
		}
	}
	if ep := pos.enPassantSquare; ep != NoSquare {
		// The pawn that just moved belongs to the side not on turn.
		mover := pos.turn.Other()
		wantRank := Rank3
		if mover == Black {
			wantRank = Rank6
		}
		dir := pawnDirection(mover)
		if ep.Rank() != wantRank ||
			b.squares[ep] != NoPiece ||
			b.squares[ep.offset(0, -dir)] != NoPiece ||
			b.squares[ep.offset(0, dir)] != NewPiece(Pawn, mover) {
			return fmt.Sprintf("en passant square %s does not follow a double pawn push", ep)
		}
	}
	return ""
}
