package chess

var (
	knightOffsets    = [][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingOffsets      = [][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	diagonalRays     = [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	orthogonalRays   = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	promotionTypes   = [4]PieceType{Queen, Rook, Bishop, Knight}
	castleRookFiles  = map[Side]File{KingSide: FileH, QueenSide: FileA}
	castleEmptyFiles = map[Side][]File{KingSide: {FileF, FileG}, QueenSide: {FileB, FileC, FileD}}
	castleSafeFiles  = map[Side][]File{KingSide: {FileF, FileG}, QueenSide: {FileD, FileC}}
)

// pawnDirection is the rank delta of a pawn push for the color.
func pawnDirection(c Color) int {
	if c == White {
		return 1
	}
	return -1
}

// generateLegalMoves drops every pseudo-legal move that leaves the mover's
// king attacked and tags the rest that give check.
func (pos *Position) generateLegalMoves() []Move {
	us := pos.turn
	pseudo := pos.pseudoLegalMoves()
	moves := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		next := pos.Update(&m)
		if next.board.isAttacked(next.board.kingSquare(us), us.Other()) {
			continue
		}
		if next.inCheck {
			m.AddTag(Check)
		}
		moves = append(moves, m)
	}
	return moves
}

func (pos *Position) pseudoLegalMoves() []Move {
	var moves []Move
	for i, p := range pos.board.squares {
		if p == NoPiece || p.Color() != pos.turn {
			continue
		}
		from := Square(i)
		switch p.Type() {
		case Pawn:
			moves = pos.appendPawnMoves(moves, from)
		case Knight:
			moves = pos.appendStepMoves(moves, from, knightOffsets)
		case Bishop:
			moves = pos.appendSlideMoves(moves, from, diagonalRays)
		case Rook:
			moves = pos.appendSlideMoves(moves, from, orthogonalRays)
		case Queen:
			moves = pos.appendSlideMoves(moves, from, diagonalRays)
			moves = pos.appendSlideMoves(moves, from, orthogonalRays)
		case King:
			moves = pos.appendStepMoves(moves, from, kingOffsets)
			moves = pos.appendCastleMoves(moves, from)
		}
	}
	return moves
}

func (pos *Position) newMove(from, to Square, promo PieceType) Move {
	m := Move{s1: from, s2: to, promo: promo}
	if pos.board.squares[to] != NoPiece {
		m.tags |= Capture
	}
	return m
}

func (pos *Position) appendStepMoves(moves []Move, from Square, offsets [][2]int) []Move {
	for _, o := range offsets {
		to := from.offset(o[0], o[1])
		if to == NoSquare || pos.board.squares[to].Color() == pos.turn {
			continue
		}
		moves = append(moves, pos.newMove(from, to, NoPieceType))
	}
	return moves
}

func (pos *Position) appendSlideMoves(moves []Move, from Square, rays [][2]int) []Move {
	for _, r := range rays {
		for to := from.offset(r[0], r[1]); to != NoSquare; to = to.offset(r[0], r[1]) {
			occupant := pos.board.squares[to]
			if occupant.Color() == pos.turn {
				break
			}
			moves = append(moves, pos.newMove(from, to, NoPieceType))
			if occupant != NoPiece {
				break
			}
		}
	}
	return moves
}

func (pos *Position) appendPawnMoves(moves []Move, from Square) []Move {
	dir := pawnDirection(pos.turn)
	startRank, lastRank := Rank2, Rank8
	if pos.turn == Black {
		startRank, lastRank = Rank7, Rank1
	}

	appendPawnMove := func(to Square) {
		if to.Rank() == lastRank {
			for _, pt := range promotionTypes {
				moves = append(moves, pos.newMove(from, to, pt))
			}
			return
		}
		moves = append(moves, pos.newMove(from, to, NoPieceType))
	}

	if one := from.offset(0, dir); one != NoSquare && pos.board.squares[one] == NoPiece {
		appendPawnMove(one)
		if two := one.offset(0, dir); from.Rank() == startRank && pos.board.squares[two] == NoPiece {
			moves = append(moves, pos.newMove(from, two, NoPieceType))
		}
	}

	for _, df := range [2]int{-1, 1} {
		to := from.offset(df, dir)
		if to == NoSquare {
			continue
		}
		occupant := pos.board.squares[to]
		switch {
		case occupant != NoPiece && occupant.Color() != pos.turn:
			appendPawnMove(to)
		case occupant == NoPiece && to == pos.enPassantSquare:
			moves = append(moves, Move{s1: from, s2: to, tags: EnPassant | Capture})
		}
	}
	return moves
}

func (pos *Position) appendCastleMoves(moves []Move, from Square) []Move {
	us := pos.turn
	rank := Rank1
	if us == Black {
		rank = Rank8
	}
	if from != NewSquare(FileE, rank) || pos.inCheck {
		return moves
	}
	for _, side := range [2]Side{KingSide, QueenSide} {
		if !pos.castleRights.CanCastle(us, side) {
			continue
		}
		if pos.board.squares[NewSquare(castleRookFiles[side], rank)] != NewPiece(Rook, us) {
			continue
		}
		if !pos.castlePathClear(side, rank) {
			continue
		}
		m := Move{s1: from, tags: KingSideCastle}
		m.s2 = NewSquare(FileG, rank)
		if side == QueenSide {
			m.tags = QueenSideCastle
			m.s2 = NewSquare(FileC, rank)
		}
		moves = append(moves, m)
	}
	return moves
}

func (pos *Position) castlePathClear(side Side, rank Rank) bool {
	for _, f := range castleEmptyFiles[side] {
		if pos.board.squares[NewSquare(f, rank)] != NoPiece {
			return false
		}
	}
	for _, f := range castleSafeFiles[side] {
		if pos.board.isAttacked(NewSquare(f, rank), pos.turn.Other()) {
			return false
		}
	}
	return true
}

// isAttacked reports whether any piece of color by attacks sq.
func (b *Board) isAttacked(sq Square, by Color) bool {
	if sq == NoSquare {
		return false
	}
	pawn := NewPiece(Pawn, by)
	for _, df := range [2]int{-1, 1} {
		if from := sq.offset(df, -pawnDirection(by)); from != NoSquare && b.squares[from] == pawn {
			return true
		}
	}
	if b.attackedByStep(sq, knightOffsets, NewPiece(Knight, by)) ||
		b.attackedByStep(sq, kingOffsets, NewPiece(King, by)) {
		return true
	}
	queen := NewPiece(Queen, by)
	return b.attackedBySlide(sq, diagonalRays, NewPiece(Bishop, by), queen) ||
		b.attackedBySlide(sq, orthogonalRays, NewPiece(Rook, by), queen)
}

func (b *Board) attackedByStep(sq Square, offsets [][2]int, attacker Piece) bool {
	for _, o := range offsets {
		if from := sq.offset(o[0], o[1]); from != NoSquare && b.squares[from] == attacker {
			return true
		}
	}
	return false
}

func (b *Board) attackedBySlide(sq Square, rays [][2]int, slider, queen Piece) bool {
	for _, r := range rays {
		for from := sq.offset(r[0], r[1]); from != NoSquare; from = from.offset(r[0], r[1]) {
			p := b.squares[from]
			if p == NoPiece {
				continue
			}
			if p == slider || p == queen {
				return true
			}
			break
		}
	}
	return false
}
