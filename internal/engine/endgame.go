package engine

import "github.com/hailam/chesseval/internal/board"

// Special-case endgame codes returned by specialCaseEndgame.
const (
	noSpecialCase = iota
	caseKBNK
	caseKXK
	caseOppositeBishops
)

// specialCaseEndgame recognises a few endgames whose evaluation is better
// served by a dedicated formula. On a match it overwrites s with side's
// score and returns the case code; otherwise it returns noSpecialCase and
// leaves s untouched.
func specialCaseEndgame(side board.Color, pos *board.Position, our, opp board.Material, s *Scores) int {
	them := side.Other()
	ourKing, oppKing := pos.KingSquare[side], pos.KingSquare[them]

	if opp.KingOnly() {
		if our.Key() == board.KeyBN {
			corner := board.A1
			light, _ := pos.Bishops(side)
			if light != 0 {
				corner = board.H1
			}
			// Mate is only possible in a corner the bishop controls.
			d := min(board.Distance(oppKing, corner), board.Distance(oppKing, corner^63))
			*s = Scores{Any: prm.KBNKBase - prm.KBNKCorner*d - prm.KingDistanceBonus*board.Distance(ourKing, oppKing)}
			return caseKBNK
		}
		if our.NoPawns() && hasMatingMaterial(pos, side, our) {
			*s = Scores{Any: pieceValue(our) + prm.KXKBonus +
				prm.KXKEdge*(3-edgeDistance(oppKing)) -
				prm.KingDistanceBonus*board.Distance(ourKing, oppKing)}
			return caseKXK
		}
		return noSpecialCase
	}

	if our.PieceKey() == board.KeyB && opp.PieceKey() == board.KeyB && oppositeBishops(pos) {
		if lead := our.Pawns() - opp.Pawns(); lead >= 1 && lead <= 2 {
			*s = Scores{Any: lead * prm.OCBPawn}
			return caseOppositeBishops
		}
	}
	return noSpecialCase
}

// hasMatingMaterial reports whether pieces alone can force mate on a bare king.
func hasMatingMaterial(pos *board.Position, side board.Color, m board.Material) bool {
	if m.Majors() > 0 {
		return true
	}
	light, dark := pos.Bishops(side)
	if light != 0 && dark != 0 {
		return true
	}
	return m.Bishops() > 0 && m.Knights() > 0 || m.Knights() >= 3
}

// edgeDistance is how many squares sq lies from the nearest board edge, 0..3.
func edgeDistance(sq board.Square) int {
	f, r := sq.File(), sq.Rank()
	return min(f, 7-f, r, 7-r)
}

// oppositeBishops reports whether each side has exactly one bishop and they
// travel on different square colours.
func oppositeBishops(pos *board.Position) bool {
	wl, wd := pos.Bishops(board.White)
	bl, bd := pos.Bishops(board.Black)
	if (wl|wd).PopCount() != 1 || (bl|bd).PopCount() != 1 {
		return false
	}
	return (wl != 0) != (bl != 0)
}

// TheoreticalDraw reports material configurations that cannot be won
// regardless of the material count.
func TheoreticalDraw(pos *board.Position) bool {
	if MaterialDraw(pos) {
		return true
	}
	for side := board.White; side <= board.Black; side++ {
		our := pos.Material(side)
		opp := pos.Material(side.Other())
		if opp.KingOnly() && our.Key() == board.KeyNN {
			return true
		}
		if kbpDraw(pos, side, our, opp) {
			return true
		}
		if our.Key() == board.KeyBP && opp.Key() == board.KeyB && oppositeBishops(pos) {
			return true
		}
	}
	return false
}

// kbpDraw recognises king, bishop and rook pawns against a bare king where
// the bishop does not control the promotion square and the defending king
// has reached it.
func kbpDraw(pos *board.Position, side board.Color, our, opp board.Material) bool {
	if !opp.KingOnly() || our.Pawns() == 0 || our.Bishops() == 0 ||
		our.Knights() != 0 || our.Majors() != 0 {
		return false
	}
	pawns := pos.Pieces[side][board.Pawn]
	var file int
	switch {
	case pawns&^board.FileA == 0:
		file = 0
	case pawns&^board.FileH == 0:
		file = 7
	default:
		return false
	}
	promo := promotionSquare(board.NewSquare(file, 1), side)
	light, dark := pos.Bishops(side)
	if promo.IsLight() && light != 0 || !promo.IsLight() && dark != 0 {
		return false
	}
	return board.Distance(pos.KingSquare[side.Other()], promo) <= 1
}
