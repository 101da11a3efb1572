package engine

import "github.com/hailam/chesseval/internal/board"

// MaterialDraw is a fast test for positions with too little material to
// win: no pawns, no rooks or queens, and at most one minor piece per side.
// It also accepts minor against minor, such as KB v KN or opposite-coloured
// bishops, where a win exists only through a helpmate. Those are scored as
// draws but are not dead positions; IsLegalDraw keeps them in play.
func MaterialDraw(pos *board.Position) bool {
	for c := board.White; c <= board.Black; c++ {
		m := pos.Material(c)
		if m.Pawns() != 0 || m.Majors() != 0 || m.Minors() > 1 {
			return false
		}
	}
	return true
}

// FiftyMoveDraw reports a draw by the fifty-move rule. A checkmate delivered
// on the hundredth half-move still wins.
func FiftyMoveDraw(pos *board.Position) bool {
	return pos.HalfMoveClock >= 100 && !pos.IsCheckmate()
}

// RepetitionDraw counts earlier occurrences of pos in history. history holds
// the hashes of the preceding positions, oldest first, and is only searched
// back to the last irreversible move.
func RepetitionDraw(pos *board.Position, history []uint64) int {
	count := 0
	n := len(history)
	for i := n - 2; i >= 0 && n-i <= pos.HalfMoveClock; i -= 2 {
		if history[i] == pos.Hash {
			count++
		}
	}
	return count
}

// IsDraw is the search-time draw test. It returns true on a repetition (a
// single earlier occurrence suffices once ply is at least 2, meaning the
// cycle lies inside the search), on the fifty-move rule when not in check,
// or on a material draw. The repetition count is returned either way.
// It may miss draws that IsLegalDraw finds.
func IsDraw(pos *board.Position, history []uint64, ply int) (bool, int) {
	rep := RepetitionDraw(pos, history)
	if rep >= 2 || rep == 1 && ply >= 2 {
		return true, rep
	}
	if pos.HalfMoveClock >= 100 && !pos.InCheck() {
		return true, rep
	}
	return MaterialDraw(pos), rep
}

// IsLegalDraw applies the rules of chess exactly: threefold repetition, the
// fifty-move rule, dead positions by insufficient material, and stalemate.
func IsLegalDraw(pos *board.Position, history []uint64) bool {
	if RepetitionDraw(pos, history) >= 2 {
		return true
	}
	if FiftyMoveDraw(pos) {
		return true
	}
	if insufficientMaterial(pos) {
		return true
	}
	return pos.IsStalemate()
}

// insufficientMaterial covers K v K, K+minor v K and any number of bishops
// that all stand on one square colour.
func insufficientMaterial(pos *board.Position) bool {
	w, b := pos.Material(board.White), pos.Material(board.Black)
	if !w.NoPawns() || !b.NoPawns() || w.Majors() != 0 || b.Majors() != 0 {
		return false
	}
	minors := w.Minors() + b.Minors()
	if minors <= 1 {
		return true
	}
	if w.Knights()+b.Knights() != 0 {
		return false
	}
	wl, wd := pos.Bishops(board.White)
	bl, bd := pos.Bishops(board.Black)
	return (wl|bl) == 0 || (wd|bd) == 0
}
