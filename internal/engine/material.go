package engine

import (
	"github.com/hailam/chesseval/internal/board"
	"github.com/hailam/chesseval/internal/params"
)

// materialValue is the raw piece value total of m.
func materialValue(m board.Material) int {
	v := 0
	for pt := board.Pawn; pt <= board.Queen; pt++ {
		v += prm.PieceValues[pt] * m.Count(pt)
	}
	return v
}

// pieceValue is materialValue without the pawns.
func pieceValue(m board.Material) int {
	return materialValue(m) - prm.PieceValues[board.Pawn]*m.Pawns()
}

// MaterialScore returns the material balance of pos from White's point of
// view, including imbalance adjustments.
func (e *Evaluator) MaterialScore(pos *board.Position) int {
	return materialScore(pos.Material(board.White), pos.Material(board.Black))
}

func materialScore(w, b board.Material) int {
	score := materialValue(w) - materialValue(b)
	score += adjustMaterialScore(w, b) - adjustMaterialScore(b, w)
	return adjustMaterialScoreNoPawns(w, b, score)
}

// adjustMaterialScore returns the imbalance bonus for the side owning our.
func adjustMaterialScore(our, opp board.Material) int {
	adj := 0
	if our.Bishops() >= 2 {
		adj += prm.BishopPair
	}
	// Knights gain and rooks lose value as pawns accumulate.
	adj += our.Knights() * prm.KnightPawnAdjust * (our.Pawns() - 5)
	adj -= our.Rooks() * prm.RookPawnAdjust * (our.Pawns() - 5)
	adj += prm.TradeDown[TradeDownIndex(our, opp)]
	return adj
}

// adjustMaterialScoreNoPawns shrinks a small lead held by a side without
// pawns, which is seldom enough to win.
func adjustMaterialScoreNoPawns(w, b board.Material, score int) int {
	switch {
	case score > 0 && w.NoPawns() && pieceValue(w)-pieceValue(b) < prm.NoPawnsDrawishLead:
		return score * prm.NoPawnsReduction / params.ScaleMax
	case score < 0 && b.NoPawns() && pieceValue(b)-pieceValue(w) < prm.NoPawnsDrawishLead:
		return score * prm.NoPawnsReduction / params.ScaleMax
	}
	return score
}

// TradeDownIndex maps our material lead over opp to a TradeDown table index.
// Zero means no lead. A bigger lead and less material on the board give a
// higher index.
func TradeDownIndex(our, opp board.Material) int {
	pawn := prm.PieceValues[board.Pawn]
	diff := materialValue(our) - materialValue(opp)
	if diff < pawn/2 {
		return 0
	}
	lead := max(1, min((diff+pawn/2)/pawn, 4))
	fewness := max(0, min((2*board.MaxMaterialLevel-our.Level()-opp.Level())/16, 3))
	return 1 + (lead-1)*4 + fewness
}
