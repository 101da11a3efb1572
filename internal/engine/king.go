package engine

import (
	"github.com/hailam/chesseval/internal/board"
	"github.com/hailam/chesseval/internal/params"
)

// KingPawnEntry returns side's king safety entry. own and opp are the pawn
// data of side and its opponent for the same position.
func (e *Evaluator) KingPawnEntry(side board.Color, pos *board.Position, own, opp *PawnData, useCache bool) *KingPawnEntry {
	key := kingPawnKey(pos, side)
	kp := e.kings[side].slot(key)
	if useCache && kp.filled && kp.Key == key {
		e.stats.KingHits++
		return kp
	}
	e.stats.KingMisses++

	ksq := pos.KingSquare[side]
	*kp = KingPawnEntry{Key: key, filled: true}
	cover, open := calcCover(pos, side, ksq)
	kp.OpenFiles = open
	if pos.CastlingRights&sideCastling[side] != 0 {
		best := cover
		if pos.CastlingRights.CanCastle(side, true) {
			c, _ := calcCover(pos, side, board.G1.Relative(side))
			best = max(best, c)
		}
		if pos.CastlingRights.CanCastle(side, false) {
			c, _ := calcCover(pos, side, board.C1.Relative(side))
			best = max(best, c)
		}
		if best > cover {
			cover = (cover + 2*best) / 3
		}
	}
	kp.Cover = cover
	kp.Storm = calcStorm(pos, side, ksq)
	kp.PawnAttacks = prm.KingPawnAttack * (kingNearProximity[ksq] & own.OpponentPawnAttacks).PopCount()
	kp.KingEndgamePosition = calcKingEndgamePosition(side, ksq, own, opp)
	return kp
}

// shelterFiles returns the three files centred on the king, kept on the board.
func shelterFiles(ksq board.Square) (lo, hi int) {
	f := max(1, min(ksq.File(), 6))
	return f - 1, f + 1
}

// nearest returns the pawn in bb closest to side's first rank.
func nearest(bb board.Bitboard, side board.Color) board.Square {
	if side == board.White {
		return bb.LSB()
	}
	return bb.MSB()
}

// calcCover scores side's pawn shelter for a king on ksq and reports the
// shelter files that have no own pawn in front of the king.
func calcCover(pos *board.Position, side board.Color, ksq board.Square) (int, uint8) {
	own := pos.Pieces[side][board.Pawn]
	all := own | pos.Pieces[side.Other()][board.Pawn]
	front := board.RankMask[ksq.Rank()].ForwardFill(side)

	cover := 0
	var open uint8
	lo, hi := shelterFiles(ksq)
	for f := lo; f <= hi; f++ {
		shield := own & board.FileMask[f] & front
		if shield == 0 {
			cover += prm.KingCoverOpenFile
			if all&board.FileMask[f] == 0 {
				cover += prm.KingCoverFullyOpen
			}
			open |= 1 << f
			continue
		}
		p := nearest(shield, side)
		fileDist := abs(f - ksq.File())
		rankDist := abs(p.Rank() - ksq.Rank())
		cover += prm.KingCover[fileDist][min(rankDist-1, 3)]
	}
	return cover, open
}

// calcStorm scores the opponent pawns advancing on the shelter files.
func calcStorm(pos *board.Position, side board.Color, ksq board.Square) int {
	own := pos.Pieces[side][board.Pawn]
	them := side.Other()
	opp := pos.Pieces[them][board.Pawn]
	ownAttacks := pawnAttacksBB(own, side)
	front := board.RankMask[ksq.Rank()].ForwardFill(side)

	storm := 0
	lo, hi := shelterFiles(ksq)
	for f := lo; f <= hi; f++ {
		stormers := opp & board.FileMask[f] & front
		if stormers == 0 {
			continue
		}
		p := nearest(stormers, side)
		blocked := 0
		if board.SquareBB(p).Forward(them)&own != 0 {
			blocked = 1
		}
		fileDist := abs(f - ksq.File())
		rankDist := abs(p.Rank() - ksq.Rank())
		w := prm.PawnStorm[blocked][fileDist][min(rankDist-1, 4)]
		if ownAttacks&board.SquareBB(p) != 0 {
			w = w * prm.StormAttackedScale / params.ScaleMax
		}
		storm += w
	}
	return storm
}

// calcKingEndgamePosition rewards a centralised king that escorts its own
// passers, blockades the opponent's and eyes the opponent's weak pawns.
func calcKingEndgamePosition(side board.Color, ksq board.Square, own, opp *PawnData) int {
	v := prm.KingEndgamePST[pstIndex(ksq, side)]
	k := board.SquareBB(ksq)
	for bb := own.Passers; bb != 0; {
		p := bb.PopLSB()
		for r := 0; r < 4; r++ {
			if kingPawnProximity[side][r][p]&k != 0 {
				v += prm.KingOwnPasser[r]
				break
			}
		}
	}
	for bb := opp.Passers; bb != 0; {
		p := bb.PopLSB()
		for r := 0; r < 4; r++ {
			if kingPawnProximity[side.Other()][r][p]&k != 0 {
				v += prm.KingOppPasser[r]
				break
			}
		}
	}
	v += prm.KingWeakPawn * (kingProximity[2][ksq] & opp.WeakPawns).PopCount()
	return v
}
