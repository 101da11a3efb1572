package engine

import "github.com/hailam/chesseval/internal/board"

// evalContext carries the per-call state shared by the positional terms.
type evalContext struct {
	pos   *board.Position
	mat   [2]board.Material
	level [2]int
	pe    *PawnEntry
	kp    [2]*KingPawnEntry
}

func pair(mid, end []int, i int) [2]int {
	i = min(i, len(mid)-1)
	return [2]int{mid[i], end[i]}
}

// positionalScore adds side's piece placement and king safety terms to s.
func positionalScore(side board.Color, ctx *evalContext, s *Scores) {
	them := side.Other()
	earlyEndgame := ctx.level[them] <= prm.EarlyEndgameLevel
	deepEndgame := ctx.level[them] <= prm.DeepEndgameLevel

	pieceScore(side, ctx, earlyEndgame, deepEndgame, s)
	scoreBishopAndPawns(side, ctx, s)
	if !earlyEndgame {
		s.Mid += ctx.kp[side].Safety()
		s.Mid += prm.SpaceBonus * ctx.pe.Of(side).Space
	}
}

// pieceScore scores the placement, mobility and king pressure of side's
// knights, bishops, rooks and queens, and its king's midgame square.
func pieceScore(side board.Color, ctx *evalContext, earlyEndgame, deepEndgame bool, s *Scores) {
	pos := ctx.pos
	them := side.Other()
	occ := pos.AllOccupied
	pd, oppPd := ctx.pe.Of(side), ctx.pe.Of(them)
	safe := ^pos.Occupied[side] &^ pd.OpponentPawnAttacks
	oppZone := kingNearProximity[pos.KingSquare[them]]
	oppPawns := pos.Pieces[them][board.Pawn]

	attackers, weight := 0, 0
	pressure := func(att board.Bitboard, pt board.PieceType) {
		if att&oppZone != 0 {
			attackers++
			weight += prm.KingAttackWeight[pt]
		}
	}
	addPST := func(t *[64]int, sq board.Square) {
		v := t[pstIndex(sq, side)]
		s.Mid += v
		s.End += v
	}

	for bb := pos.Pieces[side][board.Knight]; bb != 0; {
		sq := bb.PopLSB()
		att := board.KnightAttacks(sq)
		addPST(&prm.KnightPST, sq)
		s.AddPhased(pair(prm.KnightMobility[0][:], prm.KnightMobility[1][:], (att & safe).PopCount()))
		if !deepEndgame {
			if g := outpost(pos, sq, side); g > 0 {
				s.AddPhased([2]int{prm.KnightOutpost[0][g-1], prm.KnightOutpost[1][g-1]})
			}
		}
		pressure(att, board.Knight)
	}

	for bb := pos.Pieces[side][board.Bishop]; bb != 0; {
		sq := bb.PopLSB()
		att := board.BishopAttacks(sq, occ)
		addPST(&prm.BishopPST, sq)
		s.AddPhased(pair(prm.BishopMobility[0][:], prm.BishopMobility[1][:], (att & safe).PopCount()))
		if !deepEndgame {
			if g := outpost(pos, sq, side); g > 0 {
				s.AddPhased([2]int{prm.BishopOutpost[0][g-1], prm.BishopOutpost[1][g-1]})
			}
		}
		// A bishop on a7 cut off by a pawn on b6, and the mirror on h7.
		switch sq.Relative(side) {
		case board.A7:
			if oppPawns.IsSet(board.B6.Relative(side)) {
				s.AddPhased(prm.TrappedBishop)
			}
		case board.H7:
			if oppPawns.IsSet(board.G6.Relative(side)) {
				s.AddPhased(prm.TrappedBishop)
			}
		}
		pressure(att, board.Bishop)
	}

	for bb := pos.Pieces[side][board.Rook]; bb != 0; {
		sq := bb.PopLSB()
		att := board.RookAttacks(sq, occ)
		addPST(&prm.RookPST, sq)
		s.AddPhased(pair(prm.RookMobility[0][:], prm.RookMobility[1][:], (att & safe).PopCount()))
		f := uint(sq.File())
		if pd.PawnFileMask&(1<<f) == 0 {
			if oppPd.PawnFileMask&(1<<f) == 0 {
				s.AddPhased(prm.RookOpenFile)
			} else {
				s.AddPhased(prm.RookHalfOpen)
			}
		}
		if !deepEndgame && seventhRank[side].IsSet(sq) &&
			(eighthRank[side].IsSet(pos.KingSquare[them]) || oppPawns&seventhRank[side] != 0) {
			s.AddPhased(prm.RookOn7th)
		}
		if att&pos.Pieces[side][board.Rook] != 0 {
			s.AddPhased(prm.RookConnected)
		}
		pressure(att, board.Rook)
	}

	for bb := pos.Pieces[side][board.Queen]; bb != 0; {
		sq := bb.PopLSB()
		att := board.QueenAttacks(sq, occ)
		addPST(&prm.QueenPST, sq)
		s.AddPhased(pair(prm.QueenMobility[0][:], prm.QueenMobility[1][:], (att & safe).PopCount()))
		pressure(att, board.Queen)
	}

	s.Mid += prm.KingMidgamePST[pstIndex(pos.KingSquare[side], side)]

	if !earlyEndgame && attackers >= prm.KingAttackMinCount && pos.Pieces[side][board.Queen] != 0 {
		s.Mid -= prm.KingAttackScale[min(weight, len(prm.KingAttackScale)-1)]
	}
}

// outpost grades sq as an outpost for a side minor piece: 0 when it is not
// one, otherwise 1 or 2 by the number of pawns defending it.
func outpost(pos *board.Position, sq board.Square, side board.Color) int {
	if !outpostZone[side].IsSet(sq) {
		return 0
	}
	// No enemy pawn may ever be able to attack the square.
	if pos.Pieces[side.Other()][board.Pawn]&sentryMask[side][sq] != 0 {
		return 0
	}
	return min(outpostDefenders(pos, sq, side), 2)
}

// outpostDefenders counts side's pawns defending sq.
func outpostDefenders(pos *board.Position, sq board.Square, side board.Color) int {
	return (board.PawnAttacks(sq, side.Other()) & pos.Pieces[side][board.Pawn]).PopCount()
}

// scoreBishopAndPawns penalises own pawns fixed on the bishop's colour and
// rewards undefended enemy pawns the bishop can reach.
func scoreBishopAndPawns(side board.Color, ctx *evalContext, s *Scores) {
	pos := ctx.pos
	them := side.Other()
	oppPawns := pos.Pieces[them][board.Pawn]
	targets := oppPawns &^ pawnAttacksBB(oppPawns, them)
	pd := ctx.pe.Of(side)

	light, dark := pos.Bishops(side)
	if light != 0 {
		s.AddScaled(prm.BishopPawnSame, pd.LightPawns)
		s.AddScaled(prm.BishopTargets, (targets & board.LightSquares).PopCount())
	}
	if dark != 0 {
		s.AddScaled(prm.BishopPawnSame, pd.DarkPawns)
		s.AddScaled(prm.BishopTargets, (targets & board.DarkSquares).PopCount())
	}
}

// pawnScore adds the pawn terms that depend on piece placement: blocked and
// free passers, rooks behind passers, unstoppable passers and weak pawns on
// open files.
func pawnScore(side board.Color, ctx *evalContext, s *Scores) {
	pos := ctx.pos
	them := side.Other()
	occ := pos.AllOccupied
	pd := ctx.pe.Of(side)
	rooks := pos.Pieces[side][board.Rook]
	oppBare := ctx.mat[them].Pieces() == 0

	bestRunner := -1
	for bb := pd.Passers; bb != 0; {
		sq := bb.PopLSB()
		rr := relRank(sq, side)
		path := frontSpan[side][sq]
		switch {
		case board.SquareBB(sq).Forward(side)&occ != 0:
			s.AddPhased(byRank(&prm.PasserBlocked, rr))
		case path&occ == 0:
			s.AddPhased(byRank(&prm.PasserFreePath, rr))
		}
		if behind := rooks & frontSpan[them][sq]; behind != 0 && board.RookAttacks(sq, occ)&behind != 0 {
			s.AddPhased(prm.RookBehindPass)
		}
		if oppBare && path&occ == 0 && outsideSquare(pos, sq, side) {
			bestRunner = max(bestRunner, rr)
		}
	}
	if bestRunner >= 0 {
		s.End += prm.Unstoppable + 10*bestRunner
	}

	if ctx.mat[them].Majors() > 0 && pd.WeakOpen != 0 {
		n := 0
		for bb := pd.WeakPawns; bb != 0; {
			if pd.WeakOpen&(1<<uint(bb.PopLSB().File())) != 0 {
				n++
			}
		}
		s.AddScaled(prm.WeakOnOpenFile, n)
	}
}

// outsideSquare reports whether the defending king is outside the square of
// a side pawn on sq, so it cannot catch the pawn.
func outsideSquare(pos *board.Position, sq board.Square, side board.Color) bool {
	them := side.Other()
	rr := relRank(sq, side)
	promo := promotionSquare(sq, side)
	pawnDist := 7 - rr
	if rr == 1 {
		pawnDist--
	}
	kingDist := board.Distance(pos.KingSquare[them], promo)
	if pos.SideToMove == them {
		kingDist--
	}
	return kingDist > pawnDist
}

// scoreEndgame adds the king activity terms used once the opponent's
// material is low.
func scoreEndgame(side board.Color, ctx *evalContext, s *Scores) {
	pos := ctx.pos
	them := side.Other()
	s.End += ctx.kp[side].KingEndgamePosition
	if ctx.level[them] <= prm.DeepEndgameLevel {
		oppPawns := pos.Pieces[them][board.Pawn]
		loose := oppPawns &^ pawnAttacksBB(oppPawns, them)
		s.End += prm.KingWeakPawn * (kingNearProximity[pos.KingSquare[side]] & loose).PopCount()
	}
}

// kingDistanceScore pulls the king of a side with a clear material lead
// toward the defending king in a deep endgame.
func kingDistanceScore(side board.Color, ctx *evalContext, s *Scores) {
	them := side.Other()
	if ctx.level[them] > prm.DeepEndgameLevel {
		return
	}
	if materialValue(ctx.mat[side])-materialValue(ctx.mat[them]) < 2*prm.PieceValues[board.Pawn] {
		return
	}
	d := board.Distance(ctx.pos.KingSquare[side], ctx.pos.KingSquare[them])
	s.End += prm.KingDistanceBonus * (7 - d)
}
