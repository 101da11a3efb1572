package engine

import "github.com/hailam/chesseval/internal/board"

// PawnEntry returns the pawn structure entry for pos. The cached slot is
// returned untouched when useCache is set and its key matches; otherwise
// both sides are recomputed and the slot is overwritten.
func (e *Evaluator) PawnEntry(pos *board.Position, useCache bool) *PawnEntry {
	pe := e.pawns.slot(pos.PawnKey)
	if useCache && pe.matches(pos.PawnKey) {
		e.stats.PawnHits++
		return pe
	}
	e.stats.PawnMisses++
	calcPawnEntry(pos, pe)
	return pe
}

func calcPawnEntry(pos *board.Position, pe *PawnEntry) {
	pe.Key = pos.PawnKey
	pe.filled = true
	calcPawnData(pos, board.White, &pe.White)
	calcPawnData(pos, board.Black, &pe.Black)
	evalOutsidePassers(pe)
}

// pawnAttacksBB returns every square attacked by the c pawns in pawns.
func pawnAttacksBB(pawns board.Bitboard, c board.Color) board.Bitboard {
	if c == board.White {
		return pawns.NorthEast() | pawns.NorthWest()
	}
	return pawns.SouthEast() | pawns.SouthWest()
}

func calcPawnData(pos *board.Position, side board.Color, d *PawnData) {
	*d = PawnData{}
	own := pos.Pieces[side][board.Pawn]
	opp := pos.Pieces[side.Other()][board.Pawn]
	oppAttacks := pawnAttacksBB(opp, side.Other())
	d.OpponentPawnAttacks = oppAttacks

	var s Scores
	for bb := own; bb != 0; {
		sq := bb.PopLSB()
		f := sq.File()
		rr := relRank(sq, side)
		ahead := frontSpan[side][sq]
		fileCount := (own & board.FileMask[f]).PopCount()
		openFile := opp&ahead == 0

		var flags PawnFlags
		if opp&passedMask[side][sq] == 0 && own&ahead == 0 {
			flags |= Passed
		}
		if own&adjacentFiles[f] == 0 {
			flags |= Isolated
		}
		if fileCount >= 2 {
			flags |= Doubled
		}
		if fileCount >= 3 {
			flags |= Tripled
		}
		if flags&(Passed|Isolated) == 0 && own&supportMask[side][sq] == 0 &&
			oppAttacks&board.SquareBB(sq).Forward(side) != 0 {
			flags |= Backward
		}
		if flags&(Isolated|Backward) != 0 {
			flags |= Weak
		}
		if flags&Passed == 0 && (own|opp)&ahead == 0 {
			sentries := (opp & sentryMask[side][sq]).PopCount()
			helpers := (own & supportMask[side][sq]).PopCount()
			if helpers >= sentries {
				flags |= PotentialPasser
			}
		}

		switch {
		case flags&Passed != 0:
			s.AddPhased(byRank(&prm.PassedPawn, rr))
			d.Passers |= board.SquareBB(sq)
			d.PasserFileMask |= 1 << f
		case flags&PotentialPasser != 0:
			s.AddPhased(byRank(&prm.PotentialPasser, rr))
		}
		// File penalties are charged to the pawns behind the front one.
		ownAhead := (own & ahead).PopCount()
		if flags&Doubled != 0 && ownAhead > 0 {
			s.AddPhased(byRank(&prm.DoubledPawn, f))
		}
		if flags&Tripled != 0 && ownAhead == fileCount-1 {
			s.AddPhased(byRank(&prm.TripledPawn, f))
		}
		if flags&Isolated != 0 {
			if openFile {
				s.AddPhased(byRank(&prm.IsolatedOpen, f))
			} else {
				s.AddPhased(byRank(&prm.IsolatedClosed, f))
			}
		}
		if flags&Backward != 0 {
			if openFile {
				s.AddPhased(prm.BackwardOpen)
			} else {
				s.AddPhased(prm.BackwardPawn)
			}
		}
		if flags&Weak != 0 {
			d.WeakPawns |= board.SquareBB(sq)
			if opp&board.FileMask[f] == 0 {
				d.WeakOpen |= 1 << f
			}
		}

		space := prm.PawnSpace[f][rr]
		d.Space += space
		if sq.IsLight() {
			d.LightPawns++
		} else {
			d.DarkPawns++
		}
		d.PawnFileMask |= 1 << f
		if d.Count < len(d.Details) {
			d.Details[d.Count] = PawnDetail{Square: sq, Flags: flags, SpaceWeight: space}
			d.Count++
		}
	}

	// Passers supporting each other on neighbouring files.
	for i := 0; i < d.Count; i++ {
		pd := &d.Details[i]
		if pd.Flags&Passed == 0 {
			continue
		}
		neighbours := d.Passers & adjacentFiles[pd.Square.File()]
		if neighbours == 0 {
			continue
		}
		pd.Flags |= AdjacentPasser
		rr := relRank(pd.Square, side)
		for nb := neighbours; nb != 0; {
			if abs(nb.PopLSB().Rank()-pd.Square.Rank()) <= 1 {
				pd.Flags |= ConnectedPasser
				break
			}
		}
		if pd.Flags&ConnectedPasser != 0 {
			s.AddPhased(byRank(&prm.ConnectedPasser, rr))
		} else {
			s.AddPhased(byRank(&prm.AdjacentPasser, rr))
		}
	}

	d.MidgameScore = s.Mid
	d.EndgameScore = s.End
}

// evalOutsidePassers marks passers lying outside the files the opponent's
// pawns occupy. With no opposing pawns every passer counts.
func evalOutsidePassers(pe *PawnEntry) {
	has := [2]bool{
		hasOutsidePasser(&pe.White, &pe.Black),
		hasOutsidePasser(&pe.Black, &pe.White),
	}
	for c := board.White; c <= board.Black; c++ {
		d := pe.Of(c)
		if !has[c] {
			continue
		}
		d.Outside = 1
		if !has[c.Other()] {
			d.Outside = 2
		}
		d.EndgameScore += prm.OutsidePasser[d.Outside]
	}
}

func hasOutsidePasser(own, opp *PawnData) bool {
	if own.PasserFileMask == 0 {
		return false
	}
	if opp.PawnFileMask == 0 {
		return true
	}
	lo, hi := fileSpan(opp.PawnFileMask)
	for f := 0; f < 8; f++ {
		if own.PasserFileMask&(1<<f) != 0 && (f < lo || f > hi) {
			return true
		}
	}
	return false
}

// fileSpan returns the lowest and highest file set in mask.
func fileSpan(mask uint8) (lo, hi int) {
	lo, hi = 8, -1
	for f := 0; f < 8; f++ {
		if mask&(1<<f) != 0 {
			lo = min(lo, f)
			hi = max(hi, f)
		}
	}
	return lo, hi
}
