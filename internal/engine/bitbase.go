package engine

import (
	"github.com/hailam/chesseval/internal/board"
	"github.com/hailam/chesseval/internal/score"
)

// King and pawn versus king is solved exactly. The table covers White with
// the pawn on files a to d; other positions are mirrored into it. An index
// packs the white king, black king, side to move, pawn file and pawn rank.

const kpkSize = 2 * 24 * 64 * 64

const (
	kpkInvalid uint8 = 0
	kpkUnknown uint8 = 1
	kpkDraw    uint8 = 2
	kpkWin     uint8 = 4
)

// kpkWins holds one bit per index, set for a White win.
var kpkWins [kpkSize / 64]uint64

func kpkIndex(stm board.Color, bk, wk, psq board.Square) int {
	return int(wk) | int(bk)<<6 | int(stm)<<12 | psq.File()<<13 | (6-psq.Rank())<<15
}

func kpkDecode(idx int) (stm board.Color, bk, wk, psq board.Square) {
	wk = board.Square(idx & 0x3F)
	bk = board.Square(idx >> 6 & 0x3F)
	stm = board.Color(idx >> 12 & 1)
	psq = board.NewSquare(idx>>13&3, 6-(idx>>15))
	return
}

func initBitbase() {
	db := make([]uint8, kpkSize)
	for idx := range db {
		db[idx] = kpkInitial(kpkDecode(idx))
	}
	for changed := true; changed; {
		changed = false
		for idx, r := range db {
			if r != kpkUnknown {
				continue
			}
			if v := kpkClassify(db, idx); v != kpkUnknown {
				db[idx] = v
				changed = true
			}
		}
	}
	for idx, r := range db {
		if r == kpkWin {
			kpkWins[idx/64] |= 1 << (idx % 64)
		}
	}
}

func kpkInitial(stm board.Color, bk, wk, psq board.Square) uint8 {
	switch {
	case board.Distance(wk, bk) <= 1 || wk == psq || bk == psq:
		return kpkInvalid
	case stm == board.White && board.PawnAttacks(psq, board.White).IsSet(bk):
		return kpkInvalid
	}

	promo := psq + 8
	if stm == board.White && psq.Rank() == 6 && wk != promo &&
		(board.Distance(bk, promo) > 1 || board.Distance(wk, promo) == 1) {
		return kpkWin
	}

	if stm == board.Black {
		escapes := board.KingAttacks(bk) &^ (board.KingAttacks(wk) | board.PawnAttacks(psq, board.White))
		// Stalemated, or the pawn hangs.
		if escapes == 0 || board.KingAttacks(bk)&^board.KingAttacks(wk)&board.SquareBB(psq) != 0 {
			return kpkDraw
		}
	}
	return kpkUnknown
}

// kpkClassify resolves an unknown position from its successors. White
// needs one winning move; Black needs one move that is not a loss.
func kpkClassify(db []uint8, idx int) uint8 {
	stm, bk, wk, psq := kpkDecode(idx)
	var r uint8
	if stm == board.White {
		for b := board.KingAttacks(wk); b != 0; {
			r |= db[kpkIndex(board.Black, bk, b.PopLSB(), psq)]
		}
		push := psq + 8
		if psq.Rank() < 6 {
			r |= db[kpkIndex(board.Black, bk, wk, push)]
		}
		if psq.Rank() == 1 && push != wk && push != bk {
			r |= db[kpkIndex(board.Black, bk, wk, push+8)]
		}
		switch {
		case r&kpkWin != 0:
			return kpkWin
		case r&kpkUnknown != 0:
			return kpkUnknown
		}
		return kpkDraw
	}

	for b := board.KingAttacks(bk); b != 0; {
		r |= db[kpkIndex(board.White, b.PopLSB(), wk, psq)]
	}
	switch {
	case r&kpkDraw != 0:
		return kpkDraw
	case r&kpkUnknown != 0:
		return kpkUnknown
	}
	return kpkWin
}

func kpkProbe(stm board.Color, bk, wk, psq board.Square) bool {
	idx := kpkIndex(stm, bk, wk, psq)
	return kpkWins[idx/64]&(1<<(idx%64)) != 0
}

// TryBitbase returns the exact value of a king and pawn versus king position
// from the side to move's point of view, or score.Invalid for any other
// material.
func TryBitbase(pos *board.Position) int {
	if pos.PieceCount() != 3 {
		return score.Invalid
	}
	var strong board.Color
	switch {
	case pos.Pieces[board.White][board.Pawn] != 0:
		strong = board.White
	case pos.Pieces[board.Black][board.Pawn] != 0:
		strong = board.Black
	default:
		return score.Invalid
	}

	psq := pos.Pieces[strong][board.Pawn].LSB()
	wk, bk := pos.KingSquare[strong], pos.KingSquare[strong.Other()]
	stm := pos.SideToMove
	if strong == board.Black {
		psq, wk, bk = psq.Mirror(), wk.Mirror(), bk.Mirror()
		stm = stm.Other()
	}
	if psq.File() > 3 {
		psq, wk, bk = psq.MirrorFile(), wk.MirrorFile(), bk.MirrorFile()
	}

	if !kpkProbe(stm, bk, wk, psq) {
		return score.Draw
	}
	v := score.BitbaseWin + 10*psq.Rank()
	if pos.SideToMove != strong {
		return -v
	}
	return v
}
