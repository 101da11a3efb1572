package engine

import (
	"sync"

	"golang.org/x/exp/constraints"

	"github.com/hailam/chesseval/internal/board"
	"github.com/hailam/chesseval/internal/params"
)

// Weights in effect. Replaced at most once, by Init.
var prm = params.Default()

var (
	// passedMask[c][sq]: squares on sq's file and both adjacent files
	// strictly ahead of a c pawn on sq.
	passedMask [2][64]board.Bitboard
	// frontSpan[c][sq]: squares ahead on sq's own file.
	frontSpan [2][64]board.Bitboard
	// supportMask[c][sq]: adjacent-file squares level with or behind sq.
	supportMask [2][64]board.Bitboard
	// sentryMask[c][sq]: adjacent-file squares ahead of sq, the squares
	// from which enemy pawns can contest its advance.
	sentryMask [2][64]board.Bitboard
	// adjacentFiles[f]: files f-1 and f+1.
	adjacentFiles [8]board.Bitboard

	// kingProximity[d][sq]: squares within Chebyshev distance d of sq.
	kingProximity [8][64]board.Bitboard
	// kingNearProximity[sq]: sq and the squares a king attacks from it.
	kingNearProximity [64]board.Bitboard
	// kingPawnProximity[c][r][sq]: squares within r+1 of the stop square
	// of a c pawn on sq.
	kingPawnProximity [2][4][64]board.Bitboard

	outpostZone [2]board.Bitboard
	seventhRank [2]board.Bitboard
	eighthRank  [2]board.Bitboard
)

var initOnce sync.Once

// Init installs the weight set p (nil keeps the defaults) and builds the
// static tables and the KPK bitbase. Only the first call has any effect;
// NewEvaluator calls it implicitly, so Init must run before the first
// evaluator is created if custom weights are wanted.
func Init(p *params.Params) {
	initOnce.Do(func() {
		if p != nil {
			prm = p.Clone()
		}
		initBitboards()
		initProximity()
		initBitbase()
	})
}

func initBitboards() {
	for f := 0; f < 8; f++ {
		if f > 0 {
			adjacentFiles[f] |= board.FileMask[f-1]
		}
		if f < 7 {
			adjacentFiles[f] |= board.FileMask[f+1]
		}
	}

	for c := board.White; c <= board.Black; c++ {
		for sq := board.A1; sq <= board.H8; sq++ {
			bb := board.SquareBB(sq)
			front := bb.ForwardFill(c)
			frontSpan[c][sq] = front
			passedMask[c][sq] = front | front.East() | front.West()
			sentryMask[c][sq] = front.East() | front.West()

			behind := bb.ForwardFill(c.Other()) | bb
			supportMask[c][sq] = behind.East() | behind.West()
		}

		rel := func(rank int) board.Bitboard {
			if c == board.White {
				return board.RankMask[rank]
			}
			return board.RankMask[7-rank]
		}
		outpostZone[c] = (rel(3) | rel(4) | rel(5)) &^ (board.FileA | board.FileH)
		seventhRank[c] = rel(6)
		eighthRank[c] = rel(7)
	}
}

func initProximity() {
	for sq := board.A1; sq <= board.H8; sq++ {
		for to := board.A1; to <= board.H8; to++ {
			d := board.Distance(sq, to)
			for r := d; r < 8; r++ {
				kingProximity[r][sq] |= board.SquareBB(to)
			}
		}
		kingNearProximity[sq] = board.KingAttacks(sq) | board.SquareBB(sq)
	}

	for c := board.White; c <= board.Black; c++ {
		for sq := board.A2; sq <= board.H7; sq++ {
			stop := board.SquareBB(sq).Forward(c).LSB()
			for r := 0; r < 4; r++ {
				kingPawnProximity[c][r][sq] = kingProximity[r+1][stop]
			}
		}
	}
}

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// relRank is the rank of sq counted from c's first rank.
func relRank(sq board.Square, c board.Color) int {
	if c == board.White {
		return sq.Rank()
	}
	return 7 - sq.Rank()
}

// pstIndex maps a board square to an index into a square table printed
// rank 8 first from White's side.
func pstIndex(sq board.Square, c board.Color) int {
	return int(sq.Relative(c) ^ 56)
}

// promotionSquare returns the queening square of a c pawn on sq.
func promotionSquare(sq board.Square, c board.Color) board.Square {
	if c == board.White {
		return board.NewSquare(sq.File(), 7)
	}
	return board.NewSquare(sq.File(), 0)
}
