// Package engine implements static evaluation of chess positions.
//
// An Evaluator owns its pawn and king safety caches and is not safe for
// concurrent use: give each search worker its own. The static tables it
// reads are built once by Init and shared read-only.
package engine

import (
	"github.com/rs/zerolog"

	"github.com/hailam/chesseval/internal/board"
	"github.com/hailam/chesseval/internal/score"
	"github.com/hailam/chesseval/internal/tablebase"
)

// Options configures an Evaluator.
type Options struct {
	PawnHashEntries     int // rounded down to a power of two
	KingPawnHashEntries int // per side, rounded down to a power of two
	Prober              tablebase.Prober
	Use50MoveRule       bool
	Logger              *zerolog.Logger
}

// DefaultOptions returns the standard cache sizes with the fifty-move rule
// honoured and no tablebases.
func DefaultOptions() Options {
	return Options{
		PawnHashEntries:     16384,
		KingPawnHashEntries: 8192,
		Use50MoveRule:       true,
	}
}

// Stats counts cache and oracle activity since construction or the last
// ClearHashTables.
type Stats struct {
	PawnHits      uint64
	PawnMisses    uint64
	KingHits      uint64
	KingMisses    uint64
	TablebaseHits uint64
	BitbaseHits   uint64
}

// Evaluator scores positions.
type Evaluator struct {
	pawns  pawnTable
	kings  [2]kingPawnTable
	prober tablebase.Prober
	use50  bool
	log    zerolog.Logger
	stats  Stats
}

// NewEvaluator returns an evaluator with freshly allocated caches.
func NewEvaluator(opts Options) *Evaluator {
	Init(nil)
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	def := DefaultOptions()
	if opts.PawnHashEntries <= 0 {
		opts.PawnHashEntries = def.PawnHashEntries
	}
	if opts.KingPawnHashEntries <= 0 {
		opts.KingPawnHashEntries = def.KingPawnHashEntries
	}
	e := &Evaluator{
		pawns:  newPawnTable(opts.PawnHashEntries),
		kings:  [2]kingPawnTable{newKingPawnTable(opts.KingPawnHashEntries), newKingPawnTable(opts.KingPawnHashEntries)},
		prober: opts.Prober,
		use50:  opts.Use50MoveRule,
		log:    log,
	}
	maxPieces := 0
	if e.prober != nil {
		maxPieces = e.prober.MaxPieces()
	}
	e.log.Debug().
		Int("pawn_entries", len(e.pawns.entries)).
		Int("king_entries", len(e.kings[board.White].entries)).
		Int("tb_pieces", maxPieces).
		Msg("evaluator created")
	return e
}

// ClearHashTables empties both caches and resets the counters.
func (e *Evaluator) ClearHashTables() {
	e.pawns.clear()
	e.kings[board.White].clear()
	e.kings[board.Black].clear()
	e.stats = Stats{}
	e.log.Debug().Msg("evaluation caches cleared")
}

// Stats returns the activity counters.
func (e *Evaluator) Stats() Stats {
	return e.stats
}

// Evaluate returns the score of pos from the side to move's point of view.
// With useCache false the pawn and king caches are recomputed rather than
// trusted; the result is the same either way.
func (e *Evaluator) Evaluate(pos *board.Position, useCache bool) int {
	if e.prober != nil && pos.CastlingRights == board.NoCastling && pos.PieceCount() <= e.prober.MaxPieces() {
		if r := e.prober.ProbeWDL(pos, e.use50); r.Found {
			e.stats.TablebaseHits++
			return tablebase.WDLToScore(r.WDL, e.use50)
		}
	}
	if v := TryBitbase(pos); v != score.Invalid {
		e.stats.BitbaseHits++
		return v
	}
	if TheoreticalDraw(pos) {
		return score.Draw
	}

	ctx := evalContext{pos: pos}
	for c := board.White; c <= board.Black; c++ {
		ctx.mat[c] = pos.Material(c)
		ctx.level[c] = ctx.mat[c].Level()
	}

	var sides [2]Scores
	// A recognised special case replaces the whole evaluation.
	if specialCaseEndgame(board.White, pos, ctx.mat[board.White], ctx.mat[board.Black], &sides[board.White]) == noSpecialCase &&
		specialCaseEndgame(board.Black, pos, ctx.mat[board.Black], ctx.mat[board.White], &sides[board.Black]) == noSpecialCase {
		e.evalGeneral(&ctx, &sides, useCache)
	}

	v := sides[board.White].Blend(ctx.level[board.Black]) - sides[board.Black].Blend(ctx.level[board.White])
	v = max(-(score.TablebaseWin - 1), min(v, score.TablebaseWin-1))
	if pos.SideToMove == board.Black {
		return -v
	}
	return v
}

func (e *Evaluator) evalGeneral(ctx *evalContext, sides *[2]Scores, useCache bool) {
	pos := ctx.pos
	sides[board.White].Any += materialScore(ctx.mat[board.White], ctx.mat[board.Black])

	ctx.pe = e.PawnEntry(pos, useCache)
	ctx.kp[board.White] = e.KingPawnEntry(board.White, pos, &ctx.pe.White, &ctx.pe.Black, useCache)
	ctx.kp[board.Black] = e.KingPawnEntry(board.Black, pos, &ctx.pe.Black, &ctx.pe.White, useCache)

	for side := board.White; side <= board.Black; side++ {
		s := &sides[side]
		pd := ctx.pe.Of(side)
		s.Mid += pd.MidgameScore
		s.End += pd.EndgameScore

		positionalScore(side, ctx, s)
		pawnScore(side, ctx, s)
		if ctx.level[side.Other()] <= prm.EarlyEndgameLevel {
			scoreEndgame(side, ctx, s)
			kingDistanceScore(side, ctx, s)
		}
	}
}
