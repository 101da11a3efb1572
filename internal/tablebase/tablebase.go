// Package tablebase answers endgame queries from Syzygy files, the Lichess
// tablebase API or a persistent cache of earlier answers.
package tablebase

import (
	"github.com/hailam/chesseval/internal/board"
	"github.com/hailam/chesseval/internal/score"
)

// WDL represents a Win/Draw/Loss result for the side to move.
type WDL int

const (
	WDLLoss        WDL = -2
	WDLBlessedLoss WDL = -1 // Loss, but the 50-move rule saves it
	WDLDraw        WDL = 0
	WDLCursedWin   WDL = 1 // Win, but the 50-move rule spoils it
	WDLWin         WDL = 2
)

func (w WDL) String() string {
	switch w {
	case WDLLoss:
		return "loss"
	case WDLBlessedLoss:
		return "blessed-loss"
	case WDLDraw:
		return "draw"
	case WDLCursedWin:
		return "cursed-win"
	case WDLWin:
		return "win"
	default:
		return "unknown"
	}
}

// ProbeResult contains the result of a WDL probe.
type ProbeResult struct {
	Found bool
	WDL   WDL
	DTZ   int // Distance to zeroing move (pawn move or capture)
}

// RootResult describes a root position: its value, the minimal DTZ among the
// moves that keep it, and those moves in UCI notation. DTZ is -1 when the
// position was not found.
type RootResult struct {
	Found bool
	WDL   WDL
	DTZ   int
	Moves []string
}

// Prober is the interface for tablebase probing. Implementations are safe
// for concurrent use.
type Prober interface {
	// ProbeWDL looks up the value of a position. With use50 false, cursed
	// wins and blessed losses are reported as plain wins and losses.
	ProbeWDL(pos *board.Position, use50 bool) ProbeResult

	// ProbeRoot returns the moves that preserve the root's value.
	ProbeRoot(pos *board.Position) RootResult

	// MaxPieces returns the maximum number of pieces supported, kings
	// included. Zero means nothing can be probed.
	MaxPieces() int
}

// WDLToScore converts a WDL result to a score for the side to move.
func WDLToScore(wdl WDL, use50 bool) int {
	switch wdl {
	case WDLWin:
		return score.TablebaseWin
	case WDLCursedWin:
		if use50 {
			return score.CursedWin
		}
		return score.TablebaseWin
	case WDLBlessedLoss:
		if use50 {
			return -score.CursedWin
		}
		return -score.TablebaseWin
	case WDLLoss:
		return -score.TablebaseWin
	default:
		return score.Draw
	}
}

// ignore50 folds the 50-move nuances into plain results.
func ignore50(w WDL) WDL {
	switch w {
	case WDLCursedWin:
		return WDLWin
	case WDLBlessedLoss:
		return WDLLoss
	}
	return w
}

// notFound is the root result for an unknown position.
var notFound = RootResult{DTZ: -1}

// NoopProber is a prober that always returns "not found".
type NoopProber struct{}

func (NoopProber) ProbeWDL(*board.Position, bool) ProbeResult { return ProbeResult{} }
func (NoopProber) ProbeRoot(*board.Position) RootResult      { return notFound }
func (NoopProber) MaxPieces() int                             { return 0 }
