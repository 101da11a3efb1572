package board

import (
	"sort"

	"github.com/dylhunn/dragontoothmg"
)

// The evaluator never generates moves for play, but strict draw detection
// and tablebase root filtering need to know whether legal moves exist.
// Those questions are answered by dragontoothmg through a FEN round trip.

func (p *Position) oracle() dragontoothmg.Board {
	return dragontoothmg.ParseFen(p.ToFEN())
}

// HasLegalMoves reports whether the side to move has at least one legal move.
func (p *Position) HasLegalMoves() bool {
	b := p.oracle()
	return len(b.GenerateLegalMoves()) > 0
}

// IsCheckmate reports whether the side to move is checkmated.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate reports whether the side to move is stalemated.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}

// LegalMoves returns the legal moves of the side to move in UCI notation,
// sorted for stable output.
func (p *Position) LegalMoves() []string {
	b := p.oracle()
	moves := b.GenerateLegalMoves()
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.String())
	}
	sort.Strings(out)
	return out
}
