package engine

import (
	"fmt"

	"github.com/hailam/chesseval/internal/params"
)

// Scores accumulates one side's evaluation terms. Mid and End are tapered by
// material, Any applies at every stage of the game.
type Scores struct {
	Mid int
	End int
	Any int
}

// Blend tapers s into a single value for the given material level.
// The result always lies in [min(Mid,End), max(Mid,End)] offset by Any.
func (s Scores) Blend(level int) int {
	level = max(0, min(level, len(prm.MaterialScale)-1))
	scale := prm.MaterialScale[level]
	return s.Any + (s.Mid*scale+s.End*(params.ScaleMax-scale))/params.ScaleMax
}

// Add accumulates o into s.
func (s *Scores) Add(o Scores) {
	s.Mid += o.Mid
	s.End += o.End
	s.Any += o.Any
}

// AddPhased adds a [midgame, endgame] weight pair.
func (s *Scores) AddPhased(w [2]int) {
	s.Mid += w[params.Midgame]
	s.End += w[params.Endgame]
}

// AddScaled adds a [midgame, endgame] pair multiplied by n.
func (s *Scores) AddScaled(w [2]int, n int) {
	s.Mid += w[params.Midgame] * n
	s.End += w[params.Endgame] * n
}

func (s Scores) String() string {
	return fmt.Sprintf("(mid %d, end %d, any %d)", s.Mid, s.End, s.Any)
}

// byRank reads the [midgame, endgame] pair for index i of a per-phase table.
func byRank(t *[2][8]int, i int) [2]int {
	return [2]int{t[params.Midgame][i], t[params.Endgame][i]}
}
