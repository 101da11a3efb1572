package engine

import "github.com/hailam/chesseval/internal/board"

// PawnFlags classifies a single pawn. A pawn can carry several flags.
type PawnFlags uint16

const (
	Passed PawnFlags = 1 << iota
	PotentialPasser
	ConnectedPasser
	AdjacentPasser
	Backward
	Doubled
	Tripled
	Weak
	Isolated
)

// PawnDetail describes one pawn of a side.
type PawnDetail struct {
	Square      board.Square
	Flags       PawnFlags
	SpaceWeight int
}

// PawnData is the pawn structure summary of one side.
type PawnData struct {
	Passers             board.Bitboard
	WeakPawns           board.Bitboard
	OpponentPawnAttacks board.Bitboard // squares the other side's pawns attack

	PawnFileMask   uint8 // bit f set when the side has a pawn on file f
	PasserFileMask uint8
	WeakOpen       uint8 // files with a weak pawn and no opposing pawn

	Space      int
	LightPawns int
	DarkPawns  int
	Outside    int // 0 none, 1 outside passer, 2 outside passer the opponent lacks

	MidgameScore int
	EndgameScore int

	Details [8]PawnDetail
	Count   int
}

// PawnEntry is a pawn structure cache slot. It is valid for a position only
// while Key equals the position's pawn key.
type PawnEntry struct {
	Key    uint64
	filled bool
	White  PawnData
	Black  PawnData
}

// Of returns the data for side c.
func (pe *PawnEntry) Of(c board.Color) *PawnData {
	if c == board.White {
		return &pe.White
	}
	return &pe.Black
}

func (pe *PawnEntry) matches(key uint64) bool {
	return pe.filled && pe.Key == key
}

// pawnTable is an open, fixed-size table of pawn entries indexed by the low
// bits of the pawn key. Colliding keys overwrite each other.
type pawnTable struct {
	entries []PawnEntry
	mask    uint64
}

func newPawnTable(entries int) pawnTable {
	n := roundDownToPowerOf2(uint64(max(entries, 1)))
	return pawnTable{
		entries: make([]PawnEntry, n),
		mask:    n - 1,
	}
}

func (pt *pawnTable) slot(key uint64) *PawnEntry {
	return &pt.entries[key&pt.mask]
}

func (pt *pawnTable) clear() {
	clear(pt.entries)
}

// roundDownToPowerOf2 rounds n down to the nearest power of 2.
func roundDownToPowerOf2(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}
