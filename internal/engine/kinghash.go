package engine

import "github.com/hailam/chesseval/internal/board"

// KingPawnEntry caches the king safety terms of one side. The key mixes the
// pawn key with the king square and the side's castling rights.
type KingPawnEntry struct {
	Key    uint64
	filled bool

	Cover               int
	Storm               int
	PawnAttacks         int
	KingEndgamePosition int
	OpenFiles           uint8 // shelter files without an own pawn
}

// Safety is the midgame king safety sum.
func (kp *KingPawnEntry) Safety() int {
	return kp.Cover + kp.Storm + kp.PawnAttacks
}

type kingPawnTable struct {
	entries []KingPawnEntry
	mask    uint64
}

func newKingPawnTable(entries int) kingPawnTable {
	n := roundDownToPowerOf2(uint64(max(entries, 1)))
	return kingPawnTable{
		entries: make([]KingPawnEntry, n),
		mask:    n - 1,
	}
}

func (t *kingPawnTable) slot(key uint64) *KingPawnEntry {
	return &t.entries[key&t.mask]
}

func (t *kingPawnTable) clear() {
	clear(t.entries)
}

var sideCastling = [2]board.CastlingRights{
	board.WhiteKingSideCastle | board.WhiteQueenSideCastle,
	board.BlackKingSideCastle | board.BlackQueenSideCastle,
}

func kingPawnKey(pos *board.Position, side board.Color) uint64 {
	return pos.PawnKey ^
		board.ZobristPiece(side, board.King, pos.KingSquare[side]) ^
		board.ZobristCastling(pos.CastlingRights&sideCastling[side])
}
