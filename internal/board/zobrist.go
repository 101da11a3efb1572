package board

// Hash keys are drawn from a splitmix64 stream with a fixed seed, so hashes
// are stable across runs and processes.
var (
	zobristPiece      [2][6][64]uint64
	zobristEnPassant  [8]uint64
	zobristCastling   [16]uint64
	zobristSideToMove uint64
)

type splitmix uint64

func (s *splitmix) next() uint64 {
	*s += 0x9E3779B97F4A7C15
	z := uint64(*s)
	z = (z ^ z>>30) * 0xBF58476D1CE4E5B9
	z = (z ^ z>>27) * 0x94D049BB133111EB
	return z ^ z>>31
}

func init() {
	rng := splitmix(0xC4E55EA1)
	for c := range zobristPiece {
		for pt := range zobristPiece[c] {
			for sq := range zobristPiece[c][pt] {
				zobristPiece[c][pt][sq] = rng.next()
			}
		}
	}
	for i := range zobristEnPassant {
		zobristEnPassant[i] = rng.next()
	}
	// Castling keys are per combination so a mask of rights hashes directly.
	for i := range zobristCastling {
		zobristCastling[i] = rng.next()
	}
	zobristSideToMove = rng.next()
}

// ZobristPiece is the key of a c piece of type pt on sq.
func ZobristPiece(c Color, pt PieceType, sq Square) uint64 {
	return zobristPiece[c][pt][sq]
}

// ZobristCastling is the key of a set of castling rights.
func ZobristCastling(cr CastlingRights) uint64 {
	return zobristCastling[cr]
}

// ComputeHash returns the full position key from scratch.
func (p *Position) ComputeHash() uint64 {
	var h uint64
	for c := range p.Pieces {
		for pt, bb := range p.Pieces[c] {
			for bb != 0 {
				h ^= zobristPiece[c][pt][bb.PopLSB()]
			}
		}
	}
	if p.SideToMove == Black {
		h ^= zobristSideToMove
	}
	h ^= zobristCastling[p.CastlingRights]
	if p.EnPassant != NoSquare {
		h ^= zobristEnPassant[p.EnPassant.File()]
	}
	return h
}

// ComputePawnKey returns the key of the pawns alone.
func (p *Position) ComputePawnKey() uint64 {
	var h uint64
	for c := range p.Pieces {
		for bb := p.Pieces[c][Pawn]; bb != 0; {
			h ^= zobristPiece[c][Pawn][bb.PopLSB()]
		}
	}
	return h
}
