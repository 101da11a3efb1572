package board

import "strings"

// Material is the material signature of one side: how many of each piece
// type it has, excluding the king. It is a small value type and cheap to copy.
type Material struct {
	counts [5]uint8 // indexed by PieceType, Pawn..Queen
}

// Material level weights per piece type. A full set of pieces is 31.
var levelWeight = [5]int{0, 3, 3, 5, 9}

// MaxMaterialLevel is the highest value Level can return.
const MaxMaterialLevel = 31

// Pattern keys for common signatures. The key packs each count in 4 bits,
// pawns lowest.
const (
	KeyBare Key = 0
	KeyP    Key = 1
	KeyN    Key = 1 << 4
	KeyB    Key = 1 << 8
	KeyR    Key = 1 << 12
	KeyQ    Key = 1 << 16
	KeyNN   Key = 2 * KeyN
	KeyBN   Key = KeyB + KeyN
	KeyBP   Key = KeyB + KeyP
	KeyBB   Key = 2 * KeyB
)

// Key is a packed material signature suitable for switch statements.
type Key uint32

// NewMaterial builds a signature from piece counts.
func NewMaterial(pawns, knights, bishops, rooks, queens int) Material {
	return Material{counts: [5]uint8{
		uint8(pawns), uint8(knights), uint8(bishops), uint8(rooks), uint8(queens),
	}}
}

// Count returns the number of pieces of the given type.
func (m Material) Count(pt PieceType) int {
	if pt >= King {
		return 0
	}
	return int(m.counts[pt])
}

func (m Material) Pawns() int   { return int(m.counts[Pawn]) }
func (m Material) Knights() int { return int(m.counts[Knight]) }
func (m Material) Bishops() int { return int(m.counts[Bishop]) }
func (m Material) Rooks() int   { return int(m.counts[Rook]) }
func (m Material) Queens() int  { return int(m.counts[Queen]) }

// Minors returns the number of knights and bishops.
func (m Material) Minors() int { return m.Knights() + m.Bishops() }

// Majors returns the number of rooks and queens.
func (m Material) Majors() int { return m.Rooks() + m.Queens() }

// Pieces returns the number of non-pawn, non-king pieces.
func (m Material) Pieces() int { return m.Minors() + m.Majors() }

// NoPawns reports whether the side has no pawns.
func (m Material) NoPawns() bool { return m.counts[Pawn] == 0 }

// KingOnly reports whether the side has nothing but its king.
func (m Material) KingOnly() bool { return m.Key() == KeyBare }

// Level returns the material level used to select tapering weights:
// 3 per minor, 5 per rook, 9 per queen, capped at MaxMaterialLevel.
func (m Material) Level() int {
	level := 0
	for pt := Knight; pt <= Queen; pt++ {
		level += levelWeight[pt] * int(m.counts[pt])
	}
	return min(level, MaxMaterialLevel)
}

// Key returns the packed signature. Counts above 15 saturate.
func (m Material) Key() Key {
	var k Key
	for pt := Pawn; pt <= Queen; pt++ {
		k |= Key(min(m.counts[pt], 15)) << (4 * uint(pt))
	}
	return k
}

// PieceKey returns the packed signature with pawns masked out.
func (m Material) PieceKey() Key {
	return m.Key() &^ 0xF
}

// String returns the signature in tablebase notation, e.g. "KRPP".
func (m Material) String() string {
	var sb strings.Builder
	sb.WriteByte('K')
	for pt := Queen; ; pt-- {
		for i := 0; i < int(m.counts[pt]); i++ {
			sb.WriteByte(pt.Char() - 'a' + 'A')
		}
		if pt == Pawn {
			break
		}
	}
	return sb.String()
}
