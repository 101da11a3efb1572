package board

// Leaper tables, indexed by square.
var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [2][64]Bitboard
)

func init() {
	for sq := A1; sq <= H8; sq++ {
		b := SquareBB(sq)

		n := (b<<17|b>>15)&NotFileA | (b<<15|b>>17)&NotFileH
		n |= (b<<10|b>>6)&NotFileAB | (b<<6|b>>10)&NotFileGH
		knightAttacks[sq] = n

		k := b.East() | b.West()
		k |= k.North() | k.South() | b.North() | b.South()
		kingAttacks[sq] = k

		pawnAttacks[White][sq] = b.NorthEast() | b.NorthWest()
		pawnAttacks[Black][sq] = b.SouthEast() | b.SouthWest()
	}
	initRays()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// KnightAttacks returns the squares a knight on sq attacks.
func KnightAttacks(sq Square) Bitboard { return knightAttacks[sq] }

// KingAttacks returns the squares a king on sq attacks.
func KingAttacks(sq Square) Bitboard { return kingAttacks[sq] }

// PawnAttacks returns the squares a c pawn on sq captures on.
func PawnAttacks(sq Square, c Color) Bitboard { return pawnAttacks[c][sq] }

// QueenAttacks returns the union of the bishop and rook attacks from sq.
func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return BishopAttacks(sq, occupied) | RookAttacks(sq, occupied)
}

// AttackersByColor returns c's pieces attacking sq given the occupancy.
func (p *Position) AttackersByColor(sq Square, c Color, occupied Bitboard) Bitboard {
	pc := &p.Pieces[c]
	diag := pc[Bishop] | pc[Queen]
	line := pc[Rook] | pc[Queen]
	att := pawnAttacks[c.Other()][sq]&pc[Pawn] |
		knightAttacks[sq]&pc[Knight] |
		kingAttacks[sq]&pc[King]
	if diag != 0 {
		att |= BishopAttacks(sq, occupied) & diag
	}
	if line != 0 {
		att |= RookAttacks(sq, occupied) & line
	}
	return att
}

// IsSquareAttacked reports whether byColor attacks sq.
func (p *Position) IsSquareAttacked(sq Square, byColor Color) bool {
	return p.AttackersByColor(sq, byColor, p.AllOccupied) != 0
}

// UpdateCheckers recomputes the pieces checking the side to move. A side
// without a king is never in check.
func (p *Position) UpdateCheckers() {
	us := p.SideToMove
	if p.Pieces[us][King] == 0 {
		p.Checkers = 0
		return
	}
	p.Checkers = p.AttackersByColor(p.Pieces[us][King].LSB(), us.Other(), p.AllOccupied)
}
