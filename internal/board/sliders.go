package board

// Sliding attacks come from ray tables: the first blocker along a ray is
// found with a bit scan and the ray beyond it is masked off.

type direction int

const (
	north direction = iota
	east
	northEast
	northWest
	south
	west
	southWest
	southEast
)

// rays[d][sq] holds every square from sq to the edge in direction d.
var rays [8][64]Bitboard

var steps = [8][2]int{
	north: {0, 1}, east: {1, 0}, northEast: {1, 1}, northWest: {-1, 1},
	south: {0, -1}, west: {-1, 0}, southWest: {-1, -1}, southEast: {1, -1},
}

func initRays() {
	for d, st := range steps {
		for sq := A1; sq <= H8; sq++ {
			var r Bitboard
			for f, rk := sq.File()+st[0], sq.Rank()+st[1]; f >= 0 && f < 8 && rk >= 0 && rk < 8; f, rk = f+st[0], rk+st[1] {
				r |= SquareBB(NewSquare(f, rk))
			}
			rays[d][sq] = r
		}
	}
}

// ray returns the squares attacked along d, the first blocker included.
// Directions before south run toward higher square indices.
func ray(d direction, sq Square, occupied Bitboard) Bitboard {
	r := rays[d][sq]
	blockers := r & occupied
	if blockers == 0 {
		return r
	}
	if d < south {
		return r &^ rays[d][blockers.LSB()]
	}
	return r &^ rays[d][blockers.MSB()]
}

// BishopAttacks returns the diagonal attacks from sq given the occupancy.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	return ray(northEast, sq, occupied) | ray(northWest, sq, occupied) |
		ray(southWest, sq, occupied) | ray(southEast, sq, occupied)
}

// RookAttacks returns the orthogonal attacks from sq given the occupancy.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	return ray(north, sq, occupied) | ray(east, sq, occupied) |
		ray(south, sq, occupied) | ray(west, sq, occupied)
}
