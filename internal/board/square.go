// Package board provides the position snapshot consumed by the evaluator:
// bitboards, zobrist keys, FEN I/O, material signatures and a legality oracle.
package board

import "fmt"

// Square indexes the board rank by rank from a1 (0) to h8 (63).
type Square uint8

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	NoSquare Square = 64
)

// File returns 0 for the a-file through 7 for the h-file.
func (sq Square) File() int { return int(sq) & 7 }

// Rank returns 0 for the first rank through 7 for the eighth.
func (sq Square) Rank() int { return int(sq) >> 3 }

// String returns the coordinate name, or "-" for NoSquare as in FEN.
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

func NewSquare(file, rank int) Square {
	return Square(rank<<3 | file)
}

// ParseSquare reads a coordinate such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, fmt.Errorf("bad square %q", s)
	}
	return NewSquare(int(s[0]-'a'), int(s[1]-'1')), nil
}

// Mirror swaps ranks, so a1 becomes a8.
func (sq Square) Mirror() Square { return sq ^ 56 }

// MirrorFile swaps files, so a1 becomes h1.
func (sq Square) MirrorFile() Square { return sq ^ 7 }

// Relative maps sq to c's side of the board; it is the identity for White.
func (sq Square) Relative(c Color) Square {
	return sq ^ Square(56*int(c))
}

func (sq Square) IsLight() bool { return LightSquares.IsSet(sq) }

var distanceTable [64][64]int8

func init() {
	for a := A1; a <= H8; a++ {
		for b := A1; b <= H8; b++ {
			distanceTable[a][b] = int8(max(abs(a.File()-b.File()), abs(a.Rank()-b.Rank())))
		}
	}
}

// Distance is the number of king moves between a and b.
func Distance(a, b Square) int { return int(distanceTable[a][b]) }
