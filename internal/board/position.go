package board

import (
	"errors"
	"fmt"
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	b := make([]byte, 0, 4)
	for i := range castlingLetters {
		if cr&(1<<i) != 0 {
			b = append(b, castlingLetters[i])
		}
	}
	return string(b)
}

// CanCastle reports whether c keeps the right to castle on the given wing.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	right := WhiteKingSideCastle
	if !kingSide {
		right = WhiteQueenSideCastle
	}
	if c == Black {
		right <<= 2
	}
	return cr&right != 0
}

// Position is a board snapshot with the keys and occupancy the evaluator
// reads. It has no move history.
type Position struct {
	Pieces      [2][6]Bitboard
	Occupied    [2]Bitboard
	AllOccupied Bitboard

	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square // NoSquare when there is no capture target
	HalfMoveClock  int
	FullMoveNumber int

	Hash    uint64
	PawnKey uint64 // pawns only

	KingSquare [2]Square
	Checkers   Bitboard // enemy pieces giving check to the side to move
}

// NewPosition returns the initial position.
func NewPosition() *Position {
	return MustParseFEN(StartFEN)
}

func (p *Position) Copy() *Position {
	q := *p
	return &q
}

// PieceAt returns the piece on sq, or NoPiece.
func (p *Position) PieceAt(sq Square) Piece {
	b := SquareBB(sq)
	for c := White; c <= Black; c++ {
		if p.Occupied[c]&b == 0 {
			continue
		}
		for pt := Pawn; pt <= King; pt++ {
			if p.Pieces[c][pt]&b != 0 {
				return NewPiece(pt, c)
			}
		}
	}
	return NoPiece
}

func (p *Position) setPiece(pc Piece, sq Square) {
	p.Pieces[pc.Color()][pc.Type()] |= SquareBB(sq)
}

// refresh derives occupancy, king squares, hash keys and checkers from the
// piece bitboards and the state fields.
func (p *Position) refresh() {
	for c := White; c <= Black; c++ {
		p.Occupied[c] = 0
		for _, bb := range p.Pieces[c] {
			p.Occupied[c] |= bb
		}
		p.KingSquare[c] = p.Pieces[c][King].LSB()
	}
	p.AllOccupied = p.Occupied[White] | p.Occupied[Black]
	p.Hash = p.ComputeHash()
	p.PawnKey = p.ComputePawnKey()
	p.UpdateCheckers()
}

// Validate rejects placements the evaluator cannot score.
func (p *Position) Validate() error {
	for c := White; c <= Black; c++ {
		if n := p.Pieces[c][King].PopCount(); n != 1 {
			return fmt.Errorf("%s has %d kings", c, n)
		}
	}
	if (p.Pieces[White][Pawn]|p.Pieces[Black][Pawn])&(Rank1|Rank8) != 0 {
		return errors.New("pawn on a back rank")
	}
	if them := p.SideToMove.Other(); p.IsSquareAttacked(p.KingSquare[them], p.SideToMove) {
		return fmt.Errorf("%s is in check with %s to move", them, p.SideToMove)
	}
	return nil
}

// InCheck returns true if the side to move is in check.
func (p *Position) InCheck() bool {
	return p.Checkers != 0
}

// Material returns the material signature of one side.
func (p *Position) Material(c Color) Material {
	return NewMaterial(
		p.Pieces[c][Pawn].PopCount(),
		p.Pieces[c][Knight].PopCount(),
		p.Pieces[c][Bishop].PopCount(),
		p.Pieces[c][Rook].PopCount(),
		p.Pieces[c][Queen].PopCount(),
	)
}

// PieceCount returns the number of men on the board, kings included.
func (p *Position) PieceCount() int {
	return p.AllOccupied.PopCount()
}

// Bishops returns the bishops of one color split by square color.
func (p *Position) Bishops(c Color) (light, dark Bitboard) {
	b := p.Pieces[c][Bishop]
	return b & LightSquares, b & DarkSquares
}

// Flip returns the color-mirrored position: ranks are mirrored, piece
// colors swapped and the side to move inverted. Any evaluation that is
// side-symmetric scores Flip() identically from the side to move's view.
func (p *Position) Flip() *Position {
	q := &Position{
		SideToMove:     p.SideToMove.Other(),
		EnPassant:      NoSquare,
		HalfMoveClock:  p.HalfMoveClock,
		FullMoveNumber: p.FullMoveNumber,
	}
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			q.Pieces[c.Other()][pt] = p.Pieces[c][pt].FlipVertical()
		}
	}
	if p.EnPassant != NoSquare {
		q.EnPassant = p.EnPassant.Mirror()
	}
	cr := p.CastlingRights
	q.CastlingRights = (cr&(WhiteKingSideCastle|WhiteQueenSideCastle))<<2 |
		(cr&(BlackKingSideCastle|BlackQueenSideCastle))>>2
	q.refresh()
	return q
}
