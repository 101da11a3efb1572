package board

import "strings"

// Color is a side: White, Black, or NoColor for an empty square.
type Color uint8

const (
	White Color = iota
	Black
	NoColor
)

// Other returns the opponent.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "none"
}

// PieceType is a colourless piece kind, ordered by value with the king last.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType
)

const pieceLetters = "pnbrqk"

var pieceNames = [...]string{"pawn", "knight", "bishop", "rook", "queen", "king", "none"}

func (pt PieceType) String() string {
	if pt > NoPieceType {
		pt = NoPieceType
	}
	return pieceNames[pt]
}

// Char returns the lowercase FEN letter, or a space for NoPieceType.
func (pt PieceType) Char() byte {
	if pt >= NoPieceType {
		return ' '
	}
	return pieceLetters[pt]
}

// Piece is a coloured piece, packed as the type plus six per colour.
type Piece uint8

const (
	WhitePawn Piece = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
	NoPiece
)

const fenPieces = "PNBRQKpnbrqk"

// NewPiece combines a type and a colour, or returns NoPiece if either is out
// of range.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece(c)*6 + Piece(pt)
}

func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p % 6)
}

func (p Piece) Color() Color {
	if p >= NoPiece {
		return NoColor
	}
	return Color(p / 6)
}

// String returns the FEN letter: uppercase for White.
func (p Piece) String() string {
	if p >= NoPiece {
		return " "
	}
	return fenPieces[p : p+1]
}

// PieceFromChar parses a FEN letter, returning NoPiece for anything else.
func PieceFromChar(c byte) Piece {
	i := strings.IndexByte(fenPieces, c)
	if i < 0 {
		return NoPiece
	}
	return Piece(i)
}
