package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

const castlingLetters = "KQkq"

// ParseFEN reads a position in Forsyth-Edwards notation. The two move
// counters may be omitted; they then default to 0 and 1. The result must
// be a legal placement: one king each, no pawn on a back rank and the side
// not to move not in check.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("fen %q: want at least 4 fields, got %d", fen, len(fields))
	}
	p := &Position{EnPassant: NoSquare, FullMoveNumber: 1}
	if err := p.placePieces(fields[0]); err != nil {
		return nil, fmt.Errorf("fen %q: %w", fen, err)
	}

	switch fields[1] {
	case "w":
	case "b":
		p.SideToMove = Black
	default:
		return nil, fmt.Errorf("fen %q: bad side to move %q", fen, fields[1])
	}

	if fields[2] != "-" {
		for _, c := range fields[2] {
			i := strings.IndexRune(castlingLetters, c)
			if i < 0 {
				return nil, fmt.Errorf("fen %q: bad castling flag %q", fen, c)
			}
			p.CastlingRights |= 1 << i
		}
	}

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("fen %q: en passant: %w", fen, err)
		}
		p.EnPassant = sq
	}

	counters := []*int{&p.HalfMoveClock, &p.FullMoveNumber}
	for i, field := range fields[4:min(len(fields), 6)] {
		n, err := strconv.Atoi(field)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("fen %q: bad move counter %q", fen, field)
		}
		*counters[i] = n
	}

	p.refresh()
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("fen %q: %w", fen, err)
	}
	return p, nil
}

// MustParseFEN is ParseFEN for fixed positions; it panics on error.
func MustParseFEN(fen string) *Position {
	p, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Position) placePieces(placement string) error {
	rows := strings.Split(placement, "/")
	if len(rows) != 8 {
		return fmt.Errorf("want 8 ranks, got %d", len(rows))
	}
	for i, row := range rows {
		rank, file := 7-i, 0
		for j := 0; j < len(row); j++ {
			c := row[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			pc := PieceFromChar(c)
			if pc == NoPiece {
				return fmt.Errorf("bad piece %q on rank %d", c, rank+1)
			}
			if file > 7 {
				return fmt.Errorf("rank %d is too long", rank+1)
			}
			p.setPiece(pc, NewSquare(file, rank))
			file++
		}
		if file != 8 {
			return fmt.Errorf("rank %d covers %d files", rank+1, file)
		}
	}
	return nil
}

// ToFEN writes the position in Forsyth-Edwards notation.
func (p *Position) ToFEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		run := 0
		for file := 0; file < 8; file++ {
			pc := p.PieceAt(NewSquare(file, rank))
			if pc == NoPiece {
				run++
				continue
			}
			if run > 0 {
				sb.WriteByte(byte('0' + run))
				run = 0
			}
			sb.WriteString(pc.String())
		}
		if run > 0 {
			sb.WriteByte(byte('0' + run))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	side := "w"
	if p.SideToMove == Black {
		side = "b"
	}
	fmt.Fprintf(&sb, " %s %s %s %d %d", side, p.CastlingRights, p.EnPassant, p.HalfMoveClock, p.FullMoveNumber)
	return sb.String()
}
