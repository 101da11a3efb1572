// Package score defines the score scale shared by the evaluator and the
// tablebase bridge, and renders scores as text.
//
// Scores are centipawns from the side to move's point of view. Scores at or
// beyond MateRange are mates: Mate-n means mate in n plies.
package score

import (
	"strconv"
	"strings"
)

const (
	Mate   = 32000
	MaxPly = 256

	// MateRange is the smallest magnitude that denotes a forced mate.
	MateRange = Mate - MaxPly

	// TablebaseWin is returned for positions a tablebase reports as won.
	// Heuristic scores are clamped strictly inside ±TablebaseWin.
	TablebaseWin = MateRange - 1

	// Invalid means "no opinion". It is outside every legal score.
	Invalid = -Mate - 1

	// BitbaseWin is the base score for a won KPK position.
	BitbaseWin = 800

	// CursedWin is returned for wins that the fifty-move rule turns into draws.
	CursedWin = 1

	Draw = 0

	// Pawn is the number of score units per pawn when printing.
	Pawn = 100
)

// IsMate reports whether s is a mate or tablebase score.
func IsMate(s int) bool {
	return s != Invalid && (s >= TablebaseWin || s <= -TablebaseWin)
}

// MateIn returns the number of moves to mate for a mate score.
// Positive when the side to move mates, negative when it gets mated.
func MateIn(s int) int {
	if s > 0 {
		return (Mate - s + 1) / 2
	}
	return -(Mate + s) / 2
}

// Format renders a score for humans: "+1.25", "-0.40", "+Mate3", "-Mate2",
// "+TbWin", "-TbWin" or "invalid".
func Format(s int) string {
	switch {
	case s == Invalid:
		return "invalid"
	case s >= MateRange:
		return "+Mate" + strconv.Itoa((Mate-s+1)/2)
	case s <= -MateRange:
		return "-Mate" + strconv.Itoa((Mate+s+1)/2)
	case s == TablebaseWin:
		return "+TbWin"
	case s == -TablebaseWin:
		return "-TbWin"
	}

	var sb strings.Builder
	if s < 0 {
		sb.WriteByte('-')
		s = -s
	} else {
		sb.WriteByte('+')
	}
	sb.WriteString(strconv.Itoa(s / Pawn))
	sb.WriteByte('.')
	frac := s % Pawn
	if frac < 10 {
		sb.WriteByte('0')
	}
	sb.WriteString(strconv.Itoa(frac))
	return sb.String()
}

// FormatUCI renders a score the way the UCI "info score" field expects it:
// "cp 125", "mate 3" or "mate -2".
func FormatUCI(s int) string {
	switch {
	case s == Invalid:
		return "cp 0"
	case s >= MateRange || s <= -MateRange:
		return "mate " + strconv.Itoa(MateIn(s))
	}
	return "cp " + strconv.Itoa(s*100/Pawn)
}
