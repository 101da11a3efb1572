package board

import (
	"testing"
)

func TestCheckmate(t *testing.T) {
	// Back rank mate: White Ra8, Black Kh8 boxed in by its own pawns
	pos, err := ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	if !pos.InCheck() {
		t.Fatal("Expected black to be in check")
	}
	if pos.HasLegalMoves() {
		t.Errorf("Expected no legal moves, got %v", pos.LegalMoves())
	}
	if !pos.IsCheckmate() {
		t.Error("Expected checkmate but got false")
	}
	if pos.IsStalemate() {
		t.Error("Checkmate reported as stalemate")
	}
}

func TestNotCheckmate(t *testing.T) {
	// King can capture the checking rook
	pos, err := ParseFEN("6Rk/8/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	if pos.IsCheckmate() {
		t.Error("Expected NOT checkmate but got true")
	}

	moves := pos.LegalMoves()
	found := false
	for _, m := range moves {
		if m == "h8g8" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected h8g8 among legal moves, got %v", moves)
	}
}

func TestStalemate(t *testing.T) {
	pos, err := ParseFEN("k7/8/1Q6/8/8/8/8/2K5 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	if !pos.IsStalemate() {
		t.Error("Expected stalemate")
	}
	if pos.IsCheckmate() {
		t.Error("Stalemate reported as checkmate")
	}
}

func TestStartPositionMoves(t *testing.T) {
	moves := NewPosition().LegalMoves()
	if len(moves) != 20 {
		t.Errorf("Start position should have 20 legal moves, got %d", len(moves))
	}
}
