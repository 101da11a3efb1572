package board

import "testing"

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4",
		"8/8/4k3/8/2P5/8/5K2/8 b - - 12 60",
		"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
	}
	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if got := pos.ToFEN(); got != fen {
			t.Errorf("round trip mismatch:\n got %s\nwant %s", got, fen)
		}
	}
}

func TestParseFENRejectsInvalid(t *testing.T) {
	bad := []string{
		"8/8/8/8/8/8/8/8 w - - 0 1",                 // no kings
		"4k3/8/8/8/8/8/8/P3K3 w - - 0 1",            // pawn on first rank
		"4k3/4R3/8/8/8/8/8/4K3 w - - 0 1",           // side not to move in check
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq", // 7 ranks
	}
	for _, fen := range bad {
		if _, err := ParseFEN(fen); err == nil {
			t.Errorf("ParseFEN(%q) should fail", fen)
		}
	}
}

func TestPawnKeyIgnoresPieces(t *testing.T) {
	a := MustParseFEN("r3k3/pp3ppp/8/8/8/8/PP3PPP/4K2R w K - 0 1")
	b := MustParseFEN("4k2r/pp3ppp/8/3n4/8/2B5/PP3PPP/R3K3 b - - 0 1")
	if a.PawnKey != b.PawnKey {
		t.Error("positions with identical pawns should share a pawn key")
	}
	if a.Hash == b.Hash {
		t.Error("different positions should have different full hashes")
	}

	c := MustParseFEN("r3k3/pp3ppp/8/8/8/8/PP2P1PP/4K2R w K - 0 1")
	if a.PawnKey == c.PawnKey {
		t.Error("different pawn placement should change the pawn key")
	}
}

func TestFlip(t *testing.T) {
	pos := MustParseFEN("r1bqk2r/pppp1ppp/2n2n2/2b1p3/2B1P3/3P1N2/PPP2PPP/RNBQK2R w Kkq - 1 5")
	flipped := pos.Flip()

	want := "rnbqk2r/ppp2ppp/3p1n2/2b1p3/2B1P3/2N2N2/PPPP1PPP/R1BQK2R b KQk - 1 5"
	if got := flipped.ToFEN(); got != want {
		t.Errorf("Flip:\n got %s\nwant %s", got, want)
	}

	back := flipped.Flip()
	if back.ToFEN() != pos.ToFEN() {
		t.Errorf("double flip should restore the position, got %s", back.ToFEN())
	}
	if back.Hash != pos.Hash || back.PawnKey != pos.PawnKey {
		t.Error("double flip should restore hash keys")
	}

	start := NewPosition().Flip()
	if start.ToFEN() != "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1" {
		t.Errorf("flipped start position: %s", start.ToFEN())
	}
}

func TestFlipEnPassant(t *testing.T) {
	pos := MustParseFEN("rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3")
	flipped := pos.Flip()
	if flipped.EnPassant != F3 {
		t.Errorf("expected en passant f3, got %s", flipped.EnPassant)
	}
}

func TestMaterialSignature(t *testing.T) {
	pos := NewPosition()
	for c := White; c <= Black; c++ {
		m := pos.Material(c)
		if m.Level() != MaxMaterialLevel {
			t.Errorf("%s start level = %d, want %d", c, m.Level(), MaxMaterialLevel)
		}
		if m.Pawns() != 8 || m.Knights() != 2 || m.Bishops() != 2 || m.Rooks() != 2 || m.Queens() != 1 {
			t.Errorf("%s start counts wrong: %s", c, m)
		}
		if m.String() != "KQRRBBNNPPPPPPPP" {
			t.Errorf("String() = %s", m.String())
		}
	}

	tests := []struct {
		fen   string
		white Key
		black Key
		level [2]int
	}{
		{"8/8/4k3/8/8/8/8/4K3 w - - 0 1", KeyBare, KeyBare, [2]int{0, 0}},
		{"8/8/4k3/8/8/8/8/2BNK3 w - - 0 1", KeyBN, KeyBare, [2]int{6, 0}},
		{"8/8/4k3/8/1P6/8/8/4K1B1 w - - 0 1", KeyBP, KeyBare, [2]int{3, 0}},
		{"8/8/4k3/2nn4/8/8/8/4K3 w - - 0 1", KeyBare, KeyNN, [2]int{0, 6}},
	}
	for _, tc := range tests {
		p := MustParseFEN(tc.fen)
		w, b := p.Material(White), p.Material(Black)
		if w.Key() != tc.white || b.Key() != tc.black {
			t.Errorf("%s: keys %x/%x, want %x/%x", tc.fen, w.Key(), b.Key(), tc.white, tc.black)
		}
		if w.Level() != tc.level[0] || b.Level() != tc.level[1] {
			t.Errorf("%s: levels %d/%d, want %v", tc.fen, w.Level(), b.Level(), tc.level)
		}
	}
}

func TestMaterialLevelCap(t *testing.T) {
	m := NewMaterial(0, 2, 2, 2, 3)
	if m.Level() != MaxMaterialLevel {
		t.Errorf("level should saturate at %d, got %d", MaxMaterialLevel, m.Level())
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b Square
		want int
	}{
		{A1, A1, 0},
		{A1, H8, 7},
		{E4, D5, 1},
		{E1, E8, 7},
		{B2, D7, 5},
	}
	for _, tc := range tests {
		if got := Distance(tc.a, tc.b); got != tc.want {
			t.Errorf("Distance(%s, %s) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestSquareColor(t *testing.T) {
	if A1.IsLight() {
		t.Error("a1 is a dark square")
	}
	if !H1.IsLight() || !A8.IsLight() || H8.IsLight() {
		t.Error("corner colors wrong")
	}
}
