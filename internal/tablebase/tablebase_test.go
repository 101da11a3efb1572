package tablebase

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/hailam/chesseval/internal/board"
	"github.com/hailam/chesseval/internal/score"
	"github.com/hailam/chesseval/internal/storage"
)

// countingProber answers every probe with a fixed result and counts calls.
type countingProber struct {
	calls  atomic.Int64
	result ProbeResult
	pieces int
}

func (p *countingProber) ProbeWDL(_ *board.Position, use50 bool) ProbeResult {
	p.calls.Add(1)
	r := p.result
	if !use50 {
		r.WDL = ignore50(r.WDL)
	}
	return r
}

func (p *countingProber) ProbeRoot(*board.Position) RootResult {
	p.calls.Add(1)
	return RootResult{Found: p.result.Found, WDL: p.result.WDL, DTZ: p.result.DTZ, Moves: []string{"a1a8"}}
}

func (p *countingProber) MaxPieces() int { return p.pieces }

// flakyProber fails its first failures probes, then answers a win.
type flakyProber struct {
	calls    atomic.Int64
	failures int64
}

func (p *flakyProber) ProbeWDL(*board.Position, bool) ProbeResult {
	if p.calls.Add(1) <= p.failures {
		return ProbeResult{}
	}
	return ProbeResult{Found: true, WDL: WDLWin}
}

func (p *flakyProber) ProbeRoot(*board.Position) RootResult { return notFound }
func (p *flakyProber) MaxPieces() int                       { return 5 }

const krk = "8/8/8/8/8/3k4/8/R3K3 w - - 0 1"

func TestNoopProber(t *testing.T) {
	prober := NoopProber{}

	if prober.MaxPieces() != 0 {
		t.Errorf("NoopProber MaxPieces should be 0, got %d", prober.MaxPieces())
	}

	pos := board.NewPosition()
	if prober.ProbeWDL(pos, true).Found {
		t.Error("NoopProber should not find anything")
	}

	root := prober.ProbeRoot(pos)
	if root.Found || root.DTZ != -1 {
		t.Errorf("NoopProber ProbeRoot = %+v, want not found with DTZ -1", root)
	}
}

func TestWDLToScore(t *testing.T) {
	tests := []struct {
		wdl   WDL
		use50 bool
		want  int
	}{
		{WDLWin, true, score.TablebaseWin},
		{WDLWin, false, score.TablebaseWin},
		{WDLCursedWin, true, score.CursedWin},
		{WDLCursedWin, false, score.TablebaseWin},
		{WDLDraw, true, score.Draw},
		{WDLBlessedLoss, true, -score.CursedWin},
		{WDLBlessedLoss, false, -score.TablebaseWin},
		{WDLLoss, true, -score.TablebaseWin},
	}

	for _, tc := range tests {
		if got := WDLToScore(tc.wdl, tc.use50); got != tc.want {
			t.Errorf("WDLToScore(%v, %v) = %d, want %d", tc.wdl, tc.use50, got, tc.want)
		}
	}
}

func TestWDLString(t *testing.T) {
	tests := map[WDL]string{
		WDLLoss:        "loss",
		WDLBlessedLoss: "blessed-loss",
		WDLDraw:        "draw",
		WDLCursedWin:   "cursed-win",
		WDLWin:         "win",
		WDL(7):         "unknown",
	}
	for w, want := range tests {
		if w.String() != want {
			t.Errorf("WDL(%d).String() = %q, want %q", int(w), w.String(), want)
		}
	}
}

func TestCategoryToWDL(t *testing.T) {
	tests := []struct {
		category string
		want     WDL
		ok       bool
	}{
		{"win", WDLWin, true},
		{"syzygy-win", WDLWin, true},
		{"maybe-win", WDLCursedWin, true},
		{"cursed-win", WDLCursedWin, true},
		{"draw", WDLDraw, true},
		{"blessed-loss", WDLBlessedLoss, true},
		{"maybe-loss", WDLBlessedLoss, true},
		{"loss", WDLLoss, true},
		{"unknown", WDLDraw, false},
	}
	for _, tc := range tests {
		got, ok := categoryToWDL(tc.category)
		if got != tc.want || ok != tc.ok {
			t.Errorf("categoryToWDL(%q) = %v, %v; want %v, %v", tc.category, got, ok, tc.want, tc.ok)
		}
	}
}

func lichessServer(t *testing.T, body string) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fen := r.URL.Query().Get("fen")
		if strings.Contains(fen, " ") || !strings.HasPrefix(fen, "8/8/8/8/8/3k4/8/R3K3_w") {
			http.Error(w, "bad fen", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

const krkResponse = `{
	"category": "cursed-win",
	"dtz": 21,
	"moves": [
		{"uci": "e1f1", "category": "blessed-loss", "dtz": -30},
		{"uci": "a1a3", "category": "blessed-loss", "dtz": -20},
		{"uci": "h1h8", "category": "blessed-loss", "dtz": -2},
		{"uci": "a1b1", "category": "draw", "dtz": 0}
	]
}`

func TestLichessProbeWDL(t *testing.T) {
	srv, hits := lichessServer(t, krkResponse)
	lp := NewLichessProber(nil)
	lp.BaseURL = srv.URL
	pos := board.MustParseFEN(krk)

	r := lp.ProbeWDL(pos, true)
	if !r.Found || r.WDL != WDLCursedWin || r.DTZ != 21 {
		t.Errorf("ProbeWDL(use50) = %+v, want cursed win with DTZ 21", r)
	}
	if r := lp.ProbeWDL(pos, false); r.WDL != WDLWin {
		t.Errorf("ProbeWDL(no 50) WDL = %v, want win", r.WDL)
	}
	if hits.Load() != 2 {
		t.Errorf("server hits = %d, want 2", hits.Load())
	}
}

func TestLichessProbeRoot(t *testing.T) {
	srv, _ := lichessServer(t, krkResponse)
	lp := NewLichessProber(nil)
	lp.BaseURL = srv.URL

	r := lp.ProbeRoot(board.MustParseFEN(krk))
	if !r.Found || r.WDL != WDLCursedWin {
		t.Fatalf("ProbeRoot = %+v, want found cursed win", r)
	}
	// h1h8 is not legal and a1b1 does not keep the value.
	if want := []string{"a1a3", "e1f1"}; !slices.Equal(r.Moves, want) {
		t.Errorf("Moves = %v, want %v", r.Moves, want)
	}
	if r.DTZ != 20 {
		t.Errorf("DTZ = %d, want 20", r.DTZ)
	}
}

func TestLichessFailures(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		body string
	}{
		{"server error", "8/8/8/8/8/8/8/K6k w - - 0 1", "{}"},
		{"unknown category", krk, `{"category": "unknown"}`},
		{"malformed", krk, `{"category":`},
		{"too many pieces", board.StartFEN, krkResponse},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := lichessServer(t, tc.body)
			lp := NewLichessProber(nil)
			lp.BaseURL = srv.URL
			pos := board.MustParseFEN(tc.fen)
			if r := lp.ProbeWDL(pos, true); r.Found {
				t.Errorf("ProbeWDL = %+v, want not found", r)
			}
			if r := lp.ProbeRoot(pos); r.Found || r.DTZ != -1 {
				t.Errorf("ProbeRoot = %+v, want not found", r)
			}
		})
	}
}

func TestCachedProber(t *testing.T) {
	inner := &countingProber{result: ProbeResult{Found: true, WDL: WDLCursedWin, DTZ: 5}, pieces: 5}
	cp := NewCachedProber(inner, 16)
	pos := board.MustParseFEN(krk)

	for range 3 {
		if r := cp.ProbeWDL(pos, true); r.WDL != WDLCursedWin {
			t.Fatalf("ProbeWDL(use50) WDL = %v", r.WDL)
		}
	}
	// The fifty-move setting is part of the key.
	if r := cp.ProbeWDL(pos, false); r.WDL != WDLWin {
		t.Errorf("ProbeWDL(no 50) WDL = %v, want win", r.WDL)
	}
	if inner.calls.Load() != 2 {
		t.Errorf("inner calls = %d, want 2", inner.calls.Load())
	}
	if cp.CacheSize() != 2 {
		t.Errorf("CacheSize = %d, want 2", cp.CacheSize())
	}
	if hr := cp.HitRate(); hr != 50 {
		t.Errorf("HitRate = %v, want 50", hr)
	}
	if cp.MaxPieces() != 5 {
		t.Errorf("MaxPieces = %d, want 5", cp.MaxPieces())
	}

	cp.Clear()
	if cp.CacheSize() != 0 || cp.HitRate() != 0 {
		t.Errorf("after Clear: size %d, hit rate %v", cp.CacheSize(), cp.HitRate())
	}
}

func TestCachedProberRetriesMisses(t *testing.T) {
	inner := &flakyProber{failures: 1}
	cp := NewCachedProber(inner, 16)
	pos := board.MustParseFEN(krk)

	if r := cp.ProbeWDL(pos, true); r.Found {
		t.Fatalf("first ProbeWDL found = true, want a miss")
	}
	if cp.CacheSize() != 0 {
		t.Errorf("CacheSize after a miss = %d, want 0", cp.CacheSize())
	}
	if r := cp.ProbeWDL(pos, true); !r.Found || r.WDL != WDLWin {
		t.Fatalf("second ProbeWDL = %+v, want a found win", r)
	}
	if r := cp.ProbeWDL(pos, true); !r.Found {
		t.Fatalf("third ProbeWDL found = false")
	}
	if got := inner.calls.Load(); got != 2 {
		t.Errorf("inner calls = %d, want 2", got)
	}
}

func TestCachedProberEviction(t *testing.T) {
	inner := &countingProber{result: ProbeResult{Found: true}}
	cp := NewCachedProber(inner, 4)
	pos := board.MustParseFEN(krk)
	for i := range 20 {
		p := pos.Copy()
		p.Hash = uint64(i) << 8
		cp.ProbeWDL(p, true)
		if cp.CacheSize() > 4 {
			t.Fatalf("CacheSize = %d exceeds 4", cp.CacheSize())
		}
	}
}

func writeTables(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestInitTB(t *testing.T) {
	dir := writeTables(t,
		"KRvK.rtbw", "KRvK.rtbz",
		"KRBvKN.rtbw", "KRBvKN.rtbz",
		"KQvK.rtbw", // no DTZ file
		"README.txt",
	)
	backend := &countingProber{result: ProbeResult{Found: true, WDL: WDLWin}, pieces: 7}
	s, n := InitTB(dir, backend, nil)
	if n != 5 || s.MaxPieces() != 5 {
		t.Errorf("InitTB pieces = %d (MaxPieces %d), want 5", n, s.MaxPieces())
	}
	if s.Path() != dir {
		t.Errorf("Path = %q, want %q", s.Path(), dir)
	}
	if want := []string{"KRBvKN", "KRvK"}; !slices.Equal(s.Tables(), want) {
		t.Errorf("Tables = %v, want %v", s.Tables(), want)
	}

	tests := []struct {
		fen   string
		found bool
	}{
		{krk, true},
		{"8/8/8/8/8/3K4/8/r3k3 b - - 0 1", true}, // colours reversed
		{"8/8/8/8/8/3k4/8/Q3K3 w - - 0 1", false},
		{board.StartFEN, false},
	}
	for _, tc := range tests {
		pos := board.MustParseFEN(tc.fen)
		if r := s.ProbeWDL(pos, true); r.Found != tc.found {
			t.Errorf("ProbeWDL(%s).Found = %v, want %v", tc.fen, r.Found, tc.found)
		}
		if r := s.ProbeRoot(pos); r.Found != tc.found {
			t.Errorf("ProbeRoot(%s).Found = %v, want %v", tc.fen, r.Found, tc.found)
		}
	}
	if backend.calls.Load() != 4 {
		t.Errorf("backend calls = %d, want 4", backend.calls.Load())
	}
}

func TestInitTBEmpty(t *testing.T) {
	for _, dir := range []string{t.TempDir(), filepath.Join(t.TempDir(), "missing")} {
		s, n := InitTB(dir, &countingProber{}, nil)
		if n != 0 || len(s.Tables()) != 0 {
			t.Errorf("InitTB(%s) = %d pieces, %d tables; want none", dir, n, len(s.Tables()))
		}
		if s.ProbeWDL(board.MustParseFEN(krk), true).Found {
			t.Error("empty Syzygy prober found a position")
		}
	}
}

func TestCountPiecesFromName(t *testing.T) {
	tests := map[string]int{"KvK": 2, "KRvK": 3, "KQRvKR": 5, "kbnvk": 4}
	for name, want := range tests {
		if got := countPiecesFromName(name); got != want {
			t.Errorf("countPiecesFromName(%q) = %d, want %d", name, got, want)
		}
	}
}

func TestPersistentProber(t *testing.T) {
	store, err := storage.Open("", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	inner := &countingProber{result: ProbeResult{Found: true, WDL: WDLBlessedLoss, DTZ: 12}, pieces: 5}
	pp := NewPersistentProber(inner, store, nil)
	pos := board.MustParseFEN(krk)

	for range 3 {
		r := pp.ProbeWDL(pos, true)
		if !r.Found || r.WDL != WDLBlessedLoss || r.DTZ != 12 {
			t.Fatalf("ProbeWDL = %+v", r)
		}
	}
	if inner.calls.Load() != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls.Load())
	}
	if n, err := store.CountProbes(); err != nil || n != 1 {
		t.Errorf("CountProbes = %d, %v; want 1", n, err)
	}

	// Misses are not stored.
	miss := NewPersistentProber(NoopProber{}, store, nil)
	if miss.ProbeWDL(board.NewPosition(), true).Found {
		t.Error("miss reported as found")
	}
	if n, _ := store.CountProbes(); n != 1 {
		t.Errorf("CountProbes after miss = %d, want 1", n)
	}
	if pp.MaxPieces() != 5 || !pp.ProbeRoot(pos).Found {
		t.Error("PersistentProber does not delegate MaxPieces and ProbeRoot")
	}
}

func TestOpen(t *testing.T) {
	srv, hits := lichessServer(t, krkResponse)
	pos := board.MustParseFEN(krk)

	t.Run("nothing configured", func(t *testing.T) {
		p, closeFn, err := Open(Config{}, nil)
		if err != nil {
			t.Fatal(err)
		}
		defer closeFn()
		if p.MaxPieces() != 0 || p.ProbeWDL(pos, true).Found {
			t.Error("empty configuration should never find anything")
		}
	})

	t.Run("syzygy without tables", func(t *testing.T) {
		p, closeFn, err := Open(Config{SyzygyPath: t.TempDir(), Lichess: true, LichessURL: srv.URL}, nil)
		if err != nil {
			t.Fatal(err)
		}
		defer closeFn()
		if p.MaxPieces() != 0 {
			t.Errorf("MaxPieces = %d, want 0", p.MaxPieces())
		}
	})

	t.Run("lichess with persistent cache", func(t *testing.T) {
		dir := t.TempDir()
		before := hits.Load()
		p, closeFn, err := Open(Config{Lichess: true, LichessURL: srv.URL, CacheDir: dir, CacheEntries: 8}, nil)
		if err != nil {
			t.Fatal(err)
		}
		if r := p.ProbeWDL(pos, true); !r.Found || r.WDL != WDLCursedWin {
			t.Fatalf("ProbeWDL = %+v", r)
		}
		if err := closeFn(); err != nil {
			t.Fatal(err)
		}

		// A fresh chain over the same directory answers from disk.
		p, closeFn, err = Open(Config{Lichess: true, LichessURL: srv.URL, CacheDir: dir}, nil)
		if err != nil {
			t.Fatal(err)
		}
		defer closeFn()
		if r := p.ProbeWDL(pos, true); !r.Found || r.WDL != WDLCursedWin {
			t.Fatalf("ProbeWDL after reopen = %+v", r)
		}
		if got := hits.Load() - before; got != 1 {
			t.Errorf("server hits = %d, want 1", got)
		}
	})
}

func TestOpenDefaultDirs(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	srv, _ := lichessServer(t, krkResponse)

	p, closeFn, err := Open(Config{SyzygyPath: DefaultDir, Lichess: true, LichessURL: srv.URL, CacheDir: DefaultDir}, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer closeFn()
	// The default syzygy directory starts out empty.
	if p.MaxPieces() != 0 {
		t.Errorf("MaxPieces = %d, want 0", p.MaxPieces())
	}
}
