package tablebase

import (
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hailam/chesseval/internal/board"
)

// Syzygy gates probes on the Syzygy tables present in a directory. Only
// complete tables (both .rtbw and .rtbz files) count. Positions whose
// material has a local table are answered by the backend prober; a plain
// file scanner cannot decode positions by itself.
type Syzygy struct {
	path      string
	tables    map[string]bool
	maxPieces int
	backend   Prober
	log       zerolog.Logger
}

// InitTB scans path for Syzygy tables and returns the prober together with
// the largest piece count covered. A missing or empty directory yields 0;
// such a prober never finds anything.
func InitTB(path string, backend Prober, logger *zerolog.Logger) (*Syzygy, int) {
	log := zerolog.Nop()
	if logger != nil {
		log = *logger
	}
	s := &Syzygy{
		path:    path,
		tables:  make(map[string]bool),
		backend: backend,
		log:     log,
	}
	for _, name := range availableTables(path) {
		s.tables[name] = true
		s.maxPieces = max(s.maxPieces, countPiecesFromName(name))
	}
	if backend == nil {
		s.maxPieces = 0
	}
	s.log.Info().
		Str("path", path).
		Int("tables", len(s.tables)).
		Int("max_pieces", s.maxPieces).
		Msg("syzygy scan complete")
	return s, s.maxPieces
}

// availableTables returns the sorted names of complete tables in dir.
func availableTables(dir string) []string {
	var files []string
	entries, err := os.ReadDir(dir)
	if err != nil {
		return files
	}

	seen := make(map[string]int)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if base, ok := strings.CutSuffix(name, ".rtbw"); ok {
			seen[base]++
		} else if base, ok := strings.CutSuffix(name, ".rtbz"); ok {
			seen[base]++
		}
	}

	for base, count := range seen {
		if count >= 2 { // Both WDL and DTZ present
			files = append(files, base)
		}
	}

	sort.Strings(files)
	return files
}

// countPiecesFromName counts pieces in a tablebase name like "KQRvKR".
func countPiecesFromName(name string) int {
	count := 0
	for _, c := range strings.ToUpper(name) {
		switch c {
		case 'K', 'Q', 'R', 'B', 'N', 'P':
			count++
		}
	}
	return count
}

// tableName returns the Syzygy name of pos's material with the given side
// listed first, e.g. "KRPvKR".
func tableName(pos *board.Position, first board.Color) string {
	return pos.Material(first).String() + "v" + pos.Material(first.Other()).String()
}

// covers reports whether a local table holds pos. Syzygy names list the
// stronger side first, so both orders are tried.
func (s *Syzygy) covers(pos *board.Position) bool {
	if pos.PieceCount() > s.maxPieces {
		return false
	}
	return s.tables[tableName(pos, board.White)] || s.tables[tableName(pos, board.Black)]
}

func (s *Syzygy) ProbeWDL(pos *board.Position, use50 bool) ProbeResult {
	if !s.covers(pos) {
		return ProbeResult{}
	}
	return s.backend.ProbeWDL(pos, use50)
}

func (s *Syzygy) ProbeRoot(pos *board.Position) RootResult {
	if !s.covers(pos) {
		return notFound
	}
	return s.backend.ProbeRoot(pos)
}

func (s *Syzygy) MaxPieces() int {
	return s.maxPieces
}

// Tables returns the names of the complete tables found.
func (s *Syzygy) Tables() []string {
	names := make([]string, 0, len(s.tables))
	for name := range s.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Path returns the scanned directory.
func (s *Syzygy) Path() string {
	return s.path
}
