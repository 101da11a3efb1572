package tablebase

import (
	"github.com/rs/zerolog"

	"github.com/hailam/chesseval/internal/board"
	"github.com/hailam/chesseval/internal/storage"
)

// PersistentProber keeps found WDL answers in a badger store so they
// survive restarts. Misses are not stored; the inner prober is asked again
// next time.
type PersistentProber struct {
	inner Prober
	store *storage.Store
	log   zerolog.Logger
}

// NewPersistentProber wraps inner with store. The store stays owned by the
// caller.
func NewPersistentProber(inner Prober, store *storage.Store, logger *zerolog.Logger) *PersistentProber {
	log := zerolog.Nop()
	if logger != nil {
		log = *logger
	}
	return &PersistentProber{inner: inner, store: store, log: log}
}

func (pp *PersistentProber) ProbeWDL(pos *board.Position, use50 bool) ProbeResult {
	rec, found, err := pp.store.GetProbe(pos.Hash, use50)
	if err != nil {
		pp.log.Warn().Err(err).Msg("tablebase cache read failed")
	} else if found {
		return ProbeResult{Found: true, WDL: WDL(rec.WDL), DTZ: rec.DTZ}
	}

	r := pp.inner.ProbeWDL(pos, use50)
	if !r.Found {
		return r
	}
	if err := pp.store.PutProbe(pos.Hash, use50, storage.ProbeRecord{WDL: int(r.WDL), DTZ: r.DTZ}); err != nil {
		pp.log.Warn().Err(err).Msg("tablebase cache write failed")
	}
	return r
}

func (pp *PersistentProber) ProbeRoot(pos *board.Position) RootResult {
	return pp.inner.ProbeRoot(pos)
}

func (pp *PersistentProber) MaxPieces() int {
	return pp.inner.MaxPieces()
}
