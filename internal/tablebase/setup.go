package tablebase

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hailam/chesseval/internal/storage"
)

// DefaultDir selects the platform data directory for SyzygyPath or CacheDir.
const DefaultDir = "default"

// Config selects the tablebase sources a command wires together.
type Config struct {
	SyzygyPath   string // directory scanned for .rtbw/.rtbz pairs, or DefaultDir
	Lichess      bool   // use the Lichess API as the probing backend
	LichessURL   string // overrides DefaultLichessURL
	CacheDir     string // badger directory for answers that survive restarts, or DefaultDir
	CacheEntries int    // in-memory cache size; 0 means 100000
}

// Open builds the prober chain described by cfg: an in-memory cache in
// front of the optional persistent cache, in front of the Syzygy gate or the
// bare Lichess prober. Without a backend the result never finds anything.
// The returned close function releases the persistent cache.
func Open(cfg Config, logger *zerolog.Logger) (Prober, func() error, error) {
	log := zerolog.Nop()
	if logger != nil {
		log = *logger
	}
	noop := func() error { return nil }

	var backend Prober
	if cfg.Lichess {
		lp := NewLichessProber(logger)
		if cfg.LichessURL != "" {
			lp.BaseURL = cfg.LichessURL
		}
		backend = lp
	}

	if cfg.SyzygyPath == DefaultDir {
		dir, err := storage.GetSyzygyDir()
		if err != nil {
			return nil, nil, fmt.Errorf("locate syzygy directory: %w", err)
		}
		cfg.SyzygyPath = dir
	}

	var inner Prober
	switch {
	case cfg.SyzygyPath != "":
		s, n := InitTB(cfg.SyzygyPath, backend, logger)
		if n == 0 {
			log.Warn().Str("path", s.Path()).Msg("no usable syzygy tables")
			return NoopProber{}, noop, nil
		}
		inner = s
	case backend != nil:
		inner = backend
	default:
		return NoopProber{}, noop, nil
	}

	closeFn := noop
	if cfg.CacheDir != "" {
		var store *storage.Store
		var err error
		if cfg.CacheDir == DefaultDir {
			store, err = storage.OpenDefault(logger)
		} else {
			store, err = storage.Open(cfg.CacheDir, logger)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("open tablebase cache: %w", err)
		}
		inner = NewPersistentProber(inner, store, logger)
		closeFn = store.Close
	}

	size := cfg.CacheEntries
	if size <= 0 {
		size = 100000
	}
	return NewCachedProber(inner, size), closeFn, nil
}
