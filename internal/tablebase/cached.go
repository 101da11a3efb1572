package tablebase

import (
	"sync"
	"sync/atomic"

	"github.com/hailam/chesseval/internal/board"
)

// CachedProber memoises found WDL probes of another prober in a bounded map.
// Misses are not kept, so a backend that failed once is asked again. When
// the map is full an arbitrary half of it is dropped. Root probes pass
// through.
type CachedProber struct {
	inner Prober
	limit int

	mu      sync.Mutex
	entries map[uint64]ProbeResult

	hits, misses atomic.Uint64
}

// NewCachedProber wraps inner with room for size results.
func NewCachedProber(inner Prober, size int) *CachedProber {
	size = max(size, 2)
	return &CachedProber{
		inner:   inner,
		limit:   size,
		entries: make(map[uint64]ProbeResult, size),
	}
}

// cacheKey folds the fifty-move setting into the position hash, since the
// two settings can disagree about cursed wins.
func cacheKey(pos *board.Position, use50 bool) uint64 {
	if use50 {
		return pos.Hash ^ 1
	}
	return pos.Hash
}

func (cp *CachedProber) lookup(key uint64) (ProbeResult, bool) {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	r, ok := cp.entries[key]
	return r, ok
}

func (cp *CachedProber) store(key uint64, r ProbeResult) {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	if len(cp.entries) >= cp.limit {
		drop := cp.limit / 2
		for k := range cp.entries {
			if drop == 0 {
				break
			}
			delete(cp.entries, k)
			drop--
		}
	}
	cp.entries[key] = r
}

func (cp *CachedProber) ProbeWDL(pos *board.Position, use50 bool) ProbeResult {
	key := cacheKey(pos, use50)
	if r, ok := cp.lookup(key); ok {
		cp.hits.Add(1)
		return r
	}
	cp.misses.Add(1)
	r := cp.inner.ProbeWDL(pos, use50)
	if r.Found {
		cp.store(key, r)
	}
	return r
}

func (cp *CachedProber) ProbeRoot(pos *board.Position) RootResult {
	return cp.inner.ProbeRoot(pos)
}

func (cp *CachedProber) MaxPieces() int { return cp.inner.MaxPieces() }

// HitRate is the percentage of WDL probes answered from memory.
func (cp *CachedProber) HitRate() float64 {
	h, m := cp.hits.Load(), cp.misses.Load()
	if h+m == 0 {
		return 0
	}
	return 100 * float64(h) / float64(h+m)
}

// CacheSize returns the number of stored results.
func (cp *CachedProber) CacheSize() int {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	return len(cp.entries)
}

// Clear forgets every result and resets the hit counters.
func (cp *CachedProber) Clear() {
	cp.mu.Lock()
	clear(cp.entries)
	cp.mu.Unlock()
	cp.hits.Store(0)
	cp.misses.Store(0)
}
