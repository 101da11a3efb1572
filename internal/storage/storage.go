package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

const probePrefix = "tb:"

// ProbeRecord is a stored tablebase answer.
type ProbeRecord struct {
	WDL    int       `json:"wdl"`
	DTZ    int       `json:"dtz"`
	Stored time.Time `json:"stored"`
}

// Store wraps BadgerDB for persistent storage of tablebase answers.
// It is safe for concurrent use.
type Store struct {
	db  *badger.DB
	log zerolog.Logger
}

// Open opens the store in dir, creating it if needed. An empty dir opens a
// throwaway in-memory store.
func Open(dir string, logger *zerolog.Logger) (*Store, error) {
	log := zerolog.Nop()
	if logger != nil {
		log = *logger
	}

	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil // Disable badger's own logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open probe store %q: %w", dir, err)
	}
	log.Debug().Str("dir", dir).Bool("in_memory", dir == "").Msg("probe store opened")
	return &Store{db: db, log: log}, nil
}

// OpenDefault opens the store in the platform data directory.
func OpenDefault(logger *zerolog.Logger) (*Store, error) {
	dir, err := GetDatabaseDir()
	if err != nil {
		return nil, fmt.Errorf("locate probe store: %w", err)
	}
	return Open(dir, logger)
}

// Close closes the database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func probeKey(hash uint64, use50 bool) []byte {
	flag := 0
	if use50 {
		flag = 1
	}
	return fmt.Appendf(nil, "%s%016x:%d", probePrefix, hash, flag)
}

// GetProbe loads the record stored for a position hash. found is false when
// nothing is stored.
func (s *Store) GetProbe(hash uint64, use50 bool) (rec ProbeRecord, found bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(probeKey(hash, use50))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return ProbeRecord{}, false, fmt.Errorf("get probe %016x: %w", hash, err)
	}
	return rec, found, nil
}

// PutProbe stores rec for a position hash, replacing any earlier record.
func (s *Store) PutProbe(hash uint64, use50 bool, rec ProbeRecord) error {
	if rec.Stored.IsZero() {
		rec.Stored = time.Now()
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode probe: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(probeKey(hash, use50), data)
	})
	if err != nil {
		return fmt.Errorf("put probe %016x: %w", hash, err)
	}
	return nil
}

// CountProbes returns the number of stored records.
func (s *Store) CountProbes() (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(probePrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// DropProbes deletes every stored record.
func (s *Store) DropProbes() error {
	if err := s.db.DropPrefix([]byte(probePrefix)); err != nil {
		return fmt.Errorf("drop probes: %w", err)
	}
	s.log.Info().Msg("probe store cleared")
	return nil
}
