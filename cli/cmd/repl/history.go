package repl

import (
	"encoding/binary"
	"log/slog"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// HistoryFile is the base name of the history database in the cache
// directory.
const HistoryFile = "history.db"

// DefaultHistoryLimit is the number of entries kept by [OpenHistory].
const DefaultHistoryLimit = 1000

var historyBucket = []byte("history")

type historyEntry struct {
	seq  uint64
	line string
}

// History is a list of input lines, oldest first, optionally persisted in a
// bbolt database. Lines are unique: adding a line again moves it to the end.
//
// The zero History keeps entries in memory only. History is safe for
// concurrent use.
type History struct {
	mu      sync.RWMutex
	db      *bolt.DB
	entries []historyEntry
	seq     uint64
	limit   int
}

// OpenHistory opens or creates the history database at path and loads its
// entries.
func OpenHistory(path string) (*History, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, ErrHistory.Wrap(err).With(slog.String("path", path))
	}

	h := &History{db: db, limit: DefaultHistoryLimit}

	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(historyBucket)
		if err != nil {
			return err
		}

		return b.ForEach(func(k, v []byte) error {
			h.entries = append(h.entries, historyEntry{
				seq:  binary.BigEndian.Uint64(k),
				line: string(v),
			})

			return nil
		})
	})
	if err != nil {
		_ = db.Close()

		return nil, ErrHistory.Wrap(err).With(slog.String("path", path))
	}

	if n := len(h.entries); n > 0 {
		h.seq = h.entries[n-1].seq
	}

	return h, nil
}

// Close releases the database. The History remains usable in memory.
func (h *History) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.db == nil {
		return nil
	}

	err := h.db.Close()
	h.db = nil

	return err
}

// Add appends line, removing any earlier copy, and drops the oldest entries
// beyond the limit. Blank lines are ignored.
func (h *History) Add(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.entries); n > 0 && h.entries[n-1].line == line {
		return nil
	}

	var drop []uint64

	for i, e := range h.entries {
		if e.line == line {
			drop = append(drop, e.seq)
			h.entries = append(h.entries[:i], h.entries[i+1:]...)

			break
		}
	}

	h.seq++
	h.entries = append(h.entries, historyEntry{seq: h.seq, line: line})

	if h.limit > 0 && len(h.entries) > h.limit {
		over := len(h.entries) - h.limit
		for _, e := range h.entries[:over] {
			drop = append(drop, e.seq)
		}

		h.entries = h.entries[over:]
	}

	if h.db == nil {
		return nil
	}

	err := h.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(historyBucket)

		for _, seq := range drop {
			if err := b.Delete(historyKey(seq)); err != nil {
				return err
			}
		}

		return b.Put(historyKey(h.seq), []byte(line))
	})
	if err != nil {
		return ErrHistory.Wrap(err)
	}

	return nil
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Entry returns the entry at index i, where 0 is the oldest.
func (h *History) Entry(i int) (string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return "", ErrOutOfBounds
	}

	return h.entries[i].line, nil
}

// Entries returns a copy of all entries, oldest first.
func (h *History) Entries() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	lines := make([]string, len(h.entries))
	for i, e := range h.entries {
		lines[i] = e.line
	}

	return lines
}

func historyKey(seq uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, seq)
}
