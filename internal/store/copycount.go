package store

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"

	"github.com/dgraph-io/badger/v4"
)

// IncrementCopyCount adds one to the entry's copy counter and returns the new value.
func (s *Store) IncrementCopyCount(ctx context.Context, entryID int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if entryID <= 0 {
		return 0, ErrInvalidEntryID
	}

	key := copyCountKey(entryID)
	defer releaseKey(key)

	s.counterMu.Lock()
	defer s.counterMu.Unlock()

	var next uint64
	err := s.update(func(txn *badger.Txn) error {
		current, err := readCounter(txn, key)
		if err != nil {
			return err
		}
		next = current + 1

		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, next)
		return txn.Set(key, buf)
	})
	if err != nil {
		return 0, fmt.Errorf("increment copy count: %w", err)
	}
	return int(next), nil
}

// CopyCount returns the counter for one entry; unknown entries have zero copies.
func (s *Store) CopyCount(ctx context.Context, entryID int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	key := copyCountKey(entryID)
	defer releaseKey(key)

	var n uint64
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		n, err = readCounter(txn, key)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("get copy count: %w", err)
	}
	return int(n), nil
}

// CopyCounts returns every stored counter keyed by entry id.
func (s *Store) CopyCounts(ctx context.Context) (map[int]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := []byte(copyCountPrefix)
	counts := make(map[int]int)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			entryID, err := strconv.Atoi(string(item.Key()[len(prefix):]))
			if err != nil {
				if s.logger != nil {
					s.logger.Warn("skipping malformed copy counter key", "key", string(item.Key()))
				}
				continue
			}
			err = item.Value(func(val []byte) error {
				if len(val) != 8 {
					return fmt.Errorf("copy counter %d: bad length %d", entryID, len(val))
				}
				counts[entryID] = int(binary.BigEndian.Uint64(val))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list copy counts: %w", err)
	}
	return counts, nil
}

func readCounter(txn *badger.Txn, key []byte) (uint64, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var n uint64
	err = item.Value(func(val []byte) error {
		if len(val) != 8 {
			return fmt.Errorf("bad counter length %d", len(val))
		}
		n = binary.BigEndian.Uint64(val)
		return nil
	})
	return n, err
}
