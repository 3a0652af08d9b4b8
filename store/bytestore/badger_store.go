package bytestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// BadgerByteStore backs ByteStore with an embedded Badger KV store,
// opening a lightweight read or write transaction per call the way
// AleutianAI's graph snapshot manager uses db.View/db.Update around
// every lookup instead of holding a cursor open across calls.
type BadgerByteStore struct {
	db *badger.DB
}

// OpenBadgerByteStore opens (or creates) a Badger store rooted at dir.
// Callers must call Close when done.
func OpenBadgerByteStore(dir string) (*BadgerByteStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, wrapStoreErr("opening badger store", err)
	}
	return &BadgerByteStore{db: db}, nil
}

func (s *BadgerByteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return wrapStoreErr("closing badger store", err)
	}
	return nil
}

func (s *BadgerByteStore) Put(ctx context.Context, docID uint64, body []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(keyFor(docID), body)
	})
	if err != nil {
		return wrapStoreErr(fmt.Sprintf("put doc %d", docID), err)
	}
	return nil
}

func (s *BadgerByteStore) Get(ctx context.Context, docID uint64) ([]byte, bool, error) {
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(keyFor(docID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			out = append([]byte(nil), val...)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, wrapStoreErr(fmt.Sprintf("get doc %d", docID), err)
	}
	return out, true, nil
}

var _ ByteStore = (*BadgerByteStore)(nil)
