// Package bytestore implements ByteStore, the content-addressed raw-bytes
// capability used to hold article bodies keyed by doc_id. The only
// contract callers see is get(key)->bytes / put(key,bytes); everything
// else (Badger, an in-memory map) is an interchangeable backing engine.
package bytestore

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/DanielHalachev/WikiSearch/wikierrors"
)

// ByteStore is the narrow get/put capability C9's snippet extraction and
// the ingest pipeline need for raw article bodies. Keys are the decimal
// utf8 encoding of a doc_id, matching the relational schema's key shape.
type ByteStore interface {
	Put(ctx context.Context, docID uint64, body []byte) error
	Get(ctx context.Context, docID uint64) ([]byte, bool, error)
}

func keyFor(docID uint64) []byte {
	return []byte(strconv.FormatUint(docID, 10))
}

// InMemoryByteStore is a map-backed ByteStore for tests and for
// environments without a writable data directory.
type InMemoryByteStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewInMemoryByteStore() *InMemoryByteStore {
	return &InMemoryByteStore{data: make(map[string][]byte)}
}

func (s *InMemoryByteStore) Put(ctx context.Context, docID uint64, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(body))
	copy(stored, body)
	s.data[string(keyFor(docID))] = stored
	return nil
}

func (s *InMemoryByteStore) Get(ctx context.Context, docID uint64) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[string(keyFor(docID))]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

var _ ByteStore = (*InMemoryByteStore)(nil)

func wrapStoreErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", wikierrors.ErrStore, op, err)
}
