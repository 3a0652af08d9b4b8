// Package semanticindex implements the dense-vector ANN index over
// chunked document embeddings: chromem-go in-memory collection, guarded
// by a sync.RWMutex since chromem-go makes no concurrency guarantee of
// its own beyond the collection's internal lock, with an explicit
// save_threshold-gated atomic snapshot to disk.
package semanticindex

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strconv"
	"sync"

	"github.com/DanielHalachev/WikiSearch/embedding"
	"github.com/DanielHalachev/WikiSearch/schema"
	"github.com/philippgille/chromem-go"
)

const metadataDocID = "doc_id"

// SemanticIndex composes an embedding.Provider with a chromem-go
// collection to realize the multi-valued-key ANN index: one key per
// segment, many segments per doc_id, grouped back together at query
// time.
type SemanticIndex struct {
	mu         sync.RWMutex
	db         *chromem.DB
	collection *chromem.Collection
	provider   embedding.Provider

	maxSegmentLen int
	saveThreshold int
	persistPath   string
	sinceFlush    int
}

// Option configures a SemanticIndex.
type Option func(*SemanticIndex)

func WithMaxSegmentLen(n int) Option {
	return func(s *SemanticIndex) { s.maxSegmentLen = n }
}

// WithSaveThreshold sets how many Store calls to batch before an
// automatic Flush. 0 disables automatic flushing; callers still get an
// explicit Flush/Close.
func WithSaveThreshold(n int) Option {
	return func(s *SemanticIndex) { s.saveThreshold = n }
}

// New builds a SemanticIndex. If persistPath is non-empty and a prior
// snapshot exists there, it is loaded into a fresh in-memory collection
// before serving traffic.
func New(provider embedding.Provider, collectionName, persistPath string, opts ...Option) (*SemanticIndex, error) {
	db := chromem.NewDB()

	if persistPath != "" {
		if _, err := os.Stat(persistPath); err == nil {
			if err := db.ImportFromFile(persistPath, ""); err != nil {
				return nil, fmt.Errorf("loading semantic index snapshot: %w", err)
			}
		}
	}

	collection, err := db.GetOrCreateCollection(collectionName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("creating semantic index collection: %w", err)
	}

	s := &SemanticIndex{
		db:            db,
		collection:    collection,
		provider:      provider,
		maxSegmentLen: 500,
		saveThreshold: 10,
		persistPath:   persistPath,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Store chunks text into segments, embeds each, and adds one ANN entry
// per segment tagged with docID in metadata. Every saveThreshold calls
// (and on Close), the collection is flushed to disk atomically.
func (s *SemanticIndex) Store(ctx context.Context, docID uint64, text string) error {
	segments := s.provider.Split(text, s.maxSegmentLen)
	if len(segments) == 0 {
		return nil
	}

	vectors, err := s.provider.EncodeBatch(ctx, segments)
	if err != nil {
		return fmt.Errorf("embedding segments for doc %d: %w", docID, err)
	}

	docs := make([]chromem.Document, len(segments))
	for i, segment := range segments {
		embedding32 := make([]float32, len(vectors[i]))
		for j, v := range vectors[i] {
			embedding32[j] = float32(v)
		}
		docs[i] = chromem.Document{
			ID:        fmt.Sprintf("%d:%d", docID, i),
			Content:   segment,
			Metadata:  map[string]string{metadataDocID: strconv.FormatUint(docID, 10)},
			Embedding: embedding32,
		}
	}

	s.mu.Lock()
	err = s.collection.AddDocuments(ctx, docs, runtime.NumCPU())
	s.sinceFlush++
	shouldFlush := s.saveThreshold > 0 && s.sinceFlush >= s.saveThreshold
	if shouldFlush {
		s.sinceFlush = 0
	}
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("adding segments for doc %d: %w", docID, err)
	}

	if shouldFlush {
		if err := s.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// Flush atomically persists the collection: write to a temp file, then
// rename over persistPath. A no-op when persistPath is empty.
func (s *SemanticIndex) Flush() error {
	if s.persistPath == "" {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	tmp := s.persistPath + ".tmp"
	if err := s.db.ExportToFile(tmp, false, ""); err != nil {
		return fmt.Errorf("exporting semantic index snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.persistPath); err != nil {
		return fmt.Errorf("renaming semantic index snapshot into place: %w", err)
	}
	return nil
}

// Close flushes any pending writes unconditionally, for graceful
// shutdown.
func (s *SemanticIndex) Close() error {
	return s.Flush()
}

// Search embeds query, retrieves the limit+offset nearest segments,
// groups them by doc_id, aggregates per strategy, and paginates.
// Query errors return an empty result rather than propagating, so a
// degraded semantic branch never fails the whole request.
func (s *SemanticIndex) Search(ctx context.Context, query string, limit, offset int, strategy schema.AggregationStrategy) []schema.ScoredDoc {
	qVec, err := s.provider.Encode(ctx, query)
	if err != nil {
		return nil
	}
	queryEmbedding32 := make([]float32, len(qVec))
	for i, v := range qVec {
		queryEmbedding32[i] = float32(v)
	}

	n := limit + offset
	if n <= 0 {
		return nil
	}

	s.mu.RLock()
	count := s.collection.Count()
	if n > count {
		n = count
	}
	var results []chromem.Result
	if n > 0 {
		results, err = s.collection.QueryEmbedding(ctx, queryEmbedding32, n, nil, nil)
	}
	s.mu.RUnlock()
	if err != nil || n == 0 {
		return nil
	}

	similarities := make(map[uint64][]float64)
	for _, r := range results {
		docIDStr, ok := r.Metadata[metadataDocID]
		if !ok {
			continue
		}
		docID, err := strconv.ParseUint(docIDStr, 10, 64)
		if err != nil {
			continue
		}
		similarities[docID] = append(similarities[docID], float64(r.Similarity))
	}

	aggregated := make([]schema.ScoredDoc, 0, len(similarities))
	for docID, sims := range similarities {
		aggregated = append(aggregated, schema.ScoredDoc{DocID: docID, Score: aggregate(sims, strategy)})
	}

	ascending := strategy == schema.AggregateMin
	sort.Slice(aggregated, func(i, j int) bool {
		if aggregated[i].Score != aggregated[j].Score {
			if ascending {
				return aggregated[i].Score < aggregated[j].Score
			}
			return aggregated[i].Score > aggregated[j].Score
		}
		return aggregated[i].DocID < aggregated[j].DocID
	})

	if offset >= len(aggregated) {
		return nil
	}
	aggregated = aggregated[offset:]
	if limit >= 0 && limit < len(aggregated) {
		aggregated = aggregated[:limit]
	}
	return aggregated
}

// aggregate combines a document's per-segment similarities per the
// enumerated strategy. sum and avg return a similarity score (rank
// descending); min returns a distance score (rank ascending), and
// Search picks the sort direction from the strategy accordingly.
func aggregate(similarities []float64, strategy schema.AggregationStrategy) float64 {
	switch strategy {
	case schema.AggregateSum:
		var sum float64
		for _, v := range similarities {
			sum += v
		}
		return sum
	case schema.AggregateMin:
		// "min" ranks by the best single segment: the lowest distance,
		// i.e. the highest similarity among this document's segments.
		best := similarities[0]
		for _, v := range similarities[1:] {
			if v > best {
				best = v
			}
		}
		return 1 - best
	default: // AggregateAvg
		var sum float64
		for _, v := range similarities {
			sum += v
		}
		return sum / float64(len(similarities))
	}
}
