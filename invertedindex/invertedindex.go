// Package invertedindex implements the BM25 full-text index: a write
// path that populates the word/lemma/posting/term-frequency tables of a
// RelationalStore, and a read path that scores candidate documents with
// a two-field BM25 (title, body).
package invertedindex

import (
	"context"
	"math"
	"sort"

	"github.com/DanielHalachev/WikiSearch/analyzer"
	"github.com/DanielHalachev/WikiSearch/schema"
	"github.com/DanielHalachev/WikiSearch/store/relational"
)

// k1 and b are deliberately not the textbook 1.2-2.0/0.75 pair; the low
// k1 emphasizes term presence over repeated-term saturation.
const (
	k1 = 0.5
	b  = 0.75
)

// InvertedIndex composes an Analyzer with a RelationalStore to realize
// store/search over the title_tf and body_tf tables.
type InvertedIndex struct {
	analyzer analyzer.Analyzer
	store    relational.RelationalStore
}

func New(a analyzer.Analyzer, store relational.RelationalStore) *InvertedIndex {
	return &InvertedIndex{analyzer: a, store: store}
}

// Store ingests doc's title and body: upserts document metadata, the
// word/lemma/word-lemma associations, per-field term frequencies, and
// positional postings for the body.
func (idx *InvertedIndex) Store(ctx context.Context, doc schema.Document, body string) error {
	if err := idx.store.UpsertDocument(ctx, doc); err != nil {
		return err
	}

	if err := idx.indexField(ctx, schema.FieldTitle, doc.ID, doc.Title); err != nil {
		return err
	}
	if err := idx.indexField(ctx, schema.FieldBody, doc.ID, body); err != nil {
		return err
	}

	for position, surface := range idx.analyzer.TokenizeWithPositions(body) {
		wordID, err := idx.store.UpsertWord(ctx, surface)
		if err != nil {
			return err
		}
		if err := idx.store.InsertPosting(ctx, wordID, doc.ID, position); err != nil {
			return err
		}
	}
	return nil
}

func (idx *InvertedIndex) indexField(ctx context.Context, field schema.Field, docID uint64, text string) error {
	lemmas, surfaceToLemma := idx.analyzer.Process(text)

	for surface, lemma := range surfaceToLemma {
		wordID, err := idx.store.UpsertWord(ctx, surface)
		if err != nil {
			return err
		}
		lemmaID, err := idx.store.UpsertLemma(ctx, lemma)
		if err != nil {
			return err
		}
		if err := idx.store.UpsertWordLemma(ctx, wordID, lemmaID); err != nil {
			return err
		}
	}

	freqByLemma := make(map[string]int, len(lemmas))
	for _, lemma := range lemmas {
		freqByLemma[lemma]++
	}
	for lemma, freq := range freqByLemma {
		lemmaID, err := idx.store.UpsertLemma(ctx, lemma)
		if err != nil {
			return err
		}
		if err := idx.store.IncrementTermFrequency(ctx, field, lemmaID, docID, freq); err != nil {
			return err
		}
	}
	return nil
}

// Search scores candidate documents against query with two-field BM25,
// returning the top `limit` hits after skipping `offset`.
func (idx *InvertedIndex) Search(ctx context.Context, query string, limit, offset int) ([]schema.ScoredDoc, error) {
	if query == "" {
		return nil, nil
	}

	queryLemmas, _ := idx.analyzer.Process(query)
	if len(queryLemmas) == 0 {
		return nil, nil
	}

	lemmaIDs, err := idx.resolveLemmaIDs(ctx, queryLemmas)
	if err != nil {
		return nil, err
	}
	if len(lemmaIDs) == 0 {
		return nil, nil
	}

	n, err := idx.store.DocumentCount(ctx)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}

	scores := make(map[uint64]float64)
	for _, field := range []schema.Field{schema.FieldTitle, schema.FieldBody} {
		if err := idx.accumulateField(ctx, field, lemmaIDs, n, scores); err != nil {
			return nil, err
		}
	}

	results := make([]schema.ScoredDoc, 0, len(scores))
	for docID, score := range scores {
		results = append(results, schema.ScoredDoc{DocID: docID, Score: score})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].DocID < results[j].DocID
	})

	return paginate(results, offset, limit), nil
}

func (idx *InvertedIndex) resolveLemmaIDs(ctx context.Context, lemmas []string) ([]uint64, error) {
	seen := make(map[string]struct{}, len(lemmas))
	var ids []uint64
	for _, lemma := range lemmas {
		if _, dup := seen[lemma]; dup {
			continue
		}
		seen[lemma] = struct{}{}
		id, ok, err := idx.store.LemmaIDByToken(ctx, lemma)
		if err != nil {
			return nil, err
		}
		if ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// accumulateField adds this field's BM25 contribution for every
// candidate document into scores. Skips the field entirely when its
// average length is 0 (nothing indexed for it yet).
func (idx *InvertedIndex) accumulateField(ctx context.Context, field schema.Field, lemmaIDs []uint64, n uint64, scores map[uint64]float64) error {
	lAvg, err := idx.store.AverageFieldLength(ctx, field)
	if err != nil {
		return err
	}
	if lAvg == 0 {
		return nil
	}

	rows, err := idx.store.TermFrequencyRows(ctx, field, lemmaIDs)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	docFreq := make(map[uint64]int)
	docsByLemma := make(map[uint64]map[uint64]struct{})
	for _, row := range rows {
		if row.Freq <= 0 {
			continue
		}
		docs, ok := docsByLemma[row.LemmaID]
		if !ok {
			docs = make(map[uint64]struct{})
			docsByLemma[row.LemmaID] = docs
		}
		docs[row.DocID] = struct{}{}
	}
	for lemmaID, docs := range docsByLemma {
		docFreq[lemmaID] = len(docs)
	}

	lengthCache := make(map[uint64]int)
	fieldLength := func(docID uint64) (int, error) {
		if l, ok := lengthCache[docID]; ok {
			return l, nil
		}
		l, err := idx.store.FieldLength(ctx, field, docID)
		if err != nil {
			return 0, err
		}
		lengthCache[docID] = l
		return l, nil
	}

	for _, row := range rows {
		if row.Freq <= 0 {
			continue
		}
		df := docFreq[row.LemmaID]
		if df == 0 {
			continue
		}
		idf := math.Log((float64(n) - float64(df) + 0.5) / (float64(df) + 0.5))

		lD, err := fieldLength(row.DocID)
		if err != nil {
			return err
		}
		tf := float64(row.Freq)
		tfComponent := (tf * (k1 + 1)) / (tf + k1*(1-b+b*float64(lD)/lAvg))

		scores[row.DocID] += idf * tfComponent
	}
	return nil
}

func paginate(results []schema.ScoredDoc, offset, limit int) []schema.ScoredDoc {
	if offset >= len(results) {
		return nil
	}
	results = results[offset:]
	if limit >= 0 && limit < len(results) {
		results = results[:limit]
	}
	return results
}
