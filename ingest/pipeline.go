package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/DanielHalachev/WikiSearch/schema"
)

// InvertedStore is the narrow InvertedIndex write capability ingest
// needs.
type InvertedStore interface {
	Store(ctx context.Context, doc schema.Document, body string) error
}

// SemanticStore is the narrow SemanticIndex write capability ingest
// needs.
type SemanticStore interface {
	Store(ctx context.Context, docID uint64, text string) error
}

// BodyStore is the narrow ByteStore write capability ingest needs.
type BodyStore interface {
	Put(ctx context.Context, docID uint64, body []byte) error
}

// Pipeline assigns doc_ids to incoming pages and fans each document
// out to the inverted index, semantic index, and byte store. Fan-out
// per document runs in parallel since the three targets touch
// disjoint resources; documents themselves are processed one at a
// time to keep id-assignment and posting order single-writer.
type Pipeline struct {
	inverted InvertedStore
	semantic SemanticStore
	bodies   BodyStore
	logger   *slog.Logger
	nextID   uint64
}

func NewPipeline(inverted InvertedStore, semantic SemanticStore, bodies BodyStore, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{inverted: inverted, semantic: semantic, bodies: bodies, logger: logger}
}

// urlFor mirrors the original crawler's URL scheme: title with spaces
// replaced by underscores, appended to a fixed wiki base path.
func urlFor(title string) string {
	escaped := make([]rune, 0, len(title))
	for _, r := range title {
		if r == ' ' {
			escaped = append(escaped, '_')
			continue
		}
		escaped = append(escaped, r)
	}
	return fmt.Sprintf("/wiki/%s", string(escaped))
}

// Run drains r, assigning sequential doc_ids and fanning each page out
// to every index. A single document's failure is logged and does not
// abort the run; it returns the total number of documents ingested.
func (p *Pipeline) Run(ctx context.Context, r *DumpReader) (int, error) {
	count := 0
	for {
		pg, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return count, fmt.Errorf("reading dump: %w", err)
		}

		p.nextID++
		docID := p.nextID
		body := StripMarkup(pg.RawText)
		doc := schema.Document{ID: docID, Title: pg.Title, URL: urlFor(pg.Title)}

		if err := p.storeDocument(ctx, doc, body); err != nil {
			p.logger.Error("ingest failed for document", "doc_id", docID, "title", pg.Title, "error", err)
			continue
		}
		count++
	}
	return count, nil
}

func (p *Pipeline) storeDocument(ctx context.Context, doc schema.Document, body string) error {
	var wg sync.WaitGroup
	errs := make([]error, 3)

	wg.Add(3)
	go func() {
		defer wg.Done()
		errs[0] = p.inverted.Store(ctx, doc, body)
	}()
	go func() {
		defer wg.Done()
		errs[1] = p.semantic.Store(ctx, doc.ID, body)
	}()
	go func() {
		defer wg.Done()
		errs[2] = p.bodies.Put(ctx, doc.ID, []byte(body))
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
