package ingest

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/DanielHalachev/WikiSearch/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDump = `<mediawiki>
<page><title>Cats</title><ns>0</ns><revision><text>'''Cats''' are [[small]] mammals. {{infobox|x=1}}</text></revision></page>
<page><title>Talk:Cats</title><ns>1</ns><revision><text>not an article</text></revision></page>
<page><title>Empty</title><ns>0</ns><revision><text></text></revision></page>
<page><title>Dogs</title><ns>0</ns><revision><text>Dogs are loyal.</text></revision></page>
</mediawiki>`

func TestDumpReaderSkipsNonArticleAndEmptyPages(t *testing.T) {
	r := NewDumpReader(strings.NewReader(sampleDump))

	pg1, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "Cats", pg1.Title)

	pg2, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "Dogs", pg2.Title)

	_, err = r.Next()
	assert.Error(t, err)
}

func TestStripMarkupRemovesTemplatesLinksAndEmphasis(t *testing.T) {
	out := StripMarkup("'''Cats''' are [[small]] [[Animal|animals]]. {{infobox|x=1}}")
	assert.Equal(t, "Cats are small animals. ", out)
}

func TestStripMarkupRemovesHeadingsAndComments(t *testing.T) {
	out := StripMarkup("== History ==\nSome text.<!-- hidden --> <ref>cite</ref>")
	assert.Equal(t, "History\nSome text. ", out)
}

type fakeInvertedStore struct {
	mu    sync.Mutex
	stored []schema.Document
}

func (f *fakeInvertedStore) Store(ctx context.Context, doc schema.Document, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stored = append(f.stored, doc)
	return nil
}

type fakeSemanticStore struct {
	mu   sync.Mutex
	docs []uint64
}

func (f *fakeSemanticStore) Store(ctx context.Context, docID uint64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs = append(f.docs, docID)
	return nil
}

type fakeBodyStore struct {
	mu    sync.Mutex
	bodies map[uint64][]byte
}

func (f *fakeBodyStore) Put(ctx context.Context, docID uint64, body []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.bodies == nil {
		f.bodies = make(map[uint64][]byte)
	}
	f.bodies[docID] = body
	return nil
}

func TestPipelineRunFansOutToAllThreeStores(t *testing.T) {
	inverted := &fakeInvertedStore{}
	semantic := &fakeSemanticStore{}
	bodies := &fakeBodyStore{}
	p := NewPipeline(inverted, semantic, bodies, nil)

	count, err := p.Run(context.Background(), NewDumpReader(strings.NewReader(sampleDump)))
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Len(t, inverted.stored, 2)
	assert.Len(t, semantic.docs, 2)
	assert.Len(t, bodies.bodies, 2)
}

type failingInvertedStore struct{}

func (failingInvertedStore) Store(ctx context.Context, doc schema.Document, body string) error {
	return errors.New("boom")
}

func TestPipelineRunContinuesAfterDocumentFailure(t *testing.T) {
	semantic := &fakeSemanticStore{}
	bodies := &fakeBodyStore{}
	p := NewPipeline(failingInvertedStore{}, semantic, bodies, nil)

	count, err := p.Run(context.Background(), NewDumpReader(strings.NewReader(sampleDump)))
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
