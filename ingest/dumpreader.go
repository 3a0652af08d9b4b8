// Package ingest streams a MediaWiki-style XML dump into the write
// paths of InvertedIndex, SemanticIndex, and ByteStore: a streaming
// page-at-a-time decode over encoding/xml's Token API, so a
// multi-gigabyte dump never needs to sit fully in memory.
package ingest

import (
	"encoding/xml"
	"io"
)

// page mirrors the <page><ns>/<title>/<revision><text> shape of a
// MediaWiki export. Only namespace-0 (article) pages are meaningful.
type page struct {
	XMLName  xml.Name `xml:"page"`
	Title    string   `xml:"title"`
	Ns       int      `xml:"ns"`
	Revision struct {
		Text string `xml:"text"`
	} `xml:"revision"`
}

// Page is a decoded, still-raw (un-stripped) article.
type Page struct {
	Title   string
	RawText string
}

// DumpReader streams <page> records out of a MediaWiki XML export one
// at a time, never holding the whole document in memory.
type DumpReader struct {
	decoder *xml.Decoder
}

func NewDumpReader(r io.Reader) *DumpReader {
	return &DumpReader{decoder: xml.NewDecoder(r)}
}

// Next returns the next namespace-0 page with a non-empty title and
// body, skipping redirects/metapages/stubs along the way. It returns
// io.EOF once the dump is exhausted.
func (d *DumpReader) Next() (Page, error) {
	for {
		tok, err := d.decoder.Token()
		if err != nil {
			return Page{}, err
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "page" {
			continue
		}

		var p page
		if err := d.decoder.DecodeElement(&p, &start); err != nil {
			return Page{}, err
		}

		if p.Ns != 0 || p.Title == "" || p.Revision.Text == "" {
			continue
		}
		return Page{Title: p.Title, RawText: p.Revision.Text}, nil
	}
}
