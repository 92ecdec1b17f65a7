package port

import "github.com/hoangvuduyanh33/QA/internal/domain"

// DocSource resolves document ids to full documents.
type DocSource interface {
	GetDoc(id string) (domain.Document, error)
}

// PostingSource is the read side of the inverted index, everything the
// rankers need.
type PostingSource interface {
	DocSource

	GetPostings(term string) ([]domain.Posting, error)

	GetStats() (domain.Stats, error)
}

// DocStore is the full document database contract used by indexing.
type DocStore interface {
	PostingSource

	PutDoc(doc domain.Document) error

	ListDocs() ([]domain.Document, error)

	// IndexBatch writes a group of documents with their postings in a
	// single transaction.
	IndexBatch(docs []IndexedDoc) error

	UpdateStats(stats domain.Stats) error

	Close() error
}

// IndexedDoc bundles a document with its term frequencies for batch writes.
type IndexedDoc struct {
	Doc       domain.Document
	TermFreqs map[string]int
}
