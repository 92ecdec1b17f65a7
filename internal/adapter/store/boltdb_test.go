package store

import (
	"path/filepath"
	"testing"

	"github.com/hoangvuduyanh33/QA/internal/domain"
	"github.com/hoangvuduyanh33/QA/internal/port"
)

func newTestStore(t *testing.T) *BoltStore {
	t.Helper()
	st, err := NewBoltStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestDocRoundTrip(t *testing.T) {
	st := newTestStore(t)

	doc := domain.Document{
		ID:       "wiki/Paris",
		Title:    "Paris",
		Text:     "Paris is the capital of France.",
		TokenLen: 4,
	}
	if err := st.PutDoc(doc); err != nil {
		t.Fatal(err)
	}

	got, err := st.GetDoc("wiki/Paris")
	if err != nil {
		t.Fatal(err)
	}
	if got != doc {
		t.Errorf("GetDoc = %+v, want %+v", got, doc)
	}

	if _, err := st.GetDoc("wiki/Missing"); err == nil {
		t.Error("expected error for missing document")
	}
}

func TestPostings(t *testing.T) {
	st := newTestStore(t)

	if err := st.PutPosting("capital", "doc1", 2); err != nil {
		t.Fatal(err)
	}
	if err := st.PutPosting("capital", "doc2", 1); err != nil {
		t.Fatal(err)
	}
	// A term sharing a prefix must not leak into the scan.
	if err := st.PutPosting("capitalism", "doc3", 5); err != nil {
		t.Fatal(err)
	}

	postings, err := st.GetPostings("capital")
	if err != nil {
		t.Fatal(err)
	}
	if len(postings) != 2 {
		t.Fatalf("expected 2 postings, got %d: %v", len(postings), postings)
	}
	byDoc := map[string]int{}
	for _, p := range postings {
		byDoc[p.DocID] = p.TF
	}
	if byDoc["doc1"] != 2 || byDoc["doc2"] != 1 {
		t.Errorf("unexpected postings: %v", byDoc)
	}

	empty, err := st.GetPostings("unseen")
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no postings for unseen term, got %v", empty)
	}
}

func TestIndexBatch(t *testing.T) {
	st := newTestStore(t)

	batch := []port.IndexedDoc{
		{
			Doc:       domain.Document{ID: "d1", Title: "One", Text: "paris paris london", TokenLen: 3},
			TermFreqs: map[string]int{"paris": 2, "london": 1},
		},
		{
			Doc:       domain.Document{ID: "d2", Title: "Two", Text: "london", TokenLen: 1},
			TermFreqs: map[string]int{"london": 1},
		},
	}
	if err := st.IndexBatch(batch); err != nil {
		t.Fatal(err)
	}

	docs, err := st.ListDocs()
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 docs, got %d", len(docs))
	}

	postings, err := st.GetPostings("london")
	if err != nil {
		t.Fatal(err)
	}
	if len(postings) != 2 {
		t.Errorf("expected london in 2 docs, got %v", postings)
	}
}

func TestStats(t *testing.T) {
	st := newTestStore(t)

	// Empty corpus reads back zero stats, not an error.
	stats, err := st.GetStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalDocs != 0 {
		t.Errorf("expected zero stats on empty store, got %+v", stats)
	}

	want := domain.Stats{TotalDocs: 7, AvgDocLen: 123.5}
	if err := st.UpdateStats(want); err != nil {
		t.Fatal(err)
	}
	stats, err = st.GetStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats != want {
		t.Errorf("GetStats = %+v, want %+v", stats, want)
	}
}
