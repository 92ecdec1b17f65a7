package ranker

import (
	"fmt"
	"math"

	"github.com/hoangvuduyanh33/QA/internal/domain"
	"github.com/hoangvuduyanh33/QA/internal/port"
)

// BM25Ranker scores documents with Okapi BM25 over the inverted index. It
// is the heavy retrieval variant and benefits from a larger candidate pool.
type BM25Ranker struct {
	store port.PostingSource
	tok   port.Tokenizer
	k1    float64
	b     float64
}

func NewBM25Ranker(store port.PostingSource, tok port.Tokenizer, k1, b float64) *BM25Ranker {
	return &BM25Ranker{store: store, tok: tok, k1: k1, b: b}
}

func (r *BM25Ranker) ClosestDocs(question string, k int) ([]domain.ScoredDoc, error) {
	terms := r.tok.Tokenize(question)
	if len(terms) == 0 {
		return nil, nil
	}

	stats, err := r.store.GetStats()
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus stats: %w", err)
	}
	if stats.TotalDocs == 0 {
		return nil, nil
	}
	N := float64(stats.TotalDocs)
	avgDl := stats.AvgDocLen
	if avgDl <= 0 {
		avgDl = 1
	}

	seen := make(map[string]struct{}, len(terms))
	scores := make(map[string]float64)
	docLengths := make(map[string]float64)

	for _, term := range terms {
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}

		postings, err := r.store.GetPostings(term)
		if err != nil {
			return nil, fmt.Errorf("failed to read postings for %q: %w", term, err)
		}
		if len(postings) == 0 {
			continue
		}

		n := float64(len(postings))
		idf := math.Log((N-n+0.5)/(n+0.5) + 1)

		for _, p := range postings {
			dl, ok := docLengths[p.DocID]
			if !ok {
				doc, err := r.store.GetDoc(p.DocID)
				if err != nil {
					continue
				}
				dl = float64(doc.TokenLen)
				docLengths[p.DocID] = dl
			}

			tf := float64(p.TF)
			scores[p.DocID] += idf * (tf * (r.k1 + 1)) / (tf + r.k1*(1-r.b+r.b*dl/avgDl))
		}
	}

	return topDocs(scores, k), nil
}
