package ranker

import (
	"fmt"
	"math"
	"sort"

	"github.com/hoangvuduyanh33/QA/internal/domain"
	"github.com/hoangvuduyanh33/QA/internal/port"
)

// TfidfRanker scores documents with a sparse term-frequency index:
// log-scaled term frequency times inverse document frequency, summed over
// query terms. It is the light retrieval variant.
type TfidfRanker struct {
	store port.PostingSource
	tok   port.Tokenizer
}

func NewTfidfRanker(store port.PostingSource, tok port.Tokenizer) *TfidfRanker {
	return &TfidfRanker{store: store, tok: tok}
}

func (r *TfidfRanker) ClosestDocs(question string, k int) ([]domain.ScoredDoc, error) {
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

	queryTF := make(map[string]int, len(terms))
	for _, t := range terms {
		queryTF[t]++
	}

	scores := make(map[string]float64)
	for term, qtf := range queryTF {
		postings, err := r.store.GetPostings(term)
		if err != nil {
			return nil, fmt.Errorf("failed to read postings for %q: %w", term, err)
		}
		if len(postings) == 0 {
			continue
		}

		n := float64(len(postings))
		idf := math.Log((N - n + 0.5) / (n + 0.5))
		if idf < 0 {
			idf = 0
		}

		for _, p := range postings {
			w := (1 + math.Log(float64(p.TF))) * idf * float64(qtf)
			scores[p.DocID] += w
		}
	}

	return topDocs(scores, k), nil
}

// topDocs orders scored documents by descending score and truncates to k.
// Equal scores fall back to doc id so repeated runs stay stable.
func topDocs(scores map[string]float64, k int) []domain.ScoredDoc {
	results := make([]domain.ScoredDoc, 0, len(scores))
	for id, score := range scores {
		if score <= 0 {
			continue
		}
		results = append(results, domain.ScoredDoc{ID: id, Score: score})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})

	if len(results) > k {
		results = results[:k]
	}
	return results
}
