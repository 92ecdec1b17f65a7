package port

import "github.com/hoangvuduyanh33/QA/internal/domain"

// DocRanker scores corpus documents against a question.
type DocRanker interface {
	// ClosestDocs returns up to k documents ordered by descending
	// relevance score. An empty result means nothing matched.
	ClosestDocs(question string, k int) ([]domain.ScoredDoc, error)
}
