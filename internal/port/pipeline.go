package port

import "github.com/hoangvuduyanh33/QA/internal/domain"

// Pipeline is the full question answering capability: retrieve candidate
// documents, extract answer spans, return them ordered by descending span
// score. Two implementations exist (TF-IDF and BM25 retrieval); the variant
// is chosen once at startup and the caller never distinguishes them.
type Pipeline interface {
	// Process answers a question. nDocs bounds the retrieval stage, topN
	// bounds the number of answers returned. When returnContext is false
	// the Context field is left nil on every span.
	//
	// An empty result with a nil error means extraction ran and found
	// nothing. Failures wrap domain.ErrInvalidInput, domain.ErrRetrieval
	// or domain.ErrExtraction.
	Process(question string, topN, nDocs int, returnContext bool) ([]domain.AnswerSpan, error)
}
