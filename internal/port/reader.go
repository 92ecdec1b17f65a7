package port

import "github.com/hoangvuduyanh33/QA/internal/domain"

// Reader extracts candidate answer spans from passages.
type Reader interface {
	// Predict returns up to topN predictions per passage. Offsets in each
	// prediction index into the text of passages[PassageIdx]. Order is
	// unspecified; the pipeline sorts by score.
	Predict(question string, passages []domain.Passage, topN int) ([]domain.Prediction, error)

	// ModelName returns the name of the reader model.
	ModelName() string
}
