package reader

import (
	"sort"
	"strings"

	"github.com/hoangvuduyanh33/QA/internal/domain"
)

// MockReader is a deterministic offline span extractor: it finds literal
// question keywords inside passages. Useful for tests and smoke runs
// without an inference server.
type MockReader struct{}

func NewMockReader() *MockReader {
	return &MockReader{}
}

func (m *MockReader) ModelName() string {
	return "mock"
}

func (m *MockReader) Predict(question string, passages []domain.Passage, topN int) ([]domain.Prediction, error) {
	keywords := mockKeywords(question)

	var preds []domain.Prediction
	for pi, p := range passages {
		lower := strings.ToLower(p.Text)
		count := 0
		for _, kw := range keywords {
			if count >= topN {
				break
			}
			idx := strings.Index(lower, kw)
			if idx < 0 {
				continue
			}
			end := idx + len(kw)
			preds = append(preds, domain.Prediction{
				PassageIdx: pi,
				Span:       p.Text[idx:end],
				Start:      idx,
				End:        end,
				Score:      float64(len(kw)),
			})
			count++
		}
	}
	return preds, nil
}

func mockKeywords(question string) []string {
	fields := strings.Fields(strings.ToLower(question))
	var keywords []string
	for _, f := range fields {
		f = strings.Trim(f, "?.,!\"'")
		if len(f) >= 4 {
			keywords = append(keywords, f)
		}
	}
	// Longer keywords first so the best mock answer is the most specific one.
	sort.SliceStable(keywords, func(i, j int) bool {
		return len(keywords[i]) > len(keywords[j])
	})
	return keywords
}
