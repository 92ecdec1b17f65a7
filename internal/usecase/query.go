package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hoangvuduyanh33/QA/internal/domain"
	"github.com/hoangvuduyanh33/QA/internal/port"
)

// QueryUseCase orchestrates a single question: fill in defaults, time the
// pipeline call, verify the answer contract, assign ranks.
type QueryUseCase struct {
	pipeline     port.Pipeline
	defaultTopN  int
	defaultNDocs int
	log          *slog.Logger
}

func NewQueryUseCase(pipeline port.Pipeline, defaultTopN, defaultNDocs int, log *slog.Logger) *QueryUseCase {
	if defaultTopN < 1 {
		defaultTopN = 3
	}
	return &QueryUseCase{
		pipeline:     pipeline,
		defaultTopN:  defaultTopN,
		defaultNDocs: defaultNDocs,
		log:          log,
	}
}

// Run answers a question. topN and nDocs of 0 (or below) select the
// configured defaults. Context is always requested since the renderer
// highlights answers in place. Pipeline failures propagate unchanged;
// reissuing an interactive query is cheap, so there are no retries.
func (u *QueryUseCase) Run(question string, topN, nDocs int) ([]domain.AnswerSpan, error) {
	if topN <= 0 {
		topN = u.defaultTopN
	}
	if nDocs <= 0 {
		nDocs = u.defaultNDocs
	}

	start := time.Now()
	spans, err := u.pipeline.Process(question, topN, nDocs, true)
	u.log.Info("processed 1 query",
		"duration_s", fmt.Sprintf("%.4f", time.Since(start).Seconds()),
		"top_n", topN,
		"n_docs", nDocs,
		"ok", err == nil,
	)
	if err != nil {
		return nil, err
	}

	for i := range spans {
		spans[i].Rank = i + 1
		if c := spans[i].Context; c != nil {
			if c.Start < 0 || c.End > len(c.Text) || c.Start >= c.End || c.Text[c.Start:c.End] != spans[i].Span {
				return nil, fmt.Errorf("%w: backend returned a context that does not contain its answer span", domain.ErrExtraction)
			}
		}
	}
	return spans, nil
}
