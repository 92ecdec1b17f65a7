package usecase

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hoangvuduyanh33/QA/internal/adapter/chunker"
	"github.com/hoangvuduyanh33/QA/internal/adapter/ranker"
	"github.com/hoangvuduyanh33/QA/internal/domain"
	"github.com/hoangvuduyanh33/QA/internal/port"
)

// extractive is the retrieve-then-read core shared by both pipeline
// variants: rank documents, cut them into paragraph groups, extract spans,
// order by span score.
type extractive struct {
	ranker  port.DocRanker
	reader  port.Reader
	docs    port.DocSource
	grouper *chunker.ParagraphGrouper
}

func (e *extractive) process(question string, topN, nDocs int, returnContext bool) ([]domain.AnswerSpan, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("%w: question must not be blank", domain.ErrInvalidInput)
	}
	if topN < 1 {
		return nil, fmt.Errorf("%w: top_n must be at least 1, got %d", domain.ErrInvalidInput, topN)
	}
	if nDocs < 1 {
		return nil, fmt.Errorf("%w: n_docs must be at least 1, got %d", domain.ErrInvalidInput, nDocs)
	}

	ranked, err := e.ranker.ClosestDocs(question, nDocs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRetrieval, err)
	}
	if len(ranked) == 0 {
		return nil, fmt.Errorf("%w: no documents match the question", domain.ErrRetrieval)
	}

	var passages []domain.Passage
	for _, sd := range ranked {
		doc, err := e.docs.GetDoc(sd.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrRetrieval, err)
		}
		for _, group := range e.grouper.Group(doc.Text) {
			passages = append(passages, domain.Passage{
				DocID:    doc.ID,
				DocScore: sd.Score,
				Text:     group,
			})
		}
	}
	if len(passages) == 0 {
		return nil, fmt.Errorf("%w: retrieved documents contain no text", domain.ErrRetrieval)
	}

	preds, err := e.reader.Predict(question, passages, topN)
	if err != nil {
		if errors.Is(err, domain.ErrExtraction) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrExtraction, err)
	}

	// An empty prediction list is a successful "found nothing", not an error.
	sort.SliceStable(preds, func(i, j int) bool {
		return preds[i].Score > preds[j].Score
	})
	if len(preds) > topN {
		preds = preds[:topN]
	}

	spans := make([]domain.AnswerSpan, 0, len(preds))
	for _, p := range preds {
		if p.PassageIdx < 0 || p.PassageIdx >= len(passages) {
			return nil, fmt.Errorf("%w: prediction references unknown passage %d", domain.ErrExtraction, p.PassageIdx)
		}
		passage := passages[p.PassageIdx]
		if p.Start < 0 || p.End > len(passage.Text) || p.Start >= p.End || passage.Text[p.Start:p.End] != p.Span {
			return nil, fmt.Errorf("%w: span offsets [%d,%d) do not locate %q in its passage", domain.ErrExtraction, p.Start, p.End, p.Span)
		}

		span := domain.AnswerSpan{
			Span:      p.Span,
			SpanScore: p.Score,
			DocID:     passage.DocID,
			DocScore:  passage.DocScore,
		}
		if returnContext {
			span.Context = &domain.SpanContext{
				Text:  passage.Text,
				Start: p.Start,
				End:   p.End,
			}
		}
		spans = append(spans, span)
	}
	return spans, nil
}

// TfidfPipeline answers questions with sparse term-frequency retrieval
// followed by neural span extraction.
type TfidfPipeline struct {
	core extractive
}

func NewTfidfPipeline(r *ranker.TfidfRanker, rd port.Reader, docs port.DocSource, grouper *chunker.ParagraphGrouper) *TfidfPipeline {
	return &TfidfPipeline{core: extractive{
		ranker:  r,
		reader:  rd,
		docs:    docs,
		grouper: grouper,
	}}
}

func (p *TfidfPipeline) Process(question string, topN, nDocs int, returnContext bool) ([]domain.AnswerSpan, error) {
	return p.core.process(question, topN, nDocs, returnContext)
}

// BM25Pipeline answers questions with Okapi BM25 retrieval followed by
// neural span extraction.
type BM25Pipeline struct {
	core extractive
}

func NewBM25Pipeline(r *ranker.BM25Ranker, rd port.Reader, docs port.DocSource, grouper *chunker.ParagraphGrouper) *BM25Pipeline {
	return &BM25Pipeline{core: extractive{
		ranker:  r,
		reader:  rd,
		docs:    docs,
		grouper: grouper,
	}}
}

func (p *BM25Pipeline) Process(question string, topN, nDocs int, returnContext bool) ([]domain.AnswerSpan, error) {
	return p.core.process(question, topN, nDocs, returnContext)
}
