package usecase

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/hoangvuduyanh33/QA/internal/domain"
)

type recordingPipeline struct {
	gotTopN    int
	gotNDocs   int
	gotContext bool
	spans      []domain.AnswerSpan
	err        error
}

func (p *recordingPipeline) Process(question string, topN, nDocs int, returnContext bool) ([]domain.AnswerSpan, error) {
	p.gotTopN = topN
	p.gotNDocs = nDocs
	p.gotContext = returnContext
	return p.spans, p.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunAppliesDefaults(t *testing.T) {
	p := &recordingPipeline{}
	uc := NewQueryUseCase(p, 3, 30, discardLogger())

	if _, err := uc.Run("question", 0, 0); err != nil {
		t.Fatal(err)
	}
	if p.gotTopN != 3 {
		t.Errorf("expected default top_n=3, got %d", p.gotTopN)
	}
	if p.gotNDocs != 30 {
		t.Errorf("expected default n_docs=30, got %d", p.gotNDocs)
	}
	if !p.gotContext {
		t.Error("orchestrator must always request context")
	}
}

func TestRunPassesExplicitArguments(t *testing.T) {
	p := &recordingPipeline{}
	uc := NewQueryUseCase(p, 3, 5, discardLogger())

	if _, err := uc.Run("question", 1, 7); err != nil {
		t.Fatal(err)
	}
	if p.gotTopN != 1 || p.gotNDocs != 7 {
		t.Errorf("expected explicit 1/7, got %d/%d", p.gotTopN, p.gotNDocs)
	}
}

func TestRunAssignsRanks(t *testing.T) {
	text := "Paris is the capital."
	p := &recordingPipeline{spans: []domain.AnswerSpan{
		{Span: "Paris", SpanScore: 0.98, DocID: "d1", Context: &domain.SpanContext{Text: text, Start: 0, End: 5}},
		{Span: "capital", SpanScore: 0.5, DocID: "d1", Context: &domain.SpanContext{Text: text, Start: 13, End: 20}},
	}}
	uc := NewQueryUseCase(p, 3, 5, discardLogger())

	spans, err := uc.Run("question", 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range spans {
		if s.Rank != i+1 {
			t.Errorf("expected rank %d, got %d", i+1, s.Rank)
		}
	}
}

func TestRunPropagatesPipelineErrors(t *testing.T) {
	wrapped := errors.New("wrapped cause")
	for _, sentinel := range []error{domain.ErrInvalidInput, domain.ErrRetrieval, domain.ErrExtraction} {
		p := &recordingPipeline{err: errors.Join(sentinel, wrapped)}
		uc := NewQueryUseCase(p, 3, 5, discardLogger())

		_, err := uc.Run("question", 0, 0)
		if !errors.Is(err, sentinel) {
			t.Errorf("expected %v to propagate, got %v", sentinel, err)
		}
	}
}

func TestRunRejectsContractViolation(t *testing.T) {
	p := &recordingPipeline{spans: []domain.AnswerSpan{
		{Span: "Paris", SpanScore: 1, DocID: "d1", Context: &domain.SpanContext{Text: "no such span here", Start: 0, End: 5}},
	}}
	uc := NewQueryUseCase(p, 3, 5, discardLogger())

	_, err := uc.Run("question", 0, 0)
	if !errors.Is(err, domain.ErrExtraction) {
		t.Errorf("expected contract violation to surface as ErrExtraction, got %v", err)
	}
}
