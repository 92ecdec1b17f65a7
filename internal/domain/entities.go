package domain

// Document is a full text document in the corpus.
type Document struct {
	ID       string
	Title    string
	Text     string
	TokenLen int
}

// ScoredDoc is a retrieval result: a document id with its relevance score.
type ScoredDoc struct {
	ID    string
	Score float64
}

// Passage is a paragraph group cut from a retrieved document and fed to the
// span extractor. DocScore carries the retrieval score of the source document.
type Passage struct {
	DocID    string
	DocScore float64
	Text     string
}

// Prediction is a raw span extractor output. Start and End are byte offsets
// into the text of the passage identified by PassageIdx.
type Prediction struct {
	PassageIdx int
	Span       string
	Start      int
	End        int
	Score      float64
}

// SpanContext is the text window containing an answer span.
// Text[Start:End] is the span itself.
type SpanContext struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// AnswerSpan is a ranked answer with document provenance. Rank is assigned
// by the query orchestrator, not by the pipeline. Context is nil when the
// caller did not request it.
type AnswerSpan struct {
	Rank      int          `json:"rank"`
	Span      string       `json:"span"`
	SpanScore float64      `json:"span_score"`
	DocID     string       `json:"doc_id"`
	DocScore  float64      `json:"doc_score"`
	Context   *SpanContext `json:"context,omitempty"`
}

// Posting records one document occurrence of an index term.
type Posting struct {
	DocID string
	TF    int
}

// Stats holds corpus-wide statistics used by the rankers.
type Stats struct {
	TotalDocs int
	AvgDocLen float64
}
