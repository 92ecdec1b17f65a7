package reader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hoangvuduyanh33/QA/internal/domain"
)

// TransformerReader extracts answer spans by calling a transformers
// inference server. Passages are sent in batches; up to workers batches are
// in flight at once. That parallelism is internal to the reader, callers
// see one blocking Predict.
type TransformerReader struct {
	model     string
	baseURL   string
	batchSize int
	workers   int
	useCUDA   bool
	gpu       int
	client    *http.Client
}

func NewTransformerReader(model, baseURL string, batchSize, workers int, useCUDA bool, gpu int) *TransformerReader {
	if batchSize < 1 {
		batchSize = 32
	}
	if workers < 1 {
		workers = 1
	}
	return &TransformerReader{
		model:     model,
		baseURL:   baseURL,
		batchSize: batchSize,
		workers:   workers,
		useCUDA:   useCUDA,
		gpu:       gpu,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (r *TransformerReader) ModelName() string {
	return r.model
}

type predictRequest struct {
	Question string   `json:"question"`
	Passages []string `json:"passages"`
	TopN     int      `json:"top_n"`
	Model    string   `json:"model"`
	UseCUDA  bool     `json:"use_cuda"`
	Device   int      `json:"device"`
}

type predictResponse struct {
	Predictions []predictedSpan `json:"predictions"`
	Error       *apiError       `json:"error,omitempty"`
}

type predictedSpan struct {
	Passage int     `json:"passage"`
	Span    string  `json:"span"`
	Start   int     `json:"start"`
	End     int     `json:"end"`
	Score   float64 `json:"score"`
}

type apiError struct {
	Message string `json:"message"`
}

func (r *TransformerReader) Predict(question string, passages []domain.Passage, topN int) ([]domain.Prediction, error) {
	if len(passages) == 0 {
		return nil, nil
	}

	texts := make([]string, len(passages))
	for i, p := range passages {
		texts[i] = p.Text
	}

	type batch struct {
		offset int
		texts  []string
	}
	var batches []batch
	for i := 0; i < len(texts); i += r.batchSize {
		end := i + r.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batches = append(batches, batch{offset: i, texts: texts[i:end]})
	}

	results := make([][]domain.Prediction, len(batches))

	var g errgroup.Group
	g.SetLimit(r.workers)
	for bi, b := range batches {
		bi, b := bi, b
		g.Go(func() error {
			preds, err := r.predictBatch(question, b.texts, topN)
			if err != nil {
				return err
			}
			for i := range preds {
				preds[i].PassageIdx += b.offset
			}
			results[bi] = preds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []domain.Prediction
	for _, preds := range results {
		all = append(all, preds...)
	}
	return all, nil
}

func (r *TransformerReader) predictBatch(question string, texts []string, topN int) ([]domain.Prediction, error) {
	reqBody := predictRequest{
		Question: question,
		Passages: texts,
		TopN:     topN,
		Model:    r.model,
		UseCUDA:  r.useCUDA,
		Device:   r.gpu,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", domain.ErrExtraction, err)
	}

	req, err := http.NewRequest(http.MethodPost, r.baseURL+"/predict", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", domain.ErrExtraction, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: reader server unreachable: %v", domain.ErrExtraction, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", domain.ErrExtraction, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: reader server returned %d: %s", domain.ErrExtraction, resp.StatusCode, body)
	}

	var parsed predictResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: invalid response: %v", domain.ErrExtraction, err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrExtraction, parsed.Error.Message)
	}

	preds := make([]domain.Prediction, 0, len(parsed.Predictions))
	for _, p := range parsed.Predictions {
		if p.Passage < 0 || p.Passage >= len(texts) {
			return nil, fmt.Errorf("%w: prediction references passage %d of %d", domain.ErrExtraction, p.Passage, len(texts))
		}
		preds = append(preds, domain.Prediction{
			PassageIdx: p.Passage,
			Span:       p.Span,
			Start:      p.Start,
			End:        p.End,
			Score:      p.Score,
		})
	}
	return preds, nil
}
