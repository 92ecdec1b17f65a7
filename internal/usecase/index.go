package usecase

import (
	"fmt"
	"path"
	"strings"

	"github.com/hoangvuduyanh33/QA/internal/adapter/fs"
	"github.com/hoangvuduyanh33/QA/internal/domain"
	"github.com/hoangvuduyanh33/QA/internal/port"
)

// writeBatchSize bounds documents per bolt transaction.
const writeBatchSize = 64

// IndexUseCase builds the document database from a corpus directory.
type IndexUseCase struct {
	store  port.DocStore
	walker *fs.Walker
	tok    port.Tokenizer
}

func NewIndexUseCase(store port.DocStore, walker *fs.Walker, tok port.Tokenizer) *IndexUseCase {
	return &IndexUseCase{store: store, walker: walker, tok: tok}
}

// IndexResult summarizes an indexing run.
type IndexResult struct {
	DocsIndexed int
	TotalTokens int
	Errors      []string
}

// Index walks root, tokenizes each matching file as one document and writes
// postings and corpus statistics. progress, when non-nil, is called after
// every file.
func (u *IndexUseCase) Index(root string, progress func(done, total int)) (*IndexResult, error) {
	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan corpus: %w", err)
	}

	result := &IndexResult{}
	var batch []port.IndexedDoc

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := u.store.IndexBatch(batch); err != nil {
			return fmt.Errorf("failed to write batch: %w", err)
		}
		batch = batch[:0]
		return nil
	}

	for i, rel := range files {
		content, err := fs.ReadFile(root, rel)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", rel, err))
			continue
		}

		tokens := u.tok.Tokenize(content)
		tf := make(map[string]int, len(tokens))
		for _, t := range tokens {
			tf[t]++
		}

		batch = append(batch, port.IndexedDoc{
			Doc: domain.Document{
				ID:       rel,
				Title:    strings.TrimSuffix(path.Base(rel), path.Ext(rel)),
				Text:     content,
				TokenLen: len(tokens),
			},
			TermFreqs: tf,
		})
		result.DocsIndexed++
		result.TotalTokens += len(tokens)

		if len(batch) >= writeBatchSize {
			if err := flush(); err != nil {
				return nil, err
			}
		}
		if progress != nil {
			progress(i+1, len(files))
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}

	stats := domain.Stats{TotalDocs: result.DocsIndexed}
	if result.DocsIndexed > 0 {
		stats.AvgDocLen = float64(result.TotalTokens) / float64(result.DocsIndexed)
	}
	if err := u.store.UpdateStats(stats); err != nil {
		return nil, fmt.Errorf("failed to update corpus stats: %w", err)
	}

	return result, nil
}
