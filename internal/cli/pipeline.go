package cli

import (
	"fmt"
	"os"

	"github.com/hoangvuduyanh33/QA/config"
	"github.com/hoangvuduyanh33/QA/internal/adapter/analyzer"
	"github.com/hoangvuduyanh33/QA/internal/adapter/chunker"
	"github.com/hoangvuduyanh33/QA/internal/adapter/ranker"
	"github.com/hoangvuduyanh33/QA/internal/adapter/reader"
	"github.com/hoangvuduyanh33/QA/internal/adapter/store"
	"github.com/hoangvuduyanh33/QA/internal/port"
	"github.com/hoangvuduyanh33/QA/internal/usecase"
)

// queryEnv bundles the assembled pipeline with its resource cleanup.
type queryEnv struct {
	uc    *usecase.QueryUseCase
	close func()
}

// newQueryEnv builds the query orchestrator from the immutable process
// configuration: open the store, pick the retriever variant, connect the
// reader. Called once per command, never per query.
func newQueryEnv() (*queryEnv, error) {
	dbPath := cfg.IndexDBPath(rootDir)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("no document index at %s; run 'qa index' first", dbPath)
	}

	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open document index: %w", err)
	}

	tok := analyzer.NewTokenizerForLang(cfg.Pipeline.FastTokenizer, cfg.Pipeline.IndexLang)
	grouper := chunker.NewParagraphGrouper(cfg.Pipeline.GroupLength)
	rd := newReader()

	if cfg.Pipeline.RankerModel != "" {
		logger.Warn("legacy tfidf ranker model is ignored; ranking uses the document index",
			"path", cfg.Pipeline.RankerModel)
	}

	var p port.Pipeline
	switch cfg.Pipeline.Retriever {
	case config.VariantTfidf:
		p = usecase.NewTfidfPipeline(ranker.NewTfidfRanker(st, tok), rd, st, grouper)
	case config.VariantBM25:
		p = usecase.NewBM25Pipeline(ranker.NewBM25Ranker(st, tok, cfg.Index.K1, cfg.Index.B), rd, st, grouper)
	default:
		st.Close()
		return nil, fmt.Errorf("unknown retriever variant: %s", cfg.Pipeline.Retriever)
	}

	nDocs := cfg.Retrieve.NDocs
	if nDocs == 0 {
		nDocs = cfg.Pipeline.Retriever.DefaultNDocs()
	}

	logger.Info("pipeline initialized",
		"retriever", string(cfg.Pipeline.Retriever),
		"reader", rd.ModelName(),
		"n_docs_default", nDocs,
	)

	return &queryEnv{
		uc:    usecase.NewQueryUseCase(p, cfg.Retrieve.TopN, nDocs, logger),
		close: func() { st.Close() },
	}, nil
}

func newReader() port.Reader {
	if cfg.Reader.Provider == "mock" {
		return reader.NewMockReader()
	}
	return reader.NewTransformerReader(
		cfg.Reader.Model,
		cfg.Reader.BaseURL,
		cfg.Pipeline.BatchSize,
		cfg.Pipeline.NumWorkers,
		!cfg.Reader.NoCUDA,
		cfg.Reader.GPU,
	)
}
