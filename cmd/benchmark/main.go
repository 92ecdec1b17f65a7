package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hoangvuduyanh33/QA/config"
	"github.com/hoangvuduyanh33/QA/internal/adapter/analyzer"
	"github.com/hoangvuduyanh33/QA/internal/adapter/ranker"
	"github.com/hoangvuduyanh33/QA/internal/adapter/store"
	"github.com/hoangvuduyanh33/QA/internal/domain"
	"github.com/hoangvuduyanh33/QA/internal/port"
)

func main() {
	indexPath := flag.String("index", ".", "Path to indexed directory")
	query := flag.String("q", "", "Query to test")
	topK := flag.Int("k", 10, "Number of results")
	runs := flag.Int("runs", 5, "Timed runs per retriever")
	flag.Parse()

	if *query == "" {
		fmt.Println("Usage: go run cmd/benchmark/main.go -index ./corpus -q \"query\"")
		fmt.Println("\nCompares the two retriever variants on the same index:")
		fmt.Println("  1. Retrieval latency (tfidf vs bm25)")
		fmt.Println("  2. Top-k agreement between the two rankings")
		fmt.Println("  3. Score distribution per variant")
		os.Exit(1)
	}

	cfg, err := config.LoadFromDir(*indexPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	dbPath := cfg.IndexDBPath(*indexPath)
	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening index: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	stats, err := st.GetStats()
	if err != nil || stats.TotalDocs == 0 {
		fmt.Fprintf(os.Stderr, "Index is empty - run 'qa index' first\n")
		os.Exit(1)
	}

	tok := analyzer.NewTokenizerForLang(cfg.Pipeline.FastTokenizer, cfg.Pipeline.IndexLang)

	fmt.Println("RETRIEVAL BENCHMARK")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Documents indexed: %d\n", stats.TotalDocs)
	fmt.Printf("Average doc length: %.1f tokens\n", stats.AvgDocLen)
	fmt.Printf("Query: %q\n", *query)
	fmt.Println()

	variants := []struct {
		name   string
		ranker port.DocRanker
	}{
		{"tfidf", ranker.NewTfidfRanker(st, tok)},
		{"bm25", ranker.NewBM25Ranker(st, tok, cfg.Index.K1, cfg.Index.B)},
	}

	results := make(map[string][]domain.ScoredDoc, len(variants))
	for _, v := range variants {
		docs, elapsed, err := timeRanker(v.ranker, *query, *topK, *runs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s failed: %v\n", v.name, err)
			os.Exit(1)
		}
		results[v.name] = docs

		fmt.Printf("%s: %d results, %.2fms per query\n", v.name, len(docs), elapsed)
		fmt.Println(strings.Repeat("-", 70))
		for i, d := range docs {
			doc, _ := st.GetDoc(d.ID)
			fmt.Printf("%2d. [%.5g] %s (%s)\n", i+1, d.Score, d.ID, doc.Title)
		}
		fmt.Println()
	}

	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Top-%d agreement: %d/%d documents in both rankings\n",
		*topK, overlap(results["tfidf"], results["bm25"]), maxLen(results["tfidf"], results["bm25"]))
}

// timeRanker runs one warm-up pass, then averages the latency of runs
// repeated calls. The ranked list from the last run is returned.
func timeRanker(r port.DocRanker, query string, k, runs int) ([]domain.ScoredDoc, float64, error) {
	docs, err := r.ClosestDocs(query, k)
	if err != nil {
		return nil, 0, err
	}

	start := time.Now()
	for i := 0; i < runs; i++ {
		docs, err = r.ClosestDocs(query, k)
		if err != nil {
			return nil, 0, err
		}
	}
	elapsed := float64(time.Since(start).Microseconds()) / float64(runs) / 1000.0

	return docs, elapsed, nil
}

func overlap(a, b []domain.ScoredDoc) int {
	seen := make(map[string]bool, len(a))
	for _, d := range a {
		seen[d.ID] = true
	}
	n := 0
	for _, d := range b {
		if seen[d.ID] {
			n++
		}
	}
	return n
}

func maxLen(a, b []domain.ScoredDoc) int {
	if len(a) > len(b) {
		return len(a)
	}
	return len(b)
}
