package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Variant selects the retrieval strategy behind the pipeline contract.
type Variant string

const (
	// VariantTfidf ranks documents with a sparse term-frequency index.
	VariantTfidf Variant = "tfidf"
	// VariantBM25 ranks documents with Okapi BM25 over the inverted index.
	VariantBM25 Variant = "bm25"
)

// DefaultNDocs is the number of candidate documents fetched before
// extraction when the caller does not override it. BM25 confidence is
// shallower per document, so it compensates with a larger candidate pool.
func (v Variant) DefaultNDocs() int {
	if v == VariantBM25 {
		return 30
	}
	return 5
}

func (v Variant) Valid() bool {
	return v == VariantTfidf || v == VariantBM25
}

// Config holds the process-wide pipeline configuration. It is assembled
// once at startup from the YAML file and command-line flags, then treated
// as read-only.
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
	Reader   ReaderConfig   `yaml:"reader"`
	Index    IndexConfig    `yaml:"index"`
	Retrieve RetrieveConfig `yaml:"retrieve"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// PipelineConfig selects and tunes the retrieval side of the pipeline.
type PipelineConfig struct {
	Retriever     Variant `yaml:"retriever"`
	IndexPath     string  `yaml:"index_path"`    // inverted index location; empty = doc_db
	IndexLang     string  `yaml:"index_lang"`    // language tag of the index (en, vi, zh...)
	RankerModel   string  `yaml:"ranker_model"`  // legacy tfidf ranker model path
	DocDB         string  `yaml:"doc_db"`        // document database path; empty = ./.qa/docs.db
	GroupLength   int     `yaml:"group_length"`  // target size for squashing short paragraphs
	FastTokenizer bool    `yaml:"fast_tokenizer"`
	NumWorkers    int     `yaml:"num_workers"`
	BatchSize     int     `yaml:"batch_size"`
}

// ReaderConfig tunes the span extraction model client.
type ReaderConfig struct {
	Model    string `yaml:"model"`    // transformer model identifier
	Provider string `yaml:"provider"` // "transformers", "mock"
	BaseURL  string `yaml:"base_url"` // inference server address
	NoCUDA   bool   `yaml:"no_cuda"`  // force CPU-only inference
	GPU      int    `yaml:"gpu"`      // device id, -1 = server default
}

// IndexConfig controls corpus indexing.
type IndexConfig struct {
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
	K1       float64  `yaml:"k1"`
	B        float64  `yaml:"b"`
}

// RetrieveConfig holds query-time defaults. NDocs of 0 means "use the
// active variant's default".
type RetrieveConfig struct {
	TopN  int `yaml:"top_n"`
	NDocs int `yaml:"n_docs"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			Retriever:     VariantBM25,
			IndexLang:     "en",
			GroupLength:   500,
			FastTokenizer: true,
			NumWorkers:    4,
			BatchSize:     32,
		},
		Reader: ReaderConfig{
			Model:    "deepset/roberta-base-squad2",
			Provider: "transformers",
			BaseURL:  "http://localhost:8000",
			GPU:      -1,
		},
		Index: IndexConfig{
			Includes: []string{"**/*.txt", "**/*.md"},
			Excludes: []string{"**/.git/**", "**/node_modules/**"},
			K1:       1.2,
			B:        0.75,
		},
		Retrieve: RetrieveConfig{
			TopN: 3,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate rejects values the pipeline cannot run with.
func (c *Config) Validate() error {
	if !c.Pipeline.Retriever.Valid() {
		return fmt.Errorf("unknown retriever variant: %q (want tfidf or bm25)", c.Pipeline.Retriever)
	}
	if c.Pipeline.GroupLength < 1 {
		return fmt.Errorf("group_length must be positive, got %d", c.Pipeline.GroupLength)
	}
	if c.Pipeline.BatchSize < 1 {
		return fmt.Errorf("batch_size must be positive, got %d", c.Pipeline.BatchSize)
	}
	if c.Retrieve.TopN < 1 {
		return fmt.Errorf("top_n must be positive, got %d", c.Retrieve.TopN)
	}
	if c.Retrieve.NDocs < 0 {
		return fmt.Errorf("n_docs must not be negative, got %d", c.Retrieve.NDocs)
	}
	return nil
}

// Load loads configuration from a YAML file, falling back to defaults when
// the file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for qa.yaml,
// then .qa/config.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "qa.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".qa", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DocDBPath resolves the document database location for a working
// directory, honoring an explicit doc_db override.
func (c *Config) DocDBPath(dir string) string {
	if c.Pipeline.DocDB != "" {
		return c.Pipeline.DocDB
	}
	return filepath.Join(dir, ".qa", "docs.db")
}

// IndexDBPath resolves the inverted index location. It defaults to the
// document database so both rankers share one store.
func (c *Config) IndexDBPath(dir string) string {
	if c.Pipeline.IndexPath != "" {
		return c.Pipeline.IndexPath
	}
	return c.DocDBPath(dir)
}
