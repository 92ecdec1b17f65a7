package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Pipeline.Retriever != VariantBM25 {
		t.Errorf("expected retriever=bm25, got %s", cfg.Pipeline.Retriever)
	}
	if cfg.Pipeline.GroupLength != 500 {
		t.Errorf("expected GroupLength=500, got %d", cfg.Pipeline.GroupLength)
	}
	if cfg.Pipeline.BatchSize != 32 {
		t.Errorf("expected BatchSize=32, got %d", cfg.Pipeline.BatchSize)
	}
	if cfg.Retrieve.TopN != 3 {
		t.Errorf("expected TopN=3, got %d", cfg.Retrieve.TopN)
	}
	if cfg.Retrieve.NDocs != 0 {
		t.Errorf("expected NDocs=0 (variant default), got %d", cfg.Retrieve.NDocs)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestVariantDefaultNDocs(t *testing.T) {
	if got := VariantTfidf.DefaultNDocs(); got != 5 {
		t.Errorf("expected tfidf default n_docs=5, got %d", got)
	}
	if got := VariantBM25.DefaultNDocs(); got != 30 {
		t.Errorf("expected bm25 default n_docs=30, got %d", got)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/qa.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "qa.yaml")

	content := `
pipeline:
  retriever: tfidf
  group_length: 300
reader:
  model: my-reader
retrieve:
  top_n: 5
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Pipeline.Retriever != VariantTfidf {
		t.Errorf("expected retriever=tfidf, got %s", cfg.Pipeline.Retriever)
	}
	if cfg.Pipeline.GroupLength != 300 {
		t.Errorf("expected GroupLength=300, got %d", cfg.Pipeline.GroupLength)
	}
	if cfg.Reader.Model != "my-reader" {
		t.Errorf("expected reader model override, got %s", cfg.Reader.Model)
	}
	if cfg.Retrieve.TopN != 5 {
		t.Errorf("expected TopN=5, got %d", cfg.Retrieve.TopN)
	}
	// Untouched fields keep their defaults.
	if cfg.Pipeline.BatchSize != 32 {
		t.Errorf("expected BatchSize default 32, got %d", cfg.Pipeline.BatchSize)
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "qa.yaml")

	content := `
retrieve:
  n_docs: 10
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Retrieve.NDocs != 10 {
		t.Errorf("expected NDocs=10, got %d", cfg.Retrieve.NDocs)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"bad variant", func(c *Config) { c.Pipeline.Retriever = "lucene" }, true},
		{"zero group length", func(c *Config) { c.Pipeline.GroupLength = 0 }, true},
		{"zero batch size", func(c *Config) { c.Pipeline.BatchSize = 0 }, true},
		{"zero top_n", func(c *Config) { c.Retrieve.TopN = 0 }, true},
		{"negative n_docs", func(c *Config) { c.Retrieve.NDocs = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDocDBPath(t *testing.T) {
	cfg := DefaultConfig()

	if got := cfg.DocDBPath("/data"); got != filepath.Join("/data", ".qa", "docs.db") {
		t.Errorf("unexpected default doc db path: %s", got)
	}

	cfg.Pipeline.DocDB = "/elsewhere/wiki.db"
	if got := cfg.DocDBPath("/data"); got != "/elsewhere/wiki.db" {
		t.Errorf("expected doc_db override, got %s", got)
	}

	// The index defaults to the doc db unless set explicitly.
	if got := cfg.IndexDBPath("/data"); got != "/elsewhere/wiki.db" {
		t.Errorf("expected index to fall back to doc db, got %s", got)
	}
	cfg.Pipeline.IndexPath = "/elsewhere/index.db"
	if got := cfg.IndexDBPath("/data"); got != "/elsewhere/index.db" {
		t.Errorf("expected index_path override, got %s", got)
	}
}
