package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/hoangvuduyanh33/QA/internal/adapter/analyzer"
	"github.com/hoangvuduyanh33/QA/internal/adapter/fs"
	"github.com/hoangvuduyanh33/QA/internal/adapter/store"
	"github.com/hoangvuduyanh33/QA/internal/usecase"
)

var indexCmd = &cobra.Command{
	Use:   "index [path]",
	Short: "Build the document database from a corpus directory",
	Long: `Index text files in the given directory for retrieval. Each file becomes
one document; the database is stored at the configured doc-db path
(default .qa/docs.db in the working directory).

Examples:
  qa index ./corpus
  qa index ./wiki --doc-db ./wiki.db`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	path := GetRootDir()
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	dbPath := cfg.DocDBPath(rootDir)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open document database: %w", err)
	}
	defer st.Close()

	tok := analyzer.NewTokenizerForLang(cfg.Pipeline.FastTokenizer, cfg.Pipeline.IndexLang)
	walker := fs.NewWalker(cfg.Index.Includes, cfg.Index.Excludes)
	indexUC := usecase.NewIndexUseCase(st, walker, tok)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Scanning %s...\n", path)

	var bar *progressbar.ProgressBar
	progress := func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Indexing[reset]"),
				progressbar.OptionOnCompletion(func() {
					fmt.Fprintln(out)
				}),
			)
		}
		bar.Set(done)
	}

	result, err := indexUC.Index(path, progress)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	fmt.Fprintf(out, "\nIndexing complete:\n")
	fmt.Fprintf(out, "  Documents indexed: %d\n", result.DocsIndexed)
	fmt.Fprintf(out, "  Tokens seen:       %d\n", result.TotalTokens)

	if len(result.Errors) > 0 {
		fmt.Fprintf(out, "\nWarnings:\n")
		for _, e := range result.Errors {
			fmt.Fprintf(out, "  - %s\n", e)
		}
	}

	fmt.Fprintf(out, "\nIndex stored at: %s\n", dbPath)
	return nil
}
