package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hoangvuduyanh33/QA/config"
	"github.com/hoangvuduyanh33/QA/internal/logging"
)

var (
	cfgFile string
	rootDir string
	cfg     *config.Config
	logger  *slog.Logger

	flagRetriever     string
	flagReaderModel   string
	flagReaderURL     string
	flagFastTokenizer bool
	flagIndexPath     string
	flagIndexLan      string
	flagRankerModel   string
	flagGroupLength   int
	flagDocDB         string
	flagNoCUDA        bool
	flagGPU           int
	flagNumWorkers    int
	flagBatchSize     int
)

var rootCmd = &cobra.Command{
	Use:   "qa",
	Short: "Question answering over an indexed document corpus",
	Long: `qa answers natural-language questions by retrieving candidate documents
from a local index and extracting scored answer spans with a transformer
reader model.

Example usage:
  qa index ./corpus                      # Build the document database
  qa query -q "capital of France?"       # Ask one question
  qa interactive                         # Read-eval-print shell`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		applyFlagOverrides(cmd)

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		logger = logging.NewLogger(cfg.Logging.Level)
		return nil
	},
}

// applyFlagOverrides folds explicitly set flags into the loaded config.
// After this the config is treated as immutable.
func applyFlagOverrides(cmd *cobra.Command) {
	f := cmd.Flags()

	if f.Changed("retriever") {
		cfg.Pipeline.Retriever = config.Variant(flagRetriever)
	}
	if f.Changed("reader-model") {
		cfg.Reader.Model = flagReaderModel
	}
	if f.Changed("reader-url") {
		cfg.Reader.BaseURL = flagReaderURL
	}
	if f.Changed("fast-tokenizer") {
		cfg.Pipeline.FastTokenizer = flagFastTokenizer
	}
	if f.Changed("index-path") {
		cfg.Pipeline.IndexPath = flagIndexPath
	}
	if f.Changed("index-lan") {
		cfg.Pipeline.IndexLang = flagIndexLan
	}
	if f.Changed("retriever-model") {
		cfg.Pipeline.RankerModel = flagRankerModel
	}
	if f.Changed("group-length") {
		cfg.Pipeline.GroupLength = flagGroupLength
	}
	if f.Changed("doc-db") {
		cfg.Pipeline.DocDB = flagDocDB
	}
	if f.Changed("no-cuda") {
		cfg.Reader.NoCUDA = flagNoCUDA
	}
	if f.Changed("gpu") {
		cfg.Reader.GPU = flagGPU
	}
	if f.Changed("num-workers") {
		cfg.Pipeline.NumWorkers = flagNumWorkers
	}
	if f.Changed("batch-size") {
		cfg.Pipeline.BatchSize = flagBatchSize
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ./qa.yaml)")
	pf.StringVarP(&rootDir, "dir", "d", "", "working directory (default is current directory)")
	pf.StringVar(&flagRetriever, "retriever", "", "retriever variant: tfidf or bm25")
	pf.StringVar(&flagReaderModel, "reader-model", "", "transformer reader model identifier")
	pf.StringVar(&flagReaderURL, "reader-url", "", "reader inference server address")
	pf.BoolVar(&flagFastTokenizer, "fast-tokenizer", true, "use the fast tokenizer")
	pf.StringVar(&flagIndexPath, "index-path", "", "path to the inverted index database")
	pf.StringVar(&flagIndexLan, "index-lan", "", "language of the index (en, vi, zh...)")
	pf.StringVar(&flagRankerModel, "retriever-model", "", "path to a legacy tfidf ranker model")
	pf.IntVar(&flagGroupLength, "group-length", 500, "target size for squashing short paragraphs together")
	pf.StringVar(&flagDocDB, "doc-db", "", "path to the document database")
	pf.BoolVar(&flagNoCUDA, "no-cuda", false, "use CPU only for span extraction")
	pf.IntVar(&flagGPU, "gpu", -1, "GPU device id to use")
	pf.IntVar(&flagNumWorkers, "num-workers", 4, "number of concurrent reader batches")
	pf.IntVar(&flagBatchSize, "batch-size", 32, "document paragraph batching size")
}

func GetRootDir() string {
	return rootDir
}
