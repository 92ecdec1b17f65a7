package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hoangvuduyanh33/QA/internal/render"
)

var (
	queryText  string
	queryTopN  int
	queryNDocs int
	queryJSON  bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Answer a single question",
	Long: `Run one question through the pipeline and print the ranked answers.

Examples:
  qa query -q "What is the capital of France?"
  qa query -q "Who wrote Hamlet?" --top-n 1 --n-docs 10 --json`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVarP(&queryText, "question", "q", "", "question to answer (required)")
	queryCmd.Flags().IntVar(&queryTopN, "top-n", 0, "number of answers (default from config)")
	queryCmd.Flags().IntVar(&queryNDocs, "n-docs", 0, "candidate documents to retrieve (default from config)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output as JSON")
	queryCmd.MarkFlagRequired("question")
}

func runQuery(cmd *cobra.Command, args []string) error {
	env, err := newQueryEnv()
	if err != nil {
		return err
	}
	defer env.close()

	spans, err := env.uc.Run(queryText, queryTopN, queryNDocs)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if queryJSON {
		data, err := json.MarshalIndent(spans, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	render.New(out, logger).Render(spans)
	return nil
}
