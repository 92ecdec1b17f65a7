package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/hoangvuduyanh33/QA/internal/render"
)

const banner = `Interactive QA
>> process "what is the capital of France?" [top_n=3] [n_docs=5]
>> usage
>> exit`

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"shell"},
	Short:   "Start the interactive question answering shell",
	Long: `Start a read-eval-print shell. Each 'process' command runs one question
through the pipeline and prints the ranked answers with highlighted
contexts. Errors are printed and the shell keeps accepting input; leave
with 'exit' or Ctrl-D.

Examples:
  qa interactive
  qa interactive --retriever tfidf --doc-db ./wiki.db`,
	Args: cobra.NoArgs,
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	env, err := newQueryEnv()
	if err != nil {
		return err
	}
	defer env.close()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">> ",
		HistoryFile:     filepath.Join(os.TempDir(), ".qa_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to start shell: %w", err)
	}
	defer rl.Close()

	out := cmd.OutOrStdout()
	renderer := render.New(out, logger)

	fmt.Fprintln(out, banner)

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case line == "usage" || line == "help":
			fmt.Fprintln(out, banner)
		case line == "exit" || line == "quit":
			return nil
		case strings.HasPrefix(line, "process"):
			question, topN, nDocs, err := parseProcessLine(strings.TrimPrefix(line, "process"))
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			spans, err := env.uc.Run(question, topN, nDocs)
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			renderer.Render(spans)
		default:
			fmt.Fprintf(out, "unknown command %q; type 'usage' for help\n", firstWord(line))
		}
	}
}

// parseProcessLine parses the arguments of a process command: the question
// (quoted or bare words) plus optional top_n= and n_docs= settings. A zero
// for either setting means "use the configured default".
func parseProcessLine(args string) (question string, topN, nDocs int, err error) {
	var words []string
	for _, tok := range splitArgs(args) {
		switch {
		case strings.HasPrefix(tok, "top_n="):
			topN, err = parsePositive(tok, "top_n")
			if err != nil {
				return "", 0, 0, err
			}
		case strings.HasPrefix(tok, "n_docs="):
			nDocs, err = parsePositive(tok, "n_docs")
			if err != nil {
				return "", 0, 0, err
			}
		default:
			words = append(words, tok)
		}
	}

	question = strings.TrimSpace(strings.Join(words, " "))
	if question == "" {
		return "", 0, 0, fmt.Errorf("a question is required: process \"your question\"")
	}
	return question, topN, nDocs, nil
}

func parsePositive(tok, name string) (int, error) {
	value := tok[len(name)+1:]
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, value)
	}
	if n < 1 {
		return 0, fmt.Errorf("%s must be at least 1, got %d", name, n)
	}
	return n, nil
}

// splitArgs splits on whitespace while keeping quoted segments together.
// An unterminated quote swallows the rest of the line.
func splitArgs(s string) []string {
	var args []string
	var current strings.Builder
	var quote rune

	flush := func() {
		if current.Len() > 0 {
			args = append(args, current.String())
			current.Reset()
		}
	}

	for _, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
		case unicode.IsSpace(r):
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return args
}

func firstWord(line string) string {
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		return line[:i]
	}
	return line
}
