package render

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/hoangvuduyanh33/QA/internal/domain"
)

// Renderer formats ranked answers for the terminal: a summary table, then
// each answer highlighted inside its context window. Writing to out is its
// only side effect.
type Renderer struct {
	out       io.Writer
	log       *slog.Logger
	highlight *color.Color
}

func New(out io.Writer, log *slog.Logger) *Renderer {
	return &Renderer{
		out:       out,
		log:       log,
		highlight: color.New(color.FgGreen, color.Bold),
	}
}

// Render prints the summary table and the context views for one query's
// answers, in rank order.
func (r *Renderer) Render(spans []domain.AnswerSpan) {
	if len(spans) == 0 {
		fmt.Fprintln(r.out, "No answers found.")
		return
	}

	fmt.Fprintln(r.out, "Top Predictions:")
	table := tablewriter.NewWriter(r.out)
	table.SetHeader([]string{"Rank", "Answer", "Doc", "Answer Score", "Doc Score"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	for _, s := range spans {
		table.Append([]string{
			strconv.Itoa(s.Rank),
			s.Span,
			s.DocID,
			fmt.Sprintf("%.5g", s.SpanScore),
			fmt.Sprintf("%.5g", s.DocScore),
		})
	}
	table.Render()

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "Contexts:")
	for _, s := range spans {
		r.renderContext(s)
	}
}

// renderContext prints one answer's context with the span emphasized. A
// missing context is a caller configuration inconsistency: logged and
// skipped, never fatal. Offsets that do not fit the text degrade to
// unstyled output.
func (r *Renderer) renderContext(s domain.AnswerSpan) {
	c := s.Context
	if c == nil {
		r.log.Warn("context missing for answer, skipping highlight",
			"rank", s.Rank, "doc", s.DocID)
		return
	}

	fmt.Fprintf(r.out, "[ Doc = %s ]\n", s.DocID)

	if c.Start < 0 || c.End > len(c.Text) || c.Start >= c.End {
		r.log.Warn("context offsets out of range, printing without highlight",
			"rank", s.Rank, "doc", s.DocID, "start", c.Start, "end", c.End)
		fmt.Fprintf(r.out, "%s\n\n", c.Text)
		return
	}

	fmt.Fprintf(r.out, "%s%s%s\n\n",
		c.Text[:c.Start],
		r.highlight.Sprint(c.Text[c.Start:c.End]),
		c.Text[c.End:],
	)
}
