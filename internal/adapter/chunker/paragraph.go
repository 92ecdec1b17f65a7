package chunker

import "strings"

// ParagraphGrouper splits document text into paragraphs and squashes
// adjacent short ones together until each group approaches the target
// length. Extraction quality degrades on tiny fragments, so short
// paragraphs ride along with their neighbors.
type ParagraphGrouper struct {
	groupLength int
}

func NewParagraphGrouper(groupLength int) *ParagraphGrouper {
	if groupLength < 1 {
		groupLength = 500
	}
	return &ParagraphGrouper{groupLength: groupLength}
}

// Group returns the paragraph groups of text, in document order. Paragraph
// boundaries are blank lines; a paragraph longer than the target stays
// intact as its own group.
func (g *ParagraphGrouper) Group(text string) []string {
	var groups []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			groups = append(groups, current.String())
			current.Reset()
		}
	}

	for _, para := range splitParagraphs(text) {
		if current.Len() > 0 && current.Len()+len(para)+1 > g.groupLength {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(para)
		if current.Len() >= g.groupLength {
			flush()
		}
	}
	flush()

	return groups
}

func splitParagraphs(text string) []string {
	var paras []string
	for _, block := range strings.Split(text, "\n\n") {
		para := strings.TrimSpace(strings.ReplaceAll(block, "\n", " "))
		if para != "" {
			paras = append(paras, para)
		}
	}
	return paras
}
