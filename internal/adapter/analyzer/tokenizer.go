package analyzer

import (
	"regexp"
	"strings"
	"unicode"
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Tokenizer lowercases text, splits it on word boundaries and drops
// stopwords. The fast mode scans runes directly; the regexp mode exists for
// parity with corpora indexed by the pattern-based tokenizer.
type Tokenizer struct {
	stopwords map[string]struct{}
	fast      bool
}

// NewTokenizer creates an English Tokenizer. fast selects the
// rune-scanning splitter.
func NewTokenizer(fast bool) *Tokenizer {
	return NewTokenizerForLang(fast, "en")
}

// NewTokenizerForLang creates a Tokenizer for the given index language.
// Stopword removal only exists for English; other languages keep every
// term.
func NewTokenizerForLang(fast bool, lang string) *Tokenizer {
	stopwords := map[string]struct{}{}
	if lang == "" || lang == "en" {
		stopwords = defaultStopwords()
	}
	return &Tokenizer{
		stopwords: stopwords,
		fast:      fast,
	}
}

// Tokenize splits text into normalized index terms.
func (t *Tokenizer) Tokenize(text string) []string {
	var words []string
	if t.fast {
		words = scanWords(text)
	} else {
		words = wordPattern.FindAllString(text, -1)
	}

	tokens := make([]string, 0, len(words))
	for _, word := range words {
		word = strings.ToLower(word)
		if len(word) < 2 {
			continue
		}
		if _, isStop := t.stopwords[word]; isStop {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

func scanWords(text string) []string {
	var words []string
	var current strings.Builder

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			current.WriteRune(r)
			continue
		}
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}

	return words
}

func defaultStopwords() map[string]struct{} {
	stops := []string{
		"a", "an", "and", "are", "as", "at", "be", "by", "for",
		"from", "has", "he", "in", "is", "it", "its", "of", "on",
		"that", "the", "to", "was", "were", "will", "with", "this",
		"have", "had", "but", "not", "you", "your", "we", "our",
		"they", "their", "she", "her", "his", "if", "or", "so",
		"do", "does", "did", "been", "being", "would", "could",
		"should", "may", "might", "must", "shall",
	}
	m := make(map[string]struct{}, len(stops))
	for _, s := range stops {
		m[s] = struct{}{}
	}
	return m
}
