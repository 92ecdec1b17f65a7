package analyzer

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tok := NewTokenizer(true)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "question",
			text: "What is the capital of France?",
			want: []string{"what", "capital", "france"},
		},
		{
			name: "stopwords and case",
			text: "The CAPITAL of the country",
			want: []string{"capital", "country"},
		},
		{
			name: "digits and underscores",
			text: "doc_42 revision 7b",
			want: []string{"doc_42", "revision", "7b"},
		},
		{
			name: "punctuation only",
			text: "... !!! ---",
			want: nil,
		},
		{
			name: "single letters dropped",
			text: "a b c paris",
			want: []string{"paris"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tok.Tokenize(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTokenizeModesAgree(t *testing.T) {
	fast := NewTokenizer(true)
	slow := NewTokenizer(false)

	texts := []string{
		"Paris is the capital and most populous city of France.",
		"Thành phố Hồ Chí Minh",
		"edge-cases: hyphen-ated, under_scored, 3.14",
	}

	for _, text := range texts {
		a := fast.Tokenize(text)
		b := slow.Tokenize(text)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("tokenizer modes disagree on %q: fast=%v regexp=%v", text, a, b)
		}
	}
}
