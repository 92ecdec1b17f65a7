package cli

import (
	"reflect"
	"testing"
)

func TestParseProcessLine(t *testing.T) {
	tests := []struct {
		name     string
		args     string
		question string
		topN     int
		nDocs    int
		wantErr  bool
	}{
		{
			name:     "quoted question",
			args:     ` "What is the capital of France?"`,
			question: "What is the capital of France?",
		},
		{
			name:     "bare words",
			args:     ` what is the capital of France?`,
			question: "what is the capital of France?",
		},
		{
			name:     "with top_n",
			args:     ` "capital of France?" top_n=1`,
			question: "capital of France?",
			topN:     1,
		},
		{
			name:     "with both settings",
			args:     ` capital of France top_n=2 n_docs=10`,
			question: "capital of France",
			topN:     2,
			nDocs:    10,
		},
		{
			name:     "settings before question",
			args:     ` top_n=5 "who wrote Hamlet?"`,
			question: "who wrote Hamlet?",
			topN:     5,
		},
		{
			name:     "single quotes",
			args:     ` 'who wrote Hamlet?' n_docs=3`,
			question: "who wrote Hamlet?",
			nDocs:    3,
		},
		{
			name:    "missing question",
			args:    ` top_n=1`,
			wantErr: true,
		},
		{
			name:    "empty",
			args:    ``,
			wantErr: true,
		},
		{
			name:    "non-integer top_n",
			args:    ` question top_n=abc`,
			wantErr: true,
		},
		{
			name:    "zero top_n",
			args:    ` question top_n=0`,
			wantErr: true,
		},
		{
			name:    "negative n_docs",
			args:    ` question n_docs=-2`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			question, topN, nDocs, err := parseProcessLine(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseProcessLine(%q) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if question != tt.question {
				t.Errorf("question = %q, want %q", question, tt.question)
			}
			if topN != tt.topN {
				t.Errorf("topN = %d, want %d", topN, tt.topN)
			}
			if nDocs != tt.nDocs {
				t.Errorf("nDocs = %d, want %d", nDocs, tt.nDocs)
			}
		})
	}
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{`a b c`, []string{"a", "b", "c"}},
		{`"a b" c`, []string{"a b", "c"}},
		{`'a b' "c d"`, []string{"a b", "c d"}},
		{`unterminated "quote swallows rest`, []string{"unterminated", "quote swallows rest"}},
		{`  spaced   out  `, []string{"spaced", "out"}},
		{``, nil},
	}

	for _, tt := range tests {
		got := splitArgs(tt.in)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitArgs(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFirstWord(t *testing.T) {
	if got := firstWord("hello world"); got != "hello" {
		t.Errorf("firstWord = %q", got)
	}
	if got := firstWord("single"); got != "single" {
		t.Errorf("firstWord = %q", got)
	}
}
