package token

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeHelloWorld(t *testing.T) {
	tokens := Tokenize("Hello  world\nfoo")
	want := []Token{
		{Kind: Word, Text: "Hello", Start: 0, End: 5},
		{Kind: Whitespace, Text: "  ", Start: 5, End: 7},
		{Kind: Word, Text: "world", Start: 7, End: 12},
		{Kind: LineBreak, Text: "\n", Start: 12, End: 13},
		{Kind: Word, Text: "foo", Start: 13, End: 16},
	}
	assert.Equal(t, want, tokens)
}

func TestTokenizeEmpty(t *testing.T) {
	assert.Empty(t, Tokenize(""))
	assert.Equal(t, "", Join(nil))
}

func TestTokenizeNormalizesLineBreaks(t *testing.T) {
	tokens := Tokenize("a\r\nb\rc\n\r\nd")
	assert.Equal(t, "a\nb\nc\n\nd", Join(tokens))
	assert.Equal(t, 4, Count(tokens, LineBreak))
	assert.Equal(t, 4, Count(tokens, Word))
	for _, tok := range tokens {
		if tok.Kind == LineBreak {
			assert.Equal(t, "\n", tok.Text, "line breaks are single tokens")
		}
	}
}

func TestTokenizeMergesMixedWhitespace(t *testing.T) {
	tokens := Tokenize("a \t  b")
	require.Len(t, tokens, 3)
	assert.Equal(t, Whitespace, tokens[1].Kind)
	assert.Equal(t, " \t  ", tokens[1].Text)
	assert.Equal(t, 1, tokens[1].Start)
	assert.Equal(t, 5, tokens[1].End, "offsets count characters, not bytes")
}

func TestTokenizeBlankLines(t *testing.T) {
	tokens := Tokenize("A\n\nB")
	kinds := make([]Kind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	assert.Equal(t, []Kind{Word, LineBreak, LineBreak, Word}, kinds)
}

func TestTokenizeRoundTripAndCoverage(t *testing.T) {
	inputs := []string{
		"",
		" ",
		"\n",
		"word",
		"  leading and trailing  ",
		"tab\there",
		"multi\r\n\r\nline\rtext",
		"ünïcödé  wörds\u00a0nbsp",
		"\t\t\n\n  x",
		"a\u2003b", // em space is not in the whitespace class
	}
	for _, in := range inputs {
		tokens := Tokenize(in)
		norm := Normalize(in)
		assert.Equal(t, norm, Join(tokens), "round trip of %q", in)

		next := 0
		for _, tok := range tokens {
			assert.Equal(t, next, tok.Start, "tokens are contiguous in %q", in)
			assert.Equal(t, utf8.RuneCountInString(tok.Text), tok.Len())
			next = tok.End
			for _, r := range tok.Text {
				switch tok.Kind {
				case Word:
					assert.False(t, IsSpace(r) || r == Newline, "word %q holds separator", tok.Text)
				case Whitespace:
					assert.True(t, IsSpace(r), "whitespace %q holds %q", tok.Text, r)
				case LineBreak:
					assert.Equal(t, Newline, r)
				}
			}
		}
		assert.Equal(t, utf8.RuneCountInString(norm), next, "every character covered in %q", in)
	}
}

func TestTokenizeDeterministic(t *testing.T) {
	in := "The quick\tbrown\r\nfox  jumps"
	assert.Equal(t, Tokenize(in), Tokenize(in))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "word", Word.String())
	assert.Equal(t, "whitespace", Whitespace.String())
	assert.Equal(t, "linebreak", LineBreak.String())
	b, err := LineBreak.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "linebreak", string(b))
}
