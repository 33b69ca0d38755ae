// Package token splits raw text into words, whitespace runs and hard line
// breaks, keeping the exact substrings and their character offsets.
package token

import (
	"strings"
	"unicode/utf8"
)

// Kind classifies a token.
type Kind int

const (
	Word Kind = iota
	Whitespace
	LineBreak
)

func (k Kind) String() string {
	switch k {
	case Word:
		return "word"
	case Whitespace:
		return "whitespace"
	case LineBreak:
		return "linebreak"
	default:
		return "unknown"
	}
}

// MarshalText makes kinds readable in debug JSON.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Newline is the single line-break form every CR and CRLF is normalized to.
const Newline = '\n'

// Token is a contiguous slice of the normalized text. Start and End are
// character (rune) offsets, End is exclusive.
type Token struct {
	Kind  Kind   `json:"kind"`
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Len returns the number of characters covered by t.
func (t Token) Len() int { return t.End - t.Start }

// IsSpace reports whether r belongs to a whitespace run: space, tab or
// no-break space.
func IsSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\u00a0'
}

// Normalize folds CRLF and lone CR into Newline.
func Normalize(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Tokenize normalizes s and splits it into tokens. The concatenation of the
// token texts equals Normalize(s). An empty string yields no tokens.
func Tokenize(s string) []Token {
	s = Normalize(s)
	if s == "" {
		return nil
	}
	tokens := make([]Token, 0, utf8.RuneCountInString(s)/4+1)

	var (
		kind      Kind
		startByte int
		startChar int
		open      bool
	)
	char := 0
	flush := func(endByte int) {
		if !open {
			return
		}
		tokens = append(tokens, Token{Kind: kind, Text: s[startByte:endByte], Start: startChar, End: char})
		open = false
	}

	for i, r := range s {
		k := classify(r)
		if open && (k != kind || k == LineBreak) {
			flush(i)
		}
		if !open {
			kind, startByte, startChar, open = k, i, char, true
		}
		char++
	}
	flush(len(s))
	return tokens
}

// Join concatenates the token texts.
func Join(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}

// Count returns how many tokens of kind k the sequence holds.
func Count(tokens []Token, k Kind) int {
	n := 0
	for _, t := range tokens {
		if t.Kind == k {
			n++
		}
	}
	return n
}

func classify(r rune) Kind {
	switch {
	case r == Newline:
		return LineBreak
	case IsSpace(r):
		return Whitespace
	default:
		return Word
	}
}
