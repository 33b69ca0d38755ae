// Package textrun models a styled run of source text and resolves the
// character style a token starts with.
package textrun

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/npillmayer/schuko/tracing"

	"github.com/ByLCY/wordsplit/style"
	"github.com/ByLCY/wordsplit/token"
)

// tracer traces with key 'wordsplit.textrun'.
func tracer() tracing.Trace {
	return tracing.Select("wordsplit.textrun")
}

// ErrIndexOutOfRange is returned by StyleAt for an index outside the run.
var ErrIndexOutOfRange = errors.New("character index out of range")

// Source is the read side of a styled text object as the layout needs it.
// Hosts other than Run may implement it.
type Source interface {
	Contents() string
	// Len is the number of characters (runes) of Contents.
	Len() int
	StyleAt(i int) (style.Attributes, error)
	// DefaultStyle is the run-wide style used when nothing else resolves.
	DefaultStyle() style.Attributes
}

// Point is an anchor offset in pt.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Span overrides style attributes for characters [Start, End).
type Span struct {
	Start int              `json:"start"`
	End   int              `json:"end"`
	Style style.Attributes `json:"style"`
}

// Run is an immutable styled text run.
type Run struct {
	Name   string           `json:"name"`
	Text   string           `json:"text"`
	Base   style.Attributes `json:"base"`
	Spans  []Span           `json:"spans,omitempty"`
	Offset Point            `json:"offset"` // relative to the artboard anchor, y grows downward
	length int
}

var _ Source = (*Run)(nil)

// New builds a run with line breaks normalized, so span offsets and token
// offsets address the same characters.
func New(name, text string, base style.Attributes, spans ...Span) *Run {
	text = token.Normalize(text)
	r := &Run{
		Name:   name,
		Text:   text,
		Base:   style.Clone(base),
		length: utf8.RuneCountInString(text),
	}
	for _, sp := range spans {
		if sp.End <= sp.Start {
			tracer().Debugf("run %q: dropping empty span [%d,%d)", name, sp.Start, sp.End)
			continue
		}
		r.Spans = append(r.Spans, Span{Start: sp.Start, End: sp.End, Style: style.Clone(sp.Style)})
	}
	return r
}

func (r *Run) Contents() string { return r.Text }

func (r *Run) Len() int { return r.length }

func (r *Run) DefaultStyle() style.Attributes { return style.Clone(r.Base) }

// StyleAt returns the style of character i: the base style with every span
// covering i applied in order. The base style is assigned to every character.
func (r *Run) StyleAt(i int) (style.Attributes, error) {
	if i < 0 || i >= r.length {
		return style.Attributes{}, fmt.Errorf("run %q: %w: %d (len %d)", r.Name, ErrIndexOutOfRange, i, r.length)
	}
	st := style.Clone(r.Base)
	for _, sp := range r.Spans {
		if i >= sp.Start && i < sp.End {
			style.Copy(&st, sp.Style)
		}
	}
	return st, nil
}
