/*
Package measure turns an unreliable width oracle into a width that is always
usable for layout.

An Oracle reports the rendered width of a text under a style. Real oracles are
backed by a rendering host and may return zero, NaN or an error, for example
for tabs or when metrics are not available yet. The Adapter never propagates
such failures; it walks a fixed ladder instead:

  - the oracle's answer, if finite and positive,
  - for text containing tabs, the oracle's answer with every tab replaced by
    TabSpaces spaces,
  - Estimate(text, fontSize).

Hosts that measure through disposable objects implement ProbeHost and are
wrapped by ProbeOracle, which releases every probe it creates.
*/
package measure

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/schuko/tracing"

	"github.com/ByLCY/wordsplit/style"
)

// tracer traces with key 'wordsplit.measure'.
func tracer() tracing.Trace {
	return tracing.Select("wordsplit.measure")
}

const (
	// TabSpaces is the number of spaces a tab is re-measured as.
	TabSpaces = 4
	// EstimateFactor is the average advance of a character relative to the
	// font size used by Estimate.
	EstimateFactor = 0.55
)

// Oracle measures the rendered width of text under a style.
type Oracle interface {
	Measure(text string, st style.Attributes) (float64, error)
}

// OracleFunc adapts a plain function to Oracle.
type OracleFunc func(text string, st style.Attributes) (float64, error)

func (f OracleFunc) Measure(text string, st style.Attributes) (float64, error) {
	return f(text, st)
}

// Valid reports whether w is a finite, positive width.
func Valid(w float64) bool {
	return w > 0 && !math.IsInf(w, 0) && !math.IsNaN(w)
}

// Estimate returns max(1, characters × fontSize × EstimateFactor).
func Estimate(text string, fontSize float64) float64 {
	n := float64(utf8.RuneCountInString(text))
	return math.Max(1, n*fontSize*EstimateFactor)
}

// Stats counts which rung of the ladder produced each width.
type Stats struct {
	Measured  int `json:"measured"`
	TabRetry  int `json:"tabRetry"`
	Estimated int `json:"estimated"`
}

// Adapter applies the fallback ladder on top of an Oracle. A nil Oracle makes
// every measurement an estimate.
type Adapter struct {
	Oracle Oracle
	stats  Stats
}

// NewAdapter wraps o.
func NewAdapter(o Oracle) *Adapter {
	return &Adapter{Oracle: o}
}

// Measure returns a positive width for text. Empty text measures 0.
func (a *Adapter) Measure(text string, st style.Attributes) float64 {
	if text == "" {
		return 0
	}
	if w, ok := a.ask(text, st); ok {
		a.stats.Measured++
		return w
	}
	return a.fallback(text, st)
}

// Settle checks a width reported by someone else, typically a placed unit,
// and runs the fallback ladder when it is not usable.
func (a *Adapter) Settle(w float64, text string, st style.Attributes) float64 {
	if Valid(w) {
		a.stats.Measured++
		return w
	}
	tracer().Debugf("placed %q reported width %g, re-measuring", text, w)
	return a.Measure(text, st)
}

// Stats returns the counters collected so far.
func (a *Adapter) Stats() Stats { return a.stats }

func (a *Adapter) fallback(text string, st style.Attributes) float64 {
	if strings.ContainsRune(text, '\t') {
		spaced := strings.ReplaceAll(text, "\t", strings.Repeat(" ", TabSpaces))
		if w, ok := a.ask(spaced, st); ok {
			tracer().Debugf("tab fallback for %q: %g", text, w)
			a.stats.TabRetry++
			return w
		}
	}
	w := Estimate(text, st.FontSize())
	tracer().Debugf("estimated width of %q at %gpt: %g", text, st.FontSize(), w)
	a.stats.Estimated++
	return w
}

func (a *Adapter) ask(text string, st style.Attributes) (float64, bool) {
	if a.Oracle == nil {
		return 0, false
	}
	w, err := a.Oracle.Measure(text, st)
	if err != nil {
		tracer().Debugf("oracle failed on %q: %v", text, err)
		return 0, false
	}
	return w, Valid(w)
}
