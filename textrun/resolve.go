package textrun

import (
	"github.com/ByLCY/wordsplit/style"
	"github.com/ByLCY/wordsplit/token"
)

// Resolve returns the style effective at the start of tok. The index is
// clamped to the last character; an invalid index or a failing lookup falls
// back to the first character's style and then to the run default. Resolve
// never fails.
func Resolve(tok token.Token, src Source) (st style.Attributes) {
	if src == nil {
		return style.Attributes{}
	}
	defer func() {
		if r := recover(); r != nil {
			tracer().Errorf("style lookup panicked at %d: %v", tok.Start, r)
			st = src.DefaultStyle()
		}
	}()

	last := src.Len() - 1
	idx := tok.Start
	if idx > last {
		idx = last
	}
	if idx < 0 {
		return firstCharStyle(src)
	}
	s, err := src.StyleAt(idx)
	if err != nil {
		tracer().Debugf("style lookup at %d failed: %v", idx, err)
		return firstCharStyle(src)
	}
	return s
}

func firstCharStyle(src Source) style.Attributes {
	if src.Len() > 0 {
		if s, err := src.StyleAt(0); err == nil {
			return s
		}
	}
	return src.DefaultStyle()
}
