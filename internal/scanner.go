package internal

import (
	"regexp"
)

// Span is a half-open byte range [Start, End) within a scanned buffer.
// A span may be empty (Start == End) for zero-width matches.
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int    { return s.End - s.Start }
func (s Span) Empty() bool { return s.Start == s.End }

// Bytes returns the slice of buf the span covers.
func (s Span) Bytes(buf []byte) []byte { return buf[s.Start:s.End] }

// MatchIter lazily yields the matcher's non-overlapping matches, left to
// right in ascending start order. Each Next performs one engine search;
// no match list is ever buffered, so buffers with millions of matches
// cost only the iterator state.
type MatchIter struct {
	re      *regexp.Regexp
	buf     []byte
	pos     int
	prevEnd int
	done    bool
}

// Matches returns a lazy iterator over the matches in buf.
func (m *Matcher) Matches(buf []byte) *MatchIter {
	return &MatchIter{re: m.re, buf: buf, prevEnd: -1}
}

// Next returns the next match span; ok is false once buf is exhausted.
func (it *MatchIter) Next() (Span, bool) {
	for !it.done && it.pos <= len(it.buf) {
		loc := it.re.FindIndex(it.buf[it.pos:])
		if loc == nil {
			break
		}
		sp := Span{Start: it.pos + loc[0], End: it.pos + loc[1]}
		if sp.Empty() {
			// A zero-width match advances the scan by one byte. One
			// sitting exactly at the previous match's end is suppressed,
			// matching the engine's own FindAll discipline.
			it.pos = sp.Start + 1
			if sp.Start == it.prevEnd {
				continue
			}
		} else {
			it.pos = sp.End
		}
		it.prevEnd = sp.End
		return sp, true
	}
	it.done = true
	return Span{}, false
}

// GapIter derives the maximal contiguous regions of the buffer not
// covered by any match. Gaps are the unit of inverse matching: adjacent
// matches leave no gap between them, and a pattern covering the whole
// buffer yields zero gaps. Every emitted gap is non-empty.
type GapIter struct {
	matches *MatchIter
	buf     []byte
	end     int // exclusive end of the prefix already accounted for
	done    bool
}

// Gaps returns a lazy iterator over the gaps in buf.
func (m *Matcher) Gaps(buf []byte) *GapIter {
	return &GapIter{matches: m.Matches(buf), buf: buf}
}

// Next returns the next gap span; ok is false once buf is exhausted.
func (it *GapIter) Next() (Span, bool) {
	if it.done {
		return Span{}, false
	}
	for {
		sp, ok := it.matches.Next()
		if !ok {
			break
		}
		gap := Span{Start: it.end, End: sp.Start}
		// The cursor only ever moves forward; a zero-width match never
		// pulls it back behind a longer match already accounted for.
		if sp.End > it.end {
			it.end = sp.End
		}
		if gap.End > gap.Start {
			return gap, true
		}
	}
	it.done = true
	if it.end < len(it.buf) {
		return Span{Start: it.end, End: len(it.buf)}, true
	}
	return Span{}, false
}
