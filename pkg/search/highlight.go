package search

import (
	"slices"
	"strings"
)

// Range is a half-open span of rune offsets [Start, End) within a string.
type Range struct {
	Start int
	End   int
}

// HighlightRanges returns the spans of text that matched query, in rune
// offsets. A substring match yields its first occurrence; otherwise the
// characters consumed by the fuzzy walk are returned, merged into runs.
// Nil means nothing to highlight.
func HighlightRanges(text, query string) []Range {
	q := lowerRunes(strings.TrimSpace(query))
	if len(q) == 0 {
		return nil
	}
	t := lowerRunes(text)

	if idx := runeIndex(t, q); idx >= 0 {
		return []Range{{Start: idx, End: idx + len(q)}}
	}

	var ranges []Range
	matched := 0
	for i, r := range t {
		if matched == len(q) {
			break
		}
		if r != q[matched] {
			continue
		}
		matched++
		if n := len(ranges); n > 0 && ranges[n-1].End == i {
			ranges[n-1].End = i + 1
		} else {
			ranges = append(ranges, Range{Start: i, End: i + 1})
		}
	}

	if matched < len(q) {
		return nil
	}
	return ranges
}

// Highlight wraps each matched span of text with style. Unmatched text is
// copied through unchanged.
func Highlight(text, query string, style func(string) string) string {
	ranges := HighlightRanges(text, query)
	if len(ranges) == 0 || style == nil {
		return text
	}

	rs := []rune(text)
	var b strings.Builder
	prev := 0
	for _, r := range ranges {
		b.WriteString(string(rs[prev:r.Start]))
		b.WriteString(style(string(rs[r.Start:r.End])))
		prev = r.End
	}
	b.WriteString(string(rs[prev:]))
	return b.String()
}

func runeIndex(haystack, needle []rune) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if slices.Equal(haystack[i:i+len(needle)], needle) {
			return i
		}
	}
	return -1
}
