package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHighlightRanges(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		query string
		want  []Range
	}{
		{"substring", "Hello World", "wor", []Range{{6, 9}}},
		{"first occurrence only", "banana", "an", []Range{{1, 3}}},
		{"prefix", "Billing", "BILL", []Range{{0, 4}}},
		{"fuzzy single chars", "Settings", "stg", []Range{{0, 1}, {2, 3}, {6, 7}}},
		{"fuzzy merges runs", "abxc", "abc", []Range{{0, 2}, {3, 4}}},
		{"no match", "abc", "xyz", nil},
		{"partial subsequence", "abc", "abd", nil},
		{"empty query", "abc", "  ", nil},
		{"rune offsets", "Über Uns", "uns", []Range{{5, 8}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HighlightRanges(tt.text, tt.query))
		})
	}
}

func TestHighlight(t *testing.T) {
	brackets := func(s string) string { return "[" + s + "]" }

	assert.Equal(t, "[Bill]ing", Highlight("Billing", "bill", brackets))
	assert.Equal(t, "[S]e[t]tin[g]s", Highlight("Settings", "stg", brackets))
	assert.Equal(t, "Ü[ber]", Highlight("Über", "ber", brackets))
	assert.Equal(t, "abc", Highlight("abc", "xyz", brackets))
	assert.Equal(t, "abc", Highlight("abc", "b", nil))
}
