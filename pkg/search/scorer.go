package search

import (
	"strings"
	"unicode"
)

// Match scores returned by ScoreMatch. A fuzzy match scores between
// FuzzyBase and the substring scores; NoMatch means the query is not
// a subsequence of the text.
const (
	ScoreExact         = 1000
	ScorePrefix        = 800
	ScoreWordSubstring = 600
	ScoreSubstring     = 400
	FuzzyBase          = 100
	NoMatch            = 0

	fuzzyRatioWeight = 200
	fuzzyRunWeight   = 10
)

// ScoreMatch scores how well query matches text, case-insensitively.
//
// Exact, prefix and substring matches get fixed scores (a substring that
// starts one of text's whitespace-separated words ranks above one that
// doesn't). Anything else falls back to a greedy subsequence walk that
// rewards the share of text covered and the longest consecutive run.
func ScoreMatch(text, query string) int {
	t := lowerRunes(text)
	q := lowerRunes(query)
	lt, lq := string(t), string(q)

	switch {
	case lt == lq:
		return ScoreExact
	case strings.HasPrefix(lt, lq):
		return ScorePrefix
	case strings.Contains(lt, lq):
		if startsWord(lt, lq) {
			return ScoreWordSubstring
		}
		return ScoreSubstring
	}

	return fuzzyScore(t, q)
}

func fuzzyScore(text, query []rune) int {
	if len(query) == 0 || len(text) == 0 {
		return NoMatch
	}

	matched, run, maxRun := 0, 0, 0
	for _, r := range text {
		if matched == len(query) {
			break
		}
		if r == query[matched] {
			matched++
			run++
			maxRun = max(maxRun, run)
		} else {
			run = 0
		}
	}

	if matched < len(query) {
		return NoMatch
	}

	ratio := float64(matched) / float64(len(text))
	return int(float64(FuzzyBase) + ratio*fuzzyRatioWeight + float64(maxRun*fuzzyRunWeight))
}

// startsWord reports whether any whitespace-delimited token of text
// begins with query. Both arguments are already lowercased.
func startsWord(text, query string) bool {
	for _, word := range strings.Fields(text) {
		if strings.HasPrefix(word, query) {
			return true
		}
	}
	return false
}

// lowerRunes lowercases rune by rune so indices into the result line up
// with indices into []rune(s).
func lowerRunes(s string) []rune {
	rs := []rune(s)
	for i, r := range rs {
		rs[i] = unicode.ToLower(r)
	}
	return rs
}
