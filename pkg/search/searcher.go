// Package search ranks palette candidates against a typed query.
package search

import (
	"slices"
	"strings"
)

const (
	// DefaultLimit is the number of results kept when Options.Limit is unset.
	DefaultLimit = 10

	// DefaultMinScore drops anything weaker than a bare fuzzy match.
	DefaultMinScore = FuzzyBase
)

// Searchable is anything the palette can rank. The title is the primary
// matchable field; aliases are alternates such as synonyms.
type Searchable interface {
	SearchTitle() string
	SearchAliases() []string
}

// Result is a ranked item along with the string that produced its score.
type Result[T Searchable] struct {
	Item        T      `json:"item" yaml:"item"`
	Score       int    `json:"score" yaml:"score"`
	MatchedText string `json:"matched_text" yaml:"matched_text"`
}

// Options tunes SearchItems. Zero values select the defaults.
type Options[T Searchable] struct {
	Limit    int
	MinScore int

	// Boost, if set, is added to every item's score. With an empty
	// query it is the whole score.
	Boost func(T) int
}

func (o Options[T]) limit() int {
	if o.Limit <= 0 {
		return DefaultLimit
	}
	return o.Limit
}

func (o Options[T]) minScore() int {
	if o.MinScore <= 0 {
		return DefaultMinScore
	}
	return o.MinScore
}

func (o Options[T]) boost(item T) int {
	if o.Boost == nil {
		return 0
	}
	return o.Boost(item)
}

// SearchItems scores items against query and returns the best matches,
// highest score first. Equal scores keep their input order.
//
// A blank query matches everything and ranks purely by boost, which lets
// callers show recents before anything has been typed.
func SearchItems[T Searchable](items []T, query string, opts Options[T]) []Result[T] {
	query = strings.TrimSpace(query)

	results := make([]Result[T], 0, len(items))
	if query == "" {
		for _, item := range items {
			results = append(results, Result[T]{
				Item:        item,
				Score:       opts.boost(item),
				MatchedText: item.SearchTitle(),
			})
		}
	} else {
		minScore := opts.minScore()
		for _, item := range items {
			best, text := bestMatch(item, query)
			score := best + opts.boost(item)
			if score < minScore {
				continue
			}
			results = append(results, Result[T]{Item: item, Score: score, MatchedText: text})
		}
	}

	slices.SortStableFunc(results, func(a, b Result[T]) int {
		return b.Score - a.Score
	})

	if limit := opts.limit(); len(results) > limit {
		results = results[:limit]
	}
	return results
}

// bestMatch scores the title and each alias, keeping the first maximum.
func bestMatch[T Searchable](item T, query string) (int, string) {
	text := item.SearchTitle()
	best := ScoreMatch(text, query)

	for _, alias := range item.SearchAliases() {
		if score := ScoreMatch(alias, query); score > best {
			best, text = score, alias
		}
	}
	return best, text
}
