// Package search implements the fuzzy search and ranking engine.
//
// The engine is a pure function of (corpus, query): it holds no state,
// performs no I/O, and never mutates the snippets it is given, so it is
// safe to call concurrently as long as the caller does not mutate the
// corpus mid-call. Interactive callers re-invoke it on every keystroke
// and simply discard stale results.
package search

import (
	"sort"
	"strings"

	"github.com/snip-dev/snip/internal/snippet"
)

// Field identifies which snippet field produced a match's score.
type Field string

const (
	FieldNone    Field = "none"
	FieldName    Field = "name"
	FieldTags    Field = "tags"
	FieldContent Field = "content"
)

// Query describes one search invocation.
type Query struct {
	// Text is the free-text query. Empty text returns every snippet
	// that survives the filters, in browse order.
	Text string
	// Language, when set, keeps only snippets whose language equals it
	// (case-insensitive).
	Language string
	// Tag, when set, keeps only snippets carrying that exact tag
	// (case-insensitive).
	Tag string
	// Limit caps the result length. Zero means unlimited; a negative
	// limit yields no results.
	Limit int
}

// Match pairs a snippet with its relevance score and the field that
// produced it.
type Match struct {
	Snippet snippet.Snippet `json:"snippet"`
	Score   int             `json:"score"`
	Field   Field           `json:"field"`
}

// Weights holds the scoring constants. Exact and substring hits are
// fixed scores; fuzzy fallbacks scale a [0,1] similarity ratio by the
// corresponding FuzzyScale, so a fuzzy hit can never reach the
// substring tier of the same field. Name outranks tags outranks
// content: content is long and noisy, so the same ratio there is a
// weaker signal than against a short name.
type Weights struct {
	NameExact         int `toml:"name_exact"`
	NameSubstring     int `toml:"name_substring"`
	NameFuzzyScale    int `toml:"name_fuzzy_scale"`
	TagExact          int `toml:"tag_exact"`
	TagSubstring      int `toml:"tag_substring"`
	TagFuzzyScale     int `toml:"tag_fuzzy_scale"`
	ContentSubstring  int `toml:"content_substring"`
	ContentFuzzyScale int `toml:"content_fuzzy_scale"`

	// Baseline is the uniform score assigned to every surviving
	// snippet when the query text is empty.
	Baseline int `toml:"baseline"`

	// ContentSimilarityCap bounds how many bytes of content the fuzzy
	// fallback examines. Substring containment always checks the full
	// content; past the cap, extra characters add negligible signal to
	// the ratio while costing quadratic time.
	ContentSimilarityCap int `toml:"content_similarity_cap"`
}

// DefaultWeights returns the standard scoring tiers.
func DefaultWeights() Weights {
	return Weights{
		NameExact:            100,
		NameSubstring:        95,
		NameFuzzyScale:       90,
		TagExact:             90,
		TagSubstring:         80,
		TagFuzzyScale:        70,
		ContentSubstring:     85,
		ContentFuzzyScale:    60,
		Baseline:             100,
		ContentSimilarityCap: 512,
	}
}

// Engine ranks snippets against queries using a fixed set of weights.
type Engine struct {
	weights Weights
}

// NewEngine creates an engine. A zero-value Weights falls back to
// DefaultWeights.
func NewEngine(w Weights) *Engine {
	if w == (Weights{}) {
		w = DefaultWeights()
	}
	return &Engine{weights: w}
}

// Search filters, scores, sorts, and truncates the corpus for the given
// query. It never returns an error: degenerate inputs (empty corpus,
// empty query, negative limit, arbitrary unicode) all produce a valid,
// possibly empty, result.
func (e *Engine) Search(corpus []snippet.Snippet, q Query) []Match {
	if q.Limit < 0 {
		return nil
	}

	text := normalize(q.Text)
	language := normalize(q.Language)
	tag := normalize(q.Tag)

	matches := make([]Match, 0, len(corpus))
	for _, sn := range corpus {
		if language != "" && strings.ToLower(sn.Language) != language {
			continue
		}
		if tag != "" && !sn.HasTag(tag) {
			continue
		}

		if text == "" {
			matches = append(matches, Match{Snippet: sn, Score: e.weights.Baseline, Field: FieldNone})
			continue
		}

		score, field := e.score(text, sn)
		if score <= 0 {
			continue
		}
		matches = append(matches, Match{Snippet: sn, Score: score, Field: field})
	}

	sortMatches(matches)

	if q.Limit > 0 && len(matches) > q.Limit {
		matches = matches[:q.Limit]
	}
	return matches
}

// score computes the snippet's final score as the maximum of the three
// field scores, along with the winning field.
func (e *Engine) score(query string, sn snippet.Snippet) (int, Field) {
	best, field := e.scoreName(query, sn.Name), FieldName

	if s := e.scoreTags(query, sn.Tags); s > best {
		best, field = s, FieldTags
	}
	// A name exact hit cannot be beaten; skip the content scan.
	if best >= e.weights.NameExact {
		return best, field
	}
	if s := e.scoreContent(query, sn.Content); s > best {
		best, field = s, FieldContent
	}
	return best, field
}

func (e *Engine) scoreName(query, name string) int {
	name = normalize(name)
	if query == name {
		return e.weights.NameExact
	}
	if strings.Contains(name, query) {
		return e.weights.NameSubstring
	}
	return int(Similarity(query, name) * float64(e.weights.NameFuzzyScale))
}

func (e *Engine) scoreTags(query string, tags []string) int {
	best := 0
	for _, tag := range tags {
		tag = normalize(tag)
		var s int
		switch {
		case tag == query:
			s = e.weights.TagExact
		case strings.Contains(tag, query):
			s = e.weights.TagSubstring
		default:
			s = int(Similarity(query, tag) * float64(e.weights.TagFuzzyScale))
		}
		if s > best {
			best = s
		}
		if best >= e.weights.TagExact {
			break
		}
	}
	return best
}

func (e *Engine) scoreContent(query, content string) int {
	content = normalize(content)
	if strings.Contains(content, query) {
		return e.weights.ContentSubstring
	}
	if limit := e.weights.ContentSimilarityCap; limit > 0 && len(content) > limit {
		content = content[:limit]
	}
	return int(Similarity(query, content) * float64(e.weights.ContentFuzzyScale))
}

// sortMatches orders by score descending, then name ascending
// (case-insensitive), then ID ascending. The last key makes the order
// total, so identical calls always produce identical output even for
// duplicate-score, duplicate-name corpora.
func sortMatches(matches []Match) {
	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		an, bn := strings.ToLower(a.Snippet.Name), strings.ToLower(b.Snippet.Name)
		if an != bn {
			return an < bn
		}
		return a.Snippet.ID < b.Snippet.ID
	})
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
