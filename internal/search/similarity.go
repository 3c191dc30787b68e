package search

import "github.com/xrash/smetrics"

// Similarity returns a normalised closeness ratio in [0, 1] between two
// strings: 1 for identical inputs, 0 when either side is empty, and in
// between a Levenshtein ratio with substitutions costing 2, so the
// value never increases as edit distance grows. Symmetric in its
// arguments.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	dist := smetrics.WagnerFischer(a, b, 1, 1, 2)
	return 1 - float64(dist)/float64(len(a)+len(b))
}
