package merge

import (
	"runtime"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"
)

// Policy controls what happens to left rows without a match above cutoff.
type Policy string

const (
	// PolicyInner drops unmatched left rows.
	PolicyInner Policy = "inner"
	// PolicyOuter keeps unmatched left rows with right-side fields empty.
	PolicyOuter Policy = "outer"
)

// ParsePolicy converts a config string into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyInner, PolicyOuter:
		return Policy(s), nil
	default:
		return "", eris.Errorf(`merge: unknown join policy %q (valid: "inner", "outer")`, s)
	}
}

// Matcher is a read-only nearest-neighbor index over a set of normalized
// names, scored with the weighted ratio. Safe for concurrent use.
type Matcher struct {
	names  []string
	cutoff int
}

// NewMatcher builds a matcher over names with the given score cutoff.
func NewMatcher(names []string, cutoff int) *Matcher {
	return &Matcher{names: names, cutoff: cutoff}
}

// Best returns the single best-scoring name for query, or ok=false when no
// candidate reaches the cutoff. Exact matches short-circuit the scan.
func (m *Matcher) Best(query string) (name string, score int, ok bool) {
	bestScore := -1
	bestIdx := -1
	for i, candidate := range m.names {
		if candidate == query {
			return candidate, 100, true
		}
		if s := fuzzy.WRatio(query, candidate); s > bestScore {
			bestScore = s
			bestIdx = i
		}
	}
	if bestIdx < 0 || bestScore < m.cutoff {
		return "", 0, false
	}
	return m.names[bestIdx], bestScore, true
}

// JoinOptions configures a fuzzy join.
type JoinOptions struct {
	Cutoff  int
	Policy  Policy
	Workers int // matching shards; <=0 means GOMAXPROCS
}

// Join fuzzy-joins each left row to the first right row whose name is the
// best match for the left key. Matching is sharded across workers; the only
// shared state is the read-only matcher and right-side index. Output
// preserves left order. combine receives nil for the right row only under
// the outer policy.
func Join[L, R, O any](left []L, right []R, opts JoinOptions,
	leftKey func(L) string, rightKey func(R) string,
	combine func(L, *R) O) []O {

	if len(left) == 0 {
		return nil
	}

	// Distinct right names in first-occurrence order, each mapped to the
	// first right row carrying it.
	names := make([]string, 0, len(right))
	firstRow := make(map[string]int, len(right))
	for i, r := range right {
		k := rightKey(r)
		if _, ok := firstRow[k]; !ok {
			firstRow[k] = i
			names = append(names, k)
		}
	}
	matcher := NewMatcher(names, opts.Cutoff)

	// matches[i] is the right row index for left[i], or -1.
	matches := make([]int, len(left))
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(left) {
		workers = len(left)
	}

	var g errgroup.Group
	chunk := (len(left) + workers - 1) / workers
	for start := 0; start < len(left); start += chunk {
		start := start
		end := min(start+chunk, len(left))
		g.Go(func() error {
			for i := start; i < end; i++ {
				matches[i] = -1
				if name, _, ok := matcher.Best(leftKey(left[i])); ok {
					matches[i] = firstRow[name]
				}
			}
			return nil
		})
	}
	_ = g.Wait() // shards never error

	out := make([]O, 0, len(left))
	for i, l := range left {
		if matches[i] < 0 {
			if opts.Policy == PolicyOuter {
				out = append(out, combine(l, nil))
			}
			continue
		}
		out = append(out, combine(l, &right[matches[i]]))
	}
	return out
}
