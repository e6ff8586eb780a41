// Package suggest proposes existing logical paths close to one that could not be resolved.
package suggest

import (
	"path"
	"sort"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Namespace is the part of a virtual filesystem needed to look for siblings.
type Namespace interface {
	IsDir(logical string) bool
	ListFiles(dir string) ([]string, error)
}

// Closest returns the sibling path most similar to logical, if any is similar enough.
func Closest(ns Namespace, logical string) mo.Option[string] {
	suggestions := Many(ns, logical, 1)
	if len(suggestions) == 0 {
		return mo.None[string]()
	}
	return mo.Some(suggestions[0])
}

// Many returns up to limit sibling paths similar to logical, best match first.
// Subsequence matches rank first, then names within a small edit distance.
func Many(ns Namespace, logical string, limit int) []string {
	dir, base := path.Split(path.Clean("/" + logical))
	dir = path.Clean(dir)

	if base == "" || !ns.IsDir(dir) {
		return []string{}
	}

	names, err := ns.ListFiles(dir)
	if err != nil || len(names) == 0 {
		return []string{}
	}

	ranks := fuzzy.RankFindNormalizedFold(base, names)
	sort.Sort(ranks)
	matches := lo.Map(ranks, func(r fuzzy.Rank, _ int) string {
		return r.Target
	})

	threshold := lo.Max([]int{2, len(base) / 3})
	near := lo.Filter(names, func(name string, _ int) bool {
		return !lo.Contains(matches, name) && levenshtein.Distance(base, name) <= threshold
	})
	sort.SliceStable(near, func(i, j int) bool {
		return levenshtein.Distance(base, near[i]) < levenshtein.Distance(base, near[j])
	})

	matches = append(matches, near...)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	return lo.Map(matches, func(name string, _ int) string {
		return path.Join(dir, name)
	})
}
