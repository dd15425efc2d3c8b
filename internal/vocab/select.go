package vocab

import (
	"math/rand/v2"
	"slices"
)

// SelectWords picks up to count entries without replacement so that no two
// consecutive entries share a family root. When the only family left is the
// one just used, it is allowed to repeat.
//
// Roots are visited in order of first appearance in entries, so a seeded rng
// yields a reproducible sequence. entries is not modified.
func SelectWords(entries []Entry, families Families, count int, rng *rand.Rand) []Entry {
	if count <= 0 || len(entries) == 0 {
		return []Entry{}
	}

	// Group by root; appending to fresh slices keeps entries untouched.
	groups := make(map[string][]Entry)
	var roots []string
	for _, e := range entries {
		r := families.Root(e.Word)
		if _, ok := groups[r]; !ok {
			roots = append(roots, r)
		}
		groups[r] = append(groups[r], e)
	}

	out := make([]Entry, 0, min(count, len(entries)))
	eligible := make([]string, 0, len(roots))
	lastRoot, hasLast := "", false

	for len(out) < count && len(roots) > 0 {
		eligible = eligible[:0]
		for _, r := range roots {
			if !hasLast || r != lastRoot {
				eligible = append(eligible, r)
			}
		}
		if len(eligible) == 0 {
			eligible = append(eligible, roots...)
		}

		root := eligible[rng.IntN(len(eligible))]
		group := groups[root]
		i := rng.IntN(len(group))

		out = append(out, group[i])
		lastRoot, hasLast = root, true

		group = slices.Delete(group, i, i+1)
		if len(group) == 0 {
			delete(groups, root)
			roots = slices.DeleteFunc(roots, func(r string) bool { return r == root })
		} else {
			groups[root] = group
		}
	}
	return out
}
