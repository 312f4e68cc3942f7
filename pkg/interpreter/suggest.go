package interpreter

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// closestName picks a visible name the user probably meant. Subsequence
// matches win; otherwise the nearest name within a small edit distance.
func closestName(target string, candidates []string) string {
	if len(candidates) == 0 || target == "" {
		return ""
	}
	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) > 0 {
		sort.Stable(ranks)
		return ranks[0].Target
	}

	limit := len(target) / 2
	best, bestDistance := "", limit+1
	for _, candidate := range candidates {
		if d := fuzzy.LevenshteinDistance(target, candidate); d < bestDistance {
			best, bestDistance = candidate, d
		}
	}
	return best
}
