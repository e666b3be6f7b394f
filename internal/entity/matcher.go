package entity

import (
	"sort"

	"github.com/lamim/dataset-eval-bench/internal/canonical"
)

// Group partitions mention indices into entity groups at the given
// strength. Every index appears in exactly one group; groups and their
// members keep first-seen order.
func Group(mentions []string, strength Strength, threshold float64) [][]int {
	if len(mentions) == 0 {
		return nil
	}
	if strength == Fuzzy {
		return groupFuzzy(mentions, threshold)
	}
	return groupByKey(mentions, strength.Key)
}

func groupByKey(mentions []string, key func(string) string) [][]int {
	order := make([]string, 0, len(mentions))
	byKey := make(map[string][]int, len(mentions))
	for i, m := range mentions {
		k := key(m)
		if _, ok := byKey[k]; !ok {
			order = append(order, k)
		}
		byKey[k] = append(byKey[k], i)
	}
	groups := make([][]int, 0, len(order))
	for _, k := range order {
		groups = append(groups, byKey[k])
	}
	return groups
}

// ClusterFuzzy greedily clusters distinct names by fuzzy-key similarity.
// Each name is assigned to the first existing cluster whose representative
// clears the threshold, scanning representatives in creation order; a name
// that matches none starts a new cluster. The first-fit scan means the
// result depends on input order; that is an accepted property of the
// greedy pass, not a defect.
func ClusterFuzzy(names []string, threshold float64) [][]string {
	if len(names) == 0 {
		return nil
	}
	uniq := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		uniq = append(uniq, n)
	}

	repKeys := make([]string, 0)
	clusters := make([][]string, 0)
	for _, n := range uniq {
		k := canonical.FuzzyKey(n)
		assigned := false
		for i, rk := range repKeys {
			if canonical.Ratio(k, rk) >= threshold {
				clusters[i] = append(clusters[i], n)
				assigned = true
				break
			}
		}
		if !assigned {
			repKeys = append(repKeys, k)
			clusters = append(clusters, []string{n})
		}
	}
	return clusters
}

// ClusterReps returns the fuzzy keys of each cluster's representative (its
// first member), in cluster-creation order.
func ClusterReps(clusters [][]string) []string {
	reps := make([]string, 0, len(clusters))
	for _, cl := range clusters {
		if len(cl) == 0 {
			continue
		}
		reps = append(reps, canonical.FuzzyKey(cl[0]))
	}
	return reps
}

func groupFuzzy(mentions []string, threshold float64) [][]int {
	clusters := ClusterFuzzy(mentions, threshold)
	indexesByName := make(map[string][]int, len(mentions))
	for i, n := range mentions {
		indexesByName[n] = append(indexesByName[n], i)
	}
	groups := make([][]int, 0, len(clusters))
	for _, cl := range clusters {
		var idxs []int
		for _, n := range cl {
			idxs = append(idxs, indexesByName[n]...)
		}
		sort.Ints(idxs)
		groups = append(groups, idxs)
	}
	return groups
}
