// Package coverage computes gold coverage and its evidence-backed slices
// for one matching strength, plus the redundancy and novelty diagnostics.
package coverage

import (
	"github.com/lamim/dataset-eval-bench/internal/canonical"
	"github.com/lamim/dataset-eval-bench/internal/entity"
	"github.com/lamim/dataset-eval-bench/internal/evidence"
)

// Gold is a strength-scoped view of the reference name list. It is
// deduplicated with the same canonicalization and clustering rules as the
// entities it will be compared against, never merged across strengths.
type Gold struct {
	strength  entity.Strength
	threshold float64
	keys      map[string]struct{}
	reps      []string
	total     int
}

// NewGold deduplicates gold names at the given strength. For Exact and
// Norm the gold size is the number of distinct keys; for Fuzzy it is the
// number of greedy clusters.
func NewGold(names []string, strength entity.Strength, threshold float64) Gold {
	g := Gold{strength: strength, threshold: threshold}
	if strength == entity.Fuzzy {
		clusters := entity.ClusterFuzzy(names, threshold)
		g.reps = entity.ClusterReps(clusters)
		g.total = len(clusters)
		return g
	}
	g.keys = make(map[string]struct{}, len(names))
	for _, n := range names {
		g.keys[strength.Key(n)] = struct{}{}
	}
	g.total = len(g.keys)
	return g
}

// Total returns the deduplicated gold size at this strength.
func (g Gold) Total() int {
	return g.total
}

// Hit reports whether an entity representative matches the gold set. Exact
// and Norm use key membership. Fuzzy scans the gold cluster representatives
// in creation order and stops at the first one clearing the threshold.
func (g Gold) Hit(reprName string) bool {
	if g.total == 0 {
		return false
	}
	if g.strength != entity.Fuzzy {
		_, ok := g.keys[g.strength.Key(reprName)]
		return ok
	}
	k := canonical.FuzzyKey(reprName)
	for _, rep := range g.reps {
		if canonical.Ratio(k, rep) >= g.threshold {
			return true
		}
	}
	return false
}

// Result holds the coverage counts for one file at one strength. The
// evidence slices only ever count hit entities, so EBCHit and TBCHit never
// exceed Hit, and TBCHit never exceeds EBCHit.
type Result struct {
	Hit                   int
	GoldTotal             int
	EBCHit                int
	TBCHit                int
	HitWithDatasetURL     int
	HitWithWorkingDataURL int
}

// Prober reports whether a URL is reachable. A nil Prober disables the
// working-URL slice, leaving its count at zero.
type Prober func(url string) bool

// Compute counts gold hits among entities together with the evidence
// slices. When gold is empty everything stays zero; callers report the
// degenerate coverage as 0%.
func Compute(entities []entity.Entity, gold Gold, hosts evidence.HostSet, probe Prober) Result {
	res := Result{GoldTotal: gold.Total()}
	if res.GoldTotal == 0 {
		return res
	}
	for _, e := range entities {
		if !gold.Hit(e.ReprName) {
			continue
		}
		res.Hit++
		if evidence.HasAny(e.EvidenceURLs) {
			res.EBCHit++
		}
		if evidence.HasTrusted(e.EvidenceURLs, hosts) {
			res.TBCHit++
		}
		if evidence.HasAny(e.DatasetURLs) {
			res.HitWithDatasetURL++
		}
		if probe != nil {
			for _, u := range e.DatasetURLs {
				if probe(u) {
					res.HitWithWorkingDataURL++
					break
				}
			}
		}
	}
	return res
}
