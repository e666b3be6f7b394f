package entity

import (
	"reflect"
	"testing"
)

func TestGroup_Exact(t *testing.T) {
	mentions := []string{"GeoDS", "GeoDS ", "geods", "Other"}
	groups := Group(mentions, Exact, 0.9)
	// "GeoDS" and "GeoDS " share a trimmed key; "geods" differs by case.
	want := [][]int{{0, 1}, {2}, {3}}
	if !reflect.DeepEqual(groups, want) {
		t.Errorf("Group(Exact) = %v, want %v", groups, want)
	}
}

func TestGroup_Norm(t *testing.T) {
	mentions := []string{"GeoDS", "geods.", `"GeoDS"`, "Geo DS"}
	groups := Group(mentions, Norm, 0.9)
	want := [][]int{{0, 1, 2}, {3}}
	if !reflect.DeepEqual(groups, want) {
		t.Errorf("Group(Norm) = %v, want %v", groups, want)
	}
}

func TestGroup_PartitionInvariant(t *testing.T) {
	mentions := []string{"A", "a", "A ", "B-1", "B 1", "C", "c.", "Totally Different"}
	for _, strength := range Strengths() {
		groups := Group(mentions, strength, 0.9)
		seen := make(map[int]bool)
		total := 0
		for _, g := range groups {
			for _, i := range g {
				if seen[i] {
					t.Fatalf("%v: index %d assigned twice", strength, i)
				}
				seen[i] = true
				total++
			}
		}
		if total != len(mentions) {
			t.Errorf("%v: groups cover %d of %d mentions", strength, total, len(mentions))
		}
	}
}

// First-fit, not best-fit: a mention joins the earliest qualifying cluster
// even when a later representative is more similar.
func TestClusterFuzzy_FirstFit(t *testing.T) {
	// Ratios: abcdefghi vs abcdefgh = 16/17 (~0.941), vs abcdefghij = 18/19
	// (~0.947); the two representatives sit at 16/18 (~0.889), below the
	// threshold, so both exist when the third name arrives. It must join the
	// first cluster despite the second being closer.
	names := []string{"abcdefgh", "abcdefghij", "abcdefghi"}
	clusters := ClusterFuzzy(names, 0.9)
	if len(clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d: %v", len(clusters), clusters)
	}
	want := []string{"abcdefgh", "abcdefghi"}
	if !reflect.DeepEqual(clusters[0], want) {
		t.Errorf("first cluster = %v, want %v", clusters[0], want)
	}
	if len(clusters[1]) != 1 {
		t.Errorf("second cluster = %v, want only its representative", clusters[1])
	}
}

func TestClusterFuzzy_NewClusterBelowThreshold(t *testing.T) {
	names := []string{"GeoDS", "GEO-DS", "Geo DS", "Unrelated"}
	clusters := ClusterFuzzy(names, 0.85)
	if len(clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d: %v", len(clusters), clusters)
	}
	if len(clusters[0]) != 3 {
		t.Errorf("first cluster = %v, want the three GeoDS variants", clusters[0])
	}
	if len(clusters[1]) != 1 || clusters[1][0] != "Unrelated" {
		t.Errorf("second cluster = %v, want [Unrelated]", clusters[1])
	}
}

// Clustering is order-dependent: reordering the input may change membership.
// The documented contract is determinism for a fixed order, nothing more.
func TestClusterFuzzy_DeterministicForFixedOrder(t *testing.T) {
	names := []string{"alpha set", "alpha sets", "alpha data", "beta data"}
	first := ClusterFuzzy(names, 0.8)
	second := ClusterFuzzy(names, 0.8)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same input produced different clusterings: %v vs %v", first, second)
	}
}

func TestClusterFuzzy_DuplicatesCollapse(t *testing.T) {
	names := []string{"GeoDS", "GeoDS", "GeoDS"}
	clusters := ClusterFuzzy(names, 0.9)
	if len(clusters) != 1 || len(clusters[0]) != 1 {
		t.Errorf("verbatim duplicates should collapse before clustering, got %v", clusters)
	}
}

func TestGroup_FuzzyExpandsDuplicateIndices(t *testing.T) {
	mentions := []string{"GeoDS", "Other", "GeoDS"}
	groups := Group(mentions, Fuzzy, 0.9)
	want := [][]int{{0, 2}, {1}}
	if !reflect.DeepEqual(groups, want) {
		t.Errorf("Group(Fuzzy) = %v, want %v", groups, want)
	}
}
