package coverage

import (
	"testing"

	"github.com/lamim/dataset-eval-bench/internal/entity"
	"github.com/lamim/dataset-eval-bench/internal/evidence"
)

func buildEntities(t *testing.T, names []string, strength entity.Strength) []entity.Entity {
	t.Helper()
	rows := make([]map[string]string, len(names))
	for i, n := range names {
		rows[i] = map[string]string{"Name": n}
	}
	ents, _ := entity.Build(rows, []string{"Name"}, entity.Columns{Name: "Name"}, strength, 0.85)
	return ents
}

func TestNewGold_TotalsPerStrength(t *testing.T) {
	gold := []string{"GeoDS", "geods", "GeoDS "}
	if got := NewGold(gold, entity.Exact, 0.9).Total(); got != 2 {
		t.Errorf("Exact gold total = %d, want 2", got)
	}
	if got := NewGold(gold, entity.Norm, 0.9).Total(); got != 1 {
		t.Errorf("Norm gold total = %d, want 1", got)
	}
	if got := NewGold(gold, entity.Fuzzy, 0.9).Total(); got != 1 {
		t.Errorf("Fuzzy gold total = %d, want 1", got)
	}
}

func TestCompute_EmptyGold(t *testing.T) {
	ents := buildEntities(t, []string{"GeoDS"}, entity.Norm)
	res := Compute(ents, NewGold(nil, entity.Norm, 0.9), nil, nil)
	if res != (Result{}) {
		t.Errorf("empty gold must leave all counts zero, got %+v", res)
	}
}

func TestCompute_FuzzyEndToEnd(t *testing.T) {
	// Three variants collapse into one fuzzy entity that hits the single
	// gold name; the unrelated mention forms its own missing entity.
	ents := buildEntities(t, []string{"GeoDS", "GEO-DS", "Geo DS", "Unrelated"}, entity.Fuzzy)
	if len(ents) != 2 {
		t.Fatalf("expected 2 fuzzy entities, got %d", len(ents))
	}
	gold := NewGold([]string{"GeoDS"}, entity.Fuzzy, 0.85)
	res := Compute(ents, gold, nil, nil)
	if res.Hit != 1 || res.GoldTotal != 1 {
		t.Errorf("fuzzy coverage = %d/%d, want 1/1", res.Hit, res.GoldTotal)
	}
}

func TestCompute_EvidenceSlicesAreSubsets(t *testing.T) {
	hosts := evidence.NewHostSet([]string{"zenodo.org"})
	ents := []entity.Entity{
		{ReprName: "A", EvidenceURLs: []string{"https://doi.org/10.1/x"}, DatasetURLs: []string{"https://doi.org/10.1/x"}},
		{ReprName: "B", EvidenceURLs: []string{"https://example.org/b"}},
		{ReprName: "C"},
		{ReprName: "Miss", EvidenceURLs: []string{"https://zenodo.org/r/9"}},
	}
	gold := NewGold([]string{"A", "B", "C"}, entity.Norm, 0.9)
	res := Compute(ents, gold, hosts, nil)

	if res.Hit != 3 {
		t.Errorf("Hit = %d, want 3", res.Hit)
	}
	// An entity missing from gold never counts toward any slice, even with
	// trusted evidence.
	if res.EBCHit != 2 || res.TBCHit != 1 {
		t.Errorf("EBC/TBC = %d/%d, want 2/1", res.EBCHit, res.TBCHit)
	}
	if res.HitWithDatasetURL != 1 {
		t.Errorf("HitWithDatasetURL = %d, want 1", res.HitWithDatasetURL)
	}
	if res.TBCHit > res.EBCHit || res.EBCHit > res.Hit {
		t.Errorf("slice ordering violated: TBC %d <= EBC %d <= Hit %d", res.TBCHit, res.EBCHit, res.Hit)
	}
}

func TestCompute_ProbeGatesWorkingURLs(t *testing.T) {
	ents := []entity.Entity{
		{ReprName: "A", DatasetURLs: []string{"https://dead.example.org", "https://alive.example.org"}},
		{ReprName: "B", DatasetURLs: []string{"https://dead.example.org"}},
	}
	gold := NewGold([]string{"A", "B"}, entity.Norm, 0.9)

	res := Compute(ents, gold, nil, nil)
	if res.HitWithWorkingDataURL != 0 {
		t.Errorf("nil probe must keep working count at 0, got %d", res.HitWithWorkingDataURL)
	}

	probe := func(u string) bool { return u == "https://alive.example.org" }
	res = Compute(ents, gold, nil, probe)
	if res.HitWithWorkingDataURL != 1 {
		t.Errorf("working count = %d, want 1", res.HitWithWorkingDataURL)
	}
}

func TestGoldHit_FuzzyEarlyExit(t *testing.T) {
	gold := NewGold([]string{"abcdefgh", "abcdefghij"}, entity.Fuzzy, 0.9)
	if gold.Total() != 2 {
		t.Fatalf("gold total = %d, want 2 clusters", gold.Total())
	}
	if !gold.Hit("abcdefghi") {
		t.Errorf("expected fuzzy hit against first qualifying representative")
	}
	if gold.Hit("zzzz") {
		t.Errorf("unexpected hit for unrelated name")
	}
}

func TestRedundancy(t *testing.T) {
	tests := []struct {
		name             string
		mentions, normed int
		want             float64
	}{
		{"two extra over one entity", 3, 1, 2.0},
		{"no redundancy", 4, 4, 0.0},
		{"zero entities guarded", 5, 0, 0.0},
		{"never negative", 1, 3, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Redundancy(tt.mentions, tt.normed); got != tt.want {
				t.Errorf("Redundancy(%d, %d) = %v, want %v", tt.mentions, tt.normed, got, tt.want)
			}
		})
	}
}

func TestNovel(t *testing.T) {
	ents := buildEntities(t, []string{"GeoDS", "BrandNew"}, entity.Norm)
	if got := Novel(ents, []string{"geods."}); got != 1 {
		t.Errorf("Novel = %d, want 1 (baseline matching is Norm-canonical)", got)
	}
	if got := Novel(ents, nil); got != 0 {
		t.Errorf("Novel with no baseline = %d, want 0 (callers report N/A)", got)
	}
}
