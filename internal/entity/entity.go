// Package entity groups raw dataset name mentions into deduplicated
// entities under one of three matching strengths.
package entity

import "github.com/lamim/dataset-eval-bench/internal/canonical"

// Strength selects how aggressively mentions are merged into entities.
type Strength int

const (
	// Exact merges only mentions with identical trimmed spelling.
	Exact Strength = iota
	// Norm merges mentions that agree after mild normalization.
	Norm
	// Fuzzy merges mentions whose fuzzy keys are similar above a threshold.
	Fuzzy
)

func (s Strength) String() string {
	switch s {
	case Exact:
		return "Exact"
	case Norm:
		return "Norm"
	case Fuzzy:
		return "Fuzzy"
	default:
		return "unknown"
	}
}

// Key returns the canonical key of a name at this strength. For Fuzzy the
// key is the similarity alphabet, not a grouping key; equality of fuzzy
// keys is sufficient but not necessary for two mentions to merge.
func (s Strength) Key(name string) string {
	switch s {
	case Exact:
		return canonical.Exact(name)
	case Norm:
		return canonical.Norm(name)
	default:
		return canonical.FuzzyKey(name)
	}
}

// Entity is a deduplicated group of mentions believed to denote the same
// dataset. Entities are strength-scoped: the same mentions may form
// different entities under Exact, Norm and Fuzzy.
type Entity struct {
	// Names holds the constituent mention strings in original order.
	Names []string
	// RowIndexes holds the zero-based source row index of each mention.
	RowIndexes []int
	// ReprName is the first mention encountered, used for gold matching.
	ReprName string
	// EvidenceURLs aggregates every URL-bearing column value from the
	// originating rows.
	EvidenceURLs []string
	// DatasetURLs holds only the values from the designated primary URL
	// column.
	DatasetURLs []string
}

// Strengths lists all matching strengths in increasing permissiveness.
func Strengths() []Strength {
	return []Strength{Exact, Norm, Fuzzy}
}
