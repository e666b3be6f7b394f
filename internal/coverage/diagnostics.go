package coverage

import (
	"github.com/lamim/dataset-eval-bench/internal/canonical"
	"github.com/lamim/dataset-eval-bench/internal/entity"
)

// Redundancy reports the excess of mentions over Norm entities, normalized
// by the entity count. The result is never negative and division by zero
// is guarded.
func Redundancy(mentionCount, entityCountNorm int) float64 {
	if entityCountNorm <= 0 {
		return 0.0
	}
	r := float64(mentionCount-entityCountNorm) / float64(entityCountNorm)
	if r < 0 {
		return 0.0
	}
	return r
}

// Novel counts the Norm entities whose representative key is absent from
// the Norm-canonicalized baseline. With an empty baseline every entity
// would be trivially novel, so callers must treat that case as "no
// baseline" and report the N/A sentinel instead of a number.
func Novel(entities []entity.Entity, baseline []string) int {
	if len(baseline) == 0 {
		return 0
	}
	known := make(map[string]struct{}, len(baseline))
	for _, b := range baseline {
		known[canonical.Norm(b)] = struct{}{}
	}
	novel := 0
	for _, e := range entities {
		if _, ok := known[canonical.Norm(e.ReprName)]; !ok {
			novel++
		}
	}
	return novel
}
