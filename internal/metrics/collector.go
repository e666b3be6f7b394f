package metrics

import (
	"sort"
	"strings"
	"sync"
)

// Collector gathers per-file records. It is safe for concurrent use so
// files can be evaluated in parallel; aggregation happens after all
// evaluations complete.
type Collector struct {
	mu      sync.RWMutex
	records []FileRecord
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{records: make([]FileRecord, 0)}
}

// Add appends one per-file record.
func (c *Collector) Add(r FileRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, r)
}

// Len returns the number of collected records.
func (c *Collector) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Records returns a copy of the collected records in insertion order.
func (c *Collector) Records() []FileRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]FileRecord, len(c.records))
	copy(out, c.records)
	return out
}

// Sorted returns the records ordered by file, then by method priority
// (ours, google, datacite, then everything else alphabetically). Parallel
// evaluation finishes in arbitrary order; reports need a stable layout.
func (c *Collector) Sorted() []FileRecord {
	out := c.Records()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].File != out[j].File {
			return out[i].File < out[j].File
		}
		pi, pj := methodPriority(out[i].Method), methodPriority(out[j].Method)
		if pi != pj {
			return pi < pj
		}
		return out[i].Method < out[j].Method
	})
	return out
}

func methodPriority(method string) int {
	switch strings.ToLower(method) {
	case "our", "ours":
		return 0
	case "google":
		return 1
	case "datacite":
		return 2
	default:
		return 3
	}
}
