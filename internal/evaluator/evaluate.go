// Package evaluator runs the per-file evaluation and the concurrent driver
// around it.
package evaluator

import (
	"fmt"

	"github.com/lamim/dataset-eval-bench/internal/config"
	"github.com/lamim/dataset-eval-bench/internal/coverage"
	"github.com/lamim/dataset-eval-bench/internal/debug"
	"github.com/lamim/dataset-eval-bench/internal/entity"
	"github.com/lamim/dataset-eval-bench/internal/evidence"
	"github.com/lamim/dataset-eval-bench/internal/metrics"
	"github.com/lamim/dataset-eval-bench/internal/tableio"
)

// Inputs bundles the run-wide context a single file is evaluated against.
type Inputs struct {
	Gold      []string
	Baseline  []string
	Hosts     evidence.HostSet
	Threshold float64
	// Probe is nil unless live URL checking is enabled.
	Probe coverage.Prober
	// Debug captures entity cluster dumps when enabled.
	Debug *debug.Logger
}

// resolveColumns maps the configured candidate lists onto the actual
// headers of one table. The name column may be absent; the table then
// contributes zero mentions.
func resolveColumns(cfg config.ColumnsConfig, headers []string) entity.Columns {
	var cols entity.Columns
	if name, ok := tableio.PickFirstColumn(cfg.Name, headers); ok {
		cols.Name = name
	}
	if url, ok := tableio.PickFirstColumn([]string{cfg.URL}, headers); ok {
		cols.URL = url
	}
	cols.Citing = tableio.PresentColumns(cfg.Citing, headers)
	cols.Cited = tableio.PresentColumns(cfg.Cited, headers)
	return cols
}

// EvaluateFile computes the full metric record for one input table.
func EvaluateFile(path string, cfg *config.Config, in Inputs) (metrics.FileRecord, error) {
	rows, headers, err := tableio.ReadTable(path)
	if err != nil {
		return metrics.FileRecord{}, fmt.Errorf("read %s: %w", path, err)
	}

	cols := resolveColumns(cfg.Columns, headers)
	threshold := in.Threshold
	if threshold <= 0 || threshold > 1 {
		threshold = cfg.Matching.FuzzyThreshold
	}

	entExact, mentions := entity.Build(rows, headers, cols, entity.Exact, threshold)
	entNorm, _ := entity.Build(rows, headers, cols, entity.Norm, threshold)
	entFuzzy, _ := entity.Build(rows, headers, cols, entity.Fuzzy, threshold)

	if in.Debug.IsEnabled() {
		in.Debug.LogFile(path, len(mentions), map[string][]entity.Entity{
			entity.Exact.String(): entExact,
			entity.Norm.String():  entNorm,
			entity.Fuzzy.String(): entFuzzy,
		})
	}

	file, method := tableio.DisplayName(path)
	rec := metrics.FileRecord{
		File:       file,
		Method:     method,
		SourcePath: path,
		Mentions:   len(mentions),
	}

	rec.Exact = strengthBlock(entExact, in, entity.Exact, threshold)
	rec.Norm = strengthBlock(entNorm, in, entity.Norm, threshold)
	rec.Fuzzy = strengthBlock(entFuzzy, in, entity.Fuzzy, threshold)

	rec.RedundancyRate = coverage.Redundancy(rec.Mentions, len(entNorm))

	// Evidence distribution and PID rate are measured on the Norm layer.
	for _, e := range entNorm {
		switch evidence.Categorize(e.EvidenceURLs, in.Hosts) {
		case evidence.CategoryPID:
			rec.EvidencePID++
		case evidence.CategoryTrustedHost:
			rec.EvidenceTrustedHost++
		case evidence.CategoryOtherLink:
			rec.EvidenceOtherLink++
		default:
			rec.EvidenceNone++
		}
	}
	pidDenom := len(entNorm)
	if pidDenom < 1 {
		pidDenom = 1
	}
	rec.PIDRatePercent = metrics.Pct(rec.EvidencePID, pidDenom)

	rec.NovelNormBase = len(entNorm)
	rec.HasBaseline = len(in.Baseline) > 0
	if rec.HasBaseline {
		rec.NovelNorm = coverage.Novel(entNorm, in.Baseline)
	}

	return rec, nil
}

func strengthBlock(entities []entity.Entity, in Inputs, strength entity.Strength, threshold float64) metrics.StrengthBlock {
	gold := coverage.NewGold(in.Gold, strength, threshold)
	res := coverage.Compute(entities, gold, in.Hosts, in.Probe)
	return metrics.StrengthBlock{
		Entities:              len(entities),
		CoverageHit:           res.Hit,
		CoverageTotal:         res.GoldTotal,
		EBCHit:                res.EBCHit,
		TBCHit:                res.TBCHit,
		HitWithDatasetURL:     res.HitWithDatasetURL,
		HitWithWorkingDataURL: res.HitWithWorkingDataURL,
	}
}
