// Package report generates TSV, Markdown, and JSON reports from evaluation results.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lamim/dataset-eval-bench/internal/metrics"
)

// Generator creates reports from evaluation results
type Generator struct {
	collector *metrics.Collector
	outputDir string
	runName   string
}

// NewGenerator creates a new report generator. The run name prefixes the
// TSV file names, typically the input directory's base name.
func NewGenerator(collector *metrics.Collector, outputDir, runName string) *Generator {
	if runName == "" {
		runName = "evaluation"
	}
	return &Generator{
		collector: collector,
		outputDir: outputDir,
		runName:   runName,
	}
}

// PerFilePath returns the path of the per-file TSV report.
func (g *Generator) PerFilePath() string {
	return filepath.Join(g.outputDir, g.runName+"_per_file.tsv")
}

// AggregatePath returns the path of the aggregate TSV report.
func (g *Generator) AggregatePath() string {
	return filepath.Join(g.outputDir, g.runName+"_aggregate.tsv")
}

// GenerateAll generates all report formats
func (g *Generator) GenerateAll() error {
	if err := g.GenerateTSV(); err != nil {
		return fmt.Errorf("failed to generate TSV reports: %w", err)
	}
	if err := g.GenerateMarkdown(); err != nil {
		return fmt.Errorf("failed to generate markdown report: %w", err)
	}
	if err := g.GenerateJSON(); err != nil {
		return fmt.Errorf("failed to generate JSON report: %w", err)
	}
	return nil
}

// GenerateTSV writes the per-file table and the one-row aggregate table.
func (g *Generator) GenerateTSV() error {
	records := g.collector.Sorted()

	var perFile [][]metrics.Field
	for _, r := range records {
		perFile = append(perFile, r.Fields())
	}
	if err := writeTSV(g.PerFilePath(), perFile); err != nil {
		return err
	}

	agg := metrics.Aggregate(records)
	return writeTSV(g.AggregatePath(), [][]metrics.Field{agg.Fields()})
}

// writeTSV writes field rows as a tab-separated table, header first. All
// rows share the field order of the first row; an empty row list produces
// an empty file.
func writeTSV(path string, rows [][]metrics.Field) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if len(rows) == 0 {
		return nil
	}

	w := csv.NewWriter(f)
	w.Comma = '\t'

	header := make([]string, len(rows[0]))
	for i, field := range rows[0] {
		header[i] = field.Name
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		values := make([]string, len(row))
		for i, field := range row {
			values[i] = field.Value
		}
		if err := w.Write(values); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// GenerateMarkdown creates a markdown summary report
func (g *Generator) GenerateMarkdown() error {
	records := g.collector.Sorted()
	agg := metrics.Aggregate(records)
	timestamp := time.Now().Format("2006-01-02 15:04:05")

	var sb strings.Builder
	sb.WriteString("# Dataset Extraction Evaluation Report\n\n")
	sb.WriteString(fmt.Sprintf("**Generated:** %s\n\n", timestamp))

	sb.WriteString("## Per-file summary\n\n")
	sb.WriteString("| File | Method | Mentions | Entities (Norm) | Coverage Norm | EBC Norm | TBC Norm | Redundancy | PID Rate | Novelty |\n")
	sb.WriteString("|------|--------|----------|-----------------|---------------|----------|----------|------------|----------|----------|\n")
	for _, r := range records {
		sb.WriteString(fmt.Sprintf("| %s | %s | %d | %d | %d/%d (%.2f%%) | %.2f%% | %.2f%% | %.4f | %.2f%% | %s |\n",
			r.File,
			r.Method,
			r.Mentions,
			r.Norm.Entities,
			r.Norm.CoverageHit, r.Norm.CoverageTotal,
			metrics.Pct(r.Norm.CoverageHit, r.Norm.CoverageTotal),
			metrics.Pct(r.Norm.EBCHit, r.Norm.CoverageTotal),
			metrics.Pct(r.Norm.TBCHit, r.Norm.CoverageTotal),
			r.RedundancyRate,
			r.PIDRatePercent,
			novelty(r.NovelNorm, r.NovelNormBase, r.HasBaseline),
		))
	}
	sb.WriteString("\n")

	sb.WriteString("## Aggregate\n\n")
	sb.WriteString(fmt.Sprintf("- Files: %d\n", agg.Files))
	sb.WriteString(fmt.Sprintf("- Mentions: %d\n", agg.Mentions))
	sb.WriteString(fmt.Sprintf("- Entities: %d exact, %d norm, %d fuzzy\n",
		agg.Exact.Entities, agg.Norm.Entities, agg.Fuzzy.Entities))
	for _, block := range []struct {
		label string
		b     metrics.StrengthBlock
	}{
		{"Exact", agg.Exact},
		{"Norm", agg.Norm},
		{"Fuzzy", agg.Fuzzy},
	} {
		sb.WriteString(fmt.Sprintf("- Coverage %s: %d/%d (%.2f%%), evidence-backed %.2f%%, trusted-backed %.2f%%\n",
			block.label,
			block.b.CoverageHit, block.b.CoverageTotal,
			metrics.Pct(block.b.CoverageHit, block.b.CoverageTotal),
			metrics.Pct(block.b.EBCHit, block.b.CoverageTotal),
			metrics.Pct(block.b.TBCHit, block.b.CoverageTotal),
		))
	}
	sb.WriteString(fmt.Sprintf("- Mean redundancy rate: %.4f\n", agg.RedundancyRate))
	sb.WriteString(fmt.Sprintf("- Evidence distribution: %d PID, %d trusted host, %d other link, %d none\n",
		agg.EvidencePID, agg.EvidenceTrustedHost, agg.EvidenceOtherLink, agg.EvidenceNone))
	sb.WriteString(fmt.Sprintf("- Mean PID rate: %.2f%%\n", agg.PIDRatePercent))
	sb.WriteString(fmt.Sprintf("- Novelty (Norm): %s\n", novelty(agg.NovelNorm, agg.NovelNormBase, agg.HasBaseline)))

	outputPath := filepath.Join(g.outputDir, "report.md")
	// #nosec G306 - 0640 allows owner/group to read, which is appropriate for report files
	return os.WriteFile(outputPath, []byte(sb.String()), 0640)
}

func novelty(novel, base int, hasBaseline bool) string {
	if !hasBaseline {
		return metrics.NA
	}
	return fmt.Sprintf("%d/%d (%.2f%%)", novel, base, metrics.Pct(novel, base))
}

// GenerateJSON creates a JSON report with raw data
func (g *Generator) GenerateJSON() error {
	records := g.collector.Sorted()
	data := map[string]interface{}{
		"timestamp": time.Now(),
		"run":       g.runName,
		"files":     records,
		"aggregate": metrics.Aggregate(records),
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	outputPath := filepath.Join(g.outputDir, "report.json")
	// #nosec G306 - 0640 allows owner/group to read, which is appropriate for report files
	return os.WriteFile(outputPath, jsonData, 0640)
}
