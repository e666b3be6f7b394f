// Package metrics defines the per-file and aggregate metric records of an
// evaluation run and the collector that gathers them.
package metrics

import (
	"fmt"
	"strconv"
)

// NA is the sentinel reported for metrics that are undefined rather than
// zero, such as novelty without a baseline.
const NA = "N/A"

// StrengthBlock holds the entity and coverage counts for one matching
// strength. Percentages are derived from these counts at render time so
// aggregation can sum numerators and denominators first.
type StrengthBlock struct {
	Entities              int
	CoverageHit           int
	CoverageTotal         int
	EBCHit                int
	TBCHit                int
	HitWithDatasetURL     int
	HitWithWorkingDataURL int
}

// FileRecord is the flat metric record for one input table.
type FileRecord struct {
	// File is the display name without any method suffix; Method is the
	// label derived from a trailing "#method" on the input path.
	File   string
	Method string
	// SourcePath keeps the full input path (including a sheet suffix) for
	// deterministic ordering of collected records.
	SourcePath string

	Mentions int
	Exact    StrengthBlock
	Norm     StrengthBlock
	Fuzzy    StrengthBlock

	RedundancyRate float64

	EvidencePID         int
	EvidenceTrustedHost int
	EvidenceOtherLink   int
	EvidenceNone        int
	PIDRatePercent      float64

	NovelNorm     int
	NovelNormBase int
	// HasBaseline distinguishes a measured novelty of zero from the absence
	// of a baseline; without it the novelty percent renders as N/A.
	HasBaseline bool
}

// Field is one named metric value, preformatted for tabular output.
type Field struct {
	Name  string
	Value string
}

// Fields returns the record as an ordered list of metric name/value pairs.
// This is the flat mapping shape consumed by the report writers.
func (r FileRecord) Fields() []Field {
	fields := []Field{
		{"File", r.File},
		{"Method", r.Method},
		{"Mentions", itoa(r.Mentions)},
		{"Entities_Exact", itoa(r.Exact.Entities)},
		{"Entities_Norm", itoa(r.Norm.Entities)},
		{"Entities_Fuzzy", itoa(r.Fuzzy.Entities)},
	}
	fields = append(fields, strengthFields("Exact", r.Exact)...)
	fields = append(fields, strengthFields("Norm", r.Norm)...)
	fields = append(fields, strengthFields("Fuzzy", r.Fuzzy)...)
	fields = append(fields, tailFields(r.RedundancyRate, r.EvidencePID, r.EvidenceTrustedHost,
		r.EvidenceOtherLink, r.EvidenceNone, r.PIDRatePercent, r.NovelNorm, r.NovelNormBase, r.HasBaseline)...)
	return fields
}

// strengthFields renders one coverage block. The Recall_* columns are
// aliases kept for continuity with older result tables.
func strengthFields(label string, b StrengthBlock) []Field {
	cov := Pct(b.CoverageHit, b.CoverageTotal)
	ebc := Pct(b.EBCHit, b.CoverageTotal)
	tbc := Pct(b.TBCHit, b.CoverageTotal)
	return []Field{
		{fmt.Sprintf("Coverage_%s_Hit", label), itoa(b.CoverageHit)},
		{fmt.Sprintf("Coverage_%s_Total", label), itoa(b.CoverageTotal)},
		{fmt.Sprintf("Coverage_%s_percent", label), fpct(cov)},
		{fmt.Sprintf("Recall_%s_percent", label), fpct(cov)},
		{fmt.Sprintf("EvidenceBacked_Recall_%s_percent", label), fpct(ebc)},
		{fmt.Sprintf("TrustedBacked_Recall_%s_percent", label), fpct(tbc)},
		{fmt.Sprintf("Recall_withDatasetURL_%s_percent", label), fpct(Pct(b.HitWithDatasetURL, b.CoverageTotal))},
		{fmt.Sprintf("Recall_withValidDatasetURL_%s_percent", label), fpct(Pct(b.HitWithWorkingDataURL, b.CoverageTotal))},
		{fmt.Sprintf("Hit_%s_Total", label), itoa(b.CoverageHit)},
		{fmt.Sprintf("Hit_%s_WithDatasetURL", label), itoa(b.HitWithDatasetURL)},
		{fmt.Sprintf("Hit_%s_WithWorkingDatasetURL", label), itoa(b.HitWithWorkingDataURL)},
		{fmt.Sprintf("EBC_%s_Hit", label), itoa(b.EBCHit)},
		{fmt.Sprintf("EBC_%s_percent", label), fpct(ebc)},
		{fmt.Sprintf("TBC_%s_Hit", label), itoa(b.TBCHit)},
		{fmt.Sprintf("TBC_%s_percent", label), fpct(tbc)},
	}
}

func tailFields(redundancy float64, pid, trustedHost, otherLink, none int, pidRate float64, novel, novelBase int, hasBaseline bool) []Field {
	novelty := NA
	if hasBaseline {
		novelty = fpct(Pct(novel, novelBase))
	}
	return []Field{
		{"Redundancy_rate", frate(redundancy)},
		{"Evidence_PID", itoa(pid)},
		{"Evidence_TrustedHost", itoa(trustedHost)},
		{"Evidence_OtherLink", itoa(otherLink)},
		{"Evidence_None", itoa(none)},
		{"PID_Rate_percent", fpct(pidRate)},
		{"Novel_Norm", itoa(novel)},
		{"Novel_Norm_Base", itoa(novelBase)},
		{"Novelty_Norm_percent", novelty},
	}
}

// Pct computes 100*numer/denom, reporting 0 for an empty denominator.
func Pct(numer, denom int) float64 {
	if denom <= 0 {
		return 0.0
	}
	return 100.0 * float64(numer) / float64(denom)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func fpct(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func frate(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
