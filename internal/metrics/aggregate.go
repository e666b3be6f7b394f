package metrics

// AggregateRecord is the micro-averaged summary of an evaluation run.
// Counts are sums over the per-file records and every percentage is
// recomputed from the summed numerator and denominator. Two fields
// deliberately deviate from micro-averaging: RedundancyRate and
// PIDRatePercent are arithmetic means of the per-file values, for
// comparability with previously published result tables.
type AggregateRecord struct {
	Files    int
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
	HasBaseline   bool
}

// Aggregate combines per-file records by summing numerators and
// denominators. Novelty stays N/A unless at least one file was evaluated
// against a baseline.
func Aggregate(records []FileRecord) AggregateRecord {
	agg := AggregateRecord{Files: len(records)}
	for _, r := range records {
		agg.Mentions += r.Mentions
		addBlock(&agg.Exact, r.Exact)
		addBlock(&agg.Norm, r.Norm)
		addBlock(&agg.Fuzzy, r.Fuzzy)
		agg.RedundancyRate += r.RedundancyRate
		agg.EvidencePID += r.EvidencePID
		agg.EvidenceTrustedHost += r.EvidenceTrustedHost
		agg.EvidenceOtherLink += r.EvidenceOtherLink
		agg.EvidenceNone += r.EvidenceNone
		agg.PIDRatePercent += r.PIDRatePercent
		agg.NovelNorm += r.NovelNorm
		agg.NovelNormBase += r.NovelNormBase
		if r.HasBaseline {
			agg.HasBaseline = true
		}
	}
	if len(records) > 0 {
		agg.RedundancyRate /= float64(len(records))
		agg.PIDRatePercent /= float64(len(records))
	}
	return agg
}

func addBlock(dst *StrengthBlock, src StrengthBlock) {
	dst.Entities += src.Entities
	dst.CoverageHit += src.CoverageHit
	dst.CoverageTotal += src.CoverageTotal
	dst.EBCHit += src.EBCHit
	dst.TBCHit += src.TBCHit
	dst.HitWithDatasetURL += src.HitWithDatasetURL
	dst.HitWithWorkingDataURL += src.HitWithWorkingDataURL
}

// Fields returns the aggregate as ordered metric name/value pairs, using
// the same metric vocabulary as the per-file records.
func (a AggregateRecord) Fields() []Field {
	fields := []Field{
		{"Scope", "AGGREGATE"},
		{"Files", itoa(a.Files)},
		{"Mentions", itoa(a.Mentions)},
		{"Entities_Exact", itoa(a.Exact.Entities)},
		{"Entities_Norm", itoa(a.Norm.Entities)},
		{"Entities_Fuzzy", itoa(a.Fuzzy.Entities)},
	}
	fields = append(fields, strengthFields("Exact", a.Exact)...)
	fields = append(fields, strengthFields("Norm", a.Norm)...)
	fields = append(fields, strengthFields("Fuzzy", a.Fuzzy)...)
	fields = append(fields, tailFields(a.RedundancyRate, a.EvidencePID, a.EvidenceTrustedHost,
		a.EvidenceOtherLink, a.EvidenceNone, a.PIDRatePercent, a.NovelNorm, a.NovelNormBase, a.HasBaseline)...)
	return fields
}
