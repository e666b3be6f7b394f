package entity

import "strings"

// Columns names the resolved source columns for one input table. Name is
// required; the URL columns may be absent when the table carries no links.
type Columns struct {
	Name   string
	URL    string
	Citing []string
	Cited  []string
}

// urlColumns lists the columns contributing evidence URLs, primary column
// first, restricted to columns actually present in the header.
func (c Columns) urlColumns(headers []string) []string {
	present := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		present[h] = struct{}{}
	}
	var cols []string
	if c.URL != "" {
		if _, ok := present[c.URL]; ok {
			cols = append(cols, c.URL)
		}
	}
	for _, col := range c.Citing {
		if _, ok := present[col]; ok {
			cols = append(cols, col)
		}
	}
	for _, col := range c.Cited {
		if _, ok := present[col]; ok {
			cols = append(cols, col)
		}
	}
	return cols
}

// Build extracts the non-empty mentions from rows and groups them into
// entities at the given strength. The returned entities partition the
// returned mentions: every mention belongs to exactly one entity.
func Build(rows []map[string]string, headers []string, cols Columns, strength Strength, threshold float64) ([]Entity, []string) {
	if len(rows) == 0 || cols.Name == "" {
		return nil, nil
	}

	var mentions []string
	var mentionRows []int
	for i, row := range rows {
		name := strings.TrimSpace(row[cols.Name])
		if name == "" {
			continue
		}
		mentions = append(mentions, name)
		mentionRows = append(mentionRows, i)
	}
	if len(mentions) == 0 {
		return nil, nil
	}

	urlCols := cols.urlColumns(headers)
	groups := Group(mentions, strength, threshold)
	entities := make([]Entity, 0, len(groups))
	for _, idxs := range groups {
		e := Entity{ReprName: mentions[idxs[0]]}
		for _, mi := range idxs {
			ri := mentionRows[mi]
			e.Names = append(e.Names, mentions[mi])
			e.RowIndexes = append(e.RowIndexes, ri)
			for _, col := range urlCols {
				if v := strings.TrimSpace(rows[ri][col]); v != "" {
					e.EvidenceURLs = append(e.EvidenceURLs, v)
				}
			}
			if cols.URL != "" {
				if v := strings.TrimSpace(rows[ri][cols.URL]); v != "" {
					e.DatasetURLs = append(e.DatasetURLs, v)
				}
			}
		}
		entities = append(entities, e)
	}
	return entities, mentions
}
