// Package tableio reads heterogeneous tabular inputs (TSV, CSV, workbook
// sheets, single-column text) into row records, and resolves the columns
// the evaluation core needs. The core itself never touches files.
package tableio

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// SingleColumn is the synthetic header used for files without a detectable
// delimiter, where every line is one value.
const SingleColumn = "_single"

const sniffBytes = 4096

// ReadTable reads a delimited file or a workbook sheet into row maps plus
// the header in column order. Workbook sheets are addressed as
// "file.xlsx#Sheet"; a bare .xlsx path reads the first sheet.
func ReadTable(path string) ([]map[string]string, []string, error) {
	if isWorkbookPath(path) {
		base, sheet := SplitSheetPath(path)
		return readSheet(base, sheet)
	}
	return readDelimited(path)
}

// sniffDelimiter picks tab over comma in a sample of the file head. An
// empty rune means the file has no delimiter and is read line-per-value.
func sniffDelimiter(sample string) rune {
	if strings.ContainsRune(sample, '\t') {
		return '\t'
	}
	if strings.ContainsRune(sample, ',') {
		return ','
	}
	return 0
}

func readDelimited(path string) ([]map[string]string, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read table %s: %w", path, err)
	}
	text := string(data)
	sample := text
	if len(sample) > sniffBytes {
		sample = sample[:sniffBytes]
	}

	delim := sniffDelimiter(sample)
	if delim == 0 {
		return readSingleColumn(text)
	}

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse table %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, nil
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}
	rows := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				row[h] = rec[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, headers, nil
}

func readSingleColumn(text string) ([]map[string]string, []string, error) {
	var rows []map[string]string
	for _, line := range strings.Split(text, "\n") {
		rows = append(rows, map[string]string{SingleColumn: strings.TrimSpace(line)})
	}
	return rows, []string{SingleColumn}, nil
}
