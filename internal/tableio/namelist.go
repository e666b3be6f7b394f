package tableio

import (
	"fmt"
	"os"
	"strings"
)

// LoadNameList reads one reference name per line or row from a delimited
// file, a single-column text file, or a workbook sheet. When column is set
// and present it is used; otherwise the first column is taken. A missing
// file yields an empty list: absent reference data is data, not failure.
func LoadNameList(path, column string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	if isWorkbookPath(path) {
		base, _ := SplitSheetPath(path)
		if _, err := os.Stat(base); os.IsNotExist(err) {
			return nil, nil
		}
	} else if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	rows, headers, err := ReadTable(path)
	if err != nil {
		return nil, fmt.Errorf("load name list: %w", err)
	}
	if len(headers) == 0 {
		return nil, nil
	}

	col := headers[0]
	if column != "" {
		if picked, ok := PickFirstColumn([]string{column}, headers); ok {
			col = picked
		}
	}

	var names []string
	for _, r := range rows {
		if n := strings.TrimSpace(r[col]); n != "" {
			names = append(names, n)
		}
	}
	return names, nil
}
