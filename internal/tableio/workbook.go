package tableio

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// isWorkbookPath reports whether path names an .xlsx file, with or without
// a "#Sheet" suffix.
func isWorkbookPath(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".xlsx") || strings.Contains(lower, ".xlsx#")
}

// SplitSheetPath splits "file.xlsx#Sheet" on the last '#'. A path without
// a '#' returns an empty sheet name, meaning the first sheet.
func SplitSheetPath(path string) (base, sheet string) {
	if i := strings.LastIndex(path, "#"); i >= 0 {
		return path[:i], path[i+1:]
	}
	return path, ""
}

// SheetNames lists the sheets of a workbook in file order.
func SheetNames(path string) ([]string, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer func() {
		_ = wb.Close()
	}()
	return wb.GetSheetList(), nil
}

func readSheet(path, sheet string) ([]map[string]string, []string, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer func() {
		_ = wb.Close()
	}()

	if sheet == "" {
		sheet = wb.GetSheetName(wb.GetActiveSheetIndex())
	} else if idx, err := wb.GetSheetIndex(sheet); err != nil || idx < 0 {
		// Missing sheet reads as empty, mirroring absent input data.
		return nil, nil, nil
	}

	raw, err := wb.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %s#%s: %w", path, sheet, err)
	}

	// Header is the first non-empty row.
	start := -1
	for i, row := range raw {
		if !rowEmpty(row) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, nil, nil
	}

	headers := uniqueHeaders(raw[start])
	rows := make([]map[string]string, 0, len(raw)-start-1)
	for _, rec := range raw[start+1:] {
		if rowEmpty(rec) {
			continue
		}
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				row[h] = strings.TrimSpace(rec[i])
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, headers, nil
}

// uniqueHeaders builds non-empty unique column names from a header row.
// Blank cells become Column<n>; duplicates get a numeric suffix.
func uniqueHeaders(row []string) []string {
	seen := make(map[string]struct{}, len(row))
	headers := make([]string, 0, len(row))
	for i, cell := range row {
		name := strings.TrimSpace(cell)
		if name == "" {
			name = fmt.Sprintf("Column%d", i+1)
		}
		base := name
		for n := 2; ; n++ {
			if _, dup := seen[name]; !dup {
				break
			}
			name = fmt.Sprintf("%s_%d", base, n)
		}
		seen[name] = struct{}{}
		headers = append(headers, name)
	}
	return headers
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
