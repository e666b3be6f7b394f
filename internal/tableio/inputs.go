package tableio

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var surveyRE = regexp.MustCompile(`(?i)(^|[.#])survey(\.|$)`)

// ExpandInputs resolves an input path into the list of logical inputs to
// evaluate. A directory is globbed with pattern (workbooks are always
// included regardless of pattern); every workbook expands to one logical
// input per sheet, addressed "path#Sheet".
func ExpandInputs(input, pattern string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("stat input %s: %w", input, err)
	}

	var files []string
	if info.IsDir() {
		matches, err := filepath.Glob(filepath.Join(input, pattern))
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		for _, m := range matches {
			if fi, err := os.Stat(m); err == nil && !fi.IsDir() {
				files = append(files, m)
			}
		}
		for _, pat := range []string{"*.xlsx", "*.XLSX"} {
			matches, _ := filepath.Glob(filepath.Join(input, pat))
			for _, m := range matches {
				if !containsString(files, m) {
					files = append(files, m)
				}
			}
		}
		sort.Strings(files)
	} else {
		files = []string{input}
	}

	var expanded []string
	for _, f := range files {
		if !strings.EqualFold(filepath.Ext(f), ".xlsx") {
			expanded = append(expanded, f)
			continue
		}
		sheets, err := SheetNames(f)
		if err != nil {
			return nil, err
		}
		for _, s := range sheets {
			expanded = append(expanded, f+"#"+s)
		}
	}
	return expanded, nil
}

// WorkbookBase returns the .xlsx path of a sheet input, or "" for inputs
// that are not workbook sheets.
func WorkbookBase(path string) string {
	if strings.Contains(strings.ToLower(path), ".xlsx#") {
		base, _ := SplitSheetPath(path)
		return base
	}
	return ""
}

// IsSurveyInput reports whether an input names a survey sheet or file,
// which acts as per-workbook gold when no explicit gold is configured.
func IsSurveyInput(path string) bool {
	return surveyRE.MatchString(strings.ToLower(filepath.Base(path)))
}

// DisplayName splits an input path into the file name shown in reports and
// the method label carried after '#' (usually a sheet name).
func DisplayName(path string) (file, method string) {
	base := filepath.Base(path)
	if i := strings.Index(base, "#"); i >= 0 {
		method = strings.TrimSpace(base[strings.LastIndex(base, "#")+1:])
		return base[:i], method
	}
	return base, ""
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
