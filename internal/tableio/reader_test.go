package tableio

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestReadTable_TSV(t *testing.T) {
	path := writeFile(t, "in.tsv", "Name\tDataset URL\nGeoDS\thttps://zenodo.org/r/1\nOther\t\n")
	rows, headers, err := ReadTable(path)
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}
	if len(headers) != 2 || headers[0] != "Name" || headers[1] != "Dataset URL" {
		t.Errorf("headers = %v", headers)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["Name"] != "GeoDS" || rows[0]["Dataset URL"] != "https://zenodo.org/r/1" {
		t.Errorf("row 0 = %v", rows[0])
	}
}

func TestReadTable_CSVWithRaggedRows(t *testing.T) {
	path := writeFile(t, "in.csv", "Name,URL\nGeoDS\nOther,https://example.org,extra\n")
	rows, _, err := ReadTable(path)
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}
	if rows[0]["URL"] != "" {
		t.Errorf("short row should backfill empty, got %q", rows[0]["URL"])
	}
	if rows[1]["URL"] != "https://example.org" {
		t.Errorf("long row should truncate to header, got %q", rows[1]["URL"])
	}
}

// Tab wins over comma so TSV files with commas inside values parse whole.
func TestSniffDelimiter(t *testing.T) {
	if got := sniffDelimiter("a\tb,c"); got != '\t' {
		t.Errorf("sniffDelimiter = %q, want tab", got)
	}
	if got := sniffDelimiter("a,b"); got != ',' {
		t.Errorf("sniffDelimiter = %q, want comma", got)
	}
	if got := sniffDelimiter("plain text"); got != 0 {
		t.Errorf("sniffDelimiter = %q, want none", got)
	}
}

func TestReadTable_SingleColumn(t *testing.T) {
	path := writeFile(t, "names.txt", "GeoDS\nOther\n")
	rows, headers, err := ReadTable(path)
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}
	if len(headers) != 1 || headers[0] != SingleColumn {
		t.Errorf("headers = %v, want [%s]", headers, SingleColumn)
	}
	if rows[0][SingleColumn] != "GeoDS" {
		t.Errorf("row 0 = %v", rows[0])
	}
}

func TestReadTable_Missing(t *testing.T) {
	if _, _, err := ReadTable(filepath.Join(t.TempDir(), "nope.tsv")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPickFirstColumn(t *testing.T) {
	headers := []string{"ID", "Dataset_Name", "Dataset URL"}
	tests := []struct {
		name       string
		candidates []string
		want       string
		ok         bool
	}{
		{"normalized match", []string{"Name", "dataset name"}, "Dataset_Name", true},
		{"first present wins", []string{"Dataset URL", "Dataset Name"}, "Dataset URL", true},
		{"no match", []string{"Title"}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PickFirstColumn(tt.candidates, headers)
			if got != tt.want || ok != tt.ok {
				t.Errorf("PickFirstColumn(%v) = %q, %v, want %q, %v", tt.candidates, got, ok, tt.want, tt.ok)
			}
		})
	}
	if _, ok := PickFirstColumn([]string{"Name"}, nil); ok {
		t.Error("empty header must not match")
	}
}

func TestLoadNameList(t *testing.T) {
	csvPath := writeFile(t, "gold.csv", "Name,Note\nGeoDS,x\n,y\nOther,z\n")
	names, err := LoadNameList(csvPath, "Name")
	if err != nil {
		t.Fatalf("LoadNameList() error = %v", err)
	}
	if len(names) != 2 || names[0] != "GeoDS" || names[1] != "Other" {
		t.Errorf("names = %v", names)
	}

	// Unknown column falls back to the first column.
	names, err = LoadNameList(csvPath, "Missing")
	if err != nil {
		t.Fatalf("LoadNameList() error = %v", err)
	}
	if len(names) != 2 || names[0] != "GeoDS" {
		t.Errorf("fallback names = %v", names)
	}

	txtPath := writeFile(t, "gold.txt", "One Name\nAnother Name\n\n")
	names, err = LoadNameList(txtPath, "")
	if err != nil {
		t.Fatalf("LoadNameList() error = %v", err)
	}
	if len(names) != 2 {
		t.Errorf("txt names = %v", names)
	}

	names, err = LoadNameList(filepath.Join(t.TempDir(), "absent.csv"), "")
	if err != nil || names != nil {
		t.Errorf("missing file should degrade to empty list, got %v, %v", names, err)
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		path         string
		file, method string
	}{
		{"/data/results.tsv", "results.tsv", ""},
		{"/data/wb.xlsx#ours", "wb.xlsx", "ours"},
		{"wb.xlsx#extra#google", "wb.xlsx", "google"},
	}
	for _, tt := range tests {
		file, method := DisplayName(tt.path)
		if file != tt.file || method != tt.method {
			t.Errorf("DisplayName(%q) = %q, %q, want %q, %q", tt.path, file, method, tt.file, tt.method)
		}
	}
}

func TestIsSurveyInput(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"wb.xlsx#survey", true},
		{"survey.tsv", true},
		{"data.survey.csv", true},
		{"mysurveys.tsv", false},
		{"results.tsv", false},
	}
	for _, tt := range tests {
		if got := IsSurveyInput(tt.path); got != tt.want {
			t.Errorf("IsSurveyInput(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestExpandInputs_Directory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.tsv", "a.tsv", "skip.csv"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("Name\nX\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	files, err := ExpandInputs(dir, "*.tsv")
	if err != nil {
		t.Fatalf("ExpandInputs() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %v", files)
	}
	if filepath.Base(files[0]) != "a.tsv" {
		t.Errorf("expected sorted order, got %v", files)
	}
}
