package table

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParsePadsShortRows(t *testing.T) {
	data := []byte("a,b,c\n1,2,3\n4,5\n6,7,8,9\n")
	tab, err := Parse(data, ',')
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(tab.Header, []string{"a", "b", "c"}) {
		t.Fatalf("header = %v", tab.Header)
	}
	want := [][]string{
		{"1", "2", "3"},
		{"4", "5", ""},
		{"6", "7", "8"},
	}
	if !reflect.DeepEqual(tab.Rows, want) {
		t.Errorf("rows = %v, want %v", tab.Rows, want)
	}
}

func TestParseStripsBOM(t *testing.T) {
	data := []byte("\ufeffAge Group,Sex\n18-24,Male\n")
	tab, err := Parse(data, ',')
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tab.Header[0] != "Age Group" {
		t.Errorf("BOM not stripped: %q", tab.Header[0])
	}
}

func TestParseEmptyInput(t *testing.T) {
	_, err := Parse(nil, ',')
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("want LoadError, got %v", err)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.csv"))
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("want LoadError, got %v", err)
	}
	if le.Path == "" {
		t.Errorf("LoadError should carry the artifact path")
	}
}

func TestSniffDelimiter(t *testing.T) {
	if SniffDelimiter("data.tsv") != '\t' {
		t.Errorf("tsv should sniff tab")
	}
	if SniffDelimiter("data.csv") != ',' {
		t.Errorf("csv should sniff comma")
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	tab := &Table{
		Header: []string{"AgeGroup", "Sex"},
		Rows:   [][]string{{"18-24", "Male"}, {"25-34", "Female"}},
	}
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := tab.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !reflect.DeepEqual(got, tab) {
		t.Errorf("round trip mismatch: %v vs %v", got, tab)
	}
	// No stray temp file left behind.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind")
	}
}

func TestWriteNoTrailingIndexColumn(t *testing.T) {
	tab := &Table{Header: []string{"AgeGroup", "Sex"}, Rows: [][]string{{"18-24", "Male"}}}
	var buf bytes.Buffer
	if err := tab.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := "AgeGroup,Sex\n18-24,Male\n"
	if buf.String() != want {
		t.Errorf("Write = %q, want %q", buf.String(), want)
	}
}
