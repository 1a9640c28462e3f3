package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/statfetch/bodyshape-cli/internal/utils"
)

// Table is a parsed delimited table: one header row plus untyped text cells.
// Every row holds exactly len(Header) cells; short rows are padded and long
// rows truncated at parse time, so downstream indexing is always safe.
type Table struct {
	Header []string
	Rows   [][]string
}

// LoadError indicates a raw artifact could not be parsed as a delimited table
// at all. The path is kept so callers can point the user at the file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("load table %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("load table: %v", e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SniffDelimiter guesses the field delimiter from the file name.
func SniffDelimiter(name string) rune {
	if strings.HasSuffix(strings.ToLower(name), ".tsv") {
		return '\t'
	}
	return ','
}

// Parse reads delimited text into a Table. A strict pass is tried first; on
// failure a lazy-quotes pass gives malformed quoting a second chance before
// the whole payload is rejected.
func Parse(data []byte, delim rune) (*Table, error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	t, err := parse(data, delim, false)
	if err != nil {
		t, err = parse(data, delim, true)
	}
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	return t, nil
}

func parse(data []byte, delim rune, lazy bool) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = lazy

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty input")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	ncol := len(header)
	if ncol == 0 {
		return nil, errors.New("header has no columns")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	t := &Table{Header: header}
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(t.Rows)+1, err)
		}
		row := make([]string, ncol)
		copy(row, rec)
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// ReadFile loads a delimited table from disk, sniffing the delimiter from the
// file name.
func ReadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	t, err := Parse(data, SniffDelimiter(path))
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}
	return t, nil
}

// Write renders the table as comma-delimited UTF-8 text: one header row
// followed by one row per record, no index column.
func (t *Table) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the table to path atomically.
func (t *Table) WriteFile(path string) error {
	var buf bytes.Buffer
	if err := t.Write(&buf); err != nil {
		return err
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}
