// Package clean normalizes an arbitrary body-shape aggregate table into the
// canonical AgeGroup/Sex/BMI schema: column role detection, age-band and sex
// filtering, BMI derivation and categorization.
package clean

import (
	"math"
	"strconv"
	"strings"

	"github.com/statfetch/bodyshape-cli/internal/table"
)

// Options configure a normalization pass.
type Options struct {
	// MinAge and MaxAge bound the inclusive age range to keep. Rows whose
	// parsed age band overlaps [MinAge, MaxAge] survive the filter.
	MinAge int
	MaxAge int
}

// DefaultOptions keeps adults aged 18 through 80.
func DefaultOptions() Options {
	return Options{MinAge: 18, MaxAge: 80}
}

// Canonical output column names. Source age/sex columns are renamed to these;
// all other selected columns keep their source names.
const (
	ColAgeGroup = "AgeGroup"
	ColSex      = "Sex"
	ColBMI      = "BMI"
	ColCategory = "BMI_category"
)

// Normalize runs the cleaning pass over src and returns the canonical table:
// detect roles, filter by age range and sex, resolve a BMI source (existing
// column, derived from height+weight, or none), categorize, then select and
// rename columns. src is not modified.
//
// Fatal conditions are missing age/sex roles only. Row-level problems
// (unparseable age bands, non-numeric cells) drop the row or blank the cell.
func Normalize(src *table.Table, opt Options) (*table.Table, error) {
	roles := DetectColumns(src.Header)
	if _, ok := roles[RoleAge]; !ok {
		return nil, &SchemaError{Roles: roles}
	}
	if _, ok := roles[RoleSex]; !ok {
		return nil, &SchemaError{Roles: roles}
	}

	idx := columnIndex(src.Header)
	ageIdx := idx[roles[RoleAge]]
	sexIdx := idx[roles[RoleSex]]

	rows := make([][]string, 0, len(src.Rows))
	for _, row := range src.Rows {
		iv, ok := ParseAgeGroup(row[ageIdx])
		if !ok || !iv.Overlaps(opt.MinAge, opt.MaxAge) {
			continue
		}
		if !keepSex(row[sexIdx]) {
			continue
		}
		rows = append(rows, row)
	}

	// Resolve the BMI source: prefer an existing BMI column, fall back to
	// deriving from height and weight when both are present.
	var bmis []float64
	if name, ok := roles[RoleBMI]; ok {
		col := idx[name]
		bmis = make([]float64, len(rows))
		for i, row := range rows {
			if v, ok := parseCell(row[col]); ok {
				bmis[i] = v
			} else {
				bmis[i] = math.NaN()
			}
		}
	} else if hname, hok := roles[RoleHeight]; hok {
		if wname, wok := roles[RoleWeight]; wok {
			hcol, wcol := idx[hname], idx[wname]
			bmis = make([]float64, len(rows))
			for i, row := range rows {
				bmis[i] = DeriveBMI(row[hcol], row[wcol])
			}
		}
	}
	haveBMI := bmis != nil

	header := []string{ColAgeGroup, ColSex}
	if haveBMI {
		header = append(header, ColBMI, ColCategory)
	}
	// Height/weight source columns are carried through unchanged.
	var carry []int
	for _, role := range []Role{RoleHeight, RoleWeight} {
		if name, ok := roles[role]; ok {
			carry = append(carry, idx[name])
			header = append(header, name)
		}
	}

	out := &table.Table{Header: header, Rows: make([][]string, 0, len(rows))}
	for i, row := range rows {
		rec := make([]string, 0, len(header))
		rec = append(rec, row[ageIdx], row[sexIdx])
		if haveBMI {
			rec = append(rec, formatBMI(bmis[i]), Categorize(bmis[i]))
		}
		for _, c := range carry {
			rec = append(rec, row[c])
		}
		out.Rows = append(out.Rows, rec)
	}
	return out, nil
}

// columnIndex maps each column name to its first occurrence; duplicate names
// resolve to the leftmost column, matching detection order.
func columnIndex(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, name := range header {
		if _, ok := m[name]; !ok {
			m[name] = i
		}
	}
	return m
}

// keepSex reports whether a sex cell should be retained. The containment test
// is deliberately permissive to cover the many label variants in published
// tables (Male, M, female, ...); it is known to also match unrelated tokens
// containing a lone "m" or "f".
func keepSex(cell string) bool {
	s := strings.ToLower(cell)
	return strings.Contains(s, "male") || strings.Contains(s, "female") ||
		strings.Contains(s, "m") || strings.Contains(s, "f")
}

// formatBMI renders a BMI value for the output table; NaN becomes an empty
// cell so the category invariant (category present implies BMI present) holds.
func formatBMI(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
