package clean

import (
	"math"
	"strconv"
	"strings"
)

// BMI category labels, WHO adult thresholds.
const (
	CategoryUnderweight = "Underweight"
	CategoryNormal      = "Normal"
	CategoryOverweight  = "Overweight"
	CategoryObese       = "Obese"
)

// parseCell coerces one text cell to a finite float. Cells that fail to parse
// are reported via ok rather than an error; bad cells are a per-row concern.
func parseCell(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// DeriveBMI computes weight/height² for one row. Heights above 3 are taken as
// centimetres and converted to metres; no adult height in metres exceeds 3.
// Weight is taken as kilograms. Non-numeric or non-positive height yields NaN
// so one bad row never aborts the batch.
func DeriveBMI(heightCell, weightCell string) float64 {
	h, ok := parseCell(heightCell)
	if !ok || h <= 0 {
		return math.NaN()
	}
	w, ok := parseCell(weightCell)
	if !ok {
		return math.NaN()
	}
	if h > 3 {
		h /= 100
	}
	return w / (h * h)
}

// Categorize maps a BMI value to one of the four ordinal labels. Boundaries
// are lower-inclusive. Non-finite values yield an empty category.
func Categorize(bmi float64) string {
	if math.IsNaN(bmi) || math.IsInf(bmi, 0) {
		return ""
	}
	switch {
	case bmi < 18.5:
		return CategoryUnderweight
	case bmi < 25:
		return CategoryNormal
	case bmi < 30:
		return CategoryOverweight
	default:
		return CategoryObese
	}
}
