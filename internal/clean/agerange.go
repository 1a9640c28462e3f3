package clean

import (
	"regexp"
	"strconv"
	"strings"
)

// AgeInterval is the numeric range behind an age-band label. Open means the
// band has no upper bound ("80+", "80 and over").
type AgeInterval struct {
	Lower int
	Upper int
	Open  bool
}

// Age-band forms, tried in order; first match wins. Published tables encode
// bands inconsistently across revisions ("18-24", "18–24", "80+", "80 and
// over", single years), so each form gets its own pattern rather than one
// mega-regex.
var (
	reAgeSpan   = regexp.MustCompile(`(\d{1,3})\s*[-–]\s*(\d{1,3})`)
	reAgePlus   = regexp.MustCompile(`(\d{1,3})\s*\+`)
	reAgeOver   = regexp.MustCompile(`(\d{1,3}).*over`)
	reAgeSingle = regexp.MustCompile(`^(\d{1,3})$`)
)

// ParseAgeGroup converts a free-text age-band label into an AgeInterval.
// ok is false for labels matching none of the known forms; callers drop such
// rows instead of failing, so one malformed label cannot abort a table.
func ParseAgeGroup(label string) (AgeInterval, bool) {
	s := strings.TrimSpace(label)
	if m := reAgeSpan.FindStringSubmatch(s); m != nil {
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		return AgeInterval{Lower: a, Upper: b}, true
	}
	if m := reAgePlus.FindStringSubmatch(s); m != nil {
		a, _ := strconv.Atoi(m[1])
		return AgeInterval{Lower: a, Open: true}, true
	}
	if m := reAgeOver.FindStringSubmatch(strings.ToLower(s)); m != nil {
		a, _ := strconv.Atoi(m[1])
		return AgeInterval{Lower: a, Open: true}, true
	}
	if m := reAgeSingle.FindStringSubmatch(s); m != nil {
		a, _ := strconv.Atoi(m[1])
		return AgeInterval{Lower: a, Upper: a}, true
	}
	return AgeInterval{}, false
}

// openUpperSentinel stands in for a missing upper bound in overlap tests.
const openUpperSentinel = 200

// Overlaps reports whether the interval intersects [min, max], inclusive on
// both ends.
func (iv AgeInterval) Overlaps(min, max int) bool {
	hi := iv.Upper
	if iv.Open {
		hi = openUpperSentinel
	}
	return iv.Lower <= max && hi >= min
}
