package clean

import "testing"

func TestParseAgeGroup(t *testing.T) {
	cases := []struct {
		label string
		want  AgeInterval
		ok    bool
	}{
		{"18-24", AgeInterval{Lower: 18, Upper: 24}, true},
		{"18 - 24", AgeInterval{Lower: 18, Upper: 24}, true},
		{"25–34", AgeInterval{Lower: 25, Upper: 34}, true},
		{"80+", AgeInterval{Lower: 80, Open: true}, true},
		{"80 +", AgeInterval{Lower: 80, Open: true}, true},
		{"80 and over", AgeInterval{Lower: 80, Open: true}, true},
		{"80 and Over", AgeInterval{Lower: 80, Open: true}, true},
		{"85 or over", AgeInterval{Lower: 85, Open: true}, true},
		{"45", AgeInterval{Lower: 45, Upper: 45}, true},
		{" 45 ", AgeInterval{Lower: 45, Upper: 45}, true},
		{"n/a", AgeInterval{}, false},
		{"", AgeInterval{}, false},
		{"all ages", AgeInterval{}, false},
	}
	for _, tc := range cases {
		got, ok := ParseAgeGroup(tc.label)
		if ok != tc.ok {
			t.Errorf("ParseAgeGroup(%q) ok = %v, want %v", tc.label, ok, tc.ok)
			continue
		}
		if ok && got != tc.want {
			t.Errorf("ParseAgeGroup(%q) = %+v, want %+v", tc.label, got, tc.want)
		}
	}
}

func TestAgeIntervalOverlaps(t *testing.T) {
	cases := []struct {
		label string
		keep  bool
	}{
		{"17-20", true},  // straddles the lower bound
		{"18-24", true},
		{"70-79", true},
		{"80+", true},    // open upper bound still overlaps
		{"81-90", false},
		{"0-17", false},
		{"90+", false},
	}
	for _, tc := range cases {
		iv, ok := ParseAgeGroup(tc.label)
		if !ok {
			t.Fatalf("ParseAgeGroup(%q) unexpectedly unparseable", tc.label)
		}
		if got := iv.Overlaps(18, 80); got != tc.keep {
			t.Errorf("Overlaps(18, 80) for %q = %v, want %v", tc.label, got, tc.keep)
		}
	}
}
