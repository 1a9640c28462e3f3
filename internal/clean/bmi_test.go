package clean

import (
	"math"
	"testing"
)

func TestDeriveBMIUnitForms(t *testing.T) {
	// 170 trips the centimetre heuristic (>3); 1.70 is taken as metres.
	// Both forms must converge on the same BMI.
	cm := DeriveBMI("170", "70")
	m := DeriveBMI("1.70", "70")
	want := 70 / (1.70 * 1.70)
	if math.Abs(cm-want) > 1e-9 {
		t.Errorf("DeriveBMI(170, 70) = %v, want %v", cm, want)
	}
	if math.Abs(cm-m) > 1e-9 {
		t.Errorf("unit forms diverge: cm=%v m=%v", cm, m)
	}
}

func TestDeriveBMIBadRows(t *testing.T) {
	cases := []struct{ h, w string }{
		{"n/a", "70"},
		{"", "70"},
		{"0", "70"},
		{"-170", "70"},
		{"170", "n/a"},
		{"170", ""},
	}
	for _, tc := range cases {
		if got := DeriveBMI(tc.h, tc.w); !math.IsNaN(got) {
			t.Errorf("DeriveBMI(%q, %q) = %v, want NaN", tc.h, tc.w, got)
		}
	}
}

func TestCategorize(t *testing.T) {
	cases := []struct {
		bmi  float64
		want string
	}{
		{18.4, CategoryUnderweight},
		{18.5, CategoryNormal},
		{24.9, CategoryNormal},
		{25.0, CategoryOverweight},
		{29.9, CategoryOverweight},
		{30.0, CategoryObese},
		{45.0, CategoryObese},
	}
	for _, tc := range cases {
		if got := Categorize(tc.bmi); got != tc.want {
			t.Errorf("Categorize(%v) = %q, want %q", tc.bmi, got, tc.want)
		}
	}
	if got := Categorize(math.NaN()); got != "" {
		t.Errorf("Categorize(NaN) = %q, want empty", got)
	}
}
