package units

import "testing"

func TestToDisplay(t *testing.T) {
	cases := []struct {
		celsius float64
		unit    Unit
		want    float64
	}{
		{0, Fahrenheit, 32},
		{100, Fahrenheit, 212},
		{-40, Fahrenheit, -40},
		{37.5, Celsius, 37.5},
		{-12.3, Celsius, -12.3},
	}

	for _, tc := range cases {
		if got := ToDisplay(tc.celsius, tc.unit); got != tc.want {
			t.Errorf("ToDisplay(%v, %s) = %v, want %v", tc.celsius, tc.unit, got, tc.want)
		}
	}
}

func TestConvertAllLeavesInputUntouched(t *testing.T) {
	in := []float64{0, 10, 100}
	out := ConvertAll(in, Fahrenheit)

	want := []float64{32, 50, 212}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
	if in[0] != 0 || in[1] != 10 || in[2] != 100 {
		t.Fatalf("input was mutated: %v", in)
	}
}

func TestParseUnit(t *testing.T) {
	for _, s := range []string{"Celsius", "celsius", "C", " c "} {
		u, err := ParseUnit(s)
		if err != nil || u != Celsius {
			t.Errorf("ParseUnit(%q) = %q, %v", s, u, err)
		}
	}
	if u, err := ParseUnit("F"); err != nil || u != Fahrenheit {
		t.Errorf("ParseUnit(F) = %q, %v", u, err)
	}
	if _, err := ParseUnit("kelvin"); err == nil {
		t.Error("expected error for kelvin")
	}
}

func TestLetter(t *testing.T) {
	if Celsius.Letter() != "C" || Fahrenheit.Letter() != "F" {
		t.Fatalf("unexpected letters %q %q", Celsius.Letter(), Fahrenheit.Letter())
	}
}
