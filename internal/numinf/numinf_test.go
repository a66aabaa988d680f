package numinf

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		in      string
		want    NumberOrInf
		wantErr bool
	}{
		{"inf", Inf, false},
		{"INF", Inf, false},
		{"Inf", Inf, false},
		{"0", Finite(0), false},
		{"42", Finite(42), false},
		{"-3", Finite(-3), false},
		{"+7", Finite(7), false},
		{"not-a-number", NumberOrInf{}, true},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("Parse(%q): expected error, got %v", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error: %v", c.in, err)
		}
		if got.Cmp(c.want) != 0 {
			t.Errorf("Parse(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestOrdering(t *testing.T) {
	if !Finite(5).Less(Finite(10)) {
		t.Error("5 should be less than 10")
	}
	if !Finite(1 << 40).Less(Inf) {
		t.Error("any finite value should be less than Inf")
	}
	if Inf.Less(Inf) {
		t.Error("Inf should not be less than Inf")
	}
	if Inf.Less(Finite(1000)) {
		t.Error("Inf should never be less than a finite value")
	}
}

func TestSatDec(t *testing.T) {
	if got := Finite(0).SatDec(); got.Cmp(Finite(0)) != 0 {
		t.Errorf("SatDec floor at 0, got %v", got)
	}
	if got := Finite(3).SatDec(); got.Cmp(Finite(2)) != 0 {
		t.Errorf("SatDec(3) = %v, want 2", got)
	}
	if got := Inf.SatDec(); !got.IsInf() {
		t.Errorf("SatDec(Inf) should stay Inf, got %v", got)
	}
}

func TestAddSaturates(t *testing.T) {
	if got := Inf.Add(Finite(5)); !got.IsInf() {
		t.Errorf("Inf+5 should be Inf, got %v", got)
	}
	big := Finite(1 << 62)
	if got := big.Add(big); !got.IsInf() {
		t.Errorf("overflowing add should saturate to Inf, got %v", got)
	}
}
