package domain

import "testing"

func TestNormalizePlate(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"abc-123", "ABC123"},
		{"ABC 123", "ABC123"},
		{" abc - 123 ", "ABC123"},
		{"ABC123", "ABC123"},
		{"öky-1", "ÖKY1"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizePlate(c.in); got != c.want {
			t.Errorf("NormalizePlate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizePlate_Idempotent(t *testing.T) {
	inputs := []string{"abc-123", "XY Z-9", "cbx 77", "ÅSA-55"}
	for _, in := range inputs {
		once := NormalizePlate(in)
		twice := NormalizePlate(once)
		if once != twice {
			t.Errorf("normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestValidPlate(t *testing.T) {
	valid := []string{"ABC123", "AB1", "ÖKY999", "XYZ1"}
	for _, p := range valid {
		if !ValidPlate(p) {
			t.Errorf("expected %q valid", p)
		}
	}
	invalid := []string{"", "A123", "ABCD123", "ABC1234", "123ABC", "ABC-123"}
	for _, p := range invalid {
		if ValidPlate(p) {
			t.Errorf("expected %q invalid", p)
		}
	}
}

func TestFindPlate(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"rekisterinumero on ABC-123", "ABC123"},
		{"abc123", "ABC123"},
		{"auto xyz-9 ei käynnisty", "XYZ9"},
		{"rekkari on ÖKY-999", "ÖKY999"}, // Å/Ä/Ö must not split the token
		{"ÄRR-12 tuli pihaan", "ÄRR12"},
		{"öky999", "ÖKY999"},
		{"ABC-1234 ei käy", "ABC1234"}, // scan finds it, ValidPlate rejects it
		{"varataan aika klo 16", ""},
		{"ei rekkaria täällä", ""},
		{"hinta?", ""},
	}
	for _, c := range cases {
		if got := FindPlate(c.in); got != c.want {
			t.Errorf("FindPlate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
