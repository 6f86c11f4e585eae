package knowledge

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/bimmerhuolto/backend/engine/domain"
)

// fakeKV is an in-memory KV for tests.
type fakeKV struct {
	data map[string]string
	gets int
	sets int
}

func newFakeKV() *fakeKV { return &fakeKV{data: map[string]string{}} }

func (f *fakeKV) GetJSON(_ context.Context, key string, dest any) bool {
	f.gets++
	raw, ok := f.data[key]
	if !ok {
		return false
	}
	return json.Unmarshal([]byte(raw), dest) == nil
}

func (f *fakeKV) SetJSON(_ context.Context, key string, v any, _ time.Duration) bool {
	f.sets++
	raw, err := json.Marshal(v)
	if err != nil {
		return false
	}
	f.data[key] = string(raw)
	return true
}

func fixtureDataset() Dataset {
	return Dataset{
		"320d": {
			{
				Model: "320d", YearStart: 2006, YearEnd: 2011,
				EngineCode: "N47", GenerationCode: "V", ChassisCode: "E90",
				OilSpec: "BMW Longlife-04 5W-30", OilCapacity: "5.2 l",
				ServiceInterval: "25 000 km",
				CommonIssues:    []string{"Jakoketjun venyminen"},
				BaseValuation:   domain.Valuation{Excellent: 12000, Good: 9000, Fair: 6000, Poor: 3000},
				PartsTier:       domain.TierMedium,
			},
			{
				Model: "320d", YearStart: 2012, YearEnd: 2018,
				EngineCode: "B47", GenerationCode: "VI", ChassisCode: "F30",
				OilSpec: "BMW Longlife-04 5W-30", OilCapacity: "5.2 l",
				ServiceInterval: "30 000 km",
				CommonIssues:    []string{"AdBlue-anturit"},
				BaseValuation:   domain.Valuation{Excellent: 19000, Good: 15000, Fair: 11000, Poor: 6500},
				PartsTier:       domain.TierMedium,
			},
		},
	}
}

// fixedBase returns a Base over the fixture dataset with the clock pinned.
func fixedBase(kv KV, year int) *Base {
	b := New(fixtureDataset(), kv, nil)
	b.now = func() time.Time { return time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC) }
	return b
}

func TestLookup_MatchesYearRange(t *testing.T) {
	b := fixedBase(newFakeKV(), 2026)

	p := b.Lookup(context.Background(), "BMW", "320d", 2008)
	if p.EngineCode != "N47" || p.ChassisCode != "E90" {
		t.Fatalf("expected E90 record, got %+v", p)
	}

	p = b.Lookup(context.Background(), "BMW", "320 d", 2015)
	if p.ChassisCode != "F30" {
		t.Fatalf("expected F30 record for 2015, got %q", p.ChassisCode)
	}
}

func TestLookup_GenericFallback(t *testing.T) {
	b := fixedBase(newFakeKV(), 2026)

	cases := []struct {
		model string
		year  int
	}{
		{"320d", 2005}, // just below all ranges
		{"320d", 2019}, // just above all ranges
		{"740i", 2010}, // unknown model
		{"320d", 0},    // unknown year
	}
	for _, c := range cases {
		p := b.Lookup(context.Background(), "BMW", c.model, c.year)
		if !strings.Contains(strings.ToLower(p.EngineCode), "tuntematon") {
			t.Errorf("%s/%d: expected generic profile, got engine code %q", c.model, c.year, p.EngineCode)
		}
	}
}

func TestLookup_GenericOilSpecByAge(t *testing.T) {
	b := fixedBase(newFakeKV(), 2026)

	old := b.Lookup(context.Background(), "BMW", "740i", 2000)
	if !strings.Contains(old.OilSpec, "Longlife-98") {
		t.Errorf("expected older oil spec for >15y car, got %q", old.OilSpec)
	}
	recent := b.Lookup(context.Background(), "BMW", "740i", 2020)
	if !strings.Contains(recent.OilSpec, "Longlife-04") {
		t.Errorf("expected newer oil spec, got %q", recent.OilSpec)
	}
}

func TestDepreciationFactor(t *testing.T) {
	cases := []struct {
		age  int
		want float64
	}{
		{0, 1.0},
		{5, 0.6},
		{8, 0.36},
		{10, 0.3}, // 1-10*0.08=0.2, floored at 0.3
		{30, 0.3},
		{-1, 1.0},
	}
	for _, c := range cases {
		got := DepreciationFactor(c.age)
		if diff := got - c.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("DepreciationFactor(%d) = %v, want %v", c.age, got, c.want)
		}
	}
}

func TestLookup_DepreciatedValuation(t *testing.T) {
	// Age 10 in 2018 for a 2008 car: factor floors at 0.3, so the E90
	// base of 12000/3000 becomes 3600/900.
	b := fixedBase(newFakeKV(), 2018)

	p := b.Lookup(context.Background(), "BMW", "320d", 2008)
	if p.Valuation.Excellent != 3600 {
		t.Errorf("excellent: got %d, want 3600", p.Valuation.Excellent)
	}
	if p.Valuation.Poor != 900 {
		t.Errorf("poor: got %d, want 900", p.Valuation.Poor)
	}
	if !strings.Contains(p.EstimatedValue, "900") || !strings.Contains(p.EstimatedValue, "3600") {
		t.Errorf("display should span poor..excellent, got %q", p.EstimatedValue)
	}
}

func TestLookup_Memoizes(t *testing.T) {
	kv := newFakeKV()
	b := fixedBase(kv, 2026)

	first := b.Lookup(context.Background(), "BMW", "320d", 2008)
	if kv.sets != 1 {
		t.Fatalf("expected one cache write, got %d", kv.sets)
	}

	second := b.Lookup(context.Background(), "BMW", "320d", 2008)
	if kv.sets != 1 {
		t.Fatalf("second lookup should hit the cache, writes=%d", kv.sets)
	}
	if second.EngineCode != first.EngineCode || second.EstimatedValue != first.EstimatedValue {
		t.Fatalf("cached profile differs: %+v vs %+v", first, second)
	}
}

func TestLookup_NilKV(t *testing.T) {
	b := New(fixtureDataset(), nil, nil)
	b.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
	if p := b.Lookup(context.Background(), "BMW", "320d", 2008); p == nil {
		t.Fatal("lookup must never return nil")
	}
}

func TestNormalizeModel(t *testing.T) {
	cases := map[string]string{
		"3 Series": "3series",
		"320 d":    "320d",
		" X5 ":     "x5",
		"m3":       "m3",
	}
	for in, want := range cases {
		if got := NormalizeModel(in); got != want {
			t.Errorf("NormalizeModel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDefaultBMWDataset_RangesDisjoint(t *testing.T) {
	for model, records := range DefaultBMW() {
		for i, a := range records {
			if a.YearStart > a.YearEnd {
				t.Errorf("%s[%d]: inverted range %d..%d", model, i, a.YearStart, a.YearEnd)
			}
			for _, b := range records[i+1:] {
				if a.YearStart <= b.YearEnd && b.YearStart <= a.YearEnd {
					t.Errorf("%s: overlapping ranges %d..%d and %d..%d",
						model, a.YearStart, a.YearEnd, b.YearStart, b.YearEnd)
				}
			}
		}
	}
}
