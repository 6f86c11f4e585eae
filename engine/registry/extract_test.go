package registry

import "testing"

func TestExtractFields_Finnish(t *testing.T) {
	rows := []LabelValue{
		{Label: "Merkki", Value: "BMW"},
		{Label: "Kaupallinen nimi", Value: "320d"},
		{Label: "Käyttöönottopäivä", Value: "15.3.2008"},
		{Label: "Väri", Value: "Musta"},
		{Label: "Iskutilavuus", Value: "1995 cm3"},
		{Label: "Käyttövoima", Value: "Dieselöljy"},
		{Label: "Suurin nettoteho", Value: "130 kW"},
		{Label: "CO2-päästöt", Value: "152 g/km"},
		{Label: "Euro-päästöluokka", Value: "Euro 4"},
		{Label: "Ajoneuvoluokka", Value: "M1"},
		{Label: "Omamassa", Value: "1505 kg"},
		{Label: "Istumapaikkojen lukumäärä", Value: "5"},
		{Label: "Seuraava katsastus", Value: "31.3.2027"},
		{Label: "Verotusluokka", Value: "Henkilöauto"},
	}
	f := ExtractFields(rows)

	if f.Make != "BMW" || f.Model != "320d" {
		t.Fatalf("make/model: got %q/%q", f.Make, f.Model)
	}
	if f.Year != 2008 {
		t.Errorf("year: got %d, want 2008", f.Year)
	}
	if f.Seats != 5 {
		t.Errorf("seats: got %d, want 5", f.Seats)
	}
	if f.FuelType != "Dieselöljy" || f.Color != "Musta" {
		t.Errorf("fuel/color: got %q/%q", f.FuelType, f.Color)
	}
	if f.NextInspection != "31.3.2027" {
		t.Errorf("inspection: got %q", f.NextInspection)
	}
	if !f.Complete() {
		t.Error("expected complete fields")
	}
}

func TestExtractFields_English(t *testing.T) {
	rows := []LabelValue{
		{Label: "Make", Value: "Toyota"},
		{Label: "Commercial name", Value: "Corolla"},
		{Label: "First registration", Value: "2015"},
		{Label: "Fuel", Value: "Petrol"},
	}
	f := ExtractFields(rows)
	if f.Make != "Toyota" || f.Model != "Corolla" || f.Year != 2015 {
		t.Fatalf("got %+v", f)
	}
}

func TestExtractFields_FirstRowWinsPerField(t *testing.T) {
	rows := []LabelValue{
		{Label: "Merkki", Value: "BMW"},
		{Label: "Merkki", Value: "Audi"},
	}
	if f := ExtractFields(rows); f.Make != "BMW" {
		t.Fatalf("expected first value kept, got %q", f.Make)
	}
}

func TestExtractFields_YearLabelDoesNotShadowModel(t *testing.T) {
	// "malli" is a substring of "vuosimalli"; the year row renders before
	// the model row here and must not be consumed as the model.
	rows := []LabelValue{
		{Label: "Merkki", Value: "BMW"},
		{Label: "Vuosimalli", Value: "2008"},
		{Label: "Kaupallinen nimi", Value: "320d"},
	}
	f := ExtractFields(rows)
	if f.Model != "320d" {
		t.Fatalf("model: got %q, want 320d", f.Model)
	}
	if f.Year != 2008 {
		t.Errorf("year: got %d, want 2008", f.Year)
	}
}

func TestExtractFields_Incomplete(t *testing.T) {
	rows := []LabelValue{
		{Label: "Merkki", Value: "BMW"},
		{Label: "Väri", Value: "Sininen"},
	}
	if f := ExtractFields(rows); f.Complete() {
		t.Fatal("missing model must not count as complete")
	}

	if f := ExtractFields(nil); f.Complete() {
		t.Fatal("empty rows must not count as complete")
	}
}

func TestExtractFields_IgnoresBlankAndUnknownRows(t *testing.T) {
	rows := []LabelValue{
		{Label: "", Value: "x"},
		{Label: "Merkki", Value: ""},
		{Label: "Jotain muuta", Value: "arvo"},
		{Label: "merkki", Value: "BMW"},
		{Label: "MALLI", Value: "118i"},
	}
	f := ExtractFields(rows)
	if f.Make != "BMW" || f.Model != "118i" {
		t.Fatalf("got %+v", f)
	}
}
