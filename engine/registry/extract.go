package registry

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bimmerhuolto/backend/engine/domain"
)

// LabelValue is one label/value row scraped from the results page.
type LabelValue struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// fieldLabels maps one VehicleFields member to the label variants the
// registry renders for it. The page is served in Finnish or English
// depending on the visitor, so both are listed. Matching is
// case-insensitive substring; the longest matching variant across the whole
// table wins, so "vuosimalli" resolves to year even though "malli" is a
// model variant. First row per field wins.
type fieldLabels struct {
	field  string
	labels []string
}

var fieldLabelTable = []fieldLabels{
	{"make", []string{"merkki", "valmistaja", "make", "brand"}},
	{"model", []string{"kaupallinen nimi", "mallimerkintä", "malli", "commercial name", "model"}},
	{"year", []string{"käyttöönottopäivä", "käyttöönottovuosi", "ensirekisteröinti", "vuosimalli", "first registration", "model year"}},
	{"color", []string{"väri", "colour", "color"}},
	{"engine_size", []string{"iskutilavuus", "sylinteritilavuus", "displacement", "engine size"}},
	{"fuel_type", []string{"käyttövoima", "polttoaine", "fuel"}},
	{"power", []string{"suurin nettoteho", "teho", "power"}},
	{"co2", []string{"co2-päästöt", "hiilidioksidipäästöt", "co2"}},
	{"emission_class", []string{"euro-päästöluokka", "päästöluokka", "emission class", "euro class"}},
	{"vehicle_class", []string{"ajoneuvoluokka", "vehicle class", "vehicle category"}},
	{"mass", []string{"omamassa", "massa tieliikenteessä", "kerb weight", "mass"}},
	{"seats", []string{"istumapaikkojen lukumäärä", "istumapaikat", "seats", "seating"}},
	{"next_inspection", []string{"seuraava katsastus", "katsastusaika", "next inspection"}},
	{"tax_class", []string{"verotusluokka", "ajoneuvoveron peruste", "tax class"}},
}

var yearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// ExtractFields walks scraped rows and fills VehicleFields using the label
// table. It never fails; the caller decides usability via Complete().
func ExtractFields(rows []LabelValue) *domain.VehicleFields {
	fields := &domain.VehicleFields{}
	seen := map[string]bool{}

	for _, row := range rows {
		label := strings.ToLower(strings.TrimSpace(row.Label))
		value := strings.TrimSpace(row.Value)
		if label == "" || value == "" {
			continue
		}
		name := matchField(label)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		assign(fields, name, value)
	}
	return fields
}

func matchField(label string) string {
	var best string
	bestLen := 0
	for _, fl := range fieldLabelTable {
		for _, variant := range fl.labels {
			if len(variant) > bestLen && strings.Contains(label, variant) {
				best = fl.field
				bestLen = len(variant)
			}
		}
	}
	return best
}

func assign(f *domain.VehicleFields, name, value string) {
	switch name {
	case "make":
		f.Make = value
	case "model":
		f.Model = value
	case "year":
		// Dates come as 15.3.2008 or plain 2008; take the 4-digit year.
		if m := yearRe.FindString(value); m != "" {
			f.Year, _ = strconv.Atoi(m)
		}
	case "color":
		f.Color = value
	case "engine_size":
		f.EngineSize = value
	case "fuel_type":
		f.FuelType = value
	case "power":
		f.Power = value
	case "co2":
		f.CO2Emissions = value
	case "emission_class":
		f.EmissionClass = value
	case "vehicle_class":
		f.VehicleClass = value
	case "mass":
		f.Mass = value
	case "seats":
		if n, err := strconv.Atoi(strings.Fields(value)[0]); err == nil {
			f.Seats = n
		}
	case "next_inspection":
		f.NextInspection = value
	case "tax_class":
		f.TaxClass = value
	}
}
