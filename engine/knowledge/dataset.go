package knowledge

import "github.com/bimmerhuolto/backend/engine/domain"

// ModelRecord is one reference entry: a model designation within an
// inclusive production year range. The same designation recurs across
// generations, so Dataset maps each normalized name to a list of records.
type ModelRecord struct {
	Model           string
	YearStart       int
	YearEnd         int
	EngineCode      string
	GenerationCode  string
	ChassisCode     string
	OilSpec         string
	OilCapacity     string
	ServiceInterval string
	CommonIssues    []string
	BaseValuation   domain.Valuation
	PartsTier       domain.PartsPriceTier
}

// Dataset maps a normalized model name (see NormalizeModel) to its records.
type Dataset map[string][]ModelRecord

// profile builds the final profile for a matched record, applying
// depreciation for the vehicle's age.
func (r *ModelRecord) profile(vehicleYear, currentYear int) *domain.ManufacturerProfile {
	valuation, display := depreciate(r.BaseValuation, vehicleYear, currentYear)
	return &domain.ManufacturerProfile{
		EngineCode:      r.EngineCode,
		GenerationCode:  r.GenerationCode,
		ChassisCode:     r.ChassisCode,
		OilSpec:         r.OilSpec,
		OilCapacity:     r.OilCapacity,
		ServiceInterval: r.ServiceInterval,
		CommonIssues:    append([]string(nil), r.CommonIssues...),
		Valuation:       valuation,
		EstimatedValue:  display,
		PartsPriceTier:  r.PartsTier,
	}
}

// genericProfile covers unknown models and years. The oil spec follows a
// simple age split: anything older than 15 years gets the pre-Longlife-04
// recommendation.
func genericProfile(vehicleYear, currentYear int) *domain.ManufacturerProfile {
	oilSpec := "BMW Longlife-04 5W-30"
	if currentYear-vehicleYear > 15 {
		oilSpec = "BMW Longlife-98 5W-40"
	}
	return &domain.ManufacturerProfile{
		EngineCode:      "tuntematon",
		GenerationCode:  "tuntematon",
		ChassisCode:     "tuntematon",
		OilSpec:         oilSpec,
		OilCapacity:     "4.0–6.5 l",
		ServiceInterval: "Öljynvaihto 12 kk / 15 000 km välein",
		CommonIssues: []string{
			"Tarkista jäähdytysjärjestelmän kunto",
			"Tarkista jakopään ja apulaitehihnan kunto",
			"Tarkista alustan puslat ja tukivarret",
			"Lue vikamuisti ennen huoltoa",
		},
		EstimatedValue: "Arvio ei saatavilla – ota yhteyttä korjaamoon",
		PartsPriceTier: domain.TierMedium,
	}
}

// DefaultBMW returns the built-in BMW reference dataset. The data is fixture
// material: lookups are defined by the range matching and depreciation in
// this package, not by any particular entry here.
func DefaultBMW() Dataset {
	return Dataset{
		"318i": {
			{
				Model: "318i", YearStart: 1998, YearEnd: 2005,
				EngineCode: "N42/N46", GenerationCode: "IV", ChassisCode: "E46",
				OilSpec: "BMW Longlife-98 5W-40", OilCapacity: "4.25 l",
				ServiceInterval: "Öljynvaihto 15 000 km tai 12 kk välein",
				CommonIssues: []string{
					"Venttiilikopan tiivisteen öljyvuoto",
					"Vanos-yksikön kuluminen",
					"Taka-akselin tukivarsien puslat",
				},
				BaseValuation: domain.Valuation{Excellent: 6500, Good: 4800, Fair: 3200, Poor: 1500},
				PartsTier:     domain.TierLow,
			},
			{
				Model: "318i", YearStart: 2006, YearEnd: 2011,
				EngineCode: "N43", GenerationCode: "V", ChassisCode: "E90",
				OilSpec: "BMW Longlife-04 5W-30", OilCapacity: "4.25 l",
				ServiceInterval: "CBS-huoltonäytön mukaan, enintään 25 000 km",
				CommonIssues: []string{
					"Suorasuihkutuksen suuttimien viat",
					"Sytytyspuolien kuluminen",
					"Vesipumpun laakerointi",
				},
				BaseValuation: domain.Valuation{Excellent: 9500, Good: 7200, Fair: 5000, Poor: 2400},
				PartsTier:     domain.TierMedium,
			},
		},
		"320d": {
			{
				Model: "320d", YearStart: 1998, YearEnd: 2005,
				EngineCode: "M47", GenerationCode: "IV", ChassisCode: "E46",
				OilSpec: "BMW Longlife-98 5W-40", OilCapacity: "5.5 l",
				ServiceInterval: "Öljynvaihto 15 000 km tai 12 kk välein",
				CommonIssues: []string{
					"Imusarjan läppien kuluminen",
					"EGR-venttiilin karstoittuminen",
					"Kaksoismassavauhtipyörän kuluminen",
				},
				BaseValuation: domain.Valuation{Excellent: 7000, Good: 5200, Fair: 3500, Poor: 1600},
				PartsTier:     domain.TierLow,
			},
			{
				Model: "320d", YearStart: 2006, YearEnd: 2011,
				EngineCode: "N47", GenerationCode: "V", ChassisCode: "E90",
				OilSpec: "BMW Longlife-04 5W-30", OilCapacity: "5.2 l",
				ServiceInterval: "CBS-huoltonäytön mukaan, enintään 25 000 km",
				CommonIssues: []string{
					"Jakoketjun venyminen (N47)",
					"Ahtimen öljyputken tukkeutuminen",
					"EGR-jäähdyttimen vuoto",
				},
				BaseValuation: domain.Valuation{Excellent: 12000, Good: 9000, Fair: 6000, Poor: 3000},
				PartsTier:     domain.TierMedium,
			},
			{
				Model: "320d", YearStart: 2012, YearEnd: 2018,
				EngineCode: "N47/B47", GenerationCode: "VI", ChassisCode: "F30",
				OilSpec: "BMW Longlife-04 5W-30", OilCapacity: "5.2 l",
				ServiceInterval: "CBS-huoltonäytön mukaan, enintään 30 000 km",
				CommonIssues: []string{
					"Jakoketjun venyminen (N47, ennen 2015)",
					"AdBlue-järjestelmän anturiviat",
					"Takaluukun johtosarjan katkokset",
				},
				BaseValuation: domain.Valuation{Excellent: 19000, Good: 15000, Fair: 11000, Poor: 6500},
				PartsTier:     domain.TierMedium,
			},
			{
				Model: "320d", YearStart: 2019, YearEnd: 2025,
				EngineCode: "B47", GenerationCode: "VII", ChassisCode: "G20",
				OilSpec: "BMW Longlife-17 FE+ 0W-20", OilCapacity: "5.25 l",
				ServiceInterval: "CBS-huoltonäytön mukaan, enintään 30 000 km",
				CommonIssues: []string{
					"48V-kevythybridijärjestelmän akkuviat",
					"Polttoaineen korkeapainepumpun viat",
				},
				BaseValuation: domain.Valuation{Excellent: 34000, Good: 29000, Fair: 24000, Poor: 17000},
				PartsTier:     domain.TierHigh,
			},
		},
		"330i": {
			{
				Model: "330i", YearStart: 2000, YearEnd: 2005,
				EngineCode: "M54B30", GenerationCode: "IV", ChassisCode: "E46",
				OilSpec: "BMW Longlife-98 5W-40", OilCapacity: "6.5 l",
				ServiceInterval: "Öljynvaihto 15 000 km tai 12 kk välein",
				CommonIssues: []string{
					"Jäähdytysjärjestelmän muoviosien haurastuminen",
					"Vanos-tiivisteiden kuluminen",
					"Öljynkulutus venttiilinvarsitiivisteistä",
				},
				BaseValuation: domain.Valuation{Excellent: 12000, Good: 8500, Fair: 5500, Poor: 3000},
				PartsTier:     domain.TierMedium,
			},
			{
				Model: "330i", YearStart: 2006, YearEnd: 2011,
				EngineCode: "N52B30", GenerationCode: "V", ChassisCode: "E90",
				OilSpec: "BMW Longlife-04 5W-30", OilCapacity: "6.5 l",
				ServiceInterval: "CBS-huoltonäytön mukaan, enintään 25 000 km",
				CommonIssues: []string{
					"Venttiilikopan tiivisteen vuoto",
					"Sähköisen vesipumpun viat",
					"Hydrotappien nakutus kylmänä",
				},
				BaseValuation: domain.Valuation{Excellent: 13500, Good: 10000, Fair: 7000, Poor: 3500},
				PartsTier:     domain.TierMedium,
			},
		},
		"335i": {
			{
				Model: "335i", YearStart: 2006, YearEnd: 2013,
				EngineCode: "N54/N55", GenerationCode: "V", ChassisCode: "E90/E92",
				OilSpec: "BMW Longlife-04 5W-30", OilCapacity: "6.5 l",
				ServiceInterval: "CBS-huoltonäytön mukaan, enintään 25 000 km",
				CommonIssues: []string{
					"Korkeapainepumpun (HPFP) viat",
					"Ahtopaineen hukkaporttien helinä",
					"Suuttimien vuodot (N54)",
					"Öljynjäähdyttimen tiivisteiden vuoto",
				},
				BaseValuation: domain.Valuation{Excellent: 17000, Good: 13000, Fair: 9000, Poor: 5000},
				PartsTier:     domain.TierHigh,
			},
		},
		"520d": {
			{
				Model: "520d", YearStart: 2005, YearEnd: 2010,
				EngineCode: "M47/N47", GenerationCode: "V", ChassisCode: "E60",
				OilSpec: "BMW Longlife-04 5W-30", OilCapacity: "5.5 l",
				ServiceInterval: "CBS-huoltonäytön mukaan, enintään 25 000 km",
				CommonIssues: []string{
					"Jakoketjun venyminen (N47)",
					"Pyörteilyläppien kuluminen",
					"Vauhtipyörän ja kytkimen kuluminen",
				},
				BaseValuation: domain.Valuation{Excellent: 9500, Good: 7000, Fair: 4800, Poor: 2200},
				PartsTier:     domain.TierMedium,
			},
			{
				Model: "520d", YearStart: 2011, YearEnd: 2016,
				EngineCode: "N47/B47", GenerationCode: "VI", ChassisCode: "F10",
				OilSpec: "BMW Longlife-04 5W-30", OilCapacity: "5.2 l",
				ServiceInterval: "CBS-huoltonäytön mukaan, enintään 30 000 km",
				CommonIssues: []string{
					"Jakoketjun venyminen (N47, ennen 2014)",
					"EGR-jäähdyttimen vuoto",
					"Ilmastoinnin kompressorin viat",
				},
				BaseValuation: domain.Valuation{Excellent: 16500, Good: 13000, Fair: 9500, Poor: 5500},
				PartsTier:     domain.TierMedium,
			},
			{
				Model: "520d", YearStart: 2017, YearEnd: 2023,
				EngineCode: "B47", GenerationCode: "VII", ChassisCode: "G30",
				OilSpec: "BMW Longlife-17 FE+ 0W-20", OilCapacity: "5.25 l",
				ServiceInterval: "CBS-huoltonäytön mukaan, enintään 30 000 km",
				CommonIssues: []string{
					"AdBlue-järjestelmän kiteytyminen",
					"Ilmajousituksen kompressorin kuluminen (Touring)",
				},
				BaseValuation: domain.Valuation{Excellent: 31000, Good: 26000, Fair: 21000, Poor: 14000},
				PartsTier:     domain.TierHigh,
			},
		},
		"530i": {
			{
				Model: "530i", YearStart: 1996, YearEnd: 2003,
				EngineCode: "M54B30", GenerationCode: "IV", ChassisCode: "E39",
				OilSpec: "BMW Longlife-98 5W-40", OilCapacity: "6.5 l",
				ServiceInterval: "Öljynvaihto 15 000 km tai 12 kk välein",
				CommonIssues: []string{
					"Jäähdytysjärjestelmän muoviosien haurastuminen",
					"Takajousituksen tukivarsien kuluminen",
					"ABS-anturien viat",
				},
				BaseValuation: domain.Valuation{Excellent: 9000, Good: 6500, Fair: 4200, Poor: 2000},
				PartsTier:     domain.TierMedium,
			},
			{
				Model: "530i", YearStart: 2017, YearEnd: 2023,
				EngineCode: "B48", GenerationCode: "VII", ChassisCode: "G30",
				OilSpec: "BMW Longlife-17 FE+ 0W-20", OilCapacity: "5.25 l",
				ServiceInterval: "CBS-huoltonäytön mukaan, enintään 30 000 km",
				CommonIssues: []string{
					"Jäähdytysnesteen hävikki ilman näkyvää vuotoa",
					"Kampiakselin asentotunnistimen viat",
				},
				BaseValuation: domain.Valuation{Excellent: 33000, Good: 28000, Fair: 23000, Poor: 15000},
				PartsTier:     domain.TierHigh,
			},
		},
		"x3": {
			{
				Model: "X3", YearStart: 2004, YearEnd: 2010,
				EngineCode: "M54/N52/M47", GenerationCode: "I", ChassisCode: "E83",
				OilSpec: "BMW Longlife-04 5W-30", OilCapacity: "5.5 l",
				ServiceInterval: "CBS-huoltonäytön mukaan, enintään 25 000 km",
				CommonIssues: []string{
					"Jakovaihteiston (ATC400) kuluminen",
					"Etuakselin vetonivelten kuluminen",
					"Panoraamakaton mekanismin jumiutuminen",
				},
				BaseValuation: domain.Valuation{Excellent: 10500, Good: 8000, Fair: 5500, Poor: 2800},
				PartsTier:     domain.TierMedium,
			},
			{
				Model: "X3", YearStart: 2011, YearEnd: 2017,
				EngineCode: "N47/B47/N20", GenerationCode: "II", ChassisCode: "F25",
				OilSpec: "BMW Longlife-04 5W-30", OilCapacity: "5.2 l",
				ServiceInterval: "CBS-huoltonäytön mukaan, enintään 30 000 km",
				CommonIssues: []string{
					"Jakoketjun venyminen (N47/N20)",
					"Ohjausvaihteen välys",
					"Takaluukun sähkötoimilaitteen viat",
				},
				BaseValuation: domain.Valuation{Excellent: 21000, Good: 17000, Fair: 13000, Poor: 8000},
				PartsTier:     domain.TierHigh,
			},
		},
		"x5": {
			{
				Model: "X5", YearStart: 2000, YearEnd: 2006,
				EngineCode: "M54/M62/M57", GenerationCode: "I", ChassisCode: "E53",
				OilSpec: "BMW Longlife-98 5W-40", OilCapacity: "7.0 l",
				ServiceInterval: "Öljynvaihto 15 000 km tai 12 kk välein",
				CommonIssues: []string{
					"Ilmajousituksen palkeiden vuodot",
					"Jäähdytysjärjestelmän muoviosien haurastuminen",
					"Kardaanin ristinivelen kuluminen",
				},
				BaseValuation: domain.Valuation{Excellent: 11000, Good: 8000, Fair: 5500, Poor: 2800},
				PartsTier:     domain.TierHigh,
			},
			{
				Model: "X5", YearStart: 2007, YearEnd: 2013,
				EngineCode: "N52/N57/N63", GenerationCode: "II", ChassisCode: "E70",
				OilSpec: "BMW Longlife-04 5W-30", OilCapacity: "6.5 l",
				ServiceInterval: "CBS-huoltonäytön mukaan, enintään 25 000 km",
				CommonIssues: []string{
					"Ilmajousituksen kompressorin kuluminen",
					"Ahtimien öljyvuodot (N63)",
					"iDrive-yksikön ohjelmistoviat",
				},
				BaseValuation: domain.Valuation{Excellent: 19500, Good: 15000, Fair: 10500, Poor: 6000},
				PartsTier:     domain.TierPremium,
			},
			{
				Model: "X5", YearStart: 2014, YearEnd: 2018,
				EngineCode: "N57/B57/N20", GenerationCode: "III", ChassisCode: "F15",
				OilSpec: "BMW Longlife-04 5W-30", OilCapacity: "6.5 l",
				ServiceInterval: "CBS-huoltonäytön mukaan, enintään 30 000 km",
				CommonIssues: []string{
					"EGR-jäähdyttimen vuoto (takaisinkutsu)",
					"Ilmajousituksen venttiiliyksikön viat",
				},
				BaseValuation: domain.Valuation{Excellent: 33000, Good: 27000, Fair: 21000, Poor: 14000},
				PartsTier:     domain.TierPremium,
			},
			{
				Model: "X5", YearStart: 2019, YearEnd: 2025,
				EngineCode: "B57/B58", GenerationCode: "IV", ChassisCode: "G05",
				OilSpec: "BMW Longlife-17 FE+ 0W-20", OilCapacity: "6.5 l",
				ServiceInterval: "CBS-huoltonäytön mukaan, enintään 30 000 km",
				CommonIssues: []string{
					"48V-järjestelmän ohjelmistopäivitystarpeet",
					"Tuulilasin lämmityksen viat",
				},
				BaseValuation: domain.Valuation{Excellent: 62000, Good: 54000, Fair: 45000, Poor: 33000},
				PartsTier:     domain.TierPremium,
			},
		},
		"m3": {
			{
				Model: "M3", YearStart: 2000, YearEnd: 2006,
				EngineCode: "S54B32", GenerationCode: "IV", ChassisCode: "E46",
				OilSpec: "Castrol TWS 10W-60", OilCapacity: "5.5 l",
				ServiceInterval: "Öljynvaihto 10 000 km välein, Inspektion I/II",
				CommonIssues: []string{
					"Kiertokankien laakerien kuluminen",
					"Vanos-yksikön hammaspyörien kuluminen",
					"Taka-apurungon kiinnityspisteiden repeily",
				},
				BaseValuation: domain.Valuation{Excellent: 45000, Good: 35000, Fair: 26000, Poor: 15000},
				PartsTier:     domain.TierPremium,
			},
			{
				Model: "M3", YearStart: 2007, YearEnd: 2013,
				EngineCode: "S65B40", GenerationCode: "V", ChassisCode: "E90/E92",
				OilSpec: "Castrol Edge 10W-60", OilCapacity: "8.8 l",
				ServiceInterval: "Öljynvaihto 10 000 km välein",
				CommonIssues: []string{
					"Kiertokankien laakerien kuluminen",
					"Kaasuläppätoimilaitteiden viat",
				},
				BaseValuation: domain.Valuation{Excellent: 52000, Good: 42000, Fair: 33000, Poor: 22000},
				PartsTier:     domain.TierPremium,
			},
		},
	}
}
